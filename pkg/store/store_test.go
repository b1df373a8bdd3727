package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/floorplan"
	"github.com/matzehuels/padring/pkg/layoutio"
)

func testDoc(t *testing.T, hash string) *layoutio.Document {
	t.Helper()
	l, err := floorplan.Build(catalog.Sky130(), floorplan.DefaultPolicy())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return layoutio.FromLayout(l, hash, 1000)
}

// exerciseStore runs the behaviour every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	a, b := testDoc(t, "hash-a"), testDoc(t, "hash-b")

	if _, err := s.Get(ctx, a.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}

	for _, doc := range []*layoutio.Document{a, b, a} {
		if err := s.Save(ctx, doc); err != nil {
			t.Fatalf("Save(%s) error: %v", doc.ID, err)
		}
	}

	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ConfigHash != "hash-a" || len(got.Instances) != len(a.Instances) {
		t.Errorf("Get() = %s with %d instances", got.ConfigHash, len(got.Instances))
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() = %d summaries, want 2", len(list))
	}
	if list[0].ID > list[1].ID {
		t.Error("List() not ordered by ID")
	}
	for _, sum := range list {
		if sum.Width != 4760000 || sum.Instances != len(a.Instances) || sum.Pins != len(a.Pins) {
			t.Errorf("summary %+v", sum)
		}
	}

	if list, _ := s.List(ctx, 1); len(list) != 1 {
		t.Errorf("List(1) = %d summaries, want 1", len(list))
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, a.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after Delete error = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, a.ID); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(s.Dir(), "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() = %v, want empty", list)
	}
}

func TestInvalidID(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"", "..", "a/b", `a\b`} {
		doc := &layoutio.Document{ID: id}
		if err := NewMemoryStore().Save(ctx, doc); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("MemoryStore.Save(%q) error = %v, want INVALID_FORMAT", id, err)
		}
		if _, err := fs.Get(ctx, id); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("FileStore.Get(%q) error = %v, want INVALID_FORMAT", id, err)
		}
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("PADRING_MONGO_URI")
	if uri == "" {
		t.Skip("PADRING_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "padring_test"})
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer s.Close()
	if err := s.coll.Drop(ctx); err != nil {
		t.Fatalf("drop: %v", err)
	}
	exerciseStore(t, s)
}
