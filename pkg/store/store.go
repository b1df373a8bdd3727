// Package store archives computed layout documents.
//
// This package defines the [Store] interface with implementations for
// different backends:
//   - memory: In-memory storage for development and tests
//   - file: one JSON document per layout in a directory, for the CLI
//   - mongo: a MongoDB collection, for multi-instance servers
//
// Documents are keyed by their layout ID, which is derived from the config
// hash. Saving the same config twice replaces the earlier document.
//
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: uri})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//	err = st.Save(ctx, doc)
package store

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/layoutio"
)

// Store is the interface for layout archives.
type Store interface {
	// Save stores doc, replacing any document with the same ID.
	Save(ctx context.Context, doc *layoutio.Document) error

	// Get returns the document with the given ID. A missing document is a
	// NOT_FOUND error.
	Get(ctx context.Context, id string) (*layoutio.Document, error)

	// List returns summaries of up to limit documents ordered by ID.
	// A limit of zero or less returns all documents.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}

// Summary describes a stored layout without its instances.
type Summary struct {
	ID         string `json:"id"`
	ConfigHash string `json:"config_hash"`
	Width      int64  `json:"width"`
	Height     int64  `json:"height"`
	Instances  int    `json:"instances"`
	Pins       int    `json:"pins"`
}

// Summarize returns the summary of doc.
func Summarize(doc *layoutio.Document) Summary {
	return Summary{
		ID:         doc.ID,
		ConfigHash: doc.ConfigHash,
		Width:      doc.Die.Width,
		Height:     doc.Die.Height,
		Instances:  len(doc.Instances),
		Pins:       len(doc.Pins),
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
}

func checkID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid layout id %q", id)
	}
	return nil
}

// sortAndLimit orders summaries by ID and truncates them to limit.
func sortAndLimit(out []Summary, limit int) []Summary {
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
