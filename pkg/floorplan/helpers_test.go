package floorplan

import (
	stderrors "errors"
	"testing"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/geom"
)

// smallCatalog is a unit-scale pad library: gpio 40x180, vdd 35x180 and
// fillers 20/10/5/1 wide, with a square corner of the given size.
func smallCatalog(t *testing.T, corner geom.Unit) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		catalog.Cell{Role: "gpio", Width: 40, Height: 180, TechName: "io_gpio", Class: catalog.ClassSignal},
		catalog.Cell{Role: "vdd", Width: 35, Height: 180, TechName: "io_vdd", Class: catalog.ClassPower},
		catalog.Cell{Role: "corner", Width: corner, Height: corner, TechName: "io_corner", Class: catalog.ClassCorner},
		catalog.Cell{Role: "fill20", Width: 20, Height: 170, TechName: "io_fill20", Class: catalog.ClassFiller},
		catalog.Cell{Role: "fill10", Width: 10, Height: 170, TechName: "io_fill10", Class: catalog.ClassFiller},
		catalog.Cell{Role: "fill5", Width: 5, Height: 170, TechName: "io_fill5", Class: catalog.ClassFiller},
		catalog.Cell{Role: "fill1", Width: 1, Height: 170, TechName: "io_fill1", Class: catalog.ClassFiller},
	)
	if err != nil {
		t.Fatalf("catalog.New() error: %v", err)
	}
	return cat
}

func squareDie(t *testing.T, size geom.Unit) Die {
	t.Helper()
	margin := size / 5
	die, err := NewDie(size, size, geom.R(margin, margin, size-margin, size-margin), margin, 1)
	if err != nil {
		t.Fatalf("NewDie() error: %v", err)
	}
	return die
}

func fillers(t *testing.T, cat *catalog.Catalog, roles ...string) []catalog.Cell {
	t.Helper()
	f, err := cat.Fillers(roles)
	if err != nil {
		t.Fatalf("Fillers() error: %v", err)
	}
	return f
}

// explicitPads builds a pad list from roles with simple names.
func explicitPads(side geom.Side, roles ...string) []PadEntry {
	out := make([]PadEntry, len(roles))
	for i, r := range roles {
		out[i] = PadEntry{ID: NewIdent(At(side.Abbrev()+"_"+r, i)), Pin: r, Role: r}
	}
	return out
}

var testPins = PinPolicy{Size: 5, Along: 10, Depth: 20, Layer: "m5"}

func asError[T error](err error, target *T) bool { return stderrors.As(err, target) }
