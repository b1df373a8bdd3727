package floorplan

import (
	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/geom"
)

// Span is the ordered run of fillers covering one strip.
type Span struct {
	Side    geom.Side
	Strip   geom.Rect
	Fillers []Instance
	Counts  map[string]int // filler role -> number placed
}

// Tile covers strip with fillers along side's edge axis, greedily taking the
// widest filler that still fits the remainder. Fillers are placed in order of
// increasing position and sit against the die boundary with the side's
// outward orientation. A remainder narrower than every filler is an
// [UnfillableGapError]; a strip is never left partially covered.
func Tile(side geom.Side, strip geom.Rect, fillers []catalog.Cell, prefix Ident) (Span, error) {
	span := Span{Side: side, Strip: strip, Counts: make(map[string]int)}
	lo, hi := side.AlongInterval(strip)

	var smallest geom.Unit
	for i, f := range fillers {
		if i == 0 || f.Width < smallest {
			smallest = f.Width
		}
	}

	for pos := lo; pos < hi; {
		remaining := hi - pos
		cell, ok := widestFitting(fillers, remaining)
		if !ok {
			return Span{}, &UnfillableGapError{Side: side, Strip: strip, Remaining: remaining, Smallest: smallest}
		}
		span.Fillers = append(span.Fillers, Instance{
			ID:     prefix.Child(At("fill", len(span.Fillers))),
			Role:   cell.Role,
			Cell:   cell.TechName,
			Class:  cell.Class,
			Kind:   KindFiller,
			Side:   side,
			Box:    fillerBox(side, strip, pos, cell),
			Orient: side.Orientation(),
		})
		span.Counts[cell.Role]++
		pos += cell.Width
	}
	return span, nil
}

// widestFitting returns the widest filler no wider than n. Equal widths
// resolve to the first one given.
func widestFitting(fillers []catalog.Cell, n geom.Unit) (catalog.Cell, bool) {
	var (
		best  catalog.Cell
		found bool
	)
	for _, f := range fillers {
		if f.Width <= n && (!found || f.Width > best.Width) {
			best, found = f, true
		}
	}
	return best, found
}

// fillerBox places a filler at pos along the strip, flush with the strip's
// outer (die boundary) edge.
func fillerBox(side geom.Side, strip geom.Rect, pos geom.Unit, cell catalog.Cell) geom.Rect {
	w, h := cell.Width, cell.Height
	switch side {
	case geom.West:
		return geom.R(strip.X0, pos, strip.X0+h, pos+w)
	case geom.East:
		return geom.R(strip.X1-h, pos, strip.X1, pos+w)
	case geom.North:
		return geom.R(pos, strip.Y1-h, pos+w, strip.Y1)
	default:
		return geom.R(pos, strip.Y0, pos+w, strip.Y0+h)
	}
}
