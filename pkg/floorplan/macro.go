package floorplan

import (
	"strings"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/geom"
)

// Anchor selects the reference point a macro is placed against.
type Anchor string

// Macro anchors. The corner anchors place the macro in that corner of the
// margin box, pulled inward by the keep-out. AnchorCore places it at the
// core's lower-left corner plus the keep-out. AnchorExplicit uses X and Y.
const (
	AnchorNE       Anchor = "ne"
	AnchorNW       Anchor = "nw"
	AnchorSE       Anchor = "se"
	AnchorSW       Anchor = "sw"
	AnchorCore     Anchor = "core"
	AnchorExplicit Anchor = "explicit"
)

// ParseAnchor validates an anchor name. The empty string means explicit.
func ParseAnchor(s string) (Anchor, error) {
	switch a := Anchor(strings.ToLower(s)); a {
	case "":
		return AnchorExplicit, nil
	case AnchorNE, AnchorNW, AnchorSE, AnchorSW, AnchorCore, AnchorExplicit:
		return a, nil
	}
	return "", invalidPolicy("unknown macro anchor %q (must be one of: ne, nw, se, sw, core, explicit)", s)
}

// MacroPolicy places one hard macro.
type MacroPolicy struct {
	ID          Ident
	Role        string
	Anchor      Anchor
	KeepOutCols int // keep-out from the anchor in standard cell widths
	KeepOutRows int // keep-out from the anchor in standard cell rows
	X, Y        geom.Unit
	Orient      geom.Orientation
	OutsideCore bool // the macro must not overlap the core area
}

// PlaceMacros places macros in order. Positions are snapped to a multiple
// of both the die grid and the standard cell pitch, rounding toward the
// inside of the margin box. Each macro must lie inside ring, the interior
// left free by the pad ring, and must not overlap anything in placed or an
// earlier macro.
func PlaceMacros(cat *catalog.Catalog, die Die, sizing SizingPolicy, ring geom.Rect, placed []Instance, macros []MacroPolicy) ([]Instance, error) {
	out := make([]Instance, 0, len(macros))
	for _, m := range macros {
		cell, err := cat.Lookup(m.Role)
		if err != nil {
			return nil, err
		}
		orient := m.Orient
		if orient == "" {
			orient = geom.OrientN
		}
		w, h := orient.Footprint(cell.Width, cell.Height)

		x, y, err := macroOrigin(die, sizing, m, w, h)
		if err != nil {
			return nil, err
		}
		box := geom.RectAt(geom.Point{X: x, Y: y}, w, h)

		fail := func(against string, againstBox geom.Rect) error {
			return &MacroOverlapError{Macro: m.ID, Box: box, Against: against, AgainstBox: againstBox}
		}
		switch {
		case !die.Rect().Contains(box):
			return nil, fail(againstDie, die.Rect())
		case !ring.Contains(box):
			return nil, fail(againstRing, ring)
		case m.OutsideCore && box.Overlaps(die.Core):
			return nil, fail(againstCore, die.Core)
		}
		for _, other := range placed {
			if box.Overlaps(other.Box) {
				return nil, fail(other.ID.String(), other.Box)
			}
		}
		for _, other := range out {
			if box.Overlaps(other.Box) {
				return nil, fail(other.ID.String(), other.Box)
			}
		}

		out = append(out, Instance{
			ID:     m.ID,
			Role:   cell.Role,
			Cell:   cell.TechName,
			Class:  cell.Class,
			Kind:   KindMacro,
			Box:    box,
			Orient: orient,
		})
	}
	return out, nil
}

// macroOrigin computes the snapped lower-left corner of a w×h macro.
func macroOrigin(die Die, s SizingPolicy, m MacroPolicy, w, h geom.Unit) (x, y geom.Unit, err error) {
	mb := die.MarginBox()
	kx := geom.Unit(m.KeepOutCols) * s.StdCellWidth
	ky := geom.Unit(m.KeepOutRows) * s.StdCellHeight

	anchor, err := ParseAnchor(string(m.Anchor))
	if err != nil {
		return 0, 0, err
	}

	var (
		rawX, rawY geom.Unit
		upX, upY   bool
	)
	switch anchor {
	case AnchorNE:
		rawX, rawY = mb.X1-w-kx, mb.Y1-h-ky
	case AnchorNW:
		rawX, rawY, upX = mb.X0+kx, mb.Y1-h-ky, true
	case AnchorSE:
		rawX, rawY, upY = mb.X1-w-kx, mb.Y0+ky, true
	case AnchorSW:
		rawX, rawY, upX, upY = mb.X0+kx, mb.Y0+ky, true, true
	case AnchorCore:
		rawX, rawY, upX, upY = die.Core.X0+kx, die.Core.Y0+ky, true, true
	default:
		rawX, rawY = m.X, m.Y
	}

	if x, err = snapMacro(rawX, die.Grid, s.StdCellWidth, upX); err != nil {
		return 0, 0, err
	}
	if y, err = snapMacro(rawY, die.Grid, s.StdCellHeight, upY); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// snapMacro rounds v to a multiple of both grid and pitch, down unless up
// is set.
func snapMacro(v, grid, pitch geom.Unit, up bool) (geom.Unit, error) {
	step := grid
	if pitch > 0 {
		step = lcm(grid, pitch)
	}
	if up {
		return geom.CeilTo(v, step)
	}
	return geom.Snap(v, step)
}

func gcd(a, b geom.Unit) geom.Unit {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b geom.Unit) geom.Unit {
	if a <= 0 || b <= 0 {
		return max(a, b)
	}
	return a / gcd(a, b) * b
}
