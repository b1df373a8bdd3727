package floorplan

import (
	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/geom"
)

// Die is the die rectangle, anchored at the origin, and its core area.
type Die struct {
	Width  geom.Unit
	Height geom.Unit
	Core   geom.Rect
	Margin geom.Unit
	Grid   geom.Unit
}

// NewDie validates and returns a die. Width and height must be multiples of
// grid and the core must have positive area inside the margin box.
func NewDie(width, height geom.Unit, core geom.Rect, margin, grid geom.Unit) (Die, error) {
	if grid <= 0 {
		return Die{}, &geom.InvalidGridError{Grid: grid}
	}
	d := Die{Width: width, Height: height, Core: core, Margin: margin, Grid: grid}
	fail := func(reason string) (Die, error) {
		return Die{}, &DieSizingError{Reason: reason, Width: width, Height: height, Grid: grid, Margin: margin, Core: core}
	}
	switch {
	case width <= 0 || height <= 0:
		return fail("die size must be positive")
	case !geom.OnGrid(width, grid) || !geom.OnGrid(height, grid):
		return fail("die size is not a multiple of the grid")
	case margin < 0:
		return fail("negative margin")
	case core.Empty():
		return fail("core area is empty")
	case !d.MarginBox().Contains(core):
		return fail("core area extends past the margin")
	}
	return d, nil
}

// Rect returns the die rectangle.
func (d Die) Rect() geom.Rect { return geom.R(0, 0, d.Width, d.Height) }

// MarginBox returns the die inset by the margin.
func (d Die) MarginBox() geom.Rect { return d.Rect().Inset(d.Margin) }

// SizeDie derives the die from the sizing policy:
//
//	margin = ceil(MarginFactor × tallest margin cell, Grid)
//	width  = Cols × StdCellWidth  + 2 × margin
//	height = Rows × StdCellHeight + 2 × margin
//
// The core is the margin box. With a reservation its east edge moves to the
// reserved macro's x position minus the keep-out channel.
func SizeDie(cat *catalog.Catalog, p SizingPolicy) (Die, error) {
	if p.Grid <= 0 {
		return Die{}, &geom.InvalidGridError{Grid: p.Grid}
	}

	var tallest geom.Unit
	for _, role := range p.MarginRoles {
		cell, err := cat.Lookup(role)
		if err != nil {
			return Die{}, err
		}
		tallest = max(tallest, cell.Height)
		if cell.Class == catalog.ClassCorner {
			tallest = max(tallest, cell.Width)
		}
	}
	margin, err := geom.CeilTo(geom.Unit(p.MarginFactor)*tallest, p.Grid)
	if err != nil {
		return Die{}, err
	}

	width := geom.Unit(p.Cols)*p.StdCellWidth + 2*margin
	height := geom.Unit(p.Rows)*p.StdCellHeight + 2*margin
	core := geom.R(margin, margin, width-margin, height-margin)

	if r := p.Reserve; r != nil {
		cell, err := cat.Lookup(r.Role)
		if err != nil {
			return Die{}, err
		}
		keepOut := geom.Unit(r.KeepOutCols) * p.StdCellWidth
		x, err := snapMacro(width-margin-cell.Width-keepOut, p.Grid, p.StdCellWidth, false)
		if err != nil {
			return Die{}, err
		}
		core.X1 = x - keepOut
	}

	return NewDie(width, height, core, margin, p.Grid)
}
