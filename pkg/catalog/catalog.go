package catalog

import (
	"cmp"
	"slices"

	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/geom"
)

// Class tells the floorplanner what a cell is used for.
type Class string

// Cell classes.
const (
	ClassSignal Class = "signal" // I/O signal pad
	ClassPower  Class = "power"  // power supply pad
	ClassGround Class = "ground" // ground pad
	ClassCorner Class = "corner" // ring corner
	ClassFiller Class = "filler" // ring filler slice
	ClassMacro  Class = "macro"  // hard macro such as a RAM
	ClassBlock  Class = "block"  // hierarchical block such as the core
)

// ParseClass validates a class name.
func ParseClass(s string) (Class, error) {
	switch c := Class(s); c {
	case ClassSignal, ClassPower, ClassGround, ClassCorner, ClassFiller, ClassMacro, ClassBlock:
		return c, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig,
		"unknown cell class %q (must be one of: signal, power, ground, corner, filler, macro, block)", s)
}

// IsPad reports whether cells of this class sit in the pad ring between
// the corners.
func (c Class) IsPad() bool {
	return c == ClassSignal || c == ClassPower || c == ClassGround
}

// Cell is an immutable technology cell definition.
type Cell struct {
	Role     string    `json:"role"`
	Width    geom.Unit `json:"width"`
	Height   geom.Unit `json:"height"`
	TechName string    `json:"tech"`
	Class    Class     `json:"class"`
}

// Validate checks that the cell has a usable name and a positive size.
func (c Cell) Validate() error {
	if err := errors.ValidateRole(c.Role); err != nil {
		return err
	}
	if c.TechName == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cell %q has no technology name", c.Role)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cell %q has non-positive size %dx%d", c.Role, c.Width, c.Height)
	}
	return nil
}

// Catalog is a read-only mapping from role to cell.
type Catalog struct {
	cells map[string]Cell
}

// New builds a catalog from cells, validating each one. Roles must be unique.
func New(cells ...Cell) (*Catalog, error) {
	m := make(map[string]Cell, len(cells))
	for _, c := range cells {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := m[c.Role]; dup {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "duplicate cell role %q", c.Role)
		}
		m[c.Role] = c
	}
	return &Catalog{cells: m}, nil
}

// MustNew is like New but panics on error. Intended for built-in catalogs.
func MustNew(cells ...Cell) *Catalog {
	c, err := New(cells...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the cell for role.
func (c *Catalog) Lookup(role string) (Cell, error) {
	cell, ok := c.cells[role]
	if !ok {
		return Cell{}, errors.New(errors.ErrCodeUnknownCell, "no cell for role %q", role)
	}
	return cell, nil
}

// Has reports whether role is defined.
func (c *Catalog) Has(role string) bool {
	_, ok := c.cells[role]
	return ok
}

// Len returns the number of cells.
func (c *Catalog) Len() int { return len(c.cells) }

// Roles returns all roles in sorted order.
func (c *Catalog) Roles() []string {
	roles := make([]string, 0, len(c.cells))
	for r := range c.cells {
		roles = append(roles, r)
	}
	slices.Sort(roles)
	return roles
}

// Cells returns all cells sorted by role.
func (c *Catalog) Cells() []Cell {
	out := make([]Cell, 0, len(c.cells))
	for _, r := range c.Roles() {
		out = append(out, c.cells[r])
	}
	return out
}

// Fillers resolves the given filler roles and returns them sorted by width,
// widest first. Ties are broken by role so the order is stable.
func (c *Catalog) Fillers(roles []string) ([]Cell, error) {
	out := make([]Cell, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		if seen[r] {
			continue
		}
		seen[r] = true
		cell, err := c.Lookup(r)
		if err != nil {
			return nil, err
		}
		out = append(out, cell)
	}
	slices.SortFunc(out, func(a, b Cell) int {
		if n := cmp.Compare(b.Width, a.Width); n != 0 {
			return n
		}
		return cmp.Compare(a.Role, b.Role)
	})
	return out, nil
}

// With returns a new catalog containing c's cells plus extra. Cells in extra
// replace cells of the same role.
func (c *Catalog) With(extra ...Cell) (*Catalog, error) {
	m := make(map[string]Cell, len(c.cells)+len(extra))
	for k, v := range c.cells {
		m[k] = v
	}
	for _, e := range extra {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		m[e.Role] = e
	}
	return &Catalog{cells: m}, nil
}
