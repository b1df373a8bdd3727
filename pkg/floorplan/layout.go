package floorplan

import (
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/geom"
)

// Kind is the part of the floorplan an instance belongs to.
type Kind string

// Instance kinds.
const (
	KindCorner Kind = "corner"
	KindPad    Kind = "pad"
	KindFiller Kind = "filler"
	KindMacro  Kind = "macro"
)

// Instance is a placed cell. Box is its bounding box after orientation;
// its lower-left corner is the DEF placement location.
type Instance struct {
	ID     Ident
	Role   string
	Cell   string // technology cell name
	Class  catalog.Class
	Kind   Kind
	Side   geom.Side // only meaningful for pads and fillers
	Box    geom.Rect
	Orient geom.Orientation
}

// Origin returns the placement location.
func (i Instance) Origin() geom.Point { return i.Box.Min() }

// Rotation returns the counter-clockwise rotation in degrees.
func (i Instance) Rotation() int { return i.Orient.Rotation() }

// OnPerimeter reports whether the instance belongs to one side of the ring.
func (i Instance) OnPerimeter() bool { return i.Kind == KindPad || i.Kind == KindFiller }

// Pin directions and uses as written to DEF.
const (
	DirInOut = "INOUT"

	UseSignal = "SIGNAL"
	UsePower  = "POWER"
	UseGround = "GROUND"
)

// Pin is a die-level pin derived from its owning pad.
type Pin struct {
	Name      string
	Owner     Ident
	Side      geom.Side
	Box       geom.Rect
	Layer     string
	Direction string
	Use       string
}

func pinUse(c catalog.Class) string {
	switch c {
	case catalog.ClassPower:
		return UsePower
	case catalog.ClassGround:
		return UseGround
	}
	return UseSignal
}

// Layout is a complete floorplan.
type Layout struct {
	Die        Die
	Ring       geom.Rect // die interior left free by the pad ring
	Instances  []Instance
	Pins       []Pin
	FillCounts map[string]int
	Sides      map[geom.Side]SideSummary
}

// Build computes the floorplan: die sizing, corners, the four sides with
// their fillers, macros and a final overlap check. It returns either a
// complete layout or the first error; nothing partial is returned.
//
// Instances are ordered corners (sw, nw, se, ne), then per side in the order
// west, north, east, south its pads followed by its fillers, then macros.
func Build(cat *catalog.Catalog, p Policy) (*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	die, err := SizeDie(cat, p.Sizing)
	if err != nil {
		return nil, err
	}
	corners, err := PlaceCorners(cat, die, p.Corner)
	if err != nil {
		return nil, err
	}
	lists, err := BuildPadLists(cat, p.Pads)
	if err != nil {
		return nil, err
	}
	if err := checkNames(corners, lists, p.Macros); err != nil {
		return nil, err
	}
	fillers, err := cat.Fillers(p.Fill.Roles)
	if err != nil {
		return nil, err
	}
	for _, f := range fillers {
		if f.Class != catalog.ClassFiller {
			return nil, invalidPolicy("fill role %q is a %s cell", f.Role, f.Class)
		}
	}

	sides, err := layoutSides(cat, die, lists, corners, p.Pins, fillers)
	if err != nil {
		return nil, err
	}

	l := &Layout{
		Die:        die,
		FillCounts: make(map[string]int),
		Sides:      make(map[geom.Side]SideSummary, len(geom.Sides)),
	}
	l.Instances = append(l.Instances, corners...)
	for _, side := range geom.Sides {
		r := sides[side]
		l.Instances = append(l.Instances, r.Pads...)
		l.Instances = append(l.Instances, r.Fillers...)
		l.Pins = append(l.Pins, r.Pins...)
		mergeCounts(l.FillCounts, r.Counts)
		l.Sides[side] = r.Summary
	}
	l.Ring = geom.R(
		l.Sides[geom.West].Depth,
		l.Sides[geom.South].Depth,
		die.Width-l.Sides[geom.East].Depth,
		die.Height-l.Sides[geom.North].Depth,
	)

	macros, err := PlaceMacros(cat, die, p.Sizing, l.Ring, l.Instances, p.Macros)
	if err != nil {
		return nil, err
	}
	l.Instances = append(l.Instances, macros...)

	if err := CheckOverlaps(l.Instances); err != nil {
		return nil, err
	}
	return l, nil
}

// layoutSides lays out the four sides concurrently. Each side writes only
// its own slot. errgroup reports whichever side fails first in time, so on
// failure the error of the first side in West, North, East, South order is
// returned instead.
func layoutSides(cat *catalog.Catalog, die Die, lists map[geom.Side][]PadEntry, corners []Instance, pins PinPolicy, fillers []catalog.Cell) ([4]SideResult, error) {
	var (
		g       errgroup.Group
		results [4]SideResult
		errs    [4]error
	)
	for _, side := range geom.Sides {
		g.Go(func() error {
			results[side], errs[side] = LayoutSide(cat, die, side, lists[side], corners, pins, fillers)
			return errs[side]
		})
	}
	if err := g.Wait(); err == nil {
		return results, nil
	}

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// checkNames rejects duplicate instance names among corners, pads and
// macros, and names inside a filler gap hierarchy (we_gap, no_gap, ...),
// which belongs to the generated fillers.
func checkNames(corners []Instance, lists map[geom.Side][]PadEntry, macros []MacroPolicy) error {
	seen := make(map[string]bool)
	add := func(id Ident) error {
		name := id.String()
		if isFillerName(id) {
			return invalidPolicy("instance name %s is reserved for fillers", name)
		}
		if seen[name] {
			return invalidPolicy("duplicate instance name %s", name)
		}
		seen[name] = true
		return nil
	}
	for _, c := range corners {
		if err := add(c.ID); err != nil {
			return err
		}
	}
	for _, side := range geom.Sides {
		for _, p := range lists[side] {
			if err := add(p.ID); err != nil {
				return err
			}
		}
	}
	for _, m := range macros {
		if err := add(m.ID); err != nil {
			return err
		}
	}
	return nil
}

func isFillerName(id Ident) bool {
	if len(id) == 0 {
		return false
	}
	for _, side := range geom.Sides {
		if id[0].Name == fillerPrefix(side, 0)[0].Name {
			return true
		}
	}
	return false
}

// Count returns the number of instances of kind.
func (l *Layout) Count(kind Kind) int {
	n := 0
	for _, inst := range l.Instances {
		if inst.Kind == kind {
			n++
		}
	}
	return n
}

// Find returns the instance with the given dotted name.
func (l *Layout) Find(name string) (Instance, bool) {
	for _, inst := range l.Instances {
		if inst.ID.String() == name {
			return inst, true
		}
	}
	return Instance{}, false
}

// SideInstances returns the pads and fillers of side ordered along the edge.
func (l *Layout) SideInstances(side geom.Side) []Instance {
	var out []Instance
	for _, inst := range l.Instances {
		if inst.OnPerimeter() && inst.Side == side {
			out = append(out, inst)
		}
	}
	sortAlong(side, out)
	return out
}

// Snapped returns the instances whose placement is off grid. Perimeter cells
// are checked along the edge and at the die boundary they sit against;
// their inner edge follows the cell height. Corners and macros are checked
// at their placement location.
func (l *Layout) Snapped(grid geom.Unit) []Instance {
	var off []Instance
	for _, inst := range l.Instances {
		b := inst.Box
		var coords [2]geom.Unit
		if inst.OnPerimeter() {
			lo, _ := inst.Side.AlongInterval(b)
			coords = [2]geom.Unit{lo, outerEdge(inst.Side, b)}
		} else {
			coords = [2]geom.Unit{b.X0, b.Y0}
		}
		if !geom.OnGrid(coords[0], grid) || !geom.OnGrid(coords[1], grid) {
			off = append(off, inst)
		}
	}
	return off
}

func outerEdge(side geom.Side, b geom.Rect) geom.Unit {
	switch side {
	case geom.West:
		return b.X0
	case geom.East:
		return b.X1
	case geom.North:
		return b.Y1
	default:
		return b.Y0
	}
}
