package floorplan

import (
	"cmp"
	"slices"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/geom"
)

// PadEntry is one pad in a side's ordered pad list.
type PadEntry struct {
	ID    Ident
	Pin   string
	Role  string
	Class catalog.Class
}

// BuildPadLists returns the ordered pad list of every side. Generated lists
// follow the policy's signal/power interleaving; explicit lists are taken
// as given. Every role must resolve to a pad cell.
func BuildPadLists(cat *catalog.Catalog, p PadPolicy) (map[geom.Side][]PadEntry, error) {
	lists := make(map[geom.Side][]PadEntry, len(geom.Sides))
	for _, side := range geom.Sides {
		var entries []PadEntry
		if explicit := p.Pads[side]; len(explicit) > 0 {
			entries = make([]PadEntry, len(explicit))
			for i, e := range explicit {
				if len(e.ID) == 0 {
					return nil, invalidPolicy("%s pad %d has no instance name", side, i)
				}
				if e.Pin == "" {
					e.Pin = e.ID[len(e.ID)-1].String()
				}
				entries[i] = e
			}
		} else {
			entries = generatePads(side, p)
		}

		for i := range entries {
			cell, err := cat.Lookup(entries[i].Role)
			if err != nil {
				return nil, err
			}
			if !cell.Class.IsPad() {
				return nil, invalidPolicy("%s pad %s uses %s cell %q", side, entries[i].ID, cell.Class, cell.Role)
			}
			entries[i].Class = cell.Class
		}
		lists[side] = entries
	}
	return lists, nil
}

// generatePads lays out signals[:Split] + power + signals[Split:].
func generatePads(side geom.Side, p PadPolicy) []PadEntry {
	signal := func(i int) PadEntry {
		return PadEntry{ID: SignalIdent(side, i, p.Signal), Pin: SignalPin(side, i), Role: p.Signal}
	}

	perSide := make(map[string]int, len(p.Power))
	for _, port := range p.Power {
		perSide[port]++
	}

	out := make([]PadEntry, 0, p.Signals+len(p.Power))
	for i := range p.Split {
		out = append(out, signal(i))
	}
	seen := make(map[string]int, len(p.Power))
	for _, port := range p.Power {
		e := PadEntry{
			ID:   PowerIdent(side, port, seen[port]),
			Pin:  PowerPin(side, port, p.SharedPins),
			Role: port,
		}
		if p.FlatSupplyNames {
			e.ID = SupplyIdent(port, int(side)*perSide[port]+seen[port])
		}
		if p.SignalPinsOnly {
			e.Pin = ""
		}
		out = append(out, e)
		seen[port]++
	}
	for i := p.Split; i < p.Signals; i++ {
		out = append(out, signal(i))
	}
	return out
}

// =============================================================================
// Corners
// =============================================================================

// Corner positions, in the order [PlaceCorners] returns them.
const (
	cornerSW = iota
	cornerNW
	cornerSE
	cornerNE
)

var cornerNames = [4]string{"sw", "nw", "se", "ne"}

// PlaceCorners places the corner cell once at each die corner, rotated so
// its outer edges follow the die boundary. The result is ordered sw, nw,
// se, ne.
func PlaceCorners(cat *catalog.Catalog, die Die, role string) ([]Instance, error) {
	cell, err := cat.Lookup(role)
	if err != nil {
		return nil, err
	}
	w, h := cell.Width, cell.Height
	W, H := die.Width, die.Height

	boxes := [4]geom.Rect{
		cornerSW: geom.R(0, 0, w, h),
		cornerNW: geom.R(0, H-w, h, H),
		cornerSE: geom.R(W-h, 0, W, w),
		cornerNE: geom.R(W-w, H-h, W, H),
	}
	orients := [4]geom.Orientation{geom.OrientS, geom.OrientW, geom.OrientE, geom.OrientN}

	out := make([]Instance, 4)
	for i := range out {
		out[i] = Instance{
			ID:     CornerIdent(cornerNames[i]),
			Role:   cell.Role,
			Cell:   cell.TechName,
			Class:  cell.Class,
			Kind:   KindCorner,
			Box:    boxes[i],
			Orient: orients[i],
		}
	}
	return out, nil
}

// sideCorners returns the corners at the low and high end of side's edge.
func sideCorners(side geom.Side) (lo, hi int) {
	switch side {
	case geom.West:
		return cornerSW, cornerNW
	case geom.North:
		return cornerNW, cornerNE
	case geom.East:
		return cornerSE, cornerNE
	default:
		return cornerSW, cornerSE
	}
}

// depthOn returns how far box reaches into the die from side's boundary.
func depthOn(side geom.Side, box geom.Rect, die Die) geom.Unit {
	switch side {
	case geom.West:
		return box.X1
	case geom.East:
		return die.Width - box.X0
	case geom.North:
		return die.Height - box.Y0
	default:
		return box.Y1
	}
}

// =============================================================================
// Sides
// =============================================================================

// SideSummary records the spacing computation of one side.
type SideSummary struct {
	Side      geom.Side
	Length    geom.Unit   // edge length
	Start     geom.Unit   // along-edge extent of the low-end corner
	End       geom.Unit   // along-edge extent of the high-end corner
	PadExtent geom.Unit   // sum of pad widths
	Spacing   geom.Unit   // gap between consecutive pads
	Pads      int         // pads placed
	Fillers   int         // fillers placed
	Depth     geom.Unit   // deepest ring cell on this side
	Gaps      []geom.Rect // strips closed by fillers, in edge order
}

// SideResult is everything placed on one side.
type SideResult struct {
	Summary SideSummary
	Pads    []Instance
	Pins    []Pin
	Fillers []Instance
	Counts  map[string]int
}

// LayoutSide places the pads of one side with uniform spacing between the
// two corners, one pin per pad that names one, and tiles every remaining
// gap with fillers.
//
// The spacing is (edge - corners - pads) / (pads + 1) rounded down to the
// die grid, so the last gap absorbs the rounding remainder. When the pads do
// not fit an [InsufficientSpaceError] is returned before anything is
// placed. corners must be the four corners returned by [PlaceCorners].
func LayoutSide(cat *catalog.Catalog, die Die, side geom.Side, pads []PadEntry, corners []Instance, pins PinPolicy, fillers []catalog.Cell) (SideResult, error) {
	if len(corners) != 4 {
		return SideResult{}, invalidPolicy("%s side needs 4 corners, got %d", side, len(corners))
	}
	W, H := die.Width, die.Height
	length := side.Length(W, H)

	loCorner, hiCorner := sideCorners(side)
	_, start := side.AlongInterval(corners[loCorner].Box)
	hiLo, _ := side.AlongInterval(corners[hiCorner].Box)
	end := length - hiLo

	cells := make([]catalog.Cell, len(pads))
	var total geom.Unit
	for i, p := range pads {
		cell, err := cat.Lookup(p.Role)
		if err != nil {
			return SideResult{}, err
		}
		cells[i] = cell
		total += cell.Width
	}

	available := length - start - end
	if available < total {
		return SideResult{}, &InsufficientSpaceError{Side: side, Pads: len(pads), Required: total, Available: available}
	}
	spacing, err := geom.SnapRatio(available-total, geom.Unit(len(pads)+1), die.Grid)
	if err != nil {
		return SideResult{}, err
	}

	res := SideResult{
		Summary: SideSummary{
			Side:      side,
			Length:    length,
			Start:     start,
			End:       end,
			PadExtent: total,
			Spacing:   spacing,
			Depth:     max(depthOn(side, corners[loCorner].Box, die), depthOn(side, corners[hiCorner].Box, die)),
		},
		Counts: make(map[string]int),
	}

	var gaps [][2]geom.Unit
	gapLo := start
	offset := start + spacing
	for i, p := range pads {
		cell := cells[i]
		box := geom.EdgeRect(side, offset, 0, cell.Width, cell.Height, W, H)
		res.Pads = append(res.Pads, Instance{
			ID:     p.ID,
			Role:   cell.Role,
			Cell:   cell.TechName,
			Class:  cell.Class,
			Kind:   KindPad,
			Side:   side,
			Box:    box,
			Orient: side.Orientation(),
		})

		if p.Pin != "" {
			pinBox := geom.EdgeRect(side, offset+pins.Along, pins.Depth, pins.Size, pins.Size, W, H)
			if !box.Contains(pinBox) {
				return SideResult{}, invalidPolicy("pin %s at %v falls outside pad %s at %v", p.Pin, pinBox, p.ID, box)
			}
			res.Pins = append(res.Pins, Pin{
				Name:      p.Pin,
				Owner:     p.ID,
				Side:      side,
				Box:       pinBox,
				Layer:     pins.Layer,
				Direction: DirInOut,
				Use:       pinUse(cell.Class),
			})
		}

		gaps = append(gaps, [2]geom.Unit{gapLo, offset})
		res.Summary.Depth = max(res.Summary.Depth, depthOn(side, box, die))
		gapLo = offset + cell.Width
		offset += cell.Width + spacing
	}
	gaps = append(gaps, [2]geom.Unit{gapLo, length - end})
	res.Summary.Pads = len(res.Pads)

	var depth geom.Unit
	for _, f := range fillers {
		depth = max(depth, f.Height)
	}
	for g, gap := range gaps {
		strip := geom.EdgeRect(side, gap[0], 0, gap[1]-gap[0], depth, W, H)
		res.Summary.Gaps = append(res.Summary.Gaps, strip)
		if gap[1] == gap[0] {
			continue
		}
		span, err := Tile(side, strip, fillers, fillerPrefix(side, g))
		if err != nil {
			return SideResult{}, err
		}
		res.Fillers = append(res.Fillers, span.Fillers...)
		mergeCounts(res.Counts, span.Counts)
		for _, f := range span.Fillers {
			res.Summary.Depth = max(res.Summary.Depth, depthOn(side, f.Box, die))
		}
	}
	res.Summary.Fillers = len(res.Fillers)
	return res, nil
}

// mergeCounts adds src into dst.
func mergeCounts(dst, src map[string]int) {
	for role, n := range src {
		dst[role] += n
	}
}

// sortAlong orders perimeter instances by their position along side.
func sortAlong(side geom.Side, insts []Instance) {
	slices.SortStableFunc(insts, func(a, b Instance) int {
		alo, _ := side.AlongInterval(a.Box)
		blo, _ := side.AlongInterval(b.Box)
		return cmp.Compare(alo, blo)
	})
}
