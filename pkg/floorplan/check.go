package floorplan

import (
	"cmp"
	"slices"
)

// CheckOverlaps verifies that no two instances have overlapping bounding
// boxes. Boxes that only touch do not overlap. Instances are swept in order
// of their left edge, so the reported pair is the same for the same input.
func CheckOverlaps(instances []Instance) error {
	order := make([]int, len(instances))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Or(
			cmp.Compare(instances[a].Box.X0, instances[b].Box.X0),
			cmp.Compare(instances[a].Box.Y0, instances[b].Box.Y0),
		)
	})

	var active []int
	for _, i := range order {
		cur := instances[i].Box
		// Drop boxes that end at or before the sweep line.
		kept := active[:0]
		for _, j := range active {
			if instances[j].Box.X1 > cur.X0 {
				kept = append(kept, j)
			}
		}
		active = kept

		for _, j := range active {
			if cur.Overlaps(instances[j].Box) {
				a, b := instances[j], instances[i]
				return &OverlapError{A: a.ID, B: b.ID, ABox: a.Box, BBox: b.Box}
			}
		}
		active = append(active, i)
	}
	return nil
}
