// Package geom provides the integer geometry used by the floorplanner.
//
// All lengths are [Unit] values (database units, typically nanometres at
// 1000 units per micron). Working in integers keeps every coordinate exact,
// which is what makes two runs over the same input bit-identical.
//
// # Rectangles
//
// [Rect] is an axis-aligned box with half-open extents. Two rectangles that
// merely share an edge do not overlap:
//
//	a := geom.R(0, 0, 10, 10)
//	b := geom.R(10, 0, 20, 10)
//	a.Overlaps(b) // false
//
// # Sides
//
// [Side] names one of the four die edges. [EdgeToAbsolute] is the only place
// that knows how an offset along an edge and a depth into the die map to
// absolute coordinates; everything that places cells along the perimeter
// goes through it (or through [EdgeRect], which is built on it).
//
// # Snapping
//
// [Snap] always rounds toward negative infinity. Rounding down means a
// snapped spacing can only shrink the total extent of a row of cells, so
// cumulative offsets never push a cell past the end of its edge.
package geom
