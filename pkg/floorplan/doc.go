// Package floorplan computes the physical floorplan of an IC die.
//
// A floorplan is built in one deterministic pass from a technology
// [catalog.Catalog] and a [Policy]:
//
//  1. [SizeDie] derives the die rectangle and the core area from the standard
//     cell grid, the margin multiplier and an optional macro reservation.
//  2. [PlaceCorners] puts one corner cell at each die corner.
//  3. [LayoutSide] distributes each side's pads with uniform spacing, places
//     a pin on every pad that names one and closes every remaining gap with
//     [Tile].
//  4. [PlaceMacros] positions hard macros inside the ring.
//  5. [CheckOverlaps] verifies that no two placed instances overlap.
//
// [Build] runs all five steps and returns either a complete [Layout] or an
// error; there is no partial result.
//
// # Edge Coordinates
//
// All perimeter math is written once, against a position measured along a
// die edge and a depth measured inward from it. [geom.EdgeToAbsolute] turns
// those into absolute coordinates for each [geom.Side], so the four sides
// share a single code path.
//
// # Errors
//
// Every failure is a configuration error and carries the side or instance
// involved plus the quantities that did not fit. The typed errors
// ([DieSizingError], [InsufficientSpaceError], [UnfillableGapError],
// [MacroOverlapError], [OverlapError]) implement Code so callers can branch
// with [errors.Is] from pkg/errors.
//
// # Identifiers
//
// Instance names are structured [Ident] values. They print in dotted form
// (padring.we_pads[0].i0.padio[3].i0.gpio) and are escaped for DEF only at
// the serialization boundary via [Ident.DEF].
package floorplan
