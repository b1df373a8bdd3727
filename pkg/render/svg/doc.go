// Package svg renders a floorplan preview as SVG.
//
// The die is drawn with y pointing up, scaled so the die fits the requested
// width. Cells are coloured by class; the core area and the ring interior
// are drawn as dashed outlines.
//
//	out := svg.Render(layout, svg.WithWidth(1200), svg.WithPins(), svg.WithLabels())
//
// Fillers are drawn by default since they make the pad spacing visible;
// [WithoutFillers] drops them for a lighter file.
package svg
