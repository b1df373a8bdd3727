// Package hierarchy renders the instance name hierarchy of a floorplan as
// a Graphviz diagram.
//
// # Overview
//
// Every dotted instance name is a path through a tree: padring.we_pads[0]
// .i0.padio[3].i0.gpio contributes six nodes. [ToDOT] merges the paths of
// all instances into one left-to-right tree, which makes the generated
// naming scheme easy to review.
//
//	dot := hierarchy.ToDOT(layout, hierarchy.Options{Collapse: true})
//	svg, err := hierarchy.Render(ctx, dot, hierarchy.ImageSVG, 1)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Collapse: Merge indexed siblings (fill[0], fill[1], ...) into one node
//     labelled with the index range. Without it the fillers of a full ring
//     produce several hundred leaves.
//   - Detailed: Label leaves with their cell name.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package hierarchy
