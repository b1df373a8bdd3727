// Package render turns computed floorplans into files other tools read.
//
// # Overview
//
// Each subpackage renders a [floorplan.Layout] into one output format:
//
//   - DEF placement for place-and-route tools (in [def] subpackage)
//   - SVG preview of the die (in [svg] subpackage)
//   - Instance hierarchy diagrams via Graphviz (in [hierarchy] subpackage)
//
// The JSON layout document lives in the layoutio package since it is also
// the import format.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They are used for both the
// die preview and the hierarchy diagram.
//
//	preview := svg.Render(layout, svg.WithPins())
//	pdf, err := render.ToPDF(preview)
//	png, err := render.ToPNG(preview, 2.0)  // 2x scale
//
// [floorplan.Layout]: github.com/matzehuels/padring/pkg/floorplan#Layout
// [def]: github.com/matzehuels/padring/pkg/render/def
// [svg]: github.com/matzehuels/padring/pkg/render/svg
// [hierarchy]: github.com/matzehuels/padring/pkg/render/hierarchy
package render
