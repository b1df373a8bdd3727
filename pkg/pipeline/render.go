package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/padring/pkg/layoutio"
	"github.com/matzehuels/padring/pkg/render"
	"github.com/matzehuels/padring/pkg/render/def"
	"github.com/matzehuels/padring/pkg/render/hierarchy"
	"github.com/matzehuels/padring/pkg/render/svg"
)

// Render generates output artifacts in the requested formats.
// opts must have been passed through ValidateAndSetDefaults. ctx bounds the
// Graphviz layout and any rsvg-convert process.
func Render(ctx context.Context, doc *layoutio.Document, opts Options) (map[string][]byte, error) {
	l, err := doc.Layout()
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var preview []byte
	svgPreview := func() []byte {
		if preview == nil {
			preview = svg.Render(l, buildSVGOptions(opts)...)
		}
		return preview
	}
	var dot string
	hierarchyDOT := func() string {
		if dot == "" {
			dot = hierarchy.ToDOT(l, hierarchy.Options{Collapse: !opts.Expand, Detailed: true})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = layoutio.MarshalJSON(doc)
		case FormatDEF:
			data, err = def.Render(l, def.Options{Design: opts.Design, DBUnits: doc.DBUnits})
		case FormatSVG:
			data = svgPreview()
		case FormatPNG:
			data, err = render.ToPNG(svgPreview(), DefaultScale)
		case FormatPDF:
			data, err = render.ToPDF(svgPreview())
		case FormatDOT:
			data = []byte(hierarchyDOT())
		case FormatHierarchySVG:
			data, err = hierarchy.Render(ctx, hierarchyDOT(), hierarchy.ImageSVG, DefaultScale)
		case FormatHierarchyPDF:
			data, err = hierarchy.Render(ctx, hierarchyDOT(), hierarchy.ImagePDF, DefaultScale)
		case FormatHierarchyPNG:
			data, err = hierarchy.Render(ctx, hierarchyDOT(), hierarchy.ImagePNG, DefaultScale)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG preview options.
func buildSVGOptions(opts Options) []svg.Option {
	svgOpts := []svg.Option{svg.WithWidth(opts.Width)}
	if opts.Pins {
		svgOpts = append(svgOpts, svg.WithPins())
	}
	if opts.Labels {
		svgOpts = append(svgOpts, svg.WithLabels())
	}
	if opts.NoFillers {
		svgOpts = append(svgOpts, svg.WithoutFillers())
	}
	return svgOpts
}
