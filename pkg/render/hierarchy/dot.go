package hierarchy

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/padring/pkg/floorplan"
	"github.com/matzehuels/padring/pkg/render"
)

// Options configures hierarchy diagram rendering.
type Options struct {
	// Collapse merges indexed siblings that share a name into one node.
	Collapse bool

	// Detailed adds the cell name to leaf labels.
	Detailed bool
}

type node struct {
	id       string
	name     string
	lo, hi   int // index range, -1 if unindexed
	cell     string
	children []*node
	byKey    map[string]*node
}

// ToDOT converts the instance names of l to Graphviz DOT format.
// The resulting DOT string can be turned into an image with [Render].
func ToDOT(l *floorplan.Layout, opts Options) string {
	root := buildTree(l, opts.Collapse)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.1;\n")
	buf.WriteString("\n")

	var edges []string
	var walk func(n *node)
	walk = func(n *node) {
		for _, c := range n.children {
			attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, opts.Detailed))}
			if len(c.children) == 0 {
				attrs = append(attrs, "fillcolor=lightgrey")
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", c.id, strings.Join(attrs, ", "))
			if n.id != "" {
				edges = append(edges, fmt.Sprintf("  %q -> %q;\n", n.id, c.id))
			}
			walk(c)
		}
	}
	walk(root)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func buildTree(l *floorplan.Layout, collapse bool) *node {
	root := &node{byKey: make(map[string]*node)}
	for _, inst := range l.Instances {
		n := root
		for _, seg := range inst.ID {
			key := seg.String()
			if collapse && seg.Index >= 0 {
				key = seg.Name + "[*]"
			}
			c, ok := n.byKey[key]
			if !ok {
				id := key
				if n.id != "" {
					id = n.id + "." + key
				}
				c = &node{id: id, name: seg.Name, lo: seg.Index, hi: seg.Index, byKey: make(map[string]*node)}
				n.byKey[key] = c
				n.children = append(n.children, c)
			}
			c.lo, c.hi = min(c.lo, seg.Index), max(c.hi, seg.Index)
			n = c
		}
		n.cell = inst.Cell
	}
	return root
}

func fmtLabel(n *node, detailed bool) string {
	label := n.name
	switch {
	case n.lo < 0:
	case n.lo == n.hi:
		label += "[" + strconv.Itoa(n.lo) + "]"
	default:
		label += fmt.Sprintf("[%d..%d]", n.lo, n.hi)
	}
	if detailed && len(n.children) == 0 && n.cell != "" {
		label += "\n" + n.cell
	}
	return label
}

// Image formats accepted by [Render].
const (
	ImageSVG = "svg"
	ImagePDF = "pdf"
	ImagePNG = "png"
)

// Render lays out dot with Graphviz and returns the diagram in format.
// PDF and PNG are converted from the SVG with [render.ConvertContext]; scale
// only applies to PNG.
func Render(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case ImageSVG, ImagePDF, ImagePNG:
	default:
		return nil, fmt.Errorf("hierarchy: unsupported image format %q", format)
	}

	svg, err := graphvizSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case ImagePDF:
		return render.ConvertContext(ctx, svg, "pdf")
	case ImagePNG:
		return render.ConvertContext(ctx, svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
	}
	return svg, nil
}

func graphvizSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("hierarchy: start graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("hierarchy: parse dot: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("hierarchy: layout: %w", err)
	}
	return fitViewBox(buf.Bytes()), nil
}

// fitViewBox replaces the root <svg> tag with one whose viewBox starts at
// the origin and whose width and height equal the viewBox size. Graphviz
// emits pt units and a translated origin, which browsers scale unevenly.
func fitViewBox(svg []byte) []byte {
	start := bytes.Index(svg, []byte("<svg"))
	if start < 0 {
		return svg
	}
	end := bytes.IndexByte(svg[start:], '>')
	if end < 0 {
		return svg
	}
	end += start + 1

	tag := string(svg[start:end])
	_, rest, ok := strings.Cut(tag, `viewBox="`)
	if !ok {
		return svg
	}
	box, _, ok := strings.Cut(rest, `"`)
	if !ok {
		return svg
	}
	fields := strings.Fields(box)
	if len(fields) != 4 {
		return svg
	}
	w, errW := strconv.ParseFloat(fields[2], 64)
	h, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	out := make([]byte, 0, len(svg)-len(tag)+len(root))
	out = append(out, svg[:start]...)
	out = append(out, root...)
	return append(out, svg[end:]...)
}
