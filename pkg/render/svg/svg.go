package svg

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/padring/pkg/catalog"
	"github.com/matzehuels/padring/pkg/floorplan"
	"github.com/matzehuels/padring/pkg/geom"
)

// DefaultWidth is the image width in pixels when no [WithWidth] is given.
const DefaultWidth = 1000

const style = `
    .die { fill: #fafafa; stroke: #333; stroke-width: 2; }
    .core { fill: none; stroke: #4a90d9; stroke-dasharray: 6 4; }
    .ring { fill: none; stroke: #999; stroke-dasharray: 2 3; }
    .cell { stroke: #333; stroke-width: 0.5; }
    .pin { fill: #d0021b; }
    .label { font-family: monospace; font-size: 9px; fill: #222; }`

var classFill = map[catalog.Class]string{
	catalog.ClassSignal: "#7ed321",
	catalog.ClassPower:  "#f5a623",
	catalog.ClassGround: "#8b572a",
	catalog.ClassCorner: "#9013fe",
	catalog.ClassFiller: "#e0e0e0",
	catalog.ClassMacro:  "#4a90d9",
	catalog.ClassBlock:  "#b8e986",
}

type Option func(*renderer)

type renderer struct {
	width   float64
	pins    bool
	fillers bool
	labels  bool
}

func WithWidth(px int) Option { return func(r *renderer) { r.width = float64(px) } }
func WithPins() Option        { return func(r *renderer) { r.pins = true } }
func WithLabels() Option      { return func(r *renderer) { r.labels = true } }
func WithoutFillers() Option  { return func(r *renderer) { r.fillers = false } }

// Render returns the SVG preview of l.
func Render(l *floorplan.Layout, opts ...Option) []byte {
	r := renderer{width: DefaultWidth, fillers: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 {
		r.width = DefaultWidth
	}

	scale := r.width / float64(l.Die.Width)
	height := float64(l.Die.Height) * scale
	t := transform{scale: scale, height: height}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, height, r.width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", style)

	t.rect(&buf, geom.R(0, 0, l.Die.Width, l.Die.Height), `class="die"`)
	t.rect(&buf, l.Die.Core, `class="core"`)
	t.rect(&buf, l.Ring, `class="ring"`)

	for _, inst := range l.Instances {
		if inst.Kind == floorplan.KindFiller && !r.fillers {
			continue
		}
		attrs := fmt.Sprintf(`class="cell %s" fill="%s" data-cell="%s"`, inst.Kind, fillFor(inst.Class), html.EscapeString(inst.Cell))
		t.rectTitled(&buf, inst.Box, attrs, inst.ID.String())
	}

	if r.pins {
		for _, p := range l.Pins {
			t.rectTitled(&buf, p.Box, `class="pin"`, p.Name)
		}
	}

	if r.labels {
		for _, inst := range l.Instances {
			if inst.Kind == floorplan.KindFiller {
				continue
			}
			t.label(&buf, inst)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func fillFor(c catalog.Class) string {
	if f, ok := classFill[c]; ok {
		return f
	}
	return "#cccccc"
}

// transform maps die coordinates to image coordinates with y flipped.
type transform struct {
	scale  float64
	height float64
}

func (t transform) box(b geom.Rect) (x, y, w, h float64) {
	x = float64(b.X0) * t.scale
	y = t.height - float64(b.Y1)*t.scale
	return x, y, float64(b.Width()) * t.scale, float64(b.Height()) * t.scale
}

func (t transform) rect(buf *bytes.Buffer, b geom.Rect, attrs string) {
	x, y, w, h := t.box(b)
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>`+"\n", x, y, w, h, attrs)
}

func (t transform) rectTitled(buf *bytes.Buffer, b geom.Rect, attrs, title string) {
	x, y, w, h := t.box(b)
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s><title>%s</title></rect>`+"\n",
		x, y, w, h, attrs, html.EscapeString(title))
}

func (t transform) label(buf *bytes.Buffer, inst floorplan.Instance) {
	x, y, w, h := t.box(inst.Box)
	cx, cy := x+w/2, y+h/2
	rot := 0
	if inst.OnPerimeter() && !inst.Side.Horizontal() {
		rot = -90
	}
	fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" transform="rotate(%d %.2f %.2f)">%s</text>`+"\n",
		cx, cy, rot, cx, cy, html.EscapeString(inst.Role))
}
