package hierarchy

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/padring/pkg/floorplan"
	"github.com/matzehuels/padring/pkg/render"
)

func testLayout() *floorplan.Layout {
	fill := func(g, k int) floorplan.Instance {
		return floorplan.Instance{
			ID:   floorplan.NewIdent(floorplan.At("we_gap", g), floorplan.At("fill", k)),
			Cell: "io_fill",
			Kind: floorplan.KindFiller,
		}
	}
	return &floorplan.Layout{Instances: []floorplan.Instance{
		{ID: floorplan.CornerIdent("sw"), Cell: "io_corner", Kind: floorplan.KindCorner},
		{ID: floorplan.SignalIdent(0, 0, "gpio"), Cell: "io_gpio", Kind: floorplan.KindPad},
		{ID: floorplan.SignalIdent(0, 1, "gpio"), Cell: "io_gpio", Kind: floorplan.KindPad},
		fill(0, 0), fill(0, 1), fill(0, 2),
	}}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"corner_sw" [label="corner_sw", fillcolor=lightgrey];`) {
		t.Error("ToDOT() output missing corner leaf")
	}
	if !strings.Contains(dot, `"padring" -> "padring.we_pads[0]";`) {
		t.Error("ToDOT() output missing hierarchy edge")
	}
	if !strings.Contains(dot, `"we_gap[0]" -> "we_gap[0].fill[2]";`) {
		t.Error("ToDOT() output missing filler edge")
	}
	if got := strings.Count(dot, `label="fill[`); got != 3 {
		t.Errorf("ToDOT() filler nodes = %d, want 3", got)
	}
}

func TestToDOT_Collapse(t *testing.T) {
	dot := ToDOT(testLayout(), Options{Collapse: true})

	if !strings.Contains(dot, `label="fill[0..2]"`) {
		t.Errorf("ToDOT() collapsed fillers missing range label:\n%s", dot)
	}
	if !strings.Contains(dot, `label="padio[0..1]"`) {
		t.Errorf("ToDOT() collapsed pads missing range label:\n%s", dot)
	}
	if got := strings.Count(dot, `label="fill[`); got != 1 {
		t.Errorf("ToDOT() collapsed filler nodes = %d, want 1", got)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testLayout(), Options{Detailed: true})

	if !strings.Contains(dot, `label="gpio\nio_gpio"`) {
		t.Error("ToDOT() detailed output missing cell name on leaf")
	}
	if strings.Contains(dot, `label="i0\n`) {
		t.Error("ToDOT() detailed output labelled an inner node")
	}
}

func TestFitViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "prolog kept",
			svg:  `<?xml version="1.0"?>\n<svg width="8pt" viewBox="0.00 0.00 8.00 4.00">x</svg>`,
			want: `<?xml version="1.0"?>\n<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8.00 4.00" width="8" height="4">x</svg>`,
		},
		{
			name: "malformed viewBox",
			svg:  `<svg viewBox="0 0 abc 10">content</svg>`,
			want: `<svg viewBox="0 0 abc 10">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fitViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("fitViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	dot := ToDOT(testLayout(), Options{Collapse: true})
	svg, err := Render(context.Background(), dot, ImageSVG, 1)
	if err != nil {
		t.Fatalf("Render(svg) error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("Render(svg) output missing <svg> tag")
	}
}

func TestRenderConverted(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	dot := ToDOT(testLayout(), Options{Collapse: true})

	tests := []struct {
		format string
		magic  string
	}{
		{ImagePDF, "%PDF"},
		{ImagePNG, "\x89PNG"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Render(context.Background(), dot, tt.format, 2)
			if err != nil {
				t.Fatalf("Render(%s) error: %v", tt.format, err)
			}
			if !strings.HasPrefix(string(data), tt.magic) {
				t.Errorf("Render(%s) output does not start with %q", tt.format, tt.magic)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		dot    string
		format string
	}{
		{"invalid dot", `not valid DOT {{{`, ImageSVG},
		{"unknown format", "digraph G {}", "gif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render(context.Background(), tt.dot, tt.format, 1); err == nil {
				t.Error("Render() expected error")
			}
		})
	}
}
