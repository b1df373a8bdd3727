package pipeline

import (
	"reflect"
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"def", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"hierarchy-svg", false},
		{"hierarchy-pdf", false},
		{"hierarchy-png", false},
		{"hierarchy-gif", true},
		{"invalid", true},
		{"DEF", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "def"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"def", []string{"def"}, false},
		{"def,svg, dot", []string{"def", "svg", "dot"}, false},
		{"def,,def", []string{"def"}, false},
		{"", nil, false},
		{"def,gds", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatNames(); len(got) != len(ValidFormats) || got[0] != "def" {
		t.Errorf("FormatNames() = %v", got)
	}
	if got := ContentType(FormatHierarchySVG); got != "image/svg+xml" {
		t.Errorf("ContentType(hierarchy-svg) = %s", got)
	}
	if got := ContentType(FormatDEF); got != "text/plain; charset=utf-8" {
		t.Errorf("ContentType(def) = %s", got)
	}
	if got := Extension(FormatHierarchySVG); got != "hierarchy.svg" {
		t.Errorf("Extension(hierarchy-svg) = %s", got)
	}
	if got := Extension(FormatHierarchyPNG); got != "hierarchy.png" {
		t.Errorf("Extension(hierarchy-png) = %s", got)
	}
	if got := ContentType(FormatHierarchyPDF); got != "application/pdf" {
		t.Errorf("ContentType(hierarchy-pdf) = %s", got)
	}
	if got := Extension(FormatDEF); got != "def" {
		t.Errorf("Extension(def) = %s", got)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatJSON}) {
		t.Errorf("Formats should be [json], got %v", opts.Formats)
	}
	if opts.Design != DefaultDesign {
		t.Errorf("Design should be %s, got %s", DefaultDesign, opts.Design)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %d, got %d", DefaultWidth, opts.Width)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}

	// Second call should be idempotent
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if !reflect.DeepEqual(before, opts) {
		t.Error("ValidateAndSetDefaults() is not idempotent")
	}

	bad := Options{Formats: []string{"gds"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("Invalid format should fail")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{Design: "chip", Width: 800, Pins: true}
	b := a
	b.Design = "other"

	// Design only matters for DEF.
	if a.ArtifactKeyOpts(FormatSVG) != b.ArtifactKeyOpts(FormatSVG) {
		t.Error("design name should not change the SVG key")
	}
	if a.ArtifactKeyOpts(FormatDEF) == b.ArtifactKeyOpts(FormatDEF) {
		t.Error("design name should change the DEF key")
	}

	c := a
	c.Width = 1200
	if a.ArtifactKeyOpts(FormatSVG) == c.ArtifactKeyOpts(FormatSVG) {
		t.Error("width should change the SVG key")
	}

	d := a
	d.Expand = true
	if a.ArtifactKeyOpts(FormatDOT) == d.ArtifactKeyOpts(FormatDOT) {
		t.Error("expand should change the DOT key")
	}
}
