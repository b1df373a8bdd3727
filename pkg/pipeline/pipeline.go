// Package pipeline provides the config → layout → render pipeline for padring.
//
// This package implements the complete pipeline that is used by the CLI and
// the HTTP server. By centralizing this logic, both entry points cache,
// log and report errors the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Build the floorplan described by a config into a layout document
//  2. Render: Generate output in various formats (DEF, SVG, DOT, JSON, ...)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layouts are cached by config hash and artifacts by layout hash and render
// settings, so rerunning an unchanged config is a pair of cache reads.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, cfg, pipeline.Options{
//	    Formats: []string{"def", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	def := result.Artifacts["def"]
//
// Run individual stages:
//
//	// Layout only
//	doc, err := runner.ComputeLayout(ctx, cfg, opts)
//
//	// Render an existing layout document
//	artifacts, err := runner.Render(ctx, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/padring/pkg/cache"
	"github.com/matzehuels/padring/pkg/layoutio"
	"github.com/matzehuels/padring/pkg/render/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDesign is the DEF design name.
	DefaultDesign = "padring"

	// DefaultWidth is the default SVG preview width in pixels.
	DefaultWidth = svg.DefaultWidth

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatJSON         = "json"
	FormatDEF          = "def"
	FormatSVG          = "svg"
	FormatPNG          = "png"
	FormatPDF          = "pdf"
	FormatDOT          = "dot"
	FormatHierarchySVG = "hierarchy-svg"
	FormatHierarchyPDF = "hierarchy-pdf"
	FormatHierarchyPNG = "hierarchy-png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:         true,
	FormatDEF:          true,
	FormatSVG:          true,
	FormatPNG:          true,
	FormatPDF:          true,
	FormatDOT:          true,
	FormatHierarchySVG: true,
	FormatHierarchyPDF: true,
	FormatHierarchyPNG: true,
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatSVG, FormatHierarchySVG:
		return "image/svg+xml"
	case FormatPNG, FormatHierarchyPNG:
		return "image/png"
	case FormatPDF, FormatHierarchyPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "text/plain; charset=utf-8"
}

// Extension returns the file extension of a format, without the dot.
func Extension(format string) string {
	if image, ok := strings.CutPrefix(format, "hierarchy-"); ok {
		return "hierarchy." + image
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the render and caching settings of a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Render options
	Formats   []string `json:"formats,omitempty"`
	Design    string   `json:"design,omitempty"`     // DEF design name
	Width     int      `json:"width,omitempty"`      // SVG preview width
	Pins      bool     `json:"pins,omitempty"`       // draw pins in the SVG preview
	Labels    bool     `json:"labels,omitempty"`     // label cells in the SVG preview
	NoFillers bool     `json:"no_fillers,omitempty"` // omit fillers from the SVG preview
	Expand    bool     `json:"expand,omitempty"`     // do not collapse indexed siblings in the hierarchy

	// Refresh ignores cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the computed layout.
	Document *layoutio.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Corners    int
	Pads       int
	Fillers    int
	Macros     int
	Pins       int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list and validates it.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f == "" {
			continue
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if err := ValidateFormats(out); err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the formats and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Design == "" {
		o.Design = DefaultDesign
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Only the
// settings that change the bytes of format are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDEF:
		k.Design = o.Design
	case FormatSVG, FormatPNG, FormatPDF:
		k.Pins = o.Pins
		k.Labels = o.Labels
		k.Fillers = !o.NoFillers
		k.Width = o.Width
	case FormatDOT, FormatHierarchySVG, FormatHierarchyPDF, FormatHierarchyPNG:
		k.Collapse = !o.Expand
	}
	return k
}
