package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padring/pkg/layoutio"
	"github.com/matzehuels/padring/pkg/pipeline"
)

// renderCommand creates the render command for producing artifacts from a
// layout file.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a layout to DEF, SVG, PNG, PDF or DOT",
		Long: `Render a layout to DEF, SVG, PNG, PDF or DOT.

The render command takes a layout.json file (produced by 'layout') and writes
one file per requested format next to it, or under the base path given by
--output. PNG and PDF need rsvg-convert on the PATH.

Formats: ` + strings.Join(pipeline.FormatNames(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := pipeline.ParseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.Formats = formats
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatDEF, "output format(s), comma-separated")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if artifacts are cached")

	cmd.Flags().StringVar(&opts.Design, "design", pipeline.DefaultDesign, "DEF design name")
	cmd.Flags().IntVar(&opts.Width, "width", pipeline.DefaultWidth, "SVG width in pixels")
	cmd.Flags().BoolVar(&opts.Pins, "pins", false, "draw pins (svg, png, pdf)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label pads and macros (svg, png, pdf)")
	cmd.Flags().BoolVar(&opts.NoFillers, "no-fillers", false, "omit filler cells (svg, png, pdf)")
	cmd.Flags().BoolVar(&opts.Expand, "expand", false, "do not collapse indexed instances (dot, hierarchy-*)")

	return cmd
}

// runRender loads the layout and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := layoutio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	paths := artifactPaths(opts.Formats, input, output)
	for _, format := range opts.Formats {
		if err := writeFile(paths[format], artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}

	if output == "-" {
		return nil
	}
	status := iconFresh
	if cacheHit {
		status = iconCached
	}
	printSuccess("Rendered %d format(s) %s", len(opts.Formats), StyleDim.Render("("+status+")"))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}

// artifactPaths maps each format to its output file. A single format with an
// explicit output file is written there as-is; otherwise files are named
// <base>.<ext>.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && (output == "-" || filepath.Ext(output) != "") {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	return paths
}
