package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padring/pkg/pipeline"
)

// layoutCommand creates the layout command for building a floorplan.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "layout [config.toml]",
		Short: "Build a floorplan from a config file",
		Long: `Build a floorplan from a config file.

The layout command sizes the die, places the pad ring, fillers, macros and
pins, and writes a layout.json file that can be rendered with 'render' or
browsed with 'inspect'. Without a config file the built-in sky130 floorplan
is used.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runLayout(cmd.Context(), input, output, noCache, refresh, quiet)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <config>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if the layout is cached")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the side summary")

	return cmd
}

// runLayout loads the config, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache, refresh, quiet bool) error {
	cfg, err := loadConfig(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, cfg, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Refresh: refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := layoutOutputPath(output, input)
	if err := writeFile(outputPath, result.Artifacts[pipeline.FormatJSON]); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if outputPath == "-" {
		return nil
	}

	doc := result.Document
	printSuccess("Layout complete")
	printFile(outputPath)
	printKeyValue("Die", fmt.Sprintf("%s x %s µm", microns(doc.Die.Width, doc.DBUnits), microns(doc.Die.Height, doc.DBUnits)))
	printStats(result.Stats, result.CacheInfo.LayoutHit)
	if !quiet {
		fmt.Println(sideTable(doc))
	}
	printNewline()
	printNextStep("Render", "padring render "+outputPath+" -f def,svg")

	return nil
}
