package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padring/pkg/config"
	"github.com/matzehuels/padring/pkg/pipeline"
)

// initCommand creates the init command, which writes a built-in config.
func (c *CLI) initCommand() *cobra.Command {
	var (
		force  bool
		design string
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a built-in floorplan config",
		Long: `Write a built-in floorplan config.

The written file describes one of the built-in sky130 floorplans and is a
starting point for your own:

  core  the core die with the sram placed north-east of the core area
  top   the top-level die: pad ring plus the asic_core block

Use - to print it instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			return c.runInit(path, design, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVar(&design, "design", "core", "built-in floorplan (core, top)")
	return cmd
}

func (c *CLI) runInit(path, design string, force bool) error {
	cfg, err := config.Preset(design)
	if err != nil {
		return err
	}
	if path != "-" && !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := writeFile(path, []byte(cfg.String())); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if path == "-" {
		return nil
	}
	c.Logger.Debug("wrote config", "design", design, "path", path)
	printSuccess("Wrote %s config", design)
	printFile(path)
	printNewline()
	printNextStep("Build", "padring layout "+path)
	return nil
}

// checkCommand creates the check command, which validates a config by
// building its layout without writing anything.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [config.toml]",
		Short: "Validate a config and its layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runCheck(cmd.Context(), input)
		},
	}
}

func (c *CLI) runCheck(ctx context.Context, input string) error {
	prog := newProgress(c.Logger)
	cfg, err := loadConfig(input)
	if err != nil {
		return err
	}
	doc, err := pipeline.BuildDocument(cfg)
	if err != nil {
		printError("Layout failed")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	name := input
	if name == "" {
		name = "default config"
	}
	prog.done("Checked " + name)

	printSuccess("Config is valid")
	printKeyValue("Hash", cfg.Hash()[:12])
	printKeyValue("Die", fmt.Sprintf("%s x %s µm", microns(doc.Die.Width, doc.DBUnits), microns(doc.Die.Height, doc.DBUnits)))
	printKeyValue("Instances", fmt.Sprint(len(doc.Instances)))
	printKeyValue("Pins", fmt.Sprint(len(doc.Pins)))
	return nil
}
