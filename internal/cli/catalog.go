package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padring/pkg/catalog"
)

// catalogCommand creates the catalog command, which lists the cells a config
// resolves to.
func (c *CLI) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [config.toml]",
		Short: "List the cells available to a config",
		Long: `List the cells available to a config.

Cells come from the built-in sky130 set, the LEF file named by the config and
its [cells] table, in that order of precedence. Without a config file the
built-in set is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			cfg, err := loadConfig(input)
			if err != nil {
				return err
			}
			cat, err := cfg.Catalog()
			if err != nil {
				return err
			}
			fmt.Println(catalogTable(cat, cfg.DBUnits))
			return nil
		},
	}
}

// catalogTable renders the cells of cat with sizes in microns.
func catalogTable(cat *catalog.Catalog, dbu int) string {
	t := newTable("Role", "Cell", "Class", "Width", "Height")
	for _, cell := range cat.Cells() {
		t.Row(
			cell.Role,
			cell.TechName,
			string(cell.Class),
			microns(int64(cell.Width), dbu),
			microns(int64(cell.Height), dbu),
		)
	}
	return t.Render()
}
