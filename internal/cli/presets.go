package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/layoutfile"
	"github.com/matzehuels/collage/pkg/scatter"
	"github.com/matzehuels/collage/pkg/scatter/presets"
)

// presetsCommand creates the presets command and its export subcommand.
func (c *CLI) presetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in layout presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printPresets(cmd.OutOrStdout(), presets.All())
			return nil
		},
	}
	cmd.AddCommand(c.presetsExportCommand())
	return cmd
}

// presetsExportCommand writes a preset as a layout file to start editing from.
func (c *CLI) presetsExportCommand() *cobra.Command {
	format := layoutfile.FormatTOML

	cmd := &cobra.Command{
		Use:               "export <preset>",
		Short:             "Write a preset as an editable layout file",
		Example:           "  collage presets export masonry -f yaml > wall.yaml",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := presets.Get(args[0])
			if err != nil {
				return err
			}
			return layoutfile.Encode(cmd.OutOrStdout(), cfg, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", format, "layout file format: toml, yaml")
	return cmd
}

func printPresets(w io.Writer, cfgs []scatter.Config) {
	rows := make([][]string, 0, len(cfgs))
	for _, cfg := range cfgs {
		cols, rowsN := cfg.Extent()
		emphasis := "auto"
		if cfg.EmphasisLayer > 0 {
			emphasis = strconv.Itoa(cfg.EmphasisLayer)
		}
		rows = append(rows, []string{
			cfg.Name,
			string(cfg.FlowOrDefault()),
			strconv.Itoa(len(cfg.SpanPatterns)),
			fmt.Sprintf("%dx%d", max(cfg.GridColumns(), cols), rowsN),
			strconv.Itoa(cfg.BaseLayer),
			emphasis,
		})
	}
	printTable(w, []string{"Preset", "Flow", "Spans", "Grid", "Base", "Emphasis"}, rows)
}
