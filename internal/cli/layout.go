package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/pipeline"
)

// layoutCommand creates the layout command for computing placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute placements for a gallery",
		Long: `Compute placements for a gallery.

Every catalog image gets a grid span, a rotation, a stack order and a size
hint from the preset (or layout file) tables. The result is written as JSON,
to stdout unless -o is given.`,
		Example: `  collage layout
  collage layout -p masonry --category sculpture
  collage layout -l wall.toml --catalog gallery.yaml -o wall.layout.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.resolveOptions(cmd, &opts)
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	addSourceFlags(cmd, &opts)

	return cmd
}

// runLayout computes the layout and writes it as indented JSON.
func (c *CLI) runLayout(ctx context.Context, stdout io.Writer, opts pipeline.Options, output string) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	l, err := c.newRunner().Layout(ctx, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	data = append(data, '\n')

	if output == "" || output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	prog.done(fmt.Sprintf("Laid out %d items", len(l.Placements)))
	printSuccess(stdout, "Layout complete")
	printFile(stdout, output)
	printStats(stdout, l.Config.Name, fmt.Sprintf("%d items", len(l.Placements)), string(l.Config.FlowOrDefault()))
	printNextStep(stdout, "Render", "collage render -f svg,png")
	return nil
}
