package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/render"
)

// renderCommand creates the render command for drawing a layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		focus      int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a gallery layout to SVG, PNG, JSON or the terminal",
		Long: `Render a gallery layout.

Formats are svg, png, json and term. File formats are written to
<output>.<ext> (default base: the layout name); term prints to stdout.
--focus raises one item above every other without moving it.`,
		Example: `  collage render
  collage render -p masonry -f svg,png -o out/masonry
  collage render -f term --focus 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.resolveOptions(cmd, &opts)
			if cmd.Flags().Changed("format") || c.config == nil {
				opts.Formats = parseFormats(formatsStr)
			} else {
				opts.Formats = parseFormats(strings.Join(c.config.GetStringSlice(cfgKeyFormats), ","))
			}
			if focus >= 0 {
				opts.Focus = pipeline.FocusOn(focus)
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: layout name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, term (comma-separated)")
	cmd.Flags().IntVar(&focus, "focus", -1, "index of the item to emphasize")
	cmd.Flags().IntVar(&opts.EmphasisLayer, "emphasis-layer", 0, "stack order floor for the focused item (default: preset's)")
	cmd.Flags().Float64Var(&opts.CellHeight, "cell-height", 0, "row height in pixels (default: column width)")
	cmd.Flags().Float64Var(&opts.Gap, "gap", 0, "gap between cells in pixels")
	cmd.Flags().BoolVar(&opts.Images, "images", false, "embed image links in SVG output")
	cmd.Flags().IntVar(&opts.TermWidth, "term-width", 0, "terminal grid width in columns")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor")
	addSourceFlags(cmd, &opts)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runRender executes the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, stdout, stderr io.Writer, opts pipeline.Options, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	prog := newProgress(loggerFromContext(ctx))
	spin := newSpinner(ctx, stderr, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spin.start()
	result, err := c.newRunner().Execute(ctx, opts)
	spin.stop()
	if err != nil {
		return err
	}

	base := basePath(output, result.Config.Name)
	var written []string
	for _, format := range opts.Formats {
		data := result.Artifacts[format]
		if format == render.FormatTerminal {
			fmt.Fprint(stdout, string(data))
			continue
		}
		path := base + "." + render.Extension(format)
		if err := writeArtifact(path, data); err != nil {
			return err
		}
		written = append(written, path)
	}
	if len(written) == 0 {
		return nil
	}

	prog.done(fmt.Sprintf("Rendered %d formats", len(written)))
	printSuccess(stdout, "Render complete")
	for _, path := range written {
		printFile(stdout, path)
	}
	stats := []string{result.Config.Name, fmt.Sprintf("%d items", result.Stats.Items)}
	if i, ok := opts.Focused(); ok {
		stats = append(stats, fmt.Sprintf("focus #%d", i))
	}
	printStats(stdout, stats...)
	return nil
}

// basePath derives the output base from -o, stripping a known format
// extension. Without -o the layout name is used.
func basePath(output, name string) string {
	if output == "" {
		if name == "" {
			name = appName
		}
		return name
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
