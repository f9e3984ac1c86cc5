// Package cli implements the collage command-line interface.
//
// # Commands
//
//   - layout: compute placements for a preset or layout file and write JSON
//   - render: draw a layout as SVG, PNG, JSON or a terminal grid
//   - preview: browse a layout interactively and move the emphasis around
//   - presets: list the built-in layout tables
//   - catalog: list catalog images, categories and projects
//   - serve: run the HTTP preview server
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Defaults for preset, catalog, width, formats and addr are read from
// $XDG_CONFIG_HOME/collage/config.yaml (created on first run) and COLLAGE_*
// environment variables. Flags always win.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/collage/pkg/buildinfo"
	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "collage"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	config     *viper.Viper
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Collage lays out image galleries as scattered, overlapping collages",
		Long: `Collage assigns every item of a gallery a grid span, a small rotation and a
stack order from cyclic pattern tables, then renders the result as SVG, PNG,
JSON or a terminal preview.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/collage/config.yaml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/collage/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// resolveOptions fills options the user did not set on the command line from
// the config file and environment.
func (c *CLI) resolveOptions(cmd *cobra.Command, opts *pipeline.Options) {
	v := c.config
	if v == nil {
		return
	}
	flags := cmd.Flags()
	if !flags.Changed("preset") && !flags.Changed("layout-file") {
		opts.Preset = v.GetString(cfgKeyPreset)
	}
	if !flags.Changed("catalog") {
		opts.CatalogPath = v.GetString(cfgKeyCatalog)
	}
	if !flags.Changed("width") {
		opts.Width = v.GetFloat64(cfgKeyWidth)
	}
	opts.Logger = c.Logger
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// addSourceFlags registers the flags that pick the layout tables and items.
func addSourceFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Preset, "preset", "p", "", "layout preset: collage (default), masonry, editorial")
	cmd.Flags().StringVarP(&opts.LayoutFile, "layout-file", "l", "", "layout tables from a .toml or .yaml file")
	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "catalog file (.json, .yaml, .toml); built-in catalog if empty")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "only lay out images of this category")
	cmd.Flags().StringVar(&opts.Project, "project", "", "lay out the images of a project")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width in pixels")
	_ = cmd.RegisterFlagCompletionFunc("preset", completePresets)
}
