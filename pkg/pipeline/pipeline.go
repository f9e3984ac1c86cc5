// Package pipeline runs the resolve → layout → render flow shared by the CLI
// and the preview server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: pick the layout tables (a preset or a layout file) and the
//     items (a catalog category or a project's images)
//  2. Layout: compute placements with [scatter.ComputePlacements]
//  3. Render: build a [render.Scene] and write every requested format
//
// Placements are recomputed on every run and never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Preset:   "collage",
//	    Category: "portrait",
//	    Formats:  []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scatter"
	"github.com/matzehuels/collage/pkg/scatter/presets"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = render.DefaultWidth

	// DefaultGap is the default gap between grid cells in pixels.
	DefaultGap = render.DefaultGap

	// DefaultTermWidth is the default width of terminal output in columns.
	DefaultTermWidth = 100

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0
)

// Upper bounds on render options. Requests beyond them are invalid input.
const (
	MaxWidth      = 16384.0
	MaxCellHeight = 4096.0
	MaxGap        = 1024.0
	MaxTermWidth  = 1000
	MaxScale      = 8.0
)

// DefaultPreset is the layout used when neither a preset nor a layout file
// is given.
const DefaultPreset = presets.Default

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Resolve options
	Preset      string `json:"preset,omitempty"`
	LayoutFile  string `json:"layout_file,omitempty"`
	CatalogPath string `json:"catalog,omitempty"`
	Category    string `json:"category,omitempty"`
	Project     string `json:"project,omitempty"`

	// Render options
	Formats       []string `json:"formats,omitempty"`
	Width         float64  `json:"width,omitempty"`
	CellHeight    float64  `json:"cell_height,omitempty"`
	Gap           float64  `json:"gap,omitempty"`
	Focus         *int     `json:"focus,omitempty"`
	EmphasisLayer int      `json:"emphasis_layer,omitempty"`
	Images        bool     `json:"images,omitempty"` // Embed image URLs in SVG output
	TermWidth     int      `json:"term_width,omitempty"`
	Scale         float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger      `json:"-"`
	Catalog *catalog.Catalog `json:"-"` // Overrides CatalogPath when set

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Layout is the outcome of the resolve and layout stages.
type Layout struct {
	Config     scatter.Config      `json:"config"`
	Items      []catalog.Image     `json:"items"`
	Placements []scatter.Placement `json:"placements"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout

	// Scene is the drawable layout every artifact was rendered from.
	Scene *render.Scene `json:"-"`

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"-"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int           `json:"items"`
	LayoutTime time.Duration `json:"layout_time"`
	RenderTime time.Duration `json:"render_time"`
}

// Focused returns the focus index and whether one is set.
func (o *Options) Focused() (int, bool) {
	if o.Focus == nil {
		return 0, false
	}
	return *o.Focus, true
}

// FocusOn returns a pointer suitable for Options.Focus.
func FocusOn(i int) *int { return &i }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats normalizes format names in place and drops duplicates.
func ValidateFormats(formats []string) ([]string, error) {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		format, err := render.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, format) {
			out = append(out, format)
		}
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the resolve options and sets their defaults.
func (o *Options) ValidateForLayout() error {
	if o.Preset != "" && o.LayoutFile != "" {
		return errors.New(errors.ErrCodeInvalidInput, "preset and layout file are mutually exclusive")
	}
	if o.Project != "" && o.Category != "" && o.Category != catalog.CategoryAll {
		return errors.New(errors.ErrCodeInvalidInput, "category and project are mutually exclusive")
	}
	if o.Preset == "" && o.LayoutFile == "" {
		o.Preset = DefaultPreset
	}
	if o.Preset != "" {
		if _, err := presets.Get(o.Preset); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// ValidateForRender checks the render options and sets their defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	formats, err := ValidateFormats(o.Formats)
	if err != nil {
		return err
	}
	o.Formats = formats

	if o.Width < 0 || o.CellHeight < 0 || o.Gap < 0 || o.Scale < 0 || o.TermWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "sizes must not be negative")
	}
	for _, b := range []struct {
		name   string
		v, max float64
	}{
		{"width", o.Width, MaxWidth},
		{"cell height", o.CellHeight, MaxCellHeight},
		{"gap", o.Gap, MaxGap},
		{"term width", float64(o.TermWidth), MaxTermWidth},
		{"scale", o.Scale, MaxScale},
	} {
		if !(b.v <= b.max) {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be at most %g, got %g", b.name, b.max, b.v)
		}
	}
	if i, ok := o.Focused(); ok && i < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "focus must not be negative, got %d", i)
	}
	if o.EmphasisLayer < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "emphasis layer must not be negative, got %d", o.EmphasisLayer)
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Gap == 0 {
		o.Gap = DefaultGap
	}
	if o.TermWidth == 0 {
		o.TermWidth = DefaultTermWidth
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Frame returns the render frame described by the options.
func (o *Options) Frame() render.Frame {
	return render.Frame{Width: o.Width, CellHeight: o.CellHeight, Gap: o.Gap}
}
