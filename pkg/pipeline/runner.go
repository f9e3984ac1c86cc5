package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/layoutfile"
	"github.com/matzehuels/collage/pkg/observability"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scatter"
	"github.com/matzehuels/collage/pkg/scatter/presets"
)

// Runner executes pipeline runs. It holds no results, so multiple goroutines
// can safely share one Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete resolve → layout → render pipeline. A config
// error stops the run before any placement or artifact exists.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	l, err := r.Layout(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Layout: *l}
	result.Stats.Items = len(l.Items)

	scene, err := NewScene(l, opts)
	if err != nil {
		return nil, err
	}
	result.Scene = scene

	renderStart := time.Now()
	artifacts, err := r.Render(ctx, scene, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout resolves the tables and items and computes placements.
func (r *Runner) Layout(ctx context.Context, opts Options) (*Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := ResolveConfig(opts)
	if err != nil {
		return nil, err
	}
	items, err := ResolveItems(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, cfg.Name, len(items))
	placements, err := scatter.ComputePlacements(items, cfg)
	duration := time.Since(start)
	observability.Layout().OnLayoutComplete(ctx, cfg.Name, len(items), duration, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("computed layout",
		"preset", cfg.Name,
		"items", len(items),
		"duration", duration)

	return &Layout{Config: cfg, Items: items, Placements: placements}, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Resolve
// =============================================================================

// ResolveConfig returns the layout tables named by the options: a layout file
// when one is given, otherwise a preset.
func ResolveConfig(opts Options) (scatter.Config, error) {
	if opts.LayoutFile != "" {
		return layoutfile.Load(opts.LayoutFile)
	}
	name := opts.Preset
	if name == "" {
		name = DefaultPreset
	}
	return presets.Get(name)
}

// ResolveCatalog returns the catalog to draw items from: Options.Catalog,
// the file at CatalogPath, or the built-in catalog.
func ResolveCatalog(opts Options) (*catalog.Catalog, error) {
	switch {
	case opts.Catalog != nil:
		return opts.Catalog, nil
	case opts.CatalogPath != "":
		return catalog.Load(opts.CatalogPath)
	}
	return catalog.Default(), nil
}

// ResolveItems returns the images to lay out: a project's images when
// Project is set, otherwise the catalog filtered by Category. An unknown
// category yields no items.
func ResolveItems(opts Options) ([]catalog.Image, error) {
	c, err := ResolveCatalog(opts)
	if err != nil {
		return nil, err
	}
	if opts.Project != "" {
		return c.ProjectImages(opts.Project)
	}
	return c.Filter(opts.Category), nil
}

// NewScene builds the drawable scene for a layout.
func NewScene(l *Layout, opts Options) (*render.Scene, error) {
	n := len(l.Items)
	labels := make([]string, n)
	colors := make([]string, n)
	for i, img := range l.Items {
		labels[i] = img.Alt
		colors[i] = img.Color
	}

	sceneOpts := []render.SceneOption{
		render.WithFrame(opts.Frame()),
		render.WithLabels(labels),
		render.WithColors(colors),
		render.WithEmphasisLayer(opts.EmphasisLayer),
	}
	if opts.Images {
		hrefs := make([]string, n)
		for i, img := range l.Items {
			hrefs[i] = img.Src
		}
		sceneOpts = append(sceneOpts, render.WithImages(hrefs))
	}
	if i, ok := opts.Focused(); ok {
		sceneOpts = append(sceneOpts, render.WithFocus(i))
	}
	return render.NewScene(l.Config, l.Placements, sceneOpts...)
}
