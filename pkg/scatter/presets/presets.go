// Package presets holds the hand-tuned layout tables of the portfolio pages.
//
// Each page's tables were tuned independently, so each preset is a distinct
// [scatter.Config] rather than an instance of a shared formula:
//
//   - collage: the overlapping hero collage, 12 slots on a 5x5 grid
//   - masonry: the gallery wall, tall/small/wide tiles packed densely
//   - editorial: the home page scatter grid, 10 slots on 12 columns with nudges
//
// Lookups return deep copies, so callers may edit what they get back.
package presets

import (
	"slices"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/scatter"
)

// Preset names.
const (
	NameCollage   = "collage"
	NameMasonry   = "masonry"
	NameEditorial = "editorial"
)

// Default is the preset used when none is requested.
const Default = NameCollage

var registry = map[string]func() scatter.Config{
	NameCollage:   Collage,
	NameMasonry:   Masonry,
	NameEditorial: Editorial,
}

// Get returns the preset with the given name.
func Get(name string) (scatter.Config, error) {
	build, ok := registry[name]
	if !ok {
		return scatter.Config{}, errors.New(errors.ErrCodeInvalidPreset,
			"unknown preset %q (must be one of: %v)", name, Names())
	}
	return build(), nil
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every preset, ordered by name.
func All() []scatter.Config {
	names := Names()
	out := make([]scatter.Config, len(names))
	for i, name := range names {
		out[i] = registry[name]()
	}
	return out
}

// =============================================================================
// collage
// =============================================================================

// Collage returns the hero collage tables: large, small and medium tiles that
// deliberately overlap on a 5x5 grid, tilted a few degrees either way.
func Collage() scatter.Config {
	return scatter.Config{
		Name: NameCollage,
		SpanPatterns: []scatter.GridSpan{
			scatter.Span(1, 3, 1, 3), // large top-left
			scatter.Span(3, 4, 1, 2), // small top-right
			scatter.Span(4, 6, 1, 3), // large top-right
			scatter.Span(2, 4, 2, 4), // medium center, overlaps
			scatter.Span(1, 2, 3, 4), // small left
			scatter.Span(4, 5, 3, 4), // small right
			scatter.Span(5, 6, 2, 4), // medium right edge
			scatter.Span(1, 3, 4, 5), // medium bottom-left
			scatter.Span(3, 5, 4, 6), // large bottom-center
			scatter.Span(5, 6, 4, 5), // small bottom-right
			scatter.Span(1, 2, 5, 6), // small bottom-left corner
			scatter.Span(2, 4, 5, 6), // medium bottom
		},
		RotationPatterns: []float64{-5, 3, -2, 4, -3, 2, -4, 3, -1, 5, -3, 2},
		SizeFallbackPatterns: []scatter.Size{
			scatter.SizeLarge, scatter.SizeSmall, scatter.SizeLarge, scatter.SizeMedium,
			scatter.SizeSmall, scatter.SizeSmall, scatter.SizeMedium, scatter.SizeMedium,
			scatter.SizeLarge, scatter.SizeSmall, scatter.SizeSmall, scatter.SizeMedium,
		},
		BaseLayer:     10,
		EmphasisLayer: 50,
		Flow:          scatter.FlowFixed,
	}
}

// =============================================================================
// masonry
// =============================================================================

// Tile shapes used by the masonry wall.
var (
	tall  = scatter.Span(1, 2, 1, 3)
	small = scatter.Span(1, 2, 1, 2)
	wide  = scatter.Span(1, 3, 1, 2)
)

// Masonry returns the gallery wall tables. Spans are extents only; renderers
// pack them densely into four columns.
func Masonry() scatter.Config {
	return scatter.Config{
		Name:             NameMasonry,
		SpanPatterns:     []scatter.GridSpan{tall, small, wide, small, tall, small},
		RotationPatterns: []float64{0},
		SizeFallbackPatterns: []scatter.Size{
			scatter.SizeLarge, scatter.SizeSmall, scatter.SizeMedium,
			scatter.SizeSmall, scatter.SizeLarge, scatter.SizeSmall,
		},
		EmphasisLayer: 50,
		Flow:          scatter.FlowDense,
		Columns:       4,
	}
}

// =============================================================================
// editorial
// =============================================================================

// Editorial returns the home page scatter grid: ten wide slots on twelve
// columns, each pushed off the grid by a small nudge so the rows never line up.
func Editorial() scatter.Config {
	return scatter.Config{
		Name: NameEditorial,
		SpanPatterns: []scatter.GridSpan{
			scatter.Span(1, 6, 1, 3),
			scatter.Span(5, 10, 3, 6),
			scatter.Span(9, 13, 1, 3),
			scatter.Span(1, 5, 3, 5),
			scatter.Span(4, 9, 6, 9),
			scatter.Span(8, 13, 9, 11),
			scatter.Span(1, 7, 9, 12),
			scatter.Span(6, 10, 12, 14),
			scatter.Span(9, 13, 6, 8),
			scatter.Span(2, 8, 14, 16),
		},
		RotationPatterns: []float64{0},
		SizeFallbackPatterns: []scatter.Size{
			scatter.SizeMedium, scatter.SizeLarge, scatter.SizeMedium, scatter.SizeMedium,
			scatter.SizeLarge, scatter.SizeMedium, scatter.SizeLarge, scatter.SizeMedium,
			scatter.SizeMedium, scatter.SizeMedium,
		},
		OffsetPatterns: []scatter.Offset{
			{X: -20, Y: 40},
			{X: 0, Y: -30},
			{X: 15, Y: 80},
			{X: 30, Y: -60},
			{X: 0, Y: 20},
			{X: -20, Y: -40},
			{X: -30, Y: 50},
			{X: 0, Y: -80},
			{X: 0, Y: 30},
			{X: 0, Y: -50},
		},
		Flow: scatter.FlowFixed,
	}
}
