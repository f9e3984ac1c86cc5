package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/scatter"
)

// palette colors items that carry no color of their own.
var palette = []string{
	"#FF006E", "#3A86FF", "#8AFF80", "#FFBE0B",
	"#FF6B35", "#9D4EDD", "#00F5FF", "#FB5607",
}

// Scene is everything a sink needs to draw one layout.
type Scene struct {
	Config     scatter.Config
	Placements []scatter.Placement
	Layout     Layout
	Labels     []string
	Colors     []string
	Images     []string
	Emphasis   scatter.Emphasis
}

// SceneOption configures [NewScene].
type SceneOption func(*sceneOptions)

type sceneOptions struct {
	frame    Frame
	labels   []string
	colors   []string
	images   []string
	layer    int
	focus    int
	hasFocus bool
}

// WithFrame sets the canvas. The zero Frame uses package defaults.
func WithFrame(f Frame) SceneOption { return func(o *sceneOptions) { o.frame = f } }

// WithLabels sets one caption per placement.
func WithLabels(labels []string) SceneOption { return func(o *sceneOptions) { o.labels = labels } }

// WithColors sets one fill color per placement. Empty or malformed entries fall back to
// [DefaultPalette].
func WithColors(colors []string) SceneOption { return func(o *sceneOptions) { o.colors = colors } }

// WithImages sets one image URL per placement for sinks that can embed them.
func WithImages(hrefs []string) SceneOption { return func(o *sceneOptions) { o.images = hrefs } }

// WithFocus focuses item i. Negative values leave nothing focused.
func WithFocus(i int) SceneOption {
	return func(o *sceneOptions) { o.focus, o.hasFocus = i, i >= 0 }
}

// WithEmphasisLayer overrides the emphasis layer for this scene.
func WithEmphasisLayer(layer int) SceneOption { return func(o *sceneOptions) { o.layer = layer } }

// DefaultPalette returns a copy of the fallback item colors.
func DefaultPalette() []string { return slices.Clone(palette) }

// DefaultEmphasisLayer returns the layer a focused item is lifted to when the
// caller sets none: the config's own layer, raised to the lowest layer above
// every default stack order of n items.
func DefaultEmphasisLayer(cfg scatter.Config, n int) int {
	return EmphasisLayer(cfg, n, cfg.EmphasisLayer)
}

// EmphasisLayer returns layer, or the config default when layer is zero,
// never lower than [scatter.MinEmphasisLayer] for n items.
func EmphasisLayer(cfg scatter.Config, n, layer int) int {
	if layer == 0 {
		layer = cfg.EmphasisLayer
	}
	return max(layer, scatter.MinEmphasisLayer(cfg, n))
}

// NewScene validates cfg for drawing and computes pixel geometry for
// placements. Per-item slices must be empty or match len(placements).
func NewScene(cfg scatter.Config, placements []scatter.Placement, opts ...SceneOption) (*Scene, error) {
	var o sceneOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.ValidateGeometry(); err != nil {
		return nil, err
	}
	n := len(placements)
	for name, s := range map[string][]string{"labels": o.labels, "colors": o.colors, "images": o.images} {
		if len(s) != 0 && len(s) != n {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%d %s for %d placements", len(s), name, n)
		}
	}
	if o.layer < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "emphasis layer must not be negative, got %d", o.layer)
	}

	emphasis := scatter.NewEmphasis(EmphasisLayer(cfg, n, o.layer))
	if o.hasFocus {
		if o.focus >= n {
			return nil, errors.New(errors.ErrCodeInvalidInput, "focus %d out of range for %d items", o.focus, n)
		}
		emphasis = emphasis.Focus(o.focus)
	}

	return &Scene{
		Config:     cfg,
		Placements: placements,
		Layout:     Geometry(cfg, placements, o.frame),
		Labels:     o.labels,
		Colors:     o.colors,
		Images:     o.images,
		Emphasis:   emphasis,
	}, nil
}

// Len returns the number of items in the scene.
func (s *Scene) Len() int { return len(s.Placements) }

// Rect returns the pixel box of item i.
func (s *Scene) Rect(i int) Rect { return s.Layout.Rects[i] }

// PaintOrder returns item positions back to front.
func (s *Scene) PaintOrder() []int {
	return scatter.PaintOrder(s.Placements, s.Emphasis)
}

// StackOrder returns item i's effective stack order.
func (s *Scene) StackOrder(i int) int {
	return s.Emphasis.StackOrder(s.Placements[i])
}

// IsFocused reports whether item i is focused.
func (s *Scene) IsFocused(i int) bool {
	return s.Emphasis.IsFocused(s.Placements[i].Index)
}

// Label returns item i's caption, or its one-based number.
func (s *Scene) Label(i int) string {
	if i < len(s.Labels) && s.Labels[i] != "" {
		return s.Labels[i]
	}
	return fmt.Sprintf("#%d", i+1)
}

// Color returns item i's fill color.
func (s *Scene) Color(i int) string {
	if i < len(s.Colors) && IsHexColor(s.Colors[i]) {
		return s.Colors[i]
	}
	return palette[i%len(palette)]
}

// Image returns item i's image URL, if any.
func (s *Scene) Image(i int) string {
	if i < len(s.Images) {
		return s.Images[i]
	}
	return ""
}

// Focus returns a copy of the scene with item i focused, or nothing focused
// when i is negative. Geometry is shared; emphasis never moves items.
func (s *Scene) Focus(i int) *Scene {
	c := *s
	if i >= s.Len() {
		i = -1
	}
	c.Emphasis = s.Emphasis.Focus(i)
	return &c
}

// HitTest returns the topmost item whose unrotated box contains the point.
func (s *Scene) HitTest(x, y float64) (int, bool) {
	order := s.PaintOrder()
	for k := len(order) - 1; k >= 0; k-- {
		if s.Layout.Rects[order[k]].Contains(x, y) {
			return order[k], true
		}
	}
	return 0, false
}

// IsHexColor reports whether c is a "#RGB", "#RRGGBB" or "#RRGGBBAA" color.
func IsHexColor(c string) bool {
	hex, ok := strings.CutPrefix(c, "#")
	if !ok {
		return false
	}
	switch len(hex) {
	case 3, 6, 8:
	default:
		return false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
