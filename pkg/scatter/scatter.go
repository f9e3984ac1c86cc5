package scatter

import (
	"reflect"

	"github.com/matzehuels/collage/pkg/errors"
)

// ComputePlacements maps items to placements using the pattern tables in cfg.
//
// The result has the same length and order as items and Placement[i].Index
// is i. An empty items slice yields an empty, non-nil result. Neither items
// nor cfg is modified.
//
// Configuration problems are reported before any placement is computed, as an
// INVALID_CONFIG error (see [IsConfigError]):
//   - SpanPatterns or RotationPatterns is empty
//   - SizeFallbackPatterns is empty and at least one item lacks a size hint
//   - Flow is not a known value
//
// There are no partial results: either every placement is returned or none.
func ComputePlacements[T any](items []T, cfg Config) ([]Placement, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hints := make([]Size, len(items))
	needFallback := false
	for i, item := range items {
		hints[i] = sizeHint(item)
		if hints[i] == SizeUnset {
			needFallback = true
		}
	}
	if needFallback && len(cfg.SizeFallbackPatterns) == 0 {
		return nil, configError("size fallback table is empty but some items have no size hint")
	}

	out := make([]Placement, len(items))
	for i := range items {
		size := hints[i]
		if size == SizeUnset {
			size = cfg.SizeFallbackPatterns[i%len(cfg.SizeFallbackPatterns)]
		}
		var nudge Offset
		if n := len(cfg.OffsetPatterns); n > 0 {
			nudge = cfg.OffsetPatterns[i%n]
		}
		out[i] = Placement{
			Index:      i,
			Span:       cfg.SpanPatterns[i%len(cfg.SpanPatterns)],
			Rotation:   cfg.RotationPatterns[i%len(cfg.RotationPatterns)],
			StackOrder: cfg.BaseLayer + i,
			Size:       size,
			Cycle:      i / len(cfg.SpanPatterns),
			Nudge:      nudge,
		}
	}
	return out, nil
}

// Validate checks the conditions that make cfg unusable regardless of the
// items it is applied to. The size fallback table is checked by
// ComputePlacements, because it is only required when an item lacks a hint.
func (c Config) Validate() error {
	if len(c.SpanPatterns) == 0 {
		return configError("span table is empty")
	}
	if len(c.RotationPatterns) == 0 {
		return configError("rotation table is empty")
	}
	for i, s := range c.SizeFallbackPatterns {
		if !s.Valid() {
			return configError("size fallback entry %d is not small, medium or large", i)
		}
	}
	if !c.Flow.Valid() {
		return configError("unknown flow %q (must be fixed or dense)", c.Flow)
	}
	return nil
}

// ValidateGeometry checks that every span covers at least one cell on a
// 1-based grid and that Columns and EmphasisLayer are not negative.
// Renderers call it; the engine itself treats spans as opaque.
func (c Config) ValidateGeometry() error {
	if err := c.Validate(); err != nil {
		return err
	}
	for i, s := range c.SpanPatterns {
		if !s.Valid() {
			return configError("span entry %d (%s) does not cover a grid cell", i, s)
		}
	}
	if c.Columns < 0 {
		return configError("columns must not be negative, got %d", c.Columns)
	}
	if c.EmphasisLayer < 0 {
		return configError("emphasis layer must not be negative, got %d", c.EmphasisLayer)
	}
	return nil
}

// IsConfigError reports whether err is a configuration error from this
// package.
func IsConfigError(err error) bool {
	return errors.Is(err, errors.ErrCodeInvalidConfig)
}

func configError(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// sizeHint treats a nil pointer item as carrying no hint.
func sizeHint(item any) Size {
	h, ok := item.(SizeHinter)
	if !ok {
		return SizeUnset
	}
	if v := reflect.ValueOf(item); v.Kind() == reflect.Pointer && v.IsNil() {
		return SizeUnset
	}
	s, ok := h.SizeHint()
	if !ok || !s.Valid() {
		return SizeUnset
	}
	return s
}
