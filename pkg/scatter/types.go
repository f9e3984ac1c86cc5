package scatter

import (
	"fmt"
	"strings"
)

// =============================================================================
// Size
// =============================================================================

// Size is the display size class of an item.
type Size uint8

// Size values. The zero value means "no size" and is never produced by the
// engine.
const (
	SizeUnset Size = iota
	SizeSmall
	SizeMedium
	SizeLarge
)

var sizeNames = map[Size]string{
	SizeSmall:  "small",
	SizeMedium: "medium",
	SizeLarge:  "large",
}

// String returns the lowercase name of the size, or "" for SizeUnset.
func (s Size) String() string {
	return sizeNames[s]
}

// Valid reports whether s is one of small, medium or large.
func (s Size) Valid() bool {
	_, ok := sizeNames[s]
	return ok
}

// ParseSize parses a size name. Matching is case-insensitive; the empty
// string parses to SizeUnset.
func ParseSize(name string) (Size, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SizeUnset, nil
	}
	for s, n := range sizeNames {
		if n == name {
			return s, nil
		}
	}
	return SizeUnset, fmt.Errorf("unknown size %q (must be small, medium or large)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	v, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// SizeHinter is implemented by items that carry their own size class.
// The hint is used only when ok is true and the size is valid.
type SizeHinter interface {
	SizeHint() (size Size, ok bool)
}

// =============================================================================
// Grid geometry
// =============================================================================

// GridSpan is a rectangle in abstract grid coordinates. Lines are 1-based and
// end-exclusive, the way CSS grid lines work: {1, 3, 1, 2} covers two columns
// and one row in the top-left corner.
type GridSpan struct {
	ColumnStart int `json:"col_start" yaml:"col_start" toml:"col_start"`
	ColumnEnd   int `json:"col_end" yaml:"col_end" toml:"col_end"`
	RowStart    int `json:"row_start" yaml:"row_start" toml:"row_start"`
	RowEnd      int `json:"row_end" yaml:"row_end" toml:"row_end"`
}

// Span builds a GridSpan from column and row lines.
func Span(colStart, colEnd, rowStart, rowEnd int) GridSpan {
	return GridSpan{ColumnStart: colStart, ColumnEnd: colEnd, RowStart: rowStart, RowEnd: rowEnd}
}

// Columns returns the number of columns covered.
func (g GridSpan) Columns() int { return g.ColumnEnd - g.ColumnStart }

// Rows returns the number of rows covered.
func (g GridSpan) Rows() int { return g.RowEnd - g.RowStart }

// Valid reports whether the span starts on line 1 or later and covers at
// least one cell.
func (g GridSpan) Valid() bool {
	return g.ColumnStart >= 1 && g.RowStart >= 1 && g.Columns() > 0 && g.Rows() > 0
}

// String formats the span as "col 1/3 row 1/2".
func (g GridSpan) String() string {
	return fmt.Sprintf("col %d/%d row %d/%d", g.ColumnStart, g.ColumnEnd, g.RowStart, g.RowEnd)
}

// Offset is a pixel nudge applied by renderers after grid placement.
type Offset struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Flow tells a renderer how to read span patterns.
type Flow string

const (
	// FlowFixed treats spans as absolute positions. Each wrap through the
	// span table is shifted down by the table's row extent.
	FlowFixed Flow = "fixed"

	// FlowDense treats spans as extents only and packs items first-fit into
	// Config.Columns columns, like CSS grid-auto-flow: dense.
	FlowDense Flow = "dense"
)

// Valid reports whether f is a known flow. The empty flow is valid and means
// FlowFixed.
func (f Flow) Valid() bool {
	return f == "" || f == FlowFixed || f == FlowDense
}

// =============================================================================
// Config
// =============================================================================

// Config holds the pattern tables and layer settings for one layout.
// A Config is a plain value: copying it and editing the copy never affects
// other layouts.
type Config struct {
	// Name identifies the layout in listings and output files.
	Name string `json:"name,omitempty" yaml:"name" toml:"name"`

	// SpanPatterns is cycled to assign grid spans. Required.
	SpanPatterns []GridSpan `json:"spans" yaml:"spans" toml:"span"`

	// RotationPatterns is cycled to assign rotations in degrees. Required.
	// Values are usually within [-20, 20] but any real value is accepted.
	RotationPatterns []float64 `json:"rotations" yaml:"rotations" toml:"rotations"`

	// BaseLayer offsets every stack order.
	BaseLayer int `json:"base_layer" yaml:"base_layer" toml:"base_layer"`

	// SizeFallbackPatterns is cycled for items without a size hint. Required
	// only when such items exist.
	SizeFallbackPatterns []Size `json:"sizes,omitempty" yaml:"sizes" toml:"sizes"`

	// OffsetPatterns is cycled to assign pixel nudges. Optional.
	OffsetPatterns []Offset `json:"offsets,omitempty" yaml:"offsets" toml:"offset"`

	// Flow selects how renderers interpret spans.
	Flow Flow `json:"flow,omitempty" yaml:"flow" toml:"flow"`

	// Columns is the grid width used by FlowDense. Zero means the widest
	// column line in SpanPatterns.
	Columns int `json:"columns,omitempty" yaml:"columns" toml:"columns"`

	// EmphasisLayer is the stack order a focused item is lifted to. Zero
	// means MinEmphasisLayer for the rendered item count.
	EmphasisLayer int `json:"emphasis_layer,omitempty" yaml:"emphasis_layer" toml:"emphasis_layer"`
}

// Extent returns the number of columns and rows spanned by the whole span
// table.
func (c Config) Extent() (cols, rows int) {
	for _, s := range c.SpanPatterns {
		cols = max(cols, s.ColumnEnd-1)
		rows = max(rows, s.RowEnd-1)
	}
	return cols, rows
}

// GridColumns returns the column count a renderer should lay out.
func (c Config) GridColumns() int {
	if c.Columns > 0 {
		return c.Columns
	}
	cols, _ := c.Extent()
	return cols
}

// FlowOrDefault returns Flow, or FlowFixed when unset.
func (c Config) FlowOrDefault() Flow {
	if c.Flow == "" {
		return FlowFixed
	}
	return c.Flow
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.SpanPatterns = append([]GridSpan(nil), c.SpanPatterns...)
	c.RotationPatterns = append([]float64(nil), c.RotationPatterns...)
	c.SizeFallbackPatterns = append([]Size(nil), c.SizeFallbackPatterns...)
	c.OffsetPatterns = append([]Offset(nil), c.OffsetPatterns...)
	return c
}

// =============================================================================
// Placement
// =============================================================================

// Placement is the computed layout record for one item.
type Placement struct {
	// Index is the item's position in the input sequence.
	Index int `json:"index"`

	// Span is SpanPatterns[Index mod len].
	Span GridSpan `json:"span"`

	// Rotation is RotationPatterns[Index mod len], in degrees.
	Rotation float64 `json:"rotation"`

	// StackOrder is BaseLayer + Index. Use EffectiveStackOrder for the value
	// to paint with when an item may be focused.
	StackOrder int `json:"stack_order"`

	// Size is the item's own hint or the fallback table entry.
	Size Size `json:"size"`

	// Cycle counts complete passes through the span table before this item.
	Cycle int `json:"cycle"`

	// Nudge is OffsetPatterns[Index mod len], or zero without offsets.
	Nudge Offset `json:"nudge"`
}
