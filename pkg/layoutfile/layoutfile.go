// Package layoutfile reads user-defined layout tables from TOML or YAML files.
//
// A layout file mirrors scatter.Config. Span entries may be written as
// [[span]] tables with col_start, col_end, row_start and row_end keys, as
// named shapes, or as "col/col row/row" strings:
//
//	name = "wall"
//	flow = "dense"
//	columns = 4
//	emphasis_layer = 50
//	rotations = [-2.0, 0.0, 2.0]
//	sizes = ["large", "small"]
//	span = ["tall", "small", "wide", "1/3 1/3"]
//
//	[[offset]]
//	x = 10.0
//	y = -20.0
//
// YAML files use the plural keys spans and offsets.
//
// Decoded configs are checked with scatter.Config.ValidateGeometry, so every
// problem in a file surfaces as an INVALID_CONFIG error.
package layoutfile

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/scatter"
)

// File formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// shapes are the named spans accepted in layout files. Each starts in the
// top-left cell, so they are most useful with dense flow.
var shapes = map[string]scatter.GridSpan{
	"small": scatter.Span(1, 2, 1, 2),
	"tall":  scatter.Span(1, 2, 1, 3),
	"wide":  scatter.Span(1, 3, 1, 2),
	"large": scatter.Span(1, 3, 1, 3),
}

// Shape returns the span for a shape name such as "tall".
func Shape(name string) (scatter.GridSpan, bool) {
	span, ok := shapes[strings.ToLower(strings.TrimSpace(name))]
	return span, ok
}

// ShapeNames lists the accepted shape names in sorted order.
func ShapeNames() []string {
	return slices.Sorted(maps.Keys(shapes))
}

type document struct {
	Name          string           `toml:"name,omitempty" yaml:"name,omitempty"`
	Flow          string           `toml:"flow,omitempty" yaml:"flow,omitempty"`
	Columns       int              `toml:"columns,omitempty" yaml:"columns,omitempty"`
	BaseLayer     int              `toml:"base_layer,omitempty" yaml:"base_layer,omitempty"`
	EmphasisLayer int              `toml:"emphasis_layer,omitempty" yaml:"emphasis_layer,omitempty"`
	Rotations     []float64        `toml:"rotations" yaml:"rotations"`
	Sizes         []scatter.Size   `toml:"sizes,omitempty" yaml:"sizes,omitempty"`
	Spans         []spanEntry      `toml:"span" yaml:"spans"`
	Offsets       []scatter.Offset `toml:"offset,omitempty" yaml:"offsets,omitempty"`
}

func newDocument(cfg scatter.Config) document {
	spans := make([]spanEntry, len(cfg.SpanPatterns))
	for i, s := range cfg.SpanPatterns {
		spans[i] = spanEntry{s}
	}
	return document{
		Name:          cfg.Name,
		Flow:          string(cfg.Flow),
		Columns:       cfg.Columns,
		BaseLayer:     cfg.BaseLayer,
		EmphasisLayer: cfg.EmphasisLayer,
		Rotations:     cfg.RotationPatterns,
		Sizes:         cfg.SizeFallbackPatterns,
		Spans:         spans,
		Offsets:       cfg.OffsetPatterns,
	}
}

func (d document) config() scatter.Config {
	spans := make([]scatter.GridSpan, len(d.Spans))
	for i, s := range d.Spans {
		spans[i] = s.GridSpan
	}
	return scatter.Config{
		Name:                 d.Name,
		SpanPatterns:         spans,
		RotationPatterns:     d.Rotations,
		BaseLayer:            d.BaseLayer,
		SizeFallbackPatterns: d.Sizes,
		OffsetPatterns:       d.Offsets,
		Flow:                 scatter.Flow(d.Flow),
		Columns:              d.Columns,
		EmphasisLayer:        d.EmphasisLayer,
	}
}

// FormatForPath returns the layout file format implied by a file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported layout file %q (must be .toml, .yaml or .yml)", filepath.Base(path))
}

// Load reads and validates a layout file. A file without a name takes the
// file's base name.
func Load(path string) (scatter.Config, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return scatter.Config{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return scatter.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
	}
	if err != nil {
		return scatter.Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read layout file %s", path)
	}

	cfg, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return scatter.Config{}, err
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return cfg, nil
}

// Decode parses a layout document and validates the resulting config.
func Decode(r io.Reader, format string) (scatter.Config, error) {
	var doc document
	var err error

	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	default:
		return scatter.Config{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported layout format %q", format)
	}
	if err != nil {
		return scatter.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s layout", format)
	}

	cfg := doc.config()
	if err := cfg.ValidateGeometry(); err != nil {
		return scatter.Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as a layout document that Decode reads back unchanged.
// Spans are written as "col/col row/row" strings.
func Encode(w io.Writer, cfg scatter.Config, format string) error {
	doc := newDocument(cfg)
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported layout format %q", format)
}

// =============================================================================
// Span entries
// =============================================================================

// spanEntry decodes a span from a table, a shape name or a "c/c r/r" string.
type spanEntry struct {
	scatter.GridSpan
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *spanEntry) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		return s.parse(v)
	case map[string]any:
		for key, dst := range map[string]*int{
			"col_start": &s.ColumnStart,
			"col_end":   &s.ColumnEnd,
			"row_start": &s.RowStart,
			"row_end":   &s.RowEnd,
		} {
			raw, ok := v[key]
			if !ok {
				return fmt.Errorf("span table is missing %s", key)
			}
			n, ok := raw.(int64)
			if !ok {
				return fmt.Errorf("span %s must be an integer", key)
			}
			*dst = int(n)
		}
		return nil
	}
	return fmt.Errorf("span must be a string or a table, got %T", v)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *spanEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return s.parse(node.Value)
	case yaml.MappingNode:
		var g struct {
			ColumnStart *int `yaml:"col_start"`
			ColumnEnd   *int `yaml:"col_end"`
			RowStart    *int `yaml:"row_start"`
			RowEnd      *int `yaml:"row_end"`
		}
		if err := node.Decode(&g); err != nil {
			return err
		}
		if g.ColumnStart == nil || g.ColumnEnd == nil || g.RowStart == nil || g.RowEnd == nil {
			return fmt.Errorf("line %d: span needs col_start, col_end, row_start and row_end", node.Line)
		}
		s.GridSpan = scatter.Span(*g.ColumnStart, *g.ColumnEnd, *g.RowStart, *g.RowEnd)
		return nil
	}
	return fmt.Errorf("line %d: span must be a string or a mapping", node.Line)
}

// MarshalText implements encoding.TextMarshaler for both encoders.
func (s spanEntry) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "%d/%d %d/%d", s.ColumnStart, s.ColumnEnd, s.RowStart, s.RowEnd), nil
}

func (s *spanEntry) parse(text string) error {
	span, err := ParseSpan(text)
	if err != nil {
		return err
	}
	s.GridSpan = span
	return nil
}

// ParseSpan parses a shape name ("tall") or a "col/col row/row" string
// ("1/3 2/4").
func ParseSpan(text string) (scatter.GridSpan, error) {
	text = strings.TrimSpace(text)
	if span, ok := Shape(text); ok {
		return span, nil
	}

	parts := strings.Fields(text)
	if len(parts) != 2 {
		return scatter.GridSpan{}, fmt.Errorf("invalid span %q (want one of %s or \"col/col row/row\")",
			text, strings.Join(ShapeNames(), ", "))
	}
	c0, c1, err := parseLines(parts[0])
	if err != nil {
		return scatter.GridSpan{}, fmt.Errorf("invalid span %q: %w", text, err)
	}
	r0, r1, err := parseLines(parts[1])
	if err != nil {
		return scatter.GridSpan{}, fmt.Errorf("invalid span %q: %w", text, err)
	}
	return scatter.Span(c0, c1, r0, r1), nil
}

func parseLines(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("%q is not start/end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, err
	}
	end, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
