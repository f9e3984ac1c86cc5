package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/collage/pkg/render"
)

const (
	backgroundColor = "#0A0A0A"
	borderColor     = "#FAFAFA"
	focusColor      = "#FFFF00"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	images     bool
	labels     bool
	background string
}

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithImageLinks embeds each item's image URL as an <image> element.
func WithImageLinks() SVGOption { return func(r *svgRenderer) { r.images = true } }

// WithoutLabels omits item captions.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithBackground sets the canvas color. An empty or malformed color leaves it
// transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG draws the scene as an SVG document. Each item is a group carrying
// data-index and data-stack (the effective stack order) attributes.
func RenderSVG(s *render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true, background: backgroundColor}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	width, height := px(s.Layout.Width), px(s.Layout.Height)
	canvas := svg.New(&buf)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	if r.title != "" {
		canvas.Title(r.title)
	}
	if render.IsHexColor(r.background) {
		canvas.Rect(0, 0, width, height, "fill:"+r.background)
	}

	for _, i := range s.PaintOrder() {
		r.renderItem(canvas, s, i)
	}

	canvas.End()
	return buf.Bytes()
}

func (r svgRenderer) renderItem(canvas *svg.SVG, s *render.Scene, i int) {
	p := s.Placements[i]
	rect := s.Rect(i)
	x, y, w, h := px(rect.X), px(rect.Y), px(rect.W), px(rect.H)

	attrs := []string{
		fmt.Sprintf(`id="item-%d"`, i),
		fmt.Sprintf(`class="%s"`, itemClass(s, i)),
		fmt.Sprintf(`data-index="%d"`, p.Index),
		fmt.Sprintf(`data-stack="%d"`, s.StackOrder(i)),
		fmt.Sprintf(`data-span="%s"`, p.Span),
	}
	if p.Rotation != 0 {
		attrs = append(attrs, fmt.Sprintf(`transform="rotate(%g %g %g)"`,
			p.Rotation, rect.CenterX(), rect.CenterY()))
	}
	canvas.Group(attrs...)

	stroke, strokeWidth := borderColor, 4
	if s.IsFocused(i) {
		stroke, strokeWidth = focusColor, 6
	}
	canvas.Rect(x, y, w, h, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", s.Color(i), stroke, strokeWidth))

	if href := s.Image(i); r.images && href != "" {
		// svgo writes href verbatim into the attribute.
		canvas.Image(x, y, w, h, html.EscapeString(href), `preserveAspectRatio="xMidYMid slice"`)
	}
	if r.labels {
		canvas.Text(x+12, y+h-12, s.Label(i),
			"font-family:monospace;font-size:14px;font-weight:bold;fill:#0A0A0A")
	}
	canvas.Gend()
}

func itemClass(s *render.Scene, i int) string {
	c := "item"
	if size := s.Placements[i].Size; size.Valid() {
		c += " size-" + size.String()
	}
	if s.IsFocused(i) {
		c += " focused"
	}
	return c
}

func px(v float64) int { return int(math.Round(v)) }
