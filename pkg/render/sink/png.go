package sink

import (
	"bytes"

	"git.sr.ht/~sbinet/gg"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/render"
)

// MaxPNGPixels bounds the raster area RenderPNG will allocate.
const MaxPNGPixels = 1 << 26

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale  float64
	labels bool
}

// WithScale sets the PNG scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithoutPNGLabels omits item captions.
func WithoutPNGLabels() PNGOption {
	return func(r *pngRenderer) { r.labels = false }
}

// RenderPNG rasterizes the scene. Image URLs are not fetched; items are drawn
// as colored cards.
func RenderPNG(s *render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", r.scale)
	}

	fw, fh := s.Layout.Width*r.scale, s.Layout.Height*r.scale
	if !(fw*fh <= MaxPNGPixels) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png of %.0fx%.0f pixels exceeds the %d pixel limit", fw, fh, MaxPNGPixels)
	}
	w, h := max(px(fw), 1), max(px(fh), 1)
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	dc.SetHexColor(backgroundColor)
	dc.Clear()

	for _, i := range s.PaintOrder() {
		rect := s.Rect(i)
		dc.Push()
		dc.RotateAbout(gg.Radians(s.Placements[i].Rotation), rect.CenterX(), rect.CenterY())

		dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
		dc.SetHexColor(s.Color(i))
		dc.FillPreserve()
		if s.IsFocused(i) {
			dc.SetHexColor(focusColor)
			dc.SetLineWidth(6)
		} else {
			dc.SetHexColor(borderColor)
			dc.SetLineWidth(4)
		}
		dc.Stroke()

		if r.labels {
			dc.SetHexColor(backgroundColor)
			dc.DrawStringAnchored(s.Label(i), rect.X+12, rect.Bottom()-12, 0, 0)
		}
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
