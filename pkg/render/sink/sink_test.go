package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scatter"
	"github.com/matzehuels/collage/pkg/scatter/presets"
)

var testFrame = render.Frame{Width: 220, Gap: 10, Padding: 5}

// overlapScene has item 1 sitting on top of the lower-right quarter of item 0.
func overlapScene(t *testing.T, opts ...render.SceneOption) *render.Scene {
	t.Helper()
	cfg := scatter.Config{
		SpanPatterns:     []scatter.GridSpan{scatter.Span(1, 3, 1, 3), scatter.Span(2, 3, 2, 3)},
		RotationPatterns: []float64{0},
	}
	placements, err := scatter.ComputePlacements(make([]struct{}, 2), cfg)
	if err != nil {
		t.Fatal(err)
	}
	opts = append([]render.SceneOption{
		render.WithFrame(testFrame),
		render.WithLabels([]string{"AA", "BB"}),
	}, opts...)
	s, err := render.NewScene(cfg, placements, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func collageScene(t *testing.T, opts ...render.SceneOption) *render.Scene {
	t.Helper()
	cfg := presets.Collage()
	placements, err := scatter.ComputePlacements(make([]struct{}, 6), cfg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := render.NewScene(cfg, placements, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(collageScene(t), WithTitle("collage")))

	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an SVG document:\n%s", out)
	}
	for _, want := range []string{
		"<title>collage</title>",
		`data-stack="10"`,
		`data-stack="15"`,
		`transform="rotate(-5 `,
		`class="item size-large"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(out, "<image") {
		t.Error("images should only be embedded with WithImageLinks")
	}
}

func TestRenderSVGFocusPaintsLast(t *testing.T) {
	out := string(RenderSVG(collageScene(t, render.WithFocus(0))))

	first := strings.Index(out, `id="item-0"`)
	last := strings.Index(out, `id="item-5"`)
	if first < 0 || last < 0 || first < last {
		t.Errorf("focused item 0 should be drawn after item 5 (positions %d, %d)", first, last)
	}
	if !strings.Contains(out, `data-stack="50"`) || !strings.Contains(out, "focused") {
		t.Error("focused item should carry the emphasis layer")
	}
}

func TestRenderSVGImages(t *testing.T) {
	hrefs := []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}
	out := string(RenderSVG(overlapScene(t, render.WithImages(hrefs)), WithImageLinks(), WithoutLabels()))

	if strings.Count(out, "<image") != 2 || !strings.Contains(out, hrefs[1]) {
		t.Errorf("expected two image elements:\n%s", out)
	}
	if strings.Contains(out, "AA") {
		t.Error("labels should be omitted")
	}
}

// imageHrefs decodes out as XML and returns every <image> href.
func imageHrefs(t *testing.T, out []byte) []string {
	t.Helper()
	var hrefs []string
	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return hrefs
		}
		if err != nil {
			t.Fatalf("invalid XML: %v\n%s", err, out)
		}
		if el, ok := tok.(xml.StartElement); ok && el.Name.Local == "image" {
			for _, a := range el.Attr {
				if a.Name.Local == "href" {
					hrefs = append(hrefs, a.Value)
				}
			}
		}
	}
}

func TestRenderSVGEscapesImageLinks(t *testing.T) {
	hrefs := []string{
		"https://images.unsplash.com/x?w=800&q=80",
		`https://example.com/"quoted"<b>.jpg`,
	}
	out := RenderSVG(overlapScene(t, render.WithImages(hrefs)), WithImageLinks())

	got := imageHrefs(t, out)
	if len(got) != 2 {
		t.Fatalf("hrefs = %q", got)
	}
	for _, want := range hrefs {
		if got[0] != want && got[1] != want {
			t.Errorf("href %q not round-tripped, got %q", want, got)
		}
	}
}

func TestRenderSVGMalformedColors(t *testing.T) {
	colors := []string{`red;stroke:url(x)"><script/>`, "#12"}
	s := overlapScene(t, render.WithColors(colors))
	out := RenderSVG(s, WithBackground(`"/>`))

	imageHrefs(t, out)
	palette := render.DefaultPalette()
	for i := range colors {
		if got := s.Color(i); got != palette[i] {
			t.Errorf("Color(%d) = %q, want palette %q", i, got, palette[i])
		}
	}
	if bytes.Contains(out, []byte("script")) {
		t.Errorf("color leaked into SVG:\n%s", out)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(overlapScene(t), WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 440 || b.Dy() != 440 {
		t.Errorf("size = %v, want 440x440", b)
	}

	if _, err := RenderPNG(overlapScene(t), WithScale(0)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero scale: %v", err)
	}
	if _, err := RenderPNG(overlapScene(t), WithScale(1e4)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("oversized png: %v", err)
	}
}

func TestRenderSVGFocusAboveLargeCollage(t *testing.T) {
	cfg := presets.Collage()
	placements, err := scatter.ComputePlacements(make([]struct{}, 60), cfg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := render.NewScene(cfg, placements, render.WithFocus(0))
	if err != nil {
		t.Fatal(err)
	}
	out := string(RenderSVG(s))

	if strings.LastIndex(out, `id="item-0"`) < strings.LastIndex(out, `id="item-59"`) {
		t.Error("focused item 0 should be drawn after item 59")
	}
	if !strings.Contains(out, `data-stack="70"`) {
		t.Errorf("focused item should be lifted to stack 70")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(collageScene(t, render.WithFocus(3)))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.Name != presets.NameCollage || out.Flow != scatter.FlowFixed {
		t.Errorf("name/flow = %q/%q", out.Name, out.Flow)
	}
	if out.Focus == nil || *out.Focus != 3 {
		t.Errorf("focus = %v, want 3", out.Focus)
	}
	if len(out.Items) != 6 {
		t.Fatalf("items = %d", len(out.Items))
	}
	for i, it := range out.Items {
		if it.StackOrder != 10+i {
			t.Errorf("item %d stored stack = %d", i, it.StackOrder)
		}
	}
	if out.Items[3].EffectiveStack != 50 || out.Items[2].EffectiveStack != 12 {
		t.Errorf("effective stacks = %d, %d", out.Items[3].EffectiveStack, out.Items[2].EffectiveStack)
	}
	if got := out.PaintOrder[len(out.PaintOrder)-1]; got != 3 {
		t.Errorf("last painted = %d, want 3", got)
	}
	if out.Items[0].Rect.W <= 0 {
		t.Error("rect missing")
	}
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plainLines(s string) []string {
	return strings.Split(ansi.ReplaceAllString(s, ""), "\n")
}

func TestRenderTerminal(t *testing.T) {
	lines := plainLines(RenderTerminal(overlapScene(t), 22))

	if len(lines) != 11 {
		t.Fatalf("got %d lines, want 11:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 22 {
			t.Errorf("line %d has %d cells, want 22", i, n)
		}
	}
	all := strings.Join(lines, "\n")
	if !strings.Contains(lines[0], "AA") || !strings.Contains(all, "BB") {
		t.Errorf("labels missing:\n%s", all)
	}
}

func TestRenderTerminalFocusCovers(t *testing.T) {
	all := strings.Join(plainLines(RenderTerminal(overlapScene(t, render.WithFocus(0)), 22)), "\n")
	if strings.Contains(all, "BB") {
		t.Errorf("focused item 0 should hide item 1:\n%s", all)
	}
}

func TestRenderTerminalDefaultWidth(t *testing.T) {
	lines := plainLines(RenderTerminal(collageScene(t), 0))
	if n := len([]rune(lines[0])); n != DefaultTerminalWidth {
		t.Errorf("width = %d, want %d", n, DefaultTerminalWidth)
	}
}
