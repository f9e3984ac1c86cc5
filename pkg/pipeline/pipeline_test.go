package pipeline

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/observability"
	"github.com/matzehuels/collage/pkg/scatter"
	"github.com/matzehuels/collage/pkg/scatter/presets"
)

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		want    []string
		wantErr bool
	}{
		{[]string{"svg", "png"}, []string{"svg", "png"}, false},
		{[]string{"SVG", "terminal", "svg"}, []string{"svg", "term"}, false},
		{nil, []string{}, false},
		{[]string{"svg", "pdf"}, nil, true},
	}

	for _, tt := range tests {
		got, err := ValidateFormats(tt.formats)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ValidateFormats(%v) = %v, want %v", tt.formats, got, tt.want)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Preset != DefaultPreset {
		t.Errorf("Preset = %q, want %q", opts.Preset, DefaultPreset)
	}
	if !reflect.DeepEqual(opts.Formats, []string{"svg"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Width != DefaultWidth || opts.Gap != DefaultGap || opts.TermWidth != DefaultTermWidth || opts.Scale != DefaultScale {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent: a second call changes nothing.
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before.Formats, opts.Formats) || before.Preset != opts.Preset {
		t.Error("second call changed options")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"preset and file", Options{Preset: "collage", LayoutFile: "x.toml"}, errors.ErrCodeInvalidInput},
		{"category and project", Options{Category: "nature", Project: "neon-nights"}, errors.ErrCodeInvalidInput},
		{"unknown preset", Options{Preset: "spiral"}, errors.ErrCodeInvalidPreset},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidInput},
		{"huge width", Options{Width: 1e9}, errors.ErrCodeInvalidInput},
		{"NaN width", Options{Width: math.NaN()}, errors.ErrCodeInvalidInput},
		{"infinite width", Options{Width: math.Inf(1)}, errors.ErrCodeInvalidInput},
		{"huge cell height", Options{CellHeight: MaxCellHeight + 1}, errors.ErrCodeInvalidInput},
		{"huge gap", Options{Gap: 1e6}, errors.ErrCodeInvalidInput},
		{"huge term width", Options{TermWidth: 1 << 30}, errors.ErrCodeInvalidInput},
		{"huge scale", Options{Scale: 1e3}, errors.ErrCodeInvalidInput},
		{"negative focus", Options{Focus: FocusOn(-1)}, errors.ErrCodeInvalidInput},
		{"negative layer", Options{EmphasisLayer: -5}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), Options{
		Formats: []string{"svg", "png", "json", "term"},
		Focus:   FocusOn(2),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Config.Name != presets.NameCollage {
		t.Errorf("config = %q", result.Config.Name)
	}
	if n := len(catalog.Default().Images); result.Stats.Items != n || len(result.Placements) != n {
		t.Errorf("items = %d, placements = %d, want %d", result.Stats.Items, len(result.Placements), n)
	}
	for _, f := range []string{"svg", "png", "json", "term"} {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !strings.Contains(string(result.Artifacts["svg"]), `data-stack="50"`) {
		t.Error("focused item should be lifted to the collage emphasis layer")
	}
	if result.Placements[2].StackOrder != 12 {
		t.Errorf("stored stack order = %d, want 12", result.Placements[2].StackOrder)
	}
}

func TestExecuteFocusOutOfRange(t *testing.T) {
	_, err := NewRunner(nil).Execute(context.Background(), Options{Category: "fashion", Focus: FocusOn(5)})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestLayoutCategoryAndProject(t *testing.T) {
	runner := NewRunner(nil)
	ctx := context.Background()

	l, err := runner.Layout(ctx, Options{Preset: presets.NameMasonry, Category: "portrait"})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Items) != 3 || len(l.Placements) != 3 {
		t.Errorf("portrait: %d items", len(l.Items))
	}
	for i, p := range l.Placements {
		if p.Size != l.Items[i].Size {
			t.Errorf("item %d size = %v, want hint %v", i, p.Size, l.Items[i].Size)
		}
	}

	l, err = runner.Layout(ctx, Options{Category: "nope"})
	if err != nil || len(l.Placements) != 0 {
		t.Errorf("unknown category: %v, %d placements", err, len(l.Placements))
	}

	cat := catalog.Default()
	slug := cat.Projects[0].Slug
	l, err = runner.Layout(ctx, Options{Project: slug, Catalog: cat})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Items) != len(cat.Projects[0].Images) {
		t.Errorf("project items = %d", len(l.Items))
	}

	if _, err := runner.Layout(ctx, Options{Project: "missing"}); !errors.IsNotFound(err) {
		t.Errorf("missing project: %v", err)
	}
}

func TestLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.toml")
	content := "span = [\"wide\"]\nrotations = [1.0, -1.0]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := NewRunner(nil).Layout(context.Background(), Options{LayoutFile: path})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if l.Config.Name != "strip" {
		t.Errorf("name = %q", l.Config.Name)
	}
	if l.Placements[1].Rotation != -1 || l.Placements[2].Rotation != 1 {
		t.Errorf("rotations = %v, %v", l.Placements[1].Rotation, l.Placements[2].Rotation)
	}
}

func TestLayoutConfigErrorStopsRun(t *testing.T) {
	// Items without size hints need the fallback table this file omits.
	path := filepath.Join(t.TempDir(), "nosizes.yaml")
	if err := os.WriteFile(path, []byte("spans: [tall]\nrotations: [0]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cat := &catalog.Catalog{Images: []catalog.Image{{ID: "a", Src: "https://example.com/a.jpg"}}}

	result, err := NewRunner(nil).Execute(context.Background(), Options{LayoutFile: path, Catalog: cat})
	if !scatter.IsConfigError(err) {
		t.Errorf("error = %v, want config error", err)
	}
	if result != nil {
		t.Error("no partial result on config error")
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(nil).Execute(ctx, Options{}); err == nil {
		t.Error("expected context error")
	}
}

func TestLayoutJSON(t *testing.T) {
	l, err := NewRunner(nil).Layout(context.Background(), Options{Category: "nature"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	var back Layout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Placements, l.Placements) {
		t.Errorf("placements changed through JSON:\n%+v\n%+v", back.Placements, l.Placements)
	}
}

type recordingHooks struct {
	observability.NoopLayoutHooks
	observability.NoopRenderHooks

	mu      sync.Mutex
	layouts []string
	renders [][]string
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, config string, items int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts = append(h.layouts, config)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders = append(h.renders, formats)
}

func TestHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetLayoutHooks(h)
	observability.SetRenderHooks(h)
	t.Cleanup(observability.Reset)

	if _, err := NewRunner(nil).Execute(context.Background(), Options{Formats: []string{"json"}}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(h.layouts, []string{"collage"}) {
		t.Errorf("layout hooks = %v", h.layouts)
	}
	if len(h.renders) != 1 || h.renders[0][0] != "json" {
		t.Errorf("render hooks = %v", h.renders)
	}
}
