package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/scatter"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	ts := httptest.NewServer(New(opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/healthz", 200, "application/json", `"status": "ok"`},
		{"/api/presets", 200, "application/json", `"name": "masonry"`},
		{"/api/presets/editorial", 200, "application/json", `"name": "editorial"`},
		{"/api/catalog", 200, "application/json", `"categories"`},
		{"/api/catalog?category=street", 200, "application/json", `"category": "street"`},
		{"/api/layout/masonry?category=portrait", 200, "application/json", `"placements"`},
		{"/render/collage.svg?focus=1", 200, "image/svg+xml", `data-stack="50"`},
		{"/render/masonry.json", 200, "application/json", `"effective_stack_order"`},
		{"/render/collage.term?width=600", 200, "text/plain; charset=utf-8", ""},
		{"/render/collage.png", 200, "image/png", "PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body missing %q:\n%.400s", tt.contains, body)
			}
			if cc := resp.Header.Get("Cache-Control"); !strings.Contains(cc, "no-store") {
				t.Errorf("Cache-Control = %q", cc)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/api/presets/spiral", 400, errors.ErrCodeInvalidPreset},
		{"/render/collage.gif", 400, errors.ErrCodeInvalidFormat},
		{"/render/collage.svg?focus=x", 400, errors.ErrCodeInvalidInput},
		{"/render/collage.svg?focus=99", 400, errors.ErrCodeInvalidInput},
		{"/render/collage.svg?width=-3", 400, errors.ErrCodeInvalidInput},
		{"/render/collage.png?width=1e9", 400, errors.ErrCodeInvalidInput},
		{"/render/collage.png?width=NaN", 400, errors.ErrCodeInvalidInput},
		{"/api/layout/collage?category=nature&project=x", 400, errors.ErrCodeInvalidInput},
		{"/api/catalog/projects/missing", 404, errors.ErrCodeNotFound},
		{"/nowhere", 404, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("decode error body: %v: %s", err, body)
			}
			if e.Code != tt.code || e.Message == "" {
				t.Errorf("error = %+v, want code %s", e, tt.code)
			}
		})
	}
}

func TestProject(t *testing.T) {
	c := catalog.Default()
	ts := newTestServer(t, WithCatalogSource(NewCatalogSource(c)))
	slug := c.Projects[0].Slug

	resp, body := get(t, ts, "/api/catalog/projects/"+slug)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var p projectResponse
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatal(err)
	}
	if p.Slug != slug || len(p.Items) != len(c.Projects[0].Images) {
		t.Errorf("project = %s with %d items", p.Slug, len(p.Items))
	}

	resp, body = get(t, ts, "/api/layout/collage?project="+slug)
	if resp.StatusCode != 200 {
		t.Fatalf("layout status = %d: %s", resp.StatusCode, body)
	}
	var l pipeline.Layout
	if err := json.Unmarshal(body, &l); err != nil {
		t.Fatal(err)
	}
	if len(l.Placements) != len(p.Items) {
		t.Errorf("placements = %d, want %d", len(l.Placements), len(p.Items))
	}
}

func TestLayoutIsRecomputedPerRequest(t *testing.T) {
	ts := newTestServer(t)

	var first, second pipeline.Layout
	for _, dst := range []*pipeline.Layout{&first, &second} {
		_, body := get(t, ts, "/api/layout/collage")
		if err := json.Unmarshal(body, dst); err != nil {
			t.Fatal(err)
		}
	}
	for i := range first.Placements {
		if first.Placements[i] != second.Placements[i] {
			t.Errorf("placement %d differs between requests", i)
		}
	}
}

func writeCatalog(t *testing.T, path string, n int) {
	t.Helper()
	c := &catalog.Catalog{}
	for i := range n {
		c.Images = append(c.Images, catalog.Image{
			Src:      "https://example.com/" + string(rune('a'+i)) + ".jpg",
			Category: "test",
			Size:     scatter.SizeSmall,
		})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := catalog.Encode(f, c, catalog.FormatYAML); err != nil {
		t.Fatal(err)
	}
}

func TestCatalogSourceReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, 2)

	src, err := LoadCatalogSource(path)
	if err != nil {
		t.Fatalf("LoadCatalogSource: %v", err)
	}
	if n := len(src.Get().Images); n != 2 {
		t.Fatalf("images = %d", n)
	}

	writeCatalog(t, path, 3)
	if err := src.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if n := len(src.Get().Images); n != 3 || src.Version() != 1 {
		t.Errorf("after reload: %d images, version %d", n, src.Version())
	}

	if err := os.WriteFile(path, []byte("images: [{src: ftp://bad}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := src.Reload(context.Background()); err == nil {
		t.Error("invalid catalog should fail to reload")
	}
	if n := len(src.Get().Images); n != 3 {
		t.Errorf("failed reload replaced catalog: %d images", n)
	}

	if err := NewCatalogSource(catalog.Default()).Reload(context.Background()); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("fixed source reload: %v", err)
	}
}

func TestCatalogSourceWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, 1)
	src, err := LoadCatalogSource(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Watch(ctx, quietLogger()) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// The watcher may not be registered yet; keep rewriting until it sees one.
	deadline := time.Now().Add(5 * time.Second)
	for src.Version() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("watcher never reloaded the catalog")
		}
		writeCatalog(t, path, 4)
		time.Sleep(50 * time.Millisecond)
	}
	if n := len(src.Get().Images); n != 4 {
		t.Errorf("images = %d, want 4", n)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := New(WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
