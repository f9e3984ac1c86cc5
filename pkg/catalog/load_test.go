package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/scatter"
)

const yamlCatalog = `
images:
  - src: https://example.com/a.jpg
    alt: First
    category: street
    size: large
  - id: custom
    src: https://example.com/b.jpg
    category: nature
projects:
  - slug: walk
    title: Walk
    images:
      - https://example.com/a.jpg?w=1400
`

const tomlCatalog = `
[[image]]
src = "https://example.com/a.jpg"
category = "street"
size = "small"
aspect = "portrait"

[[project]]
slug = "walk"
title = "Walk"
images = ["https://example.com/a.jpg"]
`

const jsonCatalog = `{"images":[{"src":"https://example.com/a.jpg","size":"medium"}]}`

func TestDecode(t *testing.T) {
	tests := []struct {
		format   string
		input    string
		images   int
		projects int
		size     scatter.Size
	}{
		{FormatYAML, yamlCatalog, 2, 1, scatter.SizeLarge},
		{FormatTOML, tomlCatalog, 1, 1, scatter.SizeSmall},
		{FormatJSON, jsonCatalog, 1, 0, scatter.SizeMedium},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			c, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(c.Images) != tt.images || len(c.Projects) != tt.projects {
				t.Errorf("got %d images, %d projects", len(c.Images), len(c.Projects))
			}
			if c.Images[0].Size != tt.size {
				t.Errorf("size = %v, want %v", c.Images[0].Size, tt.size)
			}
			if c.Images[0].ID != ImageID("https://example.com/a.jpg") {
				t.Errorf("ID = %q, want derived id", c.Images[0].ID)
			}
		})
	}
}

func TestDecodeKeepsExplicitID(t *testing.T) {
	c, err := Decode(strings.NewReader(yamlCatalog), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if c.Images[1].ID != "custom" {
		t.Errorf("ID = %q, want custom", c.Images[1].ID)
	}
	if c.Images[1].Size != scatter.SizeUnset {
		t.Errorf("Size = %v, want unset", c.Images[1].Size)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		code   errors.Code
	}{
		{"bad json", FormatJSON, `{"images": [`, errors.ErrCodeInvalidCatalog},
		{"bad size", FormatJSON, `{"images":[{"src":"https://x/a.jpg","size":"huge"}]}`, errors.ErrCodeInvalidCatalog},
		{"bad src", FormatYAML, "images:\n  - src: a.jpg\n", errors.ErrCodeInvalidCatalog},
		{"unknown format", "xml", "<catalog/>", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "catalog.yml")
	if err := os.WriteFile(path, []byte(yamlCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Images) != 2 {
		t.Errorf("images = %d", len(c.Images))
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want FILE_NOT_FOUND", err)
	}

	_, err = Load(filepath.Join(dir, "catalog.csv"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("csv err = %v, want INVALID_FORMAT", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, Default(), format); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			c, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(c.Images) != 12 || len(c.Projects) != 4 {
				t.Fatalf("round trip lost data: %d images, %d projects", len(c.Images), len(c.Projects))
			}
			if c.Images[4].Size != scatter.SizeSmall || c.Images[4].Aspect != AspectPortrait {
				t.Errorf("image 5 = %+v", c.Images[4])
			}
		})
	}
}
