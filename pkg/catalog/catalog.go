// Package catalog is the item source for collage layouts: portfolio images,
// the projects that group them, and loaders for catalog files.
//
// Catalog images implement [scatter.SizeHinter], so a slice of [Image] can be
// handed straight to scatter.ComputePlacements. Images without a size fall
// back to the layout's size table.
package catalog

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scatter"
)

// CategoryAll matches every image in Filter.
const CategoryAll = "all"

// Aspect is the orientation of an image.
type Aspect string

// Aspect values.
const (
	AspectPortrait  Aspect = "portrait"
	AspectLandscape Aspect = "landscape"
	AspectSquare    Aspect = "square"
)

// Valid reports whether a is a known aspect or empty.
func (a Aspect) Valid() bool {
	switch a {
	case "", AspectPortrait, AspectLandscape, AspectSquare:
		return true
	}
	return false
}

// Image is one portfolio photograph.
type Image struct {
	ID       string       `json:"id" yaml:"id" toml:"id"`
	Src      string       `json:"src" yaml:"src" toml:"src"`
	Alt      string       `json:"alt" yaml:"alt" toml:"alt"`
	Category string       `json:"category" yaml:"category" toml:"category"`
	Aspect   Aspect       `json:"aspect,omitempty" yaml:"aspect" toml:"aspect"`
	Size     scatter.Size `json:"size,omitempty" yaml:"size" toml:"size"`
	Color    string       `json:"color,omitempty" yaml:"color" toml:"color"`
}

// SizeHint implements scatter.SizeHinter.
func (i Image) SizeHint() (scatter.Size, bool) {
	return i.Size, i.Size.Valid()
}

// Project is a named series of images.
type Project struct {
	Slug        string   `json:"slug" yaml:"slug" toml:"slug"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle" toml:"subtitle"`
	Year        string   `json:"year,omitempty" yaml:"year" toml:"year"`
	Description string   `json:"description,omitempty" yaml:"description" toml:"description"`
	Images      []string `json:"images" yaml:"images" toml:"images"`
}

// Catalog is an ordered collection of images and projects.
type Catalog struct {
	Images   []Image   `json:"images" yaml:"images" toml:"image"`
	Projects []Project `json:"projects,omitempty" yaml:"projects" toml:"project"`
}

// idNamespace scopes derived image IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/collage/catalog"))

// ImageID derives a stable ID for an image source URL.
func ImageID(src string) string {
	return uuid.NewSHA1(idNamespace, []byte(src)).String()
}

// Normalize fills in missing image IDs from their sources. It is called by
// the loaders; callers building a Catalog by hand may call it themselves.
func (c *Catalog) Normalize() {
	for i := range c.Images {
		if c.Images[i].ID == "" {
			c.Images[i].ID = ImageID(c.Images[i].Src)
		}
	}
}

// Validate checks that every image has an http(s) source, a valid size and
// aspect and a unique ID, and that project slugs are present and unique.
func (c *Catalog) Validate() error {
	ids := make(map[string]bool, len(c.Images))
	for i, img := range c.Images {
		if err := validateSrc(img.Src); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "image %d", i)
		}
		if img.Size != scatter.SizeUnset && !img.Size.Valid() {
			return errors.New(errors.ErrCodeInvalidCatalog, "image %d: invalid size", i)
		}
		if !img.Aspect.Valid() {
			return errors.New(errors.ErrCodeInvalidCatalog, "image %d: unknown aspect %q", i, img.Aspect)
		}
		if img.Color != "" && !render.IsHexColor(img.Color) {
			return errors.New(errors.ErrCodeInvalidCatalog, "image %d: color must be #RGB or #RRGGBB, got %q", i, img.Color)
		}
		if img.ID != "" {
			if ids[img.ID] {
				return errors.New(errors.ErrCodeInvalidCatalog, "duplicate image id %q", img.ID)
			}
			ids[img.ID] = true
		}
	}

	slugs := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		if p.Slug == "" {
			return errors.New(errors.ErrCodeInvalidCatalog, "project %d has no slug", i)
		}
		if slugs[p.Slug] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate project slug %q", p.Slug)
		}
		slugs[p.Slug] = true
		for j, src := range p.Images {
			if err := validateSrc(src); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "project %q image %d", p.Slug, j)
			}
		}
	}
	return nil
}

func validateSrc(src string) error {
	if src == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source URL cannot be empty")
	}
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return errors.New(errors.ErrCodeInvalidInput, "source URL must use http or https: %q", src)
	}
	return nil
}

// Filter returns the images in category, in catalog order. The empty
// category and CategoryAll return every image. The result is a new slice.
func (c *Catalog) Filter(category string) []Image {
	if category == "" || category == CategoryAll {
		return append([]Image(nil), c.Images...)
	}
	out := make([]Image, 0, len(c.Images))
	for _, img := range c.Images {
		if img.Category == category {
			out = append(out, img)
		}
	}
	return out
}

// Categories returns CategoryAll followed by every image category in order of
// first appearance.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{CategoryAll: true}
	out := []string{CategoryAll}
	for _, img := range c.Images {
		if img.Category == "" || seen[img.Category] {
			continue
		}
		seen[img.Category] = true
		out = append(out, img.Category)
	}
	return out
}

// Project looks up a project by slug.
func (c *Catalog) Project(slug string) (Project, error) {
	for _, p := range c.Projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Project{}, errors.New(errors.ErrCodeNotFound, "project %q not found", slug)
}

// ProjectImages returns the images of a project as catalog images. Sources
// that match a catalog image, ignoring query strings, inherit its ID, size,
// aspect and color.
func (c *Catalog) ProjectImages(slug string) ([]Image, error) {
	p, err := c.Project(slug)
	if err != nil {
		return nil, err
	}

	known := make(map[string]Image, len(c.Images))
	for _, img := range c.Images {
		known[baseURL(img.Src)] = img
	}

	out := make([]Image, len(p.Images))
	for i, src := range p.Images {
		img := Image{
			ID:       ImageID(src),
			Src:      src,
			Alt:      p.Title,
			Category: p.Slug,
		}
		if k, ok := known[baseURL(src)]; ok {
			img.Size = k.Size
			img.Aspect = k.Aspect
			img.Color = k.Color
			img.Alt = k.Alt
		}
		out[i] = img
	}
	return out, nil
}

// Neighbors returns the previous and next positions around i in a sequence of
// n items, wrapping at both ends. It returns -1, -1 when n is zero.
func Neighbors(i, n int) (prev, next int) {
	if n <= 0 {
		return -1, -1
	}
	i = ((i % n) + n) % n
	return (i - 1 + n) % n, (i + 1) % n
}

func baseURL(src string) string {
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
