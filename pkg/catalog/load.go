package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/collage/pkg/errors"
)

// File formats accepted by Load and Decode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatForPath returns the catalog format implied by a file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported catalog file %q (must be .json, .yaml, .yml or .toml)", filepath.Base(path))
}

// Load reads, normalizes and validates a catalog file.
func Load(path string) (*Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read catalog %s", path)
	}

	return Decode(bytes.NewReader(data), format)
}

// Decode parses a catalog in the given format, fills in missing IDs and
// validates the result.
func Decode(r io.Reader, format string) (*Catalog, error) {
	var c Catalog
	var err error

	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&c)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&c)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&c)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode %s catalog", format)
	}

	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Encode writes c in the given format.
func Encode(w io.Writer, c *Catalog, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported catalog format %q", format)
}
