package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scatter/presets"
	"github.com/matzehuels/collage/pkg/server"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "COLLAGE"

	cfgKeyPreset  = "preset"
	cfgKeyCatalog = "catalog"
	cfgKeyWidth   = "width"
	cfgKeyFormats = "formats"
	cfgKeyAddr    = "addr"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# collage configuration
# Command-line flags override these values; so do COLLAGE_* environment variables.

# Layout preset: collage, masonry, editorial
preset: collage

# Catalog file (.json, .yaml, .toml); empty uses the built-in catalog
# catalog:

# Frame width in pixels
width: 1200

# Formats written by "collage render"
formats: [svg]

# Listen address for "collage serve"
addr: ":8080"
`

// loadConfig reads the collage config. An explicit path must exist; without
// one, config.yaml in the XDG config directory is created on first run and a
// missing file is not an error.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyPreset, presets.Default)
	v.SetDefault(cfgKeyWidth, render.DefaultWidth)
	v.SetDefault(cfgKeyFormats, []string{render.FormatSVG})
	v.SetDefault(cfgKeyAddr, server.DefaultAddr)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
		return v, nil
	}

	dir, err := configDir()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve config dir")
	}
	if err := ensureConfigDir(dir); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "ensure config dir")
	}
	if err := ensureDefaultConfigFile(dir); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "ensure default config")
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return v, nil
}

func ensureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml exists.
func ensureDefaultConfigFile(dir string) error {
	path := filepath.Join(dir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
