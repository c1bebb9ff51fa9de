package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Save writes the config to the user's config directory as YAML.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "fractal.yaml"))
}

// SaveTo writes the config to a specific path, as TOML when the extension is
// .toml and YAML otherwise.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.Marshal(filepath.Ext(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal encodes the config for a file extension.
func (c *Config) Marshal(ext string) ([]byte, error) {
	if strings.EqualFold(ext, ".toml") {
		return toml.Marshal(c)
	}
	return yaml.Marshal(c)
}
