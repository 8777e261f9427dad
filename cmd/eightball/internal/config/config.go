// Package config loads the appliance configuration file.
//
// The file lives in the OS config directory (~/.config/eightball/
// config.yaml on Linux) and every field is optional; missing values
// fall back to defaults, and a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// DefaultCatalogFile is the catalog document path inside the data dir.
const DefaultCatalogFile = "responses.json"

// Config is the appliance configuration.
type Config struct {
	// DataDir is the root of the appliance's file store: the catalog
	// document and the WAV/bitmap resources it references.
	DataDir string `yaml:"data_dir,omitempty"`

	// Catalog is the catalog document path, relative to DataDir.
	Catalog string `yaml:"catalog,omitempty"`

	// Volume is the playback level (1..255).
	Volume int `yaml:"volume,omitempty"`

	// MicWAV optionally names a WAV file (relative to DataDir) used as
	// the microphone source when no capture hardware is available.
	MicWAV string `yaml:"mic_wav,omitempty"`

	// SpeakerWAV optionally names a file (relative to DataDir) that
	// played answer audio is recorded to.
	SpeakerWAV string `yaml:"speaker_wav,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("config: resolve config dir: %w", err)
	}
	return &Config{
		DataDir: filepath.Join(dir, "eightball"),
		Catalog: DefaultCatalogFile,
		Volume:  255,
	}, nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "eightball", "config.yaml"), nil
}

// Load reads the config file, falling back to defaults for a missing
// file and for any unset field.
func Load() (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.merge(&file)
	return cfg, nil
}

// merge overlays non-zero fields from other.
func (c *Config) merge(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.Catalog != "" {
		c.Catalog = other.Catalog
	}
	if other.Volume != 0 {
		c.Volume = other.Volume
	}
	if other.MicWAV != "" {
		c.MicWAV = other.MicWAV
	}
	if other.SpeakerWAV != "" {
		c.SpeakerWAV = other.SpeakerWAV
	}
}
