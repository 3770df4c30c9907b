package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable consulted when no -config flag is given.
const EnvConfig = "ROADGEN_CONFIG"

// searchNames are tried in the working directory, then in ConfigDir.
var searchNames = []string{"roadgen.yaml", "roadgen.yml"}

// Load builds the configuration from defaults, then the first config file
// found, then command-line flags. The file used is recorded in Source.
func Load() (*Config, error) {
	cfg := Default()

	path, err := locate()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg.Source = path
	}

	applyFlags(cfg)
	return cfg, nil
}

// locate resolves the config file: -config, then $ROADGEN_CONFIG, then the
// search locations. An explicit path that does not exist is an error; an
// empty result means defaults only.
func locate() (string, error) {
	for _, explicit := range []string{ConfigPath(), os.Getenv(EnvConfig)} {
		if explicit == "" {
			continue
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}

	for _, dir := range []string{".", ConfigDir()} {
		for _, name := range searchNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", nil
}

// ConfigDir returns the per-user roadgen config directory.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "roadgen")
}

// loadFromFile merges a YAML file into cfg. Unknown keys are rejected so a
// misspelled parameter does not silently fall back to its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
