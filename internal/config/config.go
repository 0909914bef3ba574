// Package config persists reactor configurations as YAML and ships the
// named machine presets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tokasim/internal/reactor"
)

// Load reads a reactor configuration from path. Fields absent from the
// file keep their defaults; unknown keys are rejected so a typo in a
// numeric field cannot silently fall back to the default value.
func Load(path string) (reactor.Config, error) {
	cfg := reactor.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return reactor.DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg reactor.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
