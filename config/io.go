// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Open reads the file at the given path into cfg, using TOML for
// .toml files and YAML for .yaml and .yml files. Fields that are
// not present in the file keep their current values.
func Open(cfg any, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext(path) {
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("config.Open: unsupported file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("config.Open %s: %w", path, err)
	}
	return nil
}

// Save writes cfg to the file at the given path, choosing
// the format from its extension in the same way as [Open].
func Save(cfg any, path string) error {
	var b []byte
	var err error
	switch ext(path) {
	case ".toml":
		b, err = toml.Marshal(cfg)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("config.Save: unsupported file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("config.Save %s: %w", path, err)
	}
	return os.WriteFile(path, b, 0o666)
}

// Load returns a new default [Config] overlaid with the
// file at path (if path is non-empty), and validated.
func Load(path string) (*Config, error) {
	cfg := New()
	if path != "" {
		if err := Open(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
