// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads uritool settings from YAML or TOML files and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MaxWorkers bounds Config.Workers.
const MaxWorkers = 256

// Config holds the settings shared by all uritool commands.
type Config struct {
	// RulesFile is a public suffix list in its text format. Empty means
	// the built-in list.
	RulesFile      string `yaml:"rules_file" toml:"rules_file"`
	IncludePrivate bool   `yaml:"include_private" toml:"include_private"`
	IncludeUnknown bool   `yaml:"include_unknown" toml:"include_unknown"`
	StrictMerge    bool   `yaml:"strict_merge" toml:"strict_merge"`
	LogLevel       string `yaml:"log_level" toml:"log_level"`
	Workers        int    `yaml:"workers" toml:"workers"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Workers:  4,
	}
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. The format follows the extension:
// ".yaml" or ".yml" for YAML, ".toml" for TOML. An empty path skips the file.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := decode(&c, path, data); err != nil {
			return Config{}, err
		}
	}
	if err := c.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func decode(c *Config, path string, data []byte) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return fmt.Errorf("config: %s: unknown key %q", path, undec[0].String())
		}
	default:
		return fmt.Errorf("config: %s: unsupported format %q", path, ext)
	}
	return nil
}

// applyEnv overrides fields from URIKIT_* variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("URIKIT_RULES_FILE"); v != "" {
		c.RulesFile = v
	}
	if v := getenv("URIKIT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("URIKIT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: URIKIT_WORKERS: %w", err)
		}
		c.Workers = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("config: workers must be in [1, %d], got %d", MaxWorkers, c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns LogLevel as a slog level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}
