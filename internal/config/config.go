// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config resolves the scan settings from flags, environment, and an
// optional YAML config file, in that precedence order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"keyscan/internal/matcher"
)

// Defaults applied when neither flags, environment, nor config file set a
// value.
const (
	DefaultMatchMode = "whole"
	DefaultTimeout   = 2 * time.Minute
)

// Config holds one scan run's settings.
type Config struct {
	// Dir is the folder to scan. Exactly one of Dir or (Root, Name) must be
	// set: Name selects a folder by name somewhere under Root.
	Dir  string `mapstructure:"dir"`
	Root string `mapstructure:"root"`
	Name string `mapstructure:"name"`

	// Taxonomy is an optional YAML file overriding the built-in keyword
	// taxonomy.
	Taxonomy string `mapstructure:"taxonomy"`

	// Match selects the counting mode, "whole" or "substring".
	Match string `mapstructure:"match"`

	// XLSX additionally writes a spreadsheet mirror of the detailed report.
	XLSX bool `mapstructure:"xlsx"`

	Quiet   bool          `mapstructure:"quiet"`
	NoColor bool          `mapstructure:"no_color"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load unmarshals and validates the scan settings from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if cfg.Match == "" {
		cfg.Match = DefaultMatchMode
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings consistency before any filesystem work starts.
func (c *Config) Validate() error {
	switch {
	case c.Dir != "" && c.Name != "":
		return fmt.Errorf("--dir and --name are mutually exclusive")
	case c.Dir == "" && c.Name == "":
		return fmt.Errorf("either --dir or --name must be set")
	case c.Name != "" && c.Root == "":
		return fmt.Errorf("--name requires --root")
	}

	if _, err := matcher.ParseMode(c.Match); err != nil {
		return err
	}

	if c.Taxonomy != "" {
		if _, err := os.Stat(c.Taxonomy); err != nil {
			return fmt.Errorf("taxonomy file %s: %w", c.Taxonomy, err)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
