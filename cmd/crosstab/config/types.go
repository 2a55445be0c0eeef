// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the crosstab YAML configuration from
// ~/.crosstab/crosstab.yaml, creating it with defaults on first run.
package config

// CurrentConfigVersion tracks the config schema version written to new
// config files.
const CurrentConfigVersion = "1"

// CrosstabConfig is the root of the YAML configuration.
type CrosstabConfig struct {
	// Meta: config file bookkeeping
	Meta MetaConfig `yaml:"meta"`

	// Display: table glyphs and terminal personality
	Display DisplayConfig `yaml:"display"`

	// Export: where 'save' appends full table renderings
	Export ExportConfig `yaml:"export"`

	// Logging: structured log destination and level
	Logging LoggingConfig `yaml:"logging"`

	// Dataset: optional file to load automatically on browse start
	Dataset DatasetConfig `yaml:"dataset"`
}

type MetaConfig struct {
	Version string `yaml:"version" validate:"required"`
}

type DisplayConfig struct {
	// Glyphs selects the table border character set. Empty falls back
	// to ascii at wiring time.
	Glyphs string `yaml:"glyphs" validate:"omitempty,oneof=ascii box"`

	// Personality overrides the autodetected UX level when non-empty.
	Personality string `yaml:"personality" validate:"omitempty,oneof=full standard minimal machine"`
}

type ExportConfig struct {
	// Path is the append-only export file. Supports ~ expansion.
	Path string `yaml:"path" validate:"required"`
}

type LoggingConfig struct {
	// Level empty falls back to info at wiring time.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Dir   string `yaml:"dir"`
	JSON  bool   `yaml:"json"`
}

type DatasetConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() CrosstabConfig {
	return CrosstabConfig{
		Meta: MetaConfig{Version: CurrentConfigVersion},
		Display: DisplayConfig{
			Glyphs: "ascii",
		},
		Export: ExportConfig{
			Path: "~/.crosstab/exports.txt",
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "~/.crosstab/logs",
		},
	}
}
