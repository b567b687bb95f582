// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EngineConfig holds the settings applied to every evaluation session.
type EngineConfig struct {
	Timeout      time.Duration `yaml:"timeout" description:"Watchdog budget per evaluation, e.g. 5s (0 = unlimited)" default:"0"`
	Integers     bool          `yaml:"integers" description:"Classify integral numbers as uint32/int32 before falling back to float" default:"false"`
	MaxDepth     int           `yaml:"max_depth" description:"Maximum nesting converted from arrays and objects (-1 = unlimited)" default:"1000"`
	FieldNameTag string        `yaml:"field_name_tag" description:"Struct tag used to name fields of host values exposed to scripts" default:"json"`
}

// Config holds isojs configuration settings
type Config struct {
	Engine EngineConfig `yaml:"engine" description:"Evaluation session settings"`

	Output      string `yaml:"output" description:"Result format: debug, json or pretty" default:"debug"`
	Color       string `yaml:"color" description:"Colored output: auto, always or never" default:"auto"`
	PrettyWidth int    `yaml:"pretty_width" description:"Truncate pretty results to this many cells (0 = no limit)" default:"120"`
	HistoryFile string `yaml:"history_file" description:"REPL history file (relative to data dir)" default:"history"`
}

// Output formats.
const (
	OutputDebug  = "debug"
	OutputJSON   = "json"
	OutputPretty = "pretty"
)

// DefaultConfig returns the default configuration for runtime use.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			MaxDepth:     1000,
			FieldNameTag: "json",
		},
		Output:      OutputDebug,
		Color:       ColorAuto,
		PrettyWidth: 120,
		HistoryFile: "history",
	}
}

// DataDirEnv overrides the default data directory.
const DataDirEnv = "ISOJS_DATA"

// GetDataDir returns the data directory.
// Resolution order: -d flag > ISOJS_DATA env var > ~/.isojs
func GetDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envDir := os.Getenv(DataDirEnv); envDir != "" {
		return envDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "" // Can't determine default
	}
	return filepath.Join(home, ".isojs")
}

// GetConfigPath returns the path to the config file in the data directory.
// Returns empty string if dataDir is empty.
func GetConfigPath(dataDir string) string {
	if dataDir == "" {
		return ""
	}
	return filepath.Join(dataDir, "config.yaml")
}

// LoadConfig loads configuration from config.yaml in the data directory.
// If dataDir is empty or the file doesn't exist, returns default config.
// A relative history file is resolved against the data directory.
func LoadConfig(dataDir string) (Config, error) {
	config, err := LoadConfigFromPath(GetConfigPath(dataDir))
	if err != nil {
		return config, err
	}
	if dataDir != "" {
		config.HistoryFile = ResolvePath(config.HistoryFile, dataDir)
	}
	return config, nil
}

// LoadConfigFromPath loads configuration from the specified path.
// If path is empty or the file doesn't exist, returns default config.
func LoadConfigFromPath(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig overlays YAML data on the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputDebug, OutputJSON, OutputPretty:
	default:
		return fmt.Errorf("invalid output '%s' in config (must be debug, json or pretty)", c.Output)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color '%s' in config (must be auto, always or never)", c.Color)
	}
	if c.Engine.Timeout < 0 {
		return fmt.Errorf("engine.timeout must not be negative")
	}
	if c.PrettyWidth < 0 {
		return fmt.Errorf("pretty_width must not be negative")
	}
	return nil
}

// ResolvePath returns path unchanged if absolute or empty, otherwise joined with base.
func ResolvePath(path, base string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
