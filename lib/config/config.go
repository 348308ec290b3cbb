// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the QuickDesk
// client.
//
// Configuration is loaded from a single YAML file specified by:
//   - QUICKDESK_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There is no discovery chain. When neither is set, built-in defaults
// apply, so the client works against a local server with no setup.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// Server is the base URL of the help-desk REST backend. The API
	// path prefix ("/api") is appended by the client.
	Server string `yaml:"server"`

	// RequestTimeout bounds each API call.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// SearchDebounce is the quiet period after the last search
	// keystroke before a list fetch fires.
	SearchDebounce time.Duration `yaml:"search_debounce"`

	// LogFile receives structured logs from the TUI. Empty disables
	// file logging (command-line subcommands still log to stderr).
	LogFile string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:         "http://localhost:5000",
		RequestTimeout: 15 * time.Second,
		SearchDebounce: 300 * time.Millisecond,
	}
}

// Load reads configuration from flagPath if non-empty, otherwise from
// the QUICKDESK_CONFIG environment variable, otherwise returns
// Default(). A configured-but-unreadable file is an error; partial
// files inherit defaults for unset fields.
func Load(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv("QUICKDESK_CONFIG")
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates configuration from a specific path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	configuration := Default()
	if err := yaml.Unmarshal(data, configuration); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := configuration.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return configuration, nil
}

// Validate checks field constraints.
func (configuration *Config) Validate() error {
	if configuration.Server == "" {
		return fmt.Errorf("server must not be empty")
	}
	if configuration.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if configuration.SearchDebounce < 0 {
		return fmt.Errorf("search_debounce must not be negative")
	}
	return nil
}
