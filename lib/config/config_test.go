// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	configuration := Default()

	if configuration.Server != "http://localhost:5000" {
		t.Errorf("server: got %s", configuration.Server)
	}
	if configuration.SearchDebounce != 300*time.Millisecond {
		t.Errorf("search_debounce: got %s", configuration.SearchDebounce)
	}
	if configuration.RequestTimeout != 15*time.Second {
		t.Errorf("request_timeout: got %s", configuration.RequestTimeout)
	}
}

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	t.Setenv("QUICKDESK_CONFIG", "")

	configuration, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if configuration.Server != Default().Server {
		t.Errorf("expected default server, got %s", configuration.Server)
	}
}

func TestLoadFile_PartialInheritsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server: https://desk.example.com\nsearch_debounce: 150ms\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	configuration, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if configuration.Server != "https://desk.example.com" {
		t.Errorf("server: got %s", configuration.Server)
	}
	if configuration.SearchDebounce != 150*time.Millisecond {
		t.Errorf("search_debounce: got %s", configuration.SearchDebounce)
	}
	// Unset field keeps the default.
	if configuration.RequestTimeout != 15*time.Second {
		t.Errorf("request_timeout: got %s", configuration.RequestTimeout)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: \"\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error for empty server")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing configured file")
	}
}

func TestLoad_EnvVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: http://env.example\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUICKDESK_CONFIG", path)

	configuration, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if configuration.Server != "http://env.example" {
		t.Errorf("server: got %s", configuration.Server)
	}
}
