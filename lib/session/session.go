// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists the QuickDesk auth token between runs.
//
// The token is opaque to the client: it is whatever the server issued
// at login, stored in a JSON file and attached as a bearer header to
// every request. Analogous to SSH keys — log in once, then transparent
// until the token expires or the user logs out.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the persisted authentication state.
type Session struct {
	// Token is the opaque bearer token issued by the server at login.
	Token string `json:"token"`
}

// FilePath returns the path of the session file. Checks the
// QUICKDESK_SESSION_FILE environment variable first, then falls back
// to ~/.config/quickdesk/session.json (honoring XDG_CONFIG_HOME).
func FilePath() string {
	if envPath := os.Getenv("QUICKDESK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "quickdesk-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "quickdesk", "session.json")
}

// Load reads the session from the well-known path. A missing file is
// not an error: it returns nil, meaning no one is logged in.
func Load() (*Session, error) {
	return LoadFrom(FilePath())
}

// LoadFrom reads a session from a specific file path.
func LoadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var stored Session
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if stored.Token == "" {
		// A session file without a token is as good as no session.
		return nil, nil
	}
	return &stored, nil
}

// Save writes the session to the well-known path. Creates the parent
// directory with mode 0700 if needed; the file itself is written with
// mode 0600 since the token grants account access.
func Save(stored *Session) error {
	return SaveTo(FilePath(), stored)
}

// SaveTo writes a session to a specific file path.
func SaveTo(path string, stored *Session) error {
	if stored == nil || stored.Token == "" {
		return fmt.Errorf("refusing to save empty session")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// Clear removes the session file. Removing an already-absent file is
// not an error, so logout is idempotent.
func Clear() error {
	return ClearAt(FilePath())
}

// ClearAt removes a session file at a specific path.
func ClearAt(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file %s: %w", path, err)
	}
	return nil
}
