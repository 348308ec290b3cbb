// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth owns the client's authentication state: either
// anonymous or authenticated as a resolved user. It is the single
// writer of the persisted session token and the API client's bearer
// token; everything else reads role predicates from it.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/session"
)

// Manager tracks the current user. A nil current user means anonymous.
//
// Manager is not safe for concurrent use; the TUI's single-threaded
// update loop and the one-shot CLI commands are its only callers.
type Manager struct {
	client      *api.Client
	sessionPath string
	logger      *slog.Logger
	currentUser *api.User
}

// NewManager creates a Manager bound to the given API client and
// session file path. A nil logger discards. The manager starts
// anonymous; call Init to restore a persisted session.
func NewManager(client *api.Client, sessionPath string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		client:      client,
		sessionPath: sessionPath,
		logger:      logger,
	}
}

// Init restores authentication from the stored token, if any. Callers
// must not consult role predicates or load auth-gated pages until Init
// returns — it defines the initial state.
//
// A stored token that the server rejects as invalid or expired is
// cleared, leaving the manager anonymous. A transport failure also
// leaves the manager anonymous but keeps the stored token, so the next
// launch can retry against a reachable server.
func (manager *Manager) Init(ctx context.Context) error {
	stored, err := session.LoadFrom(manager.sessionPath)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if stored == nil {
		return nil
	}

	manager.client.SetToken(stored.Token)
	user, err := manager.client.CurrentUser(ctx)
	if err != nil {
		manager.client.SetToken("")
		if api.IsAuthError(err) {
			manager.logger.Info("stored token rejected, clearing session")
			if clearErr := session.ClearAt(manager.sessionPath); clearErr != nil {
				manager.logger.Warn("clearing rejected session", "error", clearErr)
			}
			return nil
		}
		manager.logger.Warn("could not validate stored token", "error", err)
		return nil
	}

	manager.currentUser = user
	manager.logger.Info("session restored", "username", user.Username, "role", user.Role)
	return nil
}

// Login exchanges credentials for a token, persists it, and
// transitions to authenticated. On error the manager stays anonymous
// and the error carries the server's message.
func (manager *Manager) Login(ctx context.Context, email, password string) error {
	result, err := manager.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	manager.client.SetToken(result.Token)
	manager.currentUser = &result.User

	// A failed write means the login won't survive a restart, but the
	// in-memory session is live; warn and carry on.
	if err := session.SaveTo(manager.sessionPath, &session.Session{Token: result.Token}); err != nil {
		manager.logger.Warn("persisting session", "error", err)
	}

	manager.logger.Info("logged in", "username", result.User.Username, "role", result.User.Role)
	return nil
}

// Register creates an account. Registration does not authenticate —
// the user logs in afterward with the new credentials.
func (manager *Manager) Register(ctx context.Context, registration api.RegisterRequest) error {
	return manager.client.Register(ctx, registration)
}

// Logout drops the in-memory identity and the persisted token.
// Callable at any time, including while anonymous.
func (manager *Manager) Logout() {
	manager.currentUser = nil
	manager.client.SetToken("")
	if err := session.ClearAt(manager.sessionPath); err != nil {
		manager.logger.Warn("clearing session", "error", err)
	}
	manager.logger.Info("logged out")
}

// CurrentUser returns the authenticated user, or nil when anonymous.
func (manager *Manager) CurrentUser() *api.User {
	return manager.currentUser
}

// IsLoggedIn reports whether a user is authenticated.
func (manager *Manager) IsLoggedIn() bool {
	return manager.currentUser != nil
}

// IsAdmin reports whether the current user has the admin role.
func (manager *Manager) IsAdmin() bool {
	return manager.currentUser != nil && manager.currentUser.Role == "admin"
}

// IsAgent reports whether the current user has agent privileges.
// Admins count as agents.
func (manager *Manager) IsAgent() bool {
	return manager.currentUser != nil &&
		(manager.currentUser.Role == "agent" || manager.currentUser.Role == "admin")
}
