// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/auth"
	"github.com/quickdesk/quickdesk/lib/config"
	"github.com/quickdesk/quickdesk/lib/session"
)

// app bundles the pieces every subcommand needs: resolved
// configuration, an API client pointed at the configured server, and
// the authentication manager bound to the local session file.
type app struct {
	config  *config.Config
	client  *api.Client
	manager *auth.Manager
}

// newApp loads configuration and wires the client and auth manager.
// It does not touch the network; call restoreSession for that.
func newApp(configPath string, logger *slog.Logger) (*app, error) {
	configuration, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return newAppFromConfig(configuration, logger), nil
}

func newAppFromConfig(configuration *config.Config, logger *slog.Logger) *app {
	client := api.New(configuration.Server, configuration.RequestTimeout)
	manager := auth.NewManager(client, session.FilePath(), logger)
	return &app{
		config:  configuration,
		client:  client,
		manager: manager,
	}
}

// restoreSession validates any stored token against the server. After
// it returns, the manager's role predicates reflect reality: either an
// authenticated user or anonymous.
func (a *app) restoreSession() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.RequestTimeout)
	defer cancel()
	return a.manager.Init(ctx)
}
