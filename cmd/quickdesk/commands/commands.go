// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete quickdesk CLI command tree.
//
// The default subcommand is "ui", which opens the full-screen
// terminal client. The remaining subcommands (login, register,
// logout, whoami) manage the stored session from scripts and shells
// without entering the UI.
package commands

import (
	"fmt"

	"github.com/quickdesk/quickdesk/cmd/quickdesk/cli"
)

// Version is stamped by the build with -ldflags "-X ...Version=v1.2.3".
var Version = "dev"

// Root builds and returns the complete quickdesk CLI command tree.
func Root() *cli.Command {
	root := &cli.Command{
		Name: "quickdesk",
		Description: `QuickDesk: terminal client for the QuickDesk help-desk server.

Browse, create, and manage support tickets from the terminal. Running
quickdesk with no subcommand opens the full-screen UI.`,
		Subcommands: []*cli.Command{
			uiCommand(),
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("quickdesk %s\n", Version)
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Open the full-screen client",
				Command:     "quickdesk",
			},
			{
				Description: "Authenticate and save the session locally",
				Command:     "quickdesk login sam@example.com",
			},
			{
				Description: "Check the stored session against the server",
				Command:     "quickdesk whoami",
			},
			{
				Description: "Point the client at a different server",
				Command:     "quickdesk ui --config ~/.config/quickdesk/staging.yaml",
			},
		},
	}

	// Bare "quickdesk" (or "quickdesk --config x") opens the UI.
	ui := uiCommand()
	root.Flags = ui.Flags
	root.Run = ui.Run

	return root
}
