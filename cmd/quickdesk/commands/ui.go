// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/quickdesk/quickdesk/cmd/quickdesk/cli"
	"github.com/quickdesk/quickdesk/lib/config"
	"github.com/quickdesk/quickdesk/lib/deskui"
)

// uiCommand returns the "ui" command, the full-screen terminal client.
// It is also what runs when quickdesk is invoked with no subcommand.
func uiCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "ui",
		Summary: "Open the full-screen terminal client",
		Description: `Open the full-screen QuickDesk client.

A stored session is restored automatically. Without one the client
starts on the welcome page, where you can sign in or register. Logs
go to the configured log file, if any; the terminal belongs to the
UI while it runs.`,
		Usage: "quickdesk ui [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("ui", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			return flags
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			configuration, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			// The UI owns the terminal while it runs, so logs go to
			// the configured file (or nowhere) instead of stderr.
			logger, logFile, err := cli.NewFileLogger(configuration.LogFile)
			if err != nil {
				return err
			}
			if logFile != nil {
				defer logFile.Close()
			}

			application := newAppFromConfig(configuration, logger)
			if err := application.restoreSession(); err != nil {
				return err
			}

			model := deskui.NewModel(application.client, application.manager,
				deskui.WithDebounce(configuration.SearchDebounce),
				deskui.WithLogger(logger),
			)
			program := tea.NewProgram(model, tea.WithAltScreen())

			// Requests started by the model report their in-flight
			// state back through the program's message loop, driving
			// the header spinner.
			application.client.OnLoading = func(active bool) {
				program.Send(deskui.LoadingMsg{Active: active})
			}

			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running UI: %w", err)
			}
			return nil
		},
	}
}
