// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/quickdesk/quickdesk/cmd/quickdesk/cli"
	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/format"
	"github.com/quickdesk/quickdesk/lib/session"
)

// loginCommand returns the "login" command. It exchanges credentials
// for a token and saves the session to the well-known path; both the
// UI and the other subcommands pick it up from there.
func loginCommand() *cli.Command {
	var configPath string
	var passwordFile string

	return &cli.Command{
		Name:    "login",
		Summary: "Authenticate and save the session locally",
		Description: `Log in to the QuickDesk server and save the session locally.

After login, "quickdesk" opens the UI already signed in, and commands
like "quickdesk whoami" use the saved session. The session file is
written with mode 0600 (owner-only read/write) since it contains an
access token.

The password can be provided via --password-file (a path to a file
containing the password) or prompted interactively if --password-file
is "-" or omitted.`,
		Usage: "quickdesk login <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Log in interactively (prompts for password)",
				Command:     "quickdesk login sam@example.com",
			},
			{
				Description: "Log in with password from file",
				Command:     "quickdesk login sam@example.com --password-file /path/to/password",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			flags.StringVar(&passwordFile, "password-file", "", "path to file containing the password, or - to prompt")
			return flags
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("email is required\n\nUsage: quickdesk login <email> [flags]")
			}
			email := args[0]
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}

			password, err := readPassword(passwordFile, "Password: ")
			if err != nil {
				return err
			}

			logger := cli.NewCommandLogger().With("command", "login")
			application, err := newApp(configPath, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), application.config.RequestTimeout)
			defer cancel()

			if err := application.manager.Login(ctx, email, password); err != nil {
				return fmt.Errorf("login failed: %s", api.ErrorMessage(err))
			}

			user := application.manager.CurrentUser()
			fmt.Fprintf(os.Stderr, "Logged in as %s (%s)\n", user.Username, format.RoleLabel(user.Role))
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", session.FilePath())
			return nil
		},
	}
}

// registerCommand returns the "register" command. Registration does
// not authenticate; the new account logs in afterward.
func registerCommand() *cli.Command {
	var configPath string
	var passwordFile string

	return &cli.Command{
		Name:    "register",
		Summary: "Create a new account",
		Description: `Create a QuickDesk account.

New accounts get the regular user role. Registration does not log you
in; run "quickdesk login" with the new credentials afterward.`,
		Usage: "quickdesk register <username> <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Register interactively (prompts for password twice)",
				Command:     "quickdesk register sam sam@example.com",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			flags.StringVar(&passwordFile, "password-file", "", "path to file containing the password, or - to prompt")
			return flags
		},
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("username and email are required\n\nUsage: quickdesk register <username> <email> [flags]")
			}
			username, email := args[0], args[1]
			if len(args) > 2 {
				return fmt.Errorf("unexpected argument: %s", args[2])
			}

			password, err := readPassword(passwordFile, "Password: ")
			if err != nil {
				return err
			}
			// Only confirm when the password came from a prompt; a
			// file is assumed to hold what the caller intended.
			if passwordFile == "" || passwordFile == "-" {
				confirmation, err := readPassword(passwordFile, "Confirm password: ")
				if err != nil {
					return err
				}
				if confirmation != password {
					return fmt.Errorf("passwords do not match")
				}
			}

			logger := cli.NewCommandLogger().With("command", "register")
			application, err := newApp(configPath, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), application.config.RequestTimeout)
			defer cancel()

			registration := api.RegisterRequest{
				Username: username,
				Email:    email,
				Password: password,
			}
			if err := application.manager.Register(ctx, registration); err != nil {
				return fmt.Errorf("registration failed: %s", api.ErrorMessage(err))
			}

			fmt.Fprintf(os.Stderr, "Account %s created. Log in with: quickdesk login %s\n", username, email)
			return nil
		},
	}
}

// logoutCommand returns the "logout" command, which discards the
// stored session. Safe to run when no one is logged in.
func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the stored session",
		Usage:   "quickdesk logout",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if err := session.Clear(); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}
			fmt.Fprintln(os.Stderr, "Logged out.")
			return nil
		},
	}
}

// whoamiCommand returns the "whoami" command, which validates the
// stored session against the server and prints the identity. Exits 1
// when no valid session exists.
func whoamiCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the identity of the stored session",
		Usage:   "quickdesk whoami [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			return flags
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			logger := cli.NewCommandLogger().With("command", "whoami")
			application, err := newApp(configPath, logger)
			if err != nil {
				return err
			}
			if err := application.restoreSession(); err != nil {
				return err
			}

			user := application.manager.CurrentUser()
			if user == nil {
				fmt.Fprintln(os.Stderr, "Not logged in.")
				return &cli.ExitError{Code: 1}
			}

			fmt.Printf("Username: %s\n", user.Username)
			fmt.Printf("Email:    %s\n", user.Email)
			fmt.Printf("Role:     %s\n", format.RoleLabel(user.Role))
			return nil
		},
	}
}

// readPassword reads a password for the login and register commands.
// If passwordFile is empty or "-", prompts interactively on the
// terminal with echo disabled. Otherwise, reads from the file path,
// stripping trailing newlines (common with echo/printf pipelines).
func readPassword(passwordFile, prompt string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", passwordFile, err)
		}
		password := strings.TrimRight(string(data), "\r\n")
		if password == "" {
			return "", fmt.Errorf("file %s is empty (after stripping trailing newlines)", passwordFile)
		}
		return password, nil
	}

	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return "", fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, prompt)
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(passwordBytes), nil
}
