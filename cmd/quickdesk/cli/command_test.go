// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "quickdesk",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "whoami",
				Run: func(args []string) error {
					called = "whoami"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"whoami"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "whoami" {
		t.Errorf("dispatched to %q, want %q", called, "whoami")
	}
}

func TestCommand_Execute_PositionalArgsReachRun(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "quickdesk",
		Subcommands: []*Command{
			{
				Name: "login",
				Run: func(args []string) error {
					called = "login"
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"login", "sam@example.com"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "login" {
		t.Errorf("dispatched to %q, want %q", called, "login")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "sam@example.com" {
		t.Errorf("args = %v, want [sam@example.com]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var configPath string
	var target string

	command := &Command{
		Name: "ui",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("ui", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "configuration file")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--config", "/custom.yaml", "extra"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if configPath != "/custom.yaml" {
		t.Errorf("configPath = %q, want %q", configPath, "/custom.yaml")
	}
	if target != "extra" {
		t.Errorf("target = %q, want %q", target, "extra")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "login",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.String("password-file", "", "password file")
			flagSet.String("config", "", "configuration file")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--pasword-file=/x"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --password-file") {
		t.Errorf("error = %q, want suggestion for '--password-file'", errStr)
	}
	if !strings.Contains(errStr, "pasword-file") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "login",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.String("config", "", "configuration file")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "quickdesk",
		Subcommands: []*Command{
			{Name: "login"},
			{Name: "logout"},
			{Name: "version"},
		},
	}

	err := root.Execute([]string{"lgoin"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"login\"") {
		t.Errorf("error = %q, want suggestion for 'login'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "quickdesk",
		Subcommands: []*Command{
			{Name: "login"},
			{Name: "whoami"},
		},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "quickdesk",
				Summary: "Help-desk terminal client",
				Subcommands: []*Command{
					{Name: "login", Summary: "Authenticate"},
				},
			}

			err := root.Execute([]string{helpArg})
			if err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "quickdesk",
		Subcommands: []*Command{
			{Name: "login", Summary: "Authenticate"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_Execute_RootRunHandlesBareInvocation(t *testing.T) {
	var ranUI bool

	root := &Command{
		Name: "quickdesk",
		Subcommands: []*Command{
			{Name: "login", Run: func(args []string) error { return nil }},
		},
		Run: func(args []string) error {
			ranUI = true
			return nil
		},
	}

	if err := root.Execute([]string{}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !ranUI {
		t.Error("bare invocation did not fall through to root Run")
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "quickdesk",
		Description: "Terminal client for the QuickDesk help-desk server.",
		Subcommands: []*Command{
			{Name: "ui", Summary: "Open the full-screen terminal client"},
			{Name: "login", Summary: "Authenticate and save the session locally"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Open the full-screen client",
				Command:     "quickdesk",
			},
			{
				Description: "Authenticate and save the session locally",
				Command:     "quickdesk login sam@example.com",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	// Verify structural elements are present.
	for _, want := range []string{
		"Terminal client for the QuickDesk help-desk server.",
		"Usage:",
		"quickdesk <command> [flags]",
		"Commands:",
		"ui",
		"Open the full-screen terminal client",
		"login",
		"Authenticate and save the session locally",
		"Examples:",
		"quickdesk login sam@example.com",
		"Run 'quickdesk <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "login",
		Summary: "Authenticate and save the session locally",
		Usage:   "quickdesk login <email> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.String("password-file", "", "path to the password file")
			flagSet.String("config", "", "path to the configuration file")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"quickdesk login <email> [flags]",
		"Flags:",
		"password-file",
		"config",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "quickdesk"}
	login := &Command{Name: "login", parent: root}

	if got := root.fullName(); got != "quickdesk" {
		t.Errorf("root.fullName() = %q, want %q", got, "quickdesk")
	}
	if got := login.fullName(); got != "quickdesk login" {
		t.Errorf("login.fullName() = %q, want %q", got, "quickdesk login")
	}
}
