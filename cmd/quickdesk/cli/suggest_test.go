// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"login", "lgoin", 2},
		{"whoami", "whomai", 2},
		{"logout", "logut", 1},
	}

	for _, test := range tests {
		t.Run(test.a+" vs "+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"abc", "abd"},
		{"hello", "helo"},
		{"login", "lgoin"},
	}

	for _, pair := range pairs {
		forward := levenshtein(pair[0], pair[1])
		reverse := levenshtein(pair[1], pair[0])
		if forward != reverse {
			t.Errorf("levenshtein(%q, %q) = %d, but reverse = %d",
				pair[0], pair[1], forward, reverse)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "ui"},
		{Name: "login"},
		{Name: "logout"},
		{Name: "register"},
		{Name: "whoami"},
		{Name: "version"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"lgoin", "login"},      // transposition
		{"logut", "logout"},     // missing letter
		{"registr", "register"}, // missing letter
		{"versionn", "version"}, // extra letter
		{"whomai", "whoami"},    // transposition
		{"zzzzzzzzz", ""},       // nothing close
	}

	for _, test := range tests {
		got := suggestCommand(test.input, commands)
		if got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
		flagSet.String("password-file", "", "password file")
		flagSet.String("config", "", "configuration file")
		return flagSet
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--pasword-file"}, "--password-file"},
		{[]string{"--pasword-file=/x"}, "--password-file"},
		{[]string{"--confg", "x"}, "--config"},
		{[]string{"--zzzzzzzzz"}, ""},
		{[]string{"--config"}, ""}, // defined flag, nothing to suggest
		{[]string{"positional"}, ""},
	}

	for _, test := range tests {
		got := suggestFlag(test.args, newFlags())
		if got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
