// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderDescriptionEmpty(t *testing.T) {
	if got := renderDescription("", DefaultTheme, 80); got != "" {
		t.Errorf("empty input: got %q", got)
	}
	if got := renderDescription("   \n ", DefaultTheme, 80); got != "" {
		t.Errorf("blank input: got %q", got)
	}
}

func TestRenderDescriptionReflow(t *testing.T) {
	// Hard-wrapped source reflows: the single newline becomes a
	// space, not a line break at the source position.
	input := "The printer\nis on fire."
	plain := ansi.Strip(renderDescription(input, DefaultTheme, 80))
	if !strings.Contains(plain, "The printer is on fire.") {
		t.Errorf("soft break not reflowed: %q", plain)
	}
}

func TestRenderDescriptionWraps(t *testing.T) {
	input := strings.Repeat("word ", 30)
	rendered := ansi.Strip(renderDescription(input, DefaultTheme, 40))
	for _, line := range strings.Split(rendered, "\n") {
		if len(line) > 40 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
}

func TestRenderDescriptionStructure(t *testing.T) {
	input := "# Summary\n\nSome *emphasis* here.\n\n- first\n- second\n\n```go\npackage main\n```\n\n> quoted text\n"
	plain := ansi.Strip(renderDescription(input, DefaultTheme, 80))

	for _, want := range []string{
		"Summary",
		"Some emphasis here.",
		"- first",
		"- second",
		"package main",
		"│ quoted text",
	} {
		if !strings.Contains(plain, want) {
			t.Errorf("missing %q in:\n%s", want, plain)
		}
	}
}

func TestRenderDescriptionLinks(t *testing.T) {
	input := "See [the docs](https://example.com/help) for details."
	plain := ansi.Strip(renderDescription(input, DefaultTheme, 120))
	if !strings.Contains(plain, "the docs (https://example.com/help)") {
		t.Errorf("link not rendered with target: %q", plain)
	}
}
