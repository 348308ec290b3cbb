// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickdesk/quickdesk/lib/nav"
)

// updateHome handles keys on the landing page. "l" jumps to sign-in
// and "n" to registration; signed-in users mostly pass through here
// on their way to the dashboard via the number keys.
func (model Model) updateHome(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.String() == "l":
		return model, model.navigate(nav.Target{Page: nav.PageLogin})
	case key.Matches(message, model.keys.New):
		return model, model.navigate(nav.Target{Page: nav.PageRegister})
	case key.Matches(message, model.keys.Select):
		if model.authManager.IsLoggedIn() {
			return model, model.navigate(nav.Target{Page: nav.PageDashboard})
		}
		return model, model.navigate(nav.Target{Page: nav.PageLogin})
	}
	return model, nil
}

func (model Model) viewHome() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var hint string
	if model.authManager.IsLoggedIn() {
		hint = "Enter for your dashboard"
	} else {
		hint = "l to sign in · n to create an account"
	}

	panel := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("QuickDesk"),
		"",
		normal.Render("Support tickets without the detour through a browser."),
		"",
		faint.Render(hint),
	)
	return lipgloss.Place(model.width, model.contentHeight(),
		lipgloss.Center, lipgloss.Center, panel)
}
