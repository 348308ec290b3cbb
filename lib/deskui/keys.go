// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the QuickDesk TUI.
type KeyMap struct {
	// List movement (context-sensitive: list cursor or detail
	// viewport scrolling depending on the current page).
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// History traversal. Only honored while signed in and while no
	// text input has focus, matching the navigation chrome that the
	// shortcuts stand in for.
	Back    key.Binding
	Forward key.Binding

	// Direct page jumps.
	GoDashboard    key.Binding
	GoMyTickets    key.Binding
	GoAllTickets   key.Binding
	GoCreateTicket key.Binding
	GoUsers        key.Binding
	GoCategories   key.Binding

	// Logout clears the session and returns to the welcome page.
	// Only honored while signed in and not typing.
	Logout key.Binding

	// Page actions.
	Select    key.Binding // Open the item under the cursor.
	Refresh   key.Binding // Refetch the current page's data.
	Search    key.Binding // Focus the list search input.
	Comment   key.Binding // Open the comment editor (ticket detail).
	Upvote    key.Binding
	Downvote  key.Binding
	Delete    key.Binding
	Download  key.Binding // Download the selected attachment.
	Edit      key.Binding // Edit the selected item (admin pages).
	New       key.Binding // Create a new item (categories page).
	Toggle    key.Binding // Toggle active state (users page).
	CycleOne  key.Binding // Cycle the first list filter (status).
	CycleTwo  key.Binding // Cycle the second list filter (priority).
	CycleAux  key.Binding // Cycle the assignment filter (all tickets).
	CycleSort key.Binding

	// Form movement.
	FocusNext     key.Binding
	FocusPrevious key.Binding
	Submit        key.Binding // Submit the focused form (enter / ctrl+d).

	DismissAlert key.Binding
	Cancel       key.Binding
	Quit         key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style list
// movement alongside standard arrows; Alt+arrows walk the page
// history the way browser back/forward buttons would.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Back: key.NewBinding(
		key.WithKeys("alt+left"),
		key.WithHelp("M-←", "back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("alt+right"),
		key.WithHelp("M-→", "forward"),
	),
	GoDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	GoMyTickets: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "my tickets"),
	),
	GoAllTickets: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "all tickets"),
	),
	GoCreateTicket: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "new ticket"),
	),
	GoUsers: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "users"),
	),
	GoCategories: key.NewBinding(
		key.WithKeys("6"),
		key.WithHelp("6", "categories"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "log out"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Comment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comment"),
	),
	Upvote: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "upvote"),
	),
	Downvote: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "downvote"),
	),
	Delete: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete"),
	),
	Download: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "download"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle active"),
	),
	CycleOne: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	CycleTwo: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "priority filter"),
	),
	CycleAux: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "assignment filter"),
	),
	CycleSort: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "sort order"),
	),
	FocusNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	FocusPrevious: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter", "ctrl+d"),
		key.WithHelp("Enter", "submit"),
	),
	DismissAlert: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss alert"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
