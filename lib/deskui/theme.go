// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the QuickDesk TUI. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Ticket status colors.
	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color
	StatusClosed     lipgloss.Color

	// Ticket priority colors.
	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color
	PriorityUrgent lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Alert severities.
	AlertSuccess lipgloss.Color
	AlertError   lipgloss.Color
	AlertWarning lipgloss.Color
	AlertInfo    lipgloss.Color

	// Inline links in rendered descriptions.
	LinkForeground lipgloss.Color
}

// StatusColor returns the color for a ticket status. Unknown values
// return FaintText.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "open":
		return theme.StatusOpen
	case "in_progress":
		return theme.StatusInProgress
	case "resolved":
		return theme.StatusResolved
	case "closed":
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// PriorityColor returns the color for a ticket priority. Unknown
// values return NormalText.
func (theme Theme) PriorityColor(priority string) lipgloss.Color {
	switch priority {
	case "low":
		return theme.PriorityLow
	case "medium":
		return theme.PriorityMedium
	case "high":
		return theme.PriorityHigh
	case "urgent":
		return theme.PriorityUrgent
	default:
		return theme.NormalText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusOpen:       lipgloss.Color("114"), // green
	StatusInProgress: lipgloss.Color("220"), // yellow/amber
	StatusResolved:   lipgloss.Color("75"),  // blue
	StatusClosed:     lipgloss.Color("245"), // gray

	PriorityLow:    lipgloss.Color("245"), // gray
	PriorityMedium: lipgloss.Color("75"),  // blue
	PriorityHigh:   lipgloss.Color("208"), // orange
	PriorityUrgent: lipgloss.Color("196"), // bright red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	AlertSuccess: lipgloss.Color("114"),
	AlertError:   lipgloss.Color("196"),
	AlertWarning: lipgloss.Color("220"),
	AlertInfo:    lipgloss.Color("75"),

	LinkForeground: lipgloss.Color("75"),
}
