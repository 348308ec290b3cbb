// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// alertDisplayDuration is how long an alert stays visible before its
// expiry timer dismisses it. Each alert runs its own timer, so a
// burst of alerts fades out in the order it appeared.
const alertDisplayDuration = 5 * time.Second

// AlertLevel is the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertSuccess
	AlertWarning
	AlertError
)

// Alert is one entry in the alert stack. The ID ties the expiry timer
// to the exact alert it was armed for: a timer firing after its alert
// was manually dismissed (or after an identical message was pushed
// again) removes nothing.
type Alert struct {
	ID    uuid.UUID
	Level AlertLevel
	Text  string
}

// alertExpiredMsg is sent when an alert's display timer fires.
type alertExpiredMsg struct {
	id uuid.UUID
}

// alertStack holds the currently visible alerts, oldest first.
type alertStack struct {
	alerts []Alert
}

// Push appends an alert and returns the command that arms its expiry
// timer.
func (stack *alertStack) Push(level AlertLevel, text string) tea.Cmd {
	alert := Alert{ID: uuid.New(), Level: level, Text: text}
	stack.alerts = append(stack.alerts, alert)
	return tea.Tick(alertDisplayDuration, func(time.Time) tea.Msg {
		return alertExpiredMsg{id: alert.ID}
	})
}

// Dismiss removes the alert with the given ID. Unknown IDs are a
// no-op (the alert was already dismissed by hand).
func (stack *alertStack) Dismiss(id uuid.UUID) {
	for index, alert := range stack.alerts {
		if alert.ID == id {
			stack.alerts = append(stack.alerts[:index], stack.alerts[index+1:]...)
			return
		}
	}
}

// DismissOldest removes the alert at the top of the visible stack.
func (stack *alertStack) DismissOldest() {
	if len(stack.alerts) > 0 {
		stack.alerts = stack.alerts[1:]
	}
}

// Len returns the number of visible alerts.
func (stack *alertStack) Len() int {
	return len(stack.alerts)
}

// levelColor maps a severity to its theme color.
func levelColor(theme Theme, level AlertLevel) lipgloss.Color {
	switch level {
	case AlertSuccess:
		return theme.AlertSuccess
	case AlertWarning:
		return theme.AlertWarning
	case AlertError:
		return theme.AlertError
	default:
		return theme.AlertInfo
	}
}

// levelMark is the single-character severity indicator shown before
// the alert text.
func levelMark(level AlertLevel) string {
	switch level {
	case AlertSuccess:
		return "✓"
	case AlertWarning:
		return "!"
	case AlertError:
		return "✗"
	default:
		return "i"
	}
}

// View renders the alert stack, one line per alert. Returns the empty
// string when no alerts are visible.
func (stack *alertStack) View(theme Theme, width int) string {
	if len(stack.alerts) == 0 {
		return ""
	}
	var lines []string
	for _, alert := range stack.alerts {
		style := lipgloss.NewStyle().
			Foreground(levelColor(theme, alert.Level)).
			Width(width)
		lines = append(lines, style.Render(" "+levelMark(alert.Level)+" "+alert.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
