// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package format provides presentation helpers shared by the QuickDesk
// terminal UI: timestamp formatting, relative time, status and priority
// badges, and file sizes. It depends only on entity field values, never
// on the API client or the router.
package format

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/xeonx/timeago"
)

// wireTimeLayout is the timestamp format the server emits: RFC 3339
// without an explicit zone (datetime.isoformat() on naive UTC values).
const wireTimeLayout = "2006-01-02T15:04:05"

// ParseTime parses a server timestamp. Accepts both the server's
// zone-less ISO form and full RFC 3339. Returns the zero time when the
// input is empty or malformed; callers render a placeholder for it.
func ParseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	if parsed, err := time.ParseInLocation(wireTimeLayout, value, time.UTC); err == nil {
		return parsed
	}
	return time.Time{}
}

// Date renders a server timestamp as an absolute local date and time.
func Date(value string) string {
	parsed := ParseTime(value)
	if parsed.IsZero() {
		return "unknown"
	}
	return parsed.Local().Format("2006-01-02 15:04")
}

// Relative renders a server timestamp as a relative phrase
// ("5 minutes ago"). Falls back to the absolute form for zero times.
func Relative(value string) string {
	parsed := ParseTime(value)
	if parsed.IsZero() {
		return "unknown"
	}
	return timeago.English.Format(parsed)
}

// FileSize renders a byte count for attachment listings.
func FileSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

// Badge colors use ANSI 256 codes for broad terminal compatibility,
// matching the UI theme palette.
var (
	statusColors = map[string]lipgloss.Color{
		"open":        lipgloss.Color("214"), // Amber.
		"in_progress": lipgloss.Color("39"),  // Blue.
		"resolved":    lipgloss.Color("40"),  // Green.
		"closed":      lipgloss.Color("245"), // Grey.
	}

	priorityColors = map[string]lipgloss.Color{
		"low":    lipgloss.Color("245"),
		"medium": lipgloss.Color("39"),
		"high":   lipgloss.Color("214"),
		"urgent": lipgloss.Color("196"),
	}

	unknownBadgeColor = lipgloss.Color("244")
)

// StatusLabel returns the display label for a ticket status
// ("in_progress" renders as "In Progress"). Unknown statuses pass
// through with first-letter capitalization so new server-side states
// degrade gracefully.
func StatusLabel(status string) string {
	switch status {
	case "open":
		return "Open"
	case "in_progress":
		return "In Progress"
	case "resolved":
		return "Resolved"
	case "closed":
		return "Closed"
	}
	return titleCase(status)
}

// PriorityLabel returns the display label for a ticket priority.
func PriorityLabel(priority string) string {
	switch priority {
	case "low", "medium", "high", "urgent":
		return titleCase(priority)
	}
	return titleCase(priority)
}

// StatusBadge renders a colored status badge for list rows and the
// detail header.
func StatusBadge(status string) string {
	color, known := statusColors[status]
	if !known {
		color = unknownBadgeColor
	}
	return badgeStyle(color).Render(StatusLabel(status))
}

// PriorityBadge renders a colored priority badge.
func PriorityBadge(priority string) string {
	color, known := priorityColors[priority]
	if !known {
		color = unknownBadgeColor
	}
	return badgeStyle(color).Render(PriorityLabel(priority))
}

func badgeStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// RoleLabel returns the display label for a user role.
func RoleLabel(role string) string {
	switch role {
	case "user":
		return "End User"
	case "agent":
		return "Support Agent"
	case "admin":
		return "Administrator"
	}
	return titleCase(role)
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

// Truncate shortens text to at most limit runes, appending an ellipsis
// when anything was cut. Used for description previews in list rows.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimRight(string(runes[:limit-1]), " ") + "…"
}
