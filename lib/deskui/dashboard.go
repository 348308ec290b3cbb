// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/format"
	"github.com/quickdesk/quickdesk/lib/nav"
)

// recentTicketCount is how many tickets the dashboard lists under the
// status counters.
const recentTicketCount = 5

// dashboardLoadedMsg delivers the dashboard's ticket snapshot. For
// regular users the server returns their own tickets; agents and
// admins see everything, so the counters widen with the role.
type dashboardLoadedMsg struct {
	generation int
	tickets    []api.Ticket
	err        error
}

type dashboardState struct {
	tickets []api.Ticket
	cursor  int
}

// recent returns the newest tickets, capped at recentTicketCount. The
// load requests newest-first ordering, so this is a prefix.
func (state *dashboardState) recent() []api.Ticket {
	if len(state.tickets) <= recentTicketCount {
		return state.tickets
	}
	return state.tickets[:recentTicketCount]
}

// statusCounts tallies tickets per lifecycle state.
func (state *dashboardState) statusCounts() map[string]int {
	counts := make(map[string]int)
	for _, ticket := range state.tickets {
		counts[ticket.Status]++
	}
	return counts
}

func (model *Model) loadDashboard() tea.Cmd {
	generation := model.generation
	client := model.client
	return func() tea.Msg {
		tickets, err := client.ListTickets(requestContext(),
			api.TicketFilters{SortBy: "created_at_desc"})
		return dashboardLoadedMsg{generation: generation, tickets: tickets, err: err}
	}
}

func (model Model) handleDashboardLoaded(message dashboardLoadedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		model.failPage(message.err)
		return model, nil
	}
	model.dashboard.tickets = message.tickets
	model.dashboard.cursor = 0
	return model, nil
}

func (model Model) updateDashboard(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := &model.dashboard
	recent := state.recent()

	switch {
	case key.Matches(message, model.keys.Up):
		if state.cursor > 0 {
			state.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if state.cursor < len(recent)-1 {
			state.cursor++
		}
	case key.Matches(message, model.keys.Select):
		if state.cursor < len(recent) {
			ticket := recent[state.cursor]
			return model, model.navigate(nav.Target{
				Page:     nav.PageTicketDetail,
				TicketID: ticket.ID,
			})
		}
	}
	return model, nil
}

func (model Model) viewDashboard() string {
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)

	counts := model.dashboard.statusCounts()
	statusLine := ""
	for _, status := range []string{"open", "in_progress", "resolved", "closed"} {
		chip := lipgloss.NewStyle().
			Foreground(model.theme.StatusColor(status)).
			Render(format.StatusLabel(status) + " " + strconv.Itoa(counts[status]))
		if statusLine != "" {
			statusLine += faint.Render("  ·  ")
		}
		statusLine += chip
	}

	sections := []string{
		titleStyle.Render("Overview"),
		statusLine,
		faint.Render(strconv.Itoa(len(model.dashboard.tickets)) + " tickets total"),
		"",
		titleStyle.Render("Recent Tickets"),
	}

	recent := model.dashboard.recent()
	if len(recent) == 0 {
		sections = append(sections, faint.Render("No tickets yet. Press 4 to create one."))
	}
	for index, ticket := range recent {
		line := "#" + strconv.Itoa(ticket.ID) + " " +
			format.Truncate(ticket.Subject, 60) + "  " +
			format.StatusBadge(ticket.Status) + " " +
			format.PriorityBadge(ticket.Priority) + "  " +
			faint.Render(format.Relative(ticket.CreatedAt))
		if index == model.dashboard.cursor {
			line = lipgloss.NewStyle().
				Background(model.theme.SelectedBackground).
				Foreground(model.theme.SelectedForeground).
				Render("> ") + line
		} else {
			line = "  " + line
		}
		sections = append(sections, normal.Render(line))
	}

	sections = append(sections, "",
		faint.Render("Enter to open · 2 my tickets · 4 new ticket"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
