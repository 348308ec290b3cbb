// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/format"
	"github.com/quickdesk/quickdesk/lib/nav"
)

// ticketsLoadedMsg delivers a ticket list snapshot.
type ticketsLoadedMsg struct {
	generation int
	tickets    []api.Ticket
	err        error
}

// searchDebounceMsg fires when the search pause timer expires. The
// sequence ties it to the keystroke that armed it: a timer superseded
// by further typing arrives with a stale sequence and fetches
// nothing.
type searchDebounceMsg struct {
	sequence int
}

// Filter cycles. The leading empty string is "no filter".
var (
	statusFilterCycle   = []string{"", "open", "in_progress", "resolved", "closed"}
	priorityFilterCycle = []string{"", "low", "medium", "high", "urgent"}
	sortCycle           = []string{"", "created_at_desc", "created_at_asc", "updated_at_desc", "priority_desc"}

	// Assignment filter positions: any, unassigned, assigned, mine.
	assignmentFilterCycle = []string{"", "null", "not_null", "mine"}
)

// ticketListState backs both the My Tickets and All Tickets pages.
// page records which of the two the state was last loaded for, so
// switching between them resets search and filters the way a fresh
// page visit would.
type ticketListState struct {
	page          nav.Page
	forAllTickets bool

	tickets []api.Ticket
	cursor  int

	searchInput      textinput.Model
	searchFocused    bool
	debounceSequence int

	// Indices into the filter cycles.
	statusIndex     int
	priorityIndex   int
	assignmentIndex int
	sortIndex       int
}

func newTicketListState() ticketListState {
	searchInput := textinput.New()
	searchInput.Placeholder = "search subject and description"
	searchInput.CharLimit = 200
	searchInput.Width = 48
	return ticketListState{searchInput: searchInput}
}

// resetFor prepares the state for a visit to the given list page,
// clearing the previous page's search and filters.
func (state *ticketListState) resetFor(page nav.Page) {
	if state.page == page {
		return
	}
	state.page = page
	state.tickets = nil
	state.cursor = 0
	state.searchInput.SetValue("")
	state.searchInput.Blur()
	state.searchFocused = false
	state.debounceSequence++
	state.statusIndex = 0
	state.priorityIndex = 0
	state.assignmentIndex = 0
	state.sortIndex = 0
}

// filters assembles the query for the next fetch. Values are read at
// fetch time, so a filter changed mid-flight applies to the next
// request only. The "mine" assignment position resolves to the
// signed-in user's ID.
func (state *ticketListState) filters(currentUser *api.User) api.TicketFilters {
	assignment := assignmentFilterCycle[state.assignmentIndex]
	if assignment == "mine" {
		if currentUser == nil {
			assignment = ""
		} else {
			assignment = strconv.Itoa(currentUser.ID)
		}
	}
	return api.TicketFilters{
		Search:     state.searchInput.Value(),
		Status:     statusFilterCycle[state.statusIndex],
		Priority:   priorityFilterCycle[state.priorityIndex],
		AssignedTo: assignment,
		SortBy:     sortCycle[state.sortIndex],
	}
}

func (model *Model) loadTickets() tea.Cmd {
	page := nav.PageMyTickets
	if model.ticketList.forAllTickets {
		page = nav.PageAllTickets
	}
	model.ticketList.resetFor(page)

	generation := model.generation
	client := model.client
	filters := model.ticketList.filters(model.authManager.CurrentUser())
	return func() tea.Msg {
		tickets, err := client.ListTickets(requestContext(), filters)
		return ticketsLoadedMsg{generation: generation, tickets: tickets, err: err}
	}
}

// refetchTickets starts a new list fetch within the current page
// (filter change, debounced search, explicit refresh).
func (model *Model) refetchTickets() tea.Cmd {
	model.generation++

	generation := model.generation
	client := model.client
	filters := model.ticketList.filters(model.authManager.CurrentUser())
	return func() tea.Msg {
		tickets, err := client.ListTickets(requestContext(), filters)
		return ticketsLoadedMsg{generation: generation, tickets: tickets, err: err}
	}
}

func (model Model) handleTicketsLoaded(message ticketsLoadedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		model.failPage(message.err)
		return model, nil
	}
	model.ticketList.tickets = message.tickets
	if model.ticketList.cursor >= len(message.tickets) {
		model.ticketList.cursor = 0
	}
	return model, nil
}

// armDebounce schedules the search fetch after the configured pause.
// Every keystroke advances the sequence, invalidating earlier timers.
func (model *Model) armDebounce() tea.Cmd {
	model.ticketList.debounceSequence++
	sequence := model.ticketList.debounceSequence
	return tea.Tick(model.debounceDelay, func(time.Time) tea.Msg {
		return searchDebounceMsg{sequence: sequence}
	})
}

func (model Model) handleSearchDebounce(message searchDebounceMsg) (tea.Model, tea.Cmd) {
	if message.sequence != model.ticketList.debounceSequence {
		return model, nil
	}
	if model.current.Page != nav.PageMyTickets && model.current.Page != nav.PageAllTickets {
		return model, nil
	}
	return model, model.refetchTickets()
}

func (model Model) updateTicketList(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := &model.ticketList

	if state.searchFocused {
		switch {
		case key.Matches(message, model.keys.Cancel):
			state.searchFocused = false
			state.searchInput.Blur()
			if state.searchInput.Value() != "" {
				state.searchInput.SetValue("")
				return model, model.refetchTickets()
			}
			return model, nil
		case message.Type == tea.KeyEnter:
			state.searchFocused = false
			state.searchInput.Blur()
			state.debounceSequence++ // Kill any pending timer.
			return model, model.refetchTickets()
		}

		before := state.searchInput.Value()
		var command tea.Cmd
		state.searchInput, command = state.searchInput.Update(message)
		if state.searchInput.Value() != before {
			return model, tea.Batch(command, model.armDebounce())
		}
		return model, command
	}

	switch {
	case key.Matches(message, model.keys.Search):
		state.searchFocused = true
		state.searchInput.Focus()
		return model, textinput.Blink

	case key.Matches(message, model.keys.CycleOne):
		state.statusIndex = (state.statusIndex + 1) % len(statusFilterCycle)
		return model, model.refetchTickets()

	case key.Matches(message, model.keys.CycleTwo):
		state.priorityIndex = (state.priorityIndex + 1) % len(priorityFilterCycle)
		return model, model.refetchTickets()

	case key.Matches(message, model.keys.CycleAux):
		if !state.forAllTickets {
			return model, nil
		}
		state.assignmentIndex = (state.assignmentIndex + 1) % len(assignmentFilterCycle)
		return model, model.refetchTickets()

	case key.Matches(message, model.keys.CycleSort):
		state.sortIndex = (state.sortIndex + 1) % len(sortCycle)
		return model, model.refetchTickets()

	case key.Matches(message, model.keys.Up):
		if state.cursor > 0 {
			state.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if state.cursor < len(state.tickets)-1 {
			state.cursor++
		}
	case key.Matches(message, model.keys.Home):
		state.cursor = 0
	case key.Matches(message, model.keys.End):
		if len(state.tickets) > 0 {
			state.cursor = len(state.tickets) - 1
		}
	case key.Matches(message, model.keys.Select):
		if state.cursor < len(state.tickets) {
			return model, model.navigate(nav.Target{
				Page:     nav.PageTicketDetail,
				TicketID: state.tickets[state.cursor].ID,
			})
		}
	}
	return model, nil
}

// filterSummary describes the active filters for the list header.
func (state *ticketListState) filterSummary() string {
	var parts []string
	if value := statusFilterCycle[state.statusIndex]; value != "" {
		parts = append(parts, "status: "+format.StatusLabel(value))
	}
	if value := priorityFilterCycle[state.priorityIndex]; value != "" {
		parts = append(parts, "priority: "+format.PriorityLabel(value))
	}
	switch assignmentFilterCycle[state.assignmentIndex] {
	case "null":
		parts = append(parts, "unassigned")
	case "not_null":
		parts = append(parts, "assigned")
	case "mine":
		parts = append(parts, "assigned to me")
	}
	if value := sortCycle[state.sortIndex]; value != "" {
		parts = append(parts, "sort: "+value)
	}
	if len(parts) == 0 {
		return ""
	}
	return joinHelp(parts)
}

func (model Model) viewTicketList() string {
	state := &model.ticketList
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var sections []string

	if state.searchFocused || state.searchInput.Value() != "" {
		sections = append(sections, " / "+state.searchInput.View())
	}
	if summary := state.filterSummary(); summary != "" {
		sections = append(sections, faint.Render(" "+summary))
	}
	if len(sections) > 0 {
		sections = append(sections, "")
	}

	if len(state.tickets) == 0 {
		sections = append(sections, faint.Render(" No tickets match."))
	}
	for index, ticket := range state.tickets {
		assignee := "unassigned"
		if ticket.Assignee != nil {
			assignee = ticket.Assignee.Username
		}
		line := "#" + strconv.Itoa(ticket.ID) + " " +
			format.Truncate(ticket.Subject, 48) + "  " +
			format.StatusBadge(ticket.Status) + " " +
			format.PriorityBadge(ticket.Priority) + "  " +
			faint.Render(assignee) + "  " +
			faint.Render(format.Relative(ticket.UpdatedAt))
		if index == state.cursor && !state.searchFocused {
			line = lipgloss.NewStyle().
				Background(model.theme.SelectedBackground).
				Foreground(model.theme.SelectedForeground).
				Render("> ") + line
		} else {
			line = "  " + line
		}
		sections = append(sections, normal.Render(line))
	}

	help := "/ search · s status · p priority · o sort"
	if state.forAllTickets {
		help += " · a assignment"
	}
	sections = append(sections, "", faint.Render(" "+help))

	return lipgloss.NewStyle().
		Padding(1, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
