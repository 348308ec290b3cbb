// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/format"
	"github.com/quickdesk/quickdesk/lib/nav"
)

// createCategoriesLoadedMsg delivers the category choices for the
// creation form.
type createCategoriesLoadedMsg struct {
	generation int
	categories []api.Category
	err        error
}

// ticketCreatedMsg reports the creation call. attachmentPath carries
// the optional upload to perform once the ticket exists.
type ticketCreatedMsg struct {
	generation     int
	ticket         *api.Ticket
	attachmentPath string
	err            error
}

// attachmentUploadedMsg reports the follow-up upload for a freshly
// created ticket.
type attachmentUploadedMsg struct {
	ticketID int
	err      error
}

// Creation form fields, in focus order.
const (
	createFieldSubject = iota
	createFieldDescription
	createFieldCategory
	createFieldPriority
	createFieldAttachment
	createFieldCount
)

var createPriorities = []string{"low", "medium", "high", "urgent"}

// createForm is the new-ticket page: text fields, two pickers, and
// an optional attachment path.
type createForm struct {
	subject     textinput.Model
	description textarea.Model
	attachment  textinput.Model

	categories     []api.Category
	categoryCursor int
	priorityCursor int

	focus      int
	submitting bool
	failure    string
}

func newCreateForm() createForm {
	subject := textinput.New()
	subject.Placeholder = "subject"
	subject.CharLimit = 200
	subject.Width = 60

	description := textarea.New()
	description.Placeholder = "describe the problem (markdown is fine)"
	description.CharLimit = 10000
	description.SetHeight(6)
	description.SetWidth(60)

	attachment := textinput.New()
	attachment.Placeholder = "path to a file to attach (optional)"
	attachment.CharLimit = 500
	attachment.Width = 60

	return createForm{
		subject:        subject,
		description:    description,
		attachment:     attachment,
		priorityCursor: 1, // medium
	}
}

// reset prepares the form for a fresh visit.
func (form *createForm) reset() {
	form.subject.SetValue("")
	form.description.SetValue("")
	form.attachment.SetValue("")
	form.categoryCursor = 0
	form.priorityCursor = 1
	form.focus = createFieldSubject
	form.submitting = false
	form.failure = ""
	form.applyFocus()
}

// applyFocus moves textinput/textarea focus to match form.focus.
func (form *createForm) applyFocus() {
	form.subject.Blur()
	form.description.Blur()
	form.attachment.Blur()
	switch form.focus {
	case createFieldSubject:
		form.subject.Focus()
	case createFieldDescription:
		form.description.Focus()
	case createFieldAttachment:
		form.attachment.Focus()
	}
}

func (form *createForm) advanceFocus(delta int) {
	form.focus = (form.focus + delta + createFieldCount) % createFieldCount
	form.applyFocus()
}

func (model *Model) loadCreateCategories() tea.Cmd {
	generation := model.generation
	client := model.client
	return func() tea.Msg {
		categories, err := client.ListCategories(requestContext())
		return createCategoriesLoadedMsg{generation: generation, categories: categories, err: err}
	}
}

func (model Model) handleCreateCategoriesLoaded(message createCategoriesLoadedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		model.failPage(message.err)
		return model, nil
	}
	model.create.categories = message.categories
	if model.create.categoryCursor >= len(message.categories) {
		model.create.categoryCursor = 0
	}
	return model, nil
}

// submitCreate validates and issues the creation call. The attachment
// path rides along so the upload can start once the ticket ID exists.
func (model *Model) submitCreate() tea.Cmd {
	form := &model.create

	subject := strings.TrimSpace(form.subject.Value())
	description := strings.TrimSpace(form.description.Value())
	if subject == "" || description == "" {
		form.failure = "Subject and description are required."
		return nil
	}
	if len(form.categories) == 0 {
		form.failure = "No categories available. Ask an administrator to add one."
		return nil
	}
	form.submitting = true
	form.failure = ""

	creation := api.CreateTicketRequest{
		Subject:     subject,
		Description: description,
		CategoryID:  form.categories[form.categoryCursor].ID,
		Priority:    createPriorities[form.priorityCursor],
	}
	attachmentPath := strings.TrimSpace(form.attachment.Value())

	generation := model.generation
	client := model.client
	return func() tea.Msg {
		ticket, err := client.CreateTicket(requestContext(), creation)
		return ticketCreatedMsg{
			generation:     generation,
			ticket:         ticket,
			attachmentPath: attachmentPath,
			err:            err,
		}
	}
}

// handleTicketCreated routes back to the dashboard. A pending
// attachment uploads in the background; its failure degrades to a
// warning rather than undoing the creation.
func (model Model) handleTicketCreated(message ticketCreatedMsg) (tea.Model, tea.Cmd) {
	model.create.submitting = false
	if message.err != nil {
		if model.current.Page == nav.PageCreateTicket {
			model.create.failure = api.ErrorMessage(message.err)
			return model, nil
		}
		return model, model.pushAlert(AlertError, api.ErrorMessage(message.err))
	}

	commands := []tea.Cmd{
		model.pushAlert(AlertSuccess, "Ticket created."),
	}
	if message.attachmentPath != "" && message.ticket != nil {
		commands = append(commands, model.uploadAttachment(message.ticket.ID, message.attachmentPath))
	}
	commands = append(commands, model.navigate(nav.Target{Page: nav.PageDashboard}))
	return model, tea.Batch(commands...)
}

// uploadAttachment streams a local file to the ticket.
func (model *Model) uploadAttachment(ticketID int, path string) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return attachmentUploadedMsg{ticketID: ticketID, err: err}
		}
		defer file.Close()

		_, err = client.UploadAttachment(requestContext(), ticketID,
			filepath.Base(path), file)
		return attachmentUploadedMsg{ticketID: ticketID, err: err}
	}
}

func (model Model) handleAttachmentUploaded(message attachmentUploadedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		return model, model.pushAlert(AlertWarning,
			"Ticket created, but the attachment upload failed: "+api.ErrorMessage(message.err))
	}

	commands := []tea.Cmd{
		model.pushAlert(AlertSuccess, "Attachment uploaded."),
	}
	// Refresh the attachment list if the user is looking at the
	// ticket the upload belongs to.
	if model.current.Page == nav.PageTicketDetail && model.current.TicketID == message.ticketID {
		generation := model.generation
		client := model.client
		ticketID := message.ticketID
		commands = append(commands, func() tea.Msg {
			attachments, err := client.ListAttachments(requestContext(), ticketID)
			return attachmentsLoadedMsg{generation: generation, attachments: attachments, err: err}
		})
	}
	return model, tea.Batch(commands...)
}

func (model Model) updateCreate(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &model.create

	switch {
	case key.Matches(message, model.keys.Cancel):
		return model, model.navigate(nav.Target{Page: nav.PageDashboard})

	case key.Matches(message, model.keys.FocusNext):
		form.advanceFocus(1)
		return model, textinput.Blink

	case key.Matches(message, model.keys.FocusPrevious):
		form.advanceFocus(-1)
		return model, textinput.Blink

	case message.Type == tea.KeyCtrlD:
		if form.submitting {
			return model, nil
		}
		return model, model.submitCreate()
	}

	switch form.focus {
	case createFieldCategory:
		switch message.Type {
		case tea.KeyLeft:
			if form.categoryCursor > 0 {
				form.categoryCursor--
			}
		case tea.KeyRight:
			if form.categoryCursor < len(form.categories)-1 {
				form.categoryCursor++
			}
		}
		return model, nil

	case createFieldPriority:
		switch message.Type {
		case tea.KeyLeft:
			if form.priorityCursor > 0 {
				form.priorityCursor--
			}
		case tea.KeyRight:
			if form.priorityCursor < len(createPriorities)-1 {
				form.priorityCursor++
			}
		}
		return model, nil

	case createFieldSubject:
		var command tea.Cmd
		form.subject, command = form.subject.Update(message)
		return model, command

	case createFieldDescription:
		var command tea.Cmd
		form.description, command = form.description.Update(message)
		return model, command

	case createFieldAttachment:
		var command tea.Cmd
		form.attachment, command = form.attachment.Update(message)
		return model, command
	}
	return model, nil
}

// pickerLine renders a horizontal option picker with the selected
// entry highlighted.
func (model Model) pickerLine(options []string, selected int, focused bool) string {
	normal := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	active := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if focused {
		active = lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground)
	}

	var parts []string
	for index, option := range options {
		if index == selected {
			parts = append(parts, active.Render("["+option+"]"))
		} else {
			parts = append(parts, normal.Render(" "+option+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (model Model) viewCreate() string {
	form := &model.create
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)

	categoryNames := make([]string, len(form.categories))
	for index, category := range form.categories {
		categoryNames[index] = category.Name
	}

	priorityLabels := make([]string, len(createPriorities))
	for index, priority := range createPriorities {
		priorityLabels[index] = format.PriorityLabel(priority)
	}

	sections := []string{
		titleStyle.Render("Create Ticket"),
		"",
		labelStyle.Render("Subject"),
		form.subject.View(),
		labelStyle.Render("Description"),
		form.description.View(),
		labelStyle.Render("Category"),
		model.pickerLine(categoryNames, form.categoryCursor, form.focus == createFieldCategory),
		labelStyle.Render("Priority"),
		model.pickerLine(priorityLabels, form.priorityCursor, form.focus == createFieldPriority),
		labelStyle.Render("Attachment"),
		form.attachment.View(),
	}
	if form.failure != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(model.theme.AlertError).Render(form.failure))
	}
	if form.submitting {
		sections = append(sections, "", labelStyle.Render("Creating..."))
	}
	sections = append(sections, "",
		labelStyle.Render("Tab to move · ←/→ to pick · C-d to submit · Esc to cancel"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
