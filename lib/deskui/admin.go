// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/format"
)

// usersLoadedMsg delivers the user roster for the admin page.
type usersLoadedMsg struct {
	generation int
	users      []api.User
	err        error
}

// userMutatedMsg reports a role change, activation toggle, or
// deletion. Successful mutations reload the roster.
type userMutatedMsg struct {
	generation int
	err        error
}

type usersState struct {
	users  []api.User
	cursor int
}

func (model *Model) loadUsers() tea.Cmd {
	generation := model.generation
	client := model.client
	return func() tea.Msg {
		users, err := client.ListUsers(requestContext())
		return usersLoadedMsg{generation: generation, users: users, err: err}
	}
}

func (model Model) handleUsersLoaded(message usersLoadedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		model.failPage(message.err)
		return model, nil
	}
	model.users.users = message.users
	if model.users.cursor >= len(message.users) {
		model.users.cursor = 0
	}
	return model, nil
}

// toggleUserActive flips the selected account's active flag.
func (model *Model) toggleUserActive() tea.Cmd {
	state := &model.users
	if state.cursor >= len(state.users) {
		return nil
	}
	user := state.users[state.cursor]
	active := !user.IsActive

	generation := model.generation
	client := model.client
	return func() tea.Msg {
		_, err := client.UpdateUser(requestContext(), user.ID,
			api.UpdateUserRequest{IsActive: &active})
		return userMutatedMsg{generation: generation, err: err}
	}
}

// cycleUserRole advances the selected account through the roles.
func (model *Model) cycleUserRole() tea.Cmd {
	state := &model.users
	if state.cursor >= len(state.users) {
		return nil
	}
	user := state.users[state.cursor]
	roles := []string{"user", "agent", "admin"}
	next := roles[0]
	for index, role := range roles {
		if role == user.Role {
			next = roles[(index+1)%len(roles)]
			break
		}
	}

	generation := model.generation
	client := model.client
	return func() tea.Msg {
		_, err := client.UpdateUser(requestContext(), user.ID,
			api.UpdateUserRequest{Role: &next})
		return userMutatedMsg{generation: generation, err: err}
	}
}

func (model *Model) deleteSelectedUser() tea.Cmd {
	state := &model.users
	if state.cursor >= len(state.users) {
		return nil
	}
	user := state.users[state.cursor]
	if current := model.authManager.CurrentUser(); current != nil && current.ID == user.ID {
		return model.pushAlert(AlertWarning, "You cannot delete your own account.")
	}

	generation := model.generation
	client := model.client
	return func() tea.Msg {
		err := client.DeleteUser(requestContext(), user.ID)
		return userMutatedMsg{generation: generation, err: err}
	}
}

func (model Model) handleUserMutated(message userMutatedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		return model, model.pushAlert(AlertError, api.ErrorMessage(message.err))
	}
	return model, model.loadUsers()
}

func (model Model) updateUsers(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := &model.users

	switch {
	case key.Matches(message, model.keys.Up):
		if state.cursor > 0 {
			state.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if state.cursor < len(state.users)-1 {
			state.cursor++
		}
	case key.Matches(message, model.keys.Toggle):
		return model, model.toggleUserActive()
	case key.Matches(message, model.keys.Edit):
		return model, model.cycleUserRole()
	case key.Matches(message, model.keys.Delete):
		return model, model.deleteSelectedUser()
	}
	return model, nil
}

func (model Model) viewUsers() string {
	state := &model.users
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var sections []string
	if len(state.users) == 0 {
		sections = append(sections, faint.Render(" No users."))
	}
	for index, user := range state.users {
		activity := lipgloss.NewStyle().
			Foreground(model.theme.AlertSuccess).
			Render("active")
		if !user.IsActive {
			activity = lipgloss.NewStyle().
				Foreground(model.theme.AlertError).
				Render("inactive")
		}
		line := user.Username + " " +
			faint.Render("<"+user.Email+">") + "  " +
			normal.Render(format.RoleLabel(user.Role)) + "  " +
			activity + "  " +
			faint.Render("joined "+format.Date(user.CreatedAt))
		if index == state.cursor {
			line = lipgloss.NewStyle().
				Background(model.theme.SelectedBackground).
				Foreground(model.theme.SelectedForeground).
				Render("> ") + line
		} else {
			line = "  " + line
		}
		sections = append(sections, line)
	}

	sections = append(sections, "",
		faint.Render(" t toggle active · e cycle role · D delete"))

	return lipgloss.NewStyle().
		Padding(1, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// categoriesLoadedMsg delivers the category list for the admin page.
type categoriesLoadedMsg struct {
	generation int
	categories []api.Category
	err        error
}

// categoryMutatedMsg reports a create, update, or delete. Successful
// mutations reload the list.
type categoryMutatedMsg struct {
	generation int
	created    bool
	err        error
}

// categoriesState is the category admin page. editing opens a small
// two-field editor; editID zero means a new category.
type categoriesState struct {
	categories []api.Category
	cursor     int

	editing     bool
	editID      int
	nameInput   textinput.Model
	description textinput.Model
	editorFocus int // 0 name, 1 description.
	failure     string
}

func newCategoriesState() categoriesState {
	nameInput := textinput.New()
	nameInput.Placeholder = "name"
	nameInput.CharLimit = 100
	nameInput.Width = 40

	description := textinput.New()
	description.Placeholder = "description"
	description.CharLimit = 300
	description.Width = 40

	return categoriesState{nameInput: nameInput, description: description}
}

// openEditor prepares the editor for a new category or, given an
// existing one, for editing it.
func (state *categoriesState) openEditor(category *api.Category) {
	state.editing = true
	state.failure = ""
	state.editorFocus = 0
	if category == nil {
		state.editID = 0
		state.nameInput.SetValue("")
		state.description.SetValue("")
	} else {
		state.editID = category.ID
		state.nameInput.SetValue(category.Name)
		state.description.SetValue(category.Description)
	}
	state.nameInput.Focus()
	state.description.Blur()
}

func (state *categoriesState) closeEditor() {
	state.editing = false
	state.failure = ""
	state.nameInput.Blur()
	state.description.Blur()
}

func (model *Model) loadCategories() tea.Cmd {
	generation := model.generation
	client := model.client
	return func() tea.Msg {
		categories, err := client.ListCategories(requestContext())
		return categoriesLoadedMsg{generation: generation, categories: categories, err: err}
	}
}

func (model Model) handleCategoriesLoaded(message categoriesLoadedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		model.failPage(message.err)
		return model, nil
	}
	model.categories.categories = message.categories
	if model.categories.cursor >= len(message.categories) {
		model.categories.cursor = 0
	}
	return model, nil
}

// submitCategory saves the editor content. Name is required.
func (model *Model) submitCategory() tea.Cmd {
	state := &model.categories
	name := strings.TrimSpace(state.nameInput.Value())
	if name == "" {
		state.failure = "Name is required."
		return nil
	}
	request := api.CategoryRequest{
		Name:        name,
		Description: strings.TrimSpace(state.description.Value()),
	}

	generation := model.generation
	client := model.client
	editID := state.editID
	return func() tea.Msg {
		var err error
		if editID == 0 {
			_, err = client.CreateCategory(requestContext(), request)
		} else {
			_, err = client.UpdateCategory(requestContext(), editID, request)
		}
		return categoryMutatedMsg{generation: generation, created: editID == 0, err: err}
	}
}

func (model *Model) deleteSelectedCategory() tea.Cmd {
	state := &model.categories
	if state.cursor >= len(state.categories) {
		return nil
	}
	category := state.categories[state.cursor]

	generation := model.generation
	client := model.client
	return func() tea.Msg {
		err := client.DeleteCategory(requestContext(), category.ID)
		return categoryMutatedMsg{generation: generation, err: err}
	}
}

func (model Model) handleCategoryMutated(message categoryMutatedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		if model.categories.editing {
			model.categories.failure = api.ErrorMessage(message.err)
			return model, nil
		}
		return model, model.pushAlert(AlertError, api.ErrorMessage(message.err))
	}
	model.categories.closeEditor()

	text := "Category saved."
	if message.created {
		text = "Category created."
	}
	return model, tea.Batch(
		model.pushAlert(AlertSuccess, text),
		model.loadCategories(),
	)
}

func (model Model) updateCategories(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := &model.categories

	if state.editing {
		switch {
		case key.Matches(message, model.keys.Cancel):
			state.closeEditor()
			return model, nil
		case message.Type == tea.KeyEnter:
			if state.editorFocus == 0 {
				state.editorFocus = 1
				state.nameInput.Blur()
				state.description.Focus()
				return model, textinput.Blink
			}
			return model, model.submitCategory()
		case key.Matches(message, model.keys.FocusNext),
			key.Matches(message, model.keys.FocusPrevious):
			state.editorFocus = 1 - state.editorFocus
			if state.editorFocus == 0 {
				state.nameInput.Focus()
				state.description.Blur()
			} else {
				state.nameInput.Blur()
				state.description.Focus()
			}
			return model, textinput.Blink
		}

		var command tea.Cmd
		if state.editorFocus == 0 {
			state.nameInput, command = state.nameInput.Update(message)
		} else {
			state.description, command = state.description.Update(message)
		}
		return model, command
	}

	switch {
	case key.Matches(message, model.keys.Up):
		if state.cursor > 0 {
			state.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if state.cursor < len(state.categories)-1 {
			state.cursor++
		}
	case key.Matches(message, model.keys.New):
		state.openEditor(nil)
		return model, textinput.Blink
	case key.Matches(message, model.keys.Edit):
		if state.cursor < len(state.categories) {
			state.openEditor(&state.categories[state.cursor])
			return model, textinput.Blink
		}
	case key.Matches(message, model.keys.Delete):
		return model, model.deleteSelectedCategory()
	}
	return model, nil
}

func (model Model) viewCategories() string {
	state := &model.categories
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var sections []string
	if len(state.categories) == 0 {
		sections = append(sections, faint.Render(" No categories. Press n to add one."))
	}
	for index, category := range state.categories {
		line := normal.Render(category.Name)
		if category.Description != "" {
			line += "  " + faint.Render(format.Truncate(category.Description, 60))
		}
		if index == state.cursor && !state.editing {
			line = lipgloss.NewStyle().
				Background(model.theme.SelectedBackground).
				Foreground(model.theme.SelectedForeground).
				Render("> ") + line
		} else {
			line = "  " + line
		}
		sections = append(sections, line)
	}

	if state.editing {
		title := "New Category"
		if state.editID != 0 {
			title = "Edit Category #" + strconv.Itoa(state.editID)
		}
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Render(" "+title),
			" "+state.nameInput.View(),
			" "+state.description.View(),
		)
		if state.failure != "" {
			sections = append(sections,
				lipgloss.NewStyle().Foreground(model.theme.AlertError).Render(" "+state.failure))
		}
		sections = append(sections,
			faint.Render(" Enter to save · Esc to cancel"))
	} else {
		sections = append(sections, "",
			faint.Render(" n new · e edit · D delete"))
	}

	return lipgloss.NewStyle().
		Padding(1, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
