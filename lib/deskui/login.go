// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/nav"
)

// loginSubmittedMsg reports the outcome of an asynchronous sign-in.
type loginSubmittedMsg struct {
	err error
}

// registerSubmittedMsg reports the outcome of an account creation.
type registerSubmittedMsg struct {
	err error
}

// loginForm is the sign-in page state: two fields and a submit.
type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int // 0 email, 1 password.

	submitting bool
	failure    string // Inline failure text under the form.
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120
	password.Width = 40

	return loginForm{email: email, password: password}
}

// reset clears the form for a fresh visit to the page.
func (form *loginForm) reset() {
	form.email.SetValue("")
	form.password.SetValue("")
	form.focus = 0
	form.submitting = false
	form.failure = ""
	form.email.Focus()
	form.password.Blur()
}

// focusCmd returns the cursor blink command for the focused field.
func (form *loginForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

// advanceFocus moves field focus by delta, wrapping.
func (form *loginForm) advanceFocus(delta int) {
	form.focus = (form.focus + delta + 2) % 2
	if form.focus == 0 {
		form.email.Focus()
		form.password.Blur()
	} else {
		form.email.Blur()
		form.password.Focus()
	}
}

// submitLogin issues the sign-in call through the auth manager so a
// success persists the session before the result message arrives.
func (model *Model) submitLogin() tea.Cmd {
	email := strings.TrimSpace(model.login.email.Value())
	password := model.login.password.Value()
	if email == "" || password == "" {
		model.login.failure = "Email and password are required."
		return nil
	}
	model.login.submitting = true
	model.login.failure = ""

	authManager := model.authManager
	return func() tea.Msg {
		err := authManager.Login(requestContext(), email, password)
		return loginSubmittedMsg{err: err}
	}
}

func (model Model) updateLogin(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &model.login

	switch {
	case key.Matches(message, model.keys.Cancel):
		return model, model.navigate(nav.Target{Page: nav.PageHome})

	case key.Matches(message, model.keys.FocusNext),
		message.Type == tea.KeyDown:
		form.advanceFocus(1)
		return model, textinput.Blink

	case key.Matches(message, model.keys.FocusPrevious),
		message.Type == tea.KeyUp:
		form.advanceFocus(-1)
		return model, textinput.Blink

	case message.Type == tea.KeyEnter:
		if form.focus == 0 {
			form.advanceFocus(1)
			return model, textinput.Blink
		}
		if form.submitting {
			return model, nil
		}
		return model, model.submitLogin()
	}

	var command tea.Cmd
	if form.focus == 0 {
		form.email, command = form.email.Update(message)
	} else {
		form.password, command = form.password.Update(message)
	}
	return model, command
}

// handleLoginResult finishes a sign-in: on success the user lands on
// the dashboard with a greeting; on failure the server's message
// shows inline under the form.
func (model Model) handleLoginResult(message loginSubmittedMsg) (tea.Model, tea.Cmd) {
	model.login.submitting = false
	if message.err != nil {
		model.login.failure = api.ErrorMessage(message.err)
		return model, nil
	}

	var commands []tea.Cmd
	if user := model.authManager.CurrentUser(); user != nil {
		commands = append(commands, model.pushAlert(AlertSuccess, "Welcome back, "+user.Username+"!"))
	}
	commands = append(commands, model.navigate(nav.Target{Page: nav.PageDashboard}))
	return model, tea.Batch(commands...)
}

func (model Model) viewLogin() string {
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)

	sections := []string{
		titleStyle.Render("Sign In"),
		"",
		labelStyle.Render("Email"),
		model.login.email.View(),
		labelStyle.Render("Password"),
		model.login.password.View(),
	}
	if model.login.failure != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(model.theme.AlertError).Render(model.login.failure))
	}
	if model.login.submitting {
		sections = append(sections, "", labelStyle.Render("Signing in..."))
	}
	sections = append(sections, "",
		labelStyle.Render("Enter to submit · Tab to switch fields · Esc for home"))

	form := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(model.width, model.contentHeight(),
		lipgloss.Center, lipgloss.Center, form)
}

// registerForm is the account creation page state.
type registerForm struct {
	username textinput.Model
	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focus    int

	submitting bool
	failure    string
}

func newRegisterForm() registerForm {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 80
	username.Width = 40

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120
	password.Width = 40

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 120
	confirm.Width = 40

	return registerForm{username: username, email: email, password: password, confirm: confirm}
}

func (form *registerForm) fields() []*textinput.Model {
	return []*textinput.Model{&form.username, &form.email, &form.password, &form.confirm}
}

func (form *registerForm) reset() {
	for _, field := range form.fields() {
		field.SetValue("")
		field.Blur()
	}
	form.focus = 0
	form.submitting = false
	form.failure = ""
	form.username.Focus()
}

func (form *registerForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (form *registerForm) advanceFocus(delta int) {
	fields := form.fields()
	fields[form.focus].Blur()
	form.focus = (form.focus + delta + len(fields)) % len(fields)
	fields[form.focus].Focus()
}

// validate applies the client-side checks before any server call:
// all fields present and both password entries matching.
func (form *registerForm) validate() string {
	if strings.TrimSpace(form.username.Value()) == "" ||
		strings.TrimSpace(form.email.Value()) == "" ||
		form.password.Value() == "" {
		return "All fields are required."
	}
	if form.password.Value() != form.confirm.Value() {
		return "Passwords do not match."
	}
	return ""
}

func (model *Model) submitRegister() tea.Cmd {
	form := &model.register
	if failure := form.validate(); failure != "" {
		form.failure = failure
		return nil
	}
	form.submitting = true
	form.failure = ""

	registration := api.RegisterRequest{
		Username: strings.TrimSpace(form.username.Value()),
		Email:    strings.TrimSpace(form.email.Value()),
		Password: form.password.Value(),
	}
	authManager := model.authManager
	return func() tea.Msg {
		err := authManager.Register(requestContext(), registration)
		return registerSubmittedMsg{err: err}
	}
}

func (model Model) updateRegister(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &model.register

	switch {
	case key.Matches(message, model.keys.Cancel):
		return model, model.navigate(nav.Target{Page: nav.PageLogin})

	case key.Matches(message, model.keys.FocusNext),
		message.Type == tea.KeyDown:
		form.advanceFocus(1)
		return model, textinput.Blink

	case key.Matches(message, model.keys.FocusPrevious),
		message.Type == tea.KeyUp:
		form.advanceFocus(-1)
		return model, textinput.Blink

	case message.Type == tea.KeyEnter:
		if form.focus < len(form.fields())-1 {
			form.advanceFocus(1)
			return model, textinput.Blink
		}
		if form.submitting {
			return model, nil
		}
		return model, model.submitRegister()
	}

	var command tea.Cmd
	fields := form.fields()
	*fields[form.focus], command = fields[form.focus].Update(message)
	return model, command
}

// handleRegisterResult finishes an account creation. Registration
// does not sign the user in; success routes to the login page.
func (model Model) handleRegisterResult(message registerSubmittedMsg) (tea.Model, tea.Cmd) {
	model.register.submitting = false
	if message.err != nil {
		model.register.failure = api.ErrorMessage(message.err)
		return model, nil
	}
	return model, tea.Batch(
		model.pushAlert(AlertSuccess, "Account created. Please sign in."),
		model.navigate(nav.Target{Page: nav.PageLogin}),
	)
}

func (model Model) viewRegister() string {
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)

	sections := []string{
		titleStyle.Render("Create Account"),
		"",
		labelStyle.Render("Username"),
		model.register.username.View(),
		labelStyle.Render("Email"),
		model.register.email.View(),
		labelStyle.Render("Password"),
		model.register.password.View(),
		labelStyle.Render("Confirm Password"),
		model.register.confirm.View(),
	}
	if model.register.failure != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(model.theme.AlertError).Render(model.register.failure))
	}
	if model.register.submitting {
		sections = append(sections, "", labelStyle.Render("Creating account..."))
	}
	sections = append(sections, "",
		labelStyle.Render("Enter to submit · Tab to switch fields · Esc for sign in"))

	form := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(model.width, model.contentHeight(),
		lipgloss.Center, lipgloss.Center, form)
}
