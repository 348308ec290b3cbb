// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/auth"
	"github.com/quickdesk/quickdesk/lib/nav"
)

// searchDebounceDelay is the default pause after the last keystroke
// in a list search box before the query is sent to the server.
// Overridable through the config file (search_debounce).
const searchDebounceDelay = 300 * time.Millisecond

// LoadingMsg reports a change of the API client's busy state. The
// composition root wires api.Client.OnLoading to tea.Program.Send;
// the model shows a spinner in the header while Active is true.
type LoadingMsg struct {
	Active bool
}

// Model is the top-level bubbletea model for the QuickDesk client.
type Model struct {
	client      *api.Client
	authManager *auth.Manager
	theme       Theme
	keys        KeyMap
	logger      *slog.Logger

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Navigation. current mirrors the history's current entry;
	// generation increments on every page load so that responses to
	// superseded loads are discarded on arrival.
	history    *nav.History
	current    nav.Target
	generation int

	// Debounce override from config; zero means searchDebounceDelay.
	debounceDelay time.Duration

	// Header spinner, driven by LoadingMsg from the API client.
	loading     bool
	loadSpinner spinner.Model

	alerts alertStack

	// Full-page failure: set when the current page's primary fetch
	// fails. The page body is replaced by an error panel until the
	// user refreshes or jumps to the dashboard.
	pageError string

	// Per-page view state.
	login      loginForm
	register   registerForm
	dashboard  dashboardState
	ticketList ticketListState
	detail     detailState
	create     createForm
	users      usersState
	categories categoriesState
}

// Option adjusts a Model at construction time.
type Option func(*Model)

// WithDebounce overrides the search debounce delay.
func WithDebounce(delay time.Duration) Option {
	return func(model *Model) {
		if delay > 0 {
			model.debounceDelay = delay
		}
	}
}

// WithLogger sets the model's logger. The TUI logs to a file handler;
// writing to the terminal would fight the renderer.
func WithLogger(logger *slog.Logger) Option {
	return func(model *Model) {
		model.logger = logger
	}
}

// NewModel creates the client model. The auth manager must already be
// initialized (session restore happens before the program starts).
// The initial page is the dashboard when signed in, otherwise home.
func NewModel(client *api.Client, authManager *auth.Manager, options ...Option) Model {
	loadSpinner := spinner.New(spinner.WithSpinner(spinner.Dot))

	model := Model{
		client:        client,
		authManager:   authManager,
		theme:         DefaultTheme,
		keys:          DefaultKeyMap,
		logger:        slog.New(slog.DiscardHandler),
		history:       nav.NewHistory(),
		debounceDelay: searchDebounceDelay,
		loadSpinner:   loadSpinner,
		login:         newLoginForm(),
		register:      newRegisterForm(),
		ticketList:    newTicketListState(),
		detail:        newDetailState(),
		create:        newCreateForm(),
		categories:    newCategoriesState(),
	}
	for _, option := range options {
		option(&model)
	}

	start := nav.Target{Page: nav.PageHome}
	if authManager.IsLoggedIn() {
		start = nav.Target{Page: nav.PageDashboard}
	}
	model.current, _ = nav.Guard(start, authManager)
	model.history.Push(model.current)

	return model
}

// Init implements tea.Model. Kicks off the initial page load.
func (model Model) Init() tea.Cmd {
	return model.loadCurrent()
}

// navigate guards the requested target, records the resolved page in
// the history, and starts its data load. Redirected requests never
// enter the history under their original name; only the resolved
// page does.
func (model *Model) navigate(target nav.Target) tea.Cmd {
	resolved, redirected := nav.Guard(target, model.authManager)
	if redirected {
		model.logger.Debug("navigation redirected",
			"requested", string(target.Page), "resolved", string(resolved.Page))
	}
	model.history.Push(resolved)
	model.current = resolved
	model.generation++
	return model.loadCurrent()
}

// historyBack moves to the previous history entry and reloads it.
// Stepping through history refetches: the client never trusts data
// fetched for an earlier visit.
func (model *Model) historyBack() tea.Cmd {
	target, ok := model.history.Back()
	if !ok {
		return nil
	}
	model.current = target
	model.generation++
	return model.loadCurrent()
}

func (model *Model) historyForward() tea.Cmd {
	target, ok := model.history.Forward()
	if !ok {
		return nil
	}
	model.current = target
	model.generation++
	return model.loadCurrent()
}

// loadCurrent clears the previous page's failure state and returns
// the fetch command for the current page, issued under the current
// load generation. Callers starting a new page visit bump the
// generation first; Init deliberately does not, because bubbletea
// calls it on a value copy whose mutations would be lost.
func (model *Model) loadCurrent() tea.Cmd {
	model.pageError = ""

	switch model.current.Page {
	case nav.PageDashboard:
		return model.loadDashboard()
	case nav.PageMyTickets:
		model.ticketList.forAllTickets = false
		return model.loadTickets()
	case nav.PageAllTickets:
		model.ticketList.forAllTickets = true
		return model.loadTickets()
	case nav.PageTicketDetail:
		return model.loadDetail(model.current.TicketID)
	case nav.PageCreateTicket:
		model.create.reset()
		return model.loadCreateCategories()
	case nav.PageUsers:
		return model.loadUsers()
	case nav.PageCategories:
		model.categories.closeEditor()
		return model.loadCategories()
	case nav.PageLogin:
		model.login.reset()
		return model.login.focusCmd()
	case nav.PageRegister:
		model.register.reset()
		return model.register.focusCmd()
	}
	return nil
}

// textInputFocused reports whether the current page routes keystrokes
// into a text field. History shortcuts and single-letter actions are
// suppressed while typing.
func (model *Model) textInputFocused() bool {
	switch model.current.Page {
	case nav.PageLogin, nav.PageRegister, nav.PageCreateTicket:
		return true
	case nav.PageMyTickets, nav.PageAllTickets:
		return model.ticketList.searchFocused
	case nav.PageTicketDetail:
		return model.detail.commentOpen
	case nav.PageCategories:
		return model.categories.editing
	}
	return false
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.resizePages()
		return model, nil

	case LoadingMsg:
		wasLoading := model.loading
		model.loading = message.Active
		if message.Active && !wasLoading {
			return model, model.loadSpinner.Tick
		}
		return model, nil

	case spinner.TickMsg:
		if !model.loading {
			return model, nil
		}
		var command tea.Cmd
		model.loadSpinner, command = model.loadSpinner.Update(message)
		return model, command

	case alertExpiredMsg:
		model.alerts.Dismiss(message.id)
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	// Data messages are routed to their page handlers; each handler
	// discards messages carrying a stale generation.
	return model.handleData(message)
}

// handleKey routes a keystroke: global bindings first, then the
// current page. While a text field has focus, only the page handler
// sees the key (except Quit via ctrl+c, which always works).
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	typing := model.textInputFocused()

	if !typing {
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.DismissAlert):
			if model.alerts.Len() > 0 {
				model.alerts.DismissOldest()
				return model, nil
			}

		case key.Matches(message, model.keys.Refresh):
			model.generation++
			return model, model.loadCurrent()

		case key.Matches(message, model.keys.GoDashboard):
			return model, model.navigate(nav.Target{Page: nav.PageDashboard})
		case key.Matches(message, model.keys.GoMyTickets):
			return model, model.navigate(nav.Target{Page: nav.PageMyTickets})
		case key.Matches(message, model.keys.GoAllTickets):
			return model, model.navigate(nav.Target{Page: nav.PageAllTickets})
		case key.Matches(message, model.keys.GoCreateTicket):
			return model, model.navigate(nav.Target{Page: nav.PageCreateTicket})
		case key.Matches(message, model.keys.GoUsers):
			return model, model.navigate(nav.Target{Page: nav.PageUsers})
		case key.Matches(message, model.keys.GoCategories):
			return model, model.navigate(nav.Target{Page: nav.PageCategories})
		}
	}

	// History shortcuts mirror the navigation chrome: available only
	// while signed in, and never while typing. Logout lives here for
	// the same reason; it is meaningless while anonymous.
	if model.authManager.IsLoggedIn() && !typing {
		switch {
		case key.Matches(message, model.keys.Back):
			return model, model.historyBack()
		case key.Matches(message, model.keys.Forward):
			return model, model.historyForward()
		case key.Matches(message, model.keys.Logout):
			model.authManager.Logout()
			return model, tea.Batch(
				model.pushAlert(AlertInfo, "Logged out."),
				model.navigate(nav.Target{Page: nav.PageHome}),
			)
		}
	}

	return model.handlePageKey(message)
}

// handlePageKey dispatches a keystroke to the current page.
func (model Model) handlePageKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.current.Page {
	case nav.PageHome:
		return model.updateHome(message)
	case nav.PageLogin:
		return model.updateLogin(message)
	case nav.PageRegister:
		return model.updateRegister(message)
	case nav.PageDashboard:
		return model.updateDashboard(message)
	case nav.PageMyTickets, nav.PageAllTickets:
		return model.updateTicketList(message)
	case nav.PageTicketDetail:
		return model.updateDetail(message)
	case nav.PageCreateTicket:
		return model.updateCreate(message)
	case nav.PageUsers:
		return model.updateUsers(message)
	case nav.PageCategories:
		return model.updateCategories(message)
	}
	return model, nil
}

// handleData dispatches asynchronous data messages.
func (model Model) handleData(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case loginSubmittedMsg:
		return model.handleLoginResult(message)
	case registerSubmittedMsg:
		return model.handleRegisterResult(message)
	case dashboardLoadedMsg:
		return model.handleDashboardLoaded(message)
	case ticketsLoadedMsg:
		return model.handleTicketsLoaded(message)
	case searchDebounceMsg:
		return model.handleSearchDebounce(message)
	case detailLoadedMsg:
		return model.handleDetailLoaded(message)
	case votesLoadedMsg:
		return model.handleVotesLoaded(message)
	case attachmentsLoadedMsg:
		return model.handleAttachmentsLoaded(message)
	case commentPostedMsg:
		return model.handleCommentPosted(message)
	case voteRecordedMsg:
		return model.handleVoteRecorded(message)
	case ticketDeletedMsg:
		return model.handleTicketDeleted(message)
	case ticketUpdatedMsg:
		return model.handleTicketUpdated(message)
	case attachmentDownloadedMsg:
		return model.handleAttachmentDownloaded(message)
	case createCategoriesLoadedMsg:
		return model.handleCreateCategoriesLoaded(message)
	case ticketCreatedMsg:
		return model.handleTicketCreated(message)
	case attachmentUploadedMsg:
		return model.handleAttachmentUploaded(message)
	case usersLoadedMsg:
		return model.handleUsersLoaded(message)
	case userMutatedMsg:
		return model.handleUserMutated(message)
	case categoriesLoadedMsg:
		return model.handleCategoriesLoaded(message)
	case categoryMutatedMsg:
		return model.handleCategoryMutated(message)
	}
	return model, nil
}

// stale reports whether a data message belongs to a superseded page
// load.
func (model *Model) stale(generation int) bool {
	return generation != model.generation
}

// failPage records a primary-fetch failure for the current page.
func (model *Model) failPage(err error) {
	model.pageError = api.ErrorMessage(err)
	model.logger.Warn("page load failed",
		"page", string(model.current.Page), "error", err)
}

// pushAlert appends an alert and returns its expiry command.
func (model *Model) pushAlert(level AlertLevel, text string) tea.Cmd {
	return model.alerts.Push(level, text)
}

// resizePages propagates the new terminal size to page components
// that track their own dimensions.
func (model *Model) resizePages() {
	model.detail.resize(model.width, model.contentHeight())
}

// contentHeight is the page body height: total minus header, alerts,
// and the help line.
func (model *Model) contentHeight() int {
	height := model.height - 2 - model.alerts.Len() - 1
	if height < 3 {
		height = 3
	}
	return height
}

// requestContext returns the context for a server call issued by a
// tea.Cmd. The HTTP client carries the configured timeout.
func requestContext() context.Context {
	return context.Background()
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "loading..."
	}

	header := model.viewHeader()
	alerts := model.alerts.View(model.theme, model.width)

	var body string
	if model.pageError != "" {
		body = model.viewErrorPanel()
	} else {
		body = model.viewPage()
	}

	help := model.viewHelp()

	sections := []string{header}
	if alerts != "" {
		sections = append(sections, alerts)
	}
	sections = append(sections, body, help)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHeader renders the top bar: application name, current page,
// busy spinner, and the signed-in identity.
func (model Model) viewHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := titleStyle.Render("QuickDesk") + faint.Render(" · ") +
		titleStyle.Render(nav.DisplayName(model.current.Page))
	if model.loading {
		left += " " + model.loadSpinner.View()
	}

	var right string
	if user := model.authManager.CurrentUser(); user != nil {
		right = faint.Render(user.Username + " (" + user.Role + ")")
	} else {
		right = faint.Render("not signed in")
	}

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + lipgloss.NewStyle().Width(gap).Render("") + right

	border := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(repeatRune('─', model.width))
	return lipgloss.JoinVertical(lipgloss.Left, line, border)
}

// viewErrorPanel is the full-page failure view. Refresh retries the
// load; the dashboard jump gives a known-good recovery point.
func (model Model) viewErrorPanel() string {
	errorStyle := lipgloss.NewStyle().
		Foreground(model.theme.AlertError).
		Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	panel := lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("Something went wrong"),
		"",
		lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(model.pageError),
		"",
		faint.Render("r to retry · 1 for the dashboard"),
	)
	return lipgloss.Place(model.width, model.contentHeight(),
		lipgloss.Center, lipgloss.Center, panel)
}

// viewPage renders the current page body.
func (model Model) viewPage() string {
	switch model.current.Page {
	case nav.PageHome:
		return model.viewHome()
	case nav.PageLogin:
		return model.viewLogin()
	case nav.PageRegister:
		return model.viewRegister()
	case nav.PageDashboard:
		return model.viewDashboard()
	case nav.PageMyTickets, nav.PageAllTickets:
		return model.viewTicketList()
	case nav.PageTicketDetail:
		return model.viewDetail()
	case nav.PageCreateTicket:
		return model.viewCreate()
	case nav.PageUsers:
		return model.viewUsers()
	case nav.PageCategories:
		return model.viewCategories()
	}
	return model.viewNotFound()
}

// viewNotFound is the placeholder for pages outside the known set.
func (model Model) viewNotFound() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	return lipgloss.Place(model.width, model.contentHeight(),
		lipgloss.Center, lipgloss.Center,
		faint.Render("This page does not exist."))
}

// viewHelp renders the bottom help line with history hints. The hints
// name the destination page, as a tooltip would.
func (model Model) viewHelp() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	parts := []string{"q quit", "r refresh"}
	if model.authManager.IsLoggedIn() {
		parts = append(parts, "L log out")
		if target, ok := model.history.PeekBack(); ok {
			parts = append(parts, "M-← back to "+nav.DisplayName(target.Page))
		}
		if target, ok := model.history.PeekForward(); ok {
			parts = append(parts, "M-→ forward to "+nav.DisplayName(target.Page))
		}
	}
	if model.alerts.Len() > 0 {
		parts = append(parts, "x dismiss")
	}
	return faint.Render(" " + joinHelp(parts))
}

func joinHelp(parts []string) string {
	result := ""
	for index, part := range parts {
		if index > 0 {
			result += " · "
		}
		result += part
	}
	return result
}

func repeatRune(character rune, count int) string {
	if count < 0 {
		count = 0
	}
	runes := make([]rune, count)
	for index := range runes {
		runes[index] = character
	}
	return string(runes)
}
