// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/format"
	"github.com/quickdesk/quickdesk/lib/nav"
)

// detailLoadedMsg delivers the primary detail fetch: the ticket with
// its comments.
type detailLoadedMsg struct {
	generation int
	ticket     *api.Ticket
	err        error
}

// votesLoadedMsg and attachmentsLoadedMsg deliver the secondary
// fetches. Their failures stay inline; the page itself survives.
type votesLoadedMsg struct {
	generation int
	votes      *api.VoteSummary
	err        error
}

type attachmentsLoadedMsg struct {
	generation  int
	attachments []api.Attachment
	err         error
}

type commentPostedMsg struct {
	generation int
	comment    *api.Comment
	err        error
}

// voteRecordedMsg carries the refreshed tally after a vote.
type voteRecordedMsg struct {
	generation int
	votes      *api.VoteSummary
	err        error
}

type ticketDeletedMsg struct {
	err error
}

type ticketUpdatedMsg struct {
	generation int
	ticket     *api.Ticket
	err        error
}

type attachmentDownloadedMsg struct {
	filename string
	err      error
}

// detailState is the ticket detail page: a scrollable body plus an
// optional comment editor.
type detailState struct {
	ticket      *api.Ticket
	votes       *api.VoteSummary
	attachments []api.Attachment

	// Inline failure regions for the secondary fetches.
	votesFailure       string
	attachmentsFailure string

	body             viewport.Model
	attachmentCursor int

	commentOpen   bool
	commentEditor textarea.Model

	width  int
	height int
}

func newDetailState() detailState {
	editor := textarea.New()
	editor.Placeholder = "Write a comment..."
	editor.CharLimit = 4000
	editor.SetHeight(4)
	return detailState{
		body:          viewport.New(80, 20),
		commentEditor: editor,
	}
}

// resize updates the viewport for a new terminal size. The header
// takes two lines; the comment editor, when open, takes its height
// plus a hint line.
func (state *detailState) resize(width, height int) {
	state.width = width
	state.height = height
	bodyHeight := height - 2
	if state.commentOpen {
		bodyHeight -= state.commentEditor.Height() + 1
	}
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	state.body.Width = width
	state.body.Height = bodyHeight
	state.commentEditor.SetWidth(width - 2)
}

// canDeleteTicket is the client-side mirror of the server's delete
// rule: admins and agents delete anything; a regular user deletes
// only their own ticket and only before it is resolved or closed.
func canDeleteTicket(user *api.User, ticket *api.Ticket) bool {
	if user == nil || ticket == nil {
		return false
	}
	if user.Role == "admin" || user.Role == "agent" {
		return true
	}
	if ticket.UserID != user.ID {
		return false
	}
	return ticket.Status != "resolved" && ticket.Status != "closed"
}

// loadDetail fetches the ticket, its vote tally, and its attachments
// in parallel. Only the ticket fetch is fatal to the page.
func (model *Model) loadDetail(ticketID int) tea.Cmd {
	model.detail.ticket = nil
	model.detail.votes = nil
	model.detail.attachments = nil
	model.detail.votesFailure = ""
	model.detail.attachmentsFailure = ""
	model.detail.attachmentCursor = 0
	model.detail.commentOpen = false
	model.detail.resize(model.width, model.contentHeight())

	if ticketID == 0 {
		// No ticket parameter: render the not-found body without a
		// doomed request.
		return nil
	}

	generation := model.generation
	client := model.client
	return tea.Batch(
		func() tea.Msg {
			ticket, err := client.GetTicket(requestContext(), ticketID)
			return detailLoadedMsg{generation: generation, ticket: ticket, err: err}
		},
		func() tea.Msg {
			votes, err := client.GetVotes(requestContext(), ticketID)
			return votesLoadedMsg{generation: generation, votes: votes, err: err}
		},
		func() tea.Msg {
			attachments, err := client.ListAttachments(requestContext(), ticketID)
			return attachmentsLoadedMsg{generation: generation, attachments: attachments, err: err}
		},
	)
}

func (model Model) handleDetailLoaded(message detailLoadedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		model.failPage(message.err)
		return model, nil
	}
	model.detail.ticket = message.ticket
	model.refreshDetailBody()
	return model, nil
}

func (model Model) handleVotesLoaded(message votesLoadedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		model.detail.votesFailure = api.ErrorMessage(message.err)
	} else {
		model.detail.votes = message.votes
		model.detail.votesFailure = ""
	}
	model.refreshDetailBody()
	return model, nil
}

func (model Model) handleAttachmentsLoaded(message attachmentsLoadedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		model.detail.attachmentsFailure = api.ErrorMessage(message.err)
	} else {
		model.detail.attachments = message.attachments
		model.detail.attachmentsFailure = ""
	}
	model.refreshDetailBody()
	return model, nil
}

// submitComment posts the editor content. Empty comments are rejected
// locally with a warning.
func (model *Model) submitComment() tea.Cmd {
	content := strings.TrimSpace(model.detail.commentEditor.Value())
	if content == "" {
		return model.pushAlert(AlertWarning, "Comment cannot be empty.")
	}
	generation := model.generation
	client := model.client
	ticketID := model.current.TicketID
	return func() tea.Msg {
		comment, err := client.CreateComment(requestContext(), ticketID, content)
		return commentPostedMsg{generation: generation, comment: comment, err: err}
	}
}

func (model Model) handleCommentPosted(message commentPostedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		return model, model.pushAlert(AlertError, api.ErrorMessage(message.err))
	}
	if model.detail.ticket != nil && message.comment != nil {
		model.detail.ticket.Comments = append(model.detail.ticket.Comments, *message.comment)
	}
	model.detail.commentOpen = false
	model.detail.commentEditor.SetValue("")
	model.detail.resize(model.width, model.contentHeight())
	model.refreshDetailBody()
	return model, model.pushAlert(AlertSuccess, "Comment added.")
}

// castVote records a vote and returns the fresh tally in one round
// trip pair.
func (model *Model) castVote(voteType string) tea.Cmd {
	generation := model.generation
	client := model.client
	ticketID := model.current.TicketID
	return func() tea.Msg {
		if err := client.VoteTicket(requestContext(), ticketID, voteType); err != nil {
			return voteRecordedMsg{generation: generation, err: err}
		}
		votes, err := client.GetVotes(requestContext(), ticketID)
		return voteRecordedMsg{generation: generation, votes: votes, err: err}
	}
}

func (model Model) handleVoteRecorded(message voteRecordedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		return model, model.pushAlert(AlertError, api.ErrorMessage(message.err))
	}
	model.detail.votes = message.votes
	model.detail.votesFailure = ""
	model.refreshDetailBody()
	return model, nil
}

func (model *Model) deleteCurrentTicket() tea.Cmd {
	client := model.client
	ticketID := model.current.TicketID
	return func() tea.Msg {
		err := client.DeleteTicket(requestContext(), ticketID)
		return ticketDeletedMsg{err: err}
	}
}

func (model Model) handleTicketDeleted(message ticketDeletedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		return model, model.pushAlert(AlertError, api.ErrorMessage(message.err))
	}
	return model, tea.Batch(
		model.pushAlert(AlertSuccess, "Ticket deleted."),
		model.navigate(nav.Target{Page: nav.PageMyTickets}),
	)
}

// advanceStatus cycles the ticket's status through the lifecycle.
// Agent-only; the server enforces the same rule.
func (model *Model) advanceStatus() tea.Cmd {
	ticket := model.detail.ticket
	if ticket == nil {
		return nil
	}
	order := []string{"open", "in_progress", "resolved", "closed"}
	next := order[0]
	for index, status := range order {
		if status == ticket.Status {
			next = order[(index+1)%len(order)]
			break
		}
	}
	generation := model.generation
	client := model.client
	ticketID := ticket.ID
	return func() tea.Msg {
		updated, err := client.UpdateTicket(requestContext(), ticketID,
			api.UpdateTicketRequest{Status: &next})
		return ticketUpdatedMsg{generation: generation, ticket: updated, err: err}
	}
}

// assignToSelf sets the signed-in agent as the ticket's assignee.
func (model *Model) assignToSelf() tea.Cmd {
	user := model.authManager.CurrentUser()
	if user == nil || model.detail.ticket == nil {
		return nil
	}
	generation := model.generation
	client := model.client
	ticketID := model.detail.ticket.ID
	userID := user.ID
	return func() tea.Msg {
		updated, err := client.UpdateTicket(requestContext(), ticketID,
			api.UpdateTicketRequest{AssignedTo: &userID})
		return ticketUpdatedMsg{generation: generation, ticket: updated, err: err}
	}
}

func (model Model) handleTicketUpdated(message ticketUpdatedMsg) (tea.Model, tea.Cmd) {
	if model.stale(message.generation) {
		return model, nil
	}
	if message.err != nil {
		return model, model.pushAlert(AlertError, api.ErrorMessage(message.err))
	}
	if message.ticket != nil {
		// Updates come back without comments; keep the ones on hand.
		comments := []api.Comment(nil)
		if model.detail.ticket != nil {
			comments = model.detail.ticket.Comments
		}
		model.detail.ticket = message.ticket
		if len(model.detail.ticket.Comments) == 0 {
			model.detail.ticket.Comments = comments
		}
	}
	model.refreshDetailBody()
	return model, model.pushAlert(AlertSuccess, "Ticket updated.")
}

// downloadSelectedAttachment streams the selected attachment to a
// file in the working directory under its original name.
func (model *Model) downloadSelectedAttachment() tea.Cmd {
	state := &model.detail
	if state.attachmentCursor >= len(state.attachments) {
		return nil
	}
	attachment := state.attachments[state.attachmentCursor]
	client := model.client
	return func() tea.Msg {
		body, err := client.DownloadAttachment(requestContext(), attachment.ID)
		if err != nil {
			return attachmentDownloadedMsg{filename: attachment.OriginalFilename, err: err}
		}
		defer body.Close()

		file, err := os.Create(attachment.OriginalFilename)
		if err != nil {
			return attachmentDownloadedMsg{filename: attachment.OriginalFilename, err: err}
		}
		defer file.Close()

		_, err = io.Copy(file, body)
		return attachmentDownloadedMsg{filename: attachment.OriginalFilename, err: err}
	}
}

func (model Model) handleAttachmentDownloaded(message attachmentDownloadedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		return model, model.pushAlert(AlertError, "Download failed: "+api.ErrorMessage(message.err))
	}
	return model, model.pushAlert(AlertSuccess, "Saved "+message.filename)
}

func (model Model) updateDetail(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := &model.detail

	if state.commentOpen {
		switch {
		case key.Matches(message, model.keys.Cancel):
			state.commentOpen = false
			state.commentEditor.Blur()
			state.resize(model.width, model.contentHeight())
			return model, nil
		case message.Type == tea.KeyCtrlD:
			return model, model.submitComment()
		}
		var command tea.Cmd
		state.commentEditor, command = state.commentEditor.Update(message)
		return model, command
	}

	switch {
	case key.Matches(message, model.keys.Comment):
		if !model.authManager.IsLoggedIn() || state.ticket == nil {
			return model, nil
		}
		state.commentOpen = true
		state.commentEditor.Focus()
		state.resize(model.width, model.contentHeight())
		return model, textarea.Blink

	case key.Matches(message, model.keys.Upvote):
		if state.ticket != nil {
			return model, model.castVote("up")
		}
	case key.Matches(message, model.keys.Downvote):
		if state.ticket != nil {
			return model, model.castVote("down")
		}

	case key.Matches(message, model.keys.Delete):
		if canDeleteTicket(model.authManager.CurrentUser(), state.ticket) {
			return model, model.deleteCurrentTicket()
		}
		return model, model.pushAlert(AlertWarning, "You cannot delete this ticket.")

	case key.Matches(message, model.keys.CycleOne):
		if model.authManager.IsAgent() {
			return model, model.advanceStatus()
		}
	case key.Matches(message, model.keys.CycleAux):
		if model.authManager.IsAgent() {
			return model, model.assignToSelf()
		}

	case key.Matches(message, model.keys.Left):
		if state.attachmentCursor > 0 {
			state.attachmentCursor--
			model.refreshDetailBody()
		}
	case key.Matches(message, model.keys.Right):
		if state.attachmentCursor < len(state.attachments)-1 {
			state.attachmentCursor++
			model.refreshDetailBody()
		}
	case key.Matches(message, model.keys.Download):
		return model, model.downloadSelectedAttachment()

	case key.Matches(message, model.keys.Up):
		state.body.LineUp(1)
	case key.Matches(message, model.keys.Down):
		state.body.LineDown(1)
	case key.Matches(message, model.keys.PageUp):
		state.body.HalfViewUp()
	case key.Matches(message, model.keys.PageDown):
		state.body.HalfViewDown()
	case key.Matches(message, model.keys.Home):
		state.body.GotoTop()
	case key.Matches(message, model.keys.End):
		state.body.GotoBottom()
	}
	return model, nil
}

// refreshDetailBody rebuilds the viewport content from the current
// detail data.
func (model *Model) refreshDetailBody() {
	state := &model.detail
	if state.ticket == nil {
		return
	}
	state.body.SetContent(model.renderDetailBody())
}

// renderDetailBody assembles the scrollable portion of the page:
// metadata, description, votes, attachments, and comments.
func (model *Model) renderDetailBody() string {
	state := &model.detail
	ticket := state.ticket
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	heading := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)

	width := state.width - 2
	if width < 20 {
		width = 20
	}

	creator := "unknown"
	if ticket.Creator != nil {
		creator = ticket.Creator.Username
	}
	category := "uncategorized"
	if ticket.Category != nil {
		category = ticket.Category.Name
	}
	assignee := "unassigned"
	if ticket.Assignee != nil {
		assignee = ticket.Assignee.Username
	}

	meta := faint.Render("by "+creator+" · "+category+" · assigned to "+assignee+
		" · created "+format.Date(ticket.CreatedAt)+
		" · updated "+format.Relative(ticket.UpdatedAt))

	sections := []string{
		format.StatusBadge(ticket.Status) + " " + format.PriorityBadge(ticket.Priority),
		meta,
		"",
		renderDescription(ticket.Description, model.theme, width),
		"",
	}

	// Votes.
	voteLine := heading.Render("Votes") + " "
	if state.votesFailure != "" {
		voteLine += lipgloss.NewStyle().
			Foreground(model.theme.AlertError).
			Render(state.votesFailure)
	} else if state.votes != nil {
		upStyle := normal
		downStyle := normal
		if state.votes.UserVote == "up" {
			upStyle = lipgloss.NewStyle().Foreground(model.theme.AlertSuccess).Bold(true)
		}
		if state.votes.UserVote == "down" {
			downStyle = lipgloss.NewStyle().Foreground(model.theme.AlertError).Bold(true)
		}
		voteLine += upStyle.Render("▲ "+strconv.Itoa(state.votes.Upvotes)) + "  " +
			downStyle.Render("▼ "+strconv.Itoa(state.votes.Downvotes)) + "  " +
			faint.Render("score "+strconv.Itoa(state.votes.VoteScore))
	} else {
		voteLine += faint.Render("score " + strconv.Itoa(ticket.VoteScore))
	}
	sections = append(sections, voteLine, "")

	// Attachments.
	sections = append(sections, heading.Render("Attachments"))
	switch {
	case state.attachmentsFailure != "":
		sections = append(sections, lipgloss.NewStyle().
			Foreground(model.theme.AlertError).
			Render(state.attachmentsFailure))
	case len(state.attachments) == 0:
		sections = append(sections, faint.Render("none"))
	default:
		for index, attachment := range state.attachments {
			line := attachment.OriginalFilename + "  " +
				faint.Render(format.FileSize(attachment.FileSize)+" · "+
					format.Relative(attachment.UploadedAt))
			if index == state.attachmentCursor {
				line = normal.Render("> ") + line
			} else {
				line = "  " + line
			}
			sections = append(sections, line)
		}
	}
	sections = append(sections, "")

	// Comments.
	sections = append(sections, heading.Render("Comments ("+
		strconv.Itoa(len(ticket.Comments))+")"))
	if len(ticket.Comments) == 0 {
		sections = append(sections, faint.Render("No comments yet."))
	}
	for _, comment := range ticket.Comments {
		author := "unknown"
		if comment.Author != nil {
			author = comment.Author.Username
		}
		header := normal.Render(author) + " " + faint.Render(format.Relative(comment.CreatedAt))
		if comment.IsInternal {
			header += " " + lipgloss.NewStyle().
				Foreground(model.theme.AlertWarning).
				Render("[internal]")
		}
		sections = append(sections, "", header, normal.Render(comment.Content))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (model Model) viewDetail() string {
	state := &model.detail
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	if model.current.TicketID == 0 || (state.ticket == nil && model.pageError == "") {
		if model.current.TicketID == 0 {
			return lipgloss.Place(model.width, model.contentHeight(),
				lipgloss.Center, lipgloss.Center,
				faint.Render("Ticket not found."))
		}
		return lipgloss.Place(model.width, model.contentHeight(),
			lipgloss.Center, lipgloss.Center,
			faint.Render("Loading ticket..."))
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	title := titleStyle.Render("#" + strconv.Itoa(state.ticket.ID) + " " +
		format.Truncate(state.ticket.Subject, model.width-10))

	sections := []string{title, "", state.body.View()}

	if state.commentOpen {
		sections = append(sections,
			state.commentEditor.View(),
			faint.Render(" C-d to submit · Esc to cancel"))
	} else {
		help := " c comment · + / - vote · d download"
		if canDeleteTicket(model.authManager.CurrentUser(), state.ticket) {
			help += " · D delete"
		}
		if model.authManager.IsAgent() {
			help += " · s advance status · a assign to me"
		}
		sections = append(sections, faint.Render(help))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
