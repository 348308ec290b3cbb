// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
)

// --- Authentication ---

// LoginResult is the successful login response: the issued token plus
// the authenticated user's profile.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a token. The token is returned, not
// stored; callers decide whether to persist it and call SetToken.
func (client *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := client.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account. Registration does not authenticate;
// the user logs in afterward.
func (client *Client) Register(ctx context.Context, registration RegisterRequest) error {
	return client.do(ctx, http.MethodPost, "/auth/register", registration, nil)
}

// CurrentUser resolves the identity behind the held token.
func (client *Client) CurrentUser(ctx context.Context) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if err := client.do(ctx, http.MethodGet, "/auth/me", nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// --- Tickets ---

// ListTickets fetches tickets visible to the caller, filtered and
// sorted server-side. Regular users see their own tickets; agents and
// admins see all.
func (client *Client) ListTickets(ctx context.Context, filters TicketFilters) ([]Ticket, error) {
	var result struct {
		Tickets []Ticket `json:"tickets"`
	}
	if err := client.do(ctx, http.MethodGet, "/tickets"+encodeTicketQuery(filters), nil, &result); err != nil {
		return nil, err
	}
	return result.Tickets, nil
}

// GetTicket fetches one ticket with its comments expanded.
func (client *Client) GetTicket(ctx context.Context, ticketID int) (*Ticket, error) {
	var result struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := client.do(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d", ticketID), nil, &result); err != nil {
		return nil, err
	}
	return &result.Ticket, nil
}

// CreateTicket opens a new ticket and returns the created entity.
func (client *Client) CreateTicket(ctx context.Context, creation CreateTicketRequest) (*Ticket, error) {
	var result struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := client.do(ctx, http.MethodPost, "/tickets", creation, &result); err != nil {
		return nil, err
	}
	return &result.Ticket, nil
}

// UpdateTicket applies a partial update and returns the new state.
func (client *Client) UpdateTicket(ctx context.Context, ticketID int, update UpdateTicketRequest) (*Ticket, error) {
	var result struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := client.do(ctx, http.MethodPut, fmt.Sprintf("/tickets/%d", ticketID), update, &result); err != nil {
		return nil, err
	}
	return &result.Ticket, nil
}

// DeleteTicket removes a ticket. The server enforces ownership and
// lifecycle rules; the UI pre-checks them for button visibility only.
func (client *Client) DeleteTicket(ctx context.Context, ticketID int) error {
	return client.do(ctx, http.MethodDelete, fmt.Sprintf("/tickets/%d", ticketID), nil, nil)
}

// --- Comments ---

// ListComments fetches a ticket's comments in creation order.
func (client *Client) ListComments(ctx context.Context, ticketID int) ([]Comment, error) {
	var result struct {
		Comments []Comment `json:"comments"`
	}
	if err := client.do(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d/comments", ticketID), nil, &result); err != nil {
		return nil, err
	}
	return result.Comments, nil
}

// CreateComment appends a comment to a ticket.
func (client *Client) CreateComment(ctx context.Context, ticketID int, content string) (*Comment, error) {
	body := map[string]string{"content": content}
	var result struct {
		Comment Comment `json:"comment"`
	}
	if err := client.do(ctx, http.MethodPost, fmt.Sprintf("/tickets/%d/comments", ticketID), body, &result); err != nil {
		return nil, err
	}
	return &result.Comment, nil
}

// --- Votes ---

// VoteTicket casts an up or down vote. Voting the same direction twice
// removes the vote; voting the other direction switches it. The server
// owns that state machine.
func (client *Client) VoteTicket(ctx context.Context, ticketID int, voteType string) error {
	body := map[string]string{"vote_type": voteType}
	return client.do(ctx, http.MethodPost, fmt.Sprintf("/tickets/%d/vote", ticketID), body, nil)
}

// GetVotes fetches the vote tally for a ticket, including the calling
// user's own vote.
func (client *Client) GetVotes(ctx context.Context, ticketID int) (*VoteSummary, error) {
	var result VoteSummary
	if err := client.do(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d/vote", ticketID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Categories ---

// ListCategories fetches all ticket categories.
func (client *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var result struct {
		Categories []Category `json:"categories"`
	}
	if err := client.do(ctx, http.MethodGet, "/categories", nil, &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

// CreateCategory adds a category (admin only).
func (client *Client) CreateCategory(ctx context.Context, category CategoryRequest) (*Category, error) {
	var result struct {
		Category Category `json:"category"`
	}
	if err := client.do(ctx, http.MethodPost, "/categories", category, &result); err != nil {
		return nil, err
	}
	return &result.Category, nil
}

// UpdateCategory renames or re-describes a category (admin only).
func (client *Client) UpdateCategory(ctx context.Context, categoryID int, category CategoryRequest) (*Category, error) {
	var result struct {
		Category Category `json:"category"`
	}
	if err := client.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", categoryID), category, &result); err != nil {
		return nil, err
	}
	return &result.Category, nil
}

// DeleteCategory removes a category (admin only).
func (client *Client) DeleteCategory(ctx context.Context, categoryID int) error {
	return client.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", categoryID), nil, nil)
}

// --- Users (admin) ---

// ListUsers fetches all accounts (admin only).
func (client *Client) ListUsers(ctx context.Context) ([]User, error) {
	var result struct {
		Users []User `json:"users"`
	}
	if err := client.do(ctx, http.MethodGet, "/users", nil, &result); err != nil {
		return nil, err
	}
	return result.Users, nil
}

// UpdateUser applies a partial account update (admin only).
func (client *Client) UpdateUser(ctx context.Context, userID int, update UpdateUserRequest) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if err := client.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", userID), update, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// DeleteUser removes an account (admin only).
func (client *Client) DeleteUser(ctx context.Context, userID int) error {
	return client.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil, nil)
}

// --- Attachments ---

// ListAttachments fetches a ticket's attachment metadata.
func (client *Client) ListAttachments(ctx context.Context, ticketID int) ([]Attachment, error) {
	var result struct {
		Attachments []Attachment `json:"attachments"`
	}
	if err := client.do(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d/attachments", ticketID), nil, &result); err != nil {
		return nil, err
	}
	return result.Attachments, nil
}
