// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

// User is a help-desk account as returned by the server. Role is one
// of "user", "agent", "admin".
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

// Category groups tickets ("Technical Support", "Bug Report", ...).
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	IsActive    bool   `json:"is_active"`
}

// Ticket is a support request. The client never caches tickets beyond
// the last fetched snapshot; the server owns all state.
type Ticket struct {
	ID          int    `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      string `json:"status"`   // open, in_progress, resolved, closed.
	Priority    string `json:"priority"` // low, medium, high, urgent.
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	UserID      int    `json:"user_id"`
	CategoryID  int    `json:"category_id"`
	AssignedTo  *int   `json:"assigned_to"`
	VoteScore   int    `json:"vote_score"`

	// Expanded relations, present when the server includes them.
	Creator  *User     `json:"creator"`
	Category *Category `json:"category"`
	Assignee *User     `json:"assignee"`
	Comments []Comment `json:"comments,omitempty"`
}

// Comment is a message on a ticket. IsInternal marks agent-only notes.
type Comment struct {
	ID         int    `json:"id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	IsInternal bool   `json:"is_internal"`
	TicketID   int    `json:"ticket_id"`
	UserID     int    `json:"user_id"`
	Author     *User  `json:"author"`
}

// Attachment is a file uploaded to a ticket.
type Attachment struct {
	ID               int    `json:"id"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`
	UploadedAt       string `json:"uploaded_at"`
	TicketID         int    `json:"ticket_id"`
	UserID           int    `json:"user_id"`
}

// VoteSummary is the tally for one ticket, including the calling
// user's own vote ("up", "down", or empty).
type VoteSummary struct {
	VoteScore int    `json:"vote_score"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	UserVote  string `json:"user_vote"`
}

// TicketFilters are the query parameters accepted by the ticket list
// endpoint. Zero values are omitted from the query string.
type TicketFilters struct {
	// Search matches against subject and description.
	Search string
	// Status filters by lifecycle state.
	Status string
	// Priority filters by priority.
	Priority string
	// AssignedTo is "null" (unassigned), "not_null" (any assignee),
	// or a user ID in decimal.
	AssignedTo string
	// SortBy is one of created_at_desc, created_at_asc,
	// updated_at_desc, priority_desc. Empty means server default.
	SortBy string
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTicketRequest is the payload for ticket creation.
type CreateTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	CategoryID  int    `json:"category_id"`
	Priority    string `json:"priority"`
}

// UpdateTicketRequest carries the mutable ticket fields. Nil pointers
// are omitted so partial updates leave other fields untouched.
type UpdateTicketRequest struct {
	Subject     *string `json:"subject,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	CategoryID  *int    `json:"category_id,omitempty"`
	AssignedTo  *int    `json:"assigned_to,omitempty"`
}

// UpdateUserRequest carries the admin-mutable user fields.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CategoryRequest is the payload for category create and update.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
