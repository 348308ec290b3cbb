// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package nav is the routing core of the QuickDesk UI: the page
// enumeration, the bounded navigation history with back/forward
// traversal, and the role gates that decide whether a page may be
// shown to the current user. It has no rendering or network
// dependencies, which keeps every routing rule unit-testable.
package nav

// Page identifies a screen in the client.
type Page string

// The closed page set. Unknown identifiers render a not-found
// placeholder rather than an error.
const (
	PageHome         Page = "home"
	PageLogin        Page = "login"
	PageRegister     Page = "register"
	PageDashboard    Page = "dashboard"
	PageCreateTicket Page = "create-ticket"
	PageMyTickets    Page = "my-tickets"
	PageTicketDetail Page = "ticket-detail"
	PageAllTickets   Page = "all-tickets"
	PageUsers        Page = "users"
	PageCategories   Page = "categories"
)

// Known reports whether page is part of the closed page set.
func Known(page Page) bool {
	switch page {
	case PageHome, PageLogin, PageRegister, PageDashboard, PageCreateTicket,
		PageMyTickets, PageTicketDetail, PageAllTickets, PageUsers, PageCategories:
		return true
	}
	return false
}

// DisplayName returns the human-readable page title, used in the
// navigation bar and back/forward hints.
func DisplayName(page Page) string {
	switch page {
	case PageHome:
		return "Home"
	case PageLogin:
		return "Sign In"
	case PageRegister:
		return "Create Account"
	case PageDashboard:
		return "Dashboard"
	case PageCreateTicket:
		return "Create Ticket"
	case PageMyTickets:
		return "My Tickets"
	case PageTicketDetail:
		return "Ticket Details"
	case PageAllTickets:
		return "All Tickets"
	case PageUsers:
		return "User Management"
	case PageCategories:
		return "Categories"
	}
	return string(page)
}

// Target is a navigable destination: a page plus its parameters.
// TicketID is meaningful only for PageTicketDetail; zero means absent,
// which the detail page renders as "ticket not found" without
// attempting a fetch.
type Target struct {
	Page     Page
	TicketID int
}

// Authorizer exposes the role predicates the guards need. Satisfied by
// auth.Manager.
type Authorizer interface {
	IsLoggedIn() bool
	IsAgent() bool
	IsAdmin() bool
}

// Guard applies the access policy to a requested target. It returns
// the target actually allowed to load and whether a redirect replaced
// the request. Redirect targets are themselves always permitted, so a
// single pass suffices.
//
// Policy: dashboard, create-ticket, my-tickets, and ticket-detail
// require a login and fall back to the login page; all-tickets
// requires agent privileges, users and categories require admin, and
// both fall back to the dashboard (or to login when nobody is signed
// in at all).
func Guard(target Target, authorizer Authorizer) (Target, bool) {
	switch target.Page {
	case PageDashboard, PageCreateTicket, PageMyTickets, PageTicketDetail:
		if !authorizer.IsLoggedIn() {
			return Target{Page: PageLogin}, true
		}
	case PageAllTickets:
		if !authorizer.IsLoggedIn() {
			return Target{Page: PageLogin}, true
		}
		if !authorizer.IsAgent() {
			return Target{Page: PageDashboard}, true
		}
	case PageUsers, PageCategories:
		if !authorizer.IsLoggedIn() {
			return Target{Page: PageLogin}, true
		}
		if !authorizer.IsAdmin() {
			return Target{Page: PageDashboard}, true
		}
	}
	return target, false
}
