// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package nav

import "testing"

// stubAuthorizer satisfies Authorizer with fixed predicate values.
type stubAuthorizer struct {
	loggedIn bool
	agent    bool
	admin    bool
}

func (stub stubAuthorizer) IsLoggedIn() bool { return stub.loggedIn }
func (stub stubAuthorizer) IsAgent() bool    { return stub.agent }
func (stub stubAuthorizer) IsAdmin() bool    { return stub.admin }

var (
	anonymous = stubAuthorizer{}
	plainUser = stubAuthorizer{loggedIn: true}
	agentUser = stubAuthorizer{loggedIn: true, agent: true}
	adminUser = stubAuthorizer{loggedIn: true, agent: true, admin: true}
)

func TestGuard(t *testing.T) {
	cases := []struct {
		name       string
		page       Page
		authorizer stubAuthorizer
		wantPage   Page
		redirected bool
	}{
		// Public pages are never redirected.
		{"home anonymous", PageHome, anonymous, PageHome, false},
		{"login anonymous", PageLogin, anonymous, PageLogin, false},
		{"register anonymous", PageRegister, anonymous, PageRegister, false},

		// Login-gated pages fall back to login for anonymous users.
		{"dashboard anonymous", PageDashboard, anonymous, PageLogin, true},
		{"create-ticket anonymous", PageCreateTicket, anonymous, PageLogin, true},
		{"my-tickets anonymous", PageMyTickets, anonymous, PageLogin, true},
		{"ticket-detail anonymous", PageTicketDetail, anonymous, PageLogin, true},
		{"dashboard user", PageDashboard, plainUser, PageDashboard, false},
		{"ticket-detail user", PageTicketDetail, plainUser, PageTicketDetail, false},

		// Agent-gated page.
		{"all-tickets anonymous", PageAllTickets, anonymous, PageLogin, true},
		{"all-tickets user", PageAllTickets, plainUser, PageDashboard, true},
		{"all-tickets agent", PageAllTickets, agentUser, PageAllTickets, false},
		{"all-tickets admin", PageAllTickets, adminUser, PageAllTickets, false},

		// Admin-gated pages.
		{"users anonymous", PageUsers, anonymous, PageLogin, true},
		{"users user", PageUsers, plainUser, PageDashboard, true},
		{"users agent", PageUsers, agentUser, PageDashboard, true},
		{"users admin", PageUsers, adminUser, PageUsers, false},
		{"categories agent", PageCategories, agentUser, PageDashboard, true},
		{"categories admin", PageCategories, adminUser, PageCategories, false},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			resolved, redirected := Guard(Target{Page: testCase.page, TicketID: 3}, testCase.authorizer)
			if resolved.Page != testCase.wantPage {
				t.Errorf("resolved page: got %s, want %s", resolved.Page, testCase.wantPage)
			}
			if redirected != testCase.redirected {
				t.Errorf("redirected: got %v, want %v", redirected, testCase.redirected)
			}
			if redirected && resolved.TicketID != 0 {
				t.Error("redirect target must not inherit parameters")
			}
		})
	}
}

func TestGuard_RedirectTargetsAreThemselvesAllowed(t *testing.T) {
	// A single guard pass must suffice: whatever Guard redirects to
	// must pass Guard unchanged for the same authorizer.
	pages := []Page{PageHome, PageLogin, PageRegister, PageDashboard,
		PageCreateTicket, PageMyTickets, PageTicketDetail, PageAllTickets,
		PageUsers, PageCategories}
	authorizers := []stubAuthorizer{anonymous, plainUser, agentUser, adminUser}

	for _, authorizer := range authorizers {
		for _, page := range pages {
			resolved, _ := Guard(Target{Page: page}, authorizer)
			again, redirected := Guard(resolved, authorizer)
			if redirected || again != resolved {
				t.Errorf("guard not idempotent for %s / %+v: %+v then %+v",
					page, authorizer, resolved, again)
			}
		}
	}
}

func TestKnown(t *testing.T) {
	for _, page := range []Page{PageHome, PageTicketDetail, PageCategories} {
		if !Known(page) {
			t.Errorf("%s should be known", page)
		}
	}
	if Known(Page("profile")) {
		t.Error("unlisted page should be unknown")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(PageMyTickets); got != "My Tickets" {
		t.Errorf("got %q", got)
	}
	// Unknown pages fall back to the raw identifier.
	if got := DisplayName(Page("mystery")); got != "mystery" {
		t.Errorf("got %q", got)
	}
}
