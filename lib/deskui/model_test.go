// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/auth"
	"github.com/quickdesk/quickdesk/lib/nav"
)

// newTestServer serves the endpoints the model touches, with a small
// fixed dataset. The role parameter shapes the signed-in user.
func newTestServer(t *testing.T, role string) *httptest.Server {
	t.Helper()

	user := api.User{ID: 7, Username: "sam", Email: "sam@example.com", Role: role, IsActive: true}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"token": "tok-1", "user": user})
	})
	mux.HandleFunc("GET /api/auth/me", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"user": user})
	})
	mux.HandleFunc("GET /api/tickets", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"tickets": []api.Ticket{
			{ID: 1, Subject: "Printer on fire", Status: "open", Priority: "high", UserID: 7},
			{ID: 2, Subject: "Password reset", Status: "resolved", Priority: "low", UserID: 7},
		}})
	})
	mux.HandleFunc("GET /api/tickets/1", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"ticket": api.Ticket{
			ID: 1, Subject: "Printer on fire", Description: "It is **really** on fire.",
			Status: "open", Priority: "high", UserID: 7,
		}})
	})
	mux.HandleFunc("GET /api/tickets/1/vote", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(api.VoteSummary{VoteScore: 2, Upvotes: 3, Downvotes: 1})
	})
	mux.HandleFunc("GET /api/tickets/1/attachments", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"attachments": []api.Attachment{}})
	})
	mux.HandleFunc("GET /api/categories", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"categories": []api.Category{
			{ID: 1, Name: "General", IsActive: true},
		}})
	})
	mux.HandleFunc("GET /api/users", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"users": []api.User{user}})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newTestModel builds a model against the test server. When role is
// non-empty, the auth manager is signed in with that role first.
func newTestModel(t *testing.T, role string) Model {
	t.Helper()

	server := newTestServer(t, role)
	client := api.NewForTesting(server.URL)
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	manager := auth.NewManager(client, sessionPath, nil)

	if role != "" {
		if err := manager.Login(context.Background(), "sam@example.com", "pw"); err != nil {
			t.Fatalf("login: %v", err)
		}
	}

	model := NewModel(client, manager, WithDebounce(time.Millisecond))
	sized, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return sized.(Model)
}

// keyRune synthesizes a plain character keystroke.
func keyRune(character rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}}
}

func TestInitialPage(t *testing.T) {
	t.Run("anonymous lands on home", func(t *testing.T) {
		model := newTestModel(t, "")
		if model.current.Page != nav.PageHome {
			t.Errorf("got %s", model.current.Page)
		}
	})
	t.Run("signed in lands on dashboard", func(t *testing.T) {
		model := newTestModel(t, "user")
		if model.current.Page != nav.PageDashboard {
			t.Errorf("got %s", model.current.Page)
		}
	})
}

func TestGuardedPageNeverEntersHistory(t *testing.T) {
	model := newTestModel(t, "")

	// Anonymous request for the dashboard resolves to the login page.
	updated, _ := model.Update(keyRune('1'))
	model = updated.(Model)

	if model.current.Page != nav.PageLogin {
		t.Fatalf("expected redirect to login, got %s", model.current.Page)
	}
	if target, ok := model.history.Current(); !ok || target.Page != nav.PageLogin {
		t.Errorf("history current should be login, got %+v", target)
	}
	if target, ok := model.history.PeekBack(); ok && target.Page == nav.PageDashboard {
		t.Error("guarded page leaked into history")
	}
}

func TestAdminPagesRedirectNonAdmins(t *testing.T) {
	model := newTestModel(t, "user")

	updated, _ := model.Update(keyRune('5')) // users page
	model = updated.(Model)
	if model.current.Page != nav.PageDashboard {
		t.Errorf("users page should redirect to dashboard, got %s", model.current.Page)
	}

	updated, _ = model.Update(keyRune('3')) // all tickets
	model = updated.(Model)
	if model.current.Page != nav.PageDashboard {
		t.Errorf("all tickets should redirect to dashboard, got %s", model.current.Page)
	}
}

func TestHistoryShortcuts(t *testing.T) {
	model := newTestModel(t, "agent")

	updated, _ := model.Update(keyRune('2'))
	model = updated.(Model)
	updated, _ = model.Update(keyRune('3'))
	model = updated.(Model)
	if model.current.Page != nav.PageAllTickets {
		t.Fatalf("setup: got %s", model.current.Page)
	}

	back := tea.KeyMsg{Type: tea.KeyLeft, Alt: true}
	forward := tea.KeyMsg{Type: tea.KeyRight, Alt: true}

	updated, _ = model.Update(back)
	model = updated.(Model)
	if model.current.Page != nav.PageMyTickets {
		t.Errorf("after back: got %s", model.current.Page)
	}

	updated, _ = model.Update(back)
	model = updated.(Model)
	if model.current.Page != nav.PageDashboard {
		t.Errorf("after second back: got %s", model.current.Page)
	}

	updated, _ = model.Update(forward)
	model = updated.(Model)
	if model.current.Page != nav.PageMyTickets {
		t.Errorf("after forward: got %s", model.current.Page)
	}
}

func TestHistoryShortcutsRequireSignIn(t *testing.T) {
	model := newTestModel(t, "")
	before := model.current.Page

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	model = updated.(Model)
	if model.current.Page != before {
		t.Errorf("anonymous back shortcut moved pages: %s", model.current.Page)
	}
}

func TestHistoryShortcutsSuppressedWhileTyping(t *testing.T) {
	model := newTestModel(t, "user")

	updated, _ := model.Update(keyRune('2'))
	model = updated.(Model)
	updated, _ = model.Update(keyRune('/'))
	model = updated.(Model)
	if !model.ticketList.searchFocused {
		t.Fatal("search should have focus")
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	model = updated.(Model)
	if model.current.Page != nav.PageMyTickets {
		t.Errorf("back fired while typing: now on %s", model.current.Page)
	}
}

func TestLogoutKey(t *testing.T) {
	t.Run("signs out and returns home", func(t *testing.T) {
		model := newTestModel(t, "user")

		updated, _ := model.Update(keyRune('L'))
		model = updated.(Model)

		if model.authManager.IsLoggedIn() {
			t.Error("still logged in after logout key")
		}
		if model.current.Page != nav.PageHome {
			t.Errorf("got %s, want home", model.current.Page)
		}
		if model.alerts.Len() != 1 || model.alerts.alerts[0].Level != AlertInfo {
			t.Errorf("expected an info alert, got %+v", model.alerts.alerts)
		}
	})

	t.Run("suppressed while typing", func(t *testing.T) {
		model := newTestModel(t, "user")

		updated, _ := model.Update(keyRune('2'))
		model = updated.(Model)
		updated, _ = model.Update(keyRune('/'))
		model = updated.(Model)

		updated, _ = model.Update(keyRune('L'))
		model = updated.(Model)
		if !model.authManager.IsLoggedIn() {
			t.Error("logout fired while typing")
		}
	})

	t.Run("ignored while anonymous", func(t *testing.T) {
		model := newTestModel(t, "")

		updated, _ := model.Update(keyRune('L'))
		model = updated.(Model)
		if model.current.Page != nav.PageHome {
			t.Errorf("got %s, want home", model.current.Page)
		}
	})
}

func TestSearchDebounceCoalescing(t *testing.T) {
	model := newTestModel(t, "user")

	updated, _ := model.Update(keyRune('2'))
	model = updated.(Model)
	updated, _ = model.Update(keyRune('/'))
	model = updated.(Model)

	// Three rapid keystrokes arm three timers; only the last
	// sequence stays valid.
	for _, character := range "abc" {
		updated, _ = model.Update(keyRune(character))
		model = updated.(Model)
	}
	finalSequence := model.ticketList.debounceSequence
	generationBefore := model.generation

	// A superseded timer fires: nothing happens.
	updated, _ = model.Update(searchDebounceMsg{sequence: finalSequence - 1})
	model = updated.(Model)
	if model.generation != generationBefore {
		t.Error("stale debounce timer triggered a fetch")
	}

	// The surviving timer fires: exactly one fetch starts.
	updated, command := model.Update(searchDebounceMsg{sequence: finalSequence})
	model = updated.(Model)
	if model.generation != generationBefore+1 {
		t.Errorf("expected one fetch generation bump, got %d -> %d",
			generationBefore, model.generation)
	}
	if command == nil {
		t.Error("expected a fetch command")
	}
	if got := model.ticketList.searchInput.Value(); got != "abc" {
		t.Errorf("search value: got %q", got)
	}
}

func TestStaleResponsesDiscarded(t *testing.T) {
	model := newTestModel(t, "user")

	updated, _ := model.Update(keyRune('2'))
	model = updated.(Model)

	stale := ticketsLoadedMsg{
		generation: model.generation - 1,
		tickets:    []api.Ticket{{ID: 99, Subject: "from a previous visit"}},
	}
	updated, _ = model.Update(stale)
	model = updated.(Model)
	if len(model.ticketList.tickets) != 0 {
		t.Error("stale response was applied")
	}

	fresh := ticketsLoadedMsg{
		generation: model.generation,
		tickets:    []api.Ticket{{ID: 1, Subject: "current"}},
	}
	updated, _ = model.Update(fresh)
	model = updated.(Model)
	if len(model.ticketList.tickets) != 1 || model.ticketList.tickets[0].ID != 1 {
		t.Errorf("fresh response not applied: %+v", model.ticketList.tickets)
	}
}

func TestPageErrorPanel(t *testing.T) {
	model := newTestModel(t, "user")

	failure := dashboardLoadedMsg{
		generation: model.generation,
		err:        &api.RequestError{StatusCode: 500, Message: "database exploded"},
	}
	updated, _ := model.Update(failure)
	model = updated.(Model)

	if model.pageError != "database exploded" {
		t.Errorf("pageError: got %q", model.pageError)
	}

	// Refresh clears the panel and starts a new load.
	updated, command := model.Update(keyRune('r'))
	model = updated.(Model)
	if model.pageError != "" {
		t.Error("refresh should clear the error panel")
	}
	if command == nil {
		t.Error("refresh should start a fetch")
	}
}

func TestLoadingSpinnerState(t *testing.T) {
	model := newTestModel(t, "user")

	updated, command := model.Update(LoadingMsg{Active: true})
	model = updated.(Model)
	if !model.loading {
		t.Error("loading should be on")
	}
	if command == nil {
		t.Error("turning loading on should start the spinner tick")
	}

	updated, _ = model.Update(LoadingMsg{Active: false})
	model = updated.(Model)
	if model.loading {
		t.Error("loading should be off")
	}
}

func TestLoginFlow(t *testing.T) {
	model := newTestModel(t, "")

	updated, _ := model.Update(keyRune('1')) // guarded: lands on login
	model = updated.(Model)
	if model.current.Page != nav.PageLogin {
		t.Fatalf("setup: got %s", model.current.Page)
	}

	model.login.email.SetValue("sam@example.com")
	model.login.password.SetValue("pw")
	command := model.submitLogin()
	if command == nil {
		t.Fatal("expected a login command")
	}

	updated, _ = model.Update(command())
	model = updated.(Model)

	if !model.authManager.IsLoggedIn() {
		t.Fatal("should be signed in")
	}
	if model.current.Page != nav.PageDashboard {
		t.Errorf("after login: got %s", model.current.Page)
	}
	if model.alerts.Len() == 0 {
		t.Error("expected a greeting alert")
	}
}

func TestLoginValidation(t *testing.T) {
	model := newTestModel(t, "")

	if command := model.submitLogin(); command != nil {
		t.Error("empty form must not reach the server")
	}
	if model.login.failure == "" {
		t.Error("expected an inline validation failure")
	}
}

func TestRegisterValidation(t *testing.T) {
	model := newTestModel(t, "")

	model.register.username.SetValue("sam")
	model.register.email.SetValue("sam@example.com")
	model.register.password.SetValue("secret")
	model.register.confirm.SetValue("different")

	if command := model.submitRegister(); command != nil {
		t.Error("mismatched passwords must not reach the server")
	}
	if model.register.failure != "Passwords do not match." {
		t.Errorf("failure: got %q", model.register.failure)
	}
}

func TestDetailLoadIntoView(t *testing.T) {
	model := newTestModel(t, "user")

	updated, command := model.Update(keyRune('2'))
	model = updated.(Model)
	updated, _ = model.Update(command()) // run the list fetch
	model = updated.(Model)

	updated, command = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if model.current.Page != nav.PageTicketDetail || model.current.TicketID != 1 {
		t.Fatalf("expected detail of ticket 1, got %+v", model.current)
	}
	if command == nil {
		t.Fatal("expected detail fetch commands")
	}

	// The detail load is a batch; run it through a throwaway program
	// step by feeding each produced message.
	message := command()
	if batch, ok := message.(tea.BatchMsg); ok {
		for _, part := range batch {
			if part == nil {
				continue
			}
			updated, _ = model.Update(part())
			model = updated.(Model)
		}
	} else {
		updated, _ = model.Update(message)
		model = updated.(Model)
	}

	if model.detail.ticket == nil {
		t.Fatal("ticket not loaded")
	}
	if model.detail.ticket.Subject != "Printer on fire" {
		t.Errorf("subject: got %q", model.detail.ticket.Subject)
	}
	if model.detail.votes == nil || model.detail.votes.VoteScore != 2 {
		t.Errorf("votes: got %+v", model.detail.votes)
	}
}
