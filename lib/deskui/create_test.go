// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"errors"
	"testing"

	"github.com/quickdesk/quickdesk/lib/api"
	"github.com/quickdesk/quickdesk/lib/nav"
)

func TestTicketCreatedReturnsToDashboard(t *testing.T) {
	model := newTestModel(t, "user")

	updated, _ := model.Update(keyRune('4'))
	model = updated.(Model)
	if model.current.Page != nav.PageCreateTicket {
		t.Fatalf("got %s, want create-ticket", model.current.Page)
	}

	updated, _ = model.Update(ticketCreatedMsg{
		generation: model.generation,
		ticket:     &api.Ticket{ID: 42, Subject: "New printer"},
	})
	model = updated.(Model)

	if model.current.Page != nav.PageDashboard {
		t.Errorf("got %s, want dashboard", model.current.Page)
	}
	if model.alerts.Len() != 1 || model.alerts.alerts[0].Level != AlertSuccess {
		t.Errorf("expected a success alert, got %+v", model.alerts.alerts)
	}
}

func TestTicketCreationFailureStaysInline(t *testing.T) {
	model := newTestModel(t, "user")

	updated, _ := model.Update(keyRune('4'))
	model = updated.(Model)

	updated, _ = model.Update(ticketCreatedMsg{
		generation: model.generation,
		err:        &api.RequestError{StatusCode: 400, Message: "Subject is required"},
	})
	model = updated.(Model)

	if model.current.Page != nav.PageCreateTicket {
		t.Errorf("got %s, should stay on create-ticket", model.current.Page)
	}
	if model.create.failure != "Subject is required" {
		t.Errorf("failure = %q", model.create.failure)
	}
}

func TestAttachmentUploadFailureDegradesToWarning(t *testing.T) {
	model := newTestModel(t, "user")

	updated, _ := model.Update(keyRune('4'))
	model = updated.(Model)

	// Creation succeeds and lands on the dashboard; the pending
	// upload then fails. The ticket stays created: the failure is a
	// warning, never a page error.
	updated, _ = model.Update(ticketCreatedMsg{
		generation:     model.generation,
		ticket:         &api.Ticket{ID: 42, Subject: "New printer"},
		attachmentPath: "/tmp/does-not-matter.log",
	})
	model = updated.(Model)
	if model.current.Page != nav.PageDashboard {
		t.Fatalf("got %s, want dashboard", model.current.Page)
	}

	updated, _ = model.Update(attachmentUploadedMsg{
		ticketID: 42,
		err:      errors.New("disk full"),
	})
	model = updated.(Model)

	if model.pageError != "" {
		t.Errorf("pageError = %q, upload failure must not take over the page", model.pageError)
	}
	warned := false
	for _, alert := range model.alerts.alerts {
		if alert.Level == AlertWarning {
			warned = true
		}
		if alert.Level == AlertError {
			t.Errorf("upload failure raised an error alert: %q", alert.Text)
		}
	}
	if !warned {
		t.Error("expected a warning alert for the failed upload")
	}
}

func TestAttachmentUploadSuccessAnnounces(t *testing.T) {
	model := newTestModel(t, "user")

	updated, _ := model.Update(attachmentUploadedMsg{ticketID: 42})
	model = updated.(Model)

	if model.alerts.Len() != 1 || model.alerts.alerts[0].Level != AlertSuccess {
		t.Errorf("expected a success alert, got %+v", model.alerts.alerts)
	}
}
