// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestAlertStack(t *testing.T) {
	var stack alertStack

	command := stack.Push(AlertSuccess, "Ticket created.")
	if command == nil {
		t.Fatal("push must arm an expiry timer")
	}
	stack.Push(AlertError, "Request failed.")
	if stack.Len() != 2 {
		t.Fatalf("len: got %d", stack.Len())
	}

	// Each alert has its own identity even with identical text.
	stack.Push(AlertSuccess, "Ticket created.")
	if stack.alerts[0].ID == stack.alerts[2].ID {
		t.Error("duplicate texts must not share an ID")
	}

	// Dismissing by ID removes exactly that alert.
	stack.Dismiss(stack.alerts[1].ID)
	if stack.Len() != 2 {
		t.Errorf("after dismiss: got %d", stack.Len())
	}
	for _, alert := range stack.alerts {
		if alert.Level == AlertError {
			t.Error("dismissed alert still present")
		}
	}

	// A timer for an already-dismissed alert is a no-op.
	stack.Dismiss(uuid.New())
	if stack.Len() != 2 {
		t.Errorf("unknown dismiss changed the stack: %d", stack.Len())
	}

	stack.DismissOldest()
	if stack.Len() != 1 {
		t.Errorf("after dismiss oldest: got %d", stack.Len())
	}
}

func TestAlertExpiryMessageRouting(t *testing.T) {
	model := newTestModel(t, "user")

	model.alerts.Push(AlertInfo, "first")
	model.alerts.Push(AlertInfo, "second")
	expired := model.alerts.alerts[0].ID

	updated, _ := model.Update(alertExpiredMsg{id: expired})
	model = updated.(Model)

	if model.alerts.Len() != 1 {
		t.Fatalf("len after expiry: got %d", model.alerts.Len())
	}
	if model.alerts.alerts[0].Text != "second" {
		t.Errorf("wrong alert expired: %q", model.alerts.alerts[0].Text)
	}
}

func TestAlertView(t *testing.T) {
	var stack alertStack
	stack.Push(AlertWarning, "Comment cannot be empty.")

	rendered := stack.View(DefaultTheme, 80)
	if !strings.Contains(rendered, "Comment cannot be empty.") {
		t.Errorf("alert text missing from view: %q", rendered)
	}

	var empty alertStack
	if empty.View(DefaultTheme, 80) != "" {
		t.Error("empty stack should render nothing")
	}
}
