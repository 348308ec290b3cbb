// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package nav

import (
	"fmt"
	"testing"
)

func TestPush_Basic(t *testing.T) {
	history := NewHistory()
	if _, ok := history.Current(); ok {
		t.Fatal("empty history has no current entry")
	}

	history.Push(Target{Page: PageHome})
	history.Push(Target{Page: PageDashboard})

	current, ok := history.Current()
	if !ok || current.Page != PageDashboard {
		t.Fatalf("current: got %+v", current)
	}
	if history.Len() != 2 || history.Index() != 1 {
		t.Errorf("len=%d index=%d", history.Len(), history.Index())
	}
}

func TestPush_CollapsesConsecutiveDuplicates(t *testing.T) {
	history := NewHistory()
	history.Push(Target{Page: PageDashboard})
	history.Push(Target{Page: PageDashboard})
	history.Push(Target{Page: PageDashboard})

	if history.Len() != 1 {
		t.Errorf("len: got %d, want 1", history.Len())
	}

	// Distinct ticket IDs are distinct targets, not duplicates.
	history.Push(Target{Page: PageTicketDetail, TicketID: 1})
	history.Push(Target{Page: PageTicketDetail, TicketID: 2})
	if history.Len() != 3 {
		t.Errorf("len: got %d, want 3", history.Len())
	}
}

func TestPush_NeverProducesAdjacentEqualEntries(t *testing.T) {
	// Browser-style history property: however pages are pushed, no
	// two consecutive recorded entries are equal.
	pages := []Page{PageHome, PageHome, PageDashboard, PageDashboard,
		PageMyTickets, PageDashboard, PageDashboard, PageHome}

	history := NewHistory()
	for _, page := range pages {
		history.Push(Target{Page: page})
	}

	// Rewind fully, then replay and compare neighbours.
	var previous *Target
	for history.CanGoBack() {
		history.Back()
	}
	current, _ := history.Current()
	previous = &current
	for history.CanGoForward() {
		next, _ := history.Forward()
		if next == *previous {
			t.Fatalf("adjacent equal entries: %+v", next)
		}
		previous = &next
	}
}

func TestPush_TruncatesForwardEntries(t *testing.T) {
	history := NewHistory()
	history.Push(Target{Page: PageHome})
	history.Push(Target{Page: PageDashboard})
	history.Push(Target{Page: PageMyTickets})

	// Step back to the middle, then navigate somewhere new.
	if _, ok := history.Back(); !ok {
		t.Fatal("back failed")
	}
	history.Push(Target{Page: PageCategories})

	if history.CanGoForward() {
		t.Error("forward entries should be discarded after a push")
	}
	if history.Len() != 3 {
		t.Errorf("len: got %d, want 3", history.Len())
	}
	current, _ := history.Current()
	if current.Page != PageCategories {
		t.Errorf("current: got %+v", current)
	}
	// The discarded my-tickets entry is gone: going back leads to
	// dashboard, not my-tickets.
	back, _ := history.Back()
	if back.Page != PageDashboard {
		t.Errorf("back: got %+v", back)
	}
}

func TestPush_CapEvictsFromHead(t *testing.T) {
	history := NewHistory()
	for i := 0; i < MaxHistoryEntries+10; i++ {
		// Alternate ticket IDs so no push collapses.
		history.Push(Target{Page: PageTicketDetail, TicketID: i + 1})
	}

	if history.Len() != MaxHistoryEntries {
		t.Errorf("len: got %d, want %d", history.Len(), MaxHistoryEntries)
	}
	if history.Index() != MaxHistoryEntries-1 {
		t.Errorf("index: got %d", history.Index())
	}

	// The oldest entries were evicted: rewinding fully lands on the
	// 11th push, not the 1st.
	for history.CanGoBack() {
		history.Back()
	}
	oldest, _ := history.Current()
	if oldest.TicketID != 11 {
		t.Errorf("oldest surviving entry: got ticket %d, want 11", oldest.TicketID)
	}
}

func TestBackForward_InverseLaw(t *testing.T) {
	history := NewHistory()
	history.Push(Target{Page: PageHome})
	history.Push(Target{Page: PageDashboard})
	history.Push(Target{Page: PageMyTickets})

	for history.CanGoBack() {
		beforeIndex := history.Index()
		before, _ := history.Current()

		if _, ok := history.Back(); !ok {
			t.Fatal("back failed despite CanGoBack")
		}
		after, ok := history.Forward()
		if !ok {
			t.Fatal("forward failed after back")
		}
		if history.Index() != beforeIndex || after != before {
			t.Fatalf("back+forward did not restore: index %d→%d, %+v→%+v",
				beforeIndex, history.Index(), before, after)
		}
		// Continue the walk from one step earlier.
		history.Back()
	}
}

func TestBackForward_BoundaryConditions(t *testing.T) {
	history := NewHistory()
	if _, ok := history.Back(); ok {
		t.Error("back on empty history must fail")
	}
	if _, ok := history.Forward(); ok {
		t.Error("forward on empty history must fail")
	}

	history.Push(Target{Page: PageHome})
	if history.CanGoBack() || history.CanGoForward() {
		t.Error("single entry allows no traversal")
	}
}

func TestPeek(t *testing.T) {
	history := NewHistory()
	history.Push(Target{Page: PageHome})
	history.Push(Target{Page: PageDashboard})

	indexBefore := history.Index()
	back, ok := history.PeekBack()
	if !ok || back.Page != PageHome {
		t.Errorf("peek back: got %+v", back)
	}
	if history.Index() != indexBefore {
		t.Error("peek must not move the index")
	}

	history.Back()
	forward, ok := history.PeekForward()
	if !ok || forward.Page != PageDashboard {
		t.Errorf("peek forward: got %+v", forward)
	}
}

func TestHistorySequenceInvariant(t *testing.T) {
	// Length never exceeds the cap and the index stays in bounds for
	// an arbitrary mixed workload.
	history := NewHistory()
	pages := []Page{PageHome, PageDashboard, PageMyTickets, PageAllTickets, PageUsers}
	for i := 0; i < 300; i++ {
		switch i % 7 {
		case 3:
			history.Back()
		case 5:
			history.Forward()
		default:
			history.Push(Target{Page: pages[i%len(pages)]})
		}

		if history.Len() > MaxHistoryEntries {
			t.Fatalf("step %d: len %d exceeds cap", i, history.Len())
		}
		if history.Len() > 0 && (history.Index() < 0 || history.Index() >= history.Len()) {
			t.Fatalf("step %d: index %d out of bounds (len %d)", i, history.Index(), history.Len())
		}
	}
}

func ExampleHistory() {
	history := NewHistory()
	history.Push(Target{Page: PageHome})
	history.Push(Target{Page: PageDashboard})
	history.Back()
	current, _ := history.Current()
	fmt.Println(current.Page)
	// Output: home
}
