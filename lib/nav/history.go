// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

package nav

// MaxHistoryEntries caps the navigation history. When a push would
// exceed it, the oldest entry is evicted from the head and the current
// index shifts down with it.
const MaxHistoryEntries = 50

// History is the bounded back/forward navigation record: an ordered
// sequence of visited targets with a current-position index.
//
// Invariants: the index is always within [0, len-1] once any entry
// exists; consecutive entries are never equal; pushing while not at
// the tail discards the forward entries first (standard
// browser-history semantics).
type History struct {
	entries []Target
	index   int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{index: -1}
}

// Push records a visited target. Pushing the current target again is a
// no-op, so re-rendering a page never pollutes the record.
func (history *History) Push(target Target) {
	if current, ok := history.Current(); ok && current == target {
		return
	}

	// Navigating from a mid-history position discards the forward
	// entries before appending, exactly like a browser.
	if history.index < len(history.entries)-1 {
		history.entries = history.entries[:history.index+1]
	}

	history.entries = append(history.entries, target)
	history.index = len(history.entries) - 1

	if len(history.entries) > MaxHistoryEntries {
		history.entries = history.entries[1:]
		history.index--
	}
}

// Current returns the entry at the current index.
func (history *History) Current() (Target, bool) {
	if history.index < 0 || history.index >= len(history.entries) {
		return Target{}, false
	}
	return history.entries[history.index], true
}

// CanGoBack reports whether an earlier entry exists.
func (history *History) CanGoBack() bool {
	return history.index > 0
}

// CanGoForward reports whether a later entry exists.
func (history *History) CanGoForward() bool {
	return history.index < len(history.entries)-1
}

// Back moves to the previous entry and returns it. Returns false
// without moving when already at the head.
func (history *History) Back() (Target, bool) {
	if !history.CanGoBack() {
		return Target{}, false
	}
	history.index--
	return history.entries[history.index], true
}

// Forward moves to the next entry and returns it. Returns false
// without moving when already at the tail.
func (history *History) Forward() (Target, bool) {
	if !history.CanGoForward() {
		return Target{}, false
	}
	history.index++
	return history.entries[history.index], true
}

// PeekBack returns the entry Back would move to, for hint text,
// without moving.
func (history *History) PeekBack() (Target, bool) {
	if !history.CanGoBack() {
		return Target{}, false
	}
	return history.entries[history.index-1], true
}

// PeekForward returns the entry Forward would move to without moving.
func (history *History) PeekForward() (Target, bool) {
	if !history.CanGoForward() {
		return Target{}, false
	}
	return history.entries[history.index+1], true
}

// Len returns the number of recorded entries.
func (history *History) Len() int {
	return len(history.entries)
}

// Index returns the current position, or -1 when empty.
func (history *History) Index() int {
	return history.index
}
