// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package deskui implements the interactive terminal client for
// QuickDesk. It is a bubbletea program: a single Model owning the
// navigation history, the authentication state, and per-page view
// state, with all server traffic performed asynchronously through
// tea.Cmd functions that deliver typed messages back into Update.
//
// Pages mirror the server's resources: a dashboard with status
// counts, ticket lists (own and, for agents, all), a ticket detail
// view with comments, votes and attachments, a creation form, and
// admin pages for users and categories. Access rules are enforced by
// lib/nav before any page enters the history.
package deskui
