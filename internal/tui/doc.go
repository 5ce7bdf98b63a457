// Package tui implements the interactive back-office dashboard built on
// Bubble Tea.
//
// # Architecture
//
// AppModel is the top-level coordinator. It owns the shared API client and
// the active screen, and handles transitions:
//
//	Home ──enter──▶ Products/Users/Clients/Orders list
//	Products ──n──▶ New Product form ──success──▶ Products (refreshed)
//
// Each screen is its own model with Init/Update/View. Network calls run as
// tea.Cmd functions off the UI goroutine and come back as typed messages;
// no screen ever blocks the event loop.
//
// # List Screens
//
// A list screen is always in exactly one of three states: loading, failed,
// or loaded. A failed refetch shows the error and a retry hint - never
// stale rows next to an error.
//
// # The Form Screen
//
// The product form owns one draft for its whole session. Submission runs
// through the confirmation gate: validation problems are accumulated and
// shown all at once, asset-bearing drafts pause on a review overlay, and
// the screen navigates back to the product list only after the server
// confirmed the create. On failure the draft and its staged files survive
// for a retry. Leaving the screen, by any path, releases every staged
// preview and cancels in-flight requests.
package tui
