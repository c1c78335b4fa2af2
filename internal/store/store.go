// Package store wraps all Postgres access behind small per-table gateways.
// Handlers receive the gateways through their constructors; no package-level
// connection state exists.
package store

import "errors"

var (
	// ErrValidation flags missing or malformed caller input. Reported as a
	// 4xx at the HTTP boundary and never retried.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound means a query legitimately matched nothing, as opposed to
	// failing.
	ErrNotFound = errors.New("not found")
)

// Insight row types, one per generation event.
const (
	TypeDaily         = "daily"
	TypeWeeklySummary = "weekly_summary"
)
