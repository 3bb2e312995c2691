// Package errors provides error handling for ansigraph.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNoRecords) {
//	    // file parsed to nothing; skip it
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Sentinel errors for use across ansigraph.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNoRecords indicates a file parsed cleanly but yielded no records.
	// Callers treat this as zero work for the file, never as a failure.
	ErrNoRecords = New("no records")

	// ErrNotPlaybook indicates a file is on the skip-file deny-list and must
	// not be parsed or graphed (variable files that sit next to playbooks).
	ErrNotPlaybook = New("not a playbook")
)

// IsNoRecordsError checks if an error is or wraps ErrNoRecords.
func IsNoRecordsError(err error) bool {
	return err != nil && Is(err, ErrNoRecords)
}

// IsNotPlaybookError checks if an error is or wraps ErrNotPlaybook.
func IsNotPlaybookError(err error) bool {
	return err != nil && Is(err, ErrNotPlaybook)
}
