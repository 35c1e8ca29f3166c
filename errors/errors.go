// Package errors provides error handling for treegen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Sentinel errors for every semantic failure the registry and the
//     generation driver can report
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := build(); err != nil {
//	    return errors.Wrap(err, "failed to build registry")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrDuplicateClass) {
//	    // handle redeclaration
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

// Error inspection and marking
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
	Mark      = crdb.Mark
)

// Sentinel errors for the semantic and generation phases.
// Use these with errors.Is() for type-safe error checking, and wrap them
// with errors.Wrapf() to attach the offending class or field name.
var (
	// ErrDuplicateClass indicates a class name was declared more than once
	ErrDuplicateClass = New("duplicate class")

	// ErrUnresolvedSupertype indicates a supertype name that no earlier
	// declaration has registered
	ErrUnresolvedSupertype = New("unresolved supertype")

	// ErrUnresolvedFieldType indicates a field type that is neither scalar,
	// an already-registered class, nor the class currently being declared
	ErrUnresolvedFieldType = New("unresolved field type")

	// ErrDuplicateFieldName indicates two explicitly named fields in one
	// class share a name
	ErrDuplicateFieldName = New("duplicate field name")

	// ErrAbstractWithParams indicates an abstract declaration with a
	// non-empty parameter list
	ErrAbstractWithParams = New("abstract class with parameters")

	// ErrUnknownBackend indicates a language identifier with no registered
	// backend
	ErrUnknownBackend = New("unknown backend")

	// ErrRender indicates a backend failed to render an artifact
	ErrRender = New("render failed")
)

// IsSemantic reports whether err is one of the registry's semantic errors
// (as opposed to a lex, parse, render, or I/O failure).
func IsSemantic(err error) bool {
	return IsAny(err,
		ErrDuplicateClass,
		ErrUnresolvedSupertype,
		ErrUnresolvedFieldType,
		ErrDuplicateFieldName,
		ErrAbstractWithParams,
	)
}
