// Package errors provides error handling for commons-repost.
//
// This package re-exports github.com/cockroachdb/errors, providing stack
// traces, wrapping, hints and details, and defines the sentinel errors of
// the normalization engine.
//
// Usage:
//
//	doc, err := attribution.Compose(src, opts)
//	if errors.Is(err, errors.ErrAttributionTooLong) {
//	    // skip this destination
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
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors of the normalization engine.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrAttributionTooLong indicates the citation cannot fit the destination
	// even with only its source entry
	ErrAttributionTooLong = New("attribution too long")

	// ErrImageTooLarge indicates the quality floor was reached without meeting
	// the byte budget
	ErrImageTooLarge = New("image too large")

	// ErrUnparseableDate indicates a structured date declaration without a year.
	// Date normalization recovers from it by falling back to the free text.
	ErrUnparseableDate = New("unparseable structured date")

	// ErrUnsupportedMedia indicates image bytes that cannot be decoded or
	// whose media type is not accepted
	ErrUnsupportedMedia = New("unsupported media")

	// ErrInvalidRequest indicates malformed input or configuration
	ErrInvalidRequest = New("invalid request")
)

// IsAttributionTooLong checks if an error is or wraps ErrAttributionTooLong
func IsAttributionTooLong(err error) bool {
	return err != nil && Is(err, ErrAttributionTooLong)
}

// IsImageTooLarge checks if an error is or wraps ErrImageTooLarge
func IsImageTooLarge(err error) bool {
	return err != nil && Is(err, ErrImageTooLarge)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}

// NewUnsupportedMediaError creates an unsupported-media error with a formatted message
func NewUnsupportedMediaError(format string, args ...interface{}) error {
	return Wrap(ErrUnsupportedMedia, Newf(format, args...).Error())
}
