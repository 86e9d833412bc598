/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package didcommerr defines the error taxonomy shared by every layer of the
// pack/unpack pipeline, so callers can branch on Kind instead of string
// matching.
package didcommerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind tags an Error with the taxonomy category it belongs to.
type Kind string

const (
	// DIDNotResolved means the DID resolver returned no document for a referenced DID.
	DIDNotResolved Kind = "DIDNotResolved"
	// DIDUrlNotFound means the DID resolved but the fragment/key id was absent from the document.
	DIDUrlNotFound Kind = "DIDUrlNotFound"
	// SecretNotFound means no local secret exists for a required kid.
	SecretNotFound Kind = "SecretNotFound"
	// Malformed means structural or cryptographic validation failed.
	Malformed Kind = "Malformed"
	// Unsupported means the input is recognized but not implemented by this version.
	Unsupported Kind = "Unsupported"
	// IllegalArgument means the caller supplied a value that isn't a valid DID/DID URL.
	IllegalArgument Kind = "IllegalArgument"
	// InvalidState means an internal invariant was violated; indicates a library defect.
	InvalidState Kind = "InvalidState"
	// IOError means a resolver I/O failure propagated unchanged.
	IOError Kind = "IOError"
)

// Error is the tagged-kind error returned by every public operation in this module.
type Error struct {
	Kind  Kind
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause so errors.Is/errors.As keep working across this boundary.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches cause to a new Error of the given kind, keeping a stack trace via pkg/errors.
func Wrap(kind Kind, msg string, cause error) *Error {
	if cause == nil {
		return New(kind, msg)
	}

	return &Error{Kind: kind, Msg: msg, cause: errors.WithStack(cause)}
}

// Malformedf is shorthand for Newf(Malformed, ...), used at every structural/cryptographic
// validation failure site per the spec's error taxonomy.
func Malformedf(format string, args ...interface{}) *Error {
	return Newf(Malformed, format, args...)
}

// Unsupportedf is shorthand for Newf(Unsupported, ...).
func Unsupportedf(format string, args ...interface{}) *Error {
	return Newf(Unsupported, format, args...)
}

// Is reports whether err is an *Error of the given kind, unwrapping as needed.
func Is(err error, kind Kind) bool {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind == kind
	}

	return false
}

// Cause returns the innermost wrapped error, using pkg/errors semantics so that stack-trace
// carrying causes attached via Wrap survive repeated unwrapping.
func Cause(err error) error {
	return errors.Cause(err)
}
