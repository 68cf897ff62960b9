package mintverify

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/Code rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindInvalidCollectionAuthority: the authority derivation itself failed.
	KindInvalidCollectionAuthority Kind = "InvalidCollectionAuthority"
	// KindMetadataCreationFailed: a descriptive record violated a field
	// constraint. Not retried; the caller must fix the input.
	KindMetadataCreationFailed Kind = "MetadataCreationFailed"
	// KindVerificationFailed: the registry rejected the membership call,
	// typically because the collection was bootstrapped with a different
	// seed. Not retried automatically.
	KindVerificationFailed Kind = "VerificationFailed"
	// KindUnauthorized: signer mismatch.
	KindUnauthorized Kind = "Unauthorized"
	// KindInvalidCollectionSeed: seed exceeds bounds.
	KindInvalidCollectionSeed Kind = "InvalidCollectionSeed"
)

// Error is the program's structured error type.
//
// Code is a stable identifier (e.g. MV-SEED-001) naming the violated rule.
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, code, msg string) error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func wrapError(kind Kind, code, msg string, cause error) error {
	if cause == nil {
		return newError(kind, code, msg)
	}
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Code returns the stable code for a structured error, or "" if unknown.
func Code(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}
