package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures returned by the data-access layer.
// The set is closed: transports switch over every kind explicitly.
type ErrorKind int

const (
	// KindUnknown covers every error that is not a *Error or *ValidationError,
	// e.g. driver or network failures.
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindNotFound
	KindDuplicate
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	}
	return "unknown"
}

// Error is a classified failure carrying a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// InvalidInput returns an error for a malformed or empty caller payload.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns an error for a natural-key lookup that matched no row.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Duplicate returns an error for a create that would violate uniqueness.
func Duplicate(format string, args ...any) error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err. A *ValidationError counts as invalid input.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindInvalidInput
	}
	return KindUnknown
}
