package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure at the service boundary
type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidInput
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is returned by the service layer
type Error struct {
	Kind    Kind
	Op      string
	Message string
	// Fields maps offending input fields to a reason, for KindInvalidInput
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a KindNotFound error
func NotFound(op string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

// Internal builds a KindInternal error
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// InvalidInput builds a KindInvalidInput error listing the offending fields
func InvalidInput(op, message string, fields map[string]string) *Error {
	return &Error{Kind: KindInvalidInput, Op: op, Message: message, Fields: fields}
}

// KindOf extracts the Kind of err. Unclassified errors are internal,
// except the repository sentinels which are not-found.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrQuestionNotFound) || errors.Is(err, ErrCategoryNotFound) {
		return KindNotFound
	}
	return KindInternal
}
