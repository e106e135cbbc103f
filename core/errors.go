package core

import (
	"fmt"
	"strings"
)

// Kind categorizes runtime errors
type Kind string

const (
	KindMissingStage        Kind = "missing_stage"
	KindMissingResource     Kind = "missing_resource"
	KindUnregisteredMessage Kind = "unregistered_message"
	KindAliasingConflict    Kind = "aliasing_conflict"
	KindFrozenStage         Kind = "frozen_stage"
	KindMissingRunner       Kind = "missing_runner"
	KindLocalInShared       Kind = "local_in_shared"
	KindConfig              Kind = "config"
)

// Error is the structured error type used throughout the runtime
type Error struct {
	Kind   Kind
	Type   string // Go type name of the offending resource, message or stage tag
	Detail string
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Kind))
	if e.Type != "" {
		b.WriteString(" [")
		b.WriteString(e.Type)
		b.WriteByte(']')
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so sentinels like ErrMissingResource work with errors.Is
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is
var (
	ErrMissingStage        = &Error{Kind: KindMissingStage}
	ErrMissingResource     = &Error{Kind: KindMissingResource}
	ErrUnregisteredMessage = &Error{Kind: KindUnregisteredMessage}
	ErrAliasingConflict    = &Error{Kind: KindAliasingConflict}
	ErrFrozenStage         = &Error{Kind: KindFrozenStage}
	ErrMissingRunner       = &Error{Kind: KindMissingRunner}
	ErrLocalInShared       = &Error{Kind: KindLocalInShared}
	ErrConfig              = &Error{Kind: KindConfig}
)

// NewError creates an error of the given kind with a formatted detail
func NewError(kind Kind, typeName string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Kind:   kind,
		Type:   typeName,
		Detail: detail,
	}
}
