// Package dberr defines the error taxonomy shared by the parser, the table
// layer and the command dispatcher.
//
// Every failure that reaches a client is an *Error whose Message is the text
// placed after the [ERROR] tag. Wrapped causes (I/O errors and the like) stay
// available through errors.Unwrap for logging but are never shown to clients.
package dberr

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	KindInternal  Kind = iota
	KindLexical        // command too long
	KindSyntax         // tokens do not match the grammar
	KindSemantic       // reserved words, missing or duplicate names
	KindCapacity       // row, column or token limits
	KindData           // value count mismatch, bad identity values
	KindImmutable      // attempts to drop or change the id column
	KindStorage        // load/save failures
)

var kindNames = map[Kind]string{
	KindInternal:  "internal",
	KindLexical:   "lexical",
	KindSyntax:    "syntax",
	KindSemantic:  "semantic",
	KindCapacity:  "capacity",
	KindData:      "data",
	KindImmutable: "immutable",
	KindStorage:   "storage",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified, client-presentable error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match against another *Error of the same kind and message,
// so package-level sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// New creates an error without a cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error that keeps err as its cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-facing text for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Command Execution Failure"
}
