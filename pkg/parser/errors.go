package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnparsed is wrapped by the error Parse returns when the program rule
// stops before the end of the source.
var ErrUnparsed = errors.New("unparsed input")

// Error describes a grammar mismatch. Remaining is the input left at the
// point of failure; Offset, Line and Column locate it in the source once the
// error has left the program rule.
type Error struct {
	Rule      string
	Expected  string
	Remaining string
	Offset    int
	Line      int
	Column    int

	// fatal errors stop alt from trying further branches.
	fatal bool
	err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("parser: ")
	if e.Rule != "" {
		b.WriteString(e.Rule)
		b.WriteString(": ")
	}
	if e.Expected != "" {
		b.WriteString("expected ")
		b.WriteString(e.Expected)
	} else if e.err != nil {
		b.WriteString(e.err.Error())
	} else {
		b.WriteString("syntax error")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at %d:%d", e.Line, e.Column)
	}
	switch near := snippet(e.Remaining); {
	case near != "":
		fmt.Fprintf(&b, " near %q", near)
	case e.Remaining != "":
		b.WriteString(" at end of line")
	default:
		b.WriteString(" at end of input")
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.err }

func failure(rule, expected, remaining string) *Error {
	return &Error{Rule: rule, Expected: expected, Remaining: remaining}
}

// locate fills in the position fields relative to source.
func (e *Error) locate(source string) *Error {
	offset := len(source) - len(e.Remaining)
	if offset < 0 || offset > len(source) {
		offset = 0
	}
	e.Offset = offset
	e.Line = 1 + strings.Count(source[:offset], "\n")
	if idx := strings.LastIndexByte(source[:offset], '\n'); idx >= 0 {
		e.Column = offset - idx
	} else {
		e.Column = offset + 1
	}
	return e
}

func snippet(s string) string {
	const max = 24
	if idx := strings.IndexByte(s, '\n'); idx >= 0 && idx < max {
		return s[:idx]
	}
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// further reports whether a failed further into the input than b.
func further(a, b *Error) bool {
	if b == nil {
		return true
	}
	return len(a.Remaining) < len(b.Remaining)
}
