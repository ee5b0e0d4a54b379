package formulas

import (
	"strconv"
)

// ErrorKind classifies an Error. ErrorKind implements error so that
// errors.Is(err, DivideByZero) and similar work on any *Error.
type ErrorKind int

const (
	// EmptyInput means the expression was empty or only whitespace.
	EmptyInput ErrorKind = iota + 1
	// Syntax means a token appeared where the grammar does not allow it.
	Syntax
	// InvalidOperand means a numeric literal could not be parsed.
	InvalidOperand
	// UnbalancedBrackets means an opening bracket was never closed.
	UnbalancedBrackets
	// DivideByZero means the right operand of a division was exactly zero.
	DivideByZero
	// Internal means an evaluation tree held an operator that is not one of
	// + - * /. Trees built from tokenized input never do.
	Internal
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=ErrorKind
//go:generate go mod tidy

func (k ErrorKind) Error() string {
	switch k {
	case EmptyInput:
		return "empty expression"
	case Syntax:
		return "syntax error"
	case InvalidOperand:
		return "invalid operand"
	case UnbalancedBrackets:
		return "unbalanced brackets"
	case DivideByZero:
		return "division by zero"
	case Internal:
		return "internal error"
	default:
		return k.String()
	}
}

// Error is the error type returned for every problem with an expression.
type Error struct {
	// Kind classifies the error.
	Kind ErrorKind
	// Msg describes the error. If empty, the kind's description is used.
	Msg string
	// Text is the expression in which the error occurred.
	Text string
	// Start is the byte offset of the offending part of Text, or -1 if the
	// error is not attributable to a particular part.
	Start int
	// Len is the length in bytes of the offending part of Text.
	Len int
}

func (err *Error) Error() string {
	msg := err.Msg
	if msg == "" {
		msg = err.Kind.Error()
	}
	if s, ok := err.offending(); ok {
		return errpos(err.Start, msg+": "+strconv.Quote(s))
	}
	return msg
}

// Unwrap returns the error's kind.
func (err *Error) Unwrap() error {
	return err.Kind
}

// Span returns the byte offset and length of the offending part of the
// expression. ok is false if the error has no span.
func (err *Error) Span() (start, length int, ok bool) {
	if _, ok := err.offending(); !ok {
		return -1, 0, false
	}
	return err.Start, err.Len, true
}

// Offending returns the part of the expression that caused the error, or the
// empty string if the error has no span.
func (err *Error) Offending() string {
	s, _ := err.offending()
	return s
}

// Pos returns the position of the error as the number of runes up to and
// including the start of the offending text, or 0 if the error has no span.
func (err *Error) Pos() int {
	if _, ok := err.offending(); !ok {
		return 0
	}
	n := 1
	for range err.Text[:err.Start] {
		n++
	}
	return n
}

func (err *Error) offending() (string, bool) {
	if err.Start < 0 || err.Len <= 0 || err.Start+err.Len > len(err.Text) {
		return "", false
	}
	return err.Text[err.Start : err.Start+err.Len], true
}

// spanError creates an error locating text[start:start+n].
func spanError(kind ErrorKind, msg, text string, start, n int) *Error {
	return &Error{Kind: kind, Msg: msg, Text: text, Start: start, Len: n}
}

// plainError creates an error which does not locate any part of the text.
func plainError(kind ErrorKind, msg, text string) *Error {
	return &Error{Kind: kind, Msg: msg, Text: text, Start: -1}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var _ error = (*Error)(nil)
