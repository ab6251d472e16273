package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedQuote is returned when the stream ends inside a quoted cell.
	ErrUnterminatedQuote = errors.New("unterminated quoted cell")
	// ErrUnexpectedAfterQuote is returned when a closing quote is followed by a
	// byte that does not begin a column or line separator.
	ErrUnexpectedAfterQuote = errors.New("unexpected character after closing quote")
	// ErrQuoteInUnquotedCell is returned when a quote sequence appears inside an
	// unquoted cell.
	ErrQuoteInUnquotedCell = errors.New("unexpected quote in unquoted cell")
	// ErrUnexpectedState is returned from the unreachable branch of the parser
	// loop. Seeing it is a defect.
	ErrUnexpectedState = errors.New("unexpected parser state")
)

// ParseError reports a syntax fault with its position in the input.
// Line and Character are 1-based; Character counts bytes within the line.
type ParseError struct {
	Line      int
	Character int
	Err       error

	// Char is the offending byte, when the error has one.
	Char    byte
	HasChar bool
	// Hint carries extra advice appended to the message, such as the
	// "\r\n" line separator suggestion.
	Hint string
}

func (e *ParseError) Error() string {
	msg := "csvstream: " + e.Err.Error()
	if e.HasChar {
		msg = fmt.Sprintf("%s %q", msg, string(e.Char))
	}
	msg = fmt.Sprintf("%s (line %d, character %d)", msg, e.Line, e.Character)
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}

// Unwrap returns the underlying error kind so ParseError works with errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Err
}
