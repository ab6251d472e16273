package csv

import "github.com/vslinko/csvstream/internal/parser"

// Error kinds surfaced by scanners and the low-level Parser. Match with
// errors.Is; the concrete error is a *ParseError carrying the position.
var (
	ErrUnterminatedQuote    = parser.ErrUnterminatedQuote
	ErrUnexpectedAfterQuote = parser.ErrUnexpectedAfterQuote
	ErrQuoteInUnquotedCell  = parser.ErrQuoteInUnquotedCell
	ErrUnexpectedState      = parser.ErrUnexpectedState
)

// ParseError reports a syntax fault with its 1-based line and in-line
// character position.
type ParseError = parser.ParseError

// OptionsError reports an invalid reader configuration.
type OptionsError = parser.OptionsError
