package parser

import (
	"bytes"

	"golang.org/x/text/encoding"
)

// Default buffer tuning values.
const (
	DefaultReaderBufferSize        = 1024
	DefaultColumnBufferMinStepSize = 1024
	DefaultInputBufferIndexLimit   = 1024
	DefaultColumnBufferReserve     = 64
)

// Options configures a Parser.
type Options struct {
	// ColumnSeparator is the byte sequence separating cells. Default: ","
	ColumnSeparator []byte
	// LineSeparator is the byte sequence separating rows. Default: "\n"
	LineSeparator []byte
	// Quote is the byte sequence beginning and ending quoted cells. Doubled
	// inside a quoted cell it represents one literal occurrence. Default: `"`
	Quote []byte

	// Encoding decodes completed cell bytes into text. nil means UTF-8.
	Encoding encoding.Encoding

	// FromLine is the first line index to emit, inclusive. Lines are
	// numbered from 0 in input order.
	FromLine int
	// ToLine is the first line index not to emit. Negative means no limit.
	ToLine int

	// ReaderBufferSize is the chunk size requested from the byte source.
	ReaderBufferSize int
	// ColumnBufferMinStepSize is the minimum growth increment for the
	// column buffer.
	ColumnBufferMinStepSize int
	// InputBufferIndexLimit is the count of consumed bytes at which the
	// input buffer is compacted.
	InputBufferIndexLimit int
	// ColumnBufferReserve is the free tail kept in the column buffer
	// before growth is triggered.
	ColumnBufferReserve int
}

// DefaultOptions returns the default parser configuration.
func DefaultOptions() Options {
	return Options{
		ColumnSeparator:         []byte{','},
		LineSeparator:           []byte{'\n'},
		Quote:                   []byte{'"'},
		FromLine:                0,
		ToLine:                  -1,
		ReaderBufferSize:        DefaultReaderBufferSize,
		ColumnBufferMinStepSize: DefaultColumnBufferMinStepSize,
		InputBufferIndexLimit:   DefaultInputBufferIndexLimit,
		ColumnBufferReserve:     DefaultColumnBufferReserve,
	}
}

// OptionsError reports an invalid parser configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csvstream: invalid " + e.Field + ": " + e.Message
}

// Validate checks the options. Delimiter configurations where one
// separator is a prefix of another are rejected here rather than left as
// undefined parse behavior.
func (o Options) Validate() error {
	if len(o.ColumnSeparator) == 0 {
		return &OptionsError{Field: "ColumnSeparator", Message: "must not be empty"}
	}
	if len(o.LineSeparator) == 0 {
		return &OptionsError{Field: "LineSeparator", Message: "must not be empty"}
	}
	if len(o.Quote) == 0 {
		return &OptionsError{Field: "Quote", Message: "must not be empty"}
	}
	if prefixOf(o.ColumnSeparator, o.LineSeparator) {
		return &OptionsError{Field: "LineSeparator", Message: "shares a prefix with ColumnSeparator"}
	}
	if prefixOf(o.ColumnSeparator, o.Quote) {
		return &OptionsError{Field: "Quote", Message: "shares a prefix with ColumnSeparator"}
	}
	if prefixOf(o.LineSeparator, o.Quote) {
		return &OptionsError{Field: "Quote", Message: "shares a prefix with LineSeparator"}
	}
	if o.FromLine < 0 {
		return &OptionsError{Field: "FromLine", Message: "must not be negative"}
	}
	if o.ReaderBufferSize <= 0 {
		return &OptionsError{Field: "ReaderBufferSize", Message: "must be positive"}
	}
	if o.ColumnBufferMinStepSize <= 0 {
		return &OptionsError{Field: "ColumnBufferMinStepSize", Message: "must be positive"}
	}
	if o.InputBufferIndexLimit <= 0 {
		return &OptionsError{Field: "InputBufferIndexLimit", Message: "must be positive"}
	}
	if o.ColumnBufferReserve <= 0 {
		return &OptionsError{Field: "ColumnBufferReserve", Message: "must be positive"}
	}
	return nil
}

// prefixOf reports whether either argument is a prefix of the other.
func prefixOf(a, b []byte) bool {
	return bytes.HasPrefix(a, b) || bytes.HasPrefix(b, a)
}
