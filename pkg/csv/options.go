package csv

import (
	"golang.org/x/text/encoding"

	"github.com/vslinko/csvstream/internal/parser"
)

// ReaderOptions configures CSV parsing behavior. The zero value selects
// the defaults, so csv.ReaderOptions{} is a valid configuration.
type ReaderOptions struct {
	// ColumnSeparator is the byte sequence separating cells.
	// Default: ","
	ColumnSeparator string

	// LineSeparator is the byte sequence separating rows.
	// Default: "\n"
	LineSeparator string

	// Quote is the byte sequence beginning and ending quoted cells. Two
	// adjacent Quote sequences inside a quoted cell decode to one
	// literal occurrence.
	// Default: `"`
	Quote string

	// Encoding decodes completed cell bytes into text.
	// Default: nil (UTF-8)
	Encoding encoding.Encoding

	// FromLine is the first line index to emit, inclusive. Lines are
	// numbered from 0 in input order; lines before FromLine are skipped
	// without being parsed into cells.
	// Default: 0
	FromLine int

	// ToLine is the first line index not to emit. Zero or negative means
	// read to the end of the stream.
	// Default: 0 (no limit)
	ToLine int

	// ReaderBufferSize is the chunk size in bytes requested from the
	// byte source. Default: 1024
	ReaderBufferSize int

	// ColumnBufferMinStepSize is the minimum growth increment in bytes
	// for the cell assembly buffer. Default: 1024
	ColumnBufferMinStepSize int

	// InputBufferIndexLimit is the count of consumed bytes at which the
	// input buffer is compacted. Default: 1024
	InputBufferIndexLimit int

	// ColumnBufferReserve is the free tail in bytes kept available in
	// the cell assembly buffer. Default: 64
	ColumnBufferReserve int
}

// DefaultReaderOptions returns the default reader configuration with all
// fields populated explicitly.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		ColumnSeparator:         ",",
		LineSeparator:           "\n",
		Quote:                   `"`,
		FromLine:                0,
		ToLine:                  0,
		ReaderBufferSize:        parser.DefaultReaderBufferSize,
		ColumnBufferMinStepSize: parser.DefaultColumnBufferMinStepSize,
		InputBufferIndexLimit:   parser.DefaultInputBufferIndexLimit,
		ColumnBufferReserve:     parser.DefaultColumnBufferReserve,
	}
}

// Validate checks the options without constructing a parser.
func (o ReaderOptions) Validate() error {
	return o.parserOptions().Validate()
}

// parserOptions maps the public options onto the parser core's options,
// filling defaults for zero values.
func (o ReaderOptions) parserOptions() parser.Options {
	po := parser.DefaultOptions()
	if o.ColumnSeparator != "" {
		po.ColumnSeparator = []byte(o.ColumnSeparator)
	}
	if o.LineSeparator != "" {
		po.LineSeparator = []byte(o.LineSeparator)
	}
	if o.Quote != "" {
		po.Quote = []byte(o.Quote)
	}
	po.Encoding = o.Encoding
	po.FromLine = o.FromLine
	if o.ToLine > 0 {
		po.ToLine = o.ToLine
	}
	if o.ReaderBufferSize > 0 {
		po.ReaderBufferSize = o.ReaderBufferSize
	}
	if o.ColumnBufferMinStepSize > 0 {
		po.ColumnBufferMinStepSize = o.ColumnBufferMinStepSize
	}
	if o.InputBufferIndexLimit > 0 {
		po.InputBufferIndexLimit = o.InputBufferIndexLimit
	}
	if o.ColumnBufferReserve > 0 {
		po.ColumnBufferReserve = o.ColumnBufferReserve
	}
	return po
}
