// Package csv provides a streaming, pull-based CSV reader.
//
// The reader consumes any io.Reader and emits rows of decoded text cells
// with bounded memory: input is processed through a sliding buffer, so
// arbitrarily large files and network streams parse in constant space.
// Column, line and quote delimiters are configurable byte sequences of
// any length, and doubled quotes inside quoted cells decode to one
// literal quote per RFC 4180.
//
// # Scanner surfaces
//
// Four scanner shapes expose the same parse, differing only in what one
// Scan step yields:
//
//   - TokenScanner — one cell or one row boundary per Scan
//   - RowScanner — one []string row per Scan
//   - NestedRowScanner — one lazy per-row CellScanner per Scan
//   - ObjectScanner — one header-keyed map per Scan
//
// All scanners follow the bufio.Scanner convention: Scan reports whether
// a value is available, an accessor returns it, and Err reports the
// terminal error after Scan returns false. A scanner is single-use.
//
//	scanner, err := csv.NewRowScanner(file, csv.ReaderOptions{})
//	if err != nil {
//	    // handle error
//	}
//	for scanner.Scan() {
//	    fmt.Println(scanner.Row())
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
//
// # Low-level access
//
// NewParser exposes the parser core directly: callbacks for cells, row
// boundaries, stream end and errors, plus cooperative Read/Pause control
// for non-scanner integrations.
//
// The package never closes the supplied reader; that stays with the
// caller. Parsing is single-threaded and a scanner must not be shared
// between goroutines without external synchronization.
package csv

import (
	"io"
	"strings"

	"github.com/vslinko/csvstream/internal/parser"
)

// Stats counts parser activity: source reads, input buffer compactions
// and column buffer growths.
type Stats = parser.Stats

// Parser is the low-level streaming parser. Assign the OnCell, OnRowEnd,
// OnEnd and OnError callbacks, then call Read; Read runs until a
// callback calls Pause or the stream terminates.
type Parser struct {
	*parser.Parser
}

// NewParser creates a low-level Parser reading from r.
func NewParser(r io.Reader, opts ReaderOptions) (*Parser, error) {
	p, err := parser.New(r, opts.parserOptions())
	if err != nil {
		return nil, err
	}
	return &Parser{Parser: p}, nil
}

// ReadAll parses everything from r and returns the rows.
//
// This is a convenience for inputs that comfortably fit in memory; for
// incremental processing use one of the scanners.
func ReadAll(r io.Reader, opts ReaderOptions) ([][]string, error) {
	scanner, err := NewRowScanner(r, opts)
	if err != nil {
		return nil, err
	}
	rows := [][]string{}
	for scanner.Scan() {
		rows = append(rows, scanner.Row())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// ParseString parses a complete CSV document from a string.
//
// Example:
//
//	rows, err := csv.ParseString("a,b\n1,2", csv.ReaderOptions{})
//	// rows is [][]string{{"a", "b"}, {"1", "2"}}
func ParseString(input string, opts ReaderOptions) ([][]string, error) {
	return ReadAll(strings.NewReader(input), opts)
}
