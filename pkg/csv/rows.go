package csv

import (
	"io"

	"github.com/vslinko/csvstream/internal/parser"
)

// RowScanner yields one complete row of decoded cells per Scan.
//
// Blank lines between rows produce nothing; a line consisting only of
// column separators produces a row of empty strings; a trailing line
// separator does not produce an extra empty row.
//
// Example:
//
//	scanner, _ := csv.NewRowScanner(file, csv.ReaderOptions{})
//	for scanner.Scan() {
//	    row := scanner.Row()
//	    // process row
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type RowScanner struct {
	p    *parser.Parser
	cur  []string
	row  []string
	has  bool
	done bool
	err  error
}

// NewRowScanner creates a RowScanner reading from r.
func NewRowScanner(r io.Reader, opts ReaderOptions) (*RowScanner, error) {
	p, err := parser.New(r, opts.parserOptions())
	if err != nil {
		return nil, err
	}
	s := &RowScanner{p: p}
	p.OnCell = func(value string) {
		s.cur = append(s.cur, value)
	}
	p.OnRowEnd = func() {
		s.row = s.cur
		s.cur = nil
		s.has = true
		p.Pause()
	}
	p.OnEnd = func() {
		s.done = true
	}
	p.OnError = func(err error) {
		s.err = err
		s.done = true
	}
	return s, nil
}

// Scan advances to the next row. It returns false at the end of the
// stream or on error; check Err afterwards. Once false it stays false.
func (s *RowScanner) Scan() bool {
	if s.done {
		return false
	}
	s.has = false
	s.p.Read()
	return s.has
}

// Row returns the row produced by the last successful Scan. The slice is
// owned by the caller; the scanner does not reuse it.
func (s *RowScanner) Row() []string {
	return s.row
}

// Err returns the terminal error, if any. It returns nil at a clean end
// of stream.
func (s *RowScanner) Err() error {
	return s.err
}

// Stats returns the parser's activity counters.
func (s *RowScanner) Stats() Stats {
	return s.p.Stats()
}
