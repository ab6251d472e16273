package csv

import (
	"io"

	"github.com/vslinko/csvstream/internal/parser"
)

// NestedRowScanner yields one CellScanner per row, letting the caller
// stream cells of very wide rows without materializing a slice.
//
// Abandoning an inner CellScanner is allowed: the next outer Scan drains
// the remainder of the row before advancing, so the parser never stalls.
//
// Example:
//
//	scanner, _ := csv.NewNestedRowScanner(file, csv.ReaderOptions{})
//	for scanner.Scan() {
//	    cells := scanner.Row()
//	    for cells.Scan() {
//	        fmt.Print(cells.Cell(), " ")
//	    }
//	    fmt.Println()
//	}
type NestedRowScanner struct {
	p     *parser.Parser
	tok   Token
	has   bool
	done  bool
	err   error
	inner *CellScanner
}

// NewNestedRowScanner creates a NestedRowScanner reading from r.
func NewNestedRowScanner(r io.Reader, opts ReaderOptions) (*NestedRowScanner, error) {
	p, err := parser.New(r, opts.parserOptions())
	if err != nil {
		return nil, err
	}
	s := &NestedRowScanner{p: p}
	p.OnCell = func(value string) {
		s.tok = Token{Value: value}
		s.has = true
		p.Pause()
	}
	p.OnRowEnd = func() {
		s.tok = Token{NewLine: true}
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

// next pulls one token from the parser.
func (s *NestedRowScanner) next() (Token, bool) {
	if s.done {
		return Token{}, false
	}
	s.has = false
	s.p.Read()
	if !s.has {
		return Token{}, false
	}
	return s.tok, true
}

// Scan advances to the next row. Any unread cells of the previous row
// are drained first. Scan peeks one token ahead, so a trailing line
// separator does not fabricate an empty final row. It returns false at
// the end of the stream or on error; check Err afterwards.
func (s *NestedRowScanner) Scan() bool {
	if s.inner != nil {
		for s.inner.Scan() {
		}
		s.inner = nil
	}
	tok, ok := s.next()
	if !ok {
		return false
	}
	s.inner = &CellScanner{outer: s, peeked: &tok}
	return true
}

// Row returns the cell scanner for the row produced by the last
// successful Scan. The scanner is only valid until the next outer Scan.
func (s *NestedRowScanner) Row() *CellScanner {
	return s.inner
}

// Err returns the terminal error, if any. It returns nil at a clean end
// of stream.
func (s *NestedRowScanner) Err() error {
	return s.err
}

// Stats returns the parser's activity counters.
func (s *NestedRowScanner) Stats() Stats {
	return s.p.Stats()
}

// CellScanner yields the cells of a single row, terminating at the row
// boundary.
type CellScanner struct {
	outer   *NestedRowScanner
	peeked  *Token
	cell    string
	rowDone bool
}

// Scan advances to the next cell of the row. It returns false once the
// row boundary is reached, at the end of the stream, or on error.
func (c *CellScanner) Scan() bool {
	if c.rowDone {
		return false
	}
	var tok Token
	var ok bool
	if c.peeked != nil {
		tok, ok = *c.peeked, true
		c.peeked = nil
	} else {
		tok, ok = c.outer.next()
	}
	if !ok || tok.NewLine {
		c.rowDone = true
		return false
	}
	c.cell = tok.Value
	return true
}

// Cell returns the cell produced by the last successful Scan.
func (c *CellScanner) Cell() string {
	return c.cell
}

// Err returns the terminal error, if any.
func (c *CellScanner) Err() error {
	return c.outer.err
}
