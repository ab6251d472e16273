package csv

import (
	"io"

	"github.com/vslinko/csvstream/internal/parser"
)

// Token is one element of the token-level view of a CSV stream: either a
// decoded cell value or a row boundary.
type Token struct {
	// Value is the cell text. Meaningless when NewLine is set.
	Value string
	// NewLine marks a row boundary.
	NewLine bool
}

// TokenScanner yields the flattest view of a CSV stream: every cell and
// every row boundary as its own token, in input order. The final row is
// always followed by a NewLine token before the scanner is exhausted.
//
// Example:
//
//	scanner, _ := csv.NewTokenScanner(strings.NewReader("a,b\n1,2"), csv.ReaderOptions{})
//	for scanner.Scan() {
//	    tok := scanner.Token()
//	    if tok.NewLine {
//	        fmt.Println()
//	    } else {
//	        fmt.Print(tok.Value, " ")
//	    }
//	}
type TokenScanner struct {
	p    *parser.Parser
	tok  Token
	has  bool
	done bool
	err  error
}

// NewTokenScanner creates a TokenScanner reading from r.
func NewTokenScanner(r io.Reader, opts ReaderOptions) (*TokenScanner, error) {
	p, err := parser.New(r, opts.parserOptions())
	if err != nil {
		return nil, err
	}
	s := &TokenScanner{p: p}
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

// Scan advances to the next token. It returns false at the end of the
// stream or on error; check Err afterwards. Once false it stays false.
func (s *TokenScanner) Scan() bool {
	if s.done {
		return false
	}
	s.has = false
	s.p.Read()
	return s.has
}

// Token returns the token produced by the last successful Scan.
func (s *TokenScanner) Token() Token {
	return s.tok
}

// Err returns the terminal error, if any. It returns nil at a clean end
// of stream.
func (s *TokenScanner) Err() error {
	return s.err
}

// Stats returns the parser's activity counters.
func (s *TokenScanner) Stats() Stats {
	return s.p.Stats()
}
