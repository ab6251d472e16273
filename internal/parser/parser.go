// Package parser implements the streaming CSV parser core.
//
// The parser is a resumable state machine over a sliding input buffer.
// It pulls chunks from an io.Reader byte source, recognizes user-chosen
// multi-byte column, line and quote delimiters, handles RFC 4180 style
// doubled-quote escaping inside quoted cells, and reports syntax errors
// with line and character positions.
//
// The parser is push-style: completed cells and row boundaries are
// delivered through the OnCell, OnRowEnd, OnEnd and OnError callbacks.
// It is cooperatively pausable: a callback may call Pause, which makes
// Read return before the next emission; calling Read again resumes
// exactly where parsing stopped. The scanner adapters in pkg/csv use
// this to turn the callbacks into pull-style iteration with at most one
// emission of look-ahead.
//
// A Parser instance is single-use and not safe for concurrent use. After
// OnEnd or OnError has been delivered it is terminal and Read becomes a
// no-op.
package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vslinko/csvstream/internal/scan"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser is the streaming CSV parser core.
type Parser struct {
	// OnCell is called with the decoded text of each completed cell.
	OnCell func(string)
	// OnRowEnd is called after the last cell of each row.
	OnRowEnd func()
	// OnEnd is called once when the stream is exhausted or ToLine is reached.
	OnEnd func()
	// OnError is called once with a terminal error.
	OnError func(error)

	opts        Options
	doubleQuote []byte
	// minReserve is the look-ahead needed to decide whether the current
	// position begins any delimiter.
	minReserve int
	stepSize   int

	reader  io.Reader
	readBuf []byte

	in  inputBuffer
	col columnBuffer

	inColumn    bool
	inQuote     bool
	emptyLine   bool
	readerEmpty bool

	// afterQuote defers the post-closing-quote check until enough
	// look-ahead is buffered to recognize a multi-byte separator.
	afterQuote bool

	// sepRemaining counts line separator bytes still to copy when a
	// cramped column buffer forced a quoted separator to be written
	// byte by byte. The line accounting happens when it reaches zero.
	sepRemaining int

	pendingRowEnd bool
	pendingEnd    bool

	currentPos       int
	linesProcessed   int
	lastLineStartPos int

	paused   bool
	terminal bool

	stats Stats
}

// New creates a Parser reading from r. The options are validated.
// Ownership of r stays with the caller; the parser never closes it.
func New(r io.Reader, opts Options) (*Parser, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	doubleQuote := append(append([]byte{}, opts.Quote...), opts.Quote...)

	minReserve := 1
	for _, n := range []int{len(opts.ColumnSeparator), len(opts.LineSeparator), len(doubleQuote)} {
		if n > minReserve {
			minReserve = n
		}
	}

	// One growth step must restore the full reserve.
	stepSize := opts.ColumnBufferMinStepSize
	if stepSize < opts.ColumnBufferReserve {
		stepSize = opts.ColumnBufferReserve
	}

	p := &Parser{
		opts:        opts,
		doubleQuote: doubleQuote,
		minReserve:  minReserve,
		stepSize:    stepSize,
		reader:      r,
		readBuf:     make([]byte, opts.ReaderBufferSize),
		emptyLine:   true,
	}
	p.col.buf = make([]byte, stepSize)
	return p, nil
}

// Pause makes Read return before evaluating the next parsing rule.
// Intended to be called from a callback after it has received one
// emission. Parsing resumes on the next Read call.
func (p *Parser) Pause() {
	p.paused = true
}

// Stats returns the activity counters accumulated so far.
func (p *Parser) Stats() Stats {
	return p.stats
}

// Read runs the parsing loop until the parser pauses or terminates.
// Terminal parsers return immediately.
func (p *Parser) Read() {
	if p.OnCell == nil {
		p.OnCell = func(string) {}
	}
	if p.OnRowEnd == nil {
		p.OnRowEnd = func() {}
	}
	if p.OnEnd == nil {
		p.OnEnd = func() {}
	}
	if p.OnError == nil {
		p.OnError = func(error) {}
	}

	p.paused = false
	for !p.terminal && !p.paused {
		p.step()
	}
}

// step evaluates the first applicable rule in priority order and either
// advances internal state or yields through a callback.
func (p *Parser) step() {
	// Drain deferred emissions first so adapters that pause after every
	// callback see exactly one callback per resume.
	if p.pendingRowEnd {
		p.pendingRowEnd = false
		p.OnRowEnd()
		return
	}
	if p.pendingEnd {
		p.pendingEnd = false
		p.terminal = true
		p.OnEnd()
		return
	}

	// Refill from the byte source.
	if !p.readerEmpty && p.in.unprocessed() < p.refillTarget() {
		p.refill()
		return
	}

	// Compact the input buffer once enough of it has been consumed.
	if p.in.readIndex >= p.opts.InputBufferIndexLimit {
		p.in.shrink()
		p.stats.InputBufferShrinks++
		return
	}

	// Keep the column buffer's reserve available before any appending.
	if p.col.free() < p.opts.ColumnBufferReserve {
		p.col.grow(p.stepSize)
		p.stats.ColumnBufferExpands++
		return
	}

	// A closing quote must be followed by a separator or the end of the
	// stream. Checked here, after refill, so a multi-byte separator split
	// across chunks is not misread as a stray byte.
	if p.afterQuote {
		p.afterQuote = false
		head := p.in.head()
		if len(head) > 0 && !bytes.HasPrefix(head, p.opts.LineSeparator) && !bytes.HasPrefix(head, p.opts.ColumnSeparator) {
			p.failChar(ErrUnexpectedAfterQuote, head[0])
		}
		return
	}

	head := p.in.head()

	// Fast skip of whole lines before FromLine. Skipped bytes are not
	// written anywhere. An exhausted stream falls through to the end
	// rules instead.
	if !p.inColumn && p.linesProcessed < p.opts.FromLine && len(head) > 0 {
		p.skipLine(head)
		return
	}

	// Stop at ToLine.
	if !p.inColumn && p.opts.ToLine >= 0 && p.linesProcessed >= p.opts.ToLine {
		p.terminal = true
		p.OnEnd()
		return
	}

	// A UTF-8 byte order mark at the absolute start is consumed silently.
	if !p.inColumn && p.currentPos == 0 && bytes.HasPrefix(head, utf8BOM) {
		p.advance(len(utf8BOM))
		return
	}

	// End of stream.
	if !p.inColumn && len(head) == 0 {
		if !p.emptyLine {
			p.pendingRowEnd = true
			p.pendingEnd = true
			p.emitCell()
			return
		}
		p.pendingEnd = true
		return
	}

	// Line separator outside a column.
	if !p.inColumn && bytes.HasPrefix(head, p.opts.LineSeparator) {
		hadRow := !p.emptyLine
		p.advance(len(p.opts.LineSeparator))
		p.linesProcessed++
		p.lastLineStartPos = p.currentPos
		p.emptyLine = true
		if hadRow {
			p.pendingRowEnd = true
			p.emitCell()
		}
		return
	}

	// Column separator outside a column.
	if !p.inColumn && bytes.HasPrefix(head, p.opts.ColumnSeparator) {
		p.emptyLine = false
		p.advance(len(p.opts.ColumnSeparator))
		p.emitCell()
		return
	}

	// Begin a column.
	if !p.inColumn {
		p.inColumn = true
		p.emptyLine = false
		if bytes.HasPrefix(head, p.opts.Quote) {
			p.inQuote = true
			p.advance(len(p.opts.Quote))
		}
		return
	}

	if p.inQuote {
		// Finish a line separator split across iterations before looking
		// at anything else; its tail must not be misread as content or a
		// quote.
		if p.sepRemaining > 0 {
			p.col.write(head[:1])
			p.advance(1)
			p.sepRemaining--
			if p.sepRemaining == 0 {
				p.linesProcessed++
				p.lastLineStartPos = p.currentPos
			}
			return
		}

		// Doubled quote inside a quoted cell is one literal quote. The
		// reserve may be smaller than the quote, so grow until it fits.
		if bytes.HasPrefix(head, p.doubleQuote) {
			if p.col.free() < len(p.opts.Quote) {
				p.col.grow(p.stepSize)
				p.stats.ColumnBufferExpands++
				return
			}
			p.col.write(p.opts.Quote)
			p.advance(len(p.doubleQuote))
			return
		}

		// Closing quote.
		if bytes.HasPrefix(head, p.opts.Quote) {
			p.inQuote = false
			p.inColumn = false
			p.advance(len(p.opts.Quote))
			p.afterQuote = true
			return
		}
	}

	// End of an unquoted column by look-ahead.
	if !p.inQuote && (len(head) == 0 || bytes.HasPrefix(head, p.opts.LineSeparator) || bytes.HasPrefix(head, p.opts.ColumnSeparator)) {
		p.inColumn = false
		return
	}

	// Bulk body read: move plain cell bytes in one block.
	if len(head) > 0 {
		p.bulkRead(head)
		return
	}

	// Unterminated quote at end of stream.
	if p.inQuote && p.readerEmpty {
		p.fail(ErrUnterminatedQuote)
		return
	}

	p.fail(ErrUnexpectedState)
}

// refillTarget returns how much look-ahead the next refill must provide.
// At the very start of the stream the BOM check needs three bytes even
// when the delimiters are shorter.
func (p *Parser) refillTarget() int {
	if p.currentPos == 0 && p.minReserve < len(utf8BOM) {
		return len(utf8BOM)
	}
	return p.minReserve
}

// refill pulls one chunk from the byte source into the input buffer.
func (p *Parser) refill() {
	n, err := p.reader.Read(p.readBuf)
	if n > 0 {
		p.in.push(p.readBuf[:n])
		p.stats.Reads++
	}
	switch {
	case err == io.EOF:
		p.readerEmpty = true
	case err != nil:
		p.failWith(fmt.Errorf("csvstream: read from byte source: %w", err))
	}
}

// skipLine discards input up to and including the next line separator.
func (p *Parser) skipLine(head []byte) {
	idx := scan.LineSeparator(head, p.opts.LineSeparator)
	if idx >= 0 {
		p.advance(idx + len(p.opts.LineSeparator))
		p.linesProcessed++
		p.lastLineStartPos = p.currentPos
		p.emptyLine = true
		return
	}
	// No separator in the buffered input: discard it, keeping enough tail
	// that a separator split across chunks is still recognized.
	keep := 0
	if !p.readerEmpty {
		keep = len(p.opts.LineSeparator) - 1
	}
	if n := len(head) - keep; n > 0 {
		p.advance(n)
	}
}

// bulkRead copies cell content bytes to the column buffer in one block,
// stopping at the next byte the rule machine must look at.
func (p *Parser) bulkRead(head []byte) {
	limit := len(head) - p.minReserve
	if free := p.col.free(); free < limit {
		limit = free
	}

	if limit <= 1 {
		// Too close to the edge for a scan; move the smallest safe unit.
		if !p.inQuote && bytes.HasPrefix(head, p.opts.Quote) {
			p.fail(ErrQuoteInUnquotedCell)
			return
		}
		if p.inQuote && bytes.HasPrefix(head, p.opts.LineSeparator) {
			if p.col.free() >= len(p.opts.LineSeparator) {
				p.col.write(p.opts.LineSeparator)
				p.advance(len(p.opts.LineSeparator))
				p.linesProcessed++
				p.lastLineStartPos = p.currentPos
				return
			}
			// Not enough room for the whole separator: copy its first
			// byte and leave the rest for the split-separator rule, which
			// accounts the line once the last byte lands.
			p.col.write(head[:1])
			p.advance(1)
			p.sepRemaining = len(p.opts.LineSeparator) - 1
			return
		}
		p.col.write(head[:1])
		p.advance(1)
		return
	}

	if p.inQuote {
		idx, newLines, lastLineEnd := scan.Quoted(head, limit, p.opts.Quote, p.opts.LineSeparator)
		if newLines > 0 {
			p.linesProcessed += newLines
			p.lastLineStartPos = p.currentPos + lastLineEnd
		}
		p.col.write(head[:idx])
		p.advance(idx)
		return
	}

	idx, hit := scan.Delimiters(head, limit, p.opts.LineSeparator, p.opts.ColumnSeparator, p.opts.Quote)
	if hit == scan.HitQuote && idx == 0 {
		p.fail(ErrQuoteInUnquotedCell)
		return
	}
	p.col.write(head[:idx])
	p.advance(idx)
}

// advance consumes n input bytes.
func (p *Parser) advance(n int) {
	p.in.readIndex += n
	p.currentPos += n
}

// emitCell decodes the assembled column bytes and delivers them.
func (p *Parser) emitCell() {
	raw := p.col.take(p.stepSize)

	var text string
	if p.opts.Encoding == nil {
		// take handed over the backing array, so no copy is needed.
		text = unsafeString(raw)
	} else {
		decoded, err := p.opts.Encoding.NewDecoder().Bytes(raw)
		if err != nil {
			p.failWith(fmt.Errorf("csvstream: decode cell: %w", err))
			return
		}
		text = string(decoded)
	}
	p.OnCell(text)
}

// fail reports a positioned terminal parse error.
func (p *Parser) fail(kind error) {
	p.failWith(&ParseError{
		Line:      p.linesProcessed + 1,
		Character: p.currentPos - p.lastLineStartPos + 1,
		Err:       kind,
	})
}

// failChar reports a positioned terminal parse error carrying the
// offending byte. A carriage return after a closing quote almost always
// means the input uses "\r\n" line separators, so that case gets a hint.
func (p *Parser) failChar(kind error, char byte) {
	e := &ParseError{
		Line:      p.linesProcessed + 1,
		Character: p.currentPos - p.lastLineStartPos + 1,
		Err:       kind,
		Char:      char,
		HasChar:   true,
	}
	if kind == ErrUnexpectedAfterQuote && char == '\r' && !bytes.Equal(p.opts.LineSeparator, []byte("\r\n")) {
		e.Hint = `set LineSeparator to "\r\n"?`
	}
	p.failWith(e)
}

func (p *Parser) failWith(err error) {
	p.terminal = true
	p.OnError(err)
}
