package parser

import "unsafe"

// Stats counts observable parser activity. Purely additive.
type Stats struct {
	// Reads is the number of chunks pulled from the byte source.
	Reads int
	// InputBufferShrinks is the number of copy-forward compactions of the
	// input buffer.
	InputBufferShrinks int
	// ColumnBufferExpands is the number of column buffer growths.
	ColumnBufferExpands int
}

// inputBuffer is a sliding window over the byte source. Bytes before
// readIndex are consumed and may be reclaimed by shrink.
type inputBuffer struct {
	buf       []byte
	readIndex int
}

// unprocessed returns the count of bytes not yet consumed.
func (b *inputBuffer) unprocessed() int {
	return len(b.buf) - b.readIndex
}

// head returns the unconsumed tail of the buffer.
func (b *inputBuffer) head() []byte {
	return b.buf[b.readIndex:]
}

// push appends a chunk from the byte source.
func (b *inputBuffer) push(chunk []byte) {
	b.buf = append(b.buf, chunk...)
}

// shrink drops the consumed prefix, copying the tail forward so the
// backing array is reused by subsequent pushes.
func (b *inputBuffer) shrink() {
	n := copy(b.buf, b.buf[b.readIndex:])
	b.buf = b.buf[:n]
	b.readIndex = 0
}

// columnBuffer accumulates the raw bytes of the cell being assembled.
// len(buf) is the capacity; index is the write position.
type columnBuffer struct {
	buf   []byte
	index int
}

// free returns the unwritten tail length.
func (b *columnBuffer) free() int {
	return len(b.buf) - b.index
}

// grow reallocates with step more bytes of capacity, copying what has
// been written so far.
func (b *columnBuffer) grow(step int) {
	next := make([]byte, len(b.buf)+step)
	copy(next, b.buf[:b.index])
	b.buf = next
}

// write copies p into the buffer. The caller guarantees free() >= len(p).
func (b *columnBuffer) write(p []byte) {
	copy(b.buf[b.index:], p)
	b.index += len(p)
}

// take returns the assembled cell bytes and replaces the buffer with a
// fresh allocation of size step, so memory held by a large cell is
// released as soon as the cell is emitted. The returned slice owns the
// old backing array and is never written to again.
func (b *columnBuffer) take(step int) []byte {
	raw := b.buf[:b.index]
	b.buf = make([]byte, step)
	b.index = 0
	return raw
}

// unsafeString converts cell bytes to a string without copying. Safe
// because take hands over ownership of the backing array: the parser
// allocates a fresh column buffer and never touches the old one.
func unsafeString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
