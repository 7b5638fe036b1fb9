// Package reader presents source code as an EOF-terminated rune stream
// with bounded look-ahead, decoupled from the lexer so it can be backed
// either by an in-memory string or by a buffered file handle.
package reader

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/unicode"
)

// EOF is the sentinel rune returned by Peek/Consume once the stream is
// exhausted. It is never a valid Unicode scalar value, so it cannot be
// confused with source content.
const EOF = rune(-1)

// Reader is a character stream over UTF-8 source text.
type Reader interface {
	// Peek returns the rune at position()+offset without advancing.
	// Returns EOF when offset runs past the end of input.
	Peek(offset int) rune
	// Consume returns the current rune and advances past it.
	Consume() rune
	// Position returns the current rune offset from the start of input.
	Position() int
	// Line returns the current 1-based line number.
	Line() int
	// Column returns the current 1-based column number.
	Column() int
	// Done reports whether the stream has been exhausted.
	Done() bool
	// SetPosition jumps within the buffer, for skipping ahead after a
	// short multi-rune sniff. The file-backed reader supports forward
	// jumps only.
	SetPosition(p int)
}

// stringReader is backed by the entire source decoded into memory.
type stringReader struct {
	runes  []rune
	pos    int
	line   int
	column int
}

// NewString returns a Reader over an in-memory source string.
func NewString(src string) Reader {
	return &stringReader{runes: []rune(src), line: 1, column: 1}
}

func (r *stringReader) Peek(offset int) rune {
	i := r.pos + offset
	if i < 0 || i >= len(r.runes) {
		return EOF
	}
	return r.runes[i]
}

func (r *stringReader) Consume() rune {
	if r.pos >= len(r.runes) {
		return EOF
	}
	ch := r.runes[r.pos]
	r.pos++
	if ch == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}
	return ch
}

func (r *stringReader) Position() int { return r.pos }
func (r *stringReader) Line() int     { return r.line }
func (r *stringReader) Column() int   { return r.column }
func (r *stringReader) Done() bool    { return r.pos >= len(r.runes) }

// SetPosition recomputes line/column by rescanning from the start, so it
// handles jumps in either direction at a cost linear in p.
func (r *stringReader) SetPosition(p int) {
	if p < 0 {
		p = 0
	}
	if p > len(r.runes) {
		p = len(r.runes)
	}
	line, col := 1, 1
	for i := 0; i < p; i++ {
		if r.runes[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	r.pos, r.line, r.column = p, line, col
}

// fileBufferCap is the ring buffer capacity for the file-backed reader.
// It must be >= the lexer's maximum single-token look-ahead (3 runes);
// 64 gives comfortable headroom for future lookahead growth.
const fileBufferCap = 64

// fileReader buffers a bounded window of the underlying file's runes,
// refilling from the OS file handle as the window is consumed.
type fileReader struct {
	src        *bufio.Reader
	closer     io.Closer
	buf        []rune
	bufStart   int // absolute rune offset of buf[0]
	pos        int // absolute rune offset of the current rune
	line       int
	column     int
	eofReached bool
}

// NewFile returns a Reader backed by a buffered, BOM-aware UTF-8 decode
// of f. The caller retains ownership of f; NewFile does not close it.
func NewFile(f io.Reader) (Reader, error) {
	decoder := unicode.UTF8BOM.NewDecoder()
	fr := &fileReader{
		src:    bufio.NewReader(decoder.Reader(f)),
		line:   1,
		column: 1,
	}
	if err := fr.fill(); err != nil && err != io.EOF {
		return nil, err
	}
	return fr, nil
}

// fill tops up buf from the underlying source, sliding any unread tail
// to the start of the buffer first.
func (r *fileReader) fill() error {
	if r.eofReached {
		return nil
	}
	// Drop runes already consumed (before the current window).
	if unread := r.pos - r.bufStart; unread > 0 && unread <= len(r.buf) {
		r.buf = r.buf[unread:]
		r.bufStart = r.pos
	}
	for len(r.buf) < fileBufferCap {
		ch, _, err := r.src.ReadRune()
		if err != nil {
			r.eofReached = true
			if err == io.EOF {
				return nil
			}
			return err
		}
		r.buf = append(r.buf, ch)
	}
	return nil
}

func (r *fileReader) ensure(offset int) {
	for !r.eofReached && r.pos+offset-r.bufStart >= len(r.buf) {
		_ = r.fill()
		if len(r.buf) == cap(r.buf) || r.eofReached {
			break
		}
	}
}

func (r *fileReader) Peek(offset int) rune {
	r.ensure(offset)
	i := r.pos + offset - r.bufStart
	if i < 0 || i >= len(r.buf) {
		return EOF
	}
	return r.buf[i]
}

func (r *fileReader) Consume() rune {
	ch := r.Peek(0)
	if ch == EOF {
		return EOF
	}
	r.pos++
	if ch == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}
	if r.pos-r.bufStart >= fileBufferCap/2 {
		_ = r.fill()
	}
	return ch
}

func (r *fileReader) Position() int { return r.pos }
func (r *fileReader) Line() int     { return r.line }
func (r *fileReader) Column() int   { return r.column }
func (r *fileReader) Done() bool    { return r.Peek(0) == EOF }

// SetPosition jumps forward to p, re-deriving line/column by scanning the
// skipped runes for newlines. It only supports jumping within or just
// past the currently buffered window, which is sufficient for the
// lexer's short numeric-prefix sniffs.
func (r *fileReader) SetPosition(p int) {
	for r.pos < p {
		if r.Consume() == EOF {
			break
		}
	}
	r.pos = p
}
