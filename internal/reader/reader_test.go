package reader

import (
	"strings"
	"testing"
)

func TestStringReaderPeekConsume(t *testing.T) {
	r := NewString("ab\ncd")

	if got := r.Peek(0); got != 'a' {
		t.Fatalf("Peek(0) = %q, want 'a'", got)
	}
	if got := r.Peek(1); got != 'b' {
		t.Fatalf("Peek(1) = %q, want 'b'", got)
	}
	if got := r.Peek(100); got != EOF {
		t.Fatalf("Peek(100) = %q, want EOF", got)
	}

	if got := r.Consume(); got != 'a' {
		t.Fatalf("Consume() = %q, want 'a'", got)
	}
	if r.Line() != 1 || r.Column() != 2 {
		t.Fatalf("after consuming 'a': line=%d col=%d, want 1,2", r.Line(), r.Column())
	}

	r.Consume() // 'b'
	r.Consume() // '\n'
	if r.Line() != 2 || r.Column() != 1 {
		t.Fatalf("after newline: line=%d col=%d, want 2,1", r.Line(), r.Column())
	}
}

func TestStringReaderDoneAndEOF(t *testing.T) {
	r := NewString("x")
	if r.Done() {
		t.Fatal("Done() true before consuming")
	}
	r.Consume()
	if !r.Done() {
		t.Fatal("Done() false after consuming all input")
	}
	if got := r.Consume(); got != EOF {
		t.Fatalf("Consume() past EOF = %q, want EOF", got)
	}
}

func TestStringReaderSetPosition(t *testing.T) {
	r := NewString("abc\ndef")
	r.SetPosition(5) // skip forward to 'e'
	if got := r.Peek(0); got != 'e' {
		t.Fatalf("Peek(0) after SetPosition(5) = %q, want 'e'", got)
	}
	if r.Line() != 2 {
		t.Fatalf("Line() after SetPosition across newline = %d, want 2", r.Line())
	}
}

func TestFileReaderMatchesStringReader(t *testing.T) {
	src := "line one\nline two\n日本語\n"
	sr := NewString(src)

	fr, err := NewFile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	for !sr.Done() {
		sCh := sr.Consume()
		fCh := fr.Consume()
		if sCh != fCh {
			t.Fatalf("mismatch: string reader gave %q, file reader gave %q", sCh, fCh)
		}
	}
	if !fr.Done() {
		t.Fatal("file reader not done when string reader is")
	}
}

func TestFileReaderStripsBOM(t *testing.T) {
	src := "\xEF\xBB\xBFhello"
	fr, err := NewFile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if got := fr.Peek(0); got != 'h' {
		t.Fatalf("Peek(0) = %q, want 'h' (BOM should be stripped)", got)
	}
}

func TestFileReaderLookahead(t *testing.T) {
	fr, err := NewFile(strings.NewReader("0x1F"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if fr.Peek(0) != '0' || fr.Peek(1) != 'x' || fr.Peek(2) != '1' {
		t.Fatalf("3-rune lookahead failed: %q %q %q", fr.Peek(0), fr.Peek(1), fr.Peek(2))
	}
}
