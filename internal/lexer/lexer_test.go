package lexer

import (
	"testing"

	"github.com/orbitlang/orbitc/internal/reader"
	"github.com/orbitlang/orbitc/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	l := New(reader.NewString(src))
	var got []token.Kind
	for {
		tok := l.Consume()
		got = append(got, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	return got
}

func assertKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	got := kinds(t, src)
	if len(got) != len(want) {
		t.Fatalf("lexing %q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lexing %q: token %d = %v, want %v (all: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	assertKinds(t, "let x = 5", token.Let, token.Identifier, token.Assign, token.IntegerLiteral, token.EOF)
}

func TestLineComment(t *testing.T) {
	assertKinds(t, "let x # trailing comment\n= 1", token.Let, token.Identifier, token.Assign, token.IntegerLiteral, token.EOF)
}

func TestNestedBlockComment(t *testing.T) {
	assertKinds(t, "1 /* outer /* inner */ still outer */ 2", token.IntegerLiteral, token.IntegerLiteral, token.EOF)
}

func TestUnterminatedBlockCommentIsError(t *testing.T) {
	l := New(reader.NewString("1 /* never closed"))
	l.Consume() // 1
	l.Consume() // EOF
	if !l.HadError() {
		t.Fatal("expected an error for an unterminated block comment")
	}
}

func TestDecimalIntegerAndFloat(t *testing.T) {
	assertKinds(t, "42 3.14 2.5e10 1e-3", token.IntegerLiteral, token.FloatLiteral, token.FloatLiteral, token.FloatLiteral, token.EOF)
}

func TestNumberSuffixes(t *testing.T) {
	cases := []string{"5i8", "5u16", "5i64", "1.0f32", "2.0f64"}
	for _, c := range cases {
		l := New(reader.NewString(c))
		tok := l.Consume()
		if l.HadError() {
			t.Errorf("%q: unexpected lexer errors: %v", c, l.Errors())
		}
		if tok.Lexeme != c {
			t.Errorf("%q: lexeme = %q", c, tok.Lexeme)
		}
	}
}

func TestInvalidSuffixIsError(t *testing.T) {
	l := New(reader.NewString("5i7"))
	l.Consume()
	if !l.HadError() {
		t.Fatal("expected an error for invalid integer suffix width 7")
	}
}

func TestHexBinaryOctalLiterals(t *testing.T) {
	assertKinds(t, "0x1F 0b101 0o17", token.IntegerLiteral, token.IntegerLiteral, token.IntegerLiteral, token.EOF)
}

func TestHexFloatLiteral(t *testing.T) {
	l := New(reader.NewString("0x1.8p3"))
	tok := l.Consume()
	if tok.Kind != token.FloatLiteral {
		t.Fatalf("kind = %v, want FloatLiteral", tok.Kind)
	}
	if l.HadError() {
		t.Fatalf("unexpected errors: %v", l.Errors())
	}
}

func TestUnderscoreDigitSeparators(t *testing.T) {
	l := New(reader.NewString("1_000_000"))
	tok := l.Consume()
	if tok.Lexeme != "1_000_000" || tok.Kind != token.IntegerLiteral {
		t.Fatalf("got %+v", tok)
	}
}

func TestStringLiteralWithEscapes(t *testing.T) {
	l := New(reader.NewString(`"a\tbA\\c"`))
	tok := l.Consume()
	if tok.Kind != token.StrLiteral {
		t.Fatalf("kind = %v", tok.Kind)
	}
	want := "a\tbA\\c"
	if tok.Lexeme != want {
		t.Fatalf("lexeme = %q, want %q", tok.Lexeme, want)
	}
	if l.HadError() {
		t.Fatalf("unexpected errors: %v", l.Errors())
	}
}

func TestStringLineContinuation(t *testing.T) {
	l := New(reader.NewString("\"ab\\\ncd\""))
	tok := l.Consume()
	if tok.Kind != token.StrLiteral {
		t.Fatalf("kind = %v", tok.Kind)
	}
	if tok.Lexeme != "abcd" {
		t.Fatalf("lexeme = %q, want %q", tok.Lexeme, "abcd")
	}
}

func TestUnterminatedStringIsInvalid(t *testing.T) {
	l := New(reader.NewString(`"abc`))
	tok := l.Consume()
	if !tok.Invalid {
		t.Fatal("expected the token to be marked invalid")
	}
	if !l.HadError() {
		t.Fatal("expected a lexer error")
	}
}

func TestCharLiteral(t *testing.T) {
	l := New(reader.NewString(`'a'`))
	tok := l.Consume()
	if tok.Kind != token.CharLiteral || tok.Lexeme != "a" {
		t.Fatalf("got %+v", tok)
	}
}

func TestCharLiteralMustBeSingleCodepoint(t *testing.T) {
	l := New(reader.NewString(`'ab'`))
	l.Consume()
	if !l.HadError() {
		t.Fatal("expected an error for a multi-codepoint char literal")
	}
}

func TestSurrogateEscapeIsError(t *testing.T) {
	l := New(reader.NewString(`"\uD800"`))
	l.Consume()
	if !l.HadError() {
		t.Fatal("expected an error for a surrogate codepoint escape")
	}
}

func TestOperatorMaximalMunch(t *testing.T) {
	assertKinds(t, "a<<=b", token.Identifier, token.ShlAssign, token.Identifier, token.EOF)
	assertKinds(t, "a<<b", token.Identifier, token.Shl, token.Identifier, token.EOF)
	assertKinds(t, "a<b", token.Identifier, token.Less, token.Identifier, token.EOF)
	assertKinds(t, "a<=b", token.Identifier, token.LessEq, token.Identifier, token.EOF)
	assertKinds(t, "a++", token.Identifier, token.Inc, token.EOF)
	assertKinds(t, "a+=1", token.Identifier, token.PlusAssign, token.IntegerLiteral, token.EOF)
	assertKinds(t, "a::b", token.Identifier, token.ScopeRes, token.Identifier, token.EOF)
	assertKinds(t, "1...2", token.IntegerLiteral, token.Ellipsis, token.IntegerLiteral, token.EOF)
	assertKinds(t, "a->b", token.Identifier, token.Arrow, token.Identifier, token.EOF)
}

func TestStarAlwaysLexesAsBinary(t *testing.T) {
	// The lexer never synthesizes Dereference; that is the parser's job
	// when Star appears in prefix position.
	assertKinds(t, "**p", token.Star, token.Star, token.Identifier, token.EOF)
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New(reader.NewString("a b"))
	first := l.Peek()
	second := l.Peek()
	if first != second {
		t.Fatalf("Peek() not idempotent: %+v vs %+v", first, second)
	}
	consumed := l.Consume()
	if consumed != first {
		t.Fatalf("Consume() after Peek() = %+v, want %+v", consumed, first)
	}
}

func TestDoneAfterEOF(t *testing.T) {
	l := New(reader.NewString(""))
	if l.Done() {
		t.Fatal("Done() true before EOF token produced")
	}
	l.Consume()
	if !l.Done() {
		t.Fatal("Done() false after EOF token consumed")
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New(reader.NewString("$"))
	tok := l.Consume()
	if tok.Kind != token.Illegal {
		t.Fatalf("kind = %v, want Illegal", tok.Kind)
	}
	if !l.HadError() {
		t.Fatal("expected an error for an illegal character")
	}
}
