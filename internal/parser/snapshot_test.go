package parser

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/orbitlang/orbitc/internal/lexer"
	"github.com/orbitlang/orbitc/internal/reader"
)

// TestCanonicalStringSnapshots snapshots the parser's canonical AST
// string form for a handful of representative programs, the same way
// fixture output gets snapshotted with go-snaps.
func TestCanonicalStringSnapshots(t *testing.T) {
	cases := map[string]string{
		"arithmetic_precedence": "8 - 4 + 6 * 2 // 5 % 3 ^^ 2 ^^ 2 / 7 as float32;",
		"typed_variable":        "const baz : public uint32 = foo + 10 ^^ 2 * bar + foo % 7 + foo^^2;",
		"do_while":              "do { x = x + 1; y = y - 1; } while (x < 10);",
		"generics":              "func id[T](x: T) -> T { return x; } let r = id@[int32](7);",
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			l := lexer.New(reader.NewString(src))
			p := New(l)
			file := p.ParseFile()
			if p.HadError() {
				t.Fatalf("unexpected parse errors: %v", p.Errors())
			}
			snaps.MatchSnapshot(t, name, file.Program.String())
		})
	}
}
