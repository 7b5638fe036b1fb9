package ast

import (
	"testing"

	"github.com/orbitlang/orbitc/internal/token"
)

func ident(name string) *Identifier {
	return &Identifier{Name: name}
}

func num(raw string) *NumberLiteral {
	return &NumberLiteral{Raw: raw}
}

func bin(left Expression, op string, right Expression) *Binary {
	return &Binary{Left: left, Operator: op, Right: right}
}

// TestArithmeticPrecedenceCanonicalString checks canonical-string
// rendering of a deep precedence tree:
// `8 - 4 + 6 * 2 // 5 % 3 ^^ 2 ^^ 2 / 7 as float32;`
func TestArithmeticPrecedenceCanonicalString(t *testing.T) {
	pow := bin(num("2"), "^^", num("2"))
	inner := bin(num("3"), "^^", pow)
	mod := bin(bin(bin(num("6"), "*", num("2")), "//", num("5")), "%", inner)
	div := bin(mod, "/", num("7"))
	sum := bin(bin(num("8"), "-", num("4")), "+", div)
	cast := &TypeCast{Value: sum, Target: &SymbolType{Name: "float32", Primitive: true}}
	stmt := &ExpressionStatement{Expr: cast}

	want := "(((8 - 4) + ((((6 * 2) // 5) % (3 ^^ (2 ^^ 2))) / 7)) as float32);"
	if got := stmt.String(); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

// TestTypedVariableCanonicalString checks canonical-string rendering of
// a typed, visibility-qualified declaration with a chained expression:
// `const baz : public uint32 = foo + 10 ^^ 2 * bar + foo % 7 + foo^^2;`
func TestTypedVariableCanonicalString(t *testing.T) {
	term1 := bin(ident("foo"), "+", bin(bin(num("10"), "^^", num("2")), "*", ident("bar")))
	term2 := bin(term1, "+", bin(ident("foo"), "%", num("7")))
	value := bin(term2, "+", bin(ident("foo"), "^^", num("2")))

	decl := &VariableDeclaration{
		IsConst:    true,
		Name:       "baz",
		Visibility: VisibilityPublic,
		Type:       &SymbolType{Name: "uint32", Primitive: true},
		Value:      value,
	}

	want := "(const baz: public uint32 = (((foo + ((10 ^^ 2) * bar)) + (foo % 7)) + (foo ^^ 2)));"
	if got := decl.String(); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestAggregateInstantiationString(t *testing.T) {
	inst := &AggregateInstantiation{
		Name: "Point",
		Fields: []FieldInit{
			{Name: "x", Value: num("10")},
			{Name: "y", Value: num("20")},
		},
	}
	want := "Point{ x = 10, y = 20 }"
	if got := inst.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestDoWhileString(t *testing.T) {
	loop := &WhileLoop{
		IsDoWhile: true,
		Condition: bin(ident("i"), "<", num("5")),
		Body: &Block{Statements: []Statement{
			&ExpressionStatement{Expr: &Postfix{Left: ident("i"), Operator: "++"}},
		}},
	}
	want := "do { (i++); } while (i < 5);"
	if got := loop.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestPositionPropagatesThroughEmbedding(t *testing.T) {
	b := &Break{}
	b.Position = token.Position{Line: 3, Column: 7}
	if got := b.Pos(); got.Line != 3 || got.Column != 7 {
		t.Fatalf("Pos() = %+v, want {3 7}", got)
	}
}
