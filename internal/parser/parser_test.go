package parser

import (
	"testing"

	"github.com/orbitlang/orbitc/internal/ast"
	"github.com/orbitlang/orbitc/internal/lexer"
	"github.com/orbitlang/orbitc/internal/reader"
)

func parseExpr(t *testing.T, src string) (ast.Expression, *Parser) {
	t.Helper()
	l := lexer.New(reader.NewString(src))
	p := New(l)
	expr := p.ParseExpression(Default)
	return expr, p
}

func parseFile(t *testing.T, src string) (*ast.ParsedFile, *Parser) {
	t.Helper()
	l := lexer.New(reader.NewString(src))
	p := New(l)
	return p.ParseFile(), p
}

// TestArithmeticPrecedenceScenario checks an end-to-end parse of a deep
// mixed-operator arithmetic expression.
func TestArithmeticPrecedenceScenario(t *testing.T) {
	file, p := parseFile(t, "8 - 4 + 6 * 2 // 5 % 3 ^^ 2 ^^ 2 / 7 as float32;")
	if p.HadError() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if len(file.Program.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(file.Program.Statements))
	}
	want := "(((8 - 4) + ((((6 * 2) // 5) % (3 ^^ (2 ^^ 2))) / 7)) as float32);"
	if got := file.Program.Statements[0].String(); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

// TestTypedVariableScenario checks an end-to-end parse of a visibility-
// qualified typed constant declaration.
func TestTypedVariableScenario(t *testing.T) {
	file, p := parseFile(t, "const baz : public uint32 = foo + 10 ^^ 2 * bar + foo % 7 + foo^^2;")
	if p.HadError() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	want := "(const baz: public uint32 = (((foo + ((10 ^^ 2) * bar)) + (foo % 7)) + (foo ^^ 2)));"
	if got := file.Program.Statements[0].String(); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

// TestAggregateDeclarationAndInstantiationScenario checks an end-to-end
// parse of an aggregate declaration followed by a field-keyed
// instantiation.
func TestAggregateDeclarationAndInstantiationScenario(t *testing.T) {
	src := "aggregate Point { x: int32; y: int32; }\nlet p1 = Point{ x = 10, y = 20 };"
	file, p := parseFile(t, src)
	if p.HadError() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if len(file.Program.Statements) != 2 {
		t.Fatalf("want 2 statements, got %d", len(file.Program.Statements))
	}
	decl, ok := file.Program.Statements[1].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement 1 is %T, want *ast.VariableDeclaration", file.Program.Statements[1])
	}
	inst, ok := decl.Value.(*ast.AggregateInstantiation)
	if !ok {
		t.Fatalf("declaration value is %T, want *ast.AggregateInstantiation", decl.Value)
	}
	if inst.Name != "Point" || len(inst.Fields) != 2 {
		t.Fatalf("got %+v", inst)
	}
}

// TestMutabilityScenario checks that reassigning a const parses
// structurally fine (the "cannot reassign constant" diagnostic itself
// is the analyzer's job, not the parser's).
func TestMutabilityScenario(t *testing.T) {
	file, p := parseFile(t, "const z = 3; z = 4;")
	if p.HadError() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if len(file.Program.Statements) != 2 {
		t.Fatalf("want 2 statements, got %d", len(file.Program.Statements))
	}
	exprStmt, ok := file.Program.Statements[1].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement 1 is %T", file.Program.Statements[1])
	}
	if _, ok := exprStmt.Expr.(*ast.Assignment); !ok {
		t.Fatalf("expected an Assignment, got %T", exprStmt.Expr)
	}
}

// TestDoWhileScenario checks an end-to-end parse of a do-while loop.
func TestDoWhileScenario(t *testing.T) {
	file, p := parseFile(t, "do { ++i; print(i); } while (i < 5);")
	if p.HadError() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	loop, ok := file.Program.Statements[0].(*ast.WhileLoop)
	if !ok {
		t.Fatalf("statement 0 is %T, want *ast.WhileLoop", file.Program.Statements[0])
	}
	if !loop.IsDoWhile {
		t.Fatal("expected IsDoWhile = true")
	}
	if len(loop.Body.Statements) != 2 {
		t.Fatalf("want 2 statements in do-while body, got %d", len(loop.Body.Statements))
	}
}

// TestGenericsScenario checks an end-to-end parse of a generic function
// declaration and an explicit-type-argument call site, structurally
// (types are resolved by the analyzer, not the parser).
func TestGenericsScenario(t *testing.T) {
	src := "func id[T](x: T) -> T { return x; }  let r = id@[int32](7);"
	file, p := parseFile(t, src)
	if p.HadError() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	fn, ok := file.Program.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("statement 0 is %T", file.Program.Statements[0])
	}
	if len(fn.GenericParams) != 1 || fn.GenericParams[0] != "T" {
		t.Fatalf("got generic params %v", fn.GenericParams)
	}
	decl := file.Program.Statements[1].(*ast.VariableDeclaration)
	call, ok := decl.Value.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("value is %T, want *ast.FunctionCall", decl.Value)
	}
	generic, ok := call.Callee.(*ast.Generic)
	if !ok {
		t.Fatalf("callee is %T, want *ast.Generic", call.Callee)
	}
	if generic.Ident.Name != "id" || len(generic.TypeArgs) != 1 {
		t.Fatalf("got %+v", generic)
	}
}

func TestExponentiationRightAssociative(t *testing.T) {
	expr, p := parseExpr(t, "2 ^^ 3 ^^ 2")
	if p.HadError() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	want := "(2 ^^ (3 ^^ 2))"
	if got := expr.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestUnaryBinaryArbitration(t *testing.T) {
	cases := map[string]string{
		"-x":    "(-x)",
		"a - b": "(a - b)",
		"a & b": "(a & b)",
	}
	for src, want := range cases {
		expr, p := parseExpr(t, src)
		if p.HadError() {
			t.Fatalf("%q: unexpected errors: %v", src, p.Errors())
		}
		if got := expr.String(); got != want {
			t.Fatalf("%q: got %s, want %s", src, got, want)
		}
	}
}

func TestAddressOfInCallArguments(t *testing.T) {
	expr, p := parseExpr(t, "f(&x)")
	if p.HadError() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	call := expr.(*ast.FunctionCall)
	prefix, ok := call.Args[0].(*ast.Prefix)
	if !ok {
		t.Fatalf("arg is %T, want *ast.Prefix", call.Args[0])
	}
	if prefix.Operator != "&" {
		t.Fatalf("operator = %q, want &", prefix.Operator)
	}
}

func TestBlockPrecursorDisambiguatesBraceFromAggregateLiteral(t *testing.T) {
	file, p := parseFile(t, "if (ready) { doStuff(); }")
	if p.HadError() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	ifStmt, ok := file.Program.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("statement is %T, want *ast.If", file.Program.Statements[0])
	}
	if _, ok := ifStmt.Condition.(*ast.Identifier); !ok {
		t.Fatalf("condition is %T, want a bare Identifier (not an aggregate instantiation)", ifStmt.Condition)
	}
	if len(ifStmt.Then.Statements) != 1 {
		t.Fatalf("want 1 statement in if-body, got %d", len(ifStmt.Then.Statements))
	}
}

func TestAggregateInstantiationOutsideBlockPrecursor(t *testing.T) {
	expr, p := parseExpr(t, "Point { x = 1 }")
	if p.HadError() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if _, ok := expr.(*ast.AggregateInstantiation); !ok {
		t.Fatalf("got %T, want *ast.AggregateInstantiation", expr)
	}
}

func TestNestedBlockCommentsAreFullySkipped(t *testing.T) {
	file, p := parseFile(t, "let x = 1; /* a /* b */ c */ let y = 2;")
	if p.HadError() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(file.Program.Statements) != 2 {
		t.Fatalf("want 2 statements, got %d", len(file.Program.Statements))
	}
}

func TestDuplicateAggregateFieldIsDiagnosedButContinues(t *testing.T) {
	_, p := parseExpr(t, "Point { x = 1, x = 2 }")
	if !p.HadError() {
		t.Fatal("expected a duplicate-field diagnostic")
	}
}

func TestModuleAndImportHeader(t *testing.T) {
	file, p := parseFile(t, "module app; import std::io as io; let x = 1;")
	if p.HadError() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if file.ModuleName != "app" {
		t.Fatalf("ModuleName = %q, want app", file.ModuleName)
	}
	if len(file.Imports) != 1 {
		t.Fatalf("want 1 import, got %d", len(file.Imports))
	}
	imp := file.Imports[0]
	if imp.Path[0] != "std" || imp.Path[1] != "io" || imp.Alias != "io" {
		t.Fatalf("got %+v", imp)
	}
}

func TestMismatchedTokenRecordsErrorAndContinues(t *testing.T) {
	file, p := parseFile(t, "let x = ; let y = 2;")
	if !p.HadError() {
		t.Fatal("expected a parse error for the missing initializer expression")
	}
	if len(file.Program.Statements) == 0 {
		t.Fatal("expected the parser to continue producing statements after the error")
	}
}
