// Package parser implements a Pratt (top-down operator precedence)
// parser over the token stream, producing the ast package's tagged
// node tree. Dispatch runs through four maps keyed by token kind, plus
// a parallel pair of tables for type parsing, driving Orbit's own
// precedence ladder and statement catalogue.
package parser

import (
	"fmt"

	"github.com/orbitlang/orbitc/internal/ast"
	"github.com/orbitlang/orbitc/internal/lexer"
	"github.com/orbitlang/orbitc/internal/token"
)

// Precedence levels, lowest to highest.
const (
	Default = iota
	ArrowPrec
	AssignPrec
	TypeCastPrec = AssignPrec
	LogicalOr
	LogicalAnd
	BitwiseOr
	BitwiseXor
	BitwiseAnd
	Equality
	Relational
	BitwiseShift
	Additive
	Multiplicative
	Exponential
	Unary
	PostfixPrec
	Member
	ScopeResolutionPrec
	GenericPrec = ScopeResolutionPrec
	Primary
)

var precedences = map[token.Kind]int{
	token.Arrow:       ArrowPrec,
	token.Assign:       AssignPrec,
	token.PlusAssign:   AssignPrec,
	token.MinusAssign:  AssignPrec,
	token.StarAssign:   AssignPrec,
	token.SlashAssign:  AssignPrec,
	token.IntSlashAssign: AssignPrec,
	token.PercentAssign: AssignPrec,
	token.PowAssign:    AssignPrec,
	token.AmpAssign:    AssignPrec,
	token.PipeAssign:   AssignPrec,
	token.CaretAssign:  AssignPrec,
	token.ShlAssign:    AssignPrec,
	token.ShrAssign:    AssignPrec,
	token.As:           TypeCastPrec,

	token.OrOr:   LogicalOr,
	token.AndAnd: LogicalAnd,

	token.Pipe:  BitwiseOr,
	token.Caret: BitwiseXor,
	token.Amp:   BitwiseAnd,

	token.Eq:    Equality,
	token.NotEq: Equality,

	token.Less:      Relational,
	token.LessEq:    Relational,
	token.Greater:   Relational,
	token.GreaterEq: Relational,

	token.Shl: BitwiseShift,
	token.Shr: BitwiseShift,

	token.Plus:  Additive,
	token.Minus: Additive,

	token.Star:     Multiplicative,
	token.Slash:    Multiplicative,
	token.IntSlash: Multiplicative,
	token.Percent:  Multiplicative,

	token.Pow: Exponential,

	token.Inc: PostfixPrec,
	token.Dec: PostfixPrec,

	token.Dot:      Member,
	token.LBracket: Member,
	token.LParen:   Member,
	token.LBrace:   Member,

	token.ScopeRes: ScopeResolutionPrec,
	token.At:       GenericPrec,
}

// unaryCounterpart maps a shared prefix/binary symbol to its unary
// form (`+→UnaryPlus, -→UnaryMinus, &→AddressOf, *→Dereference`). The
// lexer never produces these forms directly.
var unaryCounterpart = map[token.Kind]token.Kind{
	token.Plus:  token.UnaryPlus,
	token.Minus: token.UnaryMinus,
	token.Amp:   token.AddressOf,
	token.Star:  token.Dereference,
}

type prefixParseFn func(p *Parser) ast.Expression
type infixParseFn func(p *Parser, left ast.Expression) ast.Expression

type typePrefixParseFn func(p *Parser) ast.TypeNode
type typeInfixParseFn func(p *Parser, left ast.TypeNode) ast.TypeNode

type stmtParseFn func(p *Parser) ast.Statement

// Error is a single parse diagnostic.
type Error struct {
	Message string
	Pos     token.Position
}

func (e Error) String() string { return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message) }

// Parser consumes a lexer.Lexer's token stream and produces an
// ast.ParsedFile.
type Parser struct {
	l *lexer.Lexer

	curTok  token.Token
	prevTok token.Token
	hasPrev bool

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn

	typePrefixFns map[token.Kind]typePrefixParseFn
	typeInfixFns  map[token.Kind]typeInfixParseFn

	stmtFns map[token.Kind]stmtParseFn

	// parsingBlockPrecursor is set while parsing the condition of
	// if/while/switch/for and cleared after the closing `)`; it
	// resolves the struct-literal-vs-block ambiguity.
	parsingBlockPrecursor bool

	errors   []Error
	comments []string
}

// New constructs a Parser wired with the full nud/led/statement tables.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.prefixFns = map[token.Kind]prefixParseFn{}
	p.infixFns = map[token.Kind]infixParseFn{}
	p.typePrefixFns = map[token.Kind]typePrefixParseFn{}
	p.typeInfixFns = map[token.Kind]typeInfixParseFn{}
	p.stmtFns = map[token.Kind]stmtParseFn{}
	p.registerExpressionTables()
	p.registerTypeTables()
	p.registerStatementTable()
	p.advance()
	return p
}

func (p *Parser) Errors() []Error { return p.errors }
func (p *Parser) HadError() bool  { return len(p.errors) > 0 }

func (p *Parser) addError(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, Error{Message: fmt.Sprintf(format, args...), Pos: pos})
}

// advance pulls the next token from the lexer, retaining the previous
// current token for unary-context detection.
func (p *Parser) advance() {
	p.prevTok = p.curTok
	p.hasPrev = true
	p.curTok = p.l.Consume()
}

func (p *Parser) curIs(k token.Kind) bool { return p.curTok.Kind == k }

func (p *Parser) peekKind() token.Kind { return p.l.Peek().Kind }

// expect consumes the current token if it matches k, else records an
// error and leaves the cursor in place so the caller can still make
// forward progress.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.curTok.Kind != k {
		p.addError(p.curTok.Pos(), "expected %s, got %s %q", k, p.curTok.Kind, p.curTok.Lexeme)
		return p.curTok
	}
	tok := p.curTok
	p.advance()
	return tok
}

func (p *Parser) getPrecedence(k token.Kind) int {
	if prec, ok := precedences[k]; ok {
		return prec
	}
	return Default
}

// inUnaryContext reports whether the current token should be read as a
// prefix operator: previous token is absent, a left paren/bracket/
// brace, a comma, or an operator other than `++`/`--`/`]`.
func (p *Parser) inUnaryContext() bool {
	if !p.hasPrev {
		return true
	}
	switch p.prevTok.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Identifier,
		token.IntegerLiteral, token.FloatLiteral, token.StrLiteral, token.CharLiteral,
		token.True, token.False, token.Inc, token.Dec:
		return false
	default:
		return true
	}
}

// ParseFile parses an entire translation unit: optional module
// declaration, optional imports, then the top-level statement block.
func (p *Parser) ParseFile() *ast.ParsedFile {
	file := &ast.ParsedFile{Program: &ast.Program{}}

	if p.curIs(token.Module) {
		file.ModuleName = p.parseModuleDecl()
	}
	for p.curIs(token.Import) {
		file.Imports = append(file.Imports, p.parseImportDecl())
	}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			file.Program.Statements = append(file.Program.Statements, stmt)
		}
	}
	file.Comments = p.comments
	return file
}

func (p *Parser) parseModuleDecl() string {
	p.advance() // 'module'
	name := p.expect(token.Identifier).Lexeme
	p.expect(token.Semicolon)
	return name
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	pos := p.curTok.Pos()
	p.advance() // 'import'
	decl := &ast.ImportDecl{}
	decl.Position = pos
	decl.Path = append(decl.Path, p.expect(token.Identifier).Lexeme)
	for p.curIs(token.ScopeRes) {
		p.advance()
		decl.Path = append(decl.Path, p.expect(token.Identifier).Lexeme)
	}
	if p.curIs(token.As) {
		p.advance()
		decl.Alias = p.expect(token.Identifier).Lexeme
	}
	p.expect(token.Semicolon)
	return decl
}

// ParseExpression parses a single expression at the given minimum
// binding power: apply any unary reinterpretation, parse the prefix
// term, then fold in infix/postfix operators while their precedence
// clears minBP.
func (p *Parser) ParseExpression(minBP int) ast.Expression {
	pos := p.curTok.Pos()
	kind := p.curTok.Kind
	prec := minBP

	if uk, ok := unaryCounterpart[kind]; ok && p.inUnaryContext() {
		kind = uk
		if minBP < Unary {
			prec = Unary
		}
	}

	prefix, ok := p.prefixFns[kind]
	if !ok {
		p.addError(pos, "no prefix parse function for %s", p.curTok.Kind)
		p.advance()
		return &ast.Identifier{ExprBase: ast.ExprBase{Position: pos}, Name: "<error>"}
	}

	p.curTok.Kind = kind // rewrite in place so the prefix fn sees the unary form
	left := prefix(p)

	for !p.curIs(token.Semicolon) && prec < p.getPrecedence(p.curTok.Kind) {
		if p.curIs(token.LBrace) && !p.canStartAggregateInstantiation(left) {
			break
		}
		infix, ok := p.infixFns[p.curTok.Kind]
		if !ok {
			break
		}
		left = infix(p, left)
	}
	return left
}

// canStartAggregateInstantiation resolves the struct-literal-vs-block
// ambiguity: inside a block-precursor context (parsing an
// if/while/switch/for/repeat
// condition), `{` always ends the expression; outside it, `{` begins
// an aggregate instantiation only when the left operand is a bare
// Identifier.
func (p *Parser) canStartAggregateInstantiation(left ast.Expression) bool {
	if p.parsingBlockPrecursor {
		return false
	}
	_, ok := left.(*ast.Identifier)
	return ok
}
