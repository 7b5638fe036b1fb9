package parser

import (
	"github.com/orbitlang/orbitc/internal/ast"
	"github.com/orbitlang/orbitc/internal/token"
)

var primitiveTypeTokens = map[token.Kind]bool{
	token.Int8: true, token.Int16: true, token.Int32: true, token.Int64: true,
	token.UInt8: true, token.UInt16: true, token.UInt32: true, token.UInt64: true,
	token.Float32: true, token.Float64: true,
	token.Char: true, token.Bool: true, token.StringType: true,
}

func (p *Parser) registerTypeTables() {
	for k := range primitiveTypeTokens {
		p.typePrefixFns[k] = parsePrimitiveType
	}
	p.typePrefixFns[token.Identifier] = parseSymbolType
	p.typePrefixFns[token.Ptr] = parsePointerType
	p.typePrefixFns[token.Func] = parseFunctionType
	p.typePrefixFns[token.Aggregate] = parseAnonymousAggregateType
	p.typePrefixFns[token.LParen] = parseGroupedType
	p.typePrefixFns[token.LBracket] = parseArrayTypeLeadingBracket

	p.typeInfixFns[token.At] = parseGenericType
}

// ParseType mirrors ParseExpression's loop over the type tables (spec
// §4.3: "Type parsing mirrors expression parsing with its own tables").
func (p *Parser) ParseType(minBP int) ast.TypeNode {
	prefix, ok := p.typePrefixFns[p.curTok.Kind]
	if !ok {
		p.addError(p.curTok.Pos(), "expected a type, got %s %q", p.curTok.Kind, p.curTok.Lexeme)
		pos := p.curTok.Pos()
		p.advance()
		return &ast.SymbolType{TypeBase: ast.TypeBase{Position: pos}, Name: "<error>"}
	}
	left := prefix(p)
	for prec := p.getPrecedence(p.curTok.Kind); minBP < prec; prec = p.getPrecedence(p.curTok.Kind) {
		infix, ok := p.typeInfixFns[p.curTok.Kind]
		if !ok {
			break
		}
		left = infix(p, left)
	}
	return left
}

func parsePrimitiveType(p *Parser) ast.TypeNode {
	tok := p.curTok
	p.advance()
	return &ast.SymbolType{TypeBase: ast.TypeBase{Position: tok.Pos()}, Name: tok.Kind.String(), Primitive: true}
}

func parseSymbolType(p *Parser) ast.TypeNode {
	tok := p.curTok
	p.advance()
	return &ast.SymbolType{TypeBase: ast.TypeBase{Position: tok.Pos()}, Name: tok.Lexeme}
}

// parsePointerType handles `ptr [mut] Pointee`.
func parsePointerType(p *Parser) ast.TypeNode {
	pos := p.curTok.Pos()
	p.advance() // 'ptr'
	mut := false
	if p.curIs(token.Mut) {
		mut = true
		p.advance()
	}
	pointee := p.ParseType(Unary)
	return &ast.PointerType{TypeBase: ast.TypeBase{Position: pos}, Pointee: pointee, Mut: mut}
}

// parseFunctionType handles `func(types) -> T`.
func parseFunctionType(p *Parser) ast.TypeNode {
	pos := p.curTok.Pos()
	p.advance() // 'func'
	p.expect(token.LParen)
	var params []ast.TypeNode
	var muts []bool
	for !p.curIs(token.RParen) && !p.curIs(token.EOF) {
		mut := false
		if p.curIs(token.Mut) {
			mut = true
			p.advance()
		}
		params = append(params, p.ParseType(Default))
		muts = append(muts, mut)
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RParen)
	var ret ast.TypeNode
	if p.curIs(token.Arrow) {
		p.advance()
		ret = p.ParseType(Default)
	}
	return &ast.FunctionType{TypeBase: ast.TypeBase{Position: pos}, ParamTypes: params, ParamMut: muts, Return: ret}
}

// parseAnonymousAggregateType handles `aggregate { T, T, ... }`.
func parseAnonymousAggregateType(p *Parser) ast.TypeNode {
	pos := p.curTok.Pos()
	p.advance() // 'aggregate'
	p.expect(token.LBrace)
	var fields []ast.TypeNode
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		fields = append(fields, p.ParseType(Default))
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBrace)
	return &ast.AggregateType{TypeBase: ast.TypeBase{Position: pos}, FieldTypes: fields}
}

func parseGroupedType(p *Parser) ast.TypeNode {
	p.advance() // '('
	inner := p.ParseType(Default)
	p.expect(token.RParen)
	return inner
}

// parseArrayTypeLeadingBracket handles `[` as a type nud: Orbit writes
// arrays as `[Elem]` or `[Elem; length]`.
func parseArrayTypeLeadingBracket(p *Parser) ast.TypeNode {
	pos := p.curTok.Pos()
	p.advance() // '['
	elem := p.ParseType(Default)
	var length ast.Expression
	if p.curIs(token.Semicolon) {
		p.advance()
		length = p.ParseExpression(Default)
	}
	p.expect(token.RBracket)
	return &ast.ArrayType{TypeBase: ast.TypeBase{Position: pos}, Elem: elem, Length: length}
}

// parseGenericType handles `@` as a led on a type: `Base@[T1, T2, ...]`.
func parseGenericType(p *Parser, left ast.TypeNode) ast.TypeNode {
	pos := left.Pos()
	p.advance() // '@'
	p.expect(token.LBracket)
	var args []ast.TypeNode
	for !p.curIs(token.RBracket) && !p.curIs(token.EOF) {
		args = append(args, p.ParseType(Default))
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBracket)
	return &ast.GenericType{TypeBase: ast.TypeBase{Position: pos}, Base: left, Args: args}
}
