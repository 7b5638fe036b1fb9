package parser

import (
	"strconv"
	"strings"

	"github.com/orbitlang/orbitc/internal/ast"
	"github.com/orbitlang/orbitc/internal/token"
)

func (p *Parser) registerExpressionTables() {
	p.prefixFns[token.Identifier] = parseIdentifier
	p.prefixFns[token.IntegerLiteral] = parseNumber
	p.prefixFns[token.FloatLiteral] = parseNumber
	p.prefixFns[token.StrLiteral] = parseStringLiteral
	p.prefixFns[token.CharLiteral] = parseCharLiteral
	p.prefixFns[token.True] = parseBool
	p.prefixFns[token.False] = parseBool
	p.prefixFns[token.LParen] = parseGroupedOrNil
	p.prefixFns[token.LBracket] = parseArrayLiteral
	p.prefixFns[token.LBrace] = parseAggregateLiteral
	p.prefixFns[token.Not] = parsePrefix
	p.prefixFns[token.Tilde] = parsePrefix
	p.prefixFns[token.Inc] = parsePrefix
	p.prefixFns[token.Dec] = parsePrefix
	p.prefixFns[token.UnaryPlus] = parsePrefix
	p.prefixFns[token.UnaryMinus] = parsePrefix
	p.prefixFns[token.AddressOf] = parsePrefix
	p.prefixFns[token.Dereference] = parsePrefix

	binaryOps := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.IntSlash, token.Percent, token.Pow,
		token.Less, token.LessEq, token.Greater, token.GreaterEq, token.Eq, token.NotEq,
		token.AndAnd, token.OrOr,
		token.Amp, token.Pipe, token.Caret, token.Shl, token.Shr,
	}
	for _, op := range binaryOps {
		p.infixFns[op] = parseBinary
	}

	assignOps := []token.Kind{
		token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
		token.IntSlashAssign, token.PercentAssign, token.PowAssign, token.AmpAssign, token.PipeAssign,
		token.CaretAssign, token.ShlAssign, token.ShrAssign,
	}
	for _, op := range assignOps {
		p.infixFns[op] = parseAssignment
	}

	p.infixFns[token.Inc] = parsePostfix
	p.infixFns[token.Dec] = parsePostfix
	p.infixFns[token.LParen] = parseCall
	p.infixFns[token.LBracket] = parseIndex
	p.infixFns[token.Dot] = parseMemberAccess
	p.infixFns[token.ScopeRes] = parseScopeResolution
	p.infixFns[token.LBrace] = parseAggregateInstantiation
	p.infixFns[token.At] = parseGenericArgs
	p.infixFns[token.As] = parseTypeCast
}

func parseIdentifier(p *Parser) ast.Expression {
	tok := p.curTok
	p.advance()
	return &ast.Identifier{ExprBase: ast.ExprBase{Position: tok.Pos()}, Name: tok.Lexeme}
}

// parseNumber decodes the suffix (if any) into a NumberTag, defaulting
// to i32/f64 for untagged literals.
func parseNumber(p *Parser) ast.Expression {
	tok := p.curTok
	p.advance()
	lit := &ast.NumberLiteral{ExprBase: ast.ExprBase{Position: tok.Pos()}, Raw: tok.Lexeme}

	lexeme := tok.Lexeme
	suffix := ""
	for i := len(lexeme) - 1; i >= 0; i-- {
		c := lexeme[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == 'i' || c == 'I' || c == 'u' || c == 'U' || c == 'f' || c == 'F' {
			suffix = strings.ToLower(lexeme[i:])
		}
		break
	}

	isFloat := tok.Kind == token.FloatLiteral
	lit.IsFloat = isFloat
	lit.Tag = tagFromSuffix(suffix, isFloat)

	body := strings.TrimSuffix(lexeme, suffix)
	body = strings.ReplaceAll(body, "_", "")
	if isFloat {
		v, _ := strconv.ParseFloat(strings.TrimPrefix(body, "0x"), 64)
		lit.FValue = v
	} else {
		base := 10
		switch {
		case strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X"):
			base, body = 16, body[2:]
		case strings.HasPrefix(body, "0b") || strings.HasPrefix(body, "0B"):
			base, body = 2, body[2:]
		case strings.HasPrefix(body, "0o") || strings.HasPrefix(body, "0O"):
			base, body = 8, body[2:]
		}
		v, _ := strconv.ParseUint(body, base, 64)
		lit.UValue = v
		lit.IValue = int64(v)
	}
	return lit
}

func tagFromSuffix(suffix string, isFloat bool) ast.NumberTag {
	if suffix == "" {
		if isFloat {
			return ast.NumF64
		}
		return ast.NumI32
	}
	family, width := suffix[:1], suffix[1:]
	switch family {
	case "f":
		if width == "32" {
			return ast.NumF32
		}
		return ast.NumF64
	case "u":
		switch width {
		case "8":
			return ast.NumU8
		case "16":
			return ast.NumU16
		case "32":
			return ast.NumU32
		default:
			return ast.NumU64
		}
	default: // "i"
		switch width {
		case "8":
			return ast.NumI8
		case "16":
			return ast.NumI16
		case "32":
			return ast.NumI32
		default:
			return ast.NumI64
		}
	}
}

func parseStringLiteral(p *Parser) ast.Expression {
	tok := p.curTok
	p.advance()
	return &ast.StringLiteral{ExprBase: ast.ExprBase{Position: tok.Pos()}, Value: tok.Lexeme}
}

func parseCharLiteral(p *Parser) ast.Expression {
	tok := p.curTok
	p.advance()
	var r rune
	for _, rr := range tok.Lexeme {
		r = rr
		break
	}
	return &ast.CharLiteral{ExprBase: ast.ExprBase{Position: tok.Pos()}, Value: r}
}

func parseBool(p *Parser) ast.Expression {
	tok := p.curTok
	p.advance()
	return &ast.BoolLiteral{ExprBase: ast.ExprBase{Position: tok.Pos()}, Value: tok.Kind == token.True}
}

// parseGroupedOrNil handles `(` as a nud: a parenthesized expression.
func parseGroupedOrNil(p *Parser) ast.Expression {
	pos := p.curTok.Pos()
	p.advance() // '('
	inner := p.ParseExpression(Default)
	p.expect(token.RParen)
	return &ast.GroupedExpression{ExprBase: ast.ExprBase{Position: pos}, Inner: inner}
}

// prefixSymbol renders an operator token's display form, preferring the
// original symbol over the unary-form debug names in token.Kind.String
// (e.g. "-" rather than "unary-") so canonical AST strings read as
// source text.
var prefixSymbol = map[token.Kind]string{
	token.UnaryPlus:   "+",
	token.UnaryMinus:  "-",
	token.AddressOf:   "&",
	token.Dereference: "*",
	token.Not:         "!",
	token.Tilde:       "~",
	token.Inc:         "++",
	token.Dec:         "--",
}

func operatorSymbol(k token.Kind) string {
	if s, ok := prefixSymbol[k]; ok {
		return s
	}
	return k.String()
}

func parsePrefix(p *Parser) ast.Expression {
	tok := p.curTok
	p.advance()
	right := p.ParseExpression(Unary)
	return &ast.Prefix{ExprBase: ast.ExprBase{Position: tok.Pos()}, Operator: operatorSymbol(tok.Kind), Right: right}
}

func parsePostfix(p *Parser, left ast.Expression) ast.Expression {
	tok := p.curTok
	p.advance()
	return &ast.Postfix{ExprBase: ast.ExprBase{Position: left.Pos()}, Left: left, Operator: operatorSymbol(tok.Kind)}
}

func parseBinary(p *Parser, left ast.Expression) ast.Expression {
	tok := p.curTok
	prec := p.getPrecedence(tok.Kind)
	p.advance()
	rightBP := prec
	if tok.Kind == token.Pow {
		// Right-associative: advertise a lower right binding power so
		// `a ^^ b ^^ c` parses as `a ^^ (b ^^ c)`.
		rightBP = prec - 1
	}
	right := p.ParseExpression(rightBP)
	return &ast.Binary{ExprBase: ast.ExprBase{Position: left.Pos()}, Left: left, Operator: tok.Kind.String(), Right: right}
}

func parseAssignment(p *Parser, left ast.Expression) ast.Expression {
	tok := p.curTok
	p.advance()
	// Assignment is right-associative, like exponentiation; advertise
	// one less than its own binding power.
	value := p.ParseExpression(AssignPrec - 1)
	return &ast.Assignment{ExprBase: ast.ExprBase{Position: left.Pos()}, Target: left, Operator: tok.Kind.String(), Value: value}
}

// parseCall handles `(` as a led: function call.
func parseCall(p *Parser, left ast.Expression) ast.Expression {
	pos := left.Pos()
	p.advance() // '('
	var args []ast.Expression
	for !p.curIs(token.RParen) && !p.curIs(token.EOF) {
		args = append(args, p.ParseExpression(Default))
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RParen)
	return &ast.FunctionCall{ExprBase: ast.ExprBase{Position: pos}, Callee: left, Args: args}
}

// parseIndex handles `[` as a led: a single-expression index.
func parseIndex(p *Parser, left ast.Expression) ast.Expression {
	pos := left.Pos()
	p.advance() // '['
	idx := p.ParseExpression(Default)
	p.expect(token.RBracket)
	return &ast.Index{ExprBase: ast.ExprBase{Position: pos}, Container: left, IndexExpr: idx}
}

func parseMemberAccess(p *Parser, left ast.Expression) ast.Expression {
	pos := left.Pos()
	p.advance() // '.'
	name := p.expect(token.Identifier).Lexeme
	return &ast.MemberAccess{ExprBase: ast.ExprBase{Position: pos}, Object: left, Property: name}
}

func parseScopeResolution(p *Parser, left ast.Expression) ast.Expression {
	pos := left.Pos()
	scopeName := ""
	if ident, ok := left.(*ast.Identifier); ok {
		scopeName = ident.Name
	}
	p.advance() // '::'
	element := p.expect(token.Identifier).Lexeme
	return &ast.ScopeResolution{ExprBase: ast.ExprBase{Position: pos}, Scope: scopeName, Element: element}
}

// parseAggregateInstantiation handles `{` as a led after an Identifier:
// `name { field = expr, ... }`. The caller (ParseExpression's loop) only
// reaches here when parsingBlockPrecursor is false and left is an
// Identifier.
func parseAggregateInstantiation(p *Parser, left ast.Expression) ast.Expression {
	ident, ok := left.(*ast.Identifier)
	if !ok || p.parsingBlockPrecursor {
		return left
	}
	pos := left.Pos()
	p.advance() // '{'
	var fields []ast.FieldInit
	seen := map[string]bool{}
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		fieldPos := p.curTok.Pos()
		name := p.expect(token.Identifier).Lexeme
		if seen[name] {
			p.addError(fieldPos, "duplicate field %q in aggregate instantiation", name)
		}
		seen[name] = true
		p.expect(token.Assign)
		value := p.ParseExpression(Default)
		fields = append(fields, ast.FieldInit{Name: name, Value: value})
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBrace)
	return &ast.AggregateInstantiation{ExprBase: ast.ExprBase{Position: pos}, Name: ident.Name, Fields: fields}
}

// parseAggregateLiteral handles `{` as a nud: a positional aggregate
// literal, e.g. `{ 1, 2 }`.
func parseAggregateLiteral(p *Parser) ast.Expression {
	pos := p.curTok.Pos()
	p.advance() // '{'
	var values []ast.Expression
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		values = append(values, p.ParseExpression(Default))
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBrace)
	return &ast.AggregateLiteral{ExprBase: ast.ExprBase{Position: pos}, Values: values}
}

func parseArrayLiteral(p *Parser) ast.Expression {
	pos := p.curTok.Pos()
	p.advance() // '['
	var elems []ast.Expression
	for !p.curIs(token.RBracket) && !p.curIs(token.EOF) {
		elems = append(elems, p.ParseExpression(Default))
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBracket)
	return &ast.ArrayLiteral{ExprBase: ast.ExprBase{Position: pos}, Elements: elems}
}

// parseGenericArgs handles `@` as a led: `identifier@[T1, T2, ...]`.
func parseGenericArgs(p *Parser, left ast.Expression) ast.Expression {
	ident, ok := left.(*ast.Identifier)
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
	if !ok {
		p.addError(pos, "generic arguments may only follow an identifier")
		return left
	}
	return &ast.Generic{ExprBase: ast.ExprBase{Position: pos}, Ident: ident, TypeArgs: args}
}

// parseTypeCast handles `as` as a led at TypeCastPrec: the right
// operand is a type, not an expression.
func parseTypeCast(p *Parser, left ast.Expression) ast.Expression {
	pos := left.Pos()
	p.advance() // 'as'
	target := p.ParseType(TypeCastPrec)
	return &ast.TypeCast{ExprBase: ast.ExprBase{Position: pos}, Value: left, Target: target}
}
