package parser

import (
	"github.com/orbitlang/orbitc/internal/ast"
	"github.com/orbitlang/orbitc/internal/token"
)

func (p *Parser) registerStatementTable() {
	p.stmtFns[token.Let] = parseVariableDeclaration
	p.stmtFns[token.Const] = parseVariableDeclaration
	p.stmtFns[token.Func] = parseFunctionDeclaration
	p.stmtFns[token.If] = parseIf
	p.stmtFns[token.While] = parseWhile
	p.stmtFns[token.Do] = parseDoWhile
	p.stmtFns[token.Repeat] = parseRepeat
	p.stmtFns[token.Return] = parseReturn
	p.stmtFns[token.Break] = parseBreak
	p.stmtFns[token.Continue] = parseContinue
	p.stmtFns[token.Aggregate] = parseAggregateDeclaration
	p.stmtFns[token.Enum] = parseEnumDeclaration
	p.stmtFns[token.Alias] = parseAlias
	p.stmtFns[token.Switch] = parseSwitch
	p.stmtFns[token.Semicolon] = parseEmptyStatement
	p.stmtFns[token.Public] = parseVisibilityQualified
	p.stmtFns[token.Private] = parseVisibilityQualified
	p.stmtFns[token.ReadOnly] = parseVisibilityQualified
}

// parseStatement dispatches on the current token kind, falling back to
// an expression statement for anything not in the table.
func (p *Parser) parseStatement() ast.Statement {
	if fn, ok := p.stmtFns[p.curTok.Kind]; ok {
		return fn(p)
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.curTok.Pos()
	expr := p.ParseExpression(Default)
	if !p.parsingBlockPrecursor {
		p.expect(token.Semicolon)
	}
	return &ast.ExpressionStatement{StmtBase: ast.StmtBase{Position: pos}, Expr: expr}
}

func parseEmptyStatement(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance()
	return &ast.Empty{StmtBase: ast.StmtBase{Position: pos}}
}

func parseBreak(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance()
	p.expect(token.Semicolon)
	return &ast.Break{StmtBase: ast.StmtBase{Position: pos}}
}

func parseContinue(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance()
	p.expect(token.Semicolon)
	return &ast.Continue{StmtBase: ast.StmtBase{Position: pos}}
}

func parseReturn(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance()
	var value ast.Expression
	if !p.curIs(token.Semicolon) {
		value = p.ParseExpression(Default)
	}
	p.expect(token.Semicolon)
	return &ast.Return{StmtBase: ast.StmtBase{Position: pos}, Value: value}
}

// parseBlock parses `{ statement* }`. An empty block is accepted here
// without a diagnostic; the semantic analyzer is what warns about empty
// if/elif/else, loop and bare blocks.
func (p *Parser) parseBlock() *ast.Block {
	pos := p.curTok.Pos()
	p.expect(token.LBrace)
	block := &ast.Block{StmtBase: ast.StmtBase{Position: pos}}
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.expect(token.RBrace)
	return block
}

// parseParenCondition parses `( expr )`, setting parsingBlockPrecursor
// for the duration.
func (p *Parser) parseParenCondition() ast.Expression {
	p.expect(token.LParen)
	saved := p.parsingBlockPrecursor
	p.parsingBlockPrecursor = true
	cond := p.ParseExpression(Default)
	p.parsingBlockPrecursor = saved
	p.expect(token.RParen)
	return cond
}

func parseVisibility(p *Parser) ast.Visibility {
	switch p.curTok.Kind {
	case token.Public:
		p.advance()
		return ast.VisibilityPublic
	case token.Private:
		p.advance()
		return ast.VisibilityPrivate
	case token.ReadOnly:
		p.advance()
		return ast.VisibilityReadOnly
	default:
		return ast.VisibilityDefault
	}
}

// parseVisibilityQualified records the modifier then recurses into the
// statement table for the following keyword.
func parseVisibilityQualified(p *Parser) ast.Statement {
	vis := parseVisibility(p)
	stmt := p.parseStatement()
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		s.Visibility = vis
	case *ast.FunctionDeclaration:
		s.Visibility = vis
	case *ast.AggregateDeclaration:
		s.Visibility = vis
	case *ast.EnumDeclaration:
		s.Visibility = vis
	case *ast.Alias:
		s.Visibility = vis
	}
	return stmt
}

// parseVariableDeclaration handles `let|const name [: [vis] type] [=
// expr] ;`.
func parseVariableDeclaration(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	isConst := p.curIs(token.Const)
	p.advance() // 'let' | 'const'
	name := p.expect(token.Identifier).Lexeme

	decl := &ast.VariableDeclaration{StmtBase: ast.StmtBase{Position: pos}, IsConst: isConst, Name: name}

	if p.curIs(token.Colon) {
		p.advance()
		decl.Visibility = parseVisibility(p)
		decl.Type = p.ParseType(Default)
	}
	if p.curIs(token.Assign) {
		p.advance()
		decl.Value = p.ParseExpression(Default)
	}
	// const-requires-initializer and type-or-value-required are
	// semantic rules, enforced by the analyzer rather than here so a
	// missing initializer doesn't also surface as a syntax error.
	p.expect(token.Semicolon)
	return decl
}

// parseFunctionDeclaration handles `func name [generic_params] (
// name: [mut] type, ... ) [-> type] block`.
func parseFunctionDeclaration(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance() // 'func'
	name := p.expect(token.Identifier).Lexeme
	decl := &ast.FunctionDeclaration{StmtBase: ast.StmtBase{Position: pos}, Name: name}

	if p.curIs(token.LBracket) {
		p.advance()
		seen := map[string]bool{}
		for !p.curIs(token.RBracket) && !p.curIs(token.EOF) {
			gpos := p.curTok.Pos()
			gname := p.expect(token.Identifier).Lexeme
			if seen[gname] {
				p.addError(gpos, "duplicate generic parameter %q", gname)
			}
			seen[gname] = true
			decl.GenericParams = append(decl.GenericParams, gname)
			if p.curIs(token.Comma) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(token.RBracket)
	}

	p.expect(token.LParen)
	seenParams := map[string]bool{}
	for !p.curIs(token.RParen) && !p.curIs(token.EOF) {
		ppos := p.curTok.Pos()
		pname := p.expect(token.Identifier).Lexeme
		if seenParams[pname] {
			p.addError(ppos, "duplicate parameter %q", pname)
		}
		seenParams[pname] = true
		p.expect(token.Colon)
		mut := false
		if p.curIs(token.Mut) {
			mut = true
			p.advance()
		}
		ptype := p.ParseType(Default)
		decl.Params = append(decl.Params, ast.Param{Name: pname, Mut: mut, Type: ptype})
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RParen)

	if p.curIs(token.Arrow) {
		p.advance()
		decl.ReturnType = p.ParseType(Default)
	}
	decl.Body = p.parseBlock()
	return decl
}

func parseIf(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance() // 'if'
	cond := p.parseParenCondition()
	then := p.parseBlock()
	stmt := &ast.If{StmtBase: ast.StmtBase{Position: pos}, Condition: cond, Then: then}
	for p.curIs(token.Elif) {
		p.advance()
		econd := p.parseParenCondition()
		ebody := p.parseBlock()
		stmt.Elifs = append(stmt.Elifs, ast.ElifClause{Condition: econd, Body: ebody})
	}
	if p.curIs(token.Else) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func parseWhile(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance() // 'while'
	cond := p.parseParenCondition()
	body := p.parseBlock()
	return &ast.WhileLoop{StmtBase: ast.StmtBase{Position: pos}, Condition: cond, Body: body}
}

// parseDoWhile handles `do block while ( expr ) ;`.
func parseDoWhile(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance() // 'do'
	body := p.parseBlock()
	p.expect(token.While)
	cond := p.parseParenCondition()
	p.expect(token.Semicolon)
	return &ast.WhileLoop{StmtBase: ast.StmtBase{Position: pos}, Condition: cond, Body: body, IsDoWhile: true}
}

func parseRepeat(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance() // 'repeat'
	count := p.parseParenCondition()
	body := p.parseBlock()
	return &ast.RepeatLoop{StmtBase: ast.StmtBase{Position: pos}, Count: count, Body: body}
}

func parseSwitch(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance() // 'switch'
	discriminant := p.parseParenCondition()
	p.expect(token.LBrace)
	stmt := &ast.Switch{StmtBase: ast.StmtBase{Position: pos}, Discriminant: discriminant}
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		switch p.curTok.Kind {
		case token.Case:
			p.advance()
			val := p.ParseExpression(Default)
			p.expect(token.Colon)
			var body []ast.Statement
			for !p.curIs(token.Case) && !p.curIs(token.Default) && !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
				body = append(body, p.parseStatement())
			}
			stmt.Cases = append(stmt.Cases, ast.SwitchCase{Value: val, Body: body})
		case token.Default:
			p.advance()
			p.expect(token.Colon)
			var body []ast.Statement
			for !p.curIs(token.Case) && !p.curIs(token.Default) && !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
				body = append(body, p.parseStatement())
			}
			stmt.Default = body
		default:
			p.addError(p.curTok.Pos(), "expected 'case' or 'default' in switch body, got %s", p.curTok.Kind)
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return stmt
}

// parseAggregateDeclaration handles `aggregate Name [generic_params] {
// field: type; ... }`.
func parseAggregateDeclaration(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance() // 'aggregate'
	name := p.expect(token.Identifier).Lexeme
	decl := &ast.AggregateDeclaration{StmtBase: ast.StmtBase{Position: pos}, Name: name}

	if p.curIs(token.LBracket) {
		p.advance()
		for !p.curIs(token.RBracket) && !p.curIs(token.EOF) {
			decl.GenericParams = append(decl.GenericParams, p.expect(token.Identifier).Lexeme)
			if p.curIs(token.Comma) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(token.RBracket)
	}

	p.expect(token.LBrace)
	seen := map[string]bool{}
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		fpos := p.curTok.Pos()
		fname := p.expect(token.Identifier).Lexeme
		if seen[fname] {
			p.addError(fpos, "duplicate field %q in aggregate declaration", fname)
		}
		seen[fname] = true
		p.expect(token.Colon)
		ftype := p.ParseType(Default)
		decl.Fields = append(decl.Fields, ast.FieldDecl{Name: fname, Type: ftype})
		p.expect(token.Semicolon)
	}
	p.expect(token.RBrace)
	return decl
}

// parseEnumDeclaration handles `enum Name [: base] { name [= expr], ... }`.
func parseEnumDeclaration(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance() // 'enum'
	name := p.expect(token.Identifier).Lexeme
	decl := &ast.EnumDeclaration{StmtBase: ast.StmtBase{Position: pos}, Name: name}

	if p.curIs(token.Colon) {
		p.advance()
		decl.BaseType = p.ParseType(Default)
	}
	p.expect(token.LBrace)
	seen := map[string]bool{}
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		vpos := p.curTok.Pos()
		vname := p.expect(token.Identifier).Lexeme
		if seen[vname] {
			p.addError(vpos, "duplicate enum value %q", vname)
		}
		seen[vname] = true
		ev := ast.EnumValue{Name: vname}
		if p.curIs(token.Assign) {
			p.advance()
			ev.Init = p.ParseExpression(Default)
		}
		decl.Values = append(decl.Values, ev)
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBrace)
	return decl
}

// parseAlias handles `alias Type as Name ;`.
func parseAlias(p *Parser) ast.Statement {
	pos := p.curTok.Pos()
	p.advance() // 'alias'
	base := p.ParseType(Default)
	p.expect(token.As)
	name := p.expect(token.Identifier).Lexeme
	p.expect(token.Semicolon)
	return &ast.Alias{StmtBase: ast.StmtBase{Position: pos}, Base: base, Name: name}
}
