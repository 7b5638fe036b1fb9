// Package ast defines the tree produced by the parser: Expression,
// Statement, and Type node families. Each variant is its own Go type and
// nodes carry no separate kind field; visitors dispatch with a type
// switch on the concrete node type. Node/Expression/Statement are marker
// interfaces; expression nodes additionally carry a GetType/SetType
// pair for the analyzer's resolved-type slot.
package ast

import (
	"strings"

	"github.com/orbitlang/orbitc/internal/token"
	"github.com/orbitlang/orbitc/internal/types"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is implemented by every expression node. Every expression
// carries a computed-type slot, filled in by the analyzer.
type Expression interface {
	Node
	expressionNode()
	GetType() *types.Type
	SetType(*types.Type)
}

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statementNode()
}

// TypeNode is implemented by every parsed type-expression node (as
// opposed to types.Type, which is the analyzer's resolved handle).
type TypeNode interface {
	Node
	typeNode()
}

// ExprBase factors the position and computed-type slot shared by every
// expression variant.
type ExprBase struct {
	Position token.Position
	Computed *types.Type
}

func (e *ExprBase) Pos() token.Position    { return e.Position }
func (e *ExprBase) GetType() *types.Type   { return e.Computed }
func (e *ExprBase) SetType(t *types.Type)  { e.Computed = t }
func (e *ExprBase) expressionNode()        {}

type StmtBase struct {
	Position token.Position
}

func (s *StmtBase) Pos() token.Position { return s.Position }
func (s *StmtBase) statementNode()      {}

type TypeBase struct {
	Position token.Position
}

func (t *TypeBase) Pos() token.Position { return t.Position }
func (t *TypeBase) typeNode()           {}

// Program is the root node: a flat sequence of top-level statements.
// ParsedFile (file.go) wraps this with module/import/comment metadata.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
	}
	return sb.String()
}

func exprList(es []Expression) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func stmtList(ss []Statement) string {
	var sb strings.Builder
	for _, s := range ss {
		sb.WriteString(s.String())
	}
	return sb.String()
}
