package ast

import (
	"fmt"
	"strings"
)

// Identifier is a bare name reference.
type Identifier struct {
	ExprBase
	Name string
}

func (i *Identifier) String() string { return i.Name }

// NumberTag selects which concrete numeric kind a NumberLiteral holds:
// i8/i16/.../f64.
type NumberTag int

const (
	NumI8 NumberTag = iota
	NumI16
	NumI32
	NumI64
	NumU8
	NumU16
	NumU32
	NumU64
	NumF32
	NumF64
)

// NumberLiteral holds a lexed numeric value plus the width/signedness
// tag implied by its suffix (default I32 for untagged integers, F64
// for untagged floats, matching the analyzer's literal typing rule).
type NumberLiteral struct {
	ExprBase
	Tag     NumberTag
	Raw     string // original lexeme, including base prefix/suffix
	IValue  int64
	UValue  uint64
	FValue  float64
	IsFloat bool
}

func (n *NumberLiteral) String() string { return n.Raw }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	ExprBase
	Value bool
}

func (b *BoolLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// CharLiteral holds a single Unicode code point.
type CharLiteral struct {
	ExprBase
	Value rune
}

func (c *CharLiteral) String() string { return fmt.Sprintf("'%c'", c.Value) }

// StringLiteral holds UTF-8 bytes decoded from the source literal.
type StringLiteral struct {
	ExprBase
	Value string
}

func (s *StringLiteral) String() string { return fmt.Sprintf("%q", s.Value) }

// Binary is a left-op-right expression, e.g. `a + b`.
type Binary struct {
	ExprBase
	Left     Expression
	Operator string
	Right    Expression
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator, b.Right.String())
}

// Prefix is a unary prefix expression, e.g. `-x`, `!x`, `&x`, `*x`.
type Prefix struct {
	ExprBase
	Operator string
	Right    Expression
}

func (p *Prefix) String() string { return fmt.Sprintf("(%s%s)", p.Operator, p.Right.String()) }

// Postfix is a unary postfix expression, e.g. `x++`.
type Postfix struct {
	ExprBase
	Left     Expression
	Operator string
}

func (p *Postfix) String() string { return fmt.Sprintf("(%s%s)", p.Left.String(), p.Operator) }

// Assignment is `target op= value` (op is "=" for plain assignment).
type Assignment struct {
	ExprBase
	Target   Expression
	Operator string
	Value    Expression
}

func (a *Assignment) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Target.String(), a.Operator, a.Value.String())
}

// Index is `container[index]`.
type Index struct {
	ExprBase
	Container Expression
	IndexExpr Expression
}

func (ix *Index) String() string {
	return fmt.Sprintf("(%s[%s])", ix.Container.String(), ix.IndexExpr.String())
}

// MemberAccess is `object.property`.
type MemberAccess struct {
	ExprBase
	Object   Expression
	Property string
}

func (m *MemberAccess) String() string { return fmt.Sprintf("(%s.%s)", m.Object.String(), m.Property) }

// ScopeResolution is `scope::element`.
type ScopeResolution struct {
	ExprBase
	Scope   string
	Element string
}

func (s *ScopeResolution) String() string { return fmt.Sprintf("%s::%s", s.Scope, s.Element) }

// FunctionCall is `callee(args...)`.
type FunctionCall struct {
	ExprBase
	Callee Expression
	Args   []Expression
}

func (f *FunctionCall) String() string {
	return fmt.Sprintf("%s(%s)", f.Callee.String(), exprList(f.Args))
}

// Generic is `identifier@[typeArgs...]`, e.g. `id@[int32]`.
type Generic struct {
	ExprBase
	Ident    *Identifier
	TypeArgs []TypeNode
}

func (g *Generic) String() string {
	parts := make([]string, len(g.TypeArgs))
	for i, t := range g.TypeArgs {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s@[%s]", g.Ident.String(), strings.Join(parts, ", "))
}

// TypeCast is `value as targetType`.
type TypeCast struct {
	ExprBase
	Value  Expression
	Target TypeNode
}

func (t *TypeCast) String() string {
	return fmt.Sprintf("(%s as %s)", t.Value.String(), t.Target.String())
}

// GroupedExpression preserves an explicit `(expr)` the author wrote, so
// the parser's result distinguishes `(-x)` from a bare `-x` when that
// distinction matters to callers (e.g. pretty-printing round trips).
type GroupedExpression struct {
	ExprBase
	Inner Expression
}

func (g *GroupedExpression) String() string { return fmt.Sprintf("(%s)", g.Inner.String()) }

// FieldInit is a single `name = expr` pair inside an AggregateInstantiation.
type FieldInit struct {
	Name  string
	Value Expression
}

// AggregateInstantiation is `Name@[TypeArgs]{ field = expr, ... }`.
type AggregateInstantiation struct {
	ExprBase
	Name     string
	TypeArgs []TypeNode
	Fields   []FieldInit
}

func (a *AggregateInstantiation) String() string {
	parts := make([]string, len(a.Fields))
	for i, f := range a.Fields {
		parts[i] = fmt.Sprintf("%s = %s", f.Name, f.Value.String())
	}
	name := a.Name
	if len(a.TypeArgs) > 0 {
		targs := make([]string, len(a.TypeArgs))
		for i, t := range a.TypeArgs {
			targs[i] = t.String()
		}
		name = fmt.Sprintf("%s@[%s]", name, strings.Join(targs, ", "))
	}
	return fmt.Sprintf("%s{ %s }", name, strings.Join(parts, ", "))
}

// AggregateLiteral is a positional aggregate value, e.g. `{ 1, 2 }`.
type AggregateLiteral struct {
	ExprBase
	Values []Expression
}

func (a *AggregateLiteral) String() string { return fmt.Sprintf("{ %s }", exprList(a.Values)) }

// ArrayLiteral is `[e1, e2, ...]`, optionally annotated with an element
// type and/or a length expression.
type ArrayLiteral struct {
	ExprBase
	Elements []Expression
	ElemType TypeNode // nil when not annotated
	Length   Expression
}

func (a *ArrayLiteral) String() string { return fmt.Sprintf("[%s]", exprList(a.Elements)) }
