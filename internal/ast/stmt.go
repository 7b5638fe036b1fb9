package ast

import (
	"fmt"
	"strings"
)

// Visibility is the optional access modifier on declarations and
// variable types (`public`/`private`/`readonly`, or unspecified).
type Visibility int

const (
	VisibilityDefault Visibility = iota
	VisibilityPublic
	VisibilityPrivate
	VisibilityReadOnly
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public "
	case VisibilityPrivate:
		return "private "
	case VisibilityReadOnly:
		return "readonly "
	default:
		return ""
	}
}

// ExpressionStatement is a bare expression followed by `;`.
type ExpressionStatement struct {
	StmtBase
	Expr Expression
}

func (e *ExpressionStatement) String() string { return e.Expr.String() + ";" }

// Empty is a lone `;`.
type Empty struct{ StmtBase }

func (e *Empty) String() string { return ";" }

// Break is `break;`.
type Break struct{ StmtBase }

func (b *Break) String() string { return "break;" }

// Continue is `continue;`.
type Continue struct{ StmtBase }

func (c *Continue) String() string { return "continue;" }

// Return is `return [expr];`.
type Return struct {
	StmtBase
	Value Expression // nil when bare `return;`
}

func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value.String())
}

// Block is `{ statement* }`.
type Block struct {
	StmtBase
	Statements []Statement
}

func (b *Block) String() string {
	return "{ " + stmtList(b.Statements) + " }"
}

// Param is a single function parameter: `name: [mut] type`.
type Param struct {
	Name string
	Mut  bool
	Type TypeNode
}

// VariableDeclaration is `let|const name[: [vis] type][= value];`.
type VariableDeclaration struct {
	StmtBase
	IsConst    bool
	Name       string
	Visibility Visibility
	Type       TypeNode // nil when inferred from Value
	Value      Expression
}

func (v *VariableDeclaration) String() string {
	kw := "let"
	if v.IsConst {
		kw = "const"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("(%s %s", kw, v.Name))
	if v.Type != nil {
		sb.WriteString(fmt.Sprintf(": %s%s", v.Visibility.String(), v.Type.String()))
	}
	if v.Value != nil {
		sb.WriteString(fmt.Sprintf(" = %s", v.Value.String()))
	}
	sb.WriteString(");")
	return sb.String()
}

// FunctionDeclaration is `func name[generics](params) [-> ret] body`.
type FunctionDeclaration struct {
	StmtBase
	Name          string
	GenericParams []string
	Params        []Param
	ReturnType    TypeNode // nil for no declared return type
	Body          *Block
	Visibility    Visibility
}

func (f *FunctionDeclaration) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		mut := ""
		if p.Mut {
			mut = "mut "
		}
		parts[i] = fmt.Sprintf("%s: %s%s", p.Name, mut, p.Type.String())
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("func %s", f.Name))
	if len(f.GenericParams) > 0 {
		sb.WriteString(fmt.Sprintf("[%s]", strings.Join(f.GenericParams, ", ")))
	}
	sb.WriteString(fmt.Sprintf("(%s)", strings.Join(parts, ", ")))
	if f.ReturnType != nil {
		sb.WriteString(fmt.Sprintf(" -> %s", f.ReturnType.String()))
	}
	sb.WriteString(" ")
	sb.WriteString(f.Body.String())
	return sb.String()
}

// ElifClause is one `elif (cond) block` arm of an If statement.
type ElifClause struct {
	Condition Expression
	Body      *Block
}

// If is `if (cond) block {elif (cond) block} [else block]`.
type If struct {
	StmtBase
	Condition Expression
	Then      *Block
	Elifs     []ElifClause
	Else      *Block // nil when absent
}

func (i *If) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("if (%s) %s", i.Condition.String(), i.Then.String()))
	for _, e := range i.Elifs {
		sb.WriteString(fmt.Sprintf(" elif (%s) %s", e.Condition.String(), e.Body.String()))
	}
	if i.Else != nil {
		sb.WriteString(" else " + i.Else.String())
	}
	return sb.String()
}

// WhileLoop is `while (cond) block` or, when IsDoWhile, `do block
// while (cond);`.
type WhileLoop struct {
	StmtBase
	Condition Expression
	Body      *Block
	IsDoWhile bool
}

func (w *WhileLoop) String() string {
	if w.IsDoWhile {
		return fmt.Sprintf("do %s while %s;", w.Body.String(), condString(w.Condition))
	}
	return fmt.Sprintf("while %s %s", condString(w.Condition), w.Body.String())
}

// condString renders a loop condition inside one pair of parentheses; a
// Binary already prints its own, so it is not wrapped a second time.
func condString(e Expression) string {
	if _, ok := e.(*Binary); ok {
		return e.String()
	}
	return "(" + e.String() + ")"
}

// RepeatLoop is `repeat (count) block`.
type RepeatLoop struct {
	StmtBase
	Count Expression
	Body  *Block
}

func (r *RepeatLoop) String() string {
	return fmt.Sprintf("repeat (%s) %s", r.Count.String(), r.Body.String())
}

// SwitchCase is one `case expr: stmt*` arm.
type SwitchCase struct {
	Value Expression
	Body  []Statement
}

// Switch is `switch (discriminant) { case ... default? }`.
type Switch struct {
	StmtBase
	Discriminant Expression
	Cases        []SwitchCase
	Default      []Statement // nil when absent
}

func (s *Switch) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("switch (%s) { ", s.Discriminant.String()))
	for _, c := range s.Cases {
		sb.WriteString(fmt.Sprintf("case %s: %s ", c.Value.String(), stmtList(c.Body)))
	}
	if s.Default != nil {
		sb.WriteString(fmt.Sprintf("default: %s ", stmtList(s.Default)))
	}
	sb.WriteString("}")
	return sb.String()
}

// FieldDecl is one `name: type;` member of an AggregateDeclaration.
type FieldDecl struct {
	Name string
	Type TypeNode
}

// AggregateDeclaration is `aggregate Name[generics] { field: type; ... }`.
type AggregateDeclaration struct {
	StmtBase
	Name          string
	GenericParams []string
	Fields        []FieldDecl
	Visibility    Visibility
}

func (a *AggregateDeclaration) String() string {
	parts := make([]string, len(a.Fields))
	for i, f := range a.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type.String())
	}
	name := a.Name
	if len(a.GenericParams) > 0 {
		name = fmt.Sprintf("%s[%s]", name, strings.Join(a.GenericParams, ", "))
	}
	return fmt.Sprintf("aggregate %s { %s }", name, strings.Join(parts, "; "))
}

// EnumValue is one `name [= expr]` member of an EnumDeclaration.
type EnumValue struct {
	Name string
	Init Expression // nil when the sequential default applies

	// Resolved holds the ordinal the semantic analyzer computed for this
	// value: Init's value when Init is an integer NumberLiteral, or one
	// more than the previous member's Resolved value otherwise (spec
	// §4.3: "missing initializers are assigned sequential integers");
	// any other Init expression is not evaluated and takes that
	// sequential value too. Filled in by the analyzer, mirroring the
	// computed_type slot on expressions.
	Resolved int64
}

// EnumDeclaration is `enum Name [: base] { name [= expr], ... }`.
type EnumDeclaration struct {
	StmtBase
	Name       string
	BaseType   TypeNode // nil defaults to i32 at analysis time
	Values     []EnumValue
	Visibility Visibility
}

func (e *EnumDeclaration) String() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		if v.Init != nil {
			parts[i] = fmt.Sprintf("%s = %s", v.Name, v.Init.String())
		} else {
			parts[i] = v.Name
		}
	}
	base := ""
	if e.BaseType != nil {
		base = ": " + e.BaseType.String()
	}
	return fmt.Sprintf("enum %s%s { %s }", e.Name, base, strings.Join(parts, ", "))
}

// Alias is `alias Type as Name;`.
type Alias struct {
	StmtBase
	Base       TypeNode
	Name       string
	Visibility Visibility
}

func (a *Alias) String() string { return fmt.Sprintf("alias %s as %s;", a.Base.String(), a.Name) }

// ImportDecl is a single `::`-joined import path with an optional alias.
type ImportDecl struct {
	StmtBase
	Path  []string
	Alias string // empty when absent
}

func (i *ImportDecl) String() string {
	s := "import " + strings.Join(i.Path, "::")
	if i.Alias != "" {
		s += " as " + i.Alias
	}
	return s + ";"
}

// ModuleDecl is `module name;`, legal only at file head.
type ModuleDecl struct {
	StmtBase
	Name string
}

func (m *ModuleDecl) String() string { return fmt.Sprintf("module %s;", m.Name) }
