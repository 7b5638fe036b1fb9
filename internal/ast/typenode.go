package ast

import (
	"fmt"
	"strings"
)

// SymbolType is a named type reference: a primitive keyword (`int32`)
// or a user-defined name resolved later by the analyzer.
type SymbolType struct {
	TypeBase
	Name      string
	Primitive bool
}

func (s *SymbolType) String() string { return s.Name }

// PointerType is `ptr [mut] Pointee`.
type PointerType struct {
	TypeBase
	Pointee TypeNode
	Mut     bool
}

// ArrayType is `[Elem]` or `[Elem; length]`.
type ArrayType struct {
	TypeBase
	Elem   TypeNode
	Length Expression // nil when unspecified
}

// FunctionType is `func(types) -> T`.
type FunctionType struct {
	TypeBase
	ParamTypes []TypeNode
	ParamMut   []bool
	Return     TypeNode
}

// AggregateType is an anonymous `aggregate { T, T, ... }`.
type AggregateType struct {
	TypeBase
	FieldTypes []TypeNode
}

// GenericType is `Base@[T1, T2, ...]`.
type GenericType struct {
	TypeBase
	Base TypeNode
	Args []TypeNode
}

func (p *PointerType) String() string {
	if p.Mut {
		return fmt.Sprintf("ptr mut %s", p.Pointee.String())
	}
	return fmt.Sprintf("ptr %s", p.Pointee.String())
}

func (a *ArrayType) String() string {
	if a.Length != nil {
		return fmt.Sprintf("[%s; %s]", a.Elem.String(), a.Length.String())
	}
	return fmt.Sprintf("[%s]", a.Elem.String())
}

func (f *FunctionType) String() string {
	parts := make([]string, len(f.ParamTypes))
	for i, p := range f.ParamTypes {
		if i < len(f.ParamMut) && f.ParamMut[i] {
			parts[i] = "mut " + p.String()
		} else {
			parts[i] = p.String()
		}
	}
	return fmt.Sprintf("func(%s) -> %s", strings.Join(parts, ", "), f.Return.String())
}

func (a *AggregateType) String() string {
	parts := make([]string, len(a.FieldTypes))
	for i, t := range a.FieldTypes {
		parts[i] = t.String()
	}
	return fmt.Sprintf("aggregate { %s }", strings.Join(parts, ", "))
}

func (g *GenericType) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s@[%s]", g.Base.String(), strings.Join(parts, ", "))
}
