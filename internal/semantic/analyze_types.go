package semantic

import (
	"github.com/orbitlang/orbitc/internal/ast"
	"github.com/orbitlang/orbitc/internal/types"
)

// resolveType succeeds for primitives, for aggregates/aliases/enums/
// generic-type-params resolvable via the symbol table, and for compound
// types whose components all resolve. On failure it reports
// UnknownType and returns a fresh Unresolved-tagged Type so callers can
// short-circuit without a nil check at every call site.
func (a *Analyzer) resolveType(tn ast.TypeNode) *types.Type {
	switch t := tn.(type) {
	case *ast.SymbolType:
		if t.Primitive {
			if pt := types.PrimitiveByName(t.Name); pt != nil {
				return pt
			}
		}
		if a.genericParams[t.Name] {
			return types.NewTypeParam(t.Name)
		}
		if sym, ok := a.symbols.Lookup(t.Name); ok {
			switch sym.Kind {
			case SymAggregate, SymEnum, SymTypeAlias, SymGenericType:
				return sym.Type
			}
		}
		a.diag(Error, UnknownType, tn, "unknown type %q", t.Name)
		return unresolved()

	case *ast.PointerType:
		pointee := a.resolveType(t.Pointee)
		return types.NewPointer(pointee, t.Mut)

	case *ast.ArrayType:
		elem := a.resolveType(t.Elem)
		length := -1
		if t.Length != nil {
			lt := a.analyzeExpression(t.Length)
			if lt != nil && !lt.Tag.IsInteger() {
				a.diag(Error, TypeMismatch, t.Length, "array length must be an integer, got %s", lt)
			}
			if lit, ok := t.Length.(*ast.NumberLiteral); ok && !lit.IsFloat {
				length = int(lit.IValue)
			}
		}
		return types.NewArray(elem, length)

	case *ast.FunctionType:
		params := make([]types.Param, len(t.ParamTypes))
		for i, p := range t.ParamTypes {
			mut := i < len(t.ParamMut) && t.ParamMut[i]
			params[i] = types.Param{Type: a.resolveType(p), Mut: mut}
		}
		var ret *types.Type
		if t.Return != nil {
			ret = a.resolveType(t.Return)
		}
		return types.NewFunction(params, ret)

	case *ast.AggregateType:
		fields := make([]types.Field, len(t.FieldTypes))
		for i, ft := range t.FieldTypes {
			fields[i] = types.Field{Type: a.resolveType(ft)}
		}
		return types.NewAggregate("", fields)

	case *ast.GenericType:
		base := a.resolveType(t.Base)
		args := make([]*types.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = a.resolveType(arg)
		}
		return types.NewGeneric(base, args)

	default:
		a.diag(Error, UnknownType, tn, "unknown type")
		return unresolved()
	}
}

func unresolved() *types.Type { return &types.Type{Tag: types.Unresolved} }

// substituteTypeParams replaces every TypeParam leaf named in subst with
// its bound type, recursing through the compound type shapes. It is how
// a call site's explicit type arguments (`id@[int32]`) turn a generic
// function's TypeParam-shaped signature into a concrete one for call
// checking.
func substituteTypeParams(t *types.Type, subst map[string]*types.Type) *types.Type {
	if t == nil {
		return nil
	}
	switch t.Tag {
	case types.TypeParam:
		if repl, ok := subst[t.Name]; ok {
			return repl
		}
		return t
	case types.Array:
		return types.NewArray(substituteTypeParams(t.Elem, subst), t.Length)
	case types.Pointer:
		return types.NewPointer(substituteTypeParams(t.Pointee, subst), t.PtrMut)
	case types.Function:
		params := make([]types.Param, len(t.Params))
		for i, p := range t.Params {
			params[i] = types.Param{Type: substituteTypeParams(p.Type, subst), Mut: p.Mut}
		}
		return types.NewFunction(params, substituteTypeParams(t.Return, subst))
	case types.Generic:
		args := make([]*types.Type, len(t.TypeArgs))
		for i, arg := range t.TypeArgs {
			args[i] = substituteTypeParams(arg, subst)
		}
		return types.NewGeneric(substituteTypeParams(t.Base, subst), args)
	case types.Aggregate:
		fields := make([]types.Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = types.Field{Name: f.Name, Type: substituteTypeParams(f.Type, subst)}
		}
		return types.NewAggregate(t.Name, fields)
	default:
		return t
	}
}
