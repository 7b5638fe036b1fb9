package semantic

import (
	"github.com/orbitlang/orbitc/internal/ast"
	"github.com/orbitlang/orbitc/internal/types"
)

// numberTagType maps a NumberLiteral's lexical tag to its resolved type.
var numberTagType = map[ast.NumberTag]*types.Type{
	ast.NumI8:  types.TInt8,
	ast.NumI16: types.TInt16,
	ast.NumI32: types.TInt32,
	ast.NumI64: types.TInt64,
	ast.NumU8:  types.TUInt8,
	ast.NumU16: types.TUInt16,
	ast.NumU32: types.TUInt32,
	ast.NumU64: types.TUInt64,
	ast.NumF32: types.TFloat32,
	ast.NumF64: types.TFloat64,
}

// analyzeExpression dispatches on the expression's concrete node kind,
// resolves its type, stashes it on the node's computed-type slot, and
// returns it so callers can chain compatibility checks without
// re-reading the node.
func (a *Analyzer) analyzeExpression(expr ast.Expression) *types.Type {
	t := a.typeOf(expr)
	expr.SetType(t)
	return t
}

func (a *Analyzer) typeOf(expr ast.Expression) *types.Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		sym, ok := a.symbols.Lookup(e.Name)
		if !ok {
			a.diag(Error, UndeclaredIdentifier, e, "undeclared identifier %q", e.Name)
			return unresolved()
		}
		return sym.Type

	case *ast.NumberLiteral:
		return numberTagType[e.Tag]
	case *ast.BoolLiteral:
		return types.TBool
	case *ast.CharLiteral:
		return types.TChar
	case *ast.StringLiteral:
		return types.TString

	case *ast.GroupedExpression:
		return a.analyzeExpression(e.Inner)

	case *ast.Binary:
		return a.typeOfBinary(e)

	case *ast.Prefix:
		return a.typeOfPrefix(e)

	case *ast.Postfix:
		return a.typeOfPostfix(e)

	case *ast.Assignment:
		return a.typeOfAssignment(e)

	case *ast.Index:
		return a.typeOfIndex(e)

	case *ast.MemberAccess:
		return a.typeOfMemberAccess(e)

	case *ast.ScopeResolution:
		return a.typeOfScopeResolution(e)

	case *ast.FunctionCall:
		return a.typeOfCall(e)

	case *ast.Generic:
		if sym, ok := a.symbols.Lookup(e.Ident.Name); ok {
			return sym.Type
		}
		a.diag(Error, UndeclaredIdentifier, e, "undeclared identifier %q", e.Ident.Name)
		return unresolved()

	case *ast.TypeCast:
		return a.typeOfCast(e)

	case *ast.AggregateInstantiation:
		return a.typeOfAggregateInstantiation(e)

	case *ast.AggregateLiteral:
		return a.typeOfAggregateLiteral(e)

	case *ast.ArrayLiteral:
		return a.typeOfArrayLiteral(e)

	default:
		a.diag(Error, UnknownType, expr, "cannot type unrecognized expression")
		return unresolved()
	}
}

// isLValue reports whether expr can be the target of an assignment or
// of `++`/`--`: an Identifier, Index, or pointer dereference.
func isLValue(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier, *ast.Index:
		return true
	case *ast.Prefix:
		return e.Operator == "*"
	}
	return false
}

// rootMutable walks an lvalue down to its root Identifier and reports
// whether that root symbol is mutable; for a nested Index the
// underlying root container must be mutable.
func (a *Analyzer) rootMutable(expr ast.Expression) (bool, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		sym, ok := a.symbols.Lookup(e.Name)
		if !ok {
			return false, false
		}
		return sym.Mutable, true
	case *ast.Index:
		return a.rootMutable(e.Container)
	case *ast.Prefix:
		if e.Operator == "*" {
			return true, true
		}
	}
	return false, false
}

func (a *Analyzer) typeOfPrefix(e *ast.Prefix) *types.Type {
	rt := a.analyzeExpression(e.Right)
	if rt == nil || rt.Tag == types.Unresolved {
		return unresolved()
	}
	switch e.Operator {
	case "++", "--":
		if !isLValue(e.Right) {
			a.diag(Error, ImmutableTarget, e, "operand of %q must be an integer lvalue", e.Operator)
			return unresolved()
		}
		if !rt.Tag.IsInteger() {
			a.diag(Error, TypeMismatch, e, "operand of %q must be an integer, got %s", e.Operator, rt)
			return unresolved()
		}
		return rt
	case "!":
		if rt.Tag != types.BoolType {
			a.diag(Error, TypeMismatch, e, "operand of ! must be bool, got %s", rt)
			return unresolved()
		}
		return types.TBool
	case "+", "-":
		if !rt.Tag.IsNumeric() {
			a.diag(Error, TypeMismatch, e, "operand of unary %s must be numeric, got %s", e.Operator, rt)
			return unresolved()
		}
		return rt
	case "~":
		if !rt.Tag.IsInteger() {
			a.diag(Error, TypeMismatch, e, "operand of ~ must be an integer, got %s", rt)
			return unresolved()
		}
		return rt
	case "&":
		return types.NewPointer(rt, false)
	case "*":
		if rt.Tag != types.Pointer {
			a.diag(Error, TypeMismatch, e, "operand of * must be a pointer, got %s", rt)
			return unresolved()
		}
		return rt.Pointee
	}
	return unresolved()
}

func (a *Analyzer) typeOfPostfix(e *ast.Postfix) *types.Type {
	lt := a.analyzeExpression(e.Left)
	if lt == nil || lt.Tag == types.Unresolved {
		return unresolved()
	}
	if !isLValue(e.Left) {
		a.diag(Error, ImmutableTarget, e, "operand of %q must be an integer lvalue", e.Operator)
		return unresolved()
	}
	if !lt.Tag.IsInteger() {
		a.diag(Error, TypeMismatch, e, "operand of %q must be an integer, got %s", e.Operator, lt)
		return unresolved()
	}
	return lt
}

func (a *Analyzer) typeOfAssignment(e *ast.Assignment) *types.Type {
	if !isLValue(e.Target) {
		a.diag(Error, ImmutableTarget, e, "assignment target must be an identifier, index, or dereference")
		a.analyzeExpression(e.Value)
		return unresolved()
	}
	mutable, known := a.rootMutable(e.Target)
	targetType := a.analyzeExpression(e.Target)
	if known && !mutable {
		name := rootName(e.Target)
		a.diag(Error, ImmutableTarget, e, "cannot reassign constant %s", name)
	}

	if e.Operator == "=" {
		valType := a.analyzeExpression(e.Value)
		if targetType != nil && valType != nil && targetType.Tag != types.Unresolved && valType.Tag != types.Unresolved && !compatible(targetType, valType) {
			a.diag(Error, TypeMismatch, e, "cannot assign %s to %s", valType, targetType)
		}
		return targetType
	}

	// Compound assignment `x op= y` is type-checked as `x op y` compared
	// to the type of x.
	op := e.Operator[:len(e.Operator)-1]
	valType := a.analyzeExpression(e.Value)
	binType := a.binaryOpType(op, targetType, valType, e)
	if targetType != nil && binType != nil && targetType.Tag != types.Unresolved && binType.Tag != types.Unresolved && !compatible(targetType, binType) {
		a.diag(Error, TypeMismatch, e, "cannot assign %s to %s", binType, targetType)
	}
	return targetType
}

func rootName(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.Index:
		return rootName(e.Container)
	case *ast.Prefix:
		return rootName(e.Right)
	}
	return "<expr>"
}

// typeOfScopeResolution resolves `scope::element`. When scope names an
// enum, element must be one of its declared members.
func (a *Analyzer) typeOfScopeResolution(e *ast.ScopeResolution) *types.Type {
	sym, ok := a.symbols.Lookup(e.Scope)
	if !ok {
		a.diag(Error, UndeclaredIdentifier, e, "undeclared identifier %q", e.Scope)
		return unresolved()
	}
	if sym.Kind == SymEnum {
		for _, m := range sym.EnumMembers {
			if m == e.Element {
				return sym.Type
			}
		}
		a.diag(Error, MissingField, e, "enum %q has no value %q", e.Scope, e.Element)
		return unresolved()
	}
	return sym.Type
}

func (a *Analyzer) typeOfIndex(e *ast.Index) *types.Type {
	ct := a.analyzeExpression(e.Container)
	a.analyzeExpression(e.IndexExpr)
	if ct == nil || ct.Tag == types.Unresolved {
		return unresolved()
	}
	if ct.Tag != types.Array {
		a.diag(Error, NotIndexable, e, "only arrays are indexable, got %s", ct)
		return unresolved()
	}
	return ct.Elem
}

func (a *Analyzer) typeOfMemberAccess(e *ast.MemberAccess) *types.Type {
	ot := a.analyzeExpression(e.Object)
	if ot == nil || ot.Tag == types.Unresolved {
		return unresolved()
	}
	if ot.Tag != types.Aggregate {
		a.diag(Error, MissingField, e, "%s is not an aggregate", ot)
		return unresolved()
	}
	ft, ok := ot.Field(e.Property)
	if !ok {
		a.diag(Error, MissingField, e, "aggregate %s has no field %q", ot, e.Property)
		return unresolved()
	}
	return ft
}

func (a *Analyzer) typeOfCall(e *ast.FunctionCall) *types.Type {
	ct := a.instantiatedCalleeType(e.Callee)
	argTypes := make([]*types.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.analyzeExpression(arg)
	}
	if ct == nil || ct.Tag == types.Unresolved {
		return unresolved()
	}
	if ct.Tag == types.Generic {
		ct = ct.Base
	}
	if ct == nil || ct.Tag != types.Function {
		a.diag(Error, NotCallable, e, "%s is not callable", ct)
		return unresolved()
	}
	if len(ct.Params) != len(argTypes) {
		a.diag(Error, ArityMismatch, e, "expected %d argument(s), got %d", len(ct.Params), len(argTypes))
		return ct.Return
	}
	for i, pt := range ct.Params {
		at := argTypes[i]
		if pt.Type != nil && at != nil && pt.Type.Tag != types.Unresolved && at.Tag != types.Unresolved && !compatible(pt.Type, at) {
			a.diag(Error, TypeMismatch, e.Args[i], "argument %d: expected %s, got %s", i+1, pt.Type, at)
		}
	}
	return ct.Return
}

// instantiatedCalleeType resolves a call's callee type, substituting
// explicit type arguments into a generic function's signature when the
// callee is written `name@[T1, T2, ...]`.
func (a *Analyzer) instantiatedCalleeType(callee ast.Expression) *types.Type {
	generic, ok := callee.(*ast.Generic)
	if !ok {
		return a.analyzeExpression(callee)
	}
	a.analyzeExpression(callee) // still annotates the Generic node itself
	sym, found := a.symbols.Lookup(generic.Ident.Name)
	if !found || len(sym.GenericParams) == 0 {
		return unresolved()
	}
	subst := map[string]*types.Type{}
	for i, name := range sym.GenericParams {
		if i < len(generic.TypeArgs) {
			subst[name] = a.resolveType(generic.TypeArgs[i])
		}
	}
	return substituteTypeParams(sym.Type, subst)
}

func (a *Analyzer) typeOfCast(e *ast.TypeCast) *types.Type {
	vt := a.analyzeExpression(e.Value)
	target := a.resolveType(e.Target)
	if vt == nil || vt.Tag == types.Unresolved || target.Tag == types.Unresolved {
		return unresolved()
	}
	if !vt.Tag.IsPrimitive() || !target.Tag.IsPrimitive() {
		a.diag(Error, InvalidCast, e, "cast requires both source and target to be primitive types")
		return unresolved()
	}
	if vt.Tag == types.StringType && target.Tag == types.CharType {
		a.diag(Error, InvalidCast, e, "string cannot be cast to char")
		return unresolved()
	}
	return target
}

func (a *Analyzer) typeOfAggregateInstantiation(e *ast.AggregateInstantiation) *types.Type {
	sym, ok := a.symbols.Lookup(e.Name)
	if !ok || sym.Kind != SymAggregate {
		a.diag(Error, UnknownType, e, "unknown aggregate type %q", e.Name)
		for _, f := range e.Fields {
			a.analyzeExpression(f.Value)
		}
		return unresolved()
	}
	for _, f := range e.Fields {
		vt := a.analyzeExpression(f.Value)
		ft, ok := sym.Type.Field(f.Name)
		if !ok {
			a.diag(Error, MissingField, e, "aggregate %q has no field %q", e.Name, f.Name)
			continue
		}
		if vt != nil && ft != nil && vt.Tag != types.Unresolved && ft.Tag != types.Unresolved && !compatible(ft, vt) {
			a.diag(Error, TypeMismatch, e, "field %q: expected %s, got %s", f.Name, ft, vt)
		}
	}
	return sym.Type
}

func (a *Analyzer) typeOfAggregateLiteral(e *ast.AggregateLiteral) *types.Type {
	fields := make([]types.Field, len(e.Values))
	for i, v := range e.Values {
		fields[i] = types.Field{Type: a.analyzeExpression(v)}
	}
	return types.NewAggregate("", fields)
}

func (a *Analyzer) typeOfArrayLiteral(e *ast.ArrayLiteral) *types.Type {
	if len(e.Elements) == 0 {
		var elem *types.Type
		if e.ElemType != nil {
			elem = a.resolveType(e.ElemType)
		} else {
			elem = unresolved()
		}
		return types.NewArray(elem, 0)
	}
	first := a.analyzeExpression(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := a.analyzeExpression(el)
		if first != nil && t != nil && first.Tag != types.Unresolved && t.Tag != types.Unresolved && !compatible(first, t) {
			a.diag(Error, TypeMismatch, el, "array element type %s is incompatible with %s", t, first)
		}
	}
	return types.NewArray(first, len(e.Elements))
}
