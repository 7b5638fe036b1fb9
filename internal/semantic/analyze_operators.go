package semantic

import (
	"github.com/orbitlang/orbitc/internal/ast"
	"github.com/orbitlang/orbitc/internal/types"
)

// widest resolves T OP U to the promoted numeric tag, falling back to T
// when the two tags are already equal.
func widest(t, u *types.Type) *types.Type {
	if types.Equal(t, u) {
		return t
	}
	tag, _ := types.Promote(t.Tag, u.Tag)
	if tag == types.Unresolved {
		return unresolved()
	}
	return primitiveForTag(tag)
}

func primitiveForTag(tag types.Tag) *types.Type {
	switch tag {
	case types.Int8:
		return types.TInt8
	case types.Int16:
		return types.TInt16
	case types.Int32:
		return types.TInt32
	case types.Int64:
		return types.TInt64
	case types.UInt8:
		return types.TUInt8
	case types.UInt16:
		return types.TUInt16
	case types.UInt32:
		return types.TUInt32
	case types.UInt64:
		return types.TUInt64
	case types.Float32:
		return types.TFloat32
	case types.Float64:
		return types.TFloat64
	default:
		return unresolved()
	}
}

func (a *Analyzer) typeOfBinary(e *ast.Binary) *types.Type {
	lt := a.analyzeExpression(e.Left)
	rt := a.analyzeExpression(e.Right)
	return a.binaryOpType(e.Operator, lt, rt, e)
}

// binaryOpType drives the shape-directed operator table. If either
// operand type is unknown, the result is unknown and no further
// propagation occurs.
func (a *Analyzer) binaryOpType(op string, lt, rt *types.Type, node ast.Node) *types.Type {
	if lt == nil || rt == nil || lt.Tag == types.Unresolved || rt.Tag == types.Unresolved {
		return unresolved()
	}

	switch op {
	case "+":
		if isStringOrChar(lt) && isStringOrChar(rt) {
			return types.TString
		}
		return a.requireNumericPair(op, lt, rt, node)

	case "-", "^^":
		if lt.Tag == types.Array && rt.Tag == types.Array && op == "-" {
			a.diag(Error, TypeMismatch, node, "array subtraction is not supported")
			return unresolved()
		}
		return a.requireNumericPair(op, lt, rt, node)

	case "*":
		if (lt.Tag == types.StringType && rt.Tag.IsUnsigned()) || (lt.Tag.IsUnsigned() && rt.Tag == types.StringType) {
			return types.TString
		}
		if lt.Tag == types.Array && rt.Tag.IsUnsigned() {
			return lt
		}
		return a.requireNumericPair(op, lt, rt, node)

	case "/":
		res := a.requireNumericPair(op, lt, rt, node)
		if res.Tag == types.Unresolved {
			return res
		}
		if lt.Tag == types.Float64 || rt.Tag == types.Float64 {
			return types.TFloat64
		}
		return types.TFloat32

	case "//", "%":
		if !lt.Tag.IsInteger() || !rt.Tag.IsInteger() {
			a.diag(Error, TypeMismatch, node, "%s requires integer operands, got %s and %s", op, lt, rt)
			return unresolved()
		}
		return widest(lt, rt)

	case "<", "<=", ">", ">=", "==", "!=":
		if lt.Tag == types.Array && rt.Tag == types.Array {
			if !types.Equal(lt.Elem, rt.Elem) {
				a.diag(Error, TypeMismatch, node, "cannot compare arrays of different element types")
			}
			return types.TBool
		}
		if !compatible(lt, rt) {
			a.diag(Error, TypeMismatch, node, "incompatible operand types %s and %s", lt, rt)
		}
		return types.TBool

	case "&&", "||":
		if lt.Tag != types.BoolType || rt.Tag != types.BoolType {
			a.diag(Error, TypeMismatch, node, "%s requires bool operands, got %s and %s", op, lt, rt)
			return unresolved()
		}
		return types.TBool

	case "&", "|", "^", "<<", ">>":
		if !lt.Tag.IsInteger() || !rt.Tag.IsInteger() {
			a.diag(Error, TypeMismatch, node, "%s requires integer operands, got %s and %s", op, lt, rt)
			return unresolved()
		}
		return widest(lt, rt)

	default:
		a.diag(Error, TypeMismatch, node, "unknown binary operator %q", op)
		return unresolved()
	}
}

func (a *Analyzer) requireNumericPair(op string, lt, rt *types.Type, node ast.Node) *types.Type {
	if lt.Tag == types.Array && rt.Tag == types.Array && op == "+" {
		if !types.Equal(lt.Elem, rt.Elem) {
			a.diag(Error, TypeMismatch, node, "array element types differ: %s vs %s", lt.Elem, rt.Elem)
			return unresolved()
		}
		return lt
	}
	if !lt.Tag.IsNumeric() || !rt.Tag.IsNumeric() {
		a.diag(Error, TypeMismatch, node, "%s requires numeric operands, got %s and %s", op, lt, rt)
		return unresolved()
	}
	return widest(lt, rt)
}

func isStringOrChar(t *types.Type) bool {
	return t.Tag == types.StringType || t.Tag == types.CharType
}
