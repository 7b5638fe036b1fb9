// Package types models the shared Type handles referenced
// from many AST nodes (variable declarations, function signatures,
// computed expression types). Types are interned as shared singletons
// for primitives and otherwise built fresh, so equality has to be
// defined explicitly rather than relying on pointer identity.
package types

import "fmt"

// Tag identifies a type's shape.
type Tag int

const (
	Unresolved Tag = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	CharType
	BoolType
	StringType
	Array
	Pointer
	Function
	Aggregate
	Generic
	TypeParam
	Enum
)

func (t Tag) String() string {
	switch t {
	case Unresolved:
		return "unresolved"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case UInt8:
		return "uint8"
	case UInt16:
		return "uint16"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case CharType:
		return "char"
	case BoolType:
		return "bool"
	case StringType:
		return "string"
	case Array:
		return "array"
	case Pointer:
		return "pointer"
	case Function:
		return "function"
	case Aggregate:
		return "aggregate"
	case Generic:
		return "generic"
	case TypeParam:
		return "typeparam"
	case Enum:
		return "enum"
	default:
		return "UNKNOWN"
	}
}

// IsInteger reports whether t is one of the signed or unsigned integer
// primitives.
func (t Tag) IsInteger() bool {
	switch t {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64:
		return true
	}
	return false
}

func (t Tag) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

func (t Tag) IsUnsigned() bool {
	switch t {
	case UInt8, UInt16, UInt32, UInt64:
		return true
	}
	return false
}

func (t Tag) IsFloat() bool { return t == Float32 || t == Float64 }

func (t Tag) IsNumeric() bool { return t.IsInteger() || t.IsFloat() }

func (t Tag) IsPrimitive() bool {
	switch t {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64, Float32, Float64, CharType, BoolType, StringType:
		return true
	}
	return false
}

// bitWidth returns the storage width in bits for sizing the promotion
// lattice; 0 for non-numeric tags.
func bitWidth(t Tag) int {
	switch t {
	case Int8, UInt8:
		return 8
	case Int16, UInt16:
		return 16
	case Int32, UInt32, Float32:
		return 32
	case Int64, UInt64, Float64:
		return 64
	}
	return 0
}

// Field is a single named member of an Aggregate type.
type Field struct {
	Name string
	Type *Type
}

// Param is a single function parameter's type and mutability, used by
// FunctionType for call-compatibility checks.
type Param struct {
	Type *Type
	Mut  bool
}

// Type is a shareable handle. The semantic analyzer fills a
// forward-declared placeholder Type in place once it reaches the
// declaration; other Types are not changed after construction. Two
// Types are Equal if, after
// resolving aliases, they are structurally equal (compound types) or
// name-equal (aggregate, enum, type parameter).
type Type struct {
	Tag Tag

	// SymbolType / primitive
	Name string

	// Array
	Elem   *Type
	Length int // -1 when unknown/unspecified at parse time

	// Pointer
	Pointee  *Type
	PtrMut   bool
	Fields   []Field
	Params   []Param
	Return   *Type
	TypeArgs []*Type
	Base     *Type // Generic: the base type being instantiated
}

// Primitive type singletons; safe to share since nothing mutates them
// after construction.
var (
	TInt8    = &Type{Tag: Int8, Name: "int8"}
	TInt16   = &Type{Tag: Int16, Name: "int16"}
	TInt32   = &Type{Tag: Int32, Name: "int32"}
	TInt64   = &Type{Tag: Int64, Name: "int64"}
	TUInt8   = &Type{Tag: UInt8, Name: "uint8"}
	TUInt16  = &Type{Tag: UInt16, Name: "uint16"}
	TUInt32  = &Type{Tag: UInt32, Name: "uint32"}
	TUInt64  = &Type{Tag: UInt64, Name: "uint64"}
	TFloat32 = &Type{Tag: Float32, Name: "float32"}
	TFloat64 = &Type{Tag: Float64, Name: "float64"}
	TChar    = &Type{Tag: CharType, Name: "char"}
	TBool    = &Type{Tag: BoolType, Name: "bool"}
	TString  = &Type{Tag: StringType, Name: "string"}
)

var primitivesByName = map[string]*Type{
	"int8": TInt8, "int16": TInt16, "int32": TInt32, "int64": TInt64,
	"uint8": TUInt8, "uint16": TUInt16, "uint32": TUInt32, "uint64": TUInt64,
	"float32": TFloat32, "float64": TFloat64,
	"char": TChar, "bool": TBool, "string": TString,
}

// PrimitiveByName returns the shared singleton for a primitive type
// name, or nil if name is not a primitive.
func PrimitiveByName(name string) *Type { return primitivesByName[name] }

// NewArray constructs an array type; length -1 means the length
// expression was not a compile-time constant at parse time.
func NewArray(elem *Type, length int) *Type {
	return &Type{Tag: Array, Elem: elem, Length: length}
}

// NewPointer constructs a pointer type.
func NewPointer(pointee *Type, mut bool) *Type {
	return &Type{Tag: Pointer, Pointee: pointee, PtrMut: mut}
}

// NewFunction constructs a function type.
func NewFunction(params []Param, ret *Type) *Type {
	return &Type{Tag: Function, Params: params, Return: ret}
}

// NewAggregate constructs a named aggregate (record) type.
func NewAggregate(name string, fields []Field) *Type {
	return &Type{Tag: Aggregate, Name: name, Fields: fields}
}

// NewEnum constructs a named enum type over the given backing integer
// type (defaulting to int32 at the call site when the declaration omits
// one).
func NewEnum(name string, base *Type) *Type {
	return &Type{Tag: Enum, Name: name, Base: base}
}

// NewGeneric constructs a generic instantiation, e.g. id@[int32].
func NewGeneric(base *Type, args []*Type) *Type {
	return &Type{Tag: Generic, Base: base, TypeArgs: args}
}

// NewTypeParam constructs a generic type parameter placeholder (e.g. T
// in func id[T](x: T) -> T).
func NewTypeParam(name string) *Type {
	return &Type{Tag: TypeParam, Name: name}
}

// Field looks up a named field on an aggregate type.
func (t *Type) Field(name string) (*Type, bool) {
	if t.Tag != Aggregate {
		return nil, false
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// String renders a type's canonical display form.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Tag {
	case Array:
		if t.Length >= 0 {
			return fmt.Sprintf("[%s; %d]", t.Elem, t.Length)
		}
		return fmt.Sprintf("[%s]", t.Elem)
	case Pointer:
		if t.PtrMut {
			return fmt.Sprintf("ptr mut %s", t.Pointee)
		}
		return fmt.Sprintf("ptr %s", t.Pointee)
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			if p.Mut {
				parts[i] = "mut " + p.Type.String()
			} else {
				parts[i] = p.Type.String()
			}
		}
		return fmt.Sprintf("func(%s) -> %s", join(parts, ", "), t.Return)
	case Generic:
		parts := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s@[%s]", t.Base, join(parts, ", "))
	case TypeParam:
		return t.Name
	default:
		return t.Name
	}
}

func join(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

// Equal reports whether two types are interchangeable: name-based for
// aggregate/type-param/enum (after alias resolution, assumed already
// applied by the caller), structural for compound types.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case Array:
		return Equal(a.Elem, b.Elem) && (a.Length < 0 || b.Length < 0 || a.Length == b.Length)
	case Pointer:
		return a.PtrMut == b.PtrMut && Equal(a.Pointee, b.Pointee)
	case Function:
		if len(a.Params) != len(b.Params) || !Equal(a.Return, b.Return) {
			return false
		}
		for i := range a.Params {
			if a.Params[i].Mut != b.Params[i].Mut || !Equal(a.Params[i].Type, b.Params[i].Type) {
				return false
			}
		}
		return true
	case Generic:
		if len(a.TypeArgs) != len(b.TypeArgs) || !Equal(a.Base, b.Base) {
			return false
		}
		for i := range a.TypeArgs {
			if !Equal(a.TypeArgs[i], b.TypeArgs[i]) {
				return false
			}
		}
		return true
	case Aggregate, TypeParam, Enum:
		return a.Name == b.Name
	default:
		// Primitives: Tag equality already confirmed above.
		return true
	}
}

// widerFloat returns the wider of two float tags.
func widerFloat(a, b Tag) Tag {
	if a == Float64 || b == Float64 {
		return Float64
	}
	return Float32
}

// Promote resolves the result tag of a mixed-type numeric operation:
// for ordered integers the wider signed type; mixed int/uint promotes
// to a wider signed type when possible, else float64; any mix with
// float uses the wider float.
func Promote(a, b Tag) (Tag, bool) {
	if a == b {
		return a, false
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		return Unresolved, false
	}
	if a.IsFloat() || b.IsFloat() {
		if a.IsFloat() && b.IsFloat() {
			return widerFloat(a, b), a != b
		}
		// One float, one integer: widest float wins outright.
		if a.IsFloat() {
			return a, true
		}
		return b, true
	}
	wa, wb := bitWidth(a), bitWidth(b)
	if a.IsSigned() && b.IsSigned() {
		if wa >= wb {
			return a, a != b
		}
		return b, true
	}
	if a.IsUnsigned() && b.IsUnsigned() {
		if wa >= wb {
			return a, a != b
		}
		return b, true
	}
	// Mixed signed/unsigned: promote to a wider signed type if one
	// exists that can hold both; otherwise float64.
	signed, unsigned := a, b
	if b.IsSigned() {
		signed, unsigned = b, a
	}
	ws, wu := bitWidth(signed), bitWidth(unsigned)
	if ws > wu {
		return signed, true
	}
	switch wu {
	case 8:
		return Int16, true
	case 16:
		return Int32, true
	case 32:
		return Int64, true
	default:
		return Float64, true
	}
}
