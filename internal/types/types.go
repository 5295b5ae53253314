package types

import (
	"fmt"
	"strings"
)

// Type is the semantic representation of a C type.
//
// Design principles:
// - Types are immutable once published (attached to a node or symbol)
// - Type equality is structural, see IsSame
// - All types can be displayed as strings
type Type interface {
	// String returns a human-readable representation of the type
	String() string

	// Equals checks structural equality with another type
	Equals(other Type) bool

	// isRvalue reports the per-instance "not an lvalue" bit
	isRvalue() bool

	// isType is a marker method to prevent external implementation
	isType()
}

// BasicKind enumerates the arithmetic base types of the language.
type BasicKind int

const (
	Void BasicKind = iota
	Char
	Short
	Int
	Long
)

func (k BasicKind) String() string {
	switch k {
	case Void:
		return "void"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	default:
		return "unknown"
	}
}

// Signedness is the tri-state sign of a basic type as written in source.
type Signedness int

const (
	SignUnspecified Signedness = iota
	Signed
	Unsigned
)

// Qualifier is a const or volatile wrapper.
type Qualifier int

const (
	Const Qualifier = iota
	Volatile
)

func (q Qualifier) String() string {
	if q == Const {
		return "const"
	}
	return "volatile"
}

// Member is a named, typed slot: a struct field or a function parameter.
type Member struct {
	Name string
	Type Type
}

func (m Member) String() string {
	if m.Name == "" {
		return m.Type.String()
	}
	return fmt.Sprintf("%s %s", m.Type.String(), m.Name)
}

// Basic Types

// BasicType represents void, char, short, int and long with their signedness
type BasicType struct {
	Kind   BasicKind
	Sign   Signedness
	rvalue bool
}

func NewBasic(kind BasicKind, sign Signedness) *BasicType {
	return &BasicType{Kind: kind, Sign: sign}
}

// IsSigned treats an unspecified sign as signed.
func (b *BasicType) IsSigned() bool { return b.Sign != Unsigned }

func (b *BasicType) String() string {
	if b.Sign == Unsigned {
		return "unsigned " + b.Kind.String()
	}
	return b.Kind.String()
}

func (b *BasicType) isType()        {}
func (b *BasicType) isRvalue() bool { return b.rvalue }
func (b *BasicType) Equals(other Type) bool {
	if o, ok := other.(*BasicType); ok {
		return b.Kind == o.Kind && b.IsSigned() == o.IsSigned()
	}
	return false
}

// Qualified Types

// QualifiedType wraps a type in const or volatile. Qualifiers may nest.
type QualifiedType struct {
	Base      Type
	Qualifier Qualifier
	rvalue    bool
}

func NewQualified(base Type, q Qualifier) *QualifiedType {
	return &QualifiedType{Base: base, Qualifier: q}
}

func (q *QualifiedType) String() string {
	return q.Qualifier.String() + " " + q.Base.String()
}

func (q *QualifiedType) isType()        {}
func (q *QualifiedType) isRvalue() bool { return q.rvalue }
func (q *QualifiedType) Equals(other Type) bool {
	if o, ok := other.(*QualifiedType); ok {
		return q.Qualifier == o.Qualifier && q.Base.Equals(o.Base)
	}
	return false
}

// Pointer Types

// PointerType represents T *
type PointerType struct {
	Base   Type
	rvalue bool
}

func NewPointer(base Type) *PointerType {
	return &PointerType{Base: base}
}

func (p *PointerType) String() string { return "pointer to " + p.Base.String() }
func (p *PointerType) isType()        {}
func (p *PointerType) isRvalue() bool { return p.rvalue }
func (p *PointerType) Equals(other Type) bool {
	if o, ok := other.(*PointerType); ok {
		return p.Base.Equals(o.Base)
	}
	return false
}

// Array Types

// ArrayType represents T [N]
type ArrayType struct {
	Base   Type
	Len    int
	rvalue bool
}

func NewArray(base Type, length int) *ArrayType {
	return &ArrayType{Base: base, Len: length}
}

func (a *ArrayType) String() string { return fmt.Sprintf("array of %d %s", a.Len, a.Base.String()) }
func (a *ArrayType) isType()        {}
func (a *ArrayType) isRvalue() bool { return a.rvalue }
func (a *ArrayType) Equals(other Type) bool {
	if o, ok := other.(*ArrayType); ok {
		return a.Len == o.Len && a.Base.Equals(o.Base)
	}
	return false
}

// Struct Types

// StructType represents a named struct. The member list is attached once,
// when the definition's body has been processed.
type StructType struct {
	Name     string
	members  []Member
	complete bool
	rvalue   bool
	def      *StructType // declaration this value was copied from, if any
}

func NewStruct(name string) *StructType {
	return &StructType{Name: name}
}

// Complete attaches the member list. It may only be called once.
func (s *StructType) Complete(members []Member) error {
	if s.complete {
		return fmt.Errorf("struct %s is already complete", s.Name)
	}
	s.members = append([]Member(nil), members...)
	s.complete = true
	return nil
}

// IsComplete reports whether the member list has been attached.
func (s *StructType) IsComplete() bool { return s.origin().complete }

// Members returns the fields in declaration order.
func (s *StructType) Members() []Member { return s.origin().members }

func (s *StructType) origin() *StructType {
	if s.def != nil {
		return s.def
	}
	return s
}

func (s *StructType) String() string { return "struct " + s.Name }
func (s *StructType) isType()        {}
func (s *StructType) isRvalue() bool { return s.rvalue }

// Equals holds only for the same declared struct; layout-identical structs
// with different declarations stay distinct.
func (s *StructType) Equals(other Type) bool {
	if o, ok := other.(*StructType); ok {
		return s.origin() == o.origin()
	}
	return false
}

// Function Types

// FunctionType represents a function signature: return type plus ordered parameters
type FunctionType struct {
	Return Type
	Params []Member
	rvalue bool
}

func NewFunction(ret Type, params []Member) *FunctionType {
	return &FunctionType{Return: ret, Params: params}
}

func (f *FunctionType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type.String()
	}
	return fmt.Sprintf("function (%s) returning %s", strings.Join(params, ", "), f.Return.String())
}

func (f *FunctionType) isType()        {}
func (f *FunctionType) isRvalue() bool { return f.rvalue }
func (f *FunctionType) Equals(other Type) bool {
	if o, ok := other.(*FunctionType); ok {
		if !f.Return.Equals(o.Return) || len(f.Params) != len(o.Params) {
			return false
		}
		// positional; parameter names do not matter
		for i := range f.Params {
			if !f.Params[i].Type.Equals(o.Params[i].Type) {
				return false
			}
		}
		return true
	}
	return false
}

// Commonly used types (initialized in init())
var (
	TypeVoid  Type
	TypeChar  Type
	TypeInt   Type
	TypeLong  Type
	TypeShort Type
)

func init() {
	TypeVoid = NewBasic(Void, SignUnspecified)
	TypeChar = NewBasic(Char, Signed)
	TypeInt = NewBasic(Int, Signed)
	TypeLong = NewBasic(Long, Signed)
	TypeShort = NewBasic(Short, Signed)
}

// AsRvalue returns a copy of t that is not an lvalue. t itself is untouched,
// so the result may be published independently.
func AsRvalue(t Type) Type {
	switch v := t.(type) {
	case *BasicType:
		c := *v
		c.rvalue = true
		return &c
	case *QualifiedType:
		c := *v
		c.rvalue = true
		return &c
	case *PointerType:
		c := *v
		c.rvalue = true
		return &c
	case *ArrayType:
		c := *v
		c.rvalue = true
		return &c
	case *StructType:
		return &StructType{Name: v.Name, rvalue: true, def: v.origin()}
	case *FunctionType:
		c := *v
		c.rvalue = true
		return &c
	}
	return t
}
