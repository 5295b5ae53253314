package types

import "fmt"

// Unqualified strips every const/volatile layer from the outside of t.
func Unqualified(t Type) Type {
	for {
		q, ok := t.(*QualifiedType)
		if !ok {
			return t
		}
		t = q.Base
	}
}

// IsPointer checks if a type is a pointer type, looking through qualifiers
func IsPointer(t Type) bool {
	_, ok := Unqualified(t).(*PointerType)
	return ok
}

// IsArray checks if a type is an array type, looking through qualifiers
func IsArray(t Type) bool {
	_, ok := Unqualified(t).(*ArrayType)
	return ok
}

// IsStruct checks if a type is a struct type, looking through qualifiers
func IsStruct(t Type) bool {
	_, ok := Unqualified(t).(*StructType)
	return ok
}

// IsFunction checks if a type is a function type
func IsFunction(t Type) bool {
	_, ok := Unqualified(t).(*FunctionType)
	return ok
}

// IsIntegral checks if a type is char, short, int or long (any signedness)
func IsIntegral(t Type) bool {
	b, ok := Unqualified(t).(*BasicType)
	return ok && b.Kind != Void
}

// IsVoid checks if a type is void
func IsVoid(t Type) bool {
	b, ok := Unqualified(t).(*BasicType)
	return ok && b.Kind == Void
}

// IsScalar checks if a type can be used as a condition: integral or pointer
func IsScalar(t Type) bool {
	return IsIntegral(t) || IsPointer(t)
}

// HasBase reports whether t wraps another type (pointer, array, qualified).
func HasBase(t Type) bool {
	switch t.(type) {
	case *PointerType, *ArrayType, *QualifiedType:
		return true
	}
	return false
}

// BaseOf returns the type directly wrapped by t. It panics for variants
// without a base; check HasBase first.
func BaseOf(t Type) Type {
	switch v := t.(type) {
	case *PointerType:
		return v.Base
	case *ArrayType:
		return v.Base
	case *QualifiedType:
		return v.Base
	}
	panic(fmt.Sprintf("types: %s has no base type", t))
}

// Pointee returns the element type of a (possibly qualified) pointer or array.
func Pointee(t Type) (Type, bool) {
	switch v := Unqualified(t).(type) {
	case *PointerType:
		return v.Base, true
	case *ArrayType:
		return v.Base, true
	}
	return nil, false
}

// IsConst reports whether any qualifier layer on the outside of t is const.
func IsConst(t Type) bool {
	return hasQualifier(t, Const)
}

// IsVolatile reports whether any qualifier layer on the outside of t is volatile.
func IsVolatile(t Type) bool {
	return hasQualifier(t, Volatile)
}

func hasQualifier(t Type, want Qualifier) bool {
	for {
		q, ok := t.(*QualifiedType)
		if !ok {
			return false
		}
		if q.Qualifier == want {
			return true
		}
		t = q.Base
	}
}

// IsLvalue reports whether t may denote a storage location. Only types made
// with AsRvalue (literals, casts) are not.
func IsLvalue(t Type) bool {
	return !t.isRvalue()
}

// Members returns struct fields or function parameters, in order.
func Members(t Type) []Member {
	switch v := Unqualified(t).(type) {
	case *StructType:
		return v.Members()
	case *FunctionType:
		return v.Params
	}
	return nil
}

// FindMember looks a member up by name; the first match wins.
func FindMember(t Type, name string) (Member, bool) {
	for _, m := range Members(t) {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// IsSame checks structural equality of two types. The lvalue bit is ignored.
func IsSame(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(b)
}
