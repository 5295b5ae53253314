package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constInt() Type { return NewQualified(NewBasic(Int, SignUnspecified), Const) }

func TestTypeString(t *testing.T) {
	s := NewStruct("S")
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeInt, "int"},
		{TypeVoid, "void"},
		{NewBasic(Char, Unsigned), "unsigned char"},
		{NewBasic(Char, Signed), "char"},
		{NewBasic(Long, Signed), "long"},
		{constInt(), "const int"},
		{NewPointer(NewQualified(TypeChar, Const)), "pointer to const char"},
		{NewArray(NewPointer(TypeInt), 3), "array of 3 pointer to int"},
		{s, "struct S"},
		{NewFunction(TypeInt, []Member{{"a", TypeInt}, {"b", TypeInt}}), "function (int, int) returning int"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestIsSame(t *testing.T) {
	s1 := NewStruct("S")
	s2 := NewStruct("S")

	tests := []struct {
		name string
		a, b Type
		same bool
	}{
		{"int int", TypeInt, NewBasic(Int, SignUnspecified), true},
		{"int unsigned", TypeInt, NewBasic(Int, Unsigned), false},
		{"int long", TypeInt, TypeLong, false},
		{"qualified", constInt(), constInt(), true},
		{"qualifier matters", constInt(), TypeInt, false},
		{"pointer", NewPointer(TypeInt), NewPointer(TypeInt), true},
		{"pointer base differs", NewPointer(TypeInt), NewPointer(TypeChar), false},
		{"array len", NewArray(TypeInt, 3), NewArray(TypeInt, 4), false},
		{"array", NewArray(TypeInt, 3), NewArray(TypeInt, 3), true},
		{"same struct", s1, s1, true},
		{"distinct structs", s1, s2, false},
		{"pointer vs array", NewPointer(TypeInt), NewArray(TypeInt, 1), false},
		{"functions", NewFunction(TypeInt, []Member{{"a", TypeInt}}), NewFunction(TypeInt, []Member{{"b", TypeInt}}), true},
		{"function arity", NewFunction(TypeInt, nil), NewFunction(TypeInt, []Member{{"b", TypeInt}}), false},
		{"rvalue ignored", AsRvalue(TypeInt), TypeInt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, IsSame(tt.a, tt.b))
			assert.Equal(t, tt.same, IsSame(tt.b, tt.a))
		})
	}
}

func TestQualifierLookupAnyDepth(t *testing.T) {
	constVolatile := NewQualified(NewQualified(TypeInt, Volatile), Const)
	volatileConst := NewQualified(NewQualified(TypeInt, Const), Volatile)

	for _, typ := range []Type{constVolatile, volatileConst} {
		assert.True(t, IsConst(typ), typ.String())
		assert.True(t, IsVolatile(typ), typ.String())
		assert.True(t, IsIntegral(typ), typ.String())
	}

	// qualifiers below a pointer belong to the pointee
	p := NewPointer(constVolatile)
	assert.False(t, IsConst(p))
	assert.False(t, IsVolatile(p))
}

func TestPredicates(t *testing.T) {
	s := NewStruct("S")
	fn := NewFunction(TypeVoid, nil)
	arr := NewArray(TypeChar, 8)
	ptr := NewPointer(TypeInt)

	assert.True(t, IsPointer(ptr))
	assert.True(t, IsArray(arr))
	assert.True(t, IsStruct(s))
	assert.True(t, IsFunction(fn))
	assert.True(t, IsIntegral(TypeChar))
	assert.False(t, IsIntegral(TypeVoid))
	assert.True(t, IsVoid(TypeVoid))
	assert.True(t, IsScalar(ptr))
	assert.False(t, IsScalar(s))

	assert.True(t, HasBase(ptr))
	assert.True(t, HasBase(arr))
	assert.True(t, HasBase(constInt()))
	assert.False(t, HasBase(TypeInt))
	assert.False(t, HasBase(s))

	assert.Same(t, TypeInt, BaseOf(ptr))
	assert.Same(t, TypeChar, BaseOf(arr))
	assert.Panics(t, func() { BaseOf(TypeInt) })

	elem, ok := Pointee(NewQualified(ptr, Const))
	require.True(t, ok)
	assert.Same(t, TypeInt, elem)
	_, ok = Pointee(TypeInt)
	assert.False(t, ok)
}

func TestLvalueFlag(t *testing.T) {
	assert.True(t, IsLvalue(TypeInt))

	r := AsRvalue(TypeInt)
	assert.False(t, IsLvalue(r))
	assert.True(t, IsLvalue(TypeInt), "AsRvalue must not touch its argument")

	p := NewPointer(NewQualified(TypeChar, Const))
	rp := AsRvalue(p)
	assert.False(t, IsLvalue(rp))
	assert.True(t, IsPointer(rp))
	assert.True(t, IsSame(p, rp))
}

func TestStructComplete(t *testing.T) {
	s := NewStruct("Node")
	assert.False(t, s.IsComplete())

	next := NewPointer(s)
	require.NoError(t, s.Complete([]Member{{"value", TypeInt}, {"next", next}}))
	assert.True(t, s.IsComplete())
	assert.Error(t, s.Complete(nil))

	m, ok := FindMember(s, "next")
	require.True(t, ok)
	assert.Same(t, next, m.Type)
	_, ok = FindMember(s, "Next")
	assert.False(t, ok, "member lookup is case-sensitive")

	// a self-referential struct compares without recursing forever
	assert.True(t, IsSame(next, NewPointer(s)))

	// an rvalue copy still sees the members and is the same struct
	r := AsRvalue(s)
	assert.Len(t, Members(r), 2)
	assert.True(t, IsSame(r, s))
}

func TestFunctionMembers(t *testing.T) {
	fn := NewFunction(TypeInt, []Member{{"a", TypeInt}, {"b", TypeChar}})
	params := Members(fn)
	require.Len(t, params, 2)
	assert.Equal(t, "a", params[0].Name)
	assert.Equal(t, "b", params[1].Name)

	m, ok := FindMember(fn, "b")
	require.True(t, ok)
	assert.Same(t, TypeChar, m.Type)
}
