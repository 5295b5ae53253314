package diagnostics

import (
	"fmt"

	"csema/internal/source"
)

// Common diagnostic builders for type checker. Types are taken as
// fmt.Stringer and rendered in parentheses, e.g. (pointer to const char).

func quote(t fmt.Stringer) string {
	return "(" + t.String() + ")"
}

// UndefinedSymbol creates a diagnostic for undefined symbol
func UndefinedSymbol(loc source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("'%s' is not declared", name)).
		WithCode(ErrUndefinedSymbol).
		WithPrimaryLabel(loc, "not found in this scope").
		WithHelp("declare it before use, in this scope or an enclosing one")
}

// UndefinedFunction is UndefinedSymbol for call targets.
func UndefinedFunction(loc source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("function '%s' is not declared", name)).
		WithCode(ErrUndefinedSymbol).
		WithPrimaryLabel(loc, "no function with this name in scope")
}

// UndefinedStruct reports a reference to a struct that has no definition in scope.
func UndefinedStruct(loc source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("struct %s is not declared", name)).
		WithCode(ErrUndefinedSymbol).
		WithPrimaryLabel(loc, "unknown struct")
}

// RedeclaredSymbol creates a diagnostic for redeclared symbol
func RedeclaredSymbol(newLoc, prevLoc source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("'%s' is already declared in this scope", name)).
		WithCode(ErrRedeclaredSymbol).
		WithPrimaryLabel(newLoc, "redeclared here").
		WithSecondaryLabel(prevLoc, "previously declared here").
		WithHelp("use a different name or remove one of the declarations")
}

// Redefinition reports a second body for a function or struct.
func Redefinition(newLoc, prevLoc source.Location, what, name string) *Diagnostic {
	return NewError(fmt.Sprintf("redefinition of %s '%s'", what, name)).
		WithCode(ErrRedefinedSymbol).
		WithPrimaryLabel(newLoc, "redefined here").
		WithSecondaryLabel(prevLoc, "previously defined here")
}

// WrongArgumentCount creates a diagnostic for wrong number of arguments
func WrongArgumentCount(loc source.Location, name string, expected, found int) *Diagnostic {
	return NewError(fmt.Sprintf("wrong number of arguments to '%s'", name)).
		WithCode(ErrWrongArgumentCount).
		WithPrimaryLabel(loc, fmt.Sprintf("expected %d arguments, found %d", expected, found))
}

// ArgumentMismatch reports an argument not convertible to its parameter.
func ArgumentMismatch(loc source.Location, index int, param, arg fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("argument %d: cannot convert %s to %s", index+1, quote(arg), quote(param))).
		WithCode(ErrTypeMismatch).
		WithPrimaryLabel(loc, "argument has type "+quote(arg))
}

// NotCallable reports a call through a name that is not a function.
func NotCallable(loc source.Location, name string) *Diagnostic {
	return NewError(fmt.Sprintf("'%s' is not a function", name)).
		WithCode(ErrNotCallable).
		WithPrimaryLabel(loc, "called here")
}

// FieldNotFound creates a diagnostic for field not found
func FieldNotFound(loc source.Location, fieldName string, typ fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("field '%s' is not declared in %s", fieldName, typ)).
		WithCode(ErrFieldNotFound).
		WithPrimaryLabel(loc, typ.String()+" has no field "+fieldName).
		WithHelp("check the field name spelling")
}

// TypeMismatch reports a source type that cannot be converted to the target.
func TypeMismatch(loc source.Location, target, src fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("cannot convert %s to %s", quote(src), quote(target))).
		WithCode(ErrTypeMismatch).
		WithPrimaryLabel(loc, "type mismatch")
}

// InvalidOperation reports an operator applied to operands it does not accept.
func InvalidOperation(loc source.Location, message string) *Diagnostic {
	return NewError(message).
		WithCode(ErrInvalidOperation).
		WithPrimaryLabel(loc, "invalid operand")
}

// NotAssignable reports an assignment or increment whose target is not an lvalue.
func NotAssignable(loc source.Location) *Diagnostic {
	return NewError("cannot assign to non-lvalue").
		WithCode(ErrInvalidAssignment).
		WithPrimaryLabel(loc, "not a storage location")
}

// ConstAssignment reports a write through a const-qualified target.
func ConstAssignment(loc source.Location, typ fmt.Stringer) *Diagnostic {
	return NewError("cannot assign to const-qualified "+quote(typ)).
		WithCode(ErrConstantReassignment).
		WithPrimaryLabel(loc, "read-only")
}

// NotAddressable reports & applied to a value without storage.
func NotAddressable(loc source.Location) *Diagnostic {
	return NewError("cannot take the address of a non-lvalue").
		WithCode(ErrNotAddressable).
		WithPrimaryLabel(loc, "not a storage location")
}

// NotPointer reports * applied to a non-pointer.
func NotPointer(loc source.Location, typ fmt.Stringer) *Diagnostic {
	return NewError("cannot dereference a non-pointer "+quote(typ)).
		WithCode(ErrInvalidOperation).
		WithPrimaryLabel(loc, "not a pointer")
}

// NotIndexable reports [] applied to something other than a pointer or array.
func NotIndexable(loc source.Location, typ fmt.Stringer) *Diagnostic {
	return NewError("cannot index "+quote(typ)).
		WithCode(ErrNotIndexable).
		WithPrimaryLabel(loc, "not a pointer or array")
}

// NonIntegralIndex reports an index expression of non-integral type.
func NonIntegralIndex(loc source.Location, typ fmt.Stringer) *Diagnostic {
	return NewError("array index must be integral, found "+quote(typ)).
		WithCode(ErrNotIndexable).
		WithPrimaryLabel(loc, "index")
}

// NotStruct reports . or -> on an operand that is not a struct (pointer).
func NotStruct(loc source.Location, op string, typ fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("member access with '%s' on %s", op, quote(typ))).
		WithCode(ErrFieldNotFound).
		WithPrimaryLabel(loc, "no members")
}

// InvalidReturn reports a return value that does not match the function.
func InvalidReturn(loc source.Location, expected, found fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("cannot return %s from a function returning %s", quote(found), quote(expected))).
		WithCode(ErrInvalidReturn).
		WithPrimaryLabel(loc, "returned here")
}

// MissingReturnValue reports a bare return in a non-void function. C only
// warns here; the checked language subset makes it an error.
func MissingReturnValue(loc source.Location, expected fmt.Stringer) *Diagnostic {
	return NewError("return without a value in a function returning "+quote(expected)).
		WithCode(ErrInvalidReturn).
		WithPrimaryLabel(loc, "value expected").
		WithNote("this language subset requires a value on every return from a non-void function")
}

// ReturnOutsideFunction reports a return statement at file scope.
func ReturnOutsideFunction(loc source.Location) *Diagnostic {
	return NewError("return outside of a function").
		WithCode(ErrInvalidReturn).
		WithPrimaryLabel(loc, "not inside a function body")
}

// InvalidType reports an ill-formed type: bad specifier combinations,
// void objects, bad array sizes.
func InvalidType(loc source.Location, message string) *Diagnostic {
	return NewError(message).
		WithCode(ErrInvalidType).
		WithPrimaryLabel(loc, "invalid type")
}

// IncompleteType reports an object of a struct type whose members are not known yet.
func IncompleteType(loc source.Location, typ fmt.Stringer) *Diagnostic {
	return NewError("field or variable has incomplete type "+quote(typ)).
		WithCode(ErrIncompleteType).
		WithPrimaryLabel(loc, "incomplete type").
		WithHelp("use a pointer to the struct instead")
}

// InvalidCast reports a cast between unrelated types.
func InvalidCast(loc source.Location, target, src fmt.Stringer) *Diagnostic {
	return NewError(fmt.Sprintf("cannot cast %s to %s", quote(src), quote(target))).
		WithCode(ErrInvalidCast).
		WithPrimaryLabel(loc, "invalid cast")
}

// InvalidCondition reports a non-scalar condition.
func InvalidCondition(loc source.Location, typ fmt.Stringer) *Diagnostic {
	return NewError("condition must be integral or pointer, found "+quote(typ)).
		WithCode(ErrInvalidCondition).
		WithPrimaryLabel(loc, "condition")
}
