package typechecker

import "csema/internal/types"

// IsConvertible reports whether a value of type source may be used where
// target is expected: assignment, argument passing and return. Identical
// types convert, as do any two integral types, and arrays and pointers
// whose element types convert.
func IsConvertible(target, source types.Type) bool {
	if types.IsSame(target, source) {
		return true
	}
	if types.IsIntegral(target) && types.IsIntegral(source) {
		return true
	}

	arrayInvolved := types.IsArray(target) || types.IsArray(source)
	if !arrayInvolved {
		return false
	}
	t, ok := types.Pointee(target)
	if !ok {
		return false
	}
	s, ok := types.Pointee(source)
	if !ok {
		return false
	}
	return IsConvertible(t, s)
}

// PointerCompatible reports whether pointer source may be assigned to
// pointer target. Both chains are walked in lock-step; at no level may
// source carry a const or volatile that target lacks, and a pointer level
// may not meet a non-pointer one. Only qualifiers are compared where the
// chains end, so the pointed-to types themselves may differ.
func PointerCompatible(target, source types.Type) bool {
	for {
		if types.IsConst(source) && !types.IsConst(target) {
			return false
		}
		if types.IsVolatile(source) && !types.IsVolatile(target) {
			return false
		}

		t, s := types.Unqualified(target), types.Unqualified(source)
		if types.IsVoid(t) || types.IsVoid(s) {
			return true
		}
		if !types.HasBase(t) || !types.HasBase(s) {
			// one chain is longer than the other
			return types.HasBase(t) == types.HasBase(s)
		}
		if types.IsPointer(t) != types.IsPointer(s) {
			return false
		}
		target, source = types.BaseOf(t), types.BaseOf(s)
	}
}
