package typechecker

import (
	"fmt"

	"csema/internal/diagnostics"
	"csema/internal/frontend/ast"
	"csema/internal/semantics/symbols"
	"csema/internal/types"

	"github.com/pkg/errors"
)

// visitBinaryExpression types both operands left to right, then applies the
// operator's rule. The result takes the left operand's type and is never an
// assignment target.
func (c *Checker) visitBinaryExpression(n *ast.Node) error {
	op, left, right := n.Kid(0), n.Kid(1), n.Kid(2)
	if err := c.visit(left); err != nil {
		return err
	}
	if err := c.visit(right); err != nil {
		return err
	}
	lt, rt := left.Type, right.Type

	switch op.Tag {
	case ast.Assign:
		if err := checkAssignment(n, left, rt); err != nil {
			return err
		}
	case ast.Asterisk, ast.Divide, ast.Mod:
		if types.IsPointer(lt) || types.IsPointer(rt) {
			return diagnostics.InvalidOperation(n.Loc(), fmt.Sprintf("pointer operand to '%s'", op.Tag))
		}
		fallthrough
	case ast.Plus, ast.Minus, ast.LT, ast.GT, ast.LTE, ast.GTE,
		ast.Equality, ast.Inequality, ast.LogicalAnd, ast.LogicalOr:
		if !arithmeticOperands(lt, rt) {
			return diagnostics.InvalidOperation(n.Loc(),
				fmt.Sprintf("invalid operands to '%s': (%s) and (%s)", op.Tag, lt, rt))
		}
	default:
		return errors.Errorf("typechecker: unknown binary operator %s at %s", op.Tag, op.Loc())
	}

	n.Type = lt
	n.Value = ast.Computed
	return nil
}

// arithmeticOperands allows two integral operands, or one integral operand
// with a pointer for pointer arithmetic and comparison.
func arithmeticOperands(l, r types.Type) bool {
	switch {
	case types.IsIntegral(l) && types.IsIntegral(r):
		return true
	case types.IsIntegral(l) && types.IsPointer(r):
		return true
	case types.IsPointer(l) && types.IsIntegral(r):
		return true
	}
	return false
}

// checkAssignment validates left = src. Pointer pairs go through the
// qualifier rule, everything else through plain convertibility.
func checkAssignment(n, left *ast.Node, src types.Type) error {
	target := left.Type
	if !types.IsLvalue(target) || left.Value == ast.Computed {
		return diagnostics.NotAssignable(n.Loc())
	}
	if types.IsConst(target) {
		return diagnostics.ConstAssignment(n.Loc(), target)
	}
	if types.IsPointer(target) && types.IsPointer(src) {
		if !PointerCompatible(target, src) {
			return diagnostics.TypeMismatch(n.Loc(), target, src)
		}
		return nil
	}
	if !IsConvertible(target, src) {
		return diagnostics.TypeMismatch(n.Loc(), target, src)
	}
	return nil
}

func (c *Checker) visitUnaryExpression(n *ast.Node) error {
	op, operand := n.Kid(0), n.Kid(1)
	if err := c.visit(operand); err != nil {
		return err
	}
	t := operand.Type

	switch op.Tag {
	case ast.Asterisk:
		p, ok := types.Unqualified(t).(*types.PointerType)
		if !ok {
			return diagnostics.NotPointer(n.Loc(), t)
		}
		// the pointee names storage, so the result stays an lvalue
		n.Type, n.Str = p.Base, operand.Str
	case ast.Ampersand:
		if !types.IsLvalue(t) || operand.Value == ast.Computed {
			return diagnostics.NotAddressable(n.Loc())
		}
		n.Type, n.Str = types.NewPointer(t), operand.Str
		n.Value = ast.Computed
	case ast.Increment, ast.Decrement:
		return checkIncDec(n, op, operand)
	case ast.Plus, ast.Minus, ast.LogicalNot, ast.BitwiseNot:
		if types.IsPointer(t) {
			return diagnostics.InvalidOperation(n.Loc(), fmt.Sprintf("cannot apply '%s' to a pointer", op.Tag))
		}
		if !types.IsIntegral(t) {
			return diagnostics.InvalidOperation(n.Loc(), fmt.Sprintf("invalid operand to '%s': (%s)", op.Tag, t))
		}
		n.Type = t
		n.Value = ast.Computed
	default:
		return errors.Errorf("typechecker: unknown unary operator %s at %s", op.Tag, op.Loc())
	}
	return nil
}

func (c *Checker) visitPostfixExpression(n *ast.Node) error {
	op, operand := n.Kid(0), n.Kid(1)
	if op.Tag != ast.Increment && op.Tag != ast.Decrement {
		return errors.Errorf("typechecker: unknown postfix operator %s at %s", op.Tag, op.Loc())
	}
	if err := c.visit(operand); err != nil {
		return err
	}
	return checkIncDec(n, op, operand)
}

// checkIncDec applies the rule shared by prefix and postfix ++ and --: the
// operand is a writable scalar lvalue, the result a computed value of the
// same type.
func checkIncDec(n, op, operand *ast.Node) error {
	t := operand.Type
	if !types.IsLvalue(t) || operand.Value == ast.Computed {
		return diagnostics.NotAssignable(n.Loc())
	}
	if types.IsConst(t) {
		return diagnostics.ConstAssignment(n.Loc(), t)
	}
	if !types.IsScalar(t) {
		return diagnostics.InvalidOperation(n.Loc(), fmt.Sprintf("invalid operand to '%s': (%s)", op.Tag, t))
	}
	n.Type, n.Str = t, operand.Str
	n.Value = ast.Computed
	return nil
}

// visitConditionalExpression types c ? a : b as the then branch; the else
// branch must convert to it.
func (c *Checker) visitConditionalExpression(n *ast.Node) error {
	cond, then, els := n.Kid(0), n.Kid(1), n.Kid(2)
	if err := c.checkCondition(cond); err != nil {
		return err
	}
	if err := c.visit(then); err != nil {
		return err
	}
	if err := c.visit(els); err != nil {
		return err
	}

	tt, et := then.Type, els.Type
	ok := IsConvertible(tt, et)
	if types.IsPointer(tt) && types.IsPointer(et) {
		ok = PointerCompatible(tt, et)
	}
	if !ok {
		return diagnostics.TypeMismatch(els.Loc(), tt, et)
	}
	n.Type = tt
	n.Value = ast.Computed
	return nil
}

// visitCastExpression accepts (T) e when e converts to T, when both are
// scalar, or when T is void. The result is a value of type T.
func (c *Checker) visitCastExpression(n *ast.Node) error {
	base, decl, operand := n.Kid(0), n.Kid(1), n.Kid(2)
	if err := c.visit(base); err != nil {
		return err
	}
	target, name, err := declaratorType(decl, base.Type)
	if err != nil {
		return err
	}
	if name != "" {
		return diagnostics.InvalidType(decl.Loc(), fmt.Sprintf("type name may not declare '%s'", name))
	}
	decl.Type = target

	if err := c.visit(operand); err != nil {
		return err
	}
	src := operand.Type
	legal := types.IsVoid(target) ||
		IsConvertible(target, src) ||
		(types.IsScalar(target) && types.IsScalar(src))
	if !legal {
		return diagnostics.InvalidCast(n.Loc(), target, src)
	}

	n.Type = types.AsRvalue(target)
	n.Value = ast.Computed
	return nil
}

// visitFunctionCallExpression resolves the callee among functions only,
// then matches arguments to parameters by position.
func (c *Checker) visitFunctionCallExpression(n *ast.Node) error {
	callee, args := n.Kid(0), n.Kid(1)
	name := callee.Kid(0).Text

	sym, ok := c.scope.LookupKind(name, symbols.SymbolFunction)
	if !ok {
		if _, exists := c.scope.Lookup(name); exists {
			return diagnostics.NotCallable(callee.Loc(), name)
		}
		return diagnostics.UndefinedFunction(callee.Loc(), name)
	}
	fn, ok := sym.Type.(*types.FunctionType)
	if !ok {
		return errors.Errorf("typechecker: function %s has type %s", name, sym.Type)
	}
	callee.Type, callee.Str = fn, name

	if args.NumKids() != len(fn.Params) {
		return diagnostics.WrongArgumentCount(n.Loc(), name, len(fn.Params), args.NumKids())
	}
	for i, arg := range args.Kids {
		if err := c.visit(arg); err != nil {
			return err
		}
		param := fn.Params[i].Type
		if !IsConvertible(param, arg.Type) {
			return diagnostics.ArgumentMismatch(arg.Loc(), i, param, arg.Type)
		}
	}

	n.Type, n.Str = fn.Return, name
	n.Value = ast.Computed
	return nil
}

// visitFieldRefExpression types s.f. The result names storage exactly when
// the struct operand does.
func (c *Checker) visitFieldRefExpression(n *ast.Node) error {
	base, field := n.Kid(0), n.Kid(1)
	if err := c.visit(base); err != nil {
		return err
	}
	st, ok := types.Unqualified(base.Type).(*types.StructType)
	if !ok {
		return diagnostics.NotStruct(n.Loc(), ".", base.Type)
	}
	m, ok := types.FindMember(st, field.Text)
	if !ok {
		return diagnostics.FieldNotFound(field.Loc(), field.Text, st)
	}
	n.Type, n.Str = m.Type, field.Text
	n.Value = base.Value
	return nil
}

func (c *Checker) visitIndirectFieldRefExpression(n *ast.Node) error {
	base, field := n.Kid(0), n.Kid(1)
	if err := c.visit(base); err != nil {
		return err
	}
	var st *types.StructType
	if p, ok := types.Unqualified(base.Type).(*types.PointerType); ok {
		st, _ = types.Unqualified(p.Base).(*types.StructType)
	}
	if st == nil {
		return diagnostics.NotStruct(n.Loc(), "->", base.Type)
	}
	m, ok := types.FindMember(st, field.Text)
	if !ok {
		return diagnostics.FieldNotFound(field.Loc(), field.Text, st)
	}
	n.Type, n.Str = m.Type, field.Text
	return nil
}

// visitArrayElementRefExpression types a[i] like *(a + i).
func (c *Checker) visitArrayElementRefExpression(n *ast.Node) error {
	array, index := n.Kid(0), n.Kid(1)
	if err := c.visit(array); err != nil {
		return err
	}
	if err := c.visit(index); err != nil {
		return err
	}
	elem, ok := types.Pointee(array.Type)
	if !ok {
		return diagnostics.NotIndexable(array.Loc(), array.Type)
	}
	if !types.IsIntegral(index.Type) {
		return diagnostics.NonIntegralIndex(index.Loc(), index.Type)
	}
	n.Type, n.Str = elem, array.Str
	return nil
}

func (c *Checker) visitVariableRef(n *ast.Node) error {
	name := n.Kid(0).Text
	sym, ok := c.scope.Lookup(name)
	if !ok {
		return diagnostics.UndefinedSymbol(n.Loc(), name)
	}
	n.Type, n.Str = sym.Type, name
	return nil
}

// visitLiteralValue types constants. Literal types are never lvalues.
func (c *Checker) visitLiteralValue(n *ast.Node) error {
	lit := n.Kid(0)
	var t types.Type
	switch lit.Tag {
	case ast.StrLit:
		char := types.NewQualified(types.NewBasic(types.Char, types.Signed), types.Const)
		t = types.NewPointer(char)
	case ast.IntLit:
		t = types.NewBasic(types.Int, types.Signed)
	case ast.CharLit:
		t = types.NewBasic(types.Char, types.Signed)
	default:
		return errors.Errorf("typechecker: unknown literal %s at %s", lit.Tag, lit.Loc())
	}
	n.Type, n.Str = types.AsRvalue(t), lit.Text
	n.Value = ast.Computed
	return nil
}
