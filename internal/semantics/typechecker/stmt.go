package typechecker

import (
	"csema/internal/diagnostics"
	"csema/internal/frontend/ast"
	"csema/internal/types"
)

// checkCondition visits a controlling expression and requires it to be
// integral or a pointer. An omitted condition, as in for (;;), is accepted.
func (c *Checker) checkCondition(cond *ast.Node) error {
	if cond.Tag == ast.Empty {
		return nil
	}
	if err := c.visit(cond); err != nil {
		return err
	}
	if !types.IsScalar(cond.Type) {
		return diagnostics.InvalidCondition(cond.Loc(), cond.Type)
	}
	return nil
}

// visitReturnStatement accepts a bare return only in a void function.
func (c *Checker) visitReturnStatement(n *ast.Node) error {
	fn := c.scope.FunctionType()
	if fn == nil {
		return diagnostics.ReturnOutsideFunction(n.Loc())
	}
	if !types.IsVoid(fn.Return) {
		return diagnostics.MissingReturnValue(n.Loc(), fn.Return)
	}
	return nil
}

func (c *Checker) visitReturnExpressionStatement(n *ast.Node) error {
	fn := c.scope.FunctionType()
	if fn == nil {
		return diagnostics.ReturnOutsideFunction(n.Loc())
	}
	expr := n.Kid(0)
	if err := c.visit(expr); err != nil {
		return err
	}
	if !IsConvertible(fn.Return, expr.Type) {
		return diagnostics.InvalidReturn(expr.Loc(), fn.Return, expr.Type)
	}
	return nil
}

func (c *Checker) visitWhileStatement(n *ast.Node) error {
	if err := c.checkCondition(n.Kid(0)); err != nil {
		return err
	}
	return c.visitScoped(n.Kid(1))
}

// visitDoWhileStatement checks the body in its own scope, then the
// condition in the enclosing one: body locals are gone by then.
func (c *Checker) visitDoWhileStatement(n *ast.Node) error {
	if err := c.visitScoped(n.Kid(0)); err != nil {
		return err
	}
	return c.checkCondition(n.Kid(1))
}

// visitForStatement opens one scope for the three clauses and a nested one
// for the body.
func (c *Checker) visitForStatement(n *ast.Node) error {
	defer c.enterScope()()

	if err := c.visit(n.Kid(0)); err != nil {
		return err
	}
	if err := c.checkCondition(n.Kid(1)); err != nil {
		return err
	}
	if err := c.visit(n.Kid(2)); err != nil {
		return err
	}
	return c.visitScoped(n.Kid(3))
}

func (c *Checker) visitIfStatement(n *ast.Node) error {
	if err := c.checkCondition(n.Kid(0)); err != nil {
		return err
	}
	return c.visitScoped(n.Kid(1))
}

// visitIfElseStatement gives each branch a scope of its own, so locals of
// one branch are invisible to the other.
func (c *Checker) visitIfElseStatement(n *ast.Node) error {
	if err := c.checkCondition(n.Kid(0)); err != nil {
		return err
	}
	if err := c.visitScoped(n.Kid(1)); err != nil {
		return err
	}
	return c.visitScoped(n.Kid(2))
}
