package typechecker

import (
	"fmt"

	"csema/internal/diagnostics"
	"csema/internal/frontend/ast"
	"csema/internal/semantics/symbols"
	"csema/internal/semantics/table"
	"csema/internal/types"
	"csema/internal/utils/numeric"

	"github.com/pkg/errors"
)

// visitBasicType folds the specifier and qualifier tokens of a basic type.
// The result is wrapped in volatile first and const second, so const is the
// outermost layer when both are present.
func (c *Checker) visitBasicType(n *ast.Node) error {
	var (
		kind       types.BasicKind
		haveKind   bool
		sign       = types.SignUnspecified
		isConst    bool
		isVolatile bool
	)
	combine := func(tok *ast.Node) error {
		return diagnostics.InvalidType(n.Loc(), fmt.Sprintf("cannot combine %s with %s", tok.Tag, kind))
	}

	for _, tok := range n.Kids {
		switch tok.Tag {
		case ast.Signed, ast.Unsigned:
			if sign != types.SignUnspecified {
				return diagnostics.InvalidType(n.Loc(), "too many signed/unsigned")
			}
			sign = types.Signed
			if tok.Tag == ast.Unsigned {
				sign = types.Unsigned
			}
		case ast.Char, ast.Void:
			if haveKind {
				return combine(tok)
			}
			kind, haveKind = types.Char, true
			if tok.Tag == ast.Void {
				kind = types.Void
			}
		case ast.Short, ast.Long:
			if haveKind && kind != types.Int {
				return combine(tok)
			}
			kind, haveKind = types.Short, true
			if tok.Tag == ast.Long {
				kind = types.Long
			}
		case ast.Int:
			switch {
			case !haveKind:
				kind, haveKind = types.Int, true
			case kind == types.Short || kind == types.Long:
				// short int, long int
			default:
				return combine(tok)
			}
		case ast.Const:
			if isConst {
				return diagnostics.InvalidType(n.Loc(), "duplicate const")
			}
			isConst = true
		case ast.Volatile:
			if isVolatile {
				return diagnostics.InvalidType(n.Loc(), "duplicate volatile")
			}
			isVolatile = true
		case ast.Static, ast.Extern:
			// storage classes do not change the type
		default:
			return errors.Errorf("typechecker: unexpected %s in basic type at %s", tok.Tag, tok.Loc())
		}
	}

	if !haveKind {
		kind = types.Int
	}
	if kind == types.Void && (sign != types.SignUnspecified || isConst || isVolatile) {
		return diagnostics.InvalidType(n.Loc(), "void cannot be signed/unsigned or qualified")
	}

	var t types.Type = types.NewBasic(kind, sign)
	if isVolatile {
		t = types.NewQualified(t, types.Volatile)
	}
	if isConst {
		t = types.NewQualified(t, types.Const)
	}
	n.Type = t
	return nil
}

// visitStructType resolves a reference to a previously defined struct.
func (c *Checker) visitStructType(n *ast.Node) error {
	name := n.Kid(0).Text
	sym, ok := c.scope.LookupKind(table.StructKey(name), symbols.SymbolType)
	if !ok {
		return diagnostics.UndefinedStruct(n.Loc(), name)
	}
	n.Type, n.Str = sym.Type, sym.Name
	return nil
}

func (c *Checker) visitUnionType(n *ast.Node) error {
	return diagnostics.NewUnsupported("union types", n.Loc())
}

// declaratorType walks a declarator from the outside in, wrapping base once
// per pointer or array layer, and returns the innermost bound name. An
// abstract declarator binds the empty name.
func declaratorType(d *ast.Node, base types.Type) (types.Type, string, error) {
	t := base
	for {
		switch d.Tag {
		case ast.NamedDeclarator:
			return t, d.Kid(0).Text, nil
		case ast.AbstractDeclarator:
			return t, "", nil
		case ast.PointerDeclarator:
			t = types.NewPointer(t)
		case ast.ArrayDeclarator:
			size := d.Kid(1)
			n, err := numeric.StringToInteger(size.Text)
			if err != nil {
				return nil, "", diagnostics.InvalidType(size.Loc(), fmt.Sprintf("invalid array size %q", size.Text))
			}
			if n < 0 {
				return nil, "", diagnostics.InvalidType(size.Loc(), "array size is negative")
			}
			if !numeric.FitsInBitSize(n, 32) {
				return nil, "", diagnostics.InvalidType(size.Loc(), fmt.Sprintf("array size %s is too large", size.Text))
			}
			t = types.NewArray(t, int(n))
		default:
			return nil, "", errors.Errorf("typechecker: %s is not a declarator at %s", d.Tag, d.Loc())
		}
		d = d.Kid(0)
	}
}

// checkObjectType rejects types that cannot have storage: void, and structs
// (or arrays of them) whose member list is not known yet.
func checkObjectType(d *ast.Node, name string, t types.Type) error {
	elem := t
	for {
		a, ok := types.Unqualified(elem).(*types.ArrayType)
		if !ok {
			break
		}
		elem = a.Base
	}
	if types.IsVoid(elem) {
		return diagnostics.InvalidType(d.Loc(), fmt.Sprintf("variable '%s' declared void", name))
	}
	if s, ok := types.Unqualified(elem).(*types.StructType); ok && !s.IsComplete() {
		return diagnostics.IncompleteType(d.Loc(), s)
	}
	return nil
}

func (c *Checker) visitVariableDeclaration(n *ast.Node) error {
	_, err := c.declareVariables(n)
	return err
}

// declareVariables resolves the base type once and binds each declarator
// of a variable declaration in the current scope. The bound members are
// returned in declaration order.
func (c *Checker) declareVariables(n *ast.Node) ([]types.Member, error) {
	base := n.Kid(1)
	if err := c.visit(base); err != nil {
		return nil, err
	}

	declarators := n.Kid(2)
	members := make([]types.Member, 0, declarators.NumKids())
	for _, d := range declarators.Kids {
		t, name, err := declaratorType(d, base.Type)
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, diagnostics.InvalidType(d.Loc(), "declaration does not declare anything")
		}
		if err := checkObjectType(d, name, t); err != nil {
			return nil, err
		}
		if _, err := c.declare(symbols.SymbolVariable, name, t, d); err != nil {
			return nil, err
		}
		d.Type, d.Str = t, name
		members = append(members, types.Member{Name: name, Type: t})
	}
	return members, nil
}

// visitStructTypeDefinition registers the struct before its members are
// processed, so members may point to the struct being defined.
func (c *Checker) visitStructTypeDefinition(n *ast.Node) error {
	name := n.Kid(0).Text
	key := table.StructKey(name)
	if prev, ok := c.scope.LookupLocal(key); ok {
		return diagnostics.Redefinition(n.Loc(), declLoc(prev), "struct", name)
	}

	st := types.NewStruct(name)
	if _, err := c.scope.Define(symbols.SymbolType, key, st, n); err != nil {
		return errors.WithStack(err)
	}
	n.Type, n.Str = st, key

	members, err := c.structMembers(n.Kid(1))
	if err != nil {
		return err
	}
	return errors.WithStack(st.Complete(members))
}

// structMembers declares the fields in their own scope so member names
// neither leak into nor collide with the enclosing scope.
func (c *Checker) structMembers(fields *ast.Node) ([]types.Member, error) {
	defer c.enterScope()()

	var members []types.Member
	for _, decl := range fields.Kids {
		m, err := c.declareVariables(decl)
		if err != nil {
			return nil, err
		}
		members = append(members, m...)
	}
	return members, nil
}

// visitFunctionParameter resolves one parameter. Nothing is declared; the
// declarator is annotated and read back by the function handlers.
func (c *Checker) visitFunctionParameter(n *ast.Node) error {
	base := n.Kid(0)
	if err := c.visit(base); err != nil {
		return err
	}
	d := n.Kid(1)
	t, name, err := declaratorType(d, base.Type)
	if err != nil {
		return err
	}
	d.Type, d.Str = t, name
	n.Type, n.Str = t, name
	return nil
}

// functionType builds the signature of a declaration or definition. The
// parameters are resolved in a transient scope, popped before returning.
func (c *Checker) functionType(n *ast.Node) (*types.FunctionType, error) {
	ret := n.Kid(0)
	if err := c.visit(ret); err != nil {
		return nil, err
	}
	params, err := c.parameters(n.Kid(2))
	if err != nil {
		return nil, err
	}
	return types.NewFunction(ret.Type, params), nil
}

func (c *Checker) parameters(list *ast.Node) ([]types.Member, error) {
	defer c.enterScope()()

	params := make([]types.Member, 0, list.NumKids())
	for _, p := range list.Kids {
		if err := c.visit(p); err != nil {
			return nil, err
		}
		params = append(params, types.Member{Name: p.Str, Type: p.Type})
	}

	// f(void) takes no arguments
	if len(params) == 1 && params[0].Name == "" && types.IsSame(params[0].Type, types.TypeVoid) {
		return []types.Member{}, nil
	}
	for i, p := range params {
		if types.IsVoid(p.Type) {
			return nil, diagnostics.InvalidType(list.Kid(i).Loc(), "parameter has void type")
		}
	}
	return params, nil
}

func (c *Checker) visitFunctionDeclaration(n *ast.Node) error {
	fn, err := c.functionType(n)
	if err != nil {
		return err
	}
	name := n.Kid(1).Text
	n.Type, n.Str = fn, name

	// a prototype never follows another declaration of the same name
	_, err = c.declare(symbols.SymbolFunction, name, fn, n)
	return err
}

// visitFunctionDefinition either defines a fresh function or completes an
// earlier prototype; a second body is a redefinition.
func (c *Checker) visitFunctionDefinition(n *ast.Node) error {
	fn, err := c.functionType(n)
	if err != nil {
		return err
	}
	name := n.Kid(1).Text
	n.Type, n.Str = fn, name

	if prev, ok := c.scope.LookupLocal(name); ok {
		switch {
		case prev.Kind != symbols.SymbolFunction:
			return diagnostics.RedeclaredSymbol(n.Loc(), declLoc(prev), name)
		case prev.Defined:
			return diagnostics.Redefinition(n.Loc(), declLoc(prev), "function", name)
		}
		prev.Defined = true
		prev.Decl = n
	} else if _, err := c.scope.Define(symbols.SymbolFunction, name, fn, n); err != nil {
		return errors.WithStack(err)
	}

	return c.functionBody(n, fn)
}

// functionBody binds the parameters in a scope carrying the function type,
// then checks the body in a nested scope of its own.
func (c *Checker) functionBody(n *ast.Node, fn *types.FunctionType) error {
	defer c.enterScope()()
	c.scope.SetFunctionType(fn)

	for _, p := range n.Kid(2).Kids {
		d := p.Kid(1)
		if d.Str == "" {
			continue
		}
		if _, err := c.declare(symbols.SymbolVariable, d.Str, d.Type, d); err != nil {
			return err
		}
	}

	defer c.enterScope()()
	return c.visit(n.Kid(3))
}
