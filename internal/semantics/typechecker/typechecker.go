// Package typechecker is the semantic analysis pass. It walks a parsed
// syntax tree top-down, binds every identifier to a declaration, resolves
// the type of every declarator and expression, and stops at the first
// violation of the language's static rules.
package typechecker

import (
	"io"

	"csema/internal/diagnostics"
	"csema/internal/frontend/ast"
	"csema/internal/semantics/symbols"
	"csema/internal/semantics/table"
	"csema/internal/source"
	"csema/internal/types"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Checker holds the state of one analysis: the global scope, the scope
// currently being filled and a logger. It is not safe for concurrent use.
type Checker struct {
	global *table.SymbolTable
	scope  *table.SymbolTable
	log    *logrus.Entry
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger routes trace output (handler entry, scope push/pop) to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Checker) {
		c.log = l.WithField("phase", "semantics")
	}
}

// New creates a Checker with an empty global scope.
func New(opts ...Option) *Checker {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	global := table.NewSymbolTable(nil)
	c := &Checker{
		global: global,
		scope:  global,
		log:    logrus.NewEntry(quiet),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Globals returns the outermost scope. It survives the pass and lists every
// top-level variable, function and struct.
func (c *Checker) Globals() *table.SymbolTable {
	return c.global
}

// Check analyzes the tree rooted at root, annotating nodes in place. The
// returned error is a *diagnostics.Diagnostic for a rule violation, or wraps
// a *diagnostics.Unsupported for constructs outside the supported language.
// A second call continues in the same global scope.
func (c *Checker) Check(root *ast.Node) error {
	if root == nil {
		return errors.New("typechecker: nil syntax tree")
	}
	return c.visit(root)
}

// Check runs a fresh Checker over root and returns its global scope.
func Check(root *ast.Node, opts ...Option) (*table.SymbolTable, error) {
	c := New(opts...)
	if err := c.Check(root); err != nil {
		return nil, err
	}
	return c.Globals(), nil
}

type handler func(c *Checker, n *ast.Node) error

// handlers maps every construct tag to its rule. Filled in init because the
// handlers themselves recurse through visit.
var handlers map[ast.Tag]handler

func init() {
	handlers = map[ast.Tag]handler{
		ast.Empty:           (*Checker).visitNothing,
		ast.TranslationUnit: (*Checker).visitChildren,

		// declarations
		ast.VariableDeclaration:   (*Checker).visitVariableDeclaration,
		ast.BasicType:             (*Checker).visitBasicType,
		ast.StructType:            (*Checker).visitStructType,
		ast.UnionType:             (*Checker).visitUnionType,
		ast.StructTypeDefinition:  (*Checker).visitStructTypeDefinition,
		ast.FieldDefinitionList:   (*Checker).visitChildren,
		ast.DeclaratorList:        (*Checker).visitMisplaced,
		ast.NamedDeclarator:       (*Checker).visitMisplaced,
		ast.AbstractDeclarator:    (*Checker).visitMisplaced,
		ast.PointerDeclarator:     (*Checker).visitMisplaced,
		ast.ArrayDeclarator:       (*Checker).visitMisplaced,
		ast.FunctionDeclaration:   (*Checker).visitFunctionDeclaration,
		ast.FunctionDefinition:    (*Checker).visitFunctionDefinition,
		ast.FunctionParameterList: (*Checker).visitChildren,
		ast.FunctionParameter:     (*Checker).visitFunctionParameter,

		// statements
		ast.StatementList:             (*Checker).visitChildren,
		ast.ExpressionStatement:       (*Checker).visitChildren,
		ast.ReturnStatement:           (*Checker).visitReturnStatement,
		ast.ReturnExpressionStatement: (*Checker).visitReturnExpressionStatement,
		ast.WhileStatement:            (*Checker).visitWhileStatement,
		ast.DoWhileStatement:          (*Checker).visitDoWhileStatement,
		ast.ForStatement:              (*Checker).visitForStatement,
		ast.IfStatement:               (*Checker).visitIfStatement,
		ast.IfElseStatement:           (*Checker).visitIfElseStatement,

		// expressions
		ast.BinaryExpression:           (*Checker).visitBinaryExpression,
		ast.UnaryExpression:            (*Checker).visitUnaryExpression,
		ast.PostfixExpression:          (*Checker).visitPostfixExpression,
		ast.ConditionalExpression:      (*Checker).visitConditionalExpression,
		ast.CastExpression:             (*Checker).visitCastExpression,
		ast.FunctionCallExpression:     (*Checker).visitFunctionCallExpression,
		ast.ArgumentExpressionList:     (*Checker).visitChildren,
		ast.FieldRefExpression:         (*Checker).visitFieldRefExpression,
		ast.IndirectFieldRefExpression: (*Checker).visitIndirectFieldRefExpression,
		ast.ArrayElementRefExpression:  (*Checker).visitArrayElementRefExpression,
		ast.VariableRef:                (*Checker).visitVariableRef,
		ast.LiteralValue:               (*Checker).visitLiteralValue,
	}
}

// visit dispatches n to the handler for its tag. Token leaves carry no
// rules of their own; their parents read them directly.
func (c *Checker) visit(n *ast.Node) error {
	if n.Tag.IsToken() {
		return nil
	}
	h, ok := handlers[n.Tag]
	if !ok {
		return errors.Errorf("typechecker: no handler for %s at %s", n.Tag, n.Loc())
	}
	if c.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		c.log.WithFields(logrus.Fields{"tag": n.Tag.String(), "line": n.Start.Line}).Trace("visit")
	}
	return h(c, n)
}

func (c *Checker) visitNothing(*ast.Node) error { return nil }

func (c *Checker) visitChildren(n *ast.Node) error {
	for _, kid := range n.Kids {
		if err := c.visit(kid); err != nil {
			return err
		}
	}
	return nil
}

// visitMisplaced rejects declarator nodes reached outside a declaration;
// declarations consume them through declaratorType.
func (c *Checker) visitMisplaced(n *ast.Node) error {
	return errors.Errorf("typechecker: %s outside of a declaration at %s", n.Tag, n.Loc())
}

// enterScope pushes a scope and returns the matching pop, meant to be
// deferred so every exit path unwinds:
//
//	defer c.enterScope()()
func (c *Checker) enterScope() func() {
	scope := table.NewSymbolTable(c.scope)
	c.scope = scope
	c.log.WithField("depth", scope.Depth()).Debug("enter scope")
	return func() {
		c.scope = scope.Parent()
		c.log.WithField("depth", scope.Depth()).Debug("leave scope")
	}
}

// visitScoped visits n inside a fresh scope.
func (c *Checker) visitScoped(n *ast.Node) error {
	defer c.enterScope()()
	return c.visit(n)
}

// declare binds name in the current scope, reporting a clash with any
// symbol already declared there.
func (c *Checker) declare(kind symbols.SymbolKind, name string, typ types.Type, decl *ast.Node) (*symbols.Symbol, error) {
	if prev, ok := c.scope.LookupLocal(name); ok {
		return nil, diagnostics.RedeclaredSymbol(decl.Loc(), declLoc(prev), name)
	}
	sym, err := c.scope.Declare(kind, name, typ, decl)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return sym, nil
}

func declLoc(sym *symbols.Symbol) source.Location {
	if sym.Decl == nil {
		return source.Location{}
	}
	return sym.Decl.Loc()
}
