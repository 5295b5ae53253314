package typechecker

import (
	"testing"

	"csema/internal/diagnostics"
	"csema/internal/frontend/ast"
	"csema/internal/semantics/table"
	"csema/internal/source"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// Tree builders. Every node sits at test.c:1:1 unless moved with at.

var here = source.At("test.c", 1, 1)

func node(tag ast.Tag, kids ...*ast.Node) *ast.Node { return ast.New(tag, here, kids...) }
func tok(tag ast.Tag, text string) *ast.Node        { return ast.Leaf(tag, text, here) }
func ident(name string) *ast.Node                   { return tok(ast.Identifier, name) }
func empty() *ast.Node                              { return node(ast.Empty) }

func at(n *ast.Node, line, col int) *ast.Node {
	n.Location = source.At("test.c", line, col)
	return n
}

func unit(decls ...*ast.Node) *ast.Node { return node(ast.TranslationUnit, decls...) }

// basic builds a basic type from specifier tags, e.g. basic(ast.Unsigned, ast.Char).
func basic(specs ...ast.Tag) *ast.Node {
	kids := make([]*ast.Node, len(specs))
	for i, s := range specs {
		kids[i] = tok(s, s.String())
	}
	return node(ast.BasicType, kids...)
}

func intT() *ast.Node               { return basic(ast.Int) }
func charT() *ast.Node              { return basic(ast.Char) }
func voidT() *ast.Node              { return basic(ast.Void) }
func structT(name string) *ast.Node { return node(ast.StructType, ident(name)) }
func unionT(name string) *ast.Node  { return node(ast.UnionType, ident(name)) }
func named(name string) *ast.Node   { return node(ast.NamedDeclarator, ident(name)) }
func abstract() *ast.Node           { return node(ast.AbstractDeclarator) }
func ptr(d *ast.Node) *ast.Node     { return node(ast.PointerDeclarator, d) }
func arr(d *ast.Node, size string) *ast.Node {
	return node(ast.ArrayDeclarator, d, tok(ast.IntLit, size))
}

// decl builds "base d1, d2, ...;"
func decl(base *ast.Node, declarators ...*ast.Node) *ast.Node {
	return node(ast.VariableDeclaration, empty(), base, node(ast.DeclaratorList, declarators...))
}

// vars declares plain variables of one base type.
func vars(base *ast.Node, names ...string) *ast.Node {
	ds := make([]*ast.Node, len(names))
	for i, name := range names {
		ds[i] = named(name)
	}
	return decl(base, ds...)
}

func structDef(name string, fields ...*ast.Node) *ast.Node {
	return node(ast.StructTypeDefinition, ident(name), node(ast.FieldDefinitionList, fields...))
}

func param(base, d *ast.Node) *ast.Node { return node(ast.FunctionParameter, base, d) }

func params(ps ...*ast.Node) *ast.Node { return node(ast.FunctionParameterList, ps...) }

func funcDecl(ret *ast.Node, name string, ps ...*ast.Node) *ast.Node {
	return node(ast.FunctionDeclaration, ret, ident(name), params(ps...))
}

func funcDef(ret *ast.Node, name string, ps *ast.Node, body ...*ast.Node) *ast.Node {
	return node(ast.FunctionDefinition, ret, ident(name), ps, block(body...))
}

// fn wraps statements in "void f() { ... }" so they can be checked.
func fn(body ...*ast.Node) *ast.Node { return funcDef(voidT(), "f", params(), body...) }

func block(stmts ...*ast.Node) *ast.Node { return node(ast.StatementList, stmts...) }
func expr(e *ast.Node) *ast.Node         { return node(ast.ExpressionStatement, e) }
func ret(e *ast.Node) *ast.Node          { return node(ast.ReturnExpressionStatement, e) }
func retVoid() *ast.Node                 { return node(ast.ReturnStatement) }

func while(cond, body *ast.Node) *ast.Node   { return node(ast.WhileStatement, cond, body) }
func doWhile(body, cond *ast.Node) *ast.Node { return node(ast.DoWhileStatement, body, cond) }
func forStmt(init, cond, update, body *ast.Node) *ast.Node {
	return node(ast.ForStatement, init, cond, update, body)
}
func ifStmt(cond, then *ast.Node) *ast.Node { return node(ast.IfStatement, cond, then) }
func ifElse(cond, then, els *ast.Node) *ast.Node {
	return node(ast.IfElseStatement, cond, then, els)
}

func bin(op ast.Tag, l, r *ast.Node) *ast.Node {
	return node(ast.BinaryExpression, tok(op, op.String()), l, r)
}
func assign(l, r *ast.Node) *ast.Node { return bin(ast.Assign, l, r) }
func unary(op ast.Tag, e *ast.Node) *ast.Node {
	return node(ast.UnaryExpression, tok(op, op.String()), e)
}
func postfix(op ast.Tag, e *ast.Node) *ast.Node {
	return node(ast.PostfixExpression, tok(op, op.String()), e)
}
func deref(e *ast.Node) *ast.Node  { return unary(ast.Asterisk, e) }
func addrOf(e *ast.Node) *ast.Node { return unary(ast.Ampersand, e) }
func ternary(c, a, b *ast.Node) *ast.Node {
	return node(ast.ConditionalExpression, c, a, b)
}
func cast(base, d, e *ast.Node) *ast.Node { return node(ast.CastExpression, base, d, e) }
func call(name string, args ...*ast.Node) *ast.Node {
	return node(ast.FunctionCallExpression, ref(name), node(ast.ArgumentExpressionList, args...))
}
func field(e *ast.Node, name string) *ast.Node {
	return node(ast.FieldRefExpression, e, ident(name))
}
func arrow(e *ast.Node, name string) *ast.Node {
	return node(ast.IndirectFieldRefExpression, e, ident(name))
}
func index(a, i *ast.Node) *ast.Node { return node(ast.ArrayElementRefExpression, a, i) }
func ref(name string) *ast.Node      { return node(ast.VariableRef, ident(name)) }
func num(text string) *ast.Node      { return node(ast.LiteralValue, tok(ast.IntLit, text)) }
func chr(text string) *ast.Node      { return node(ast.LiteralValue, tok(ast.CharLit, text)) }
func str(text string) *ast.Node      { return node(ast.LiteralValue, tok(ast.StrLit, text)) }

// checkOK runs the checker over root and fails the test on any error.
func checkOK(t *testing.T, root *ast.Node) *table.SymbolTable {
	t.Helper()
	globals, err := Check(root)
	require.NoError(t, err)
	return globals
}

// checkDiag runs the checker over root and expects a semantic diagnostic.
func checkDiag(t *testing.T, root *ast.Node) *diagnostics.Diagnostic {
	t.Helper()
	_, err := Check(root)
	require.Error(t, err)
	var diag *diagnostics.Diagnostic
	require.True(t, errors.As(err, &diag), "expected a diagnostic, got %v", err)
	return diag
}
