package symbols

import (
	"csema/internal/frontend/ast"
	"csema/internal/types"
)

// Symbol represents a declared entity (variable, function, struct type)
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    types.Type // Semantic type of the symbol
	Defined bool       // Functions only: a body has been seen
	Decl    *ast.Node  // AST node that declared this symbol
}

// SymbolKind categorizes symbols
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolType
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	default:
		return "unknown"
	}
}
