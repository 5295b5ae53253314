package table

import (
	"fmt"
	"sort"

	"csema/internal/frontend/ast"
	"csema/internal/semantics/symbols"
	"csema/internal/types"
)

// SymbolTable holds the symbols of one lexical scope and links to the
// enclosing scope. Lookups walk outward; declarations only see this scope.
type SymbolTable struct {
	parent  *SymbolTable
	symbols map[string]*symbols.Symbol
	fnType  *types.FunctionType // set on a function's parameter scope
}

// NewSymbolTable creates a new symbol table with optional parent scope
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		parent:  parent,
		symbols: make(map[string]*symbols.Symbol),
	}
}

// StructKey is the name a struct type is stored under, keeping struct tags
// apart from ordinary identifiers in the same table.
func StructKey(name string) string {
	return "struct " + name
}

// Parent returns the enclosing scope, nil for the global scope.
func (st *SymbolTable) Parent() *SymbolTable {
	return st.parent
}

// Declare adds an undefined symbol to this scope. It fails if the name is
// already taken here, whatever the kind of the existing symbol.
func (st *SymbolTable) Declare(kind symbols.SymbolKind, name string, typ types.Type, decl *ast.Node) (*symbols.Symbol, error) {
	if _, exists := st.symbols[name]; exists {
		return nil, fmt.Errorf("symbol '%s' already declared", name)
	}
	sym := &symbols.Symbol{Name: name, Kind: kind, Type: typ, Decl: decl}
	st.symbols[name] = sym
	return sym, nil
}

// Define is Declare for symbols that are complete on arrival: struct types
// and functions defined without a prior prototype.
func (st *SymbolTable) Define(kind symbols.SymbolKind, name string, typ types.Type, decl *ast.Node) (*symbols.Symbol, error) {
	sym, err := st.Declare(kind, name, typ, decl)
	if err != nil {
		return nil, err
	}
	sym.Defined = true
	return sym, nil
}

// HasLocal reports whether name is declared in this scope.
func (st *SymbolTable) HasLocal(name string) bool {
	_, ok := st.symbols[name]
	return ok
}

// LookupLocal finds a symbol in this scope only.
func (st *SymbolTable) LookupLocal(name string) (*symbols.Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// Lookup finds a symbol in this scope or parent scopes
func (st *SymbolTable) Lookup(name string) (*symbols.Symbol, bool) {
	for s := st; s != nil; s = s.parent {
		if sym, ok := s.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupKind is Lookup restricted to one kind: the innermost symbol of that
// kind wins, even when a symbol of another kind shadows it.
func (st *SymbolTable) LookupKind(name string, kind symbols.SymbolKind) (*symbols.Symbol, bool) {
	for s := st; s != nil; s = s.parent {
		if sym, ok := s.symbols[name]; ok && sym.Kind == kind {
			return sym, true
		}
	}
	return nil, false
}

// SetFunctionType attaches the enclosing function's type to this scope.
func (st *SymbolTable) SetFunctionType(fn *types.FunctionType) {
	st.fnType = fn
}

// FunctionType returns the type of the innermost enclosing function, or nil
// outside any function body.
func (st *SymbolTable) FunctionType() *types.FunctionType {
	for s := st; s != nil; s = s.parent {
		if s.fnType != nil {
			return s.fnType
		}
	}
	return nil
}

// Symbols returns this scope's symbols sorted by name.
func (st *SymbolTable) Symbols() []*symbols.Symbol {
	out := make([]*symbols.Symbol, 0, len(st.symbols))
	for _, sym := range st.symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Depth counts the scopes between this one and the global scope.
func (st *SymbolTable) Depth() int {
	d := 0
	for s := st.parent; s != nil; s = s.parent {
		d++
	}
	return d
}
