// Package ast holds the tree handed over by the parser.
//
// The tree is generic: every node carries a Tag, its ordered children and a
// source location. Leaves additionally carry the literal text of the token.
// Semantic analysis reads this shape and decorates nodes in place with a
// resolved Type, a bound name (Str) and a value category; it never changes
// the shape of the tree.
package ast

import (
	"csema/internal/source"
	"csema/internal/types"
)

// ValueCategory tells whether an expression denotes a storage location or a
// value computed from other operands.
type ValueCategory int

const (
	LValue   ValueCategory = iota // names storage (default)
	Computed                      // derived value, e.g. a + b
)

func (v ValueCategory) String() string {
	if v == Computed {
		return "computed"
	}
	return "lvalue"
}

// Node is one construct or token of the parsed program.
type Node struct {
	Tag  Tag
	Kids []*Node
	Text string // token text for leaves (identifier name, literal spelling)
	source.Location

	// filled during semantic analysis
	Type  types.Type
	Str   string
	Value ValueCategory
}

// New creates a construct node.
func New(tag Tag, loc source.Location, kids ...*Node) *Node {
	return &Node{Tag: tag, Kids: kids, Location: loc}
}

// Leaf creates a token node carrying text.
func Leaf(tag Tag, text string, loc source.Location) *Node {
	return &Node{Tag: tag, Text: text, Location: loc}
}

// Loc returns the node's source location.
func (n *Node) Loc() source.Location { return n.Location }

// Kid returns the i-th child. The tree shape is trusted, so a missing child
// is a parser bug and panics like any out-of-range index.
func (n *Node) Kid(i int) *Node { return n.Kids[i] }

// NumKids returns the number of children.
func (n *Node) NumKids() int { return len(n.Kids) }

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, k := range n.Kids {
		Walk(k, fn)
	}
}
