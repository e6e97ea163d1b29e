// Package parse decides membership of words in a context-free language by
// bounded breadth-first derivation and rebuilds parse trees from the
// derivation that produced a word.
package parse

import (
	"strings"

	"github.com/dhamidi/derive/grammar"
)

// Node is a parse tree node. Leaves are terminals; an internal node is the
// variable of the rule that produced its one or two children. The only
// variable without children is the root of an empty parse.
type Node struct {
	Symbol   grammar.Symbol
	Children []*Node
}

// EmptyTree returns the parse of the empty word: the start variable with
// no children.
func EmptyTree(start grammar.Symbol) *Node {
	return &Node{Symbol: start}
}

// IsLeaf returns true if n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsEmpty returns true if n is the parse of the empty word.
func (n *Node) IsEmpty() bool {
	return n.IsLeaf() && n.Symbol.IsVariable()
}

// Leaves returns the terminals under n, left to right.
func (n *Node) Leaves() grammar.Word {
	var symbols []grammar.Symbol
	n.Walk(func(node *Node, depth int) bool {
		if node.IsLeaf() && node.Symbol.IsTerminal() {
			symbols = append(symbols, node.Symbol)
		}
		return true
	})
	return grammar.NewWord(symbols...)
}

// Walk calls fn for n and its descendants in pre-order. Children of a node
// are skipped when fn returns false for it.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Depth is the number of nodes on the longest path from n to a leaf.
func (n *Node) Depth() int {
	depth := 0
	for _, child := range n.Children {
		depth = max(depth, child.Depth())
	}
	return depth + 1
}

// Size is the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, child := range n.Children {
		size += child.Size()
	}
	return size
}

// String renders n in bracketed form, e.g. (S (A a) (B b)).
func (n *Node) String() string {
	var b strings.Builder
	n.writeTo(&b)
	return b.String()
}

func (n *Node) writeTo(b *strings.Builder) {
	if n.IsLeaf() && n.Symbol.IsTerminal() {
		b.WriteString(n.Symbol.Name)
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Symbol.Name)
	if n.IsEmpty() {
		b.WriteString(" " + grammar.Epsilon)
	}
	for _, child := range n.Children {
		b.WriteByte(' ')
		child.writeTo(b)
	}
	b.WriteByte(')')
}
