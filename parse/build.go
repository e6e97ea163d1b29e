package parse

import (
	"fmt"
	"slices"

	"github.com/dhamidi/derive/derivation"
	"github.com/dhamidi/derive/grammar"
)

// Build reconstructs the parse tree implied by d.
//
// It starts from one leaf per symbol of d's final word and folds the
// rewrites back from newest to oldest: undoing the rewrite recorded at
// Index replaces the nodes standing for the rule's expansion with a
// single node for the rule's variable. Each recorded index is valid in
// the word the rewrite was applied to, which is exactly the word the node
// list stands for once all later rewrites have been folded.
func Build(d *derivation.Derivation) (*Node, error) {
	final := d.Latest()
	nodes := make([]*Node, 0, final.Len())
	for _, s := range final.All() {
		nodes = append(nodes, &Node{Symbol: s})
	}

	steps := d.Steps()
	for i := len(steps) - 1; i >= 0; i-- {
		rw, ok := steps[i].(derivation.Rewrite)
		if !ok {
			continue
		}

		arity := rw.Rule.Arity()
		if arity != 1 && arity != 2 {
			return nil, &ArityError{Rule: rw.Rule, Step: i}
		}
		if rw.Index < 0 || rw.Index+arity > len(nodes) {
			return nil, fmt.Errorf("step %d: index %d with %d nodes: %w", i, rw.Index, len(nodes), ErrMalformedDerivation)
		}

		children := slices.Clone(nodes[rw.Index : rw.Index+arity])
		for j, child := range children {
			if child.Symbol != rw.Rule.Expansion.At(j) {
				return nil, fmt.Errorf("step %d: %s does not produce %s at %d: %w", i, rw.Rule, child.Symbol, rw.Index+j, ErrMalformedDerivation)
			}
		}
		parent := &Node{Symbol: rw.Rule.Variable, Children: children}
		nodes = slices.Replace(nodes, rw.Index, rw.Index+arity, parent)
	}

	if len(nodes) != 1 {
		return nil, fmt.Errorf("%d nodes left after folding: %w", len(nodes), ErrMalformedDerivation)
	}
	return nodes[0], nil
}

// Verify checks that every internal node of root, together with its
// children, is a rule of g, that leaves are terminals and that the root is
// the start variable.
func Verify(g Grammar, root *Node) error {
	if root == nil {
		return fmt.Errorf("nil tree: %w", ErrInvalidTree)
	}
	if root.Symbol != g.Start() {
		return fmt.Errorf("root %s is not the start variable %s: %w", root.Symbol, g.Start(), ErrInvalidTree)
	}

	rules := g.Rules()
	has := func(r grammar.Rule) bool {
		return slices.ContainsFunc(rules, r.Same)
	}

	if root.IsEmpty() {
		if !has(grammar.NewRule(root.Symbol)) {
			return fmt.Errorf("empty parse without %s -> %s: %w", root.Symbol, grammar.Epsilon, ErrInvalidTree)
		}
		return nil
	}

	var err error
	root.Walk(func(n *Node, depth int) bool {
		if err != nil {
			return false
		}
		if n.IsLeaf() {
			if !n.Symbol.IsTerminal() {
				err = fmt.Errorf("leaf %s at depth %d is a variable: %w", n.Symbol, depth, ErrInvalidTree)
			}
			return false
		}
		expansion := make([]grammar.Symbol, len(n.Children))
		for i, child := range n.Children {
			expansion[i] = child.Symbol
		}
		if r := grammar.NewRule(n.Symbol, expansion...); !has(r) {
			err = fmt.Errorf("no rule %s at depth %d: %w", r, depth, ErrInvalidTree)
			return false
		}
		return true
	})
	return err
}
