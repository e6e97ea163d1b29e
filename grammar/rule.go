package grammar

import "fmt"

// Epsilon is how the empty word is written in grammar files and output.
const Epsilon = "ε"

// Rule rewrites Variable into Expansion.
type Rule struct {
	Variable  Symbol
	Expansion Word

	// Line is the 1-based source line the rule was read from, 0 if unknown.
	Line int
}

// NewRule returns the rule variable → expansion.
func NewRule(variable Symbol, expansion ...Symbol) Rule {
	return Rule{Variable: variable, Expansion: NewWord(expansion...)}
}

// Arity is the length of the rule's expansion.
func (r Rule) Arity() int {
	return r.Expansion.Len()
}

// Same reports whether r and other rewrite the same variable into the same
// expansion, ignoring source positions.
func (r Rule) Same(other Rule) bool {
	return r.Variable == other.Variable && r.Expansion.Equal(other.Expansion)
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Variable, r.Expansion)
}
