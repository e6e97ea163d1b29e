// Package grammar provides the context-free grammar model used by the
// derivation engine: symbols, words, rules and loaders for grammar files.
package grammar

import "fmt"

// Kind tells terminals and variables apart.
type Kind uint8

const (
	Terminal Kind = iota + 1
	Variable
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "terminal"
	case Variable:
		return "variable"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Symbol is a terminal or a variable. Two symbols are the same symbol
// iff both kind and name match, so Symbol can be compared with == and
// used as a map key.
type Symbol struct {
	Kind Kind
	Name string
}

// T returns the terminal named name.
func T(name string) Symbol {
	return Symbol{Kind: Terminal, Name: name}
}

// V returns the variable named name.
func V(name string) Symbol {
	return Symbol{Kind: Variable, Name: name}
}

// IsTerminal reports whether s is a terminal.
func (s Symbol) IsTerminal() bool {
	return s.Kind == Terminal
}

// IsVariable reports whether s is a variable.
func (s Symbol) IsVariable() bool {
	return s.Kind == Variable
}

func (s Symbol) String() string {
	return s.Name
}
