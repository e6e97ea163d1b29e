package grammar

import (
	"fmt"
	"iter"
	"strings"
)

// Word is an immutable sequence of symbols. The zero value is the empty word.
type Word struct {
	symbols []Symbol
}

// NewWord returns a word holding a copy of symbols.
func NewWord(symbols ...Symbol) Word {
	if len(symbols) == 0 {
		return Word{}
	}
	return Word{symbols: append([]Symbol(nil), symbols...)}
}

// Terminals returns the word made of one terminal per name.
func Terminals(names ...string) Word {
	symbols := make([]Symbol, len(names))
	for i, name := range names {
		symbols[i] = T(name)
	}
	return Word{symbols: symbols}
}

// Len returns the number of symbols in w.
func (w Word) Len() int {
	return len(w.symbols)
}

// IsEmpty reports whether w has no symbols.
func (w Word) IsEmpty() bool {
	return len(w.symbols) == 0
}

// At returns the symbol at index i.
func (w Word) At(i int) Symbol {
	return w.symbols[i]
}

// All yields the symbols of w with their indices, left to right.
func (w Word) All() iter.Seq2[int, Symbol] {
	return func(yield func(int, Symbol) bool) {
		for i, s := range w.symbols {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Symbols returns a copy of the symbols of w.
func (w Word) Symbols() []Symbol {
	return append([]Symbol(nil), w.symbols...)
}

// Replace returns a new word in which the symbol at index is substituted
// by the symbols of expansion. w itself is left untouched.
func (w Word) Replace(index int, expansion Word) Word {
	if index < 0 || index >= len(w.symbols) {
		panic(fmt.Sprintf("grammar: replace index %d out of range for word of length %d", index, len(w.symbols)))
	}
	n := len(w.symbols) - 1 + len(expansion.symbols)
	if n == 0 {
		return Word{}
	}
	out := make([]Symbol, 0, n)
	out = append(out, w.symbols[:index]...)
	out = append(out, expansion.symbols...)
	out = append(out, w.symbols[index+1:]...)
	return Word{symbols: out}
}

// Equal reports whether w and other hold the same symbols in the same order.
func (w Word) Equal(other Word) bool {
	if len(w.symbols) != len(other.symbols) {
		return false
	}
	for i, s := range w.symbols {
		if other.symbols[i] != s {
			return false
		}
	}
	return true
}

// HasVariable reports whether any symbol of w is a variable.
func (w Word) HasVariable() bool {
	for _, s := range w.symbols {
		if s.IsVariable() {
			return true
		}
	}
	return false
}

// String joins the symbol names with single spaces. The empty word is "ε".
func (w Word) String() string {
	if len(w.symbols) == 0 {
		return Epsilon
	}
	names := make([]string, len(w.symbols))
	for i, s := range w.symbols {
		names[i] = s.Name
	}
	return strings.Join(names, " ")
}
