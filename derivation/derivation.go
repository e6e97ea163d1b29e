package derivation

import (
	"iter"

	"github.com/dhamidi/derive/grammar"
)

// Derivation is an immutable history of steps. Extending a derivation
// returns a new value that shares every earlier step with its parent, so
// a breadth-first search can branch freely without copying histories.
type Derivation struct {
	step Step
	prev *Derivation
	n    int
}

// New returns the derivation holding only the initial step [start].
func New(start grammar.Symbol) *Derivation {
	return &Derivation{
		step: Initial{Word: grammar.NewWord(start)},
		n:    1,
	}
}

// Extend returns a derivation with one more step: word is the result of
// applying rule to the variable at index of d's latest word.
func (d *Derivation) Extend(word grammar.Word, rule grammar.Rule, index int) *Derivation {
	return &Derivation{
		step: Rewrite{Word: word, Rule: rule, Index: index},
		prev: d,
		n:    d.n + 1,
	}
}

// Apply expands the variable at index of d's latest word with rule.
func (d *Derivation) Apply(rule grammar.Rule, index int) *Derivation {
	return d.Extend(d.Latest().Replace(index, rule.Expansion), rule, index)
}

// Latest returns the word of the last step.
func (d *Derivation) Latest() grammar.Word {
	return d.step.Result()
}

// Last returns the last step.
func (d *Derivation) Last() Step {
	return d.step
}

// Len is the number of steps, the initial step included.
func (d *Derivation) Len() int {
	return d.n
}

// Rewrites is the number of rule applications.
func (d *Derivation) Rewrites() int {
	return d.n - 1
}

// Parent returns the derivation d was extended from, or nil for an
// initial derivation.
func (d *Derivation) Parent() *Derivation {
	return d.prev
}

// Steps returns the steps of d from oldest to newest.
func (d *Derivation) Steps() []Step {
	steps := make([]Step, d.n)
	i := d.n - 1
	for cur := d; cur != nil; cur = cur.prev {
		steps[i] = cur.step
		i--
	}
	return steps
}

// All yields the steps of d from oldest to newest with their positions.
func (d *Derivation) All() iter.Seq2[int, Step] {
	return func(yield func(int, Step) bool) {
		for i, s := range d.Steps() {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Words returns the sentential forms of d from the start variable to the
// latest word.
func (d *Derivation) Words() []grammar.Word {
	words := make([]grammar.Word, 0, d.n)
	for _, s := range d.Steps() {
		words = append(words, s.Result())
	}
	return words
}
