// Package derivation records rewrite histories: the sequence of words a
// grammar goes through from its start variable to a sentential form.
package derivation

import (
	"fmt"

	"github.com/dhamidi/derive/grammar"
)

// Step is one entry of a derivation. It is either an Initial step or a
// Rewrite step.
type Step interface {
	// Result is the word after this step.
	Result() grammar.Word
	isStep()
}

// Initial is the zeroth step of every derivation: the start variable on
// its own.
type Initial struct {
	Word grammar.Word
}

func (s Initial) Result() grammar.Word { return s.Word }
func (Initial) isStep()                {}

func (s Initial) String() string {
	return s.Word.String()
}

// Rewrite records one rule application. Index is the position, in the
// word before the rewrite, of the variable that Rule expanded.
type Rewrite struct {
	Word  grammar.Word
	Rule  grammar.Rule
	Index int
}

func (s Rewrite) Result() grammar.Word { return s.Word }
func (Rewrite) isStep()                {}

func (s Rewrite) String() string {
	return fmt.Sprintf("%s  [%s @%d]", s.Word, s.Rule, s.Index)
}
