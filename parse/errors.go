package parse

import (
	"errors"
	"fmt"

	"github.com/dhamidi/derive/grammar"
)

var (
	// ErrDerivationLimit is returned when a search would hold more
	// derivations than the parser allows.
	ErrDerivationLimit = errors.New("derivation limit exceeded")
	// ErrMalformedDerivation is returned when a derivation's recorded
	// indices do not fit the words it claims to produce.
	ErrMalformedDerivation = errors.New("malformed derivation")
	// ErrInvalidTree is returned by Verify for trees the grammar cannot
	// produce.
	ErrInvalidTree = errors.New("invalid parse tree")
)

// ArityError reports a rewrite whose expansion is neither one nor two
// symbols long.
type ArityError struct {
	Rule grammar.Rule
	Step int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("step %d: %s: %v %d", e.Step, e.Rule, grammar.ErrUnsupportedArity, e.Rule.Arity())
}

func (e *ArityError) Unwrap() error {
	return grammar.ErrUnsupportedArity
}
