package grammar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedArity reports an expansion longer than two symbols, or
	// an empty expansion anywhere but the start variable.
	ErrUnsupportedArity = errors.New("unsupported production arity")
	// ErrTerminalVariable reports a rule whose left side is a terminal.
	ErrTerminalVariable = errors.New("left side is a terminal")
	// ErrStartOnRight reports start → ε in a grammar whose start variable
	// also appears on a right side.
	ErrStartOnRight = errors.New("nullable start variable appears on a right side")
	// ErrNotCNF reports a rule outside Chomsky normal form.
	ErrNotCNF = errors.New("rule is not in Chomsky normal form")
)

// RuleError ties a validation failure to the rule that caused it.
type RuleError struct {
	Rule Rule
	Err  error
}

func (e *RuleError) Error() string {
	if e.Rule.Line > 0 {
		return fmt.Sprintf("line %d: %s: %v", e.Rule.Line, e.Rule, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// ValidationError collects every problem found in a grammar.
type ValidationError struct {
	Errors []*RuleError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Validate checks that every rule of g expands into one or two symbols.
// The only empty expansion allowed is start → ε, and only when the start
// variable never appears on a right side.
func Validate(g *Grammar) error {
	return check(g, func(g *Grammar, r Rule) error { return nil })
}

// ValidateCNF is Validate plus the Chomsky normal form shape: a single
// symbol must be a terminal and a pair must be two variables.
func ValidateCNF(g *Grammar) error {
	return check(g, func(g *Grammar, r Rule) error {
		switch r.Arity() {
		case 1:
			if !r.Expansion.At(0).IsTerminal() {
				return ErrNotCNF
			}
		case 2:
			if !r.Expansion.At(0).IsVariable() || !r.Expansion.At(1).IsVariable() {
				return ErrNotCNF
			}
		}
		return nil
	})
}

func check(g *Grammar, extra func(*Grammar, Rule) error) error {
	var errs []*RuleError
	startOnRight := false
	for _, r := range g.rules {
		for _, s := range r.Expansion.All() {
			if s == g.start {
				startOnRight = true
			}
		}
	}

	for _, r := range g.rules {
		if r.Variable.IsTerminal() {
			errs = append(errs, &RuleError{Rule: r, Err: ErrTerminalVariable})
			continue
		}
		switch {
		case r.Arity() == 0 && r.Variable != g.start:
			errs = append(errs, &RuleError{Rule: r, Err: ErrUnsupportedArity})
			continue
		case r.Arity() == 0 && startOnRight:
			errs = append(errs, &RuleError{Rule: r, Err: ErrStartOnRight})
			continue
		case r.Arity() > 2:
			errs = append(errs, &RuleError{Rule: r, Err: ErrUnsupportedArity})
			continue
		}
		if err := extra(g, r); err != nil {
			errs = append(errs, &RuleError{Rule: r, Err: err})
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
