package grammar

import (
	"fmt"
	"io"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"text/scanner"

	"golang.org/x/exp/ebnf"
)

// ParseEBNF reads a grammar in the notation of golang.org/x/exp/ebnf.
//
// Each alternative of a production becomes one rule. An alternative must
// be a sequence of names and tokens: names are variables, tokens are
// terminals and the token "" is the empty expansion. Groups, options,
// repetitions and ranges are rejected. If start is empty the first
// production in the source is the start variable.
func ParseEBNF(filename string, r io.Reader, start string) (*Grammar, error) {
	src, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, ebnfSyntaxError(filename, err)
	}

	productions := make([]*ebnf.Production, 0, len(src))
	for _, p := range src {
		productions = append(productions, p)
	}
	sort.Slice(productions, func(i, j int) bool {
		return productions[i].Name.StringPos.Offset < productions[j].Name.StringPos.Offset
	})
	if len(productions) == 0 {
		return nil, &SyntaxError{Filename: filename, Line: 1, Column: 1, Msg: "grammar has no productions"}
	}
	if start == "" {
		start = productions[0].Name.String
	}

	var rules []Rule
	for _, p := range productions {
		variable := V(p.Name.String)
		line := p.Name.StringPos.Line
		if p.Expr == nil {
			rules = append(rules, Rule{Variable: variable, Line: line})
			continue
		}
		alts, ok := p.Expr.(ebnf.Alternative)
		if !ok {
			alts = ebnf.Alternative{p.Expr}
		}
		for _, alt := range alts {
			expansion, err := ebnfExpansion(filename, alt)
			if err != nil {
				return nil, err
			}
			rules = append(rules, Rule{Variable: variable, Expansion: expansion, Line: line})
		}
	}

	g := New(V(start), rules...)
	g.Name = filename
	return g, nil
}

func ebnfExpansion(filename string, expr ebnf.Expression) (Word, error) {
	seq, ok := expr.(ebnf.Sequence)
	if !ok {
		seq = ebnf.Sequence{expr}
	}
	symbols := make([]Symbol, 0, len(seq))
	for _, e := range seq {
		switch e := e.(type) {
		case *ebnf.Name:
			symbols = append(symbols, V(e.String))
		case *ebnf.Token:
			lit := unquoteToken(e.String)
			if lit == "" {
				continue
			}
			symbols = append(symbols, T(lit))
		default:
			return Word{}, positionError(filename, e.Pos(), fmt.Sprintf("unsupported expression %s", ebnfKind(e)))
		}
	}
	return NewWord(symbols...), nil
}

// unquoteToken strips quotes that survived ebnf.Parse.
func unquoteToken(s string) string {
	if len(s) >= 2 && s[0] == s[len(s)-1] && (s[0] == '"' || s[0] == '`') {
		if lit, err := strconv.Unquote(s); err == nil {
			return lit
		}
	}
	return s
}

func ebnfKind(e ebnf.Expression) string {
	switch e.(type) {
	case *ebnf.Group:
		return "group"
	case *ebnf.Option:
		return "option"
	case *ebnf.Repetition:
		return "repetition"
	case *ebnf.Range:
		return "range"
	case ebnf.Alternative:
		return "nested alternative"
	case ebnf.Sequence:
		return "nested sequence"
	default:
		return fmt.Sprintf("%T", e)
	}
}

func positionError(filename string, pos scanner.Position, msg string) *SyntaxError {
	if pos.Filename != "" {
		filename = pos.Filename
	}
	return &SyntaxError{Filename: filename, Line: pos.Line, Column: pos.Column, Msg: msg}
}

var ebnfErrorPattern = regexp.MustCompile(`^(?:(.*):)?(\d+):(\d+): (.*)$`)

// EBNFErrors splits an error returned by ebnf.Parse or ebnf.Verify into
// one SyntaxError per reported problem.
func EBNFErrors(filename string, err error) []*SyntaxError {
	var errs []error
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			if e, ok := v.Index(i).Interface().(error); ok {
				errs = append(errs, e)
			}
		}
	} else {
		errs = append(errs, err)
	}

	out := make([]*SyntaxError, 0, len(errs))
	for _, e := range errs {
		m := ebnfErrorPattern.FindStringSubmatch(e.Error())
		if m == nil {
			out = append(out, &SyntaxError{Filename: filename, Line: 1, Column: 1, Msg: e.Error()})
			continue
		}
		line, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		name := filename
		if m[1] != "" {
			name = m[1]
		}
		out = append(out, &SyntaxError{Filename: name, Line: line, Column: col, Msg: m[4]})
	}
	return out
}

func ebnfSyntaxError(filename string, err error) error {
	errs := EBNFErrors(filename, err)
	if len(errs) == 0 {
		return err
	}
	return errs[0]
}

// VerifyEBNF runs ebnf.Verify on the source in r: every production must be
// defined and reachable from start.
func VerifyEBNF(filename string, r io.Reader, start string) error {
	src, err := ebnf.Parse(filename, r)
	if err != nil {
		return ebnfSyntaxError(filename, err)
	}
	if err := ebnf.Verify(src, start); err != nil {
		return ebnfSyntaxError(filename, err)
	}
	return nil
}
