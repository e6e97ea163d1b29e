package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// SyntaxError reports a malformed grammar file.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	pos := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.Filename != "" {
		pos = e.Filename + ":" + pos
	}
	return pos + ": " + e.Msg
}

var arrows = []string{"->", "→", "::="}

type textRule struct {
	line int
	lhs  string
	alts [][]textSymbol
}

type textSymbol struct {
	name   string
	quoted bool
}

// ParseText reads a grammar written as one rule per line:
//
//	%start S
//	S -> A B | a   # comment
//	A -> "a"
//	B -> b | ε
//
// Every name that appears on a left side is a variable, every other name
// is a terminal; quoted names are always terminals. The start variable is
// named by a %start directive or is the first left side.
func ParseText(filename string, r io.Reader) (*Grammar, error) {
	var (
		rules []textRule
		start string
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := stripComment(scanner.Text())
		if strings.TrimSpace(text) == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(strings.TrimSpace(text), "%start"); ok {
			name := strings.TrimSpace(rest)
			if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
				return nil, &SyntaxError{Filename: filename, Line: line, Column: 1, Msg: "%start expects exactly one name"}
			}
			start = name
			continue
		}
		rule, err := parseTextRule(filename, line, text)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}

	return buildText(filename, rules, start, line)
}

func buildText(filename string, rules []textRule, start string, lastLine int) (*Grammar, error) {
	variables := make(map[string]bool)
	for _, r := range rules {
		variables[r.lhs] = true
	}
	if start == "" {
		if len(rules) == 0 {
			return nil, &SyntaxError{Filename: filename, Line: lastLine, Column: 1, Msg: "no rules and no start symbol"}
		}
		start = rules[0].lhs
	}

	var out []Rule
	for _, r := range rules {
		for _, alt := range r.alts {
			symbols := make([]Symbol, 0, len(alt))
			for _, s := range alt {
				if !s.quoted && variables[s.name] {
					symbols = append(symbols, V(s.name))
				} else {
					symbols = append(symbols, T(s.name))
				}
			}
			out = append(out, Rule{Variable: V(r.lhs), Expansion: NewWord(symbols...), Line: r.line})
		}
	}

	g := New(V(start), out...)
	g.Name = filename
	return g, nil
}

func stripComment(line string) string {
	inQuote := false
	for i, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == '#' && !inQuote:
			return line[:i]
		}
	}
	return line
}

func parseTextRule(filename string, line int, text string) (textRule, error) {
	at := -1
	var arrow string
	for _, a := range arrows {
		if i := strings.Index(text, a); i >= 0 && (at < 0 || i < at) {
			at, arrow = i, a
		}
	}
	if at < 0 {
		return textRule{}, &SyntaxError{Filename: filename, Line: line, Column: 1, Msg: "expected ->"}
	}

	lhs := strings.TrimSpace(text[:at])
	if lhs == "" || strings.ContainsFunc(lhs, unicode.IsSpace) || strings.ContainsRune(lhs, '"') {
		return textRule{}, &SyntaxError{Filename: filename, Line: line, Column: 1, Msg: fmt.Sprintf("invalid left side %q", lhs)}
	}

	offset := at + len(arrow)
	alts, err := splitAlternatives(text[offset:])
	if err != nil {
		return textRule{}, &SyntaxError{Filename: filename, Line: line, Column: offset + err.column + 1, Msg: err.msg}
	}
	return textRule{line: line, lhs: lhs, alts: alts}, nil
}

type rhsError struct {
	column int
	msg    string
}

// splitAlternatives tokenizes the right side of a rule into alternatives.
// A lone ε, or nothing at all between bars, is the empty expansion.
func splitAlternatives(rhs string) ([][]textSymbol, *rhsError) {
	var (
		alts    [][]textSymbol
		current []textSymbol
	)
	runes := []rune(rhs)
	col := func(i int) int { return len(string(runes[:i])) }

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '|':
			alts = append(alts, current)
			current = nil
			i++
		case r == '"':
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				j++
			}
			if j >= len(runes) {
				return nil, &rhsError{column: col(i), msg: "unterminated quoted terminal"}
			}
			if j == i+1 {
				// "" is the empty expansion.
				i = j + 1
				continue
			}
			current = append(current, textSymbol{name: string(runes[i+1 : j]), quoted: true})
			i = j + 1
		default:
			j := i
			for j < len(runes) && !unicode.IsSpace(runes[j]) && runes[j] != '|' && runes[j] != '"' {
				j++
			}
			name := string(runes[i:j])
			if name != Epsilon {
				current = append(current, textSymbol{name: name})
			}
			i = j
		}
	}
	alts = append(alts, current)
	return alts, nil
}
