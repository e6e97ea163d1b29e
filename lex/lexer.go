// Package lex splits input strings into words of grammar terminals.
package lex

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/derive/grammar"
	"golang.org/x/text/unicode/norm"
)

// Position represents a location in the input.
type Position struct {
	Offset int // byte offset
	Column int // 1-based, in runes
}

func (p Position) String() string {
	return fmt.Sprintf("col %d", p.Column)
}

// Token is one terminal read from the input.
type Token struct {
	Symbol   grammar.Symbol
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Position, t.Literal)
}

// Error reports input that no terminal matches.
type Error struct {
	Position Position
	Input    string
}

func (e *Error) Error() string {
	rest := e.Input[e.Position.Offset:]
	r, _ := utf8.DecodeRuneInString(rest)
	return fmt.Sprintf("%s: no terminal matches %q", e.Position, string(r))
}

// Lexer tokenizes input into the terminals of a grammar. At each position
// it skips white space and takes the longest terminal name that matches,
// so with terminals a, b and ab the input "ab" is the single terminal ab
// and "a b" is a followed by b.
type Lexer struct {
	names     []string // longest first
	terminals map[string]grammar.Symbol

	input  string
	pos    int
	column int
}

// New returns a lexer for the given terminals. Names are compared after
// NFC normalization.
func New(terminals []grammar.Symbol) *Lexer {
	l := &Lexer{terminals: make(map[string]grammar.Symbol)}
	for _, t := range terminals {
		if !t.IsTerminal() || t.Name == "" {
			continue
		}
		name := norm.NFC.String(t.Name)
		if _, ok := l.terminals[name]; ok {
			continue
		}
		l.terminals[name] = t
		l.names = append(l.names, name)
	}
	sort.SliceStable(l.names, func(i, j int) bool {
		return len(l.names[i]) > len(l.names[j])
	})
	return l
}

// ForGrammar returns a lexer for the terminals of g.
func ForGrammar(g *grammar.Grammar) *Lexer {
	return New(g.Terminals())
}

// Reset starts reading input from the beginning.
func (l *Lexer) Reset(input string) {
	l.input = norm.NFC.String(input)
	l.pos = 0
	l.column = 1
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{Offset: l.pos, Column: l.column}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
		l.column++
	}
}

// NextToken returns the next terminal, or io.EOF at the end of the input.
func (l *Lexer) NextToken() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return Token{Position: l.Position()}, io.EOF
	}

	start := l.Position()
	rest := l.input[l.pos:]
	for _, name := range l.names {
		if strings.HasPrefix(rest, name) {
			l.pos += len(name)
			l.column += utf8.RuneCountInString(name)
			return Token{
				Symbol:   l.terminals[name],
				Literal:  name,
				Position: start,
			}, nil
		}
	}
	return Token{Position: start}, &Error{Position: start, Input: l.input}
}

// Tokenize reads all of input and returns it as a word. Empty or
// all-blank input is the empty word.
func (l *Lexer) Tokenize(input string) (grammar.Word, error) {
	l.Reset(input)
	var symbols []grammar.Symbol
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return grammar.Word{}, err
		}
		symbols = append(symbols, tok.Symbol)
	}
	return grammar.NewWord(symbols...), nil
}
