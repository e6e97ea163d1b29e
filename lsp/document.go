package lsp

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/dhamidi/derive/grammar"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var source = lsName

// Document is one open grammar file.
type Document struct {
	Path        string
	Text        string
	Grammar     *grammar.Grammar
	Diagnostics []protocol.Diagnostic

	lines []string
}

// NewDocument parses and validates text, picking the grammar notation
// from the extension of path.
func NewDocument(path, text string) *Document {
	doc := &Document{
		Path:        path,
		Text:        text,
		Diagnostics: []protocol.Diagnostic{},
		lines:       strings.Split(text, "\n"),
	}

	g, err := grammar.Parse(grammar.FormatOf(path), path, strings.NewReader(text), "")
	if err != nil {
		doc.addError(err)
		return doc
	}
	doc.Grammar = g

	if err := grammar.Validate(g); err != nil {
		var verr *grammar.ValidationError
		if errors.As(err, &verr) {
			for _, rerr := range verr.Errors {
				doc.addLine(rerr.Rule.Line, protocol.DiagnosticSeverityError, fmt.Sprintf("%s: %v", rerr.Rule, rerr.Err))
			}
		} else {
			doc.addError(err)
		}
	}

	for _, v := range g.Variables() {
		if len(g.RulesFor(v)) == 0 {
			doc.addLine(firstMention(g, v), protocol.DiagnosticSeverityWarning, fmt.Sprintf("variable %s has no rules", v))
		}
	}
	if depth := g.UnitDepth(); depth > 0 {
		for _, r := range g.UnitRules() {
			doc.addLine(r.Line, protocol.DiagnosticSeverityWarning, fmt.Sprintf("%s is a unit rule: words may need up to %d times the usual 2n-1 rewrites", r, depth+1))
		}
	}
	return doc
}

// firstMention is the line of the first rule that uses v.
func firstMention(g *grammar.Grammar, v grammar.Symbol) int {
	for _, r := range g.Rules() {
		for _, s := range r.Expansion.All() {
			if s == v {
				return r.Line
			}
		}
	}
	return 1
}

func (d *Document) addError(err error) {
	var serr *grammar.SyntaxError
	if errors.As(err, &serr) {
		pos := protocol.Position{Line: lineIndex(serr.Line), Character: lineIndex(serr.Column)}
		d.add(protocol.Range{Start: pos, End: pos}, protocol.DiagnosticSeverityError, serr.Msg)
		return
	}
	d.addLine(1, protocol.DiagnosticSeverityError, err.Error())
}

// addLine reports msg across the whole of the 1-based line.
func (d *Document) addLine(line int, severity protocol.DiagnosticSeverity, msg string) {
	if line < 1 {
		line = 1
	}
	end := 0
	if line <= len(d.lines) {
		end = len(utf16.Encode([]rune(d.lines[line-1])))
	}
	d.add(protocol.Range{
		Start: protocol.Position{Line: lineIndex(line)},
		End:   protocol.Position{Line: lineIndex(line), Character: protocol.UInteger(end)},
	}, severity, msg)
}

func (d *Document) add(r protocol.Range, severity protocol.DiagnosticSeverity, msg string) {
	d.Diagnostics = append(d.Diagnostics, protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	})
}

func lineIndex(n int) protocol.UInteger {
	if n < 1 {
		return 0
	}
	return protocol.UInteger(n - 1)
}

// Hover describes the variable under the 0-based position, or returns ""
// if there is none.
func (d *Document) Hover(line, character int) string {
	if d.Grammar == nil {
		return ""
	}
	name := d.WordAt(line, character)
	if name == "" {
		return ""
	}
	v := grammar.V(name)
	rules := d.Grammar.RulesFor(v)
	if len(rules) == 0 {
		if v == d.Grammar.Start() {
			return fmt.Sprintf("**%s** (start) has no rules", name)
		}
		return ""
	}

	var b strings.Builder
	b.WriteString("**" + name + "**")
	if v == d.Grammar.Start() {
		if d.Grammar.IsNullable() {
			b.WriteString(" (start, derives " + grammar.Epsilon + ")")
		} else {
			b.WriteString(" (start)")
		}
	}
	b.WriteString("\n\n```\n")
	for _, r := range rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	b.WriteString("```")
	return b.String()
}

// WordAt returns the symbol name around the 0-based position.
func (d *Document) WordAt(line, character int) string {
	if line < 0 || line >= len(d.lines) {
		return ""
	}
	runes := []rune(d.lines[line])
	if character < 0 || character > len(runes) {
		return ""
	}
	isName := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
	}
	start, end := character, character
	for start > 0 && isName(runes[start-1]) {
		start--
	}
	for end < len(runes) && isName(runes[end]) {
		end++
	}
	return string(runes[start:end])
}
