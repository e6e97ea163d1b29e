package grammar

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a grammar file notation.
type Format string

const (
	FormatText Format = "text"
	FormatEBNF Format = "ebnf"
	FormatYAML Format = "yaml"
)

// FormatOf picks the notation from a file extension. Unknown extensions
// are read as rule lists.
func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ebnf":
		return FormatEBNF
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Parse reads a grammar in the given notation without validating it.
// start overrides the start variable of EBNF grammars.
func Parse(format Format, filename string, r io.Reader, start string) (*Grammar, error) {
	var (
		g   *Grammar
		err error
	)
	switch format {
	case FormatEBNF:
		g, err = ParseEBNF(filename, r, start)
	case FormatYAML:
		g, err = ParseYAML(filename, r)
	case FormatText:
		g, err = ParseText(filename, r)
	default:
		return nil, fmt.Errorf("unknown grammar format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if start != "" && format != FormatEBNF {
		g = New(V(start), g.rules...)
		g.Name = filename
	}
	return g, nil
}

// Read parses and validates a grammar.
func Read(format Format, filename string, r io.Reader, start string) (*Grammar, error) {
	g, err := Parse(format, filename, r, start)
	if err != nil {
		return nil, err
	}
	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Load reads and validates the grammar file at path, picking the notation
// from its extension.
func Load(path string, start string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	return Read(FormatOf(path), path, bytes.NewReader(data), start)
}

// MustParseText parses a rule list, panicking on error. It is meant for
// tests and package-level grammars.
func MustParseText(src string) *Grammar {
	g, err := ParseText("", strings.NewReader(src))
	if err != nil {
		panic(err)
	}
	if err := Validate(g); err != nil {
		panic(err)
	}
	return g
}
