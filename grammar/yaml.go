package grammar

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlGrammar mirrors a YAML grammar document:
//
//	start: S
//	rules:
//	  - S -> A B
//	  - A -> a
//
// Rules are kept as nodes so errors can point at the offending line.
type yamlGrammar struct {
	Start string      `yaml:"start"`
	Rules []yaml.Node `yaml:"rules"`
}

// ParseYAML reads a grammar document whose rules use the rule list
// notation of ParseText, one rule per sequence item.
func ParseYAML(filename string, r io.Reader) (*Grammar, error) {
	var doc yamlGrammar
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, &SyntaxError{Filename: filename, Line: 1, Column: 1, Msg: "empty document"}
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	rules := make([]textRule, 0, len(doc.Rules))
	last := 1
	for _, node := range doc.Rules {
		if node.Kind != yaml.ScalarNode {
			return nil, &SyntaxError{Filename: filename, Line: node.Line, Column: node.Column, Msg: "rule must be a string"}
		}
		rule, err := parseTextRule(filename, node.Line, node.Value)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
		last = node.Line
	}
	return buildText(filename, rules, doc.Start, last)
}
