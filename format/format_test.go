package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/derive/derivation"
	"github.com/dhamidi/derive/grammar"
	"github.com/dhamidi/derive/parse"
)

func sampleTree(t *testing.T) *parse.Node {
	t.Helper()
	g := grammar.MustParseText("S -> A B\nA -> a\nB -> b\n")
	tree, err := parse.GenerateParseTree(g, grammar.Terminals("a", "b"))
	if err != nil || tree == nil {
		t.Fatalf("GenerateParseTree = %v, %v", tree, err)
	}
	return tree
}

func TestTreeEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf).Encode(sampleTree(t)); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"S",
		"├── A",
		"│   └── a",
		"└── B",
		"    └── b",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestTreeEncoder_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf).Encode(parse.EmptyTree(grammar.V("S"))); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "S ε\n" {
		t.Errorf("got %q", got)
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(sampleTree(t)); err != nil {
		t.Fatal(err)
	}

	var got jsonNode
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, buf.String())
	}
	if got.Symbol != "S" || got.Kind != "variable" || len(got.Children) != 2 {
		t.Fatalf("root = %+v", got)
	}
	leaf := got.Children[1].Children[0]
	if leaf.Symbol != "b" || leaf.Kind != "terminal" || leaf.Children != nil {
		t.Errorf("leaf = %+v", leaf)
	}
}

func TestBracketEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewBracketEncoder(&buf).Encode(sampleTree(t)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "(S (A a) (B b))\n" {
		t.Errorf("got %q", got)
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Names {
		if _, err := NewEncoder(name, &bytes.Buffer{}, nil); err != nil {
			t.Errorf("NewEncoder(%q): %v", name, err)
		}
	}
	if _, err := NewEncoder("xml", &bytes.Buffer{}, nil); err == nil {
		t.Error("expected an error for an unknown format")
	}
	if _, err := NewJSONEncoder(&bytes.Buffer{}).MarshalText(); err == nil {
		t.Error("expected an error without a tree")
	}
}

func TestDerivation(t *testing.T) {
	s, a, b := grammar.V("S"), grammar.V("A"), grammar.V("B")
	d := derivation.New(s).
		Apply(grammar.NewRule(s, a, b), 0).
		Apply(grammar.NewRule(a, grammar.T("a")), 0)

	if got, want := Derivation(d), "S ⇒ A B ⇒ a B"; got != want {
		t.Errorf("Derivation = %q, want %q", got, want)
	}

	var buf bytes.Buffer
	if err := WriteDerivation(&buf, d); err != nil {
		t.Fatal(err)
	}
	want := "  0  S\n  1  A B    [S -> A B at 0]\n  2  a B    [A -> a at 0]\n"
	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}
