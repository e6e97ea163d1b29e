package grammar

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseEBNF(t *testing.T) {
	g, err := ParseEBNF("test.ebnf", strings.NewReader(`
		S = A B | "s" .
		A = "a" .
		B = "b" | "" .
	`), "")
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}

	if g.Start() != V("S") {
		t.Errorf("start = %v, want S", g.Start())
	}
	want := []Rule{
		NewRule(V("S"), V("A"), V("B")),
		NewRule(V("S"), T("s")),
		NewRule(V("A"), T("a")),
		NewRule(V("B"), T("b")),
		NewRule(V("B")),
	}
	rules := g.Rules()
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d: %v", len(rules), len(want), rules)
	}
	for i := range want {
		if !rules[i].Same(want[i]) {
			t.Errorf("rule %d = %s, want %s", i, rules[i], want[i])
		}
	}
}

func TestParseEBNF_Unsupported(t *testing.T) {
	_, err := ParseEBNF("test.ebnf", strings.NewReader(`S = { "a" } .`), "")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if !strings.Contains(syntaxErr.Msg, "repetition") {
		t.Errorf("message %q should mention repetition", syntaxErr.Msg)
	}
}

func TestParseEBNF_SyntaxError(t *testing.T) {
	_, err := ParseEBNF("bad.ebnf", strings.NewReader("S = \"a\"\nA = ."), "")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Line < 1 {
		t.Errorf("expected a line number, got %d", syntaxErr.Line)
	}
}

func TestParseYAML(t *testing.T) {
	g, err := ParseYAML("test.yaml", strings.NewReader(`
start: S
rules:
  - S -> A B
  - A -> a
  - B -> b
`))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	if g.Start() != V("S") {
		t.Errorf("start = %v, want S", g.Start())
	}
	rules := g.Rules()
	if len(rules) != 3 {
		t.Fatalf("got %d rules: %v", len(rules), rules)
	}
	if rules[1].Line != 5 {
		t.Errorf("A -> a on line %d, want 5", rules[1].Line)
	}
}

func TestParseYAML_BadRule(t *testing.T) {
	_, err := ParseYAML("test.yaml", strings.NewReader("rules:\n  - S A\n"))
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Line != 2 {
		t.Errorf("error on line %d, want 2", syntaxErr.Line)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"g.cfg":  "S -> A B\nA -> a\nB -> b\n",
		"g.ebnf": "S = A B .\nA = \"a\" .\nB = \"b\" .\n",
		"g.yml":  "rules:\n  - S -> A B\n  - A -> a\n  - B -> b\n",
	}
	for name, src := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		g, err := Load(path, "")
		if err != nil {
			t.Errorf("Load(%s): %v", name, err)
			continue
		}
		if !g.Has(NewRule(V("S"), V("A"), V("B"))) {
			t.Errorf("%s: missing S -> A B", name)
		}
		if g.Name != path {
			t.Errorf("%s: Name = %q", name, g.Name)
		}
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.cfg")
	if err := os.WriteFile(path, []byte("S -> a b c\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, ""); !errors.Is(err, ErrUnsupportedArity) {
		t.Errorf("Load = %v, want ErrUnsupportedArity", err)
	}
}

func TestEBNFErrors(t *testing.T) {
	errs := EBNFErrors("x.ebnf", errors.New("x.ebnf:3:7: missing production"))
	if len(errs) != 1 {
		t.Fatalf("got %d errors", len(errs))
	}
	if errs[0].Line != 3 || errs[0].Column != 7 || errs[0].Msg != "missing production" {
		t.Errorf("got %+v", errs[0])
	}
}
