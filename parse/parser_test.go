package parse

import (
	"context"
	"errors"
	"testing"

	"github.com/dhamidi/derive/derivation"
	"github.com/dhamidi/derive/grammar"
)

var (
	simple = grammar.MustParseText(`
S -> A B
A -> a
B -> b
`)

	// a^n b^n for n >= 1
	anbn = grammar.MustParseText(`
S -> A B | A C
C -> S B
A -> a
B -> b
`)
)

func word(names ...string) grammar.Word {
	return grammar.Terminals(names...)
}

func TestIsInLanguage_Simple(t *testing.T) {
	if !IsInLanguage(simple, word("a", "b")) {
		t.Error("ab should be in the language")
	}
	if IsInLanguage(simple, word("b", "a")) {
		t.Error("ba should not be in the language")
	}
	if IsInLanguage(simple, word("a")) {
		t.Error("a should not be in the language")
	}
	if IsInLanguage(simple, grammar.Word{}) {
		t.Error("the empty word should not be in the language")
	}
}

func TestGenerateParseTree_Simple(t *testing.T) {
	tree, err := GenerateParseTree(simple, word("a", "b"))
	if err != nil {
		t.Fatalf("GenerateParseTree: %v", err)
	}
	if tree == nil {
		t.Fatal("expected a tree for ab")
	}

	if tree.Symbol != grammar.V("S") || len(tree.Children) != 2 {
		t.Fatalf("root = %s with %d children", tree.Symbol, len(tree.Children))
	}
	left, right := tree.Children[0], tree.Children[1]
	if left.Symbol != grammar.V("A") || len(left.Children) != 1 || left.Children[0].Symbol != grammar.T("a") {
		t.Errorf("left child = %s", left)
	}
	if right.Symbol != grammar.V("B") || len(right.Children) != 1 || right.Children[0].Symbol != grammar.T("b") {
		t.Errorf("right child = %s", right)
	}
	if got, want := tree.String(), "(S (A a) (B b))"; got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}

	none, err := GenerateParseTree(simple, word("b", "a"))
	if err != nil || none != nil {
		t.Errorf("GenerateParseTree(ba) = %v, %v, want nil, nil", none, err)
	}
}

func TestIsInLanguage_NoStartRules(t *testing.T) {
	g := grammar.New(grammar.V("S"), grammar.NewRule(grammar.V("A"), grammar.T("a")))
	for _, w := range []grammar.Word{word("a"), word("a", "a"), word("b")} {
		if IsInLanguage(g, w) {
			t.Errorf("%s should not be derivable without rules for S", w)
		}
	}
}

func TestEmptyWord(t *testing.T) {
	nullable := grammar.MustParseText("S -> A A | ε\nA -> a\n")

	if !IsInLanguage(nullable, grammar.Word{}) {
		t.Error("the empty word should be derivable with S -> ε")
	}
	if IsInLanguage(anbn, grammar.Word{}) {
		t.Error("the empty word should not be derivable without S -> ε")
	}

	tree, err := GenerateParseTree(nullable, grammar.Word{})
	if err != nil {
		t.Fatalf("GenerateParseTree: %v", err)
	}
	if tree == nil || !tree.IsEmpty() || tree.Symbol != grammar.V("S") {
		t.Fatalf("empty parse = %v, want S with no children", tree)
	}
	if err := Verify(nullable, tree); err != nil {
		t.Errorf("Verify(empty parse): %v", err)
	}
	if !IsInLanguage(nullable, word("a", "a")) {
		t.Error("aa should still be derivable")
	}
}

func TestAnBn(t *testing.T) {
	tests := []struct {
		name string
		word grammar.Word
		want bool
	}{
		{name: "ab", word: word("a", "b"), want: true},
		{name: "aabb", word: word("a", "a", "b", "b"), want: true},
		{name: "aab", word: word("a", "a", "b"), want: false},
		{name: "abab", word: word("a", "b", "a", "b"), want: false},
		{name: "ba", word: word("b", "a"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsInLanguage(anbn, tt.word)
			if got != tt.want {
				t.Fatalf("IsInLanguage(%s) = %v, want %v", tt.word, got, tt.want)
			}
			if got != IsInLanguage(anbn, tt.word) {
				t.Error("IsInLanguage is not idempotent")
			}

			tree, err := GenerateParseTree(anbn, tt.word)
			if err != nil {
				t.Fatalf("GenerateParseTree: %v", err)
			}
			if !tt.want {
				if tree != nil {
					t.Errorf("expected no tree, got %s", tree)
				}
				return
			}
			if tree == nil {
				t.Fatal("expected a tree")
			}
			if leaves := tree.Leaves(); !leaves.Equal(tt.word) {
				t.Errorf("leaves = %s, want %s", leaves, tt.word)
			}
			if err := Verify(anbn, tree); err != nil {
				t.Errorf("Verify: %v", err)
			}
		})
	}
}

func TestFirstMatchFollowsRuleOrder(t *testing.T) {
	ab := grammar.MustParseText("S -> A B | C D\nA -> a\nB -> b\nC -> a\nD -> b\n")
	cd := grammar.MustParseText("S -> C D | A B\nA -> a\nB -> b\nC -> a\nD -> b\n")

	tree, err := GenerateParseTree(ab, word("a", "b"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tree.String(), "(S (A a) (B b))"; got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}

	tree, err = GenerateParseTree(cd, word("a", "b"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tree.String(), "(S (C a) (D b))"; got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}
}

func TestBound(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 3, 5: 9} {
		if got := Bound(n); got != want {
			t.Errorf("Bound(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestWithBound_UnitChain(t *testing.T) {
	g := grammar.MustParseText("S -> A B\nA -> X\nX -> a\nB -> b\n")
	w := word("a", "b")

	if IsInLanguage(g, w) {
		t.Fatal("ab needs four rewrites and should be out of the default bound")
	}

	p := NewParser(g, WithBound(func(n int) int { return 2 * n }))
	tree, err := p.ParseTree(context.Background(), w)
	if err != nil {
		t.Fatal(err)
	}
	if tree == nil {
		t.Fatal("expected a tree with the larger bound")
	}
	if got, want := tree.String(), "(S (A (X a)) (B b))"; got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}
}

func TestUnitBound(t *testing.T) {
	b := UnitBound(2)
	for n, want := range map[int]int{0: 1, 1: 3, 2: 9, 3: 15} {
		if got := b(n); got != want {
			t.Errorf("UnitBound(2)(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestUnitBound_DerivesUnitChains(t *testing.T) {
	g := grammar.MustParseText("S -> A B\nA -> X\nX -> Y\nY -> a\nB -> b\n")
	p := NewParser(g, WithBound(UnitBound(g.UnitDepth())))

	tree, err := p.ParseTree(context.Background(), word("a", "b"))
	if err != nil {
		t.Fatal(err)
	}
	if tree == nil {
		t.Fatal("ab should be derivable with the unit bound")
	}
	if got, want := tree.String(), "(S (A (X (Y a))) (B b))"; got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}
}

func TestDerivations(t *testing.T) {
	p := NewParser(simple)
	want := []int{1, 2, 4, 6, 6}
	for n, count := range want {
		ds, err := p.Derivations(context.Background(), n)
		if err != nil {
			t.Fatal(err)
		}
		if len(ds) != count {
			t.Errorf("Derivations(%d) returned %d, want %d", n, len(ds), count)
		}
		for i := 1; i < len(ds); i++ {
			if ds[i].Len() < ds[i-1].Len() {
				t.Errorf("Derivations(%d) not shortest first at %d", n, i)
			}
		}
	}

	ds, _ := p.Derivations(context.Background(), 3)
	if _, ok := ds[0].Last().(derivation.Initial); !ok {
		t.Error("first derivation should be the initial one")
	}
	if got := ds[4].Latest().String(); got != "a b" {
		t.Errorf("first complete derivation = %q, want %q", got, "a b")
	}
}

func TestPruningKeepsFirstMatch(t *testing.T) {
	w := word("a", "a", "a", "b", "b", "b")
	ctx := context.Background()

	plain, err := NewParser(anbn).Match(ctx, w)
	if err != nil {
		t.Fatal(err)
	}
	pruned, err := NewParser(anbn, WithPruning()).Match(ctx, w)
	if err != nil {
		t.Fatal(err)
	}
	if plain == nil || pruned == nil {
		t.Fatalf("expected matches, got %v and %v", plain, pruned)
	}
	assertSameDerivation(t, plain, pruned)
}

func TestWorkersKeepFirstMatch(t *testing.T) {
	w := word("a", "a", "b", "b")
	ctx := context.Background()

	single, err := NewParser(anbn).Match(ctx, w)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := NewParser(anbn, WithWorkers(4)).Match(ctx, w)
	if err != nil {
		t.Fatal(err)
	}
	assertSameDerivation(t, single, parallel)

	a, _ := NewParser(anbn).Derivations(ctx, 5)
	b, _ := NewParser(anbn, WithWorkers(3)).Derivations(ctx, 5)
	if len(a) != len(b) {
		t.Fatalf("got %d and %d derivations", len(a), len(b))
	}
	for i := range a {
		if !a[i].Latest().Equal(b[i].Latest()) {
			t.Fatalf("derivation %d differs: %s vs %s", i, a[i].Latest(), b[i].Latest())
		}
	}
}

func assertSameDerivation(t *testing.T, a, b *derivation.Derivation) {
	t.Helper()
	wa, wb := a.Words(), b.Words()
	if len(wa) != len(wb) {
		t.Fatalf("derivations have %d and %d steps", len(wa), len(wb))
	}
	for i := range wa {
		if !wa[i].Equal(wb[i]) {
			t.Errorf("step %d: %s vs %s", i, wa[i], wb[i])
		}
	}
}

func TestMaxDerivations(t *testing.T) {
	p := NewParser(anbn, WithMaxDerivations(10))
	_, err := p.Recognize(context.Background(), word("a", "a", "b", "b"))
	if !errors.Is(err, ErrDerivationLimit) {
		t.Errorf("Recognize = %v, want ErrDerivationLimit", err)
	}

	p = NewParser(anbn, WithMaxDerivations(10), WithWorkers(2))
	_, err = p.Derivations(context.Background(), 6)
	if !errors.Is(err, ErrDerivationLimit) {
		t.Errorf("Derivations = %v, want ErrDerivationLimit", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewParser(simple).Recognize(ctx, word("a", "b"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Recognize = %v, want context.Canceled", err)
	}
}

func TestViable(t *testing.T) {
	target := word("a", "b", "c")
	tests := []struct {
		form grammar.Word
		want bool
	}{
		{form: grammar.NewWord(grammar.V("S")), want: true},
		{form: grammar.NewWord(grammar.T("a"), grammar.V("X")), want: true},
		{form: grammar.NewWord(grammar.T("b"), grammar.V("X")), want: false},
		{form: grammar.NewWord(grammar.V("X"), grammar.T("c")), want: true},
		{form: grammar.NewWord(grammar.V("X"), grammar.T("b")), want: false},
		{form: word("a", "b"), want: false},
		{form: word("a", "b", "c"), want: true},
		{form: grammar.NewWord(grammar.V("X"), grammar.V("X"), grammar.V("X"), grammar.V("X")), want: false},
		{form: grammar.Word{}, want: false},
	}
	for _, tt := range tests {
		if got := viable(tt.form, target); got != tt.want {
			t.Errorf("viable(%s) = %v, want %v", tt.form, got, tt.want)
		}
	}
}
