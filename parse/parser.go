package parse

import (
	"context"
	"fmt"
	"sync"

	"github.com/dhamidi/derive/derivation"
	"github.com/dhamidi/derive/grammar"
	"github.com/tliron/commonlog"
)

// Grammar is what the parser needs to know about a grammar.
type Grammar interface {
	Start() grammar.Symbol
	Rules() []grammar.Rule
}

// Parser searches the derivations of a grammar breadth first.
//
// Within a pass, derivations are expanded in the order they were found,
// the symbols of each latest word left to right and the rules of each
// variable in the order the grammar declares them. The first derivation
// found for a word therefore only depends on the grammar.
type Parser struct {
	start grammar.Symbol
	rules map[grammar.Symbol][]grammar.Rule
	all   []grammar.Rule

	maxDerivations int
	workers        int
	bound          func(int) int
	prune          bool
	log            commonlog.Logger
}

// NewParser returns a parser for g.
func NewParser(g Grammar, opts ...Option) *Parser {
	p := &Parser{
		start:   g.Start(),
		rules:   make(map[grammar.Symbol][]grammar.Rule),
		all:     g.Rules(),
		workers: 1,
		bound:   Bound,
		log:     commonlog.GetLogger("derive.parse"),
	}
	for _, r := range p.all {
		if r.Variable.IsVariable() {
			p.rules[r.Variable] = append(p.rules[r.Variable], r)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Bound is the number of rewrites that suffices to derive a word of
// length n when every rule expands into one or two symbols: n-1 binary
// rewrites to reach n symbols and at most n unary ones. The empty word
// gets a single pass so that start → ε can apply.
func Bound(n int) int {
	if n == 0 {
		return 1
	}
	return 2*n - 1
}

// UnitBound returns a bound that also covers grammars with unit rules
// (A → B), where depth is the longest run of unit rules a shortest
// derivation applies in a row (see grammar.Grammar.UnitDepth). Each of the
// at most 2n-1 other rewrites can sit under such a run.
func UnitBound(depth int) func(n int) int {
	return func(n int) int {
		if n == 0 {
			return 1
		}
		return Bound(n) * (depth + 1)
	}
}

// Start returns the start variable of the parser's grammar.
func (p *Parser) Start() grammar.Symbol {
	return p.start
}

// Rules returns the rules of the parser's grammar in declared order.
func (p *Parser) Rules() []grammar.Rule {
	return append([]grammar.Rule(nil), p.all...)
}

// Derivations returns every derivation of at most n rewrites, shortest
// first. The initial derivation is always the first element.
func (p *Parser) Derivations(ctx context.Context, n int) ([]*derivation.Derivation, error) {
	all, _, err := p.search(ctx, n, nil)
	return all, err
}

// Match returns the first derivation within the bound whose latest word
// is w, or nil if there is none.
func (p *Parser) Match(ctx context.Context, w grammar.Word) (*derivation.Derivation, error) {
	_, match, err := p.search(ctx, p.bound(w.Len()), &w)
	return match, err
}

// Recognize reports whether w is in the language of the grammar.
func (p *Parser) Recognize(ctx context.Context, w grammar.Word) (bool, error) {
	match, err := p.Match(ctx, w)
	if err != nil {
		return false, err
	}
	return match != nil, nil
}

// ParseTree returns a parse tree for w, or nil if w is not in the
// language. The empty word yields EmptyTree of the start variable.
func (p *Parser) ParseTree(ctx context.Context, w grammar.Word) (*Node, error) {
	match, err := p.Match(ctx, w)
	if err != nil || match == nil {
		return nil, err
	}
	if w.IsEmpty() {
		return EmptyTree(p.start), nil
	}
	return Build(match)
}

// search runs up to n passes. With a target it stops at the first pass
// that produces the target and returns that derivation as match.
func (p *Parser) search(ctx context.Context, n int, target *grammar.Word) (all []*derivation.Derivation, match *derivation.Derivation, err error) {
	initial := derivation.New(p.start)
	if target != nil && initial.Latest().Equal(*target) {
		return []*derivation.Derivation{initial}, initial, nil
	}

	all = []*derivation.Derivation{initial}
	frontier := all
	for pass := 1; pass <= n && len(frontier) > 0; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		next, err := p.expand(frontier, target, len(all))
		if err != nil {
			return nil, nil, err
		}
		all = append(all, next...)
		p.log.Debugf("pass %d/%d: %d new derivations, %d total", pass, n, len(next), len(all))

		if target != nil {
			for _, d := range next {
				if d.Latest().Equal(*target) {
					return all, d, nil
				}
			}
		}
		frontier = next
	}
	return all, nil, nil
}

// expand returns the successors of every derivation in frontier, in
// frontier order. held is the number of derivations found so far.
func (p *Parser) expand(frontier []*derivation.Derivation, target *grammar.Word, held int) ([]*derivation.Derivation, error) {
	if p.workers <= 1 || len(frontier) < 2*p.workers {
		var next []*derivation.Derivation
		for _, d := range frontier {
			next = p.successors(d, target, next)
			if err := p.checkLimit(held + len(next)); err != nil {
				return nil, err
			}
		}
		return next, nil
	}

	size := (len(frontier) + p.workers - 1) / p.workers
	chunks := make([][]*derivation.Derivation, 0, p.workers)
	for lo := 0; lo < len(frontier); lo += size {
		chunks = append(chunks, frontier[lo:min(lo+size, len(frontier))])
	}

	results := make([][]*derivation.Derivation, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out []*derivation.Derivation
			for _, d := range chunk {
				out = p.successors(d, target, out)
			}
			results[i] = out
		}()
	}
	wg.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	if err := p.checkLimit(held + total); err != nil {
		return nil, err
	}
	next := make([]*derivation.Derivation, 0, total)
	for _, r := range results {
		next = append(next, r...)
	}
	return next, nil
}

func (p *Parser) checkLimit(n int) error {
	if p.maxDerivations > 0 && n > p.maxDerivations {
		return fmt.Errorf("%d derivations, limit %d: %w", n, p.maxDerivations, ErrDerivationLimit)
	}
	return nil
}

// successors appends to out one derivation per rule applicable to each
// variable of d's latest word.
func (p *Parser) successors(d *derivation.Derivation, target *grammar.Word, out []*derivation.Derivation) []*derivation.Derivation {
	word := d.Latest()
	for i, sym := range word.All() {
		if sym.IsTerminal() {
			continue
		}
		for _, r := range p.rules[sym] {
			next := word.Replace(i, r.Expansion)
			if p.prune && target != nil && !viable(next, *target) {
				continue
			}
			out = append(out, d.Extend(next, r, i))
		}
	}
	return out
}

// viable reports whether form can still derive target. Terminals never
// change once produced and no rewrite of a non-initial form shrinks it,
// so a form longer than target, or one whose leading or trailing
// terminals differ from target, is a dead end.
func viable(form, target grammar.Word) bool {
	if form.Len() > target.Len() {
		return false
	}
	prefix := 0
	for ; prefix < form.Len(); prefix++ {
		s := form.At(prefix)
		if s.IsVariable() {
			break
		}
		if s != target.At(prefix) {
			return false
		}
	}
	if prefix == form.Len() {
		return form.Len() == target.Len()
	}
	for j := 1; j <= form.Len()-prefix; j++ {
		s := form.At(form.Len() - j)
		if s.IsVariable() {
			break
		}
		if s != target.At(target.Len()-j) {
			return false
		}
	}
	return true
}

// IsInLanguage reports whether w is derivable from the start variable of
// g within Bound(len(w)) rewrites.
func IsInLanguage(g Grammar, w grammar.Word) bool {
	ok, _ := NewParser(g).Recognize(context.Background(), w)
	return ok
}

// GenerateParseTree returns a parse tree for w, or nil if w is not in the
// language of g. An error means the grammar has a rule the tree builder
// cannot fold.
func GenerateParseTree(g Grammar, w grammar.Word) (*Node, error) {
	return NewParser(g).ParseTree(context.Background(), w)
}
