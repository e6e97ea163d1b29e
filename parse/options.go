package parse

import "github.com/tliron/commonlog"

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDerivations makes searches fail with ErrDerivationLimit once they
// hold more than n derivations. Zero means no limit.
func WithMaxDerivations(n int) Option {
	return func(p *Parser) {
		p.maxDerivations = n
	}
}

// WithWorkers expands each pass with up to n goroutines. Results are
// merged in frontier order, so matches do not depend on n.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		p.workers = max(n, 1)
	}
}

// WithBound replaces the number of passes used for a word of length n.
// Grammars outside the one-or-two-symbol form may need a larger bound.
func WithBound(bound func(n int) int) Option {
	return func(p *Parser) {
		p.bound = bound
	}
}

// WithPruning drops sentential forms that can no longer produce the
// target word while searching for it: forms longer than the word, and
// forms whose terminal prefix or suffix disagrees with it. The first match
// is unchanged.
func WithPruning() Option {
	return func(p *Parser) {
		p.prune = true
	}
}

// WithLogger sets the logger that reports search progress.
func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}
