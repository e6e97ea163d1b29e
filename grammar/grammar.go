package grammar

// Grammar is a context-free grammar: a start variable and an ordered list
// of rules. Rule order is the order rules were declared in and is the
// order the derivation engine tries them in.
type Grammar struct {
	// Name is the file the grammar was loaded from, if any.
	Name string

	start Symbol
	rules []Rule
	index map[Symbol][]Rule
}

// New returns a grammar with the given start variable and rules.
func New(start Symbol, rules ...Rule) *Grammar {
	g := &Grammar{
		start: start,
		rules: append([]Rule(nil), rules...),
		index: make(map[Symbol][]Rule),
	}
	for _, r := range g.rules {
		g.index[r.Variable] = append(g.index[r.Variable], r)
	}
	return g
}

// Start returns the start variable.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Rules returns the rules of g in declared order.
func (g *Grammar) Rules() []Rule {
	return append([]Rule(nil), g.rules...)
}

// RulesFor returns the rules rewriting v, in declared order. Terminals
// have no rules.
func (g *Grammar) RulesFor(v Symbol) []Rule {
	if v.IsTerminal() {
		return nil
	}
	return g.index[v]
}

// Variables returns the start variable followed by every other variable
// in order of first appearance.
func (g *Grammar) Variables() []Symbol {
	return g.collect(Symbol.IsVariable, true)
}

// Terminals returns every terminal in order of first appearance.
func (g *Grammar) Terminals() []Symbol {
	return g.collect(Symbol.IsTerminal, false)
}

func (g *Grammar) collect(keep func(Symbol) bool, withStart bool) []Symbol {
	seen := make(map[Symbol]bool)
	var out []Symbol
	add := func(s Symbol) {
		if keep(s) && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if withStart {
		add(g.start)
	}
	for _, r := range g.rules {
		add(r.Variable)
		for _, s := range r.Expansion.All() {
			add(s)
		}
	}
	return out
}

// Has reports whether g contains a rule equal to r.
func (g *Grammar) Has(r Rule) bool {
	for _, candidate := range g.index[r.Variable] {
		if candidate.Same(r) {
			return true
		}
	}
	return false
}

// IsNullable reports whether g has the rule start → ε.
func (g *Grammar) IsNullable() bool {
	for _, r := range g.index[g.start] {
		if r.Expansion.IsEmpty() {
			return true
		}
	}
	return false
}
