package grammar

// UnitRules returns the rules whose expansion is a single variable, in
// declared order.
func (g *Grammar) UnitRules() []Rule {
	var out []Rule
	for _, r := range g.rules {
		if r.Arity() == 1 && r.Expansion.At(0).IsVariable() {
			out = append(out, r)
		}
	}
	return out
}

// UnitDepth is the longest run of unit rules a shortest derivation can
// apply in a row. Such a run never repeats a variable, so with cycles it
// is capped by the number of variables that have unit rules.
func (g *Grammar) UnitDepth() int {
	edges := make(map[Symbol][]Symbol)
	for _, r := range g.UnitRules() {
		edges[r.Variable] = append(edges[r.Variable], r.Expansion.At(0))
	}
	if len(edges) == 0 {
		return 0
	}

	const visiting = -1
	depth := make(map[Symbol]int)
	cyclic := false
	var visit func(v Symbol) int
	visit = func(v Symbol) int {
		if d, ok := depth[v]; ok {
			if d == visiting {
				cyclic = true
				return 0
			}
			return d
		}
		depth[v] = visiting
		longest := 0
		for _, next := range edges[v] {
			longest = max(longest, visit(next)+1)
		}
		depth[v] = longest
		return longest
	}

	longest := 0
	for _, r := range g.UnitRules() {
		longest = max(longest, visit(r.Variable))
	}
	if cyclic {
		return len(edges)
	}
	return longest
}
