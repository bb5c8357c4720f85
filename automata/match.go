package automata

// Match reports whether the automaton accepts the whole input string, by
// direct simulation with epsilon closures.
func (n *NFA) Match(input string) bool {
	curr := closure(map[*state]struct{}{n.start: {}})
	for _, r := range input {
		next := map[*state]struct{}{}
		for s := range curr {
			for _, e := range s.edges {
				if e.kind != edgeEps && e.matches(r) {
					next[e.to] = struct{}{}
				}
			}
		}
		if len(next) == 0 {
			return false
		}
		curr = closure(next)
	}
	for s := range curr {
		if s.accept {
			return true
		}
	}
	return false
}

// closure expands set in place with everything reachable over epsilon edges.
func closure(set map[*state]struct{}) map[*state]struct{} {
	stack := make([]*state, 0, len(set))
	for s := range set {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range s.edges {
			if e.kind != edgeEps {
				continue
			}
			if _, ok := set[e.to]; !ok {
				set[e.to] = struct{}{}
				stack = append(stack, e.to)
			}
		}
	}
	return set
}
