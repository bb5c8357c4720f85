// Package automata builds and manipulates the finite automata behind
// compiled patterns: Thompson NFA fragments, subset-construction DFAs and
// DFA minimization.
package automata

import "github.com/willieowens/lexgen/charset"

type edgeKind int

const (
	edgeEps edgeKind = iota
	edgeRune
	edgeSet
	edgeAny // any rune except newline
)

type edge struct {
	kind edgeKind
	r    rune
	set  *charset.Set
	to   *state
}

type state struct {
	id     int
	edges  []*edge
	accept bool
	rule   int // rule tag for accept states, -1 when untagged
}

func newState() *state { return &state{id: -1, rule: -1} }

// Fragment is a partial NFA: a start state plus the dangling exits that get
// patched to whatever comes next.
type Fragment struct {
	start *state
	outs  []*state
}

func patch(outs []*state, to *state) {
	for _, s := range outs {
		s.edges = append(s.edges, &edge{kind: edgeEps, to: to})
	}
}

// Epsilon matches the empty string.
func Epsilon() Fragment {
	s := newState()
	return Fragment{start: s, outs: []*state{s}}
}

// Rune matches exactly one character.
func Rune(r rune) Fragment {
	s1, s2 := newState(), newState()
	s1.edges = append(s1.edges, &edge{kind: edgeRune, r: r, to: s2})
	return Fragment{start: s1, outs: []*state{s2}}
}

// Set matches any one character in set. The fragment owns the set.
func Set(set *charset.Set) Fragment {
	s1, s2 := newState(), newState()
	s1.edges = append(s1.edges, &edge{kind: edgeSet, set: set, to: s2})
	return Fragment{start: s1, outs: []*state{s2}}
}

// AnyChar matches any single character other than newline.
func AnyChar() Fragment {
	s1, s2 := newState(), newState()
	s1.edges = append(s1.edges, &edge{kind: edgeAny, to: s2})
	return Fragment{start: s1, outs: []*state{s2}}
}

// Concat sequences a then b.
func Concat(a, b Fragment) Fragment {
	patch(a.outs, b.start)
	return Fragment{start: a.start, outs: b.outs}
}

// Union branches into a or b.
func Union(a, b Fragment) Fragment {
	s := newState()
	s.edges = append(s.edges, &edge{kind: edgeEps, to: a.start})
	s.edges = append(s.edges, &edge{kind: edgeEps, to: b.start})
	return Fragment{start: s, outs: append(a.outs, b.outs...)}
}

// Star matches zero or more repetitions of f.
func Star(f Fragment) Fragment {
	s := newState()
	patch(f.outs, s)
	s.edges = append(s.edges, &edge{kind: edgeEps, to: f.start})
	return Fragment{start: s, outs: []*state{s}}
}

// Plus matches one or more repetitions of f.
func Plus(f Fragment) Fragment {
	s := newState()
	patch(f.outs, s)
	s.edges = append(s.edges, &edge{kind: edgeEps, to: f.start})
	return Fragment{start: f.start, outs: []*state{s}}
}

// NFA is a closed fragment with a single designated accept state.
type NFA struct {
	start  *state
	accept *state
	states []*state
}

// Close attaches an accept state to the fragment's dangling exits and
// numbers the reachable states.
func Close(f Fragment) *NFA {
	accept := newState()
	accept.accept = true
	patch(f.outs, accept)
	n := &NFA{start: f.start, accept: accept}
	n.number()
	return n
}

// SetRule tags the accept state with a lexer rule index. Lower indexes win
// when the determinized automaton accepts through several rules.
func (n *NFA) SetRule(rule int) {
	n.accept.rule = rule
}

// Combine merges several automata under a fresh start state. The result has
// no single accept state; acceptance is per-rule.
func Combine(nfas []*NFA) *NFA {
	start := newState()
	for _, sub := range nfas {
		start.edges = append(start.edges, &edge{kind: edgeEps, to: sub.start})
	}
	n := &NFA{start: start}
	n.number()
	return n
}

// number collects reachable states depth-first and assigns stable ids.
func (n *NFA) number() {
	n.states = n.states[:0]
	seen := map[*state]bool{}
	var dfs func(*state)
	dfs = func(s *state) {
		if seen[s] {
			return
		}
		seen[s] = true
		s.id = len(n.states)
		n.states = append(n.states, s)
		for _, e := range s.edges {
			dfs(e.to)
		}
	}
	dfs(n.start)
}

// Alphabet returns every rune the automaton mentions explicitly, sorted.
// Any-char edges contribute nothing; they cover the rest of the alphabet.
func (n *NFA) Alphabet() []rune {
	set := charset.New()
	for _, s := range n.states {
		for _, e := range s.edges {
			switch e.kind {
			case edgeRune:
				set.Add(e.r)
			case edgeSet:
				set.Union(e.set)
			}
		}
	}
	return set.Runes()
}

func (e *edge) matches(r rune) bool {
	switch e.kind {
	case edgeRune:
		return e.r == r
	case edgeSet:
		return e.set.Contains(r)
	case edgeAny:
		return r != '\n'
	}
	return false
}
