package automata

import (
	"fmt"
	"sort"
)

// DState is one determinized state. Trans covers the runes the automaton
// mentions explicitly; Wild, when set, is taken by any other rune except
// newline (it exists only if an any-char edge reaches this state set).
type DState struct {
	ID     int
	Accept bool
	Rule   int // lowest accepting rule tag, -1 when untagged
	Trans  map[rune]*DState
	Wild   *DState
}

type DFA struct {
	Start  *DState
	States []*DState
	Alpha  []rune
}

// Determinize runs the subset construction over n. Accepting subsets keep
// the lowest rule tag, so earlier-declared lexer rules win ties.
func Determinize(n *NFA) *DFA {
	alpha := n.Alphabet()

	key := func(set map[*state]struct{}) string {
		ids := make([]int, 0, len(set))
		for s := range set {
			ids = append(ids, s.id)
		}
		sort.Ints(ids)
		return fmt.Sprint(ids)
	}

	mkState := func(id int, set map[*state]struct{}) *DState {
		d := &DState{ID: id, Rule: -1, Trans: map[rune]*DState{}}
		for s := range set {
			if !s.accept {
				continue
			}
			d.Accept = true
			if s.rule >= 0 && (d.Rule < 0 || s.rule < d.Rule) {
				d.Rule = s.rule
			}
		}
		return d
	}

	initSet := closure(map[*state]struct{}{n.start: {}})
	start := mkState(0, initSet)
	mp := map[string]*DState{key(initSet): start}
	states := []*DState{start}
	queue := []map[*state]struct{}{initSet}

	for len(queue) > 0 {
		curSet := queue[0]
		queue = queue[1:]
		cur := mp[key(curSet)]

		intern := func(moved map[*state]struct{}) *DState {
			clo := closure(moved)
			k := key(clo)
			d, ok := mp[k]
			if !ok {
				d = mkState(len(states), clo)
				mp[k] = d
				states = append(states, d)
				queue = append(queue, clo)
			}
			return d
		}

		for _, sym := range alpha {
			moved := move(curSet, sym)
			if len(moved) == 0 {
				continue
			}
			cur.Trans[sym] = intern(moved)
		}
		if wild := moveWild(curSet); len(wild) > 0 {
			cur.Wild = intern(wild)
		}
	}
	return &DFA{Start: start, States: states, Alpha: alpha}
}

func move(set map[*state]struct{}, sym rune) map[*state]struct{} {
	out := map[*state]struct{}{}
	for s := range set {
		for _, e := range s.edges {
			if e.kind != edgeEps && e.matches(sym) {
				out[e.to] = struct{}{}
			}
		}
	}
	return out
}

// moveWild follows only any-char edges: the transitions taken by a rune
// outside the explicit alphabet.
func moveWild(set map[*state]struct{}) map[*state]struct{} {
	out := map[*state]struct{}{}
	for s := range set {
		for _, e := range s.edges {
			if e.kind == edgeAny {
				out[e.to] = struct{}{}
			}
		}
	}
	return out
}

// Step follows the transition for r out of d, honoring the wildcard edge.
// It returns nil when the automaton dies.
func (d *DState) Step(r rune) *DState {
	if to, ok := d.Trans[r]; ok {
		return to
	}
	if r != '\n' {
		return d.Wild
	}
	return nil
}
