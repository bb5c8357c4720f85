package automata

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/willieowens/lexgen/charset"
)

func TestFragmentPrimitives(t *testing.T) {
	if n := Close(Epsilon()); !n.Match("") || n.Match("a") {
		t.Fatal("epsilon should match only the empty string")
	}
	if n := Close(Rune('a')); !n.Match("a") || n.Match("b") || n.Match("") {
		t.Fatal("rune fragment wrong")
	}
	if n := Close(Set(charset.Of('x', 'y'))); !n.Match("x") || !n.Match("y") || n.Match("z") {
		t.Fatal("set fragment wrong")
	}
	if n := Close(AnyChar()); !n.Match("q") || n.Match("\n") || n.Match("") {
		t.Fatal("any fragment wrong")
	}
}

func TestFragmentComposition(t *testing.T) {
	ab := Concat(Rune('a'), Rune('b'))
	n := Close(Union(ab, Rune('c')))
	for _, s := range []string{"ab", "c"} {
		if !n.Match(s) {
			t.Fatalf("should match %q", s)
		}
	}
	for _, s := range []string{"a", "b", "abc", ""} {
		if n.Match(s) {
			t.Fatalf("should not match %q", s)
		}
	}

	star := Close(Star(Concat(Rune('a'), Rune('b'))))
	if !star.Match("") || !star.Match("abab") || star.Match("aba") {
		t.Fatal("star composition wrong")
	}

	plus := Close(Plus(Rune('a')))
	if plus.Match("") || !plus.Match("aaa") {
		t.Fatal("plus composition wrong")
	}
}

func TestDeterminizeAgreesWithNFA(t *testing.T) {
	// (ab|a)*b over {a,b}: compare NFA simulation with the DFA on all
	// short words
	inner := Union(Concat(Rune('a'), Rune('b')), Rune('a'))
	nfa := Close(Concat(Star(inner), Rune('b')))
	dfa := Determinize(nfa)

	var words []string
	alpha := []string{"", "a", "b"}
	for _, w := range alpha {
		for _, x := range alpha {
			for _, y := range alpha {
				for _, z := range alpha {
					words = append(words, w+x+y+z)
				}
			}
		}
	}
	for _, s := range words {
		want := nfa.Match(s)
		got := dfaMatch(dfa, s)
		if want != got {
			t.Fatalf("disagreement on %q: nfa=%v dfa=%v", s, want, got)
		}
	}
}

func dfaMatch(d *DFA, s string) bool {
	st := d.Start
	for _, r := range s {
		st = st.Step(r)
		if st == nil {
			return false
		}
	}
	return st.Accept
}

func TestMinimizePreservesLanguage(t *testing.T) {
	nfa := Close(Concat(Star(Union(Rune('a'), Rune('b'))), Concat(Rune('a'), Concat(Rune('b'), Rune('b')))))
	raw := Determinize(nfa)
	min := Minimize(raw)

	if len(min.States) > len(raw.States) {
		t.Fatalf("minimize grew the automaton: %d -> %d", len(raw.States), len(min.States))
	}
	// (a|b)*abb has a 4-state minimal DFA
	if len(min.States) != 4 {
		t.Fatalf("want 4 states, got %d", len(min.States))
	}

	for _, s := range []string{"abb", "aabb", "babb", "ababb", "", "ab", "abba"} {
		if dfaMatch(raw, s) != dfaMatch(min, s) {
			t.Fatalf("language changed at %q", s)
		}
	}
}

func TestRuleTagPriority(t *testing.T) {
	// rule 0 "ab" and rule 1 "[ab]+" both accept "ab"; the earlier rule
	// must win in the determinized automaton
	exact := Close(Concat(Rune('a'), Rune('b')))
	exact.SetRule(0)
	loose := Close(Plus(Set(charset.Of('a', 'b'))))
	loose.SetRule(1)

	dfa := Minimize(Determinize(Combine([]*NFA{exact, loose})))

	st := dfa.Start
	for _, r := range "ab" {
		st = st.Step(r)
		if st == nil {
			t.Fatal("combined automaton died on ab")
		}
	}
	if !st.Accept || st.Rule != 0 {
		t.Fatalf("want rule 0 to win, got accept=%v rule=%d", st.Accept, st.Rule)
	}

	st = dfa.Start
	for _, r := range "ba" {
		st = st.Step(r)
	}
	if st == nil || !st.Accept || st.Rule != 1 {
		t.Fatal("ba should accept through rule 1")
	}
}

func TestMinimizeKeepsRulesApart(t *testing.T) {
	a := Close(Rune('a'))
	a.SetRule(0)
	b := Close(Rune('b'))
	b.SetRule(1)
	dfa := Minimize(Determinize(Combine([]*NFA{a, b})))

	sa := dfa.Start.Step('a')
	sb := dfa.Start.Step('b')
	if sa == nil || sb == nil || sa == sb {
		t.Fatal("accept states of distinct rules must not merge")
	}
	if sa.Rule != 0 || sb.Rule != 1 {
		t.Fatalf("rule tags lost: %d %d", sa.Rule, sb.Rule)
	}
}

func randFragment(r *rand.Rand, depth int) Fragment {
	if depth <= 0 || r.Intn(4) == 0 {
		switch r.Intn(3) {
		case 0:
			return Epsilon()
		case 1:
			return Rune(rune('a' + r.Intn(3)))
		default:
			return Set(charset.Of(rune('a'+r.Intn(3)), rune('a'+r.Intn(3))))
		}
	}
	switch r.Intn(4) {
	case 0:
		return Concat(randFragment(r, depth-1), randFragment(r, depth-1))
	case 1:
		return Union(randFragment(r, depth-1), randFragment(r, depth-1))
	case 2:
		return Star(randFragment(r, depth-1))
	default:
		return Plus(randFragment(r, depth-1))
	}
}

func shortWords(alphabet string, max int) []string {
	words := []string{""}
	frontier := []string{""}
	for i := 0; i < max; i++ {
		var next []string
		for _, w := range frontier {
			for _, r := range alphabet {
				next = append(next, w+string(r))
			}
		}
		words = append(words, next...)
		frontier = next
	}
	return words
}

func TestMinimizeAgreesWithNFAOnRandomAutomata(t *testing.T) {
	// refinement order depends on map iteration, so a single automaton can
	// pass by luck; many random ones cannot
	words := shortWords("abc", 6)
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		nfa := Close(randFragment(r, 4))
		min := Minimize(Determinize(nfa))
		for _, w := range words {
			if want, got := nfa.Match(w), dfaMatch(min, w); want != got {
				t.Fatalf("automaton %d: disagreement on %q: nfa=%v minimized=%v", i, w, want, got)
			}
		}
	}
}

func dfaRule(d *DFA, s string) int {
	st := d.Start
	for _, r := range s {
		if st = st.Step(r); st == nil {
			return -1
		}
	}
	if !st.Accept {
		return -1
	}
	return st.Rule
}

func TestMinimizePreservesRuleAttribution(t *testing.T) {
	words := shortWords("abc", 5)
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		first := Close(randFragment(r, 3))
		first.SetRule(0)
		second := Close(randFragment(r, 3))
		second.SetRule(1)
		raw := Determinize(Combine([]*NFA{first, second}))
		min := Minimize(raw)
		for _, w := range words {
			if want, got := dfaRule(raw, w), dfaRule(min, w); want != got {
				t.Fatalf("automaton %d: rule changed on %q: %d -> %d", i, w, want, got)
			}
		}
	}
}

func TestWildcardTransitions(t *testing.T) {
	// a.b : the middle step must take any rune, including ones outside
	// the explicit alphabet
	nfa := Close(Concat(Rune('a'), Concat(AnyChar(), Rune('b'))))
	dfa := Determinize(nfa)

	for _, s := range []string{"axb", "aab", "a€b"} {
		if !dfaMatch(dfa, s) {
			t.Fatalf("should match %q", s)
		}
	}
	if dfaMatch(dfa, "a\nb") {
		t.Fatal("wildcard must not cross newline")
	}
	min := Minimize(dfa)
	if !dfaMatch(min, "azb") || dfaMatch(min, "ab") {
		t.Fatal("minimization broke wildcard edges")
	}
}

func TestDOTOutput(t *testing.T) {
	nfa := Close(Union(Rune('a'), Rune('b')))
	var b strings.Builder
	nfa.DOT(&b)
	out := b.String()
	if !strings.Contains(out, "digraph G {") || !strings.Contains(out, "doublecircle") {
		t.Fatalf("unexpected NFA dot output:\n%s", out)
	}

	var d strings.Builder
	Determinize(nfa).DOT(&d)
	if !strings.Contains(d.String(), "_start") {
		t.Fatalf("unexpected DFA dot output:\n%s", d.String())
	}
}
