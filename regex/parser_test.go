package regex

import (
	"errors"
	"testing"

	"github.com/willieowens/lexgen/automata"
	"github.com/willieowens/lexgen/charset"
)

func compile(t *testing.T, pattern string, classes *charset.Collection) *automata.NFA {
	t.Helper()
	nfa, err := Compile(pattern, classes, 1)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return nfa
}

func accepts(t *testing.T, pattern string, classes *charset.Collection, yes []string, no []string) {
	t.Helper()
	nfa := compile(t, pattern, classes)
	for _, s := range yes {
		if !nfa.Match(s) {
			t.Errorf("pattern %q should match %q", pattern, s)
		}
	}
	for _, s := range no {
		if nfa.Match(s) {
			t.Errorf("pattern %q should not match %q", pattern, s)
		}
	}
}

func TestLiteral(t *testing.T) {
	accepts(t, "a", nil, []string{"a"}, []string{"", "b", "aa"})
}

func TestUnion(t *testing.T) {
	accepts(t, "a|b|c", nil, []string{"a", "b", "c"}, []string{"", "ab", "d"})
}

func TestConcat(t *testing.T) {
	accepts(t, "abc", nil, []string{"abc"}, []string{"ab", "abcd", ""})
}

func TestRepetition(t *testing.T) {
	accepts(t, "a*", nil, []string{"", "a", "aaaa"}, []string{"b", "ab"})
	accepts(t, "a+", nil, []string{"a", "aaa"}, []string{"", "b"})
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	accepts(t, "(a|b)c", nil, []string{"ac", "bc"}, []string{"a", "c", "abc"})
	accepts(t, "a|bc", nil, []string{"a", "bc"}, []string{"ac", "abc"})
}

func TestRepetitionBindsTighterThanConcat(t *testing.T) {
	accepts(t, "ab*", nil, []string{"a", "ab", "abbb"}, []string{"abab"})
	accepts(t, "(ab)*", nil, []string{"", "ab", "abab"}, []string{"a", "abb"})
}

func TestSetItems(t *testing.T) {
	accepts(t, "[a-c]", nil, []string{"a", "b", "c"}, []string{"d", ""})
	accepts(t, "[ac-e]", nil, []string{"a", "c", "d", "e"}, []string{"b", "f"})
}

func TestSetWithLiteralSpace(t *testing.T) {
	// inside brackets a blank is significant
	accepts(t, "[a ]+", nil, []string{"a a", "  "}, []string{"b"})
}

func TestWhitespaceSkippedOutsideSets(t *testing.T) {
	// outside brackets blanks separate tokens and match nothing
	accepts(t, "a b", nil, []string{"ab"}, []string{"a b"})
	// the skipping flag must be restored after a bracketed set
	accepts(t, "[ab] c", nil, []string{"ac", "bc"}, []string{"a c"})
}

func TestAnyChar(t *testing.T) {
	accepts(t, ".", nil, []string{"x", "."}, []string{"", "\n", "xy"})
}

func TestEmptyPattern(t *testing.T) {
	accepts(t, "", nil, []string{""}, []string{"a"})
}

func TestEmptyUnionBranch(t *testing.T) {
	accepts(t, "a|", nil, []string{"a", ""}, []string{"b"})
	accepts(t, "|a", nil, []string{"a", ""}, []string{"b"})
}

func TestEscapedOperators(t *testing.T) {
	accepts(t, `\*a`, nil, []string{"*a"}, []string{"a", "aa"})
	accepts(t, `\[\]`, nil, []string{"[]"}, []string{""})
}

func TestClassReference(t *testing.T) {
	classes := charset.NewCollection()
	digits := charset.New()
	if err := digits.AddRange('0', '9'); err != nil {
		t.Fatal(err)
	}
	classes.Define("digit", digits)

	accepts(t, "$digit+", classes, []string{"0", "42", "007"}, []string{"", "x", "4x"})
}

func TestNegativeSetWithBracketTail(t *testing.T) {
	accepts(t, "[^b] in [a-c]", nil, []string{"a", "c"}, []string{"b", "d", ""})
}

func TestNegativeSetWithClassTail(t *testing.T) {
	classes := charset.NewCollection()
	lower := charset.New()
	if err := lower.AddRange('a', 'z'); err != nil {
		t.Fatal(err)
	}
	classes.Define("lower", lower)

	accepts(t, "[^aeiou] in $lower+", classes, []string{"xyz", "b"}, []string{"e", "ax"})
}

func TestNestedSetsRestoreMode(t *testing.T) {
	// sets inside groups and negative-set tails must leave the scanner in
	// normal mode afterwards
	accepts(t, "([^b] in [abc])d", nil, []string{"ad", "cd"}, []string{"bd", "d"})
	accepts(t, "[ab][cd]", nil, []string{"ac", "bd"}, []string{"ab", "c"})
}

func TestUnknownClassError(t *testing.T) {
	_, err := Compile("a$nope", nil, 3)
	var uce *UnknownClassError
	if !errors.As(err, &uce) {
		t.Fatalf("want UnknownClassError, got %v", err)
	}
	if uce.Line != 3 || uce.Col != 2 || uce.Name != "nope" {
		t.Fatalf("bad position: %+v", uce)
	}
}

func TestUnknownClassInNegativeSetTail(t *testing.T) {
	_, err := Compile("[^a] in $nope", nil, 1)
	var uce *UnknownClassError
	if !errors.As(err, &uce) {
		t.Fatalf("want UnknownClassError, got %v", err)
	}
}

func TestUnclosedGroup(t *testing.T) {
	_, err := Compile("(a", nil, 1)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want SyntaxError, got %v", err)
	}
	if se.Expected != RParen.String() || se.Col != 3 {
		t.Fatalf("want ')' expected at col 3, got %+v", se)
	}
}

func TestUnclosedSet(t *testing.T) {
	_, err := Compile("[ab", nil, 1)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want SyntaxError, got %v", err)
	}
}

func TestDanglingOperator(t *testing.T) {
	_, err := Compile("*a", nil, 1)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want SyntaxError, got %v", err)
	}
	if se.Col != 1 {
		t.Fatalf("error should point at the operator, got col %d", se.Col)
	}
}

func TestMalformedRangeRejected(t *testing.T) {
	_, err := Compile("[z-a]", nil, 4)
	var mre *MalformedRangeError
	if !errors.As(err, &mre) {
		t.Fatalf("want MalformedRangeError, got %v", err)
	}
	if mre.Line != 4 || mre.Lo != 'z' || mre.Hi != 'a' {
		t.Fatalf("bad range error: %+v", mre)
	}
}

func TestTrailingGarbage(t *testing.T) {
	_, err := Compile("a)", nil, 1)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want SyntaxError at stray ')', got %v", err)
	}
	if se.Expected != EOS.String() {
		t.Fatalf("want end-of-expression expectation, got %+v", se)
	}
}

func TestResolvedSetsAreDecoupledFromRegistry(t *testing.T) {
	classes := charset.NewCollection()
	classes.Define("d", charset.Of('0', '1'))

	node, err := Parse("$d", classes, 1)
	if err != nil {
		t.Fatal(err)
	}
	// mutating the registry after the parse must not affect the tree
	classes.Define("d", charset.Of('x'))

	set, ok := node.CharSet()
	if !ok {
		t.Fatal("class node should expose a set")
	}
	if !set.Contains('0') || set.Contains('x') {
		t.Fatalf("tree set aliased the registry: %v", set.Runes())
	}
}

func TestParserIsSingleUse(t *testing.T) {
	p := NewParser("ab", nil, 1)
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	// a second parse sees only end-of-stream
	node, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if frag := automata.Close(node.Fragment()); !frag.Match("") || frag.Match("ab") {
		t.Fatal("drained parser should produce an epsilon tree")
	}
}
