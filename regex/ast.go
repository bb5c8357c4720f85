package regex

import (
	"github.com/willieowens/lexgen/automata"
	"github.com/willieowens/lexgen/charset"
)

type nodeKind int

const (
	kindEpsilon nodeKind = iota
	kindChar
	kindAny
	kindClass  // $name reference, set copied at resolution time
	kindSet    // [...]
	kindNegSet // [^...] in ...
	kindUnion
	kindConcat
	kindStar
	kindPlus
)

// Node is one vertex of the syntax tree. The tree is strict: every node
// exclusively owns its children and its character sets, and it is read-only
// once the parse finishes.
type Node struct {
	kind  nodeKind
	left  *Node
	right *Node

	ch   rune         // kindChar
	set  *charset.Set // kindClass, kindSet; the base set for kindNegSet
	excl *charset.Set // kindNegSet: the excluded items
}

func epsilonNode() *Node             { return &Node{kind: kindEpsilon} }
func charNode(r rune) *Node          { return &Node{kind: kindChar, ch: r} }
func anyNode() *Node                 { return &Node{kind: kindAny} }
func classNode(s *charset.Set) *Node { return &Node{kind: kindClass, set: s} }
func setNode() *Node                 { return &Node{kind: kindSet, set: charset.New()} }
func unionNode(l, r *Node) *Node     { return &Node{kind: kindUnion, left: l, right: r} }
func concatNode(l, r *Node) *Node    { return &Node{kind: kindConcat, left: l, right: r} }
func starNode(n *Node) *Node         { return &Node{kind: kindStar, left: n} }
func plusNode(n *Node) *Node         { return &Node{kind: kindPlus, left: n} }

func negSetNode(excl, base *Node) *Node {
	return &Node{kind: kindNegSet, excl: excl.set, set: base.set}
}

// Fragment materializes the automaton piece this node matches, bottom-up.
func (n *Node) Fragment() automata.Fragment {
	switch n.kind {
	case kindEpsilon:
		return automata.Epsilon()
	case kindChar:
		return automata.Rune(n.ch)
	case kindAny:
		return automata.AnyChar()
	case kindClass, kindSet:
		return automata.Set(n.set.Copy())
	case kindNegSet:
		return automata.Set(n.set.Difference(n.excl))
	case kindUnion:
		return automata.Union(n.left.Fragment(), n.right.Fragment())
	case kindConcat:
		return automata.Concat(n.left.Fragment(), n.right.Fragment())
	case kindStar:
		return automata.Star(n.left.Fragment())
	case kindPlus:
		return automata.Plus(n.left.Fragment())
	default:
		panic("regex: unknown ast node")
	}
}

// CharSet reports the character set a set-like node denotes. It is how
// class definitions are extracted from parsed patterns; non-set nodes
// return false.
func (n *Node) CharSet() (*charset.Set, bool) {
	switch n.kind {
	case kindClass, kindSet:
		return n.set.Copy(), true
	case kindNegSet:
		return n.set.Difference(n.excl), true
	case kindChar:
		return charset.Of(n.ch), true
	default:
		return nil, false
	}
}
