package automata

import (
	"fmt"
	"io"
)

// DOT writes a Graphviz rendering of the NFA to w.
func (n *NFA) DOT(w io.Writer) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "    rankdir=LR;")
	for _, s := range n.states {
		shape := "circle"
		if s.accept {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    n%d [shape=%s];\n", s.id, shape)
		for _, e := range s.edges {
			fmt.Fprintf(w, "    n%d -> n%d [label=%q];\n", s.id, e.to.id, e.label())
		}
	}
	fmt.Fprintf(w, "    _start [shape=point]; _start -> n%d;\n", n.start.id)
	fmt.Fprintln(w, "}")
}

func (e *edge) label() string {
	switch e.kind {
	case edgeEps:
		return "ε"
	case edgeAny:
		return "."
	case edgeSet:
		runes := e.set.Runes()
		if len(runes) > 6 {
			return fmt.Sprintf("[%c..%c]", runes[0], runes[len(runes)-1])
		}
		return "[" + string(runes) + "]"
	default:
		return string(e.r)
	}
}

// DOT writes a Graphviz rendering of the DFA to w.
func (d *DFA) DOT(w io.Writer) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "    rankdir=LR;")
	for _, s := range d.States {
		shape := "circle"
		if s.Accept {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    q%d [shape=%s];\n", s.ID, shape)
		for _, c := range d.Alpha {
			if to, ok := s.Trans[c]; ok {
				fmt.Fprintf(w, "    q%d -> q%d [label=%q];\n", s.ID, to.ID, string(c))
			}
		}
		if s.Wild != nil {
			fmt.Fprintf(w, "    q%d -> q%d [label=\"other\"];\n", s.ID, s.Wild.ID)
		}
	}
	fmt.Fprintf(w, "    _start [shape=point]; _start -> q%d;\n", d.Start.ID)
	fmt.Fprintln(w, "}")
}
