package dataflow

import (
	"fmt"
	"io"
)

// WriteDOT renders the entity/outcome bigraph as a Graphviz digraph for
// visual inspection. Entities render as boxes, outcome channels as
// ellipses. Output is deterministic: nodes and edges appear in node-index
// (first-seen) order.
func WriteDOT(w io.Writer, g *Graph) error {
	if _, err := fmt.Fprintln(w, "digraph dataflow {"); err != nil {
		return err
	}

	for idx := 0; idx < g.NodeCount(); idx++ {
		n := g.Node(idx)
		shape := "box"
		if n.Kind == KindOutcome {
			shape = "ellipse"
		}
		if _, err := fmt.Fprintf(w, "  %q [label=%q, shape=%s];\n", dotID(n), n.String(), shape); err != nil {
			return err
		}
	}

	for idx := 0; idx < g.NodeCount(); idx++ {
		from := g.Node(idx)
		for _, t := range g.Outgoing(idx) {
			if _, err := fmt.Fprintf(w, "  %q -> %q;\n", dotID(from), dotID(g.Node(t))); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

// dotID disambiguates the two node namespaces, which may share textual
// names, into distinct DOT node IDs.
func dotID(n Node) string {
	return n.Kind.String() + ":" + n.Name
}
