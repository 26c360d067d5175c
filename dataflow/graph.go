package dataflow

import (
	"github.com/tech-blogging/sdataflow/flowparser"
)

// NodeKind discriminates the two node namespaces of the dataflow graph.
type NodeKind int

const (
	// KindEntity is a named unit of user logic, invoked once per run.
	KindEntity NodeKind = iota
	// KindOutcome is a named routing channel, never invoked.
	KindOutcome
)

func (k NodeKind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindOutcome:
		return "outcome"
	default:
		return "unknown"
	}
}

// Node is either an entity or an outcome channel. The two namespaces are
// distinct: an entity named "A" and the outcome channel named "A" (A's
// default outcome) are different nodes.
type Node struct {
	Kind NodeKind
	Name string
}

// String renders the node for error messages and exports: entities as their
// bare name, outcome channels bracketed.
func (n Node) String() string {
	if n.Kind == KindOutcome {
		return "[" + n.Name + "]"
	}
	return n.Name
}

type edgeKey struct {
	from int
	to   int
}

// Graph is the bipartite entity/outcome dataflow graph built from a parsed
// statement sequence. Nodes live in an index arena in first-seen document
// order; edges are recorded in per-index adjacency lists. Once built the
// graph is immutable.
type Graph struct {
	nodes    []Node
	index    map[Node]int
	outgoing [][]int
	incoming [][]int
	edges    map[edgeKey]struct{}
}

// BuildGraph converts statements into the deduplicated node and edge sets.
// Every statement reduces to one or two Entity->Outcome / Outcome->Entity
// hops. Building is purely additive: re-declaring an edge is a no-op.
func BuildGraph(stmts []flowparser.Statement) *Graph {
	g := &Graph{
		index: make(map[Node]int),
		edges: make(map[edgeKey]struct{}),
	}

	for _, stmt := range stmts {
		switch stmt.Kind {
		case flowparser.EntityToEntity:
			// A --[x]--> B is identical to A --> [x] plus [x] --> B, so the
			// two hops share one outcome node with every other statement
			// naming x.
			from := g.ensure(Node{Kind: KindEntity, Name: stmt.From})
			out := g.ensure(Node{Kind: KindOutcome, Name: stmt.Outcome})
			to := g.ensure(Node{Kind: KindEntity, Name: stmt.To})
			g.addEdge(from, out)
			g.addEdge(out, to)

		case flowparser.EntityToOutcome:
			from := g.ensure(Node{Kind: KindEntity, Name: stmt.From})
			out := g.ensure(Node{Kind: KindOutcome, Name: stmt.Outcome})
			g.addEdge(from, out)

		case flowparser.OutcomeToEntity:
			out := g.ensure(Node{Kind: KindOutcome, Name: stmt.Outcome})
			to := g.ensure(Node{Kind: KindEntity, Name: stmt.To})
			g.addEdge(out, to)
		}
	}

	return g
}

// ensure registers a node if it does not already exist and returns its index.
func (g *Graph) ensure(n Node) int {
	if idx, ok := g.index[n]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.index[n] = idx
	g.outgoing = append(g.outgoing, nil)
	g.incoming = append(g.incoming, nil)
	return idx
}

func (g *Graph) addEdge(from, to int) {
	key := edgeKey{from: from, to: to}
	if _, exists := g.edges[key]; exists {
		return
	}
	g.edges[key] = struct{}{}
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node at the given index.
func (g *Graph) Node(idx int) Node { return g.nodes[idx] }

// Lookup returns the index of the given node, if present.
func (g *Graph) Lookup(n Node) (int, bool) {
	idx, ok := g.index[n]
	return idx, ok
}

// Outgoing returns the destination indices of all edges out of idx, in
// declaration order.
func (g *Graph) Outgoing(idx int) []int { return g.outgoing[idx] }

// Incoming returns the source indices of all edges into idx, in declaration
// order.
func (g *Graph) Incoming(idx int) []int { return g.incoming[idx] }

// Entities returns the indices of all entity nodes in first-seen order.
func (g *Graph) Entities() []int {
	var out []int
	for idx, n := range g.nodes {
		if n.Kind == KindEntity {
			out = append(out, idx)
		}
	}
	return out
}
