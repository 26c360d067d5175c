package dataflow

import "container/heap"

// Validate checks the single global consistency invariant: the graph must be
// acyclic. Outcome nodes participate like any other node, since a path
// Entity -> Outcome -> Entity closes a cycle just as a direct edge would.
//
// Detection is a depth-first traversal tracking recursion-stack membership;
// a back-edge into a node still on the stack is a cycle. Returns a
// *CyclicGraphError carrying a deterministic witness path, or nil.
func (g *Graph) Validate() error {
	const (
		white = 0 // unvisited
		gray  = 1 // on the recursion stack
		black = 2 // fully explored
	)

	color := make([]int, len(g.nodes))
	parent := make([]int, len(g.nodes))
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int

	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range g.outgoing[u] {
			if color[v] == white {
				parent[v] = u
				if dfs(v) {
					return true
				}
				continue
			}
			if color[v] == gray {
				// Back-edge u -> v. Walk parents to reconstruct v ... u -> v.
				cycle = append(cycle, v)
				for cur := u; cur != -1 && cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := range g.nodes {
		if color[i] != white {
			continue
		}
		if dfs(i) {
			break
		}
	}

	if len(cycle) == 0 {
		return nil
	}

	// The parent walk produced the path in reverse; flip it so the witness
	// reads in edge direction, opening and closing on the same node.
	names := make([]string, 0, len(cycle))
	for i := len(cycle) - 1; i >= 0; i-- {
		names = append(names, g.nodes[cycle[i]].String())
	}
	return &CyclicGraphError{Cycle: names}
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopoOrder returns a deterministic topological ordering of all node indices
// via Kahn's algorithm. The ready set is a min-heap over node indices, and
// indices are assigned in first-seen order, so mutually unordered nodes tie-
// break by first appearance in the source document. Callers must Validate
// first: on a cyclic graph the returned order is incomplete.
func (g *Graph) TopoOrder() []int {
	indeg := make([]int, len(g.nodes))
	for idx := range g.nodes {
		indeg[idx] = len(g.incoming[idx])
	}

	ready := &intMinHeap{}
	heap.Init(ready)
	for idx := range indeg {
		if indeg[idx] == 0 {
			heap.Push(ready, idx)
		}
	}

	order := make([]int, 0, len(g.nodes))
	for ready.Len() > 0 {
		u := heap.Pop(ready).(int)
		order = append(order, u)
		for _, v := range g.outgoing[u] {
			indeg[v]--
			if indeg[v] == 0 {
				heap.Push(ready, v)
			}
		}
	}
	return order
}
