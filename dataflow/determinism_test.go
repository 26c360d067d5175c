package dataflow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// genDocument draws a random acyclic declaration document. Edges only go
// from lower-numbered to higher-numbered entities and every explicit
// outcome name is unique to its statement, so no drawn document can cycle.
func genDocument(rt *rapid.T) (string, []string) {
	n := rapid.IntRange(2, 8).Draw(rt, "entities")

	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("e%d", i)
	}

	var b strings.Builder
	stmtCount := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !rapid.Bool().Draw(rt, fmt.Sprintf("edge_%d_%d", i, j)) {
				continue
			}
			if rapid.Bool().Draw(rt, fmt.Sprintf("explicit_%d_%d", i, j)) {
				fmt.Fprintf(&b, "%s --[o%d_%d]--> %s\n", names[i], i, j, names[j])
			} else {
				fmt.Fprintf(&b, "%s --> %s\n", names[i], names[j])
			}
			stmtCount++
		}
	}
	if stmtCount == 0 {
		// Guarantee a non-empty document.
		fmt.Fprintf(&b, "%s --> %s\n", names[0], names[1])
	}
	return b.String(), names
}

// newEchoRegistry registers a unary callback per entity that re-emits every
// received value, plus one fresh value, under every outcome name the
// document might route for it. Emission is a pure function of the inputs.
func newEchoRegistry(names []string) *Registry {
	reg := NewRegistry()
	for i, name := range names {
		i, name := i, name
		reg.Register(name, Unary(func(inputs []Delivery) (Result, error) {
			var out []Delivery
			out = append(out, Pair(name, fmt.Sprintf("%s:seed", name)))
			for j := range names {
				out = append(out, Pair(fmt.Sprintf("o%d_%d", i, j), fmt.Sprintf("%s:%d", name, len(inputs))))
			}
			for _, d := range inputs {
				out = append(out, Pair(name, d.Value))
			}
			return Emit(out...), nil
		}))
	}
	return reg
}

func TestPropertyRunsAreDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		doc, names := genDocument(rt)

		runOnce := func() ([]string, map[string][]Delivery) {
			h, err := New([]byte(doc), newEchoRegistry(names), nil)
			require.NoError(t, err)
			require.NoError(t, h.Run())

			buffers := make(map[string][]Delivery, len(names))
			for _, name := range names {
				buffers[name] = h.Deliveries(name)
			}
			return h.ExecutionOrder(), buffers
		}

		order1, buffers1 := runOnce()
		order2, buffers2 := runOnce()

		require.Equal(t, order1, order2, "doc:\n%s", doc)
		require.Equal(t, buffers1, buffers2, "doc:\n%s", doc)
	})
}

func TestPropertyTopologicalSoundness(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		doc, names := genDocument(rt)

		h, err := New([]byte(doc), newEchoRegistry(names), nil)
		require.NoError(t, err)

		pos := make(map[string]int)
		for i, name := range h.ExecutionOrder() {
			pos[name] = i
		}

		// Generated edges always point from lower to higher entity number,
		// so the schedule must respect numeric order for connected pairs.
		g := h.Graph()
		for _, e := range g.Entities() {
			for _, o := range g.Outgoing(e) {
				for _, c := range g.Outgoing(o) {
					from := g.Node(e).Name
					to := g.Node(c).Name
					require.Less(t, pos[from], pos[to], "doc:\n%s", doc)
				}
			}
		}
	})
}
