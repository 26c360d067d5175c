package dataflow

import (
	"time"

	"github.com/tech-blogging/sdataflow/flowparser"
)

// Config configures a dataflow handler. All fields are optional.
type Config struct {
	// Events receives run/entity/routing events. If nil, a fresh emitter
	// with no listeners is used.
	Events *EventEmitter

	// StrictRouting makes a callback emitting an outcome name its entity
	// never declared fail the run with an UnroutedOutcomeError. The default
	// is to drop such pairs silently.
	StrictRouting bool
}

// Handler owns one declared dataflow: the validated graph, the execution
// order, the registered callbacks, and the per-entity input buffers. It is
// built once and drives a single Run; it is not safe for concurrent use and
// not designed for more than one run.
type Handler struct {
	graph    *Graph
	registry *Registry

	// order holds entity node indices in execution order. routes maps, per
	// producing entity index, an outcome name to its destination entity
	// indices. buffers is indexed by node and populated for entities only.
	order   []int
	routes  []map[string][]int
	buffers [][]Delivery

	events *EventEmitter
	strict bool
	ran    bool
}

// New builds a handler from declaration source and a callback registry.
// Construction performs the full lex -> parse -> build -> validate -> sort
// pipeline and verifies that every declared entity has a registered
// callback; any failure surfaces here, before any callback runs.
func New(src []byte, registry *Registry, config *Config) (*Handler, error) {
	if config == nil {
		config = &Config{}
	}
	if registry == nil {
		registry = NewRegistry()
	}

	stmts, err := flowparser.Parse(src)
	if err != nil {
		return nil, err
	}

	graph := BuildGraph(stmts)
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	// Entity order: the full topological order with outcome channels elided.
	// Their ordering constraints still apply transitively.
	var order []int
	for _, idx := range graph.TopoOrder() {
		if graph.Node(idx).Kind == KindEntity {
			order = append(order, idx)
		}
	}

	for _, idx := range order {
		name := graph.Node(idx).Name
		if _, ok := registry.Lookup(name); !ok {
			return nil, &MissingCallbackError{Entity: name}
		}
	}

	// Routing tables: a pair (name, value) emitted by entity e follows e's
	// declared edge to the outcome channel, then the channel's edges to its
	// consumers. A name with no declared channel for e has no table entry,
	// which is what distinguishes "undeclared" from "declared but
	// consumer-less".
	routes := make([]map[string][]int, graph.NodeCount())
	for _, e := range order {
		routes[e] = make(map[string][]int)
		for _, o := range graph.Outgoing(e) {
			routes[e][graph.Node(o).Name] = graph.Outgoing(o)
		}
	}

	events := config.Events
	if events == nil {
		events = NewEventEmitter()
	}

	return &Handler{
		graph:    graph,
		registry: registry,
		order:    order,
		routes:   routes,
		buffers:  make([][]Delivery, graph.NodeCount()),
		events:   events,
		strict:   config.StrictRouting,
	}, nil
}

// Run executes the schedule: every entity exactly once, in topological
// order, each invocation seeing its complete and final input buffer. Run
// blocks until the full schedule completes or the first failure aborts it.
// A second call returns ErrAlreadyRun.
func (h *Handler) Run() error {
	if h.ran {
		return ErrAlreadyRun
	}
	h.ran = true

	start := time.Now()
	h.events.Emit(RunStartedEvent(len(h.order)))

	for i, idx := range h.order {
		name := h.graph.Node(idx).Name
		h.events.Emit(EntityStartedEvent(name, i))
		entityStart := time.Now()

		cb, _ := h.registry.Lookup(name) // presence verified at construction
		result, err := cb.invoke(h.buffers[idx])
		if err != nil {
			wrapped := &CallbackExecutionError{Entity: name, Err: err}
			h.events.Emit(RunFailedEvent(wrapped.Error(), time.Since(start)))
			return wrapped
		}

		produced, err := h.route(idx, name, result)
		if err != nil {
			h.events.Emit(RunFailedEvent(err.Error(), time.Since(start)))
			return err
		}

		h.events.Emit(EntityCompletedEvent(name, i, produced, time.Since(entityStart)))
	}

	h.events.Emit(RunCompletedEvent(time.Since(start), len(h.order)))
	return nil
}

// route delivers everything a result carries. Streams are pulled to
// exhaustion synchronously, so no two entities' production ever overlaps.
func (h *Handler) route(idx int, name string, result Result) (int, error) {
	produced := 0
	switch result.Kind {
	case ResultNone:
		return 0, nil

	case ResultValues:
		for _, d := range result.Values {
			if err := h.deliver(idx, name, d); err != nil {
				return produced, err
			}
			produced++
		}
		return produced, nil

	case ResultStream:
		for {
			d, ok := result.Next()
			if !ok {
				return produced, nil
			}
			if err := h.deliver(idx, name, d); err != nil {
				return produced, err
			}
			produced++
		}

	default:
		return 0, nil
	}
}

// deliver appends one pair to the input buffer of every declared consumer.
func (h *Handler) deliver(idx int, name string, d Delivery) error {
	dests, declared := h.routes[idx][d.Outcome]
	if !declared {
		if h.strict {
			return &UnroutedOutcomeError{Entity: name, Outcome: d.Outcome}
		}
		h.events.Emit(OutcomeDroppedEvent(name, d.Outcome))
		return nil
	}

	names := make([]string, 0, len(dests))
	for _, t := range dests {
		h.buffers[t] = append(h.buffers[t], d)
		names = append(names, h.graph.Node(t).Name)
	}
	h.events.Emit(OutcomeRoutedEvent(name, d.Outcome, names))
	return nil
}

// Graph returns the validated dataflow graph.
func (h *Handler) Graph() *Graph { return h.graph }

// ExecutionOrder returns the entity names in the order they run.
func (h *Handler) ExecutionOrder() []string {
	out := make([]string, 0, len(h.order))
	for _, idx := range h.order {
		out = append(out, h.graph.Node(idx).Name)
	}
	return out
}

// Deliveries returns the accumulated input buffer of the named entity. The
// buffer is final once the entity has been invoked; it is retained after the
// run for inspection.
func (h *Handler) Deliveries(entity string) []Delivery {
	idx, ok := h.graph.Lookup(Node{Kind: KindEntity, Name: entity})
	if !ok {
		return nil
	}
	return h.buffers[idx]
}
