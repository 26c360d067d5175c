// Package dataflow builds, validates, and executes declarative dataflow
// graphs parsed by flowparser.
package dataflow

// Arity is a callback's declared input shape. It replaces signature
// introspection: the scheduler consults the declared arity rather than
// reflecting over the function.
type Arity int

const (
	// ArityNullary callbacks are invoked with no input.
	ArityNullary Arity = iota
	// ArityUnary callbacks receive the entity's full accumulated input
	// buffer, possibly empty.
	ArityUnary
)

func (a Arity) String() string {
	switch a {
	case ArityNullary:
		return "nullary"
	case ArityUnary:
		return "unary"
	default:
		return "unknown"
	}
}

// Delivery is one (outcome name, value) pair, as produced by a callback and
// as accumulated in a downstream entity's input buffer.
type Delivery struct {
	Outcome string
	Value   any
}

// Pair constructs a Delivery.
func Pair(outcome string, value any) Delivery {
	return Delivery{Outcome: outcome, Value: value}
}

// ResultKind discriminates the Result tagged union.
type ResultKind int

const (
	// ResultNone means the callback produced nothing.
	ResultNone ResultKind = iota
	// ResultValues means the callback returned a materialized sequence.
	ResultValues
	// ResultStream means the callback returned a lazily-produced sequence,
	// pulled to exhaustion before the next entity runs.
	ResultStream
)

// Result is what a callback invocation returns. Kind determines which field
// is populated.
type Result struct {
	Kind   ResultKind
	Values []Delivery
	Next   func() (Delivery, bool) // pull, populated when Kind == ResultStream
}

// NoOutput creates a result carrying nothing.
func NoOutput() Result {
	return Result{Kind: ResultNone}
}

// Emit creates a result carrying an already-materialized sequence of pairs.
func Emit(values ...Delivery) Result {
	return Result{Kind: ResultValues, Values: values}
}

// EmitStream creates a lazily-produced result. next is called repeatedly
// until it reports false; the scheduler drains it synchronously.
func EmitStream(next func() (Delivery, bool)) Result {
	return Result{Kind: ResultStream, Next: next}
}

// EmitSlice creates a stream result over a slice. Useful for callbacks that
// already hold their output but want pull semantics exercised.
func EmitSlice(values []Delivery) Result {
	i := 0
	return EmitStream(func() (Delivery, bool) {
		if i >= len(values) {
			return Delivery{}, false
		}
		d := values[i]
		i++
		return d, true
	})
}

// Callback is a registered unit of user logic with an explicit capability
// descriptor. Construct with Nullary or Unary.
type Callback struct {
	arity   Arity
	nullary func() (Result, error)
	unary   func(inputs []Delivery) (Result, error)
}

// Nullary registers a callback invoked with no input.
func Nullary(fn func() (Result, error)) *Callback {
	return &Callback{arity: ArityNullary, nullary: fn}
}

// Unary registers a callback invoked with the entity's accumulated input
// buffer.
func Unary(fn func(inputs []Delivery) (Result, error)) *Callback {
	return &Callback{arity: ArityUnary, unary: fn}
}

// Arity returns the callback's declared input arity.
func (c *Callback) Arity() Arity { return c.arity }

// invoke runs the callback with the inputs appropriate to its arity.
func (c *Callback) invoke(inputs []Delivery) (Result, error) {
	if c.arity == ArityNullary {
		return c.nullary()
	}
	return c.unary(inputs)
}
