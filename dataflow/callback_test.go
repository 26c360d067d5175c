package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackArity(t *testing.T) {
	n := Nullary(func() (Result, error) { return NoOutput(), nil })
	u := Unary(func(inputs []Delivery) (Result, error) { return NoOutput(), nil })

	assert.Equal(t, ArityNullary, n.Arity())
	assert.Equal(t, ArityUnary, u.Arity())
	assert.Equal(t, "nullary", ArityNullary.String())
	assert.Equal(t, "unary", ArityUnary.String())
}

func TestEmitSlicePullsInOrder(t *testing.T) {
	values := []Delivery{Pair("x", 1), Pair("x", 2), Pair("x", 3)}
	res := EmitSlice(values)
	require.Equal(t, ResultStream, res.Kind)

	var got []Delivery
	for {
		d, ok := res.Next()
		if !ok {
			break
		}
		got = append(got, d)
	}
	assert.Equal(t, values, got)

	// Exhausted streams stay exhausted.
	_, ok := res.Next()
	assert.False(t, ok)
}

func TestResultConstructors(t *testing.T) {
	assert.Equal(t, ResultNone, NoOutput().Kind)

	res := Emit(Pair("odd", 1), Pair("even", 2))
	assert.Equal(t, ResultValues, res.Kind)
	assert.Len(t, res.Values, 2)
}
