package dataflow

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyRun is returned by Run when the handler's single pass has
// already been executed. A handler instance drives exactly one run.
var ErrAlreadyRun = errors.New("dataflow handler has already run")

// CyclicGraphError reports a directed cycle in the built graph. Cycle is a
// deterministic witness path in edge direction, opening and closing on the
// same node (outcome channels rendered bracketed).
type CyclicGraphError struct {
	Cycle []string
}

func (e *CyclicGraphError) Error() string {
	if len(e.Cycle) == 0 {
		return "dataflow graph contains a cycle"
	}
	return fmt.Sprintf("dataflow graph contains a cycle: %s", strings.Join(e.Cycle, " -> "))
}

// MissingCallbackError reports an entity declared in the document with no
// registered callback. Raised at construction, before any execution.
type MissingCallbackError struct {
	Entity string
}

func (e *MissingCallbackError) Error() string {
	return fmt.Sprintf("no callback registered for entity %q", e.Entity)
}

// CallbackExecutionError wraps a failure raised by a callback during
// invocation. The remaining schedule is aborted; already-delivered outcomes
// are not rolled back.
type CallbackExecutionError struct {
	Entity string
	Err    error
}

func (e *CallbackExecutionError) Error() string {
	return fmt.Sprintf("entity %q failed: %v", e.Entity, e.Err)
}

func (e *CallbackExecutionError) Unwrap() error { return e.Err }

// UnroutedOutcomeError reports a callback emitting an outcome name its
// entity never declared in the document. Only raised under strict routing;
// the default behavior is to drop the pair silently.
type UnroutedOutcomeError struct {
	Entity  string
	Outcome string
}

func (e *UnroutedOutcomeError) Error() string {
	return fmt.Sprintf("entity %q emitted undeclared outcome %q", e.Entity, e.Outcome)
}
