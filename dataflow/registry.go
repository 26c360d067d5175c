package dataflow

// Registry maps entity names to callbacks. It is passed explicitly to New
// and held as that handler's private state; there is no process-wide
// registry.
type Registry struct {
	callbacks map[string]*Callback
}

// NewRegistry creates an empty callback registry.
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[string]*Callback)}
}

// Register adds or replaces the callback for the given entity name.
func (r *Registry) Register(entity string, cb *Callback) {
	r.callbacks[entity] = cb
}

// Lookup returns the callback registered for the given entity name.
func (r *Registry) Lookup(entity string) (*Callback, bool) {
	cb, ok := r.callbacks[entity]
	return cb, ok
}

// Len returns the number of registered callbacks.
func (r *Registry) Len() int {
	return len(r.callbacks)
}
