package interp

// Binding is a variable and its current value.
type Binding struct {
	Name  string
	Value Value
}

// Env holds the runtime values of one run. Names keep the order in which
// they were first bound.
type Env struct {
	order  []string
	values map[string]Value
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{values: make(map[string]Value)}
}

// Get returns the value bound to name.
func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Set binds name to v, replacing any previous value.
func (e *Env) Set(name string, v Value) {
	if _, ok := e.values[name]; !ok {
		e.order = append(e.order, name)
	}
	e.values[name] = v
}

// Len returns the number of bound names.
func (e *Env) Len() int {
	return len(e.order)
}

// Bindings returns every binding in first-binding order.
func (e *Env) Bindings() []Binding {
	out := make([]Binding, len(e.order))
	for i, name := range e.order {
		out[i] = Binding{Name: name, Value: e.values[name]}
	}
	return out
}

// Clone returns an independent copy of the environment.
func (e *Env) Clone() *Env {
	c := &Env{
		order:  make([]string, len(e.order)),
		values: make(map[string]Value, len(e.values)),
	}
	copy(c.order, e.order)
	for k, v := range e.values {
		c.values[k] = v
	}
	return c
}
