package node

// Attribute is a single name/value metadata entry on a node.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is a string mapping that remembers insertion order.
// Overwriting an existing name keeps its original position.
type Attributes struct {
	entries []Attribute
	index   map[string]int
}

// NewAttributes builds an ordered mapping from name/value pairs.
func NewAttributes(pairs ...Attribute) *Attributes {
	a := &Attributes{}
	for _, p := range pairs {
		a.Set(p.Name, p.Value)
	}
	return a
}

// Set inserts or overwrites one attribute.
func (a *Attributes) Set(name, value string) {
	if a.index == nil {
		a.index = make(map[string]int)
	}
	if i, ok := a.index[name]; ok {
		a.entries[i].Value = value
		return
	}
	a.index[name] = len(a.entries)
	a.entries = append(a.entries, Attribute{Name: name, Value: value})
}

// Get returns the attribute value and whether it is present.
func (a *Attributes) Get(name string) (string, bool) {
	if a == nil || a.index == nil {
		return "", false
	}
	i, ok := a.index[name]
	if !ok {
		return "", false
	}
	return a.entries[i].Value, true
}

// Has reports whether name is present.
func (a *Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Len returns the number of attributes. A nil mapping is empty.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// Keys returns attribute names in insertion order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, len(a.entries))
	for i, e := range a.entries {
		keys[i] = e.Name
	}
	return keys
}

// Each calls fn for every attribute in insertion order.
func (a *Attributes) Each(fn func(name, value string)) {
	if a == nil {
		return
	}
	for _, e := range a.entries {
		fn(e.Name, e.Value)
	}
}

// Clone returns an independent copy.
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{}
	a.Each(c.Set)
	return c
}
