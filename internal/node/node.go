// Package node holds the tree a webservice response is built into before it is rendered.
//
// Callers build the tree top-down: parent and list containers, value leaves and
// language nodes carrying one translated value per locale. A node belongs to exactly
// one parent and the tree is treated as read-only once rendering starts.
package node

// Node is one element of the response tree.
type Node struct {
	kind       Kind
	name       string
	value      any
	attributes *Attributes
	children   []*Node
}

func newNode(kind Kind, name string, value any, attrs *Attributes) *Node {
	if attrs == nil {
		attrs = &Attributes{}
	}
	return &Node{
		kind:       kind,
		name:       name,
		value:      value,
		attributes: attrs,
	}
}

// newValue creates a leaf node.
func newValue(name string, value any) *Node {
	return newNode(KindValue, name, value, nil)
}

// newLanguage creates a named node whose children are the per-locale values.
func newLanguage(name string) *Node {
	return newNode(KindLanguage, name, nil, nil)
}

// Parent creates a container whose children render as a mapping keyed by child name.
func Parent(name string, attrs *Attributes) *Node {
	return newNode(KindParent, name, nil, attrs)
}

// List creates a container whose children render as a positional sequence.
func List(name string, attrs *Attributes) *Node {
	return newNode(KindList, name, nil, attrs)
}

func (n *Node) Kind() Kind {
	return n.kind
}

func (n *Node) Name() string {
	return n.name
}

// Value returns the scalar carried by a value node, nil when absent.
func (n *Node) Value() any {
	return n.value
}

// Attributes returns the node's attribute mapping; never nil.
func (n *Node) Attributes() *Attributes {
	if n.attributes == nil {
		n.attributes = &Attributes{}
	}
	return n.attributes
}

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// SetKind changes the node kind. Container kinds do not carry a scalar, so the
// value is dropped when switching away from KindValue.
func (n *Node) SetKind(kind Kind) *Node {
	n.kind = kind
	if kind.IsContainer() {
		n.value = nil
	}
	return n
}

func (n *Node) SetName(name string) *Node {
	n.name = name
	return n
}

// SetValue sets the scalar. It is a no-op on container nodes.
func (n *Node) SetValue(value any) *Node {
	if n.kind.IsContainer() {
		return n
	}
	n.value = value
	return n
}

// SetAttributes replaces the attribute mapping. A nil mapping clears it.
func (n *Node) SetAttributes(attrs *Attributes) *Node {
	if attrs == nil {
		attrs = &Attributes{}
	}
	n.attributes = attrs
	return n
}

func (n *Node) SetChildren(children []*Node) *Node {
	n.children = children
	return n
}

// AddAttribute inserts or overwrites one attribute.
func (n *Node) AddAttribute(name, value string) *Node {
	n.Attributes().Set(name, value)
	return n
}

// AddChild appends an already constructed node and returns the receiver.
func (n *Node) AddChild(child *Node) *Node {
	n.children = append(n.children, child)
	return n
}

// AddValueNode appends a new value leaf and returns it.
func (n *Node) AddValueNode(name string, value any) *Node {
	child := newValue(name, value)
	n.children = append(n.children, child)
	return child
}

// AddLanguageNode appends a new language node and returns it.
func (n *Node) AddLanguageNode(name string) *Node {
	child := newLanguage(name)
	n.children = append(n.children, child)
	return child
}

// AddParentNode appends a new parent container and returns it.
func (n *Node) AddParentNode(name string, attrs *Attributes) *Node {
	child := Parent(name, attrs)
	n.children = append(n.children, child)
	return child
}

// AddListNode appends a new list container and returns it.
func (n *Node) AddListNode(name string, attrs *Attributes) *Node {
	child := List(name, attrs)
	n.children = append(n.children, child)
	return child
}
