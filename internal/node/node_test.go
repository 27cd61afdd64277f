package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactories_EmptyChildren(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		kind Kind
	}{
		{"value", newValue("id", "1"), KindValue},
		{"language", newLanguage("name"), KindLanguage},
		{"parent", Parent("customer", nil), KindParent},
		{"list", List("customers", nil), KindList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.node.Kind())
			assert.Empty(t, tt.node.Children())
			assert.Equal(t, 0, tt.node.Attributes().Len())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "value", KindValue.String())
	assert.Equal(t, "language", KindLanguage.String())
	assert.Equal(t, "parent", KindParent.String())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestSetters_Chain(t *testing.T) {
	child := newValue("a", "1")
	n := newValue("", nil).
		SetName("root").
		SetKind(KindParent).
		SetAttributes(NewAttributes(Attribute{Name: "x", Value: "y"})).
		SetChildren([]*Node{child})

	assert.Equal(t, "root", n.Name())
	assert.Equal(t, KindParent, n.Kind())
	v, ok := n.Attributes().Get("x")
	assert.True(t, ok)
	assert.Equal(t, "y", v)
	require.Len(t, n.Children(), 1)
	assert.Same(t, child, n.Children()[0])
}

func TestContainers_DoNotCarryScalars(t *testing.T) {
	n := newValue("name", "kept")
	assert.Equal(t, "kept", n.Value())

	n.SetKind(KindLanguage)
	assert.Nil(t, n.Value())

	n.SetValue("ignored")
	assert.Nil(t, n.Value())

	p := Parent("p", nil).SetValue("ignored")
	assert.Nil(t, p.Value())
}

func TestAddNodes_ReturnChild(t *testing.T) {
	root := Parent("root", nil)

	v := root.AddValueNode("id", 4)
	l := root.AddLanguageNode("name")
	p := root.AddParentNode("associations", NewAttributes(Attribute{Name: "nodeType", Value: "assoc"}))
	li := root.AddListNode("items", nil)

	require.Len(t, root.Children(), 4)
	assert.Same(t, v, root.Children()[0])
	assert.Same(t, l, root.Children()[1])
	assert.Same(t, p, root.Children()[2])
	assert.Same(t, li, root.Children()[3])
	assert.Equal(t, KindLanguage, l.Kind())
	assert.True(t, p.Attributes().Has("nodeType"))

	same := root.AddChild(newValue("extra", nil)).AddAttribute("k", "v")
	assert.Same(t, root, same)
	assert.Len(t, root.Children(), 5)
}

func TestAttributes_OverwriteKeepsPosition(t *testing.T) {
	a := NewAttributes()
	a.Set("first", "1")
	a.Set("second", "2")
	a.Set("first", "one")

	assert.Equal(t, []string{"first", "second"}, a.Keys())
	v, _ := a.Get("first")
	assert.Equal(t, "one", v)

	c := a.Clone()
	c.Set("third", "3")
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 3, c.Len())

	var nilAttrs *Attributes
	assert.Equal(t, 0, nilAttrs.Len())
	assert.Nil(t, nilAttrs.Keys())
	assert.False(t, nilAttrs.Has("x"))
}
