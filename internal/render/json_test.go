package render

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/wsnode/internal/node"
)

func render(t *testing.T, root *node.Node) string {
	t.Helper()
	out, err := NewJSON().RenderNode(root)
	require.NoError(t, err)
	return out
}

// decoded renders root and decodes the result back into generic values.
func decoded(t *testing.T, root *node.Node) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(render(t, root)), &v))
	return v
}

// valueNode returns a value node attached to a throwaway record.
func valueNode(name string, value any) *node.Node {
	return node.Parent("record", nil).AddValueNode(name, value)
}

func TestJSON_ContentType(t *testing.T) {
	assert.Equal(t, "application/json", NewJSON().ContentType())
}

func TestValue_ScalarWinsOverAttributes(t *testing.T) {
	n := valueNode("id", "42").AddAttribute("xlink:href", "http://shop.test/api/customers/42")
	assert.Equal(t, "42", ToValue(n))
}

func TestValue_AttributesWhenNoValue(t *testing.T) {
	n := valueNode("id", nil).
		AddAttribute("xlink:href", "http://shop.test/api/customers/42").
		AddAttribute("notFilterable", "true")

	obj, ok := ToValue(n).(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"href", "notFilterable"}, obj.Keys())
}

func TestValue_NoAttributesReturnsRawValue(t *testing.T) {
	assert.Nil(t, ToValue(valueNode("x", nil)))
	assert.Equal(t, "", ToValue(valueNode("x", "")))
}

func TestValue_ZeroStringCountsAsEmpty(t *testing.T) {
	n := valueNode("active", "0").AddAttribute("format", "isBool")
	obj, ok := ToValue(n).(*Object)
	require.True(t, ok)
	v, _ := obj.Get("format")
	assert.Equal(t, "isBool", v)
}

func TestLanguage_RendersIDValuePairs(t *testing.T) {
	root := node.Parent("product", nil)
	field := node.Descriptor{"sqlId": "name", "i18n": true, "value": map[string]any{"en": "Hello", "fr": "Bonjour"}}
	root.AddField(field, node.FieldContext{Languages: []string{"en", "fr"}})

	assert.Equal(t, `{"name":[{"id":"en","value":"Hello"},{"id":"fr","value":"Bonjour"}]}`, render(t, root))
}

func TestList_AttributesDoNotDisplacePositions(t *testing.T) {
	list := node.List("customers", node.NewAttributes(node.Attribute{Name: "foo", Value: "bar"}))
	list.AddValueNode("", "A")
	list.AddValueNode("", "B")

	want := map[string]any{
		"customers": map[string]any{"0": "A", "1": "B", "foo": "bar"},
	}
	if diff := cmp.Diff(want, decoded(t, list)); diff != "" {
		t.Errorf("rendered list mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, `{"customers":{"0":"A","1":"B","foo":"bar"}}`, render(t, list))
}

func TestList_WithoutAttributesIsArray(t *testing.T) {
	list := node.List("ids", nil)
	list.AddValueNode("", json.Number("1"))
	list.AddValueNode("", json.Number("2"))

	assert.Equal(t, `{"ids":[1,2]}`, render(t, list))
}

func TestParent_AttributeDoesNotOverwriteChild(t *testing.T) {
	p := node.Parent("root", node.NewAttributes(
		node.Attribute{Name: "a", Value: "attr"},
		node.Attribute{Name: "xlink:href", Value: "http://x/y"},
	))
	p.AddValueNode("a", "child-a")
	p.AddValueNode("b", "child-b")

	assert.Equal(t, `{"a":"child-a","b":"child-b","href":"http:\/\/x\/y"}`, render(t, p))
}

func TestParent_EmptyRendersAsArray(t *testing.T) {
	assert.Equal(t, `[]`, render(t, node.Parent("empty", nil)))
}

func TestParent_DuplicateNameKeepsFirstPosition(t *testing.T) {
	p := node.Parent("", nil)
	p.AddValueNode("a", "1")
	p.AddValueNode("b", "2")
	p.AddValueNode("a", "3")

	assert.Equal(t, `{"a":"3","b":"2"}`, render(t, p))
}

func TestRender_UnicodeAndSlashes(t *testing.T) {
	p := node.Parent("", nil)
	p.AddValueNode("name", "Crème brûlée <b>&</b>")
	p.AddValueNode("path", "a/b")

	assert.Equal(t, `{"name":"Crème brûlée <b>&<\/b>","path":"a\/b"}`, render(t, p))

	plain := &JSON{EscapeSlashes: false}
	out, err := plain.RenderNode(p)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Crème brûlée <b>&</b>","path":"a/b"}`, out)
}

func TestRender_ShapeMirrorsTree(t *testing.T) {
	root := node.Parent("", nil)
	root.AddValueNode("id", "1")
	inner := root.AddParentNode("address", nil)
	inner.AddValueNode("city", "Paris")
	tags := root.AddListNode("tags", nil)
	tags.AddValueNode("", "new")
	nested := tags.AddParentNode("", nil)
	nested.AddValueNode("k", "v")

	want := map[string]any{
		"id":      "1",
		"address": map[string]any{"city": "Paris"},
		"tags":    []any{"new", map[string]any{"k": "v"}},
	}
	if diff := cmp.Diff(want, decoded(t, root)); diff != "" {
		t.Errorf("rendered tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DoesNotMutateTree(t *testing.T) {
	p := node.Parent("", node.NewAttributes(node.Attribute{Name: "xlink:href", Value: "u"}))
	p.AddValueNode("a", nil).AddAttribute("xlink:href", "v")

	first := render(t, p)
	second := render(t, p)
	assert.Equal(t, first, second)
	assert.True(t, p.Attributes().Has("xlink:href"))
	assert.True(t, p.Children()[0].Attributes().Has("xlink:href"))
}

func TestRender_NilRoot(t *testing.T) {
	assert.Equal(t, "null", render(t, nil))
}

func TestObject_MarshalKeepsOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", 1)
	o.Set("a", []any{NewObject()})
	o.Set("z", 2)

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"z":2,"a":[{}]}`, string(data))
}
