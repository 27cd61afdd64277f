// Package render turns a node tree into its webservice output representation.
package render

import (
	"bytes"
	"strconv"

	"github.com/mcncl/wsnode/internal/errors"
	"github.com/mcncl/wsnode/internal/node"
)

// Renderer renders a node tree into a response body.
type Renderer interface {
	ContentType() string
	RenderNode(root *node.Node) (string, error)
}

// JSON renders node trees as JSON text.
type JSON struct {
	// EscapeSlashes writes "/" as "\/", matching the legacy webservice output byte for byte.
	EscapeSlashes bool
}

// NewJSON creates a JSON renderer with legacy-compatible defaults.
func NewJSON() *JSON {
	return &JSON{EscapeSlashes: true}
}

func (r *JSON) ContentType() string {
	return "application/json"
}

// RenderNode renders root and encodes it. A list root is wrapped under its own name.
func (r *JSON) RenderNode(root *node.Node) (string, error) {
	if root == nil {
		return "null", nil
	}

	var out any
	if root.Kind() == node.KindList {
		wrapper := NewObject()
		wrapper.Set(root.Name(), ToValue(root))
		out = wrapper
	} else {
		out = ToValue(root)
	}

	data, err := marshal(out)
	if err != nil {
		return "", errors.NewRenderError("failed to encode node tree", err)
	}
	if r.EscapeSlashes {
		data = bytes.ReplaceAll(data, []byte("/"), []byte(`\/`))
	}
	return string(data), nil
}

// ToValue converts a node into plain values: scalars, []any and *Object.
// The tree is only read.
func ToValue(n *node.Node) any {
	switch n.Kind() {
	case node.KindValue:
		return valueWithAttributes(n)
	case node.KindLanguage:
		out := make([]any, 0, len(n.Children()))
		for _, child := range n.Children() {
			entry := NewObject()
			id, ok := child.Attributes().Get("id")
			if ok {
				entry.Set("id", id)
			} else {
				entry.Set("id", nil)
			}
			entry.Set("value", child.Value())
			out = append(out, entry)
		}
		return out
	case node.KindList:
		out := NewObject()
		for i, child := range n.Children() {
			out.Set(strconv.Itoa(i), ToValue(child))
		}
		injectAttributes(out, n.Attributes())
		return collapse(out)
	case node.KindParent:
		out := NewObject()
		for _, child := range n.Children() {
			out.Set(child.Name(), ToValue(child))
		}
		injectAttributes(out, n.Attributes())
		return collapse(out)
	default:
		return nil
	}
}

// valueWithAttributes returns the scalar, or the attributes when there is no
// value to show but attributes exist.
func valueWithAttributes(n *node.Node) any {
	if !node.IsEmpty(n.Value()) || n.Attributes().Len() == 0 {
		return n.Value()
	}
	out := NewObject()
	injectAttributes(out, n.Attributes())
	return collapse(out)
}

// injectAttributes merges attributes into out. Attributes never override
// existing keys; xlink:href is written as href.
func injectAttributes(out *Object, attrs *node.Attributes) {
	attrs.Each(func(name, value string) {
		if name == "xlink:href" {
			name = "href"
		}
		if out.Has(name) {
			return
		}
		out.Set(name, value)
	})
}

// collapse turns an object keyed "0".."n-1" in order, including the empty
// object, into an array. Legacy consumers see such mappings as arrays.
func collapse(o *Object) any {
	for i, k := range o.Keys() {
		if k != strconv.Itoa(i) {
			return o
		}
	}
	out := make([]any, o.Len())
	for i, k := range o.Keys() {
		out[i], _ = o.Get(k)
	}
	return out
}
