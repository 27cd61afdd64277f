package models

import (
	"fmt"

	"github.com/mcncl/wsnode/internal/schema"
)

// JSONValue is a generic type to represent any decoded document value.
// This can be a string, number, boolean, null, object, or array.
type JSONValue = any

// JSONObject represents a decoded object.
type JSONObject = map[string]JSONValue

// JSONArray represents a decoded array.
type JSONArray = []JSONValue

// Document is a resource definition together with the records to display.
type Document struct {
	Definition *schema.Definition `json:"definition" yaml:"definition"`
	Records    []JSONObject       `json:"records" yaml:"records"`
}

// Record returns the record whose primary key renders as id.
func (d *Document) Record(id string) (JSONObject, bool) {
	for _, r := range d.Records {
		if v, ok := r[d.Definition.Primary]; ok && v != nil && fmt.Sprint(v) == id {
			return r, true
		}
	}
	return nil, false
}
