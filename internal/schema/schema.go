// Package schema provides webservice resource definitions and turns records into field descriptors
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/wsnode/internal/node"
)

// IDField is the name every resource exposes its primary key under.
const IDField = "id"

// StringList handles fields which can be a string or an array of strings
type StringList []string

// UnmarshalJSON handles both string and array forms
func (sl *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*sl = StringList{s}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sl = arr
		return nil
	}

	return fmt.Errorf("value must be string or array of strings")
}

// UnmarshalYAML handles both string and sequence forms
func (sl *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*sl = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := value.Decode(&arr); err != nil {
			return err
		}
		*sl = arr
		return nil
	default:
		return fmt.Errorf("value must be string or array of strings")
	}
}

// XlinkResource names the resource a field links to, optionally through a sub resource
type XlinkResource struct {
	ResourceName    string `json:"resourceName" yaml:"resourceName"`
	SubResourceName string `json:"subResourceName,omitempty" yaml:"subResourceName,omitempty"`
	// Simple is set when the link was given as a bare resource name
	Simple bool `json:"-" yaml:"-"`
}

type xlinkResourceFields XlinkResource

// UnmarshalJSON handles both string and object forms
func (x *XlinkResource) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*x = XlinkResource{ResourceName: s, Simple: true}
		return nil
	}

	var obj xlinkResourceFields
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("xlink_resource must be a resource name or an object: %w", err)
	}
	*x = XlinkResource(obj)
	return nil
}

// UnmarshalYAML handles both string and mapping forms
func (x *XlinkResource) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*x = XlinkResource{ResourceName: value.Value, Simple: true}
		return nil
	}

	var obj xlinkResourceFields
	if err := value.Decode(&obj); err != nil {
		return fmt.Errorf("xlink_resource must be a resource name or a mapping: %w", err)
	}
	*x = XlinkResource(obj)
	return nil
}

// descriptorValue returns the form a field descriptor expects
func (x *XlinkResource) descriptorValue() any {
	if x.Simple {
		return x.ResourceName
	}
	out := map[string]any{node.KeyResourceName: x.ResourceName}
	if x.SubResourceName != "" {
		out[node.KeySubResourceName] = x.SubResourceName
	}
	return out
}

// Field describes one column of a resource
type Field struct {
	Name          string         `json:"name" yaml:"name"`
	Type          string         `json:"type,omitempty" yaml:"type,omitempty"`
	Validate      StringList     `json:"validate,omitempty" yaml:"validate,omitempty"`
	Required      bool           `json:"required,omitempty" yaml:"required,omitempty"`
	Size          int            `json:"size,omitempty" yaml:"size,omitempty"`
	Lang          bool           `json:"lang,omitempty" yaml:"lang,omitempty"`
	Encode        string         `json:"encode,omitempty" yaml:"encode,omitempty"`
	Getter        string         `json:"getter,omitempty" yaml:"getter,omitempty"`
	Setter        any            `json:"setter,omitempty" yaml:"setter,omitempty"`
	XlinkResource *XlinkResource `json:"xlink_resource,omitempty" yaml:"xlink_resource,omitempty"`
}

// Definition describes a webservice resource
type Definition struct {
	Resource string  `json:"resource" yaml:"resource"`
	Singular string  `json:"singular,omitempty" yaml:"singular,omitempty"`
	Table    string  `json:"table,omitempty" yaml:"table,omitempty"`
	Primary  string  `json:"primary,omitempty" yaml:"primary,omitempty"`
	Fields   []Field `json:"fields" yaml:"fields"`
}

// ParseFile reads and parses a resource definition from a YAML or JSON file
func ParseFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}

	return ParseBytes(data)
}

// ParseBytes parses a resource definition. JSON input is accepted as YAML.
func ParseBytes(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse resource definition: %w", err)
	}
	if err := def.Normalize(); err != nil {
		return nil, err
	}

	return &def, nil
}

// ParseString parses a resource definition from a string
func ParseString(s string) (*Definition, error) {
	return ParseBytes([]byte(s))
}

// Normalize fills derived names and validates the definition
func (d *Definition) Normalize() error {
	d.Resource = strings.TrimSpace(d.Resource)
	if d.Resource == "" {
		return fmt.Errorf("resource name is required")
	}
	if d.Singular == "" {
		d.Singular = singularize(d.Resource)
	}
	if d.Primary == "" {
		d.Primary = IDField
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("field %d of resource %s has no name", i, d.Resource)
		}
		if f.Name == IDField || f.Name == d.Primary {
			return fmt.Errorf("field %s of resource %s clashes with the primary key", f.Name, d.Resource)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("field %s of resource %s is defined twice", f.Name, d.Resource)
		}
		seen[f.Name] = struct{}{}
	}

	return nil
}

// Descriptors builds the field descriptors of one record, primary key first.
// Synopsis mode describes formats instead of values and hides the primary key;
// blank mode empties every value and hides read-only fields.
func (d *Definition) Descriptors(record map[string]any, mode node.SchemaMode) []node.Descriptor {
	objectID := record[d.Primary]
	out := make([]node.Descriptor, 0, len(d.Fields)+1)

	switch mode {
	case node.SchemaSynopsis:
	case node.SchemaBlank:
		out = append(out, node.Descriptor{node.KeySQLID: IDField, node.KeyValue: ""})
	default:
		out = append(out, node.Descriptor{node.KeySQLID: IDField, node.KeyValue: objectID})
	}

	for _, f := range d.Fields {
		if mode == node.SchemaBlank && f.isReadOnly() {
			continue
		}
		out = append(out, f.descriptor(record, objectID, mode))
	}
	return out
}

func (f Field) isReadOnly() bool {
	return f.Setter != nil && node.IsEmpty(f.Setter)
}

func (f Field) descriptor(record map[string]any, objectID any, mode node.SchemaMode) node.Descriptor {
	d := node.Descriptor{node.KeySQLID: f.Name, node.KeyObjectID: objectID}

	if f.Encode != "" {
		d[node.KeyEncode] = f.Encode
	}
	if f.Getter != "" {
		d[node.KeyGetter] = f.Getter
	}
	if f.Setter != nil {
		d[node.KeySetter] = f.Setter
	}
	if f.XlinkResource != nil {
		d[node.KeyXlinkResource] = f.XlinkResource.descriptorValue()
	}
	if f.Lang {
		d[node.KeyI18n] = true
	}

	switch mode {
	case node.SchemaFull:
		d[node.KeyValue] = record[f.Name]
	case node.SchemaSynopsis:
		d[node.KeySynopsisDetails] = f.synopsisDetails()
		d[node.KeyValue] = ""
	default:
		d[node.KeyValue] = ""
	}
	return d
}

// synopsisDetails lists the constraints shown in synopsis mode
func (f Field) synopsisDetails() *node.Attributes {
	details := node.NewAttributes()
	if f.Required {
		details.Set("required", "true")
	}
	if f.Size > 0 {
		details.Set("maxSize", strconv.Itoa(f.Size))
	}
	if len(f.Validate) > 0 {
		details.Set("format", strings.Join(f.Validate, " "))
	}
	return details
}

// singularize derives a record name from a plural resource name
func singularize(s string) string {
	lower := strings.ToLower(s)

	switch {
	case strings.HasSuffix(lower, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(lower, "sses"), strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return s[:len(s)-2]
	case strings.HasSuffix(lower, "s") && len(s) > 1:
		return s[:len(s)-1]
	}

	return s
}
