package node

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Recognized descriptor keys.
const (
	KeySQLID           = "sqlId"
	KeyValue           = "value"
	KeyEncode          = "encode"
	KeySynopsisDetails = "synopsis_details"
	KeyI18n            = "i18n"
	KeyXlinkResource   = "xlink_resource"
	KeyGetter          = "getter"
	KeySetter          = "setter"
	KeyObjectID        = "object_id"

	KeyResourceName    = "resourceName"
	KeySubResourceName = "subResourceName"
)

// Descriptor describes how one data field is rendered. Absent keys mean the
// feature was not requested; values of an unexpected shape are treated as absent.
type Descriptor map[string]any

// Has reports whether key is present, even with a nil value.
func (d Descriptor) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// IsSet reports whether key is present with a non-nil value.
func (d Descriptor) IsSet(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

// Bool reports the loose truthiness of key.
func (d Descriptor) Bool(key string) bool {
	return truthy(d[key])
}

// String returns key rendered as text, empty when absent.
func (d Descriptor) String(key string) string {
	return scalarString(d[key])
}

// Details returns the synopsis details in a stable order. Map inputs are
// sorted by key since they carry no order of their own.
func (d Descriptor) Details() []Attribute {
	switch details := d[KeySynopsisDetails].(type) {
	case *Attributes:
		out := make([]Attribute, 0, details.Len())
		details.Each(func(name, value string) {
			out = append(out, Attribute{Name: name, Value: value})
		})
		return out
	case []Attribute:
		return details
	case map[string]any:
		out := make([]Attribute, 0, len(details))
		for _, k := range sortedKeys(details) {
			out = append(out, Attribute{Name: k, Value: detailString(details[k])})
		}
		return out
	case map[string]string:
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]Attribute, 0, len(details))
		for _, k := range keys {
			out = append(out, Attribute{Name: k, Value: details[k]})
		}
		return out
	default:
		return nil
	}
}

// localized returns the value for one locale of an i18n field, empty when missing.
func (d Descriptor) localized(locale string) any {
	switch values := d[KeyValue].(type) {
	case map[string]any:
		if v, ok := values[locale]; ok && v != nil {
			return v
		}
	case map[string]string:
		if v, ok := values[locale]; ok {
			return v
		}
	}
	return ""
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func detailString(v any) string {
	switch list := v.(type) {
	case []string:
		return strings.Join(list, " ")
	case []any:
		parts := make([]string, len(list))
		for i, item := range list {
			parts[i] = scalarString(item)
		}
		return strings.Join(parts, " ")
	default:
		return scalarString(v)
	}
}

func isCollection(v any) bool {
	switch v.(type) {
	case map[string]any, map[string]string, []any, []string:
		return true
	}
	return false
}

// scalarString converts a scalar the way the legacy webservice concatenated values.
func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if s {
			return "1"
		}
		return ""
	case json.Number:
		return s.String()
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// truthy mirrors the loose boolean conversion descriptors were written against.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case map[string]string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case *Attributes:
		return t.Len() > 0
	case []Attribute:
		return len(t) > 0
	default:
		return true
	}
}
