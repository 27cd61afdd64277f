package node

import "strings"

// SchemaMode selects which flavour of a resource is being displayed.
type SchemaMode string

const (
	// SchemaFull displays record values.
	SchemaFull SchemaMode = ""
	// SchemaSynopsis displays field formats and constraints instead of values.
	SchemaSynopsis SchemaMode = "synopsis"
	// SchemaBlank displays an empty skeleton of the resource.
	SchemaBlank SchemaMode = "blank"
)

// ParseSchemaMode maps the user-facing names onto a mode. Unknown names mean full.
func ParseSchemaMode(s string) SchemaMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "synopsis":
		return SchemaSynopsis
	case "blank":
		return SchemaBlank
	default:
		return SchemaFull
	}
}

func (m SchemaMode) String() string {
	if m == SchemaFull {
		return "full"
	}
	return string(m)
}

// FieldContext carries the request-scoped settings AddField consults.
type FieldContext struct {
	// Languages lists the active locale identifiers expanded for i18n fields.
	Languages []string
	// BaseURL prefixes every xlink:href, e.g. "https://shop.example/api/".
	BaseURL string
	Schema  SchemaMode
}

const languagesResource = "languages/"

// AddField interprets a field descriptor, appends the resulting node to n and returns it.
func (n *Node) AddField(field Descriptor, ctx FieldContext) *Node {
	child := newValue(field.String(KeySQLID), nil)
	notBlank := ctx.Schema != SchemaBlank

	if field.IsSet(KeyEncode) {
		child.AddAttribute(KeyEncode, field.String(KeyEncode))
	}

	if truthy(field[KeySynopsisDetails]) && notBlank {
		for _, detail := range field.Details() {
			child.AddAttribute(detail.Name, detail.Value)
		}
	}

	if field.Bool(KeyI18n) {
		child.SetKind(KindLanguage)
		hasDetails := field.IsSet(KeySynopsisDetails)
		valueIsCollection := field.IsSet(KeyValue) && isCollection(field[KeyValue])
		for _, locale := range ctx.Languages {
			attrs := NewAttributes(Attribute{Name: "id", Value: locale})
			if hasDetails || valueIsCollection {
				attrs.Set("xlink:href", ctx.BaseURL+languagesResource+locale)
				if hasDetails && notBlank {
					attrs.Set("format", "isUnsignedId")
				}
			}
			child.AddValueNode("language", field.localized(locale)).SetAttributes(attrs)
		}
	} else {
		if field.Has(KeyXlinkResource) && notBlank {
			child.AddAttribute("xlink:href", ctx.BaseURL+xlinkPath(field))
		}
		if field.IsSet(KeyGetter) && notBlank {
			child.AddAttribute("notFilterable", "true")
		}
		if field.IsSet(KeySetter) && !field.Bool(KeySetter) && ctx.Schema == SchemaSynopsis {
			child.AddAttribute("read_only", "true")
		}
		if field.Has(KeyValue) {
			child.SetValue(field[KeyValue])
		}
	}

	n.children = append(n.children, child)
	return child
}

// xlinkPath builds "resource/value" or "resource/sub/objectID/value".
func xlinkPath(field Descriptor) string {
	value := field.String(KeyValue)

	var resource map[string]any
	switch r := field[KeyXlinkResource].(type) {
	case map[string]any:
		resource = r
	case map[string]string:
		resource = make(map[string]any, len(r))
		for k, v := range r {
			resource[k] = v
		}
	default:
		return scalarString(r) + "/" + value
	}

	var b strings.Builder
	b.WriteString(scalarString(resource[KeyResourceName]))
	b.WriteString("/")
	if sub, ok := resource[KeySubResourceName]; ok && sub != nil {
		b.WriteString(scalarString(sub))
		b.WriteString("/")
		b.WriteString(field.String(KeyObjectID))
		b.WriteString("/")
	}
	b.WriteString(value)
	return b.String()
}

// IsEmpty reports whether a scalar counts as "no value" for rendering purposes.
func IsEmpty(v any) bool {
	return !truthy(v)
}
