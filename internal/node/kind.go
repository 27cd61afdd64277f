package node

// Kind tags the shape a Node renders as.
type Kind int

const (
	// KindValue is a leaf carrying an optional scalar.
	KindValue Kind = iota
	// KindLanguage holds one value child per locale, each with an "id" attribute.
	KindLanguage
	// KindParent renders its children as a name-keyed mapping.
	KindParent
	// KindList renders its children as a positional sequence.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindLanguage:
		return "language"
	case KindParent:
		return "parent"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// IsContainer reports whether nodes of this kind derive their content from children.
func (k Kind) IsContainer() bool {
	return k != KindValue
}
