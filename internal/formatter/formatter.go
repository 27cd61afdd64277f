package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultIndent is used when no indent is configured
const DefaultIndent = "  "

// Formatter lays out rendered JSON documents
type Formatter struct {
	// Pretty enables indentation; otherwise the body is compacted
	Pretty bool
	Indent string
}

// NewFormatter creates a new Formatter instance producing compact output
func NewFormatter() *Formatter {
	return &Formatter{Indent: DefaultIndent}
}

// NewPrettyFormatter creates a Formatter that indents with indent
func NewPrettyFormatter(indent string) *Formatter {
	if indent == "" {
		indent = DefaultIndent
	}
	return &Formatter{Pretty: true, Indent: indent}
}

// Format validates body and lays it out. Escape sequences in strings are
// kept as written, so "\/" survives pretty printing.
func (f *Formatter) Format(body string) (string, error) {
	// Handle empty input
	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if f.Pretty {
		if err := json.Indent(&buf, []byte(body), "", f.Indent); err != nil {
			return "", fmt.Errorf("failed to indent JSON: %w", err)
		}
	} else {
		if err := json.Compact(&buf, []byte(body)); err != nil {
			return "", fmt.Errorf("failed to compact JSON: %w", err)
		}
	}

	return buf.String(), nil
}
