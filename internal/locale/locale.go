// Package locale validates the list of active language identifiers.
package locale

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/mcncl/wsnode/internal/errors"
)

// List is an ordered, duplicate-free set of locale tags.
type List []language.Tag

// Parse validates ids and returns them as tags, keeping the first occurrence
// of each. Underscores are accepted as separators ("fr_FR").
func Parse(ids []string) (List, error) {
	out := make(List, 0, len(ids))
	seen := make(map[language.Tag]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(strings.ReplaceAll(id, "_", "-"))
		if id == "" {
			continue
		}
		tag, err := language.Parse(id)
		if err != nil {
			return nil, errors.NewInputError(fmt.Sprintf("locale '%s' is not a valid language tag", id), errors.ErrInvalidLocale)
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}

// IDs validates the configured language identifiers and returns them as
// written, trimmed and without duplicates. Identifiers are either numeric
// shop language ids ("1") or language tags ("fr_FR"); only the latter are
// checked against x/text/language. Records key their translations by these
// identifiers, so they are never canonicalized.
func IDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if !isNumeric(id) {
			if _, err := language.Parse(strings.ReplaceAll(id, "_", "-")); err != nil {
				return nil, errors.NewInputError(fmt.Sprintf("locale '%s' is not a valid language tag", id), errors.ErrInvalidLocale)
			}
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func isNumeric(id string) bool {
	for _, r := range id {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Split parses a comma separated list such as "en,fr".
func Split(s string) (List, error) {
	return Parse(strings.Split(s, ","))
}

// Strings returns the canonical identifiers, e.g. "en", "fr-FR".
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, tag := range l {
		out[i] = tag.String()
	}
	return out
}
