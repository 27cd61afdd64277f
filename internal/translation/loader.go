package translation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/wsnode/internal/errors"
)

// Source tells the loader which text of a message a file provides.
type Source int

const (
	// SourceDefault registers wordings without translating them.
	SourceDefault Source = iota
	// SourceFile attaches translations shipped with the project.
	SourceFile
	// SourceUser attaches translations saved by an administrator.
	SourceUser
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceUser:
		return "user"
	default:
		return "default"
	}
}

// Loader reads message files into a catalogue. Files map each default
// wording to its translation, either as a plain string or as a go-i18n message
// body ({other: ...}); the go-i18n list layout ([{id: ..., translation: ...}])
// is accepted too. The locale comes from the file name, e.g. messages.fr.toml.
// Top-level keys are always wordings, so "Description" or "Other" are never
// mistaken for message fields.
type Loader struct {
	logger         *zap.Logger
	unmarshalFuncs map[string]i18n.UnmarshalFunc
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
		unmarshalFuncs: map[string]i18n.UnmarshalFunc{
			"json": json.Unmarshal,
			"toml": toml.Unmarshal,
			"yaml": yaml.Unmarshal,
			"yml":  yaml.Unmarshal,
		},
	}
}

// LoadFile reads path and merges its messages into the given domain of cat.
func (l *Loader) LoadFile(cat *Catalogue, domain, path string, source Source) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewTranslationError(fmt.Sprintf("failed to read message file '%s'", path), err)
	}
	return l.LoadBytes(cat, domain, path, data, source)
}

// entry is one wording read from a message file. A nil text means the file
// lists the wording without translating it; an empty text is a translation.
type entry struct {
	id   string
	text *string
}

// LoadBytes is LoadFile for content already in memory; path is only used for
// its extension and locale.
func (l *Loader) LoadBytes(cat *Catalogue, domain, path string, data []byte, source Source) error {
	// Empty content yields only the tag and format derived from path
	file, err := i18n.ParseMessageFileBytes(nil, path, l.unmarshalFuncs)
	if err != nil {
		return errors.NewTranslationError(fmt.Sprintf("failed to parse message file '%s'", path), err)
	}

	if cat.Locale() != language.Und && source != SourceDefault && file.Tag != cat.Locale() {
		return errors.NewTranslationError(
			fmt.Sprintf("message file '%s' is for locale %s, catalogue is %s", path, file.Tag, cat.Locale()),
			errors.ErrInvalidLocale,
		)
	}

	entries, err := l.readEntries(file.Format, data)
	if err != nil {
		return errors.NewTranslationError(fmt.Sprintf("failed to parse message file '%s'", path), err)
	}

	d := cat.Domain(domain)
	applied := 0
	for _, e := range entries {
		m := d.Add(NewMessage(e.id))
		if source == SourceDefault || e.text == nil {
			continue
		}
		if source == SourceFile {
			m.SetFileTranslation(*e.text)
		} else {
			m.SetUserTranslation(*e.text)
		}
		applied++
	}

	l.logger.Debug("Loaded message file",
		zap.String("path", path),
		zap.String("domain", domain),
		zap.String("source", source.String()),
		zap.Int("messages", len(entries)),
		zap.Int("translations", applied))

	return nil
}

func (l *Loader) readEntries(format string, data []byte) ([]entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	unmarshal, ok := l.unmarshalFuncs[format]
	if !ok {
		return nil, fmt.Errorf("no unmarshaler registered for %s", format)
	}
	var raw any
	if err := unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch doc := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		ids := make([]string, 0, len(doc))
		for id := range doc {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		entries := make([]entry, 0, len(doc))
		for _, id := range ids {
			text, err := translationText(doc[id])
			if err != nil {
				return nil, fmt.Errorf("message %q: %w", id, err)
			}
			entries = append(entries, entry{id: id, text: text})
		}
		return entries, nil
	case []any:
		entries := make([]entry, 0, len(doc))
		for i, item := range doc {
			body, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("message %d: expected a message body, got %T", i, item)
			}
			msg, err := i18n.NewMessage(body)
			if err != nil {
				return nil, fmt.Errorf("message %d: %w", i, err)
			}
			if msg.ID == "" {
				return nil, fmt.Errorf("message %d has no id", i)
			}
			var text *string
			if hasTranslation(body) {
				text = &msg.Other
			}
			entries = append(entries, entry{id: msg.ID, text: text})
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unsupported file layout %T", raw)
	}
}

// translationText reads the translation of one flat entry.
func translationText(value any) (*string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	case map[string]any:
		msg, err := i18n.NewMessage(v)
		if err != nil {
			return nil, err
		}
		if !hasTranslation(v) {
			return nil, nil
		}
		return &msg.Other, nil
	default:
		return nil, fmt.Errorf("unsupported value %#v", value)
	}
}

// hasTranslation reports whether a message body carries the singular form.
func hasTranslation(body map[string]any) bool {
	for k := range body {
		switch strings.ToLower(k) {
		case "other", "translation":
			return true
		}
	}
	return false
}
