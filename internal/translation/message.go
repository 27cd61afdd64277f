// Package translation models translatable wordings and the catalogues that group them.
package translation

import "strings"

// Message is one wording of a translation catalogue: its default text, the
// translation shipped in the project files and the one an administrator saved.
// A message counts as translated once either translation is present.
type Message struct {
	defaultText     string
	fileTranslation *string
	userTranslation *string
}

// Entry is the serialized form of a Message.
type Entry struct {
	Default string  `json:"default" yaml:"default"`
	Project *string `json:"project" yaml:"project"`
	User    *string `json:"user" yaml:"user"`
}

func NewMessage(defaultText string) *Message {
	return &Message{defaultText: defaultText}
}

// Key identifies the message within its domain.
func (m *Message) Key() string {
	return m.defaultText
}

func (m *Message) Default() string {
	return m.defaultText
}

func (m *Message) SetFileTranslation(text string) *Message {
	m.fileTranslation = &text
	return m
}

func (m *Message) SetUserTranslation(text string) *Message {
	m.userTranslation = &text
	return m
}

func (m *Message) FileTranslation() (string, bool) {
	if m.fileTranslation == nil {
		return "", false
	}
	return *m.fileTranslation, true
}

func (m *Message) UserTranslation() (string, bool) {
	if m.userTranslation == nil {
		return "", false
	}
	return *m.userTranslation, true
}

func (m *Message) IsTranslated() bool {
	return m.fileTranslation != nil || m.userTranslation != nil
}

// Contains reports whether any search term appears, case-insensitively, in the
// default text or one of the present translations.
func (m *Message) Contains(search []string) bool {
	texts := []string{strings.ToLower(m.defaultText)}
	if m.fileTranslation != nil {
		texts = append(texts, strings.ToLower(*m.fileTranslation))
	}
	if m.userTranslation != nil {
		texts = append(texts, strings.ToLower(*m.userTranslation))
	}

	for _, s := range search {
		s = strings.ToLower(s)
		for _, text := range texts {
			if strings.Contains(text, s) {
				return true
			}
		}
	}
	return false
}

// ToArray returns a copy of the message; changing the entry leaves m untouched.
func (m *Message) ToArray() Entry {
	return Entry{
		Default: m.defaultText,
		Project: copyText(m.fileTranslation),
		User:    copyText(m.userTranslation),
	}
}

func copyText(text *string) *string {
	if text == nil {
		return nil
	}
	c := *text
	return &c
}
