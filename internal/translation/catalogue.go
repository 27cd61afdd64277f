package translation

import "golang.org/x/text/language"

// Domain groups the messages of one translation domain, in insertion order.
type Domain struct {
	name     string
	keys     []string
	messages map[string]*Message
}

func newDomain(name string) *Domain {
	return &Domain{name: name, messages: make(map[string]*Message)}
}

func (d *Domain) Name() string {
	return d.name
}

// Add stores m unless a message with the same key exists; the stored message is returned.
func (d *Domain) Add(m *Message) *Message {
	if existing, ok := d.messages[m.Key()]; ok {
		return existing
	}
	d.keys = append(d.keys, m.Key())
	d.messages[m.Key()] = m
	return m
}

func (d *Domain) Get(key string) (*Message, bool) {
	m, ok := d.messages[key]
	return m, ok
}

func (d *Domain) Messages() []*Message {
	out := make([]*Message, len(d.keys))
	for i, k := range d.keys {
		out[i] = d.messages[k]
	}
	return out
}

func (d *Domain) Len() int {
	return len(d.keys)
}

// Stats counts messages by translation status.
type Stats struct {
	Total      int `json:"total"`
	Translated int `json:"translated"`
	Missing    int `json:"missing"`
}

func (s *Stats) add(m *Message) {
	s.Total++
	if m.IsTranslated() {
		s.Translated++
	} else {
		s.Missing++
	}
}

// Catalogue holds every domain of one locale.
type Catalogue struct {
	locale  language.Tag
	names   []string
	domains map[string]*Domain
}

// NewCatalogue creates an empty catalogue. language.Und accepts files of any locale.
func NewCatalogue(locale language.Tag) *Catalogue {
	return &Catalogue{locale: locale, domains: make(map[string]*Domain)}
}

func (c *Catalogue) Locale() language.Tag {
	return c.locale
}

// Domain returns the named domain, creating it when missing.
func (c *Catalogue) Domain(name string) *Domain {
	if d, ok := c.domains[name]; ok {
		return d
	}
	d := newDomain(name)
	c.names = append(c.names, name)
	c.domains[name] = d
	return d
}

func (c *Catalogue) Lookup(name string) (*Domain, bool) {
	d, ok := c.domains[name]
	return d, ok
}

func (c *Catalogue) Domains() []*Domain {
	out := make([]*Domain, len(c.names))
	for i, n := range c.names {
		out[i] = c.domains[n]
	}
	return out
}

// Filter returns a catalogue with the messages matching every criterion given.
// Empty search matches everything; missingOnly keeps untranslated messages.
// Domains left without messages are dropped.
func (c *Catalogue) Filter(search []string, missingOnly bool) *Catalogue {
	out := NewCatalogue(c.locale)
	for _, d := range c.Domains() {
		for _, m := range d.Messages() {
			if missingOnly && m.IsTranslated() {
				continue
			}
			if len(search) > 0 && !m.Contains(search) {
				continue
			}
			out.Domain(d.name).Add(m)
		}
	}
	return out
}

func (c *Catalogue) Stats() Stats {
	var s Stats
	for _, d := range c.Domains() {
		for _, m := range d.Messages() {
			s.add(m)
		}
	}
	return s
}

// DomainEntry is the serialized form of a Domain.
type DomainEntry struct {
	Name     string  `json:"name" yaml:"name"`
	Stats    Stats   `json:"stats" yaml:"stats"`
	Messages []Entry `json:"messages" yaml:"messages"`
}

func (c *Catalogue) ToArray() []DomainEntry {
	out := make([]DomainEntry, 0, len(c.names))
	for _, d := range c.Domains() {
		entry := DomainEntry{Name: d.name, Messages: make([]Entry, 0, d.Len())}
		for _, m := range d.Messages() {
			entry.Stats.add(m)
			entry.Messages = append(entry.Messages, m.ToArray())
		}
		out = append(out, entry)
	}
	return out
}
