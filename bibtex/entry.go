package bibtex

import "strings"

// Synthetic tag names present on every exported entry.
const (
	TagType        = "type"
	TagCitationKey = "citation-key"
	TagOriginal    = "_original"
)

// Tag is a single name=value pair on an entry. Name keeps the casing of the
// name's first occurrence in the source.
type Tag struct {
	Name  string
	Value string
}

// Entry is one assembled bibliographic record. Tags keep first-occurrence
// order; lookups are case-insensitive. Entries are mutable while the
// Aggregator assembles them and should be treated as read-only afterwards
// (Clone before modifying).
type Entry struct {
	tags  []Tag
	index map[string]int // lower-cased name -> position in tags

	startOffset int // offset of the '@' that opened the entry
}

// NewEntry creates an empty entry.
func NewEntry() *Entry {
	return &Entry{index: make(map[string]int)}
}

// Set stores a tag value. A duplicate name (compared case-insensitively)
// overwrites the value but keeps the position and casing of the first
// occurrence.
func (e *Entry) Set(name, value string) {
	key := strings.ToLower(name)
	if i, ok := e.index[key]; ok {
		e.tags[i].Value = value
		return
	}
	e.index[key] = len(e.tags)
	e.tags = append(e.tags, Tag{Name: name, Value: value})
}

// Get returns a tag value by case-insensitive name.
func (e *Entry) Get(name string) (string, bool) {
	i, ok := e.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return e.tags[i].Value, true
}

// Tags returns all tags in first-occurrence order, including the synthetic
// type, citation-key and _original tags.
func (e *Entry) Tags() []Tag {
	return e.tags
}

// Type returns the entry type ("article", "book", ...).
func (e *Entry) Type() string {
	v, _ := e.Get(TagType)
	return v
}

// CitationKey returns the entry's citation key.
func (e *Entry) CitationKey() string {
	v, _ := e.Get(TagCitationKey)
	return v
}

// Original returns the verbatim source span of the entry as written,
// including whitespace and formatting.
func (e *Entry) Original() string {
	v, _ := e.Get(TagOriginal)
	return v
}

// Clone returns a copy of the entry that can be modified independently.
func (e *Entry) Clone() *Entry {
	c := NewEntry()
	c.startOffset = e.startOffset
	for _, t := range e.tags {
		c.Set(t.Name, t.Value)
	}
	return c
}
