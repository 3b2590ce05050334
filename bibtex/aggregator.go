package bibtex

import (
	"fmt"
	"strings"
)

// Aggregator assembles the Scanner's unit stream into finalized entries.
// One Aggregator serves exactly one parse run: the abbreviation table and
// the in-progress entry must not leak across inputs, so use a fresh
// instance per source.
type Aggregator struct {
	src     []byte
	abbrevs map[string]string // lower-cased abbreviation name -> resolved text

	current     *Entry
	currentType string // lower-cased entry type
	pendingTag  string
	entries     []*Entry
}

// NewAggregator creates an Aggregator for the same source bytes the Scanner
// walks; the source is needed to cut each entry's verbatim _original span.
func NewAggregator(src []byte) *Aggregator {
	return &Aggregator{src: src, abbrevs: make(map[string]string)}
}

// Receive implements Receiver, applying BibTeX semantics the Scanner
// deliberately does not know about.
func (a *Aggregator) Receive(u Unit) error {
	if u.Kind != UnitEntryStart && a.current == nil {
		return &AggregationError{ParseError{
			Message: fmt.Sprintf("%s unit outside an entry", u.Kind),
			Pos:     Position{Offset: u.Offset},
		}}
	}
	switch u.Kind {
	case UnitEntryStart:
		a.current = NewEntry()
		a.current.startOffset = u.Offset
		a.currentType = ""
		a.pendingTag = ""
	case UnitType:
		a.currentType = strings.ToLower(u.Text)
		switch a.currentType {
		case "string", "comment", "preamble":
			// diverted to the abbreviation table or discarded on entry end
		default:
			a.current.Set(TagType, u.Text)
		}
	case UnitCitationKey:
		a.current.Set(TagCitationKey, u.Text)
	case UnitTagName:
		a.pendingTag = u.Text
	case UnitBracedContent, UnitQuotedContent:
		return a.assign(u, u.Text)
	case UnitRawContent:
		text, err := a.resolveRaw(u)
		if err != nil {
			return err
		}
		return a.assign(u, text)
	case UnitEntryEnd:
		a.finish(u)
	}
	return nil
}

// Export returns the finalized entries in source order. Valid once the full
// input has been scanned without error.
func (a *Aggregator) Export() []*Entry {
	return a.entries
}

func (a *Aggregator) assign(u Unit, text string) error {
	if a.pendingTag == "" {
		return &AggregationError{ParseError{
			Message: "tag content without a tag name",
			Pos:     Position{Offset: u.Offset},
		}}
	}
	a.current.Set(a.pendingTag, text)
	a.pendingTag = ""
	return nil
}

func (a *Aggregator) finish(u Unit) {
	entry := a.current
	a.current = nil
	switch a.currentType {
	case "comment", "preamble":
		return
	case "string":
		for _, t := range entry.Tags() {
			a.abbrevs[strings.ToLower(t.Name)] = t.Value
		}
		return
	}
	end := u.Offset + u.Length
	entry.Set(TagOriginal, string(a.src[entry.startOffset:end]))
	a.entries = append(a.entries, entry)
}

// resolveRaw expands a raw content unit: '#'-separated segments are trimmed
// and each becomes a quoted literal, a number, or an abbreviation reference
// resolved against the table as it stands.
func (a *Aggregator) resolveRaw(u Unit) (string, error) {
	var out strings.Builder
	for _, seg := range splitConcat(u.Text) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		switch {
		case seg[0] == '"':
			out.WriteString(strings.TrimSuffix(seg[1:], `"`))
		case isNumber(seg):
			out.WriteString(seg)
		default:
			resolved, ok := a.abbrevs[strings.ToLower(seg)]
			if !ok {
				return "", &UnknownAbbreviationError{
					AggregationError: AggregationError{ParseError{
						Message: fmt.Sprintf("unknown abbreviation %q", seg),
						Pos:     Position{Offset: a.current.startOffset},
					}},
					Name: seg,
				}
			}
			out.WriteString(resolved)
		}
	}
	return out.String(), nil
}

// splitConcat splits raw content on '#' outside quoted or braced regions.
func splitConcat(s string) []string {
	var segs []string
	start := 0
	inQuote := false
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if depth == 0 {
				inQuote = !inQuote
			}
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '#':
			if !inQuote && depth == 0 {
				segs = append(segs, s[start:i])
				start = i + 1
			}
		}
	}
	return append(segs, s[start:])
}

func isNumber(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return len(s) > 0
}
