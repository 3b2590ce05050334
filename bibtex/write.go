package bibtex

import (
	"fmt"
	"io"
	"strings"
)

// Write serializes entries back to BibTeX source form. Synthetic tags
// become the entry header; values are brace-delimited.
func Write(w io.Writer, entries []*Entry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(w io.Writer, e *Entry) error {
	if _, err := fmt.Fprintf(w, "@%s{%s", e.Type(), e.CitationKey()); err != nil {
		return err
	}
	for _, t := range e.Tags() {
		switch strings.ToLower(t.Name) {
		case TagType, TagCitationKey, TagOriginal:
			continue
		}
		if _, err := fmt.Fprintf(w, ",\n    %s = {%s}", t.Name, t.Value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "\n}")
	return err
}
