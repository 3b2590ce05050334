package processor

import (
	"strings"

	"github.com/dagrate/bibtex-parser/bibtex"
)

// LowercaseTagNames returns a processor that lower-cases every tag name,
// keeping tag order and values.
func LowercaseTagNames() Processor {
	return func(e *bibtex.Entry) (*bibtex.Entry, error) {
		out := bibtex.NewEntry()
		for _, t := range e.Tags() {
			out.Set(strings.ToLower(t.Name), t.Value)
		}
		return out, nil
	}
}
