package processor

import (
	"strings"

	"github.com/dagrate/bibtex-parser/bibtex"
)

// SplitKeywords returns a processor that normalizes the keyword list held
// in tag (default "keywords"): entries separated by ',' or ';' are trimmed,
// empties dropped, and the list rejoined with ", ".
func SplitKeywords(tag string) Processor {
	if tag == "" {
		tag = "keywords"
	}
	return func(e *bibtex.Entry) (*bibtex.Entry, error) {
		value, ok := e.Get(tag)
		if !ok {
			return e, nil
		}
		split := strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || r == ';'
		})
		var keywords []string
		for _, kw := range split {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		out := e.Clone()
		out.Set(tag, strings.Join(keywords, ", "))
		return out, nil
	}
}
