package processor

import (
	"strings"

	"github.com/dagrate/bibtex-parser/bibtex"
)

// NormalizeNames returns a processor that rewrites name-list tags (author
// and editor when none are given) with single spaces inside each name and a
// canonical " and " separator between names. The word "and" inside a braced
// group does not separate names. An empty name (a doubled or dangling
// separator) is a TransformError.
func NormalizeNames(tags ...string) Processor {
	if len(tags) == 0 {
		tags = []string{"author", "editor"}
	}
	return func(e *bibtex.Entry) (*bibtex.Entry, error) {
		out := e.Clone()
		for _, tag := range tags {
			value, ok := e.Get(tag)
			if !ok {
				continue
			}
			names, ok := splitNames(value)
			if !ok {
				return nil, &TransformError{
					CitationKey: e.CitationKey(),
					Message:     "empty name in " + tag + " list",
				}
			}
			out.Set(tag, strings.Join(names, " and "))
		}
		return out, nil
	}
}

// splitNames splits a BibTeX name list on the standalone word "and" at
// brace depth 0. It reports false when any segment comes out empty.
func splitNames(s string) ([]string, bool) {
	var names []string
	depth := 0
	start := 0
	flush := func(end int) bool {
		name := strings.Join(strings.Fields(s[start:end]), " ")
		if name == "" {
			return false
		}
		names = append(names, name)
		return true
	}
	for i := 0; i < len(s); {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && isAndWord(s, i) {
			if !flush(i) {
				return nil, false
			}
			start = i + 3
			i += 3
			continue
		}
		i++
	}
	if !flush(len(s)) {
		return nil, false
	}
	return names, true
}

// isAndWord reports whether s[i:] starts the standalone word "and".
func isAndWord(s string, i int) bool {
	if i+3 > len(s) || !strings.EqualFold(s[i:i+3], "and") {
		return false
	}
	if i > 0 && !isSpace(s[i-1]) {
		return false
	}
	return i+3 == len(s) || isSpace(s[i+3])
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
