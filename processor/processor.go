package processor

import (
	"fmt"

	"github.com/dagrate/bibtex-parser/bibtex"
)

// Processor rewrites a single entry. Implementations must not mutate the
// input entry; they return it unchanged or return a replacement (usually
// built with Clone).
type Processor func(*bibtex.Entry) (*bibtex.Entry, error)

// Apply runs each processor over every entry in registration order. The
// first processor error aborts the run.
func Apply(entries []*bibtex.Entry, procs ...Processor) ([]*bibtex.Entry, error) {
	if len(procs) == 0 {
		return entries, nil
	}
	out := make([]*bibtex.Entry, 0, len(entries))
	for _, e := range entries {
		cur := e
		for _, p := range procs {
			next, err := p(cur)
			if err != nil {
				return nil, err
			}
			cur = next
		}
		out = append(out, cur)
	}
	return out, nil
}

// TransformError reports a processor that could not be applied to an entry.
// It is orthogonal to the scanner and aggregator error kinds.
type TransformError struct {
	CitationKey string
	Message     string
	Cause       error
}

func (e *TransformError) Error() string {
	if e.CitationKey != "" {
		return fmt.Sprintf("entry %q: %s", e.CitationKey, e.Message)
	}
	return e.Message
}

func (e *TransformError) Unwrap() error { return e.Cause }
