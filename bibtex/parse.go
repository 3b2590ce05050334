package bibtex

import (
	"fmt"
	"io"
)

// Parse scans src and returns the finalized entries in source order.
// Returns a *ScanError or *AggregationError on failure; no partial results
// are returned once either occurs.
func Parse(src []byte) ([]*Entry, error) {
	agg := NewAggregator(src)
	sc := NewScanner(src)
	sc.Attach(agg)
	if err := sc.Scan(); err != nil {
		return nil, err
	}
	return agg.Export(), nil
}

// ParseReader reads r to EOF and parses the result.
func ParseReader(r io.Reader) ([]*Entry, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibtex source: %w", err)
	}
	return Parse(src)
}
