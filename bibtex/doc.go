// Package bibtex parses BibTeX source text into structured entries.
//
// Parsing is split into two layers that run in lockstep:
//
//   - Scanner: a character-level state machine that walks raw text and emits
//     lexical units (entry boundaries, type, citation key, tag names, tag
//     contents) with exact byte offsets, handling nested braces, quoted
//     strings, escape characters and '#' concatenation.
//   - Aggregator: consumes the unit stream in source order, resolves
//     concatenation and @string abbreviation expansion, and assembles the
//     ordered entry list.
//
// Usage:
//
//	entries, err := bibtex.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range entries {
//	    fmt.Println(e.Type(), e.CitationKey())
//	}
//
// Every unit is delivered synchronously to each attached Receiver before
// scanning advances, so custom consumers can observe the stream alongside
// (or instead of) the Aggregator.
package bibtex
