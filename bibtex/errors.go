package bibtex

import "fmt"

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number, 0 when unknown
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// ParseError is the base error type for all bibtex errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	if e.Pos.Offset > 0 {
		return fmt.Sprintf("offset %d: %s", e.Pos.Offset, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ScanError reports source text that cannot be tokenized: unterminated
// entries, braces or quotes, or a malformed tag-content opener.
type ScanError struct{ ParseError }

// AggregationError reports a unit stream that cannot be assembled into
// entries.
type AggregationError struct{ ParseError }

// UnknownAbbreviationError reports a raw content segment naming an
// abbreviation with no earlier @string definition. Pos carries the starting
// offset of the entry being assembled.
type UnknownAbbreviationError struct {
	AggregationError
	Name string
}
