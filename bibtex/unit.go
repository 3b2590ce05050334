package bibtex

// UnitKind identifies the type of a lexical unit.
type UnitKind int

const (
	UnitEntryStart    UnitKind = iota // the '@' opening an entry
	UnitType                          // article, book, string, comment, ...
	UnitCitationKey                   // the key before the first comma
	UnitTagName                       // identifier left of '='
	UnitRawContent                    // bare token, number, or '#'-joined sequence
	UnitBracedContent                 // {...}
	UnitQuotedContent                 // "..."
	UnitEntryEnd                      // the closing '}' or ')'
)

var unitNames = map[UnitKind]string{
	UnitEntryStart:    "entry start",
	UnitType:          "type",
	UnitCitationKey:   "citation key",
	UnitTagName:       "tag name",
	UnitRawContent:    "raw content",
	UnitBracedContent: "braced content",
	UnitQuotedContent: "quoted content",
	UnitEntryEnd:      "entry end",
}

func (k UnitKind) String() string {
	if name, ok := unitNames[k]; ok {
		return name
	}
	return "unknown"
}

// Unit is a single lexical unit produced by the Scanner.
//
// Text holds the unescaped content (outer delimiters and escape markers
// stripped). Offset and Length describe the original source span, so Length
// may exceed len(Text) when escape characters were removed.
type Unit struct {
	Kind   UnitKind
	Text   string
	Offset int // byte offset of the span's first character
	Length int // byte length of the original span
}

// Receiver consumes units in source order, one call per unit. The Scanner
// calls every attached Receiver synchronously before it advances; returning
// an error stops the scan immediately.
type Receiver interface {
	Receive(u Unit) error
}
