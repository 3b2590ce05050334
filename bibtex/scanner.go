package bibtex

import (
	"fmt"
	"strings"
)

// DefaultEscape is the escape character recognized in citation keys and tag
// contents. The escape is removed from unit text but still counted in the
// unit's source span.
const DefaultEscape = '\\'

// Scanner walks BibTeX source text and emits lexical units to its attached
// receivers. A Scanner instance serves exactly one input; use a fresh one
// per parse.
type Scanner struct {
	src       []byte
	pos       int // current byte offset
	line      int // current line (1-based)
	col       int // current column (1-based)
	escape    byte
	receivers []Receiver
}

// NewScanner creates a Scanner for the given source bytes. Attach receivers
// before calling Scan.
func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src, line: 1, col: 1, escape: DefaultEscape}
}

// Attach registers r to receive every scanned unit. Receivers are called in
// attachment order, once per unit, before scanning advances.
func (s *Scanner) Attach(r Receiver) {
	s.receivers = append(s.receivers, r)
}

// Scan walks the entire input, delivering units to the attached receivers.
// It returns a *ScanError when the input cannot be tokenized, or the first
// error returned by a receiver.
func (s *Scanner) Scan() error {
	for {
		s.skipJunk()
		if s.atEnd() {
			return nil
		}
		if err := s.scanEntry(); err != nil {
			return err
		}
	}
}

func (s *Scanner) emit(kind UnitKind, text string, offset, length int) error {
	u := Unit{Kind: kind, Text: text, Offset: offset, Length: length}
	for _, r := range s.receivers {
		if err := r.Receive(u); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) currentPos() Position {
	return Position{Line: s.line, Column: s.col, Offset: s.pos}
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.pos]
}

func (s *Scanner) advance() byte {
	ch := s.src[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return ch
}

func (s *Scanner) skipWhitespace() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.advance()
		default:
			return
		}
	}
}

// skipJunk advances past everything outside an entry. BibTeX treats text
// between entries as an implicit comment.
func (s *Scanner) skipJunk() {
	for !s.atEnd() && s.peek() != '@' {
		s.advance()
	}
}

func (s *Scanner) errorf(pos Position, format string, args ...any) error {
	return &ScanError{ParseError{Message: fmt.Sprintf(format, args...), Pos: pos}}
}

func (s *Scanner) scanEntry() error {
	start := s.currentPos()
	s.advance() // consume '@'
	if err := s.emit(UnitEntryStart, "@", start.Offset, 1); err != nil {
		return err
	}

	s.skipWhitespace()
	typePos := s.currentPos()
	for !s.atEnd() && isIdentChar(s.peek()) {
		s.advance()
	}
	entryType := string(s.src[typePos.Offset:s.pos])
	if entryType == "" {
		return s.errorf(typePos, "entry type is missing after '@'")
	}
	if err := s.emit(UnitType, entryType, typePos.Offset, len(entryType)); err != nil {
		return err
	}

	s.skipWhitespace()
	if s.atEnd() {
		return s.errorf(start, "unterminated @%s entry", entryType)
	}
	var closer byte
	switch s.peek() {
	case '{':
		closer = '}'
	case '(':
		closer = ')'
	default:
		return s.errorf(s.currentPos(), "expected '{' or '(' after entry type %q, got %q", entryType, s.peek())
	}
	s.advance()

	switch strings.ToLower(entryType) {
	case "comment", "preamble":
		if err := s.skipBalanced(start, closer); err != nil {
			return err
		}
	case "string":
		if err := s.scanTags(start, closer); err != nil {
			return err
		}
	default:
		more, err := s.scanCitationKey(start, closer)
		if err != nil {
			return err
		}
		if more {
			if err := s.scanTags(start, closer); err != nil {
				return err
			}
		}
	}

	endPos := s.currentPos()
	s.advance() // consume the closing delimiter
	return s.emit(UnitEntryEnd, string(closer), endPos.Offset, 1)
}

// skipBalanced consumes the body of a @comment or @preamble entry without
// emitting units, leaving the scanner on the entry's closing delimiter.
func (s *Scanner) skipBalanced(start Position, closer byte) error {
	opener := byte('{')
	if closer == ')' {
		opener = '('
	}
	depth := 1
	for !s.atEnd() {
		switch s.peek() {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return nil
			}
		}
		s.advance()
	}
	return s.errorf(start, "unterminated entry")
}

// scanCitationKey reads up to the first unescaped ',' or the entry's closing
// delimiter. It reports whether a comma followed, i.e. whether tags remain.
func (s *Scanner) scanCitationKey(start Position, closer byte) (bool, error) {
	s.skipWhitespace()
	keyPos := s.currentPos()
	var sb strings.Builder
	for {
		if s.atEnd() {
			return false, s.errorf(start, "unterminated entry")
		}
		ch := s.peek()
		if ch == ',' || ch == closer {
			break
		}
		s.advance()
		if ch == s.escape && !s.atEnd() && isEscapable(s.peek(), s.escape) {
			ch = s.advance()
		}
		sb.WriteByte(ch)
	}
	text := strings.TrimRight(sb.String(), " \t\r\n")
	length := s.pos - keyPos.Offset
	for length > 0 && isSpace(s.src[keyPos.Offset+length-1]) {
		length--
	}
	if err := s.emit(UnitCitationKey, text, keyPos.Offset, length); err != nil {
		return false, err
	}
	if s.peek() == ',' {
		s.advance()
		return true, nil
	}
	return false, nil
}

// scanTags reads name = content pairs until the entry's closing delimiter,
// leaving the scanner on that delimiter.
func (s *Scanner) scanTags(start Position, closer byte) error {
	for {
		s.skipWhitespace()
		if s.atEnd() {
			return s.errorf(start, "unterminated entry")
		}
		if s.peek() == closer {
			return nil
		}
		if err := s.scanTagName(start); err != nil {
			return err
		}
		if err := s.scanTagContent(start, closer); err != nil {
			return err
		}
		s.skipWhitespace()
		if s.atEnd() {
			return s.errorf(start, "unterminated entry")
		}
		switch s.peek() {
		case ',':
			s.advance()
		case closer:
			return nil
		default:
			return s.errorf(s.currentPos(), "expected ',' or %q after tag content, got %q", closer, s.peek())
		}
	}
}

func (s *Scanner) scanTagName(start Position) error {
	namePos := s.currentPos()
	for !s.atEnd() && isTagNameChar(s.peek()) {
		s.advance()
	}
	name := string(s.src[namePos.Offset:s.pos])
	if name == "" {
		return s.errorf(namePos, "expected tag name, got %q", s.peek())
	}
	if err := s.emit(UnitTagName, name, namePos.Offset, len(name)); err != nil {
		return err
	}
	s.skipWhitespace()
	if s.atEnd() {
		return s.errorf(start, "unterminated entry")
	}
	if s.peek() != '=' {
		return s.errorf(s.currentPos(), "expected '=' after tag name %q, got %q", name, s.peek())
	}
	s.advance()
	return nil
}

func (s *Scanner) scanTagContent(start Position, closer byte) error {
	s.skipWhitespace()
	if s.atEnd() {
		return s.errorf(start, "unterminated entry")
	}
	switch ch := s.peek(); {
	case ch == '{':
		return s.scanBraced()
	case ch == '"':
		return s.scanQuoted()
	case isRawStart(ch):
		return s.scanRaw(closer)
	default:
		return s.errorf(s.currentPos(), "tag content must start with '{', '\"', a letter or a digit, got %q", ch)
	}
}

// scanBraced reads {...} content. Nested braces are preserved in the unit
// text; only the outermost pair is stripped. Escaped braces do not count
// toward nesting depth.
func (s *Scanner) scanBraced() error {
	pos := s.currentPos()
	s.advance() // consume '{'
	depth := 1
	var sb strings.Builder
	for {
		if s.atEnd() {
			return s.errorf(pos, "unterminated braced content")
		}
		ch := s.advance()
		if ch == s.escape && !s.atEnd() && isEscapable(s.peek(), s.escape) {
			sb.WriteByte(s.advance())
			continue
		}
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s.emit(UnitBracedContent, sb.String(), pos.Offset, s.pos-pos.Offset)
			}
		}
		sb.WriteByte(ch)
	}
}

// scanQuoted reads "..." content. The quote terminates only on an unescaped
// '"' outside any nested {...} region, so balanced braces may carry quotes
// and commas without ending the content.
func (s *Scanner) scanQuoted() error {
	pos := s.currentPos()
	s.advance() // consume '"'
	depth := 0
	var sb strings.Builder
	for {
		if s.atEnd() {
			return s.errorf(pos, "unterminated quoted content")
		}
		ch := s.advance()
		if ch == s.escape && !s.atEnd() && isEscapable(s.peek(), s.escape) {
			sb.WriteByte(s.advance())
			continue
		}
		switch ch {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return s.errorf(pos, "unbalanced '}' in quoted content")
			}
			depth--
		case '"':
			if depth == 0 {
				return s.emit(UnitQuotedContent, sb.String(), pos.Offset, s.pos-pos.Offset)
			}
		}
		sb.WriteByte(ch)
	}
}

// scanRaw reads bare content: a number, an abbreviation reference, or a
// '#'-joined sequence of those and quoted segments. Quote marks inside the
// sequence are kept in the unit text so the Aggregator can tell literal
// segments from abbreviation references.
func (s *Scanner) scanRaw(closer byte) error {
	pos := s.currentPos()
	var sb strings.Builder
	end := s.pos
	for {
		if s.atEnd() {
			return s.errorf(pos, "unterminated raw content")
		}
		ch := s.peek()
		if ch == ',' || ch == closer {
			break
		}
		if ch == '"' {
			if err := s.rawQuoted(&sb); err != nil {
				return err
			}
			end = s.pos
			continue
		}
		s.advance()
		if ch == s.escape && !s.atEnd() && isEscapable(s.peek(), s.escape) {
			ch = s.advance()
		}
		sb.WriteByte(ch)
		if !isSpace(ch) {
			end = s.pos
		}
	}
	text := strings.TrimRight(sb.String(), " \t\r\n")
	return s.emit(UnitRawContent, text, pos.Offset, end-pos.Offset)
}

// rawQuoted consumes one quoted segment inside raw content, including its
// surrounding quote marks.
func (s *Scanner) rawQuoted(sb *strings.Builder) error {
	pos := s.currentPos()
	sb.WriteByte(s.advance()) // opening '"'
	depth := 0
	for {
		if s.atEnd() {
			return s.errorf(pos, "unterminated quoted content")
		}
		ch := s.advance()
		if ch == s.escape && !s.atEnd() && isEscapable(s.peek(), s.escape) {
			sb.WriteByte(s.advance())
			continue
		}
		switch ch {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"':
			if depth == 0 {
				sb.WriteByte('"')
				return nil
			}
		}
		sb.WriteByte(ch)
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-' || ch == '_'
}

// Tag names admit the punctuation BibTeX field identifiers use in the wild.
func isTagNameChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-' || ch == '_' || ch == '.' || ch == '+' || ch == ':' || ch == '/'
}

func isRawStart(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '-' || ch == '+' || ch == '.'
}

func isEscapable(ch, escape byte) bool {
	return ch == '{' || ch == '}' || ch == '"' || ch == escape
}
