package processor

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/dagrate/bibtex-parser/bibtex"
)

// accents maps LaTeX accent commands to Unicode combining marks. Accents
// named by punctuation take a bare or braced letter (\'e, \'{e}); accents
// named by a letter require the braced form (\c{c}, \v{s}).
var accents = map[byte]rune{
	'\'': 0x0301, // acute
	'`':  0x0300, // grave
	'"':  0x0308, // diaeresis
	'^':  0x0302, // circumflex
	'~':  0x0303, // tilde
	'=':  0x0304, // macron
	'.':  0x0307, // dot above
	'u':  0x0306, // breve
	'v':  0x030C, // caron
	'c':  0x0327, // cedilla
	'H':  0x030B, // double acute
	'k':  0x0328, // ogonek
	'r':  0x030A, // ring above
	'b':  0x0331, // macron below
	'd':  0x0323, // dot below
}

var symbols = map[string]string{
	"ss": "ß",
	"ae": "æ",
	"AE": "Æ",
	"oe": "œ",
	"OE": "Œ",
	"aa": "å",
	"AA": "Å",
	"o":  "ø",
	"O":  "Ø",
	"l":  "ł",
	"L":  "Ł",
	"i":  "ı",
	"&":  "&",
	"%":  "%",
	"$":  "$",
	"#":  "#",
	"_":  "_",
}

// LatexToUnicode returns a processor that converts LaTeX accent and symbol
// escapes in every tag value to composed Unicode (NFC). Escapes it does not
// recognize are left as written.
func LatexToUnicode() Processor {
	return func(e *bibtex.Entry) (*bibtex.Entry, error) {
		out := bibtex.NewEntry()
		for _, t := range e.Tags() {
			if strings.ToLower(t.Name) == bibtex.TagOriginal {
				out.Set(t.Name, t.Value)
				continue
			}
			out.Set(t.Name, latexToUnicode(t.Value))
		}
		return out, nil
	}
}

func latexToUnicode(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '{' && i+1 < len(s) && s[i+1] == '\\':
			// A protective group holding exactly one escape loses its braces:
			// {\"o} becomes ö.
			if text, next, ok := convertEscape(s, i+1); ok && next < len(s) && s[next] == '}' {
				sb.WriteString(text)
				i = next + 1
				continue
			}
			sb.WriteByte('{')
			i++
		case s[i] == '\\':
			if text, next, ok := convertEscape(s, i); ok {
				sb.WriteString(text)
				i = next
				continue
			}
			sb.WriteByte('\\')
			i++
		default:
			sb.WriteByte(s[i])
			i++
		}
	}
	return norm.NFC.String(sb.String())
}

// convertEscape converts the escape starting at the backslash s[i]. It
// returns the replacement text and the index just past the consumed input.
func convertEscape(s string, i int) (string, int, bool) {
	j := i + 1
	if j >= len(s) {
		return "", 0, false
	}
	ch := s[j]
	if mark, ok := accents[ch]; ok && !isASCIILetter(ch) {
		return accentBase(s, j+1, mark)
	}
	if isASCIILetter(ch) {
		k := j
		for k < len(s) && isASCIILetter(s[k]) {
			k++
		}
		word := s[j:k]
		if repl, ok := symbols[word]; ok {
			if k < len(s) && s[k] == ' ' {
				k++ // TeX eats the delimiting space: Stra\ss e
			} else if k+1 < len(s) && s[k] == '{' && s[k+1] == '}' {
				k += 2
			}
			return repl, k, true
		}
		if len(word) == 1 {
			if mark, ok := accents[word[0]]; ok && k < len(s) && s[k] == '{' {
				return accentBase(s, k, mark)
			}
		}
		return "", 0, false
	}
	if repl, ok := symbols[string(ch)]; ok {
		return repl, j + 1, true
	}
	return "", 0, false
}

// accentBase reads the accent's base letter, bare or braced, and places the
// combining mark after its first rune.
func accentBase(s string, i int, mark rune) (string, int, bool) {
	if i < len(s) && s[i] == '{' {
		end := strings.IndexByte(s[i:], '}')
		if end <= 1 {
			return "", 0, false
		}
		base := s[i+1 : i+end]
		if base[0] == '\\' {
			return "", 0, false
		}
		_, size := utf8.DecodeRuneInString(base)
		return base[:size] + string(mark) + base[size:], i + end + 1, true
	}
	if i < len(s) && s[i] != '\\' {
		_, size := utf8.DecodeRuneInString(s[i:])
		return s[i:i+size] + string(mark), i + size, true
	}
	return "", 0, false
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
