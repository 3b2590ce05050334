package bibtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unitCollector struct {
	units []Unit
}

func (c *unitCollector) Receive(u Unit) error {
	c.units = append(c.units, u)
	return nil
}

func collectUnits(t *testing.T, src string) []Unit {
	t.Helper()
	var c unitCollector
	s := NewScanner([]byte(src))
	s.Attach(&c)
	require.NoError(t, s.Scan())
	return c.units
}

func TestScannerSingleEntry(t *testing.T) {
	units := collectUnits(t, `@article{key, title = {T}, year = 2019}`)
	expected := []UnitKind{
		UnitEntryStart, UnitType, UnitCitationKey,
		UnitTagName, UnitBracedContent,
		UnitTagName, UnitRawContent,
		UnitEntryEnd,
	}
	require.Len(t, units, len(expected))
	for i, u := range units {
		assert.Equal(t, expected[i], u.Kind, "unit %d", i)
	}
	assert.Equal(t, "article", units[1].Text)
	assert.Equal(t, "key", units[2].Text)
	assert.Equal(t, "title", units[3].Text)
	assert.Equal(t, "T", units[4].Text)
	assert.Equal(t, "year", units[5].Text)
	assert.Equal(t, "2019", units[6].Text)
}

func TestScannerOffsets(t *testing.T) {
	src := "@article{k,\n  title={T}\n}"
	units := collectUnits(t, src)
	require.Len(t, units, 6)

	assert.Equal(t, 0, units[0].Offset) // @
	assert.Equal(t, 1, units[0].Length)
	assert.Equal(t, 1, units[1].Offset) // article
	assert.Equal(t, 7, units[1].Length)
	assert.Equal(t, 9, units[2].Offset) // k
	assert.Equal(t, 1, units[2].Length)
	assert.Equal(t, 14, units[3].Offset) // title
	assert.Equal(t, 5, units[3].Length)
	assert.Equal(t, 20, units[4].Offset) // {T}
	assert.Equal(t, 3, units[4].Length)
	assert.Equal(t, len(src)-1, units[5].Offset) // closing }
	assert.Equal(t, 1, units[5].Length)

	// every span reproduces its unit text verbatim except the braced
	// content, whose span keeps the delimiters
	for _, u := range units {
		if u.Kind == UnitBracedContent {
			assert.Equal(t, "{T}", src[u.Offset:u.Offset+u.Length])
			continue
		}
		assert.Equal(t, u.Text, src[u.Offset:u.Offset+u.Length], "unit %s", u.Kind)
	}
}

func TestScannerBraceNesting(t *testing.T) {
	src := `@book{k, title = {a {b} c}}`
	units := collectUnits(t, src)
	require.Len(t, units, 6)
	content := units[4]
	assert.Equal(t, UnitBracedContent, content.Kind)
	assert.Equal(t, "a {b} c", content.Text)
	assert.Equal(t, `{a {b} c}`, src[content.Offset:content.Offset+content.Length])
}

func TestScannerQuotedWithBraces(t *testing.T) {
	// Braces inside quotes are balanced; the '"' and ',' inside them do not
	// terminate the content.
	units := collectUnits(t, `@misc{k, note = "a {b,c} d"}`)
	require.Len(t, units, 6)
	content := units[4]
	assert.Equal(t, UnitQuotedContent, content.Kind)
	assert.Equal(t, "a {b,c} d", content.Text)
}

func TestScannerQuoteInsideBracesDoesNotTerminate(t *testing.T) {
	units := collectUnits(t, `@misc{k, note = "a {say "hi"} d"}`)
	require.Len(t, units, 6)
	assert.Equal(t, `a {say "hi"} d`, units[4].Text)
}

func TestScannerEscapedBrace(t *testing.T) {
	src := `@misc{k, note = {a\{b}}`
	units := collectUnits(t, src)
	require.Len(t, units, 6)
	content := units[4]
	assert.Equal(t, "a{b", content.Text)
	// the escape character is gone from Text but counted in the span
	assert.Equal(t, `{a\{b}`, src[content.Offset:content.Offset+content.Length])
	assert.Greater(t, content.Length, len(content.Text))
}

func TestScannerEscapedQuote(t *testing.T) {
	units := collectUnits(t, `@misc{k, note = "say \"hi\""}`)
	require.Len(t, units, 6)
	assert.Equal(t, `say "hi"`, units[4].Text)
}

func TestScannerRawConcatenation(t *testing.T) {
	units := collectUnits(t, `@misc{k, month = jan # "~15"}`)
	require.Len(t, units, 6)
	content := units[4]
	assert.Equal(t, UnitRawContent, content.Kind)
	assert.Equal(t, `jan # "~15"`, content.Text)
}

func TestScannerParenDelimiters(t *testing.T) {
	units := collectUnits(t, `@article(key, year = 2001)`)
	require.Len(t, units, 6)
	assert.Equal(t, UnitEntryEnd, units[5].Kind)
	assert.Equal(t, ")", units[5].Text)
}

func TestScannerStringEntryHasNoCitationKey(t *testing.T) {
	units := collectUnits(t, `@string{jan = "January"}`)
	expected := []UnitKind{
		UnitEntryStart, UnitType, UnitTagName, UnitQuotedContent, UnitEntryEnd,
	}
	require.Len(t, units, len(expected))
	for i, u := range units {
		assert.Equal(t, expected[i], u.Kind, "unit %d", i)
	}
	assert.Equal(t, "jan", units[2].Text)
	assert.Equal(t, "January", units[3].Text)
}

func TestScannerCommentBodySkipped(t *testing.T) {
	units := collectUnits(t, "@comment{anything = {goes}, even junk}\n@misc{k, year = 2000}")
	require.Len(t, units, 3+6)
	assert.Equal(t, UnitEntryStart, units[0].Kind)
	assert.Equal(t, UnitType, units[1].Kind)
	assert.Equal(t, "comment", units[1].Text)
	assert.Equal(t, UnitEntryEnd, units[2].Kind)
	assert.Equal(t, "misc", units[4].Text)
}

func TestScannerImplicitComments(t *testing.T) {
	units := collectUnits(t, "junk before\n@misc{k, year = 2000}\njunk after")
	require.Len(t, units, 6)
	assert.Equal(t, UnitEntryStart, units[0].Kind)
	assert.Equal(t, 12, units[0].Offset)
}

func TestScannerTrailingComma(t *testing.T) {
	units := collectUnits(t, "@misc{k, year = 2000,}")
	require.Len(t, units, 6)
	assert.Equal(t, UnitEntryEnd, units[5].Kind)
}

func TestScannerEmptyInput(t *testing.T) {
	assert.Empty(t, collectUnits(t, ""))
	assert.Empty(t, collectUnits(t, "no entries here"))
}

func TestScannerUnterminatedEntry(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no closing brace", `@article{key, year = 2000`},
		{"unterminated braced", `@article{key, title = {open`},
		{"unterminated quoted", `@article{key, title = "open`},
		{"eof in key", `@article{key`},
		{"eof after type", `@article`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner([]byte(tt.src))
			err := s.Scan()
			require.Error(t, err)
			assert.IsType(t, &ScanError{}, err)
		})
	}
}

func TestScannerMalformedContentOpener(t *testing.T) {
	s := NewScanner([]byte(`@article{key, title = @bad}`))
	err := s.Scan()
	require.Error(t, err)
	assert.IsType(t, &ScanError{}, err)
}

func TestScannerUnbalancedBraceInQuote(t *testing.T) {
	s := NewScanner([]byte(`@article{key, title = "a}b"}`))
	err := s.Scan()
	require.Error(t, err)
	assert.IsType(t, &ScanError{}, err)
}

func TestScannerErrorPosition(t *testing.T) {
	s := NewScanner([]byte("@article{key,\n  title = {open"))
	err := s.Scan()
	require.Error(t, err)
	scanErr, ok := err.(*ScanError)
	require.True(t, ok)
	assert.Equal(t, 2, scanErr.Pos.Line)
	assert.Equal(t, 24, scanErr.Pos.Offset)
}

func TestScannerMultipleReceiversInOrder(t *testing.T) {
	var first, second unitCollector
	s := NewScanner([]byte(`@misc{k, year = 2000}`))
	s.Attach(&first)
	s.Attach(&second)
	require.NoError(t, s.Scan())
	assert.Equal(t, first.units, second.units)
	assert.Len(t, first.units, 6)
}

type failingReceiver struct {
	after int
	seen  int
	err   error
}

func (r *failingReceiver) Receive(Unit) error {
	r.seen++
	if r.seen > r.after {
		return r.err
	}
	return nil
}

func TestScannerReceiverErrorStopsScan(t *testing.T) {
	sentinel := assert.AnError
	fail := &failingReceiver{after: 2, err: sentinel}
	var tail unitCollector
	s := NewScanner([]byte(`@misc{k, year = 2000}`))
	s.Attach(fail)
	s.Attach(&tail)
	err := s.Scan()
	require.ErrorIs(t, err, sentinel)
	// the failing receiver saw the third unit; the one behind it did not
	assert.Equal(t, 3, fail.seen)
	assert.Len(t, tail.units, 2)
}

func TestScannerWhitespaceAroundTags(t *testing.T) {
	units := collectUnits(t, "@misc{ k ,\n  year   =   2000 ,\n  title={T}\n}")
	require.Len(t, units, 8)
	assert.Equal(t, "k", units[2].Text)
	assert.Equal(t, "2000", units[4].Text)
	assert.Equal(t, "T", units[6].Text)
}
