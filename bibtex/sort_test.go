package bibtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortFixture(t *testing.T) []*Entry {
	t.Helper()
	entries, err := Parse([]byte(`
@article{young, year = 2019}
@book{old, year = 2003}
@article{mid, year = 2010}
@misc{undated, note = {n}}
`))
	require.NoError(t, err)
	return entries
}

func keys(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.CitationKey()
	}
	return out
}

func TestSortByYear(t *testing.T) {
	entries := sortFixture(t)
	SortBy(entries, "year")
	assert.Equal(t, []string{"old", "mid", "young", "undated"}, keys(entries))
}

func TestSortByYearDescending(t *testing.T) {
	entries := sortFixture(t)
	SortBy(entries, "-year")
	assert.Equal(t, []string{"young", "mid", "old", "undated"}, keys(entries))
}

func TestSortByTypeThenYearDescending(t *testing.T) {
	entries := sortFixture(t)
	SortBy(entries, "type", "-year")
	assert.Equal(t, []string{"young", "mid", "old", "undated"}, keys(entries))
}

func TestSortNumericNotLexicographic(t *testing.T) {
	entries, err := Parse([]byte(`
@misc{a, pages = 100}
@misc{b, pages = 20}
`))
	require.NoError(t, err)
	SortBy(entries, "pages")
	assert.Equal(t, []string{"b", "a"}, keys(entries))
}

func TestSortNoTagsIsNoop(t *testing.T) {
	entries := sortFixture(t)
	before := keys(entries)
	SortBy(entries)
	assert.Equal(t, before, keys(entries))
}
