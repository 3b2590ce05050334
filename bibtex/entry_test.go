package bibtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrySetAndGet(t *testing.T) {
	e := NewEntry()
	e.Set("Title", "first")
	e.Set("year", "2000")

	v, ok := e.Get("title")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	_, ok = e.Get("missing")
	assert.False(t, ok)
}

func TestEntryDuplicateKeepsPositionAndCasing(t *testing.T) {
	e := NewEntry()
	e.Set("Title", "first")
	e.Set("note", "n")
	e.Set("TITLE", "second")

	tags := e.Tags()
	require.Len(t, tags, 2)
	assert.Equal(t, "Title", tags[0].Name)
	assert.Equal(t, "second", tags[0].Value)
}

func TestEntryClone(t *testing.T) {
	e := NewEntry()
	e.Set("title", "T")

	c := e.Clone()
	c.Set("title", "changed")
	c.Set("extra", "x")

	v, _ := e.Get("title")
	assert.Equal(t, "T", v)
	_, ok := e.Get("extra")
	assert.False(t, ok)
}
