package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/blockwiki/markup"
)

func TestDocumentNeighbors(t *testing.T) {
	d := NewDocument()
	d.Reset([]string{"a", "b", "c"}, markup.Parser{})

	first, _ := d.At(0)
	last, _ := d.At(2)

	_, ok := d.Prev(first.ID)
	assert.False(t, ok)
	_, ok = d.Next(last.ID)
	assert.False(t, ok)

	next, ok := d.Next(first.ID)
	require.True(t, ok)
	assert.Equal(t, "b", next.Content)

	_, ok = d.Next(LineID(404))
	assert.False(t, ok)
}

func TestDocumentInsertAfter(t *testing.T) {
	d := NewDocument()
	d.Reset([]string{"a", "c"}, markup.Parser{})
	first, _ := d.At(0)

	b := d.InsertAfter(first.ID, "b", markup.Parser{})
	d.InsertAfter(LineID(404), "d", markup.Parser{})

	assert.Equal(t, []string{"a", "b", "c", "d"}, d.Contents())
	assert.Equal(t, Rendered, b.Mode)
	assert.NotEqual(t, first.ID, b.ID)
}

func TestDocumentResetClearsActiveEdit(t *testing.T) {
	e := newTestEditor(t, 0, "a", "b")
	focusAt(t, e, 1, 0)

	e.SetLines(nil)

	_, ok := e.ActiveEditID()
	assert.False(t, ok)
	assert.Nil(t, e.Field())
	assert.Equal(t, []string{""}, e.Lines())
}

func TestTrimmedLen(t *testing.T) {
	assert.Equal(t, 0, trimmedLen(""))
	assert.Equal(t, 0, trimmedLen("   "))
	assert.Equal(t, 3, trimmedLen("abc \t"))
	assert.Equal(t, 5, trimmedLen("  abc"))
}
