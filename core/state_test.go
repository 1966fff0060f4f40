package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/blockwiki/layout"
)

type memClipboard struct {
	content string
	err     error
}

func (c *memClipboard) Write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.content = text
	return nil
}

func (c *memClipboard) Read() (string, error) {
	return c.content, c.err
}

func newClipboardEditor(t *testing.T, clip Clipboard, lines ...string) *editor {
	t.Helper()

	e, ok := New(WithLayout(layout.New(0)), WithClipboard(clip)).(*editor)
	require.True(t, ok)
	e.SetLines(lines)
	return e
}

func TestCopyAndPaste(t *testing.T) {
	clip := &memClipboard{}
	e := newClipboardEditor(t, clip, "hello world", "x")

	f := focusAt(t, e, 0, 0)
	f.Select(6, 11)
	require.NoError(t, e.Copy())
	assert.Equal(t, "world", clip.content)

	focusAt(t, e, 1, 1)
	require.NoError(t, e.Paste())
	assert.Equal(t, "xworld", e.Field().Text())

	clip.content = "two\nlines"
	require.NoError(t, e.Paste())
	assert.Equal(t, "xworldtwo lines", e.Field().Text())
}

func TestCopyWholeLineWithoutSelection(t *testing.T) {
	clip := &memClipboard{}
	e := newClipboardEditor(t, clip, "hello")
	focusAt(t, e, 0, 2)

	require.NoError(t, e.Copy())
	assert.Equal(t, "hello", clip.content)
}

func TestClipboardErrors(t *testing.T) {
	clip := &memClipboard{err: errors.New("boom")}
	e := newClipboardEditor(t, clip, "hello")

	var editorErr *Error
	require.ErrorAs(t, e.Copy(), &editorErr)
	assert.Equal(t, ErrNoActiveLineId, editorErr.ID())

	focusAt(t, e, 0, 0)
	require.ErrorAs(t, e.Copy(), &editorErr)
	assert.Equal(t, ErrCopyFailedId, editorErr.ID())

	require.ErrorAs(t, e.Paste(), &editorErr)
	assert.Equal(t, ErrPasteFailedId, editorErr.ID())

	var dispatched []ErrorId
	for _, s := range drainSignals(e) {
		if es, ok := s.(ErrorSignal); ok {
			id, _ := es.Value()
			dispatched = append(dispatched, id)
		}
	}
	assert.Equal(t, []ErrorId{ErrCopyFailedId, ErrPasteFailedId}, dispatched)
}

func TestFocusUnknownLine(t *testing.T) {
	e := newTestEditor(t, 0, "a")

	err := e.Focus(LineID(77))
	assert.ErrorIs(t, err, ErrUnknownLine)
}

func TestLinesIncludesUnsavedEdit(t *testing.T) {
	e := newTestEditor(t, 0, "a", "b")
	focusAt(t, e, 1, 1)
	typeRune(e, 'c')

	assert.Equal(t, []string{"a", "bc"}, e.Lines())
	assert.Equal(t, "b", e.doc.lines[1].Content)
}

func TestInsertText(t *testing.T) {
	e := newClipboardEditor(t, &memClipboard{}, "ab")

	err := e.InsertText("x")
	assert.ErrorIs(t, err, ErrNoActiveLine)

	focusAt(t, e, 0, 1)
	require.NoError(t, e.InsertText("one\r\ntwo"))
	assert.Equal(t, "aone twob", e.Field().Text())
	assert.Equal(t, 8, e.Field().Caret())
}
