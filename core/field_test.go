package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ionut-t/blockwiki/layout"
)

func TestFieldDefaultEditing(t *testing.T) {
	l := layout.New(0)
	f := newField(1, "helo")
	f.SetCaret(3)

	f.applyDefault(KeyEvent{Rune: 'l'}, l)
	assert.Equal(t, "hello", f.Text())
	assert.Equal(t, 4, f.Caret())

	f.applyDefault(KeyEvent{Key: KeyBackspace}, l)
	assert.Equal(t, "helo", f.Text())

	f.applyDefault(KeyEvent{Key: KeyDelete}, l)
	assert.Equal(t, "hel", f.Text())

	f.applyDefault(KeyEvent{Key: KeySpace}, l)
	assert.Equal(t, "hel ", f.Text())

	f.applyDefault(KeyEvent{Rune: 'x', Modifiers: ModCtrl}, l)
	assert.Equal(t, "hel ", f.Text())
}

func TestFieldSelection(t *testing.T) {
	l := layout.New(0)
	f := newField(1, "hello")
	f.SetCaret(1)

	f.applyDefault(KeyEvent{Key: KeyRight, Modifiers: ModShift}, l)
	f.applyDefault(KeyEvent{Key: KeyRight, Modifiers: ModShift}, l)
	assert.Equal(t, "el", f.SelectedText())

	f.applyDefault(KeyEvent{Key: KeyLeft}, l)
	assert.Equal(t, 1, f.Caret())
	assert.Empty(t, f.SelectedText())

	f.Select(4, 1)
	f.applyDefault(KeyEvent{Rune: 'a'}, l)
	assert.Equal(t, "hao", f.Text())
	assert.Equal(t, 2, f.Caret())
}

func TestFieldVerticalMovement(t *testing.T) {
	// Rows: "hello " and "world".
	l := layout.New(8)
	f := newField(1, "hello world")

	f.SetCaret(3)
	f.applyDefault(KeyEvent{Key: KeyUp}, l)
	assert.Equal(t, 0, f.Caret(), "up on the first row goes to the start")

	f.SetCaret(3)
	f.applyDefault(KeyEvent{Key: KeyDown}, l)
	assert.Equal(t, 9, f.Caret())

	f.applyDefault(KeyEvent{Key: KeyDown}, l)
	assert.Equal(t, 11, f.Caret(), "down on the last row goes to the end")

	f.applyDefault(KeyEvent{Key: KeyUp}, l)
	assert.Equal(t, 5, f.Caret())
}

func TestFieldSplitAtSelection(t *testing.T) {
	f := newField(1, "hello world")
	f.Select(5, 6)

	tail := f.splitAtSelection()

	assert.Equal(t, "world", tail)
	assert.Equal(t, "hello", f.Text())
	assert.Equal(t, 5, f.Caret())
}

func TestFlattenLines(t *testing.T) {
	assert.Equal(t, "a b c d", flattenLines("a\nb\r\nc\rd"))
}
