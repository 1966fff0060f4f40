package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ionut-t/blockwiki/layout"
)

func newTestEditor(t *testing.T, width int, lines ...string) *editor {
	t.Helper()

	e, ok := New(WithLayout(layout.New(width))).(*editor)
	require.True(t, ok)
	e.SetLines(lines)
	return e
}

func lineID(t *testing.T, e *editor, i int) LineID {
	t.Helper()

	l, ok := e.doc.At(i)
	require.True(t, ok, "no line at %d", i)
	return l.ID
}

// focusAt starts editing line i with the caret at col.
func focusAt(t *testing.T, e *editor, i, col int) *Field {
	t.Helper()

	require.NoError(t, e.Focus(lineID(t, e, i)))
	f := e.Field()
	require.NotNil(t, f)
	f.SetCaret(col)
	return f
}

func press(e *editor, code KeyCode) {
	e.HandleKey(KeyEvent{Key: code})
}

func typeRune(e *editor, r rune) {
	e.HandleKey(KeyEvent{Rune: r})
}

func activeIndex(e *editor) int {
	id, ok := e.ActiveEditID()
	if !ok {
		return -1
	}
	return e.doc.Index(id)
}

func drainSignals(e *editor) []Signal {
	var out []Signal
	for {
		select {
		case s := <-e.updateSignal:
			out = append(out, s)
		default:
			return out
		}
	}
}
