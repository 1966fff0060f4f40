package core

import (
	"github.com/rs/zerolog"

	"github.com/ionut-t/blockwiki/layout"
)

// CaretState is read from the field before a key's default effect runs.
// StartColumn and EndColumn are the selection bounds; the caret is at
// EndColumn and LeftCoordinate is its horizontal offset.
type CaretState struct {
	StartColumn    int
	EndColumn      int
	LeftCoordinate int
}

// Navigator moves focus to a neighboring line when an arrow key runs into
// the edge of the editing line.
type Navigator struct {
	doc      *Document
	switcher *ModeSwitcher
	layout   Layout
	queue    *Queue
	log      zerolog.Logger
}

func (n *Navigator) captureCaret(f *Field) CaretState {
	start, end := f.Selection()
	return CaretState{
		StartColumn:    start,
		EndColumn:      end,
		LeftCoordinate: n.layout.CaretOffset(f.Text(), end),
	}
}

// Schedule defers the boundary check for an arrow key pressed on line id so
// it sees the caret after the key has moved it.
func (n *Navigator) Schedule(id LineID, dir Direction, before CaretState) {
	n.queue.Defer(func() {
		n.crossBoundary(id, dir, before)
	})
}

// crossBoundary reports whether focus moved to another line.
func (n *Navigator) crossBoundary(id LineID, dir Direction, before CaretState) bool {
	field := n.switcher.Field()
	if active, _ := n.doc.ActiveEditID(); active != id || field == nil || field.LineID != id {
		return false
	}

	text := field.Text()
	start := before.EndColumn
	end := field.Caret()

	var (
		target *Line
		at     Placement
		ok     bool
	)

	switch dir {
	case DirUp:
		row, _ := layout.RowOf(n.layout.WrappedRows(text), end)
		if end != 0 || row != 0 {
			return false
		}
		if target, ok = n.doc.Prev(id); !ok {
			return false
		}
		rows := n.layout.WrappedRows(target.Text())
		at = AlignedTo(min(start, rowLen(rows, len(rows)-1)), before.LeftCoordinate)

	case DirDown:
		if end != trimmedLen(text) {
			return false
		}
		if target, ok = n.doc.Next(id); !ok {
			return false
		}
		rows := n.layout.WrappedRows(target.Text())
		at = AlignedTo(min(start, rowLen(rows, 0)-1), before.LeftCoordinate)

	case DirRight:
		if end != start || start != trimmedLen(text) {
			return false
		}
		if target, ok = n.doc.Next(id); !ok {
			return false
		}
		at = AtColumn(0)

	case DirLeft:
		if start != 0 || end != 0 {
			return false
		}
		if target, ok = n.doc.Prev(id); !ok {
			return false
		}
		at = AtColumn(trimmedLen(target.Text()))

	default:
		return false
	}

	n.log.Debug().
		Stringer("direction", dir).
		Int("from", int(id)).
		Int("to", int(target.ID)).
		Msg("cross line boundary")

	n.switcher.EnterEdit(target.ID, at)
	return true
}

// rowLen is the length of row i, or 0 when the layout produced no such row.
func rowLen(rows []int, i int) int {
	if i < 0 || i >= len(rows) {
		return 0
	}
	return rows[i]
}
