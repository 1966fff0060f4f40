package core

import (
	"github.com/rs/zerolog"
)

// Placement tells EnterEdit where to put the caret once the field is focused.
type Placement struct {
	column  int
	hasCol  bool
	left    int
	hasLeft bool
}

// AtEnd places the caret after the last non-space rune.
func AtEnd() Placement {
	return Placement{}
}

// AtColumn places the caret at col, clamped to the text.
func AtColumn(col int) Placement {
	return Placement{column: col, hasCol: true}
}

// AlignedTo places the caret at col, nudged by at most one column toward
// the horizontal offset left the caret had on the line focus came from.
func AlignedTo(col, left int) Placement {
	return Placement{column: col, hasCol: true, left: left, hasLeft: true}
}

// ModeSwitcher swaps lines between Rendered and Editing and owns the single
// editing Field.
type ModeSwitcher struct {
	doc    *Document
	linker Linker
	layout Layout
	fitter HeightFitter
	queue  *Queue
	save   func()
	log    zerolog.Logger

	field *Field
}

// Field returns the field of the editing line, or nil.
func (s *ModeSwitcher) Field() *Field {
	return s.field
}

// EnterEdit makes id the editing line. Any other editing line is committed
// first. The caret is placed on the deferred queue, once the field exists.
// Unknown lines are ignored and nil is returned.
func (s *ModeSwitcher) EnterEdit(id LineID, at Placement) *Field {
	line, ok := s.doc.Line(id)
	if !ok {
		return nil
	}

	if active, ok := s.doc.ActiveEditID(); ok && active != id {
		s.ExitEdit(active)
	}

	if line.Mode != Editing {
		line.Mode = Editing
		s.field = newField(id, s.linker.Delinkify(line.Markup))
		s.doc.activeEdit = id
		s.fitter.FitHeight(s.field)
		s.log.Debug().Int("line", int(id)).Msg("enter edit")
	}

	field := s.field
	s.queue.Defer(func() {
		if active, _ := s.doc.ActiveEditID(); active != id || s.field != field {
			return
		}
		field.SetCaret(s.resolveCaret(field.Text(), at))
	})

	return field
}

func (s *ModeSwitcher) resolveCaret(text string, at Placement) int {
	length := len([]rune(text))

	if !at.hasCol {
		return trimmedLen(text)
	}

	col := max(0, min(at.column, length))
	if !at.hasLeft {
		return col
	}

	measure := func(c int) int { return s.layout.CaretOffset(text, c) }
	offset := Align(at.left, col, measure(col), measure)
	return max(0, min(col+offset, length))
}

// ExitEdit commits the editing text of id, renders it and asks for a save.
// It reports false and does nothing when id is not editing.
func (s *ModeSwitcher) ExitEdit(id LineID) bool {
	line, ok := s.doc.Line(id)
	if !ok || line.Mode != Editing {
		return false
	}

	if s.field != nil && s.field.LineID == id {
		line.Content = s.field.Text()
		s.field = nil
	}
	line.Markup = s.linker.Linkify(line.Content)
	line.Mode = Rendered
	if active, _ := s.doc.ActiveEditID(); active == id {
		s.doc.activeEdit = 0
	}

	s.log.Debug().Int("line", int(id)).Msg("exit edit")
	s.save()
	return true
}
