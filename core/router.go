package core

import (
	"github.com/ionut-t/blockwiki/markup"
)

// InputRouter dispatches key presses on the editing line.
type InputRouter struct {
	doc          *Document
	linker       Linker
	switcher     *ModeSwitcher
	navigator    *Navigator
	autocomplete *Autocomplete
}

// Route runs the synchronous part of handling key and reports whether the
// key's default effect must be suppressed.
func (r *InputRouter) Route(key KeyEvent) bool {
	field := r.switcher.Field()
	if field == nil {
		return false
	}

	class, dir := Classify(key)
	switch class {
	case ClassEnter:
		r.splitLine(field)
		return true
	case ClassOpenBracket:
		r.autocomplete.Trigger()
	case ClassArrow:
		r.navigator.Schedule(field.LineID, dir, r.navigator.captureCaret(field))
	}
	return false
}

// splitLine commits the text before the caret and continues editing the rest
// on a new line below.
func (r *InputRouter) splitLine(field *Field) {
	id := field.LineID
	tail := field.splitAtSelection()

	// The new line exists before the commit so the save holds both halves.
	line := r.doc.InsertAfter(id, tail, r.linker)
	r.switcher.ExitEdit(id)
	r.switcher.EnterEdit(line.ID, AtColumn(0))
}

// Target is what a mouse press landed on.
type Target interface {
	isTarget()
}

// RenderedTarget is a rendered line outside any link.
type RenderedTarget struct {
	Line LineID
}

// LinkTarget is a link inside a rendered line. Text includes the delimiters.
type LinkTarget struct {
	Line LineID
	Text string
}

// EditingTarget is a column of the editing line.
type EditingTarget struct {
	Line   LineID
	Column int
}

// EmptyTarget is anywhere outside the lines.
type EmptyTarget struct{}

func (RenderedTarget) isTarget() {}
func (LinkTarget) isTarget()     {}
func (EditingTarget) isTarget()  {}
func (EmptyTarget) isTarget()    {}

// ClickRouter hands each kind of target to the one handler registered for it.
type ClickRouter struct {
	OnRendered func(RenderedTarget)
	OnLink     func(LinkTarget)
	OnEditing  func(EditingTarget)
	OnEmpty    func(EmptyTarget)
}

func (c *ClickRouter) Route(t Target) {
	switch t := t.(type) {
	case LinkTarget:
		if c.OnLink != nil {
			c.OnLink(t)
		}
	case RenderedTarget:
		if c.OnRendered != nil {
			c.OnRendered(t)
		}
	case EditingTarget:
		if c.OnEditing != nil {
			c.OnEditing(t)
		}
	case EmptyTarget:
		if c.OnEmpty != nil {
			c.OnEmpty(t)
		}
	}
}

// linkTitle returns the page a link points to.
func linkTitle(t LinkTarget) string {
	return markup.LinkTarget(t.Text)
}
