package core

import (
	"strings"
	"unicode"

	"github.com/ionut-t/blockwiki/markup"
)

// LineID identifies a Line for its whole lifetime, independent of its
// position in the Document. Zero is never a valid ID.
type LineID int

// LineMode is the representation a Line is currently shown in.
type LineMode int

const (
	Rendered LineMode = iota // Static markup with links
	Editing                  // Raw editable text
)

func (m LineMode) String() string {
	if m == Editing {
		return "editing"
	}
	return "rendered"
}

// Line is one paragraph of a page.
type Line struct {
	ID      LineID
	Content string
	Markup  markup.Markup
	Mode    LineMode
}

// Text is the line's plain text as shown on screen.
func (l *Line) Text() string {
	return l.Markup.Text()
}

// Document is the ordered list of lines of the open page. At most one line
// is Editing; activeEdit names it.
type Document struct {
	lines      []*Line
	nextID     LineID
	activeEdit LineID
}

func NewDocument() *Document {
	return &Document{nextID: 1}
}

// Reset replaces every line. Lines start Rendered.
func (d *Document) Reset(contents []string, linker Linker) {
	d.lines = d.lines[:0]
	d.activeEdit = 0
	for _, content := range contents {
		d.lines = append(d.lines, d.newLine(content, linker))
	}
}

func (d *Document) newLine(content string, linker Linker) *Line {
	l := &Line{
		ID:      d.nextID,
		Content: content,
		Markup:  linker.Linkify(content),
		Mode:    Rendered,
	}
	d.nextID++
	return l
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Lines returns the lines in order. The slice is a copy; the lines are not.
func (d *Document) Lines() []*Line {
	out := make([]*Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Contents returns the plain text of every line.
func (d *Document) Contents() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.Content
	}
	return out
}

func (d *Document) Index(id LineID) int {
	for i, l := range d.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) Line(id LineID) (*Line, bool) {
	if i := d.Index(id); i >= 0 {
		return d.lines[i], true
	}
	return nil, false
}

// At returns the line at position i.
func (d *Document) At(i int) (*Line, bool) {
	if i < 0 || i >= len(d.lines) {
		return nil, false
	}
	return d.lines[i], true
}

// Prev returns the line above id.
func (d *Document) Prev(id LineID) (*Line, bool) {
	i := d.Index(id)
	if i < 0 {
		return nil, false
	}
	return d.At(i - 1)
}

// Next returns the line below id.
func (d *Document) Next(id LineID) (*Line, bool) {
	i := d.Index(id)
	if i < 0 {
		return nil, false
	}
	return d.At(i + 1)
}

// InsertAfter adds a Rendered line directly below id. If id is unknown the
// line is appended.
func (d *Document) InsertAfter(id LineID, content string, linker Linker) *Line {
	l := d.newLine(content, linker)

	i := d.Index(id)
	if i < 0 {
		d.lines = append(d.lines, l)
		return l
	}

	d.lines = append(d.lines, nil)
	copy(d.lines[i+2:], d.lines[i+1:])
	d.lines[i+1] = l
	return l
}

// ActiveEditID returns the line currently Editing, if any.
func (d *Document) ActiveEditID() (LineID, bool) {
	return d.activeEdit, d.activeEdit != 0
}

// EditingCount counts lines in Editing mode.
func (d *Document) EditingCount() int {
	n := 0
	for _, l := range d.lines {
		if l.Mode == Editing {
			n++
		}
	}
	return n
}

// trimmedLen is the column just after the last non-space rune of text.
func trimmedLen(text string) int {
	return len([]rune(strings.TrimRightFunc(text, unicode.IsSpace)))
}
