package core

import (
	"strings"

	"github.com/ionut-t/blockwiki/layout"
	"github.com/ionut-t/blockwiki/markup"
)

// Field is the editable representation of the line being edited: its raw
// text and the selection. The caret is the end of the selection.
type Field struct {
	LineID LineID
	Height int // Rows the field is sized to, set by the HeightFitter

	text     []rune
	selStart int
	selEnd   int
}

func newField(id LineID, text string) *Field {
	f := &Field{LineID: id, text: []rune(text)}
	f.SetCaret(len(f.text))
	return f
}

func (f *Field) Text() string {
	return string(f.text)
}

func (f *Field) Len() int {
	return len(f.text)
}

// Caret returns the caret column.
func (f *Field) Caret() int {
	return f.selEnd
}

// Selection returns the selection bounds in the order they were made.
func (f *Field) Selection() (start, end int) {
	return f.selStart, f.selEnd
}

// SelectedText returns the selected runes, or "" when the selection is
// collapsed.
func (f *Field) SelectedText() string {
	lo, hi := f.orderedSelection()
	return string(f.text[lo:hi])
}

// SetCaret collapses the selection at col, clamped to the text.
func (f *Field) SetCaret(col int) {
	col = f.clamp(col)
	f.selStart, f.selEnd = col, col
}

// Select sets the selection, clamped to the text.
func (f *Field) Select(start, end int) {
	f.selStart, f.selEnd = f.clamp(start), f.clamp(end)
}

// Insert replaces the selection with s and leaves the caret after it.
func (f *Field) Insert(s string) {
	lo, hi := f.orderedSelection()
	f.replace(lo, hi, s)
}

func (f *Field) replace(lo, hi int, s string) {
	ins := []rune(s)
	text := make([]rune, 0, len(f.text)-(hi-lo)+len(ins))
	text = append(text, f.text[:lo]...)
	text = append(text, ins...)
	text = append(text, f.text[hi:]...)
	f.text = text
	f.SetCaret(lo + len(ins))
}

// splitAtSelection cuts the text around the selection: the field keeps what
// is before it and the part after it is returned.
func (f *Field) splitAtSelection() string {
	lo, hi := f.orderedSelection()
	tail := string(f.text[hi:])
	f.text = f.text[:lo:lo]
	f.SetCaret(lo)
	return tail
}

func (f *Field) orderedSelection() (int, int) {
	return min(f.selStart, f.selEnd), max(f.selStart, f.selEnd)
}

func (f *Field) clamp(col int) int {
	return max(0, min(col, len(f.text)))
}

// applyDefault performs the effect a plain text field gives key on its own:
// editing, and caret movement that never leaves the field. Up on the first
// wrap row goes to column 0 and Down on the last row goes to the end.
func (f *Field) applyDefault(key KeyEvent, l Layout) {
	if key.Modifiers&(ModCtrl|ModAlt) != 0 {
		return
	}

	extend := key.Modifiers&ModShift != 0
	lo, hi := f.orderedSelection()
	collapsed := lo == hi

	switch key.Key {
	case KeyLeft:
		switch {
		case extend:
			f.moveTo(f.selEnd-1, true)
		case !collapsed:
			f.SetCaret(lo)
		default:
			f.SetCaret(f.selEnd - 1)
		}

	case KeyRight:
		switch {
		case extend:
			f.moveTo(f.selEnd+1, true)
		case !collapsed:
			f.SetCaret(hi)
		default:
			f.SetCaret(f.selEnd + 1)
		}

	case KeyUp:
		f.moveTo(f.verticalTarget(l, -1), extend)

	case KeyDown:
		f.moveTo(f.verticalTarget(l, 1), extend)

	case KeyHome:
		f.moveTo(0, extend)

	case KeyEnd:
		f.moveTo(len(f.text), extend)

	case KeyBackspace:
		if !collapsed {
			f.Insert("")
		} else if f.selEnd > 0 {
			f.replace(f.selEnd-1, f.selEnd, "")
		}

	case KeyDelete:
		if !collapsed {
			f.Insert("")
		} else if f.selEnd < len(f.text) {
			f.replace(f.selEnd, f.selEnd+1, "")
		}

	case KeySpace:
		f.Insert(" ")

	default:
		if key.Rune != 0 && key.Rune != '\n' {
			f.Insert(string(key.Rune))
		}
	}
}

func (f *Field) moveTo(col int, extend bool) {
	if extend {
		f.selEnd = f.clamp(col)
		return
	}
	f.SetCaret(col)
}

// verticalTarget finds the column on the neighboring wrap row closest to the
// caret's horizontal cell offset.
func (f *Field) verticalTarget(l Layout, step int) int {
	text := string(f.text)
	rows := l.WrappedRows(text)
	row, _ := layout.RowOf(rows, f.selEnd)

	target := row + step
	if target < 0 {
		return 0
	}
	if target >= len(rows) {
		return len(f.text)
	}

	x := l.CaretOffset(text, f.selEnd)

	start := 0
	for _, n := range rows[:target] {
		start += n
	}
	end := start + rows[target]
	if target < len(rows)-1 {
		// The boundary column belongs to the row below.
		end = max(start, end-1)
	}

	best, bestDiff := start, -1
	for col := start; col <= end; col++ {
		d := abs(l.CaretOffset(text, col) - x)
		if bestDiff < 0 || d < bestDiff {
			best, bestDiff = col, d
		}
	}
	return best
}

// linkQuery returns the text typed since the last '[' before the caret.
func (f *Field) linkQuery() (string, int, bool) {
	caret := f.selEnd
	open := strings.LastIndex(string(f.text[:caret]), "[")
	if open < 0 {
		return "", 0, false
	}
	start := len([]rune(string(f.text[:caret])[:open])) + 1
	query := string(f.text[start:caret])
	if strings.Contains(query, "]") {
		return "", 0, false
	}
	return query, start, true
}

// completeLink replaces the partial link before the caret, brackets
// included, with a complete link to title.
func (f *Field) completeLink(title string) bool {
	_, start, ok := f.linkQuery()
	if !ok {
		return false
	}
	open := start - 1
	for open > 0 && f.text[open-1] == '[' {
		open--
	}
	f.replace(open, f.selEnd, markup.OpenDelimiter+title+markup.CloseDelimiter)
	return true
}

func flattenLines(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
