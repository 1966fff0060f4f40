// Package layout measures lines the way a terminal displays them: word
// wrapped rows and caret offsets in display cells.
package layout

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// Layout wraps text at a fixed cell width. A zero width disables wrapping.
type Layout struct {
	width    int
	tabWidth int
}

func New(width int) *Layout {
	return &Layout{width: width, tabWidth: DefaultTabWidth}
}

func (l *Layout) Width() int { return l.width }

func (l *Layout) SetWidth(width int) {
	l.width = max(width, 0)
}

// WrappedRows returns the rune length of each visual row of text. Whitespace
// at a break stays at the end of the row it follows, so the lengths always
// add up to the rune count of text. An empty text has a single empty row.
func (l *Layout) WrappedRows(text string) []int {
	runes := []rune(text)
	if len(runes) == 0 || l.width <= 0 {
		return []int{len(runes)}
	}

	var rows []int
	start, used := 0, 0

	for i := 0; i < len(runes); {
		if unicode.IsSpace(runes[i]) {
			used += l.runeWidth(runes[i])
			i++
			continue
		}

		end, wordWidth := i, 0
		for end < len(runes) && !unicode.IsSpace(runes[end]) {
			wordWidth += l.runeWidth(runes[end])
			end++
		}

		if used+wordWidth <= l.width {
			used += wordWidth
			i = end
			continue
		}

		if i > start {
			rows = append(rows, i-start)
			start, used = i, 0
			continue
		}

		// The word alone is wider than a row: break it by cells.
		for ; i < end; i++ {
			w := l.runeWidth(runes[i])
			if used+w > l.width && i > start {
				rows = append(rows, i-start)
				start, used = i, 0
			}
			used += w
		}
	}

	return append(rows, len(runes)-start)
}

// CaretOffset is the horizontal cell offset of a caret placed before rune
// column col, measured from the start of the visual row holding it. Columns
// outside the text are clamped.
func (l *Layout) CaretOffset(text string, col int) int {
	runes := []rune(text)
	col = max(0, min(col, len(runes)))

	_, rowStart := RowOf(l.WrappedRows(text), col)
	return l.StringWidth(string(runes[rowStart:col]))
}

// StringWidth is the display width of s in cells.
func (l *Layout) StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += l.runeWidth(r)
	}
	return w
}

func (l *Layout) runeWidth(r rune) int {
	if r == '\t' {
		return l.tabWidth
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		w = uniseg.StringWidth(string(r))
	}
	return w
}

// RowOf finds the wrap row holding a caret at col and the column that row
// starts at. A caret at the boundary between two rows belongs to the later
// one; past the end it belongs to the last row.
func RowOf(rows []int, col int) (row, rowStart int) {
	for i, n := range rows {
		if col < rowStart+n || i == len(rows)-1 {
			return i, rowStart
		}
		rowStart += n
	}
	return 0, 0
}
