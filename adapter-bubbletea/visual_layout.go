package adapter_bubbletea

import (
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/ionut-t/blockwiki/core"
	"github.com/ionut-t/blockwiki/layout"
)

const gutterWidth = 2

// visualRow is a single screen row of the page after wrapping.
type visualRow struct {
	line  core.LineID
	mode  core.LineMode
	start int    // Column of the first rune of the row within its line
	text  []rune // Runes shown on the row
	caret int    // Caret column within the row, -1 when the caret is elsewhere
}

// buildRows lays out every line of the document. The editing line gets at
// least as many rows as the fitted height of its field.
func (m *Model) buildRows() []visualRow {
	var rows []visualRow

	field := m.editor.Field()
	for _, line := range m.editor.GetDocument().Lines() {
		text := line.Text()
		height := 1
		caret := -1
		if field != nil && field.LineID == line.ID {
			text = field.Text()
			height = field.Height
			caret = field.Caret()
		}

		runes := []rune(text)
		lengths := m.layout.WrappedRows(text)
		caretRow, _ := layout.RowOf(lengths, caret)

		start := 0
		for i := 0; i < max(len(lengths), height); i++ {
			length := 0
			if i < len(lengths) {
				length = lengths[i]
			}

			row := visualRow{
				line:  line.ID,
				mode:  line.Mode,
				start: start,
				text:  runes[start : start+length],
				caret: -1,
			}
			if caret >= 0 && i == caretRow {
				row.caret = caret - start
			}

			rows = append(rows, row)
			start += length
		}
	}

	return rows
}

// renderRows turns the visual rows into styled screen lines.
func (m *Model) renderRows(rows []visualRow) []string {
	lines := make([]string, 0, len(rows))

	var linkCols map[core.LineID][]bool
	var tokens map[core.LineID][]chroma.TokenType

	for _, row := range rows {
		gutter := strings.Repeat(" ", gutterWidth)
		if row.mode == core.Editing {
			gutter = m.theme.ActiveGutterStyle.Render("▌") + " "
		}

		var content string
		if row.mode == core.Editing {
			content = m.renderEditingRow(row)
		} else {
			if linkCols == nil {
				linkCols = make(map[core.LineID][]bool)
				tokens = make(map[core.LineID][]chroma.TokenType)
			}
			if _, ok := linkCols[row.line]; !ok {
				line, _ := m.editor.GetDocument().Line(row.line)
				linkCols[row.line] = linkColumns(line)
				tokens[row.line] = m.highlighter.TokenTypes(line.Text())
			}
			content = m.renderRenderedRow(row, linkCols[row.line], tokens[row.line])
		}

		lines = append(lines, gutter+content)
	}

	return lines
}

// linkColumns flags every column of line that belongs to a link span.
func linkColumns(line *core.Line) []bool {
	cols := make([]bool, 0, len(line.Content))
	for _, span := range line.Markup {
		for range span.Text {
			cols = append(cols, span.Link)
		}
	}
	return cols
}

type runStyle struct {
	token chroma.TokenType
	link  bool
}

func (m *Model) renderRenderedRow(row visualRow, links []bool, tokens []chroma.TokenType) string {
	var b strings.Builder
	var run strings.Builder
	var current runStyle
	used := 0

	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := m.highlighter.StyleFor(current.token)
		if current.link {
			style = m.theme.LinkStyle
		}
		b.WriteString(style.Render(run.String()))
		run.Reset()
	}

	for i, r := range row.text {
		cell, w := m.cell(r)
		if used+w > m.layout.Width() && m.layout.Width() > 0 {
			break
		}
		used += w

		col := row.start + i
		next := runStyle{token: chroma.Text}
		if col < len(tokens) {
			next.token = tokens[col]
		}
		if col < len(links) {
			next.link = links[col]
		}
		if next != current {
			flush()
			current = next
		}
		run.WriteString(cell)
	}
	flush()

	return b.String()
}

func (m *Model) renderEditingRow(row visualRow) string {
	var b strings.Builder
	used := 0
	width := m.layout.Width()

	field := m.editor.Field()
	selStart, selEnd := 0, 0
	if field != nil {
		selStart, selEnd = field.Selection()
		if selStart > selEnd {
			selStart, selEnd = selEnd, selStart
		}
	}

	caretDrawn := false
	for i, r := range row.text {
		cell, w := m.cell(r)
		if width > 0 && used+w > width {
			break
		}
		used += w

		col := row.start + i
		switch {
		case i == row.caret && m.isFocused:
			b.WriteString(m.theme.CursorStyle.Render(cell))
			caretDrawn = true
		case col >= selStart && col < selEnd:
			b.WriteString(m.theme.SelectionStyle.Render(cell))
		default:
			b.WriteString(m.theme.FieldStyle.Render(cell))
		}
	}

	if row.caret >= 0 && !caretDrawn && m.isFocused {
		b.WriteString(m.theme.CursorStyle.Render(" "))
	}

	return b.String()
}

// cell is the printable form of r and its width.
func (m *Model) cell(r rune) (string, int) {
	w := m.layout.StringWidth(string(r))
	if r == '\t' {
		return strings.Repeat(" ", w), w
	}
	return string(r), w
}

// columnAtCell maps a cell offset within a row to the column of the rune
// drawn there, or to the end of the row.
func (m *Model) columnAtCell(text []rune, cell int) int {
	used := 0
	for i, r := range text {
		w := m.layout.StringWidth(string(r))
		if cell < used+w {
			return i
		}
		used += w
	}
	return len(text)
}

// targetAt classifies a press at screen position x, y.
func (m *Model) targetAt(x, y int) core.Target {
	index := y + m.viewport.YOffset
	if y < 0 || y >= m.viewport.Height || index >= len(m.rows) {
		return core.EmptyTarget{}
	}

	row := m.rows[index]
	col := row.start + m.columnAtCell(row.text, max(0, x-gutterWidth))

	if row.mode == core.Editing {
		return core.EditingTarget{Line: row.line, Column: col}
	}

	line, ok := m.editor.GetDocument().Line(row.line)
	if !ok {
		return core.EmptyTarget{}
	}
	if x >= gutterWidth && col < row.start+len(row.text) {
		if span, _, ok := line.Markup.SpanAt(col); ok && span.Link {
			return core.LinkTarget{Line: row.line, Text: span.Text}
		}
	}

	return core.RenderedTarget{Line: row.line}
}

// render lays out the page into the viewport.
func (m *Model) render() {
	m.viewport.Height = max(1, m.bodyHeight-m.dialogHeight())

	m.rows = m.buildRows()
	lines := m.renderRows(m.rows)
	m.viewport.SetContent(strings.Join(lines, "\n"))
}
