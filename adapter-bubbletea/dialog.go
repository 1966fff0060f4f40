package adapter_bubbletea

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxSuggestions = 5

// linkDialog lists page titles matching the link being typed.
type linkDialog struct {
	open     bool
	query    string
	titles   []string
	items    []string
	selected int
}

// filter keeps the titles containing query, prefix matches first.
func (d *linkDialog) filter(query string) {
	d.query = query
	q := strings.ToLower(query)

	var prefix, contains []string
	for _, title := range d.titles {
		t := strings.ToLower(title)
		switch {
		case strings.HasPrefix(t, q):
			prefix = append(prefix, title)
		case strings.Contains(t, q):
			contains = append(contains, title)
		}
	}

	d.items = append(prefix, contains...)
	if len(d.items) > maxSuggestions {
		d.items = d.items[:maxSuggestions]
	}
	d.selected = max(0, min(d.selected, len(d.items)-1))
}

func (d *linkDialog) next() {
	if len(d.items) > 0 {
		d.selected = (d.selected + 1) % len(d.items)
	}
}

func (d *linkDialog) prev() {
	if len(d.items) > 0 {
		d.selected = (d.selected - 1 + len(d.items)) % len(d.items)
	}
}

// choice is the selected title, or the query itself when nothing matches.
func (d *linkDialog) choice() string {
	if len(d.items) == 0 {
		return strings.TrimSpace(d.query)
	}
	return d.items[d.selected]
}

func (d *linkDialog) setTitles(titles []string) {
	d.titles = append([]string(nil), titles...)
	sort.Strings(d.titles)
}

// dialogHeight is the number of rows the dialog takes below the page.
func (m *Model) dialogHeight() int {
	if !m.dialogVisible() {
		return 0
	}
	return lipgloss.Height(m.dialogView())
}

func (m *Model) dialogVisible() bool {
	return m.dialog.open && m.editor.Field() != nil
}

func (m *Model) dialogView() string {
	var b strings.Builder
	b.WriteString(m.theme.DialogTitleStyle.Render("[[" + m.dialog.query))

	if len(m.dialog.items) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.DialogItemStyle.Render("new page"))
	}
	for i, item := range m.dialog.items {
		b.WriteString("\n")
		if i == m.dialog.selected {
			b.WriteString(m.theme.DialogSelectedStyle.Render(item))
		} else {
			b.WriteString(m.theme.DialogItemStyle.Render(item))
		}
	}

	return m.theme.DialogStyle.Render(b.String())
}

// refreshDialog re-filters the suggestions against the link being typed.
func (m *Model) refreshDialog() {
	if !m.dialog.open {
		return
	}
	query, _ := m.editor.LinkQuery()
	m.dialog.filter(query)
}

func (m *Model) openDialog() {
	m.dialog.open = true
	m.dialog.selected = 0
	m.refreshDialog()
}

// closeDialog hides the dialog and returns the autocomplete trigger to idle.
func (m *Model) closeDialog() {
	m.dialog.open = false
	m.dialog.items = nil
	m.editor.ResetAutocomplete()
}

// acceptSuggestion completes the link in progress with the chosen title.
func (m *Model) acceptSuggestion() {
	title := m.dialog.choice()
	if title != "" {
		if err := m.editor.CompleteLink(title); err != nil {
			m.err = err
		}
	}
	m.closeDialog()
}
