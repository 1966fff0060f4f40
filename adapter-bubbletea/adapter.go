package adapter_bubbletea

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/ionut-t/blockwiki/core"
)

type Theme struct {
	ViewModeStyle       lipgloss.Style
	EditModeStyle       lipgloss.Style
	StatusLineStyle     lipgloss.Style
	MessageStyle        lipgloss.Style
	ErrorStyle          lipgloss.Style
	ActiveGutterStyle   lipgloss.Style
	FieldStyle          lipgloss.Style
	CursorStyle         lipgloss.Style
	SelectionStyle      lipgloss.Style
	LinkStyle           lipgloss.Style
	DialogStyle         lipgloss.Style
	DialogTitleStyle    lipgloss.Style
	DialogItemStyle     lipgloss.Style
	DialogSelectedStyle lipgloss.Style
}

var DefaultTheme = Theme{
	ViewModeStyle:       lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	EditModeStyle:       lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:     lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("34")),
	ErrorStyle:          lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("208")),
	ActiveGutterStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("26")),
	FieldStyle:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	CursorStyle:         lipgloss.NewStyle().Reverse(true),
	SelectionStyle:      lipgloss.NewStyle().Background(lipgloss.Color("237")),
	LinkStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
	DialogStyle:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	DialogTitleStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	DialogItemStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	DialogSelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
}

// KeyMap holds the bindings handled by the adapter itself. Everything else
// goes to the editing line.
type KeyMap struct {
	Start          key.Binding
	Blur           key.Binding
	Back           key.Binding
	Copy           key.Binding
	Paste          key.Binding
	Accept         key.Binding
	Cancel         key.Binding
	NextSuggestion key.Binding
	PrevSuggestion key.Binding
}

var DefaultKeyMap = KeyMap{
	Start:          key.NewBinding(key.WithKeys("enter", "down"), key.WithHelp("enter", "edit first line")),
	Blur:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing")),
	Back:           key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "previous page")),
	Copy:           key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
	Paste:          key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	Accept:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "insert link")),
	Cancel:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close suggestions")),
	NextSuggestion: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next suggestion")),
	PrevSuggestion: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous suggestion")),
}

// SaveMsg asks the consumer to persist Lines as the content of Page.
type SaveMsg struct {
	Page  string
	Lines []string
}

// LoadMsg asks the consumer to open Title and hand it back with SetPage.
type LoadMsg struct {
	Title string
}

type ErrorMsg struct {
	ID    core.ErrorId
	Error error
}

type CopyMsg struct {
	Content string
}

type clearMsg struct{}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

// heightFitter sizes the editing field to its wrapped rows.
type heightFitter struct {
	layout  core.Layout
	minRows int
}

func (h *heightFitter) FitHeight(f *core.Field) {
	f.Height = max(h.minRows, len(h.layout.WrappedRows(f.Text())))
}
