package adapter_bubbletea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ionut-t/blockwiki/adapter-bubbletea/highlighter"
	"github.com/ionut-t/blockwiki/core"
	"github.com/ionut-t/blockwiki/layout"
)

const defaultMessageDuration = 3 * time.Second

type Model struct {
	editor          core.Editor
	layout          *layout.Layout
	fitter          *heightFitter
	viewport        viewport.Model
	highlighter     *highlighter.Highlighter
	keys            KeyMap
	theme           Theme
	width           int
	height          int
	bodyHeight      int
	showStatusLine  bool
	isFocused       bool
	page            string
	history         []string
	returning       bool // The next load goes back in history
	dialog          *linkDialog
	rows            []visualRow
	err             error
	message         string
	messageDuration time.Duration
	clearMsgCancel  context.CancelFunc
}

// New creates a page model of the given size. The options are passed on to
// the core editor after the adapter's own layout, height fitter and
// clipboard, so they can replace any of them.
func New(width, height int, opts ...core.Option) Model {
	l := layout.New(0)
	fitter := &heightFitter{layout: l, minRows: 1}

	coreOpts := []core.Option{
		core.WithLayout(l),
		core.WithHeightFitter(fitter),
		core.WithClipboard(&clipboardImpl{}),
	}

	vp := viewport.New(width, height-1)
	vp.MouseWheelEnabled = true

	m := Model{
		editor:          core.New(append(coreOpts, opts...)...),
		layout:          l,
		fitter:          fitter,
		viewport:        vp,
		highlighter:     highlighter.New("markdown", "monokai"),
		keys:            DefaultKeyMap,
		theme:           DefaultTheme,
		showStatusLine:  true,
		isFocused:       true,
		dialog:          &linkDialog{},
		messageDuration: defaultMessageDuration,
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) dispatchClearMsg() tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.messageDuration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

// SetSize resizes the page. One cell after the gutter is kept free for a
// caret sitting at the end of a full row.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	m.bodyHeight = height
	if m.showStatusLine {
		m.bodyHeight--
	}
	m.bodyHeight = max(1, m.bodyHeight)

	m.viewport.Width = width
	m.layout.SetWidth(max(1, width-gutterWidth-1))

	if f := m.editor.Field(); f != nil {
		m.fitter.FitHeight(f)
	}

	m.render()
}

// SetPage replaces the open page. Nothing is editing afterwards.
func (m *Model) SetPage(title string, lines []string) {
	m.page = title
	m.editor.SetLines(lines)

	state := m.editor.GetState()
	state.Page = title
	m.editor.SetState(state)

	if m.dialog.open {
		m.closeDialog()
	}

	m.viewport.GotoTop()
	m.render()
}

// Reload replaces the content of the open page unless a line is being edited
// or nothing changed. It reports whether the page was replaced.
func (m *Model) Reload(lines []string) bool {
	if _, editing := m.editor.ActiveEditID(); editing {
		return false
	}
	if strings.Join(lines, "\n") == strings.Join(m.editor.Lines(), "\n") {
		return false
	}

	offset := m.viewport.YOffset
	m.editor.SetLines(lines)
	m.render()
	m.viewport.SetYOffset(offset)

	return true
}

// SetSuggestions sets the page titles offered while typing a link.
func (m *Model) SetSuggestions(titles []string) {
	m.dialog.setTitles(titles)
	m.refreshDialog()
}

// SetHighlightTheme switches the chroma style of rendered lines.
func (m *Model) SetHighlightTheme(theme string) {
	m.highlighter = highlighter.New("markdown", theme)
	m.render()
}

func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

func (m *Model) WithKeyMap(keys KeyMap) {
	m.keys = keys
}

// SetMessageDuration sets how long status messages stay visible.
func (m *Model) SetMessageDuration(d time.Duration) {
	m.messageDuration = d
}

func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
	m.SetSize(m.width, m.height)
}

// DispatchMessage shows message in the status line for a while.
func (m *Model) DispatchMessage(message string) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg()
}

// DispatchError shows err in the status line for a while.
func (m *Model) DispatchError(err error) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg()
}

func (m *Model) Page() string {
	return m.page
}

// History returns the pages visited before the open one, oldest first.
func (m *Model) History() []string {
	return append([]string(nil), m.history...)
}

func (m *Model) GetEditor() core.Editor {
	return m.editor
}

// IsEditing reports whether a line is being edited.
func (m *Model) IsEditing() bool {
	_, ok := m.editor.ActiveEditID()
	return ok
}

func (m *Model) Focus() {
	m.isFocused = true
}

// Blur stops taking input. The editing line is committed.
func (m *Model) Blur() {
	m.isFocused = false
	m.editor.Blur()
}

func (m *Model) IsFocused() bool {
	return m.isFocused
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	follow := false

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.isFocused {
			break
		}
		cmds = append(cmds, m.handleKey(msg))
		follow = true

	case tea.MouseMsg:
		if !m.isFocused {
			break
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.editor.HandleClick(m.targetAt(msg.X, msg.Y))
			follow = true
			break
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case tea.BlurMsg:
		m.editor.Blur()

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil
	}

	cmds = append(cmds, m.pumpSignals())

	m.refreshDialog()
	m.render()
	if follow {
		m.scrollToCursor()
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.dialogVisible() {
		switch {
		case key.Matches(msg, m.keys.Accept):
			m.acceptSuggestion()
			return nil
		case key.Matches(msg, m.keys.Cancel):
			m.closeDialog()
			return nil
		case key.Matches(msg, m.keys.NextSuggestion):
			m.dialog.next()
			return nil
		case key.Matches(msg, m.keys.PrevSuggestion):
			m.dialog.prev()
			return nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		return nil
	case key.Matches(msg, m.keys.Copy):
		if err := m.editor.Copy(); err != nil {
			return m.DispatchError(err)
		}
		return nil
	case key.Matches(msg, m.keys.Paste):
		if err := m.editor.Paste(); err != nil {
			return m.DispatchError(err)
		}
		return nil
	}

	if m.editor.Field() == nil {
		if key.Matches(msg, m.keys.Start) {
			if first, ok := m.editor.GetDocument().At(0); ok {
				_ = m.editor.Focus(first.ID)
			}
		}
		return nil
	}

	if key.Matches(msg, m.keys.Blur) {
		m.editor.Blur()
		return nil
	}

	// Bracketed paste arrives as a single message holding every rune.
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		_ = m.editor.InsertText(string(msg.Runes))
		return nil
	}

	m.editor.HandleKey(convertBubbleKey(msg))
	return nil
}

// back reopens the previous page. The editing line is committed first so its
// save is emitted before the load.
func (m *Model) back() {
	if len(m.history) == 0 {
		return
	}

	title := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.returning = true

	m.editor.Blur()
	m.editor.Load(title)
}

// pumpSignals drains the editor's signal channel without blocking and turns
// the signals into messages for the consumer, delivered in order.
func (m *Model) pumpSignals() tea.Cmd {
	var cmds []tea.Cmd

	ch := m.editor.GetUpdateSignalChan()
	for {
		select {
		case signal := <-ch:
			if cmd := m.handleSignal(signal); cmd != nil {
				cmds = append(cmds, cmd)
			}
		default:
			if len(cmds) == 0 {
				return nil
			}
			return tea.Sequence(cmds...)
		}
	}
}

func (m *Model) handleSignal(signal core.Signal) tea.Cmd {
	switch signal := signal.(type) {
	case core.SaveSignal:
		msg := SaveMsg{Page: m.page, Lines: signal.Value()}
		return func() tea.Msg { return msg }

	case core.LoadSignal:
		if m.returning {
			m.returning = false
		} else if m.page != "" {
			m.history = append(m.history, m.page)
		}
		msg := LoadMsg{Title: signal.Value()}
		return func() tea.Msg { return msg }

	case core.DialogSignal:
		if signal.Value() {
			m.openDialog()
		} else {
			m.dialog.open = false
			m.dialog.items = nil
		}

	case core.CopySignal:
		msg := CopyMsg{Content: signal.Value()}
		return func() tea.Msg { return msg }

	case core.MessageSignal:
		_, message := signal.Value()
		if message != "" {
			return m.DispatchMessage(message)
		}

	case core.ErrorSignal:
		id, err := signal.Value()
		msg := ErrorMsg{ID: id, Error: err}
		return tea.Batch(m.DispatchError(err), func() tea.Msg { return msg })
	}

	return nil
}

// scrollToCursor moves the viewport so the caret row is visible.
func (m *Model) scrollToCursor() {
	cursorRow := -1
	for i, row := range m.rows {
		if row.caret >= 0 {
			cursorRow = i
			break
		}
	}
	if cursorRow < 0 {
		return
	}

	if cursorRow < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorRow)
	} else if cursorRow >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorRow - m.viewport.Height + 1)
	}
}

func (m Model) View() string {
	parts := []string{m.viewport.View()}

	if m.dialogVisible() {
		parts = append(parts, m.dialogView())
	}

	if m.showStatusLine {
		parts = append(parts, m.statusLine())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) statusLine() string {
	mode := m.theme.ViewModeStyle.Render(" VIEW ")
	if m.IsEditing() {
		mode = m.theme.EditModeStyle.Render(" EDIT ")
	}

	page := m.page
	if page == "" {
		page = "[no page]"
	}
	statusLine := mode + m.theme.StatusLineStyle.Render(" "+page+" ")

	if m.err != nil {
		statusLine += m.theme.ErrorStyle.Render(" " + m.err.Error())
	} else if m.message != "" {
		statusLine += m.theme.MessageStyle.Render(" " + m.message)
	}

	position := fmt.Sprintf("%d lines ", m.editor.GetDocument().Len())
	if id, ok := m.editor.ActiveEditID(); ok {
		position = fmt.Sprintf("%d/%d ", m.editor.GetDocument().Index(id)+1, m.editor.GetDocument().Len())
	}

	gap := m.width - lipgloss.Width(statusLine) - lipgloss.Width(position)
	statusLine += m.theme.StatusLineStyle.Render(strings.Repeat(" ", max(0, gap)) + position)

	return statusLine
}

// Convert Bubbletea key to core.KeyEvent
func convertBubbleKey(msg tea.KeyMsg) core.KeyEvent {
	key := core.KeyEvent{}

	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		key.Rune = msg.Runes[0]
	}

	if msg.Alt {
		key.Modifiers |= core.ModAlt
	}

	switch msg.Type {
	case tea.KeyEnter:
		key.Key = core.KeyEnter
	case tea.KeySpace:
		key.Key = core.KeySpace
		key.Rune = ' '
	case tea.KeyEsc:
		key.Key = core.KeyEscape
	case tea.KeyBackspace:
		key.Key = core.KeyBackspace
	case tea.KeyTab:
		key.Key = core.KeyTab
		key.Rune = '\t'
	case tea.KeyUp:
		key.Key = core.KeyUp
	case tea.KeyDown:
		key.Key = core.KeyDown
	case tea.KeyLeft:
		key.Key = core.KeyLeft
	case tea.KeyRight:
		key.Key = core.KeyRight
	case tea.KeyHome:
		key.Key = core.KeyHome
	case tea.KeyEnd:
		key.Key = core.KeyEnd
	case tea.KeyDelete:
		key.Key = core.KeyDelete
	case tea.KeyShiftUp:
		key.Key = core.KeyUp
		key.Modifiers |= core.ModShift
	case tea.KeyShiftDown:
		key.Key = core.KeyDown
		key.Modifiers |= core.ModShift
	case tea.KeyShiftLeft:
		key.Key = core.KeyLeft
		key.Modifiers |= core.ModShift
	case tea.KeyShiftRight:
		key.Key = core.KeyRight
		key.Modifiers |= core.ModShift
	case tea.KeyShiftHome:
		key.Key = core.KeyHome
		key.Modifiers |= core.ModShift
	case tea.KeyShiftEnd:
		key.Key = core.KeyEnd
		key.Modifiers |= core.ModShift
	case tea.KeyRunes:
	default:
		if strings.HasPrefix(msg.String(), "ctrl+") {
			key.Modifiers |= core.ModCtrl
		}
	}

	return key
}
