package core

import (
	"github.com/rs/zerolog"

	"github.com/ionut-t/blockwiki/layout"
	"github.com/ionut-t/blockwiki/markup"
)

// Concrete implementation of Editor
type editor struct {
	doc          *Document
	queue        *Queue
	switcher     *ModeSwitcher
	navigator    *Navigator
	autocomplete *Autocomplete
	input        *InputRouter
	clicks       *ClickRouter
	state        State

	linker    Linker
	layout    Layout
	fitter    HeightFitter
	clipboard Clipboard
	log       zerolog.Logger

	updateSignal chan Signal
}

// New creates an editor holding a single empty line.
func New(opts ...Option) Editor {
	e := &editor{
		doc:          NewDocument(),
		queue:        &Queue{},
		linker:       markup.Parser{},
		log:          zerolog.Nop(),
		updateSignal: make(chan Signal, 100),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.layout == nil {
		e.layout = layout.New(0)
	}
	if e.fitter == nil {
		e.fitter = rowFitter{layout: e.layout}
	}

	e.switcher = &ModeSwitcher{
		doc:    e.doc,
		linker: e.linker,
		layout: e.layout,
		fitter: e.fitter,
		queue:  e.queue,
		save:   e.Save,
		log:    e.log,
	}
	e.navigator = &Navigator{
		doc:      e.doc,
		switcher: e.switcher,
		layout:   e.layout,
		queue:    e.queue,
		log:      e.log,
	}
	e.autocomplete = NewAutocomplete(e.toggleDialog)
	e.input = &InputRouter{
		doc:          e.doc,
		linker:       e.linker,
		switcher:     e.switcher,
		navigator:    e.navigator,
		autocomplete: e.autocomplete,
	}
	e.clicks = &ClickRouter{
		OnRendered: e.clickRendered,
		OnLink:     e.clickLink,
		OnEditing:  e.clickEditing,
		OnEmpty:    func(EmptyTarget) { e.Blur() },
	}

	e.doc.Reset([]string{""}, e.linker)

	return e
}

func (e *editor) GetDocument() *Document {
	return e.doc
}

func (e *editor) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	e.switcher.field = nil
	e.doc.Reset(lines, e.linker)
}

func (e *editor) Lines() []string {
	lines := e.doc.Contents()
	if f := e.switcher.Field(); f != nil {
		if i := e.doc.Index(f.LineID); i >= 0 {
			lines[i] = f.Text()
		}
	}
	return lines
}

func (e *editor) Field() *Field {
	return e.switcher.Field()
}

func (e *editor) ActiveEditID() (LineID, bool) {
	return e.doc.ActiveEditID()
}

// HandleKey runs the synchronous routing for key, then the key's default
// effect on the field unless it was suppressed, then the deferred callbacks.
func (e *editor) HandleKey(key KeyEvent) {
	field := e.switcher.Field()
	if field == nil {
		return
	}

	if suppress := e.input.Route(key); !suppress {
		field.applyDefault(key, e.layout)
		if e.switcher.Field() == field {
			e.fitter.FitHeight(field)
		}
	}

	e.Flush()
}

func (e *editor) HandleClick(t Target) {
	e.clicks.Route(t)
	e.Flush()
}

func (e *editor) clickRendered(t RenderedTarget) {
	e.switcher.EnterEdit(t.Line, AtEnd())
}

func (e *editor) clickLink(t LinkTarget) {
	e.Blur()
	e.Load(linkTitle(t))
}

func (e *editor) clickEditing(t EditingTarget) {
	if f := e.switcher.Field(); f != nil && f.LineID == t.Line {
		f.SetCaret(t.Column)
	}
}

// Blur commits the editing line, if any.
func (e *editor) Blur() {
	if id, ok := e.doc.ActiveEditID(); ok {
		e.switcher.ExitEdit(id)
	}
}

func (e *editor) Focus(id LineID) error {
	if _, ok := e.doc.Line(id); !ok {
		return &Error{id: ErrUnknownLineId, err: ErrUnknownLine}
	}
	e.switcher.EnterEdit(id, AtEnd())
	e.Flush()
	return nil
}

func (e *editor) Flush() {
	e.queue.Flush()
}

func (e *editor) toggleDialog(open bool) {
	e.state.DialogOpen = open
	e.DispatchSignal(DialogSignal{open: open})
}

func (e *editor) AutocompleteArmed() bool {
	return e.autocomplete.Armed()
}

func (e *editor) ResetAutocomplete() {
	e.autocomplete.Reset()
	e.state.DialogOpen = false
}

func (e *editor) LinkQuery() (string, bool) {
	f := e.switcher.Field()
	if f == nil {
		return "", false
	}
	query, _, ok := f.linkQuery()
	return query, ok
}

func (e *editor) CompleteLink(title string) error {
	f := e.switcher.Field()
	if f == nil {
		return &Error{id: ErrNoActiveLineId, err: ErrNoActiveLine}
	}
	if !f.completeLink(title) {
		return &Error{id: ErrNoLinkInProgressId, err: ErrNoLinkInProgress}
	}
	e.fitter.FitHeight(f)
	e.DispatchMessage(LinkInserted)
	return nil
}

func (e *editor) InsertText(text string) error {
	f := e.switcher.Field()
	if f == nil {
		return &Error{id: ErrNoActiveLineId, err: ErrNoActiveLine}
	}
	f.Insert(flattenLines(text))
	e.fitter.FitHeight(f)
	return nil
}

// Copy writes the selection, or the whole editing line when nothing is
// selected, to the clipboard.
func (e *editor) Copy() error {
	f := e.switcher.Field()
	if f == nil {
		return &Error{id: ErrNoActiveLineId, err: ErrNoActiveLine}
	}
	if e.clipboard == nil {
		return &Error{id: ErrCopyFailedId, err: ErrNoClipboard}
	}

	content := f.SelectedText()
	if content == "" {
		content = f.Text()
	}
	if content == "" {
		e.DispatchMessage(NothingSelected)
		return nil
	}

	if err := e.clipboard.Write(content); err != nil {
		e.DispatchError(ErrCopyFailedId, err)
		return &Error{id: ErrCopyFailedId, err: err}
	}
	e.DispatchSignal(CopySignal{content: content})
	e.DispatchMessage(CopiedMessage)
	return nil
}

// Paste inserts the clipboard text at the caret. Line breaks become spaces
// since a line holds a single paragraph.
func (e *editor) Paste() error {
	f := e.switcher.Field()
	if f == nil {
		return &Error{id: ErrNoActiveLineId, err: ErrNoActiveLine}
	}
	if e.clipboard == nil {
		return &Error{id: ErrPasteFailedId, err: ErrNoClipboard}
	}

	text, err := e.clipboard.Read()
	if err != nil {
		e.DispatchError(ErrPasteFailedId, err)
		return &Error{id: ErrPasteFailedId, err: err}
	}
	if text == "" {
		return &Error{id: ErrPasteFailedId, err: ErrNothingToPaste}
	}

	if err := e.InsertText(text); err != nil {
		return err
	}
	e.DispatchMessage(PastedMessage)
	return nil
}

func (e *editor) GetState() State {
	return e.state
}

func (e *editor) SetState(state State) {
	e.state = state
}

// Save asks for the page to be persisted, including any unsaved edit.
func (e *editor) Save() {
	e.DispatchSignal(SaveSignal{lines: e.Lines()})
}

// Load asks for another page to be opened.
func (e *editor) Load(title string) {
	e.log.Debug().Str("page", title).Msg("load page")
	e.DispatchSignal(LoadSignal{title: title})
}

func (e *editor) GetUpdateSignalChan() <-chan Signal {
	return e.updateSignal
}
