package core

// State is the editor state shared with the UI.
type State struct {
	Page       string // Title of the open page
	DialogOpen bool   // Whether the link dialog is showing
}

// Editor is a page of independently editable lines with at most one line
// being edited at a time.
type Editor interface {
	// Document access
	GetDocument() *Document
	SetLines(lines []string)   // Replace the page content; every line starts rendered
	Lines() []string           // Plain text of every line, including unsaved edits
	Field() *Field             // Field of the editing line, or nil
	ActiveEditID() (LineID, bool)

	// Event handling
	HandleKey(key KeyEvent)   // Key press on the editing line
	HandleClick(t Target)     // Mouse press on a classified target
	Blur()                    // Focus left the editing line
	Focus(id LineID) error    // Start editing id with the caret at the end
	Flush()                   // Run callbacks deferred by the last event

	// Link autocomplete
	AutocompleteArmed() bool
	ResetAutocomplete()
	LinkQuery() (string, bool)       // Text typed after the last '[' before the caret
	CompleteLink(title string) error // Replace the partial link with [[title]]

	// Clipboard
	InsertText(text string) error // Insert text at the caret, line breaks become spaces
	Copy() error
	Paste() error

	// State Management
	GetState() State
	SetState(State)

	// Signals
	Save()
	Load(title string)
	GetUpdateSignalChan() <-chan Signal
	DispatchError(id ErrorId, err error)
	DispatchMessage(args ...string)
	DispatchSignal(signal Signal)
}
