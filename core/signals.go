package core

type Signal any

// SaveSignal asks for the document to be persisted.
type SaveSignal struct {
	lines []string
}

func (s SaveSignal) Value() []string {
	return s.lines
}

// LoadSignal asks for another page to be opened.
type LoadSignal struct {
	title string
}

func (l LoadSignal) Value() string {
	return l.title
}

// DialogSignal shows or hides the link autocomplete dialog.
type DialogSignal struct {
	open bool
}

func (d DialogSignal) Value() bool {
	return d.open
}

type CopySignal struct {
	content string
}

func (c CopySignal) Value() string {
	return c.content
}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	id = m.id
	message = m.value

	return id, message
}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default:
		e.log.Warn().Msgf("signal channel is full, dropping %T", signal)
	}
}
