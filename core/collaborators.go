package core

import (
	"github.com/rs/zerolog"

	"github.com/ionut-t/blockwiki/markup"
)

// Linker converts between a line's plain text and its rendered markup.
type Linker interface {
	Linkify(text string) markup.Markup
	Delinkify(m markup.Markup) string
}

// Layout reports how a line's text is laid out on screen.
type Layout interface {
	// WrappedRows returns the rune length of each visual row. An empty
	// result is read as a single empty row.
	WrappedRows(text string) []int
	// CaretOffset returns the horizontal offset of a caret at col within
	// its visual row.
	CaretOffset(text string, col int) int
}

// HeightFitter sizes an editing field to its content.
type HeightFitter interface {
	FitHeight(field *Field)
}

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Option configures an editor.
type Option func(*editor)

func WithLinker(l Linker) Option {
	return func(e *editor) { e.linker = l }
}

func WithLayout(l Layout) Option {
	return func(e *editor) { e.layout = l }
}

func WithHeightFitter(f HeightFitter) Option {
	return func(e *editor) { e.fitter = f }
}

func WithClipboard(c Clipboard) Option {
	return func(e *editor) { e.clipboard = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *editor) { e.log = l }
}

// rowFitter sizes a field to its wrap row count.
type rowFitter struct {
	layout Layout
}

func (r rowFitter) FitHeight(f *Field) {
	f.Height = len(r.layout.WrappedRows(f.Text()))
}
