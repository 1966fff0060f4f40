// Package markup converts between the plain text of a line and its rendered
// form, where [[Page]] references become link spans.
package markup

import "strings"

const (
	OpenDelimiter  = "[[" // Opens a page link
	CloseDelimiter = "]]" // Closes a page link
)

// Span is a run of rendered text. Link spans keep their delimiters so the
// rendered text has the same columns as the plain text it came from.
type Span struct {
	Text string
	Link bool
}

// Markup is the rendered form of a single line.
type Markup []Span

// Linkify splits text into plain and link spans. An opening delimiter without
// a matching close is left as plain text.
func Linkify(text string) Markup {
	var out Markup
	rest := text

	for rest != "" {
		open := strings.Index(rest, OpenDelimiter)
		if open < 0 {
			break
		}
		closeAt := strings.Index(rest[open+len(OpenDelimiter):], CloseDelimiter)
		if closeAt < 0 {
			break
		}
		end := open + len(OpenDelimiter) + closeAt + len(CloseDelimiter)

		if open > 0 {
			out = append(out, Span{Text: rest[:open]})
		}
		out = append(out, Span{Text: rest[open:end], Link: true})
		rest = rest[end:]
	}

	if rest != "" {
		out = append(out, Span{Text: rest})
	}

	return out
}

// Delinkify reconstructs the plain text a Markup was produced from.
func Delinkify(m Markup) string {
	var sb strings.Builder
	for _, s := range m {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Text is the displayed text of m.
func (m Markup) Text() string {
	return Delinkify(m)
}

// SpanAt returns the span covering rune column col and the column the span
// starts at.
func (m Markup) SpanAt(col int) (Span, int, bool) {
	start := 0
	for _, s := range m {
		n := len([]rune(s.Text))
		if col >= start && col < start+n {
			return s, start, true
		}
		start += n
	}
	return Span{}, 0, false
}

// LinkTarget strips the link delimiters from a link's text. Missing
// delimiters are tolerated.
func LinkTarget(text string) string {
	text = strings.Replace(text, OpenDelimiter, "", 1)
	text = strings.Replace(text, CloseDelimiter, "", 1)
	return strings.TrimSpace(text)
}

// Parser is the default Linker: it uses Linkify and Delinkify.
type Parser struct{}

func (Parser) Linkify(text string) Markup { return Linkify(text) }

func (Parser) Delinkify(m Markup) string { return Delinkify(m) }
