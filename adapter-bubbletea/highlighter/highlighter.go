package highlighter

import (
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// maxCachedLines bounds the token cache; it is dropped wholesale when full.
const maxCachedLines = 4096

// Highlighter styles rendered lines. Every line of a page is an independent
// paragraph, so lines are tokenized one at a time and cached by their text.
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	cache      map[string][]chroma.TokenType
	styleCache map[chroma.TokenType]lipgloss.Style
	cacheMutex sync.RWMutex
}

// New creates a highlighter for language using the named chroma style.
// Unknown names fall back to chroma's defaults.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	lexer = chroma.Coalesce(lexer)

	return &Highlighter{
		lexer:      lexer,
		style:      styles.Get(theme),
		cache:      make(map[string][]chroma.TokenType),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// InvalidateCache clears the token and style caches.
func (sh *Highlighter) InvalidateCache() {
	sh.cacheMutex.Lock()
	defer sh.cacheMutex.Unlock()
	sh.cache = make(map[string][]chroma.TokenType)
	sh.styleCache = make(map[chroma.TokenType]lipgloss.Style)
}

// TokenTypes returns the token type of every rune of text.
func (sh *Highlighter) TokenTypes(text string) []chroma.TokenType {
	sh.cacheMutex.RLock()
	types, ok := sh.cache[text]
	sh.cacheMutex.RUnlock()
	if ok {
		return types
	}

	types = sh.tokenize(text)

	sh.cacheMutex.Lock()
	if len(sh.cache) >= maxCachedLines {
		sh.cache = make(map[string][]chroma.TokenType)
	}
	sh.cache[text] = types
	sh.cacheMutex.Unlock()

	return types
}

func (sh *Highlighter) tokenize(text string) []chroma.TokenType {
	runes := []rune(text)
	types := make([]chroma.TokenType, len(runes))
	for i := range types {
		types[i] = chroma.Text
	}
	if text == "" {
		return types
	}

	iterator, err := sh.lexer.Tokenise(nil, text)
	if err != nil {
		return types
	}

	col := 0
	for _, token := range iterator.Tokens() {
		for range token.Value {
			if col >= len(types) {
				return types
			}
			types[col] = token.Type
			col++
		}
	}

	return types
}

// StyleFor converts a chroma token type to a lipgloss style.
func (sh *Highlighter) StyleFor(tokenType chroma.TokenType) lipgloss.Style {
	sh.cacheMutex.RLock()
	style, ok := sh.styleCache[tokenType]
	sh.cacheMutex.RUnlock()
	if ok {
		return style
	}

	entry := sh.style.Get(tokenType)

	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}

	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	sh.cacheMutex.Lock()
	sh.styleCache[tokenType] = style
	sh.cacheMutex.Unlock()

	return style
}
