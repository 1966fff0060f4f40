package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	editor "github.com/ionut-t/blockwiki/adapter-bubbletea"
	"github.com/ionut-t/blockwiki/config"
	"github.com/ionut-t/blockwiki/core"
	"github.com/ionut-t/blockwiki/store"
)

type pageChangedMsg struct {
	title string
}

type Model struct {
	editor    editor.Model
	store     *store.Store
	changes   <-chan string
	log       zerolog.Logger
	wrapWidth int
}

func waitForChange(changes <-chan string) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		title, ok := <-changes
		if !ok {
			return nil
		}
		return pageChangedMsg{title: title}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), waitForChange(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width
		if m.wrapWidth > 0 {
			width = min(width, m.wrapWidth+3)
		}
		m.editor.SetSize(width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			if err := m.store.Save(m.editor.Page(), m.editor.GetEditor().Lines()); err != nil {
				m.log.Error().Err(err).Str("page", m.editor.Page()).Msg("save on quit")
			}
			return m, tea.Quit
		}

	case editor.SaveMsg:
		if err := m.store.Save(msg.Page, msg.Lines); err != nil {
			m.log.Error().Err(err).Str("page", msg.Page).Msg("save page")
			return m, m.editor.DispatchError(err)
		}
		m.refreshTitles()
		return m, nil

	case editor.LoadMsg:
		lines, err := m.store.Load(msg.Title)
		if err != nil {
			m.log.Error().Err(err).Str("page", msg.Title).Msg("load page")
			return m, m.editor.DispatchError(err)
		}
		m.editor.SetPage(msg.Title, lines)
		m.log.Info().Str("page", msg.Title).Msg("page opened")
		return m, nil

	case editor.ErrorMsg:
		m.log.Warn().Err(msg.Error).Int("id", int(msg.ID)).Msg("editor error")
		return m, nil

	case editor.CopyMsg:
		return m, m.editor.DispatchMessage(fmt.Sprintf("%d bytes copied", len(msg.Content)))

	case pageChangedMsg:
		cmds := []tea.Cmd{waitForChange(m.changes)}
		m.refreshTitles()
		if msg.title != m.editor.Page() {
			return m, tea.Batch(cmds...)
		}
		lines, err := m.store.Load(msg.title)
		if err != nil {
			m.log.Warn().Err(err).Str("page", msg.title).Msg("reload page")
			return m, tea.Batch(cmds...)
		}
		if m.editor.Reload(lines) {
			cmds = append(cmds, m.editor.DispatchMessage("page changed on disk"))
		}
		return m, tea.Batch(cmds...)
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m *Model) refreshTitles() {
	titles, err := m.store.Titles()
	if err != nil {
		m.log.Warn().Err(err).Msg("list pages")
		return
	}
	m.editor.SetSuggestions(titles)
}

func (m Model) View() string {
	return m.editor.View()
}

func newLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	if cfg.LogFile == "" {
		return zerolog.Nop(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}

func run() error {
	configPath := flag.String("config", config.DefaultPath(), "path to the settings file")
	pagesDir := flag.String("pages", "", "directory holding the pages (overrides pages_dir)")
	page := flag.String("page", "", "page to open (overrides home_page)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *pagesDir != "" {
		cfg.PagesDir = *pagesDir
	}
	if *page != "" {
		cfg.HomePage = *page
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	pages, err := store.New(cfg.PagesDir, logger)
	if err != nil {
		return err
	}

	lines, err := pages.Load(cfg.HomePage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := pages.Watch(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("pages are not watched")
	}

	wiki := editor.New(80, 20, core.WithLogger(logger))
	wiki.SetHighlightTheme(cfg.HighlightTheme)
	wiki.SetPage(cfg.HomePage, lines)

	m := Model{
		editor:    wiki,
		store:     pages,
		changes:   changes,
		log:       logger,
		wrapWidth: cfg.WrapWidth,
	}
	m.refreshTitles()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logger.Info().Str("pages", cfg.PagesDir).Str("page", cfg.HomePage).Msg("starting")

	_, err = tea.NewProgram(m, opts...).Run()
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "blockwiki: %v\n", err)
		os.Exit(1)
	}
}
