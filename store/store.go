// Package store keeps wiki pages as markdown files, one line per paragraph.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	pageExt        = ".md"
	debounceWindow = 100 * time.Millisecond
)

var ErrInvalidTitle = errors.New("invalid page title")

type Store struct {
	dir string
	log zerolog.Logger
}

// New opens the page directory dir, creating it if needed.
func New(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create pages dir: %w", err)
	}
	return &Store{dir: dir, log: log.With().Str("component", "store").Logger()}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Path is the file holding title.
func (s *Store) Path(title string) (string, error) {
	name := strings.TrimSpace(title)
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, name)

	return filepath.Join(s.dir, name+pageExt), nil
}

// Load reads the lines of title. A page that does not exist yet is empty.
func (s *Store) Load(title string) ([]string, error) {
	path, err := s.Path(title)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug().Str("page", title).Msg("new page")
			return nil, nil
		}
		return nil, fmt.Errorf("read page %q: %w", title, err)
	}

	return splitLines(string(data)), nil
}

// Save writes lines as the content of title. The file is replaced atomically.
func (s *Store) Save(title string, lines []string) error {
	path, err := s.Path(title)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".page-*.tmp")
	if err != nil {
		return fmt.Errorf("save page %q: %w", title, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("save page %q: %w", title, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save page %q: %w", title, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save page %q: %w", title, err)
	}

	s.log.Debug().Str("page", title).Int("lines", len(lines)).Msg("page saved")
	return nil
}

// Titles lists the stored pages in order.
func (s *Store) Titles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	var titles []string
	for _, entry := range entries {
		if title, ok := titleOf(entry.Name()); ok && !entry.IsDir() {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)

	return titles, nil
}

// Watch reports the titles of pages changed on disk until ctx is done.
// Bursts of events for the same page are reported once.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch pages: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch pages: %w", err)
	}

	changes := make(chan string)

	go func() {
		defer close(changes)
		defer watcher.Close()

		debounceTimer := time.NewTimer(debounceWindow)
		debounceTimer.Stop()
		pending := make(map[string]struct{})

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				title, ok := titleOf(filepath.Base(event.Name))
				if !ok {
					continue
				}
				pending[title] = struct{}{}
				debounceTimer.Reset(debounceWindow)

			case <-debounceTimer.C:
				titles := make([]string, 0, len(pending))
				for title := range pending {
					titles = append(titles, title)
				}
				sort.Strings(titles)
				clear(pending)

				for _, title := range titles {
					select {
					case changes <- title:
					case <-ctx.Done():
						return
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn().Err(err).Msg("watch error")
			}
		}
	}()

	return changes, nil
}

func titleOf(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, pageExt) {
		return "", false
	}
	return strings.TrimSuffix(name, pageExt), true
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
