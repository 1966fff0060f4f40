package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type Config struct {
	PagesDir       string `json:"pages_dir"`
	HomePage       string `json:"home_page"`
	WrapWidth      int    `json:"wrap_width"` // 0 wraps at the terminal width
	HighlightTheme string `json:"highlight_theme"`
	LogFile        string `json:"log_file"`
	LogLevel       string `json:"log_level"`
	Mouse          bool   `json:"mouse"`
}

func Default() *Config {
	dir := "pages"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, "blockwiki")
	}

	return &Config{
		PagesDir:       dir,
		HomePage:       "Home",
		HighlightTheme: "monokai",
		LogFile:        filepath.Join(os.TempDir(), "blockwiki.log"),
		LogLevel:       "info",
		Mouse:          true,
	}
}

// DefaultPath is where the settings file lives unless overridden.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "blockwiki", "settings.json")
}

// Load reads the settings file at path. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.PagesDir == "" {
		return fmt.Errorf("pages_dir must not be empty")
	}
	if c.HomePage == "" {
		return fmt.Errorf("home_page must not be empty")
	}
	if c.WrapWidth < 0 {
		return fmt.Errorf("wrap_width must not be negative, got %d", c.WrapWidth)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
