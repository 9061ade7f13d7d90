// Package prefs persists choices made inside the TUI.
// Preferences are stored in ~/.config/bloom/prefs.toml, separate from the
// hand-edited config file so the TUI never rewrites it.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/bloom/internal/config"
)

// Prefs holds user preferences for bloom.
type Prefs struct {
	Theme string `toml:"theme"`
	// HideEmptyAnswer collapses the question card on past days without an answer.
	HideEmptyAnswer bool `toml:"hide_empty_answer"`
}

const (
	defaultPrefsPath = "~/.config/bloom/prefs.toml"
	// DefaultTheme is used when no theme has been chosen.
	DefaultTheme     = "Meadow"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. Preferences are cosmetic, so a missing,
// unreadable or malformed file yields defaults rather than an error.
func Load(path string) (Prefs, error) {
	p := Prefs{Theme: DefaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return p, nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p, nil
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{Theme: DefaultTheme}, nil
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = DefaultTheme
	}
	return p, nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
