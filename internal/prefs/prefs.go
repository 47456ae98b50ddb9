// Package prefs holds the user's preferences and the per-session UI state.
// Preferences live in a small JSON file next to the database; unknown keys
// round-trip untouched so older builds never lose newer settings.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Preference keys.
const (
	KeyTheme       = "theme"
	KeyLanguage    = "language"
	KeyPreferences = "userPreferences"
)

// Defaults applied when a key has never been written.
var defaults = map[string]string{
	KeyTheme:       "dark",
	KeyLanguage:    "ar",
	KeyPreferences: `{"audioEnabled":true,"notifications":true}`,
}

// Store is a file-backed string key-value store for user preferences. A
// Store with an empty path keeps preferences in memory only.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// Open loads the preference file at path, tolerating a missing file. A
// corrupt file is an error; silently resetting preferences would lose them.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}}
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if err := json.Unmarshal(raw, &s.values); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return s, nil
}

// Get returns the stored value for key, falling back to the default and
// finally the empty string.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return defaults[key]
}

// Set stores the value and persists the file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// Preferences merges the stored userPreferences JSON onto the defaults, so
// a partial write never drops the unwritten settings.
func (s *Store) Preferences() (map[string]any, error) {
	merged := map[string]any{}
	if err := json.Unmarshal([]byte(defaults[KeyPreferences]), &merged); err != nil {
		return nil, fmt.Errorf("decode default preferences: %w", err)
	}

	stored := s.Get(KeyPreferences)
	var overrides map[string]any
	if err := json.Unmarshal([]byte(stored), &overrides); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged, nil
}

// UpdatePreference sets one field inside the userPreferences JSON.
func (s *Store) UpdatePreference(name string, value any) error {
	current, err := s.Preferences()
	if err != nil {
		return err
	}
	current[name] = value
	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	return s.Set(KeyPreferences, string(raw))
}

// Session is the mutable per-run UI state. It is never persisted.
type Session struct {
	mu      sync.RWMutex
	loading bool
	lastErr error
}

// SetLoading flags whether a long operation is in flight.
func (s *Session) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// Loading reports whether a long operation is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError records the most recent failure surfaced to the user.
func (s *Session) SetError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Err returns the most recent recorded failure, nil after ClearError.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError resets the recorded failure.
func (s *Session) ClearError() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}
