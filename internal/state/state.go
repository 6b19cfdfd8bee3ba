// Package state remembers where the garage UI was left: the tab that was
// open when the last session ended and when that was. It is kept apart
// from the car database, by default in ~/.config/garage/state.json, so
// deleting it never touches any records.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session is the part of the previous UI session restored on the next launch.
type Session struct {
	path string

	// LastTab is the name of the tab that was active at exit, as
	// understood by tui.ParseTab. Empty means no session was recorded.
	LastTab string `json:"last_tab"`

	// ClosedAt is when that session ended, in UTC.
	ClosedAt time.Time `json:"closed_at,omitempty"`
}

// LoadPath reads the session file at path. A missing or empty file yields a
// blank session bound to path, so the first Remember creates it.
func LoadPath(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}
	return s, nil
}

// Path is the file the session is read from and written to.
func (s *Session) Path() string { return s.path }

// Remember records tab as the one open when the session ended at the given
// time and writes the file.
func (s *Session) Remember(tab string, at time.Time) error {
	s.LastTab = tab
	s.ClosedAt = at.UTC()
	return s.Save()
}

// Save writes the session next to its final path and renames it into
// place, so a crash mid-write leaves the previous file intact.
func (s *Session) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
