// Package marker persists the pid of the running capture process. The marker
// file plus a liveness probe is the only coordination between invocations.
package marker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultPath is where the marker lives unless overridden.
const DefaultPath = "/tmp/record-region.pid"

// Prober answers whether a pid is still hosted by the operating system.
type Prober interface {
	Alive(pid int) bool
}

// Store reads and writes the single session marker.
type Store struct {
	path   string
	prober Prober
}

// NewStore returns a store for the marker at path.
func NewStore(path string, prober Prober) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, prober: prober}
}

// Path returns the marker file location.
func (s *Store) Path() string { return s.path }

// Read returns the recorded pid. A missing or unparsable marker reads as none.
func (s *Store) Read() (int, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// Write replaces the marker with pid. The new content is written to a
// temporary file in the same directory and renamed into place.
func (s *Store) Write(pid int) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(strconv.Itoa(pid) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	return nil
}

// Clear removes the marker. A marker that is already gone is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove pid file: %w", err)
	}
	return nil
}

// IsAlive reports whether pid still refers to a running process.
func (s *Store) IsAlive(pid int) bool {
	if s.prober == nil || pid <= 0 {
		return false
	}
	return s.prober.Alive(pid)
}

// Active returns the pid of a live session. A marker pointing at a dead
// process is reported with stale=true and left in place.
func (s *Store) Active() (pid int, live bool, stale bool) {
	pid, ok := s.Read()
	if !ok {
		return 0, false, false
	}
	if s.IsAlive(pid) {
		return pid, true, false
	}
	return pid, false, true
}
