package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrLocked means another run currently holds the lock.
var ErrLocked = errors.New("seo run already in progress")

// RunLock is a file-based mutual exclusion marker. The file holds the unix
// timestamp of acquisition; a marker older than staleAfter is treated as
// abandoned by a crashed run and cleared.
type RunLock struct {
	path       string
	staleAfter time.Duration
	now        func() time.Time
}

func NewRunLock(path string, staleAfter time.Duration, now func() time.Time) *RunLock {
	if now == nil {
		now = time.Now
	}
	if staleAfter <= 0 {
		staleAfter = 20 * time.Minute
	}
	return &RunLock{path: path, staleAfter: staleAfter, now: now}
}

// Acquire takes the lock or returns ErrLocked.
func (l *RunLock) Acquire() error {
	if data, err := os.ReadFile(l.path); err == nil {
		ts, parseErr := strconv.ParseInt(string(data), 10, 64)
		if parseErr == nil && l.now().Sub(time.Unix(ts, 0)) < l.staleAfter {
			return ErrLocked
		}
		// Stale or unreadable marker: clear it rather than blocking forever.
		os.Remove(l.path)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create lock dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrLocked
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(strconv.FormatInt(l.now().Unix(), 10)); err != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	return nil
}

// Release removes the marker.
func (l *RunLock) Release() {
	os.Remove(l.path)
}
