package runner

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLockAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	l := NewRunLock(path, 20*time.Minute, nil)

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	l.Release()
	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire after Release failed: %v", err)
	}
	l.Release()
}

func TestLockContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	first := NewRunLock(path, 20*time.Minute, nil)
	second := NewRunLock(path, 20*time.Minute, nil)

	if err := first.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer first.Release()

	if err := second.Acquire(); err != ErrLocked {
		t.Errorf("concurrent Acquire = %v, want ErrLocked", err)
	}
}

func TestLockStaleMarkerCleared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	stale := NewRunLock(path, 20*time.Minute, func() time.Time { return now })
	if err := stale.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	// The holding run crashed; 30 minutes later the lock must be reclaimable.
	later := NewRunLock(path, 20*time.Minute, func() time.Time { return now.Add(30 * time.Minute) })
	if err := later.Acquire(); err != nil {
		t.Errorf("Acquire over stale marker = %v, want success", err)
	}
}

func TestLockFreshMarkerBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	l := NewRunLock(path, 20*time.Minute, func() time.Time { return now })
	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	soon := NewRunLock(path, 20*time.Minute, func() time.Time { return now.Add(5 * time.Minute) })
	if err := soon.Acquire(); err != ErrLocked {
		t.Errorf("Acquire under fresh marker = %v, want ErrLocked", err)
	}
}
