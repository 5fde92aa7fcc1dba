// ABOUTME: Database tests for schema initialization
// ABOUTME: Validates table creation, idempotent reopen, and concurrent starts
package db

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// stepClock returns a clock that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := current
		current = current.Add(step)
		return now
	}
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "notemma.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}

	for _, table := range Tables {
		var name string
		err := store.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", string(table)).Scan(&name)
		if err != nil {
			t.Errorf("table %s does not exist: %v", table, err)
		}
	}

	version, err := schemaVersion(store.db)
	if err != nil {
		t.Fatalf("schemaVersion failed: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("got schema version %d, want %d", version, currentSchemaVersion)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "notemma.db")
	ctx := context.Background()

	first, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if _, err := first.InsertHandoverNote(ctx, HandoverNote{Engineer: "Gaz", Message: "pump 2 noisy"}); err != nil {
		t.Fatalf("InsertHandoverNote failed: %v", err)
	}
	_ = first.Close()

	second, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer func() { _ = second.Close() }()

	n, err := second.Count(ctx, TableHandover)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d notes after reopen, want 1", n)
	}
}

func TestOpenConcurrentStarts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "notemma.db")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store, err := Open(dbPath)
			if err != nil {
				errs <- err
				return
			}
			_ = store.Close()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Open failed: %v", err)
	}
}

func TestOpenUnwritableLocation(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil { //nolint:gosec // Test file permissions
		t.Fatalf("write blocker: %v", err)
	}

	// A regular file where the data directory should be.
	_, err := Open(filepath.Join(blocker, "notemma.db"))
	if err == nil {
		t.Fatal("expected Open to fail under a regular file")
	}
}

func TestParseTimestamp(t *testing.T) {
	stamp := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)

	got, err := parseTimestamp(formatTimestamp(stamp))
	if err != nil {
		t.Fatalf("parseTimestamp failed: %v", err)
	}
	if !got.Equal(stamp) {
		t.Errorf("got %v, want %v", got, stamp)
	}

	legacy, err := parseTimestamp("2025-11-29 14:30")
	if err != nil {
		t.Fatalf("parseTimestamp legacy failed: %v", err)
	}
	if legacy.Year() != 2025 || legacy.Month() != time.November || legacy.Day() != 29 || legacy.Hour() != 14 || legacy.Minute() != 30 {
		t.Errorf("legacy stamp parsed as %v", legacy)
	}
}
