// ABOUTME: Tests for the work-log service
// ABOUTME: Covers gating, validation, history recall, and single-attempt storage failures
package worklog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notemma/notemma/internal/db"
	apperrors "github.com/notemma/notemma/internal/errors"
	"github.com/notemma/notemma/internal/session"
)

var testCatalog = Catalog{
	PPM:      []string{"DRUPS testing", "Flushing", "Fire Door Inspection", "Sprinkler testing"},
	Reactive: []string{"Change light fitting", "Change lock", "Change flush plate"},
}

func setup(t *testing.T) (*Service, *db.Store) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store, testCatalog), store
}

func onShift(t *testing.T, name string) *session.Session {
	t.Helper()
	s := session.New(session.Roster{Engineers: []string{"Gaz", "Twig"}, PIN: "1234"})
	require.NoError(t, s.StartShift(name, "1234"))
	return s
}

func TestSubmitAndRecentHistory(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	gaz := onShift(t, "Gaz")

	entry, err := svc.Submit(ctx, gaz, Submission{Kind: "PPM", Task: "Flushing", Action: "Inspection", Notes: "ok"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)

	history, err := svc.RecentHistory(ctx, "Flushing", 3)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Gaz", history[0].Engineer)
	assert.Equal(t, string(ActionInspection), history[0].Action)
	assert.Equal(t, "ok", history[0].Notes)
	assert.Equal(t, "PPM", history[0].Kind)
}

func TestRecentHistoryLimitAndOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	twig := onShift(t, "Twig")

	for _, notes := range []string{"a", "b", "c", "d"} {
		_, err := svc.Submit(ctx, twig, Submission{Kind: "reactive", Task: "Change lock", Action: "repair", Notes: notes})
		require.NoError(t, err)
	}

	history, err := svc.RecentHistory(ctx, "Change lock", 0)
	require.NoError(t, err)
	require.Len(t, history, DefaultHistoryLimit)
	assert.Equal(t, "d", history[0].Notes)
	assert.Equal(t, "b", history[2].Notes)

	again, err := svc.RecentHistory(ctx, "Change lock", 0)
	require.NoError(t, err)
	assert.Equal(t, history, again, "reads with no intervening writes must match")
}

func TestRecentHistoryWhileSignedOut(t *testing.T) {
	svc, _ := setup(t)

	history, err := svc.RecentHistory(context.Background(), "Flushing", 3)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSubmitRequiresShift(t *testing.T) {
	ctx := context.Background()
	svc, store := setup(t)
	signedOut := session.New(session.Roster{Engineers: []string{"Gaz"}, PIN: "1234"})

	_, err := svc.Submit(ctx, signedOut, Submission{Kind: "PPM", Task: "Flushing", Action: "routine"})
	require.Error(t, err)
	assert.True(t, apperrors.IsPermission(err))

	n, err := store.Count(ctx, db.TableHistory)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc, store := setup(t)
	gaz := onShift(t, "Gaz")

	tests := []struct {
		name string
		sub  Submission
	}{
		{"unknown kind", Submission{Kind: "Planned", Task: "Flushing", Action: "routine"}},
		{"empty task", Submission{Kind: "PPM", Task: "  ", Action: "routine"}},
		{"task from other catalog", Submission{Kind: "PPM", Task: "Change lock", Action: "routine"}},
		{"unknown action", Submission{Kind: "PPM", Task: "Flushing", Action: "painted it"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, gaz, tt.sub)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}

	n, err := store.Count(ctx, db.TableHistory)
	require.NoError(t, err)
	assert.Zero(t, n, "rejected submissions must not write")
}

type failingStore struct {
	inserts int
}

func (f *failingStore) InsertWorkEntry(ctx context.Context, entry db.WorkEntry) (db.WorkEntry, error) {
	f.inserts++
	return db.WorkEntry{}, apperrors.SaveFailed("history", errors.New("disk I/O error"))
}

func (f *failingStore) ListWorkEntries(ctx context.Context, filter db.HistoryFilter) ([]db.WorkEntry, error) {
	return nil, apperrors.QueryFailed("history", errors.New("disk I/O error"))
}

func TestSubmitStorageFailureIsNotRetried(t *testing.T) {
	store := &failingStore{}
	svc := NewService(store, testCatalog)
	gaz := onShift(t, "Gaz")

	_, err := svc.Submit(context.Background(), gaz, Submission{Kind: "PPM", Task: "Flushing", Action: "routine"})
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
	assert.Equal(t, 1, store.inserts)

	_, err = svc.RecentHistory(context.Background(), "Flushing", 3)
	assert.True(t, apperrors.IsStorage(err))
}

func TestParseAction(t *testing.T) {
	tests := map[string]Action{
		"inspection":          ActionInspection,
		"Visual inspection":   ActionInspection,
		"ROUTINE":             ActionRoutine,
		"routine maintenance": ActionRoutine,
		" repair ":            ActionRepair,
		"Repair/Replace part": ActionRepair,
	}
	for input, want := range tests {
		got, err := ParseAction(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestCatalogKindOf(t *testing.T) {
	kind, ok := testCatalog.KindOf("Sprinkler testing")
	assert.True(t, ok)
	assert.Equal(t, KindPPM, kind)

	kind, ok = testCatalog.KindOf("Change flush plate")
	assert.True(t, ok)
	assert.Equal(t, KindReactive, kind)

	_, ok = testCatalog.KindOf("Paint the fence")
	assert.False(t, ok)
}
