// ABOUTME: Tests for the handover board
// ABOUTME: Covers blank-message rejection, gating, and board reads after sign-out
package handover

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notemma/notemma/internal/db"
	apperrors "github.com/notemma/notemma/internal/errors"
	"github.com/notemma/notemma/internal/session"
)

func setup(t *testing.T) *Board {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewBoard(store)
}

func newSession() *session.Session {
	return session.New(session.Roster{Engineers: []string{"Gaz", "Twig"}, PIN: "1234"})
}

func TestPostRejectsBlankMessages(t *testing.T) {
	ctx := context.Background()
	board := setup(t)
	s := newSession()
	require.NoError(t, s.StartShift("Gaz", "1234"))

	before, err := board.RecentNotes(ctx, 5)
	require.NoError(t, err)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := board.Post(ctx, s, msg)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	}

	after, err := board.RecentNotes(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))
}

func TestPostRequiresShift(t *testing.T) {
	board := setup(t)

	_, err := board.Post(context.Background(), newSession(), "chiller alarm reset")
	assert.True(t, apperrors.IsPermission(err))
}

func TestRecentNotesAcrossEngineers(t *testing.T) {
	ctx := context.Background()
	board := setup(t)

	gaz := newSession()
	require.NoError(t, gaz.StartShift("Gaz", "1234"))
	twig := newSession()
	require.NoError(t, twig.StartShift("Twig", "1234"))

	for i := 0; i < 4; i++ {
		_, err := board.Post(ctx, gaz, fmt.Sprintf("gaz %d", i))
		require.NoError(t, err)
		_, err = board.Post(ctx, twig, fmt.Sprintf("twig %d", i))
		require.NoError(t, err)
	}

	gaz.FinishShift()
	twig.FinishShift()

	notes, err := board.RecentNotes(ctx, 0)
	require.NoError(t, err)
	require.Len(t, notes, DefaultBoardLimit)
	assert.Equal(t, "twig 3", notes[0].Message)
	assert.Equal(t, "Twig", notes[0].Engineer)
	assert.Equal(t, "gaz 3", notes[1].Message)
	for i := 1; i < len(notes); i++ {
		assert.Less(t, notes[i].ID, notes[i-1].ID)
	}
}

func TestPostKeepsMessageVerbatim(t *testing.T) {
	ctx := context.Background()
	board := setup(t)
	s := newSession()
	require.NoError(t, s.StartShift("Twig", "1234"))

	note, err := board.Post(ctx, s, "  AHU 3 belt worn\nreplace Monday ")
	require.NoError(t, err)
	assert.Equal(t, "  AHU 3 belt worn\nreplace Monday ", note.Message)
	assert.False(t, note.CreatedAt.IsZero())
}
