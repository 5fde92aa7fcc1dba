// ABOUTME: Handover board: append-only messages from one shift to the next
// ABOUTME: Posting needs an active shift; reading the board never does
package handover

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/notemma/notemma/internal/db"
	apperrors "github.com/notemma/notemma/internal/errors"
)

// DefaultBoardLimit is how many notes the board shows.
const DefaultBoardLimit = 5

// Store is the slice of the database the board needs.
type Store interface {
	InsertHandoverNote(ctx context.Context, note db.HandoverNote) (db.HandoverNote, error)
	ListHandoverNotes(ctx context.Context, limit int) ([]db.HandoverNote, error)
}

// Shift supplies the engineer a note is attributed to.
type Shift interface {
	Require(operation string) (string, error)
}

// Board posts and reads handover notes.
type Board struct {
	store Store
}

// NewBoard creates a handover board over store.
func NewBoard(store Store) *Board {
	return &Board{store: store}
}

// Post pins a message for the next shift. Blank messages are rejected
// before anything is written.
func (b *Board) Post(ctx context.Context, shift Shift, message string) (db.HandoverNote, error) {
	engineer, err := shift.Require("posting a handover note")
	if err != nil {
		return db.HandoverNote{}, err
	}
	if strings.TrimSpace(message) == "" {
		return db.HandoverNote{}, apperrors.Invalid("handover message is empty")
	}

	note, err := b.store.InsertHandoverNote(ctx, db.HandoverNote{Engineer: engineer, Message: message})
	if err != nil {
		return db.HandoverNote{}, err
	}

	log.Info("handover posted", "id", note.ID, "engineer", engineer)
	return note, nil
}

// RecentNotes returns the newest notes from every engineer. A limit <= 0
// means DefaultBoardLimit.
func (b *Board) RecentNotes(ctx context.Context, limit int) ([]db.HandoverNote, error) {
	if limit <= 0 {
		limit = DefaultBoardLimit
	}
	return b.store.ListHandoverNotes(ctx, limit)
}
