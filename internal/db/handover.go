// ABOUTME: Handover board rows: messages left for the next shift
// ABOUTME: Appends notes and returns the most recent ones across all engineers
package db

import (
	"context"
	"time"

	apperrors "github.com/notemma/notemma/internal/errors"
)

// HandoverNote is one message on the handover board.
type HandoverNote struct {
	ID        int64     `json:"id" yaml:"id"`
	Engineer  string    `json:"engineer" yaml:"engineer"`
	Message   string    `json:"message" yaml:"message"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// InsertHandoverNote appends a note, filling in ID and CreatedAt.
func (s *Store) InsertHandoverNote(ctx context.Context, note HandoverNote) (HandoverNote, error) {
	columns := []string{"engineer", "message", "timestamp"}
	id, at, err := s.appendRow(ctx, TableHandover, columns, func(at time.Time) []any {
		return []any{note.Engineer, note.Message, formatTimestamp(at)}
	})
	if err != nil {
		return HandoverNote{}, err
	}

	note.ID = id
	note.CreatedAt = at
	return note, nil
}

// ListHandoverNotes returns the newest notes first. A limit of 0 returns all.
func (s *Store) ListHandoverNotes(ctx context.Context, limit int) ([]HandoverNote, error) {
	query := `SELECT id, COALESCE(engineer, ''), COALESCE(message, ''), COALESCE(timestamp, '')
		FROM handover ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.QueryFailed(string(TableHandover), err)
	}
	defer func() { _ = rows.Close() }()

	notes := make([]HandoverNote, 0)
	for rows.Next() {
		var note HandoverNote
		var stamp string
		if err := rows.Scan(&note.ID, &note.Engineer, &note.Message, &stamp); err != nil {
			return nil, apperrors.QueryFailed(string(TableHandover), err)
		}
		note.CreatedAt = readStamp(TableHandover, note.ID, stamp)
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.QueryFailed(string(TableHandover), err)
	}
	return notes, nil
}
