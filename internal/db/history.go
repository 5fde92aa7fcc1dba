// ABOUTME: Work history rows: completed PPM and reactive jobs
// ABOUTME: Appends entries and answers newest-first lookups by job
package db

import (
	"context"
	"time"

	apperrors "github.com/notemma/notemma/internal/errors"
)

// WorkEntry is one recorded maintenance action.
type WorkEntry struct {
	ID        int64     `json:"id" yaml:"id"`
	Engineer  string    `json:"engineer" yaml:"engineer"`
	Kind      string    `json:"kind" yaml:"kind"`
	Task      string    `json:"task" yaml:"task"`
	Action    string    `json:"action" yaml:"action"`
	Notes     string    `json:"notes" yaml:"notes"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// HistoryFilter selects work entries. Zero fields match everything; a
// Limit of 0 returns all matches.
type HistoryFilter struct {
	Task     string
	Engineer string
	Kind     string
	Limit    int
}

// InsertWorkEntry appends an entry, filling in ID and CreatedAt.
func (s *Store) InsertWorkEntry(ctx context.Context, entry WorkEntry) (WorkEntry, error) {
	columns := []string{"engineer", "type", "job", "action", "notes", "timestamp"}
	id, at, err := s.appendRow(ctx, TableHistory, columns, func(at time.Time) []any {
		return []any{entry.Engineer, entry.Kind, entry.Task, entry.Action, entry.Notes, formatTimestamp(at)}
	})
	if err != nil {
		return WorkEntry{}, err
	}

	entry.ID = id
	entry.CreatedAt = at
	return entry, nil
}

// ListWorkEntries returns matching entries ordered by id descending.
func (s *Store) ListWorkEntries(ctx context.Context, filter HistoryFilter) ([]WorkEntry, error) {
	query := `SELECT id, COALESCE(engineer, ''), COALESCE(type, ''), COALESCE(job, ''),
		COALESCE(action, ''), COALESCE(notes, ''), COALESCE(timestamp, '') FROM history`
	var conditions []string
	var args []any

	if filter.Task != "" {
		conditions = append(conditions, "job = ?")
		args = append(args, filter.Task)
	}
	if filter.Engineer != "" {
		conditions = append(conditions, "engineer = ?")
		args = append(args, filter.Engineer)
	}
	if filter.Kind != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, filter.Kind)
	}

	query += buildWhere(conditions) + " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.QueryFailed(string(TableHistory), err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]WorkEntry, 0)
	for rows.Next() {
		var entry WorkEntry
		var stamp string
		if err := rows.Scan(&entry.ID, &entry.Engineer, &entry.Kind, &entry.Task, &entry.Action, &entry.Notes, &stamp); err != nil {
			return nil, apperrors.QueryFailed(string(TableHistory), err)
		}
		entry.CreatedAt = readStamp(TableHistory, entry.ID, stamp)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.QueryFailed(string(TableHistory), err)
	}
	return entries, nil
}
