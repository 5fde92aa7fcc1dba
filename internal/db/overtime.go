// ABOUTME: Overtime rows: hours claimed by an engineer against a calendar date
// ABOUTME: Appends claims, lists them, and sums hours over a date range
package db

import (
	"context"
	"time"

	apperrors "github.com/notemma/notemma/internal/errors"
)

// OvertimeEntry is one overtime claim. Date is the day the engineer says the
// hours were worked; it is not tied to when the claim was entered.
type OvertimeEntry struct {
	ID       int64     `json:"id" yaml:"id"`
	Engineer string    `json:"engineer" yaml:"engineer"`
	Date     time.Time `json:"date" yaml:"date"`
	Hours    float64   `json:"hours" yaml:"hours"`
	Reason   string    `json:"reason" yaml:"reason"`
}

// OvertimeFilter selects claims. From is inclusive and Until exclusive; both
// are compared as calendar dates. Zero fields match everything.
type OvertimeFilter struct {
	Engineer string
	From     time.Time
	Until    time.Time
	Limit    int
}

func (f OvertimeFilter) where() (string, []any) {
	var conditions []string
	var args []any

	if f.Engineer != "" {
		conditions = append(conditions, "engineer = ?")
		args = append(args, f.Engineer)
	}
	if !f.From.IsZero() {
		conditions = append(conditions, "date >= ?")
		args = append(args, formatDate(f.From))
	}
	if !f.Until.IsZero() {
		conditions = append(conditions, "date < ?")
		args = append(args, formatDate(f.Until))
	}
	return buildWhere(conditions), args
}

// InsertOvertime appends a claim, filling in ID.
func (s *Store) InsertOvertime(ctx context.Context, entry OvertimeEntry) (OvertimeEntry, error) {
	columns := []string{"engineer", "date", "hours", "reason"}
	id, _, err := s.appendRow(ctx, TableOvertime, columns, func(time.Time) []any {
		return []any{entry.Engineer, formatDate(entry.Date), entry.Hours, entry.Reason}
	})
	if err != nil {
		return OvertimeEntry{}, err
	}

	entry.ID = id
	return entry, nil
}

// ListOvertime returns matching claims ordered by id descending.
func (s *Store) ListOvertime(ctx context.Context, filter OvertimeFilter) ([]OvertimeEntry, error) {
	where, args := filter.where()
	query := `SELECT id, COALESCE(engineer, ''), COALESCE(date, ''), COALESCE(hours, 0), COALESCE(reason, '')
		FROM overtime` + where + " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.QueryFailed(string(TableOvertime), err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]OvertimeEntry, 0)
	for rows.Next() {
		var entry OvertimeEntry
		var date string
		if err := rows.Scan(&entry.ID, &entry.Engineer, &date, &entry.Hours, &entry.Reason); err != nil {
			return nil, apperrors.QueryFailed(string(TableOvertime), err)
		}
		if entry.Date, err = parseDate(date); err != nil {
			return nil, apperrors.QueryFailed(string(TableOvertime), err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.QueryFailed(string(TableOvertime), err)
	}
	return entries, nil
}

// SumOvertimeHours totals hours over matching claims. No matches sums to 0.
func (s *Store) SumOvertimeHours(ctx context.Context, filter OvertimeFilter) (float64, error) {
	where, args := filter.where()
	var total float64
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(hours), 0) FROM overtime"+where, args...).Scan(&total)
	if err != nil {
		return 0, apperrors.QueryFailed(string(TableOvertime), err)
	}
	return total, nil
}
