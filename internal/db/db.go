// ABOUTME: Store setup and the serialized append path shared by all tables
// ABOUTME: Opens SQLite in WAL mode, runs migrations, assigns ids under one write lock
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/notemma/notemma/internal/errors"
)

// Table names one of the three log tables.
type Table string

const (
	TableHistory  Table = "history"
	TableOvertime Table = "overtime"
	TableHandover Table = "handover"
)

// Tables lists every log table in a stable order.
var Tables = []Table{TableHistory, TableOvertime, TableHandover}

// timestampLayout is fixed width so stored stamps stay readable next to the
// older minute-resolution values ("2006-01-02 15:04").
const timestampLayout = "2006-01-02 15:04:05.000000000Z07:00"

// dateLayout is the calendar-date form used by overtime.date.
const dateLayout = "2006-01-02"

// Store owns the three log tables.
//
// Reads run concurrently. Inserts go through appendRow, which reads the
// clock inside an immediate write transaction, so a row that receives a
// higher id never carries an earlier timestamp, across processes too.
type Store struct {
	db  *sql.DB
	now func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock used to stamp inserted rows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open initializes the database at the given path, creating the file and
// tables if absent.
func Open(dbPath string, opts ...Option) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return nil, apperrors.Wrap(apperrors.CodeStorageOpenFailed, "create data directory", err)
	}

	// _txlock=immediate makes migration transactions take the write lock up
	// front, so concurrent starts queue on busy_timeout instead of failing.
	dsn := dbPath + "?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL&_txlock=immediate"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageOpenFailed, "open database", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(apperrors.CodeStorageOpenFailed, "connect to database", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(apperrors.CodeStorageOpenFailed, "initialize schema", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	log.Debug("storage: database ready", "path", dbPath, "schema", currentSchemaVersion)
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// appendRow inserts one row and returns its id with the stamp passed to build.
// Tables with a timestamp column are stamped no earlier than their newest row.
func (s *Store) appendRow(ctx context.Context, table Table, columns []string, build func(at time.Time) []any) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// _txlock=immediate: BEGIN takes the database write lock, so no other
	// handle can insert between reading the clock and assigning the id.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, time.Time{}, apperrors.SaveFailed(string(table), err)
	}
	defer func() { _ = tx.Rollback() }()

	at := s.now()
	if slices.Contains(columns, "timestamp") {
		last, err := newestStamp(ctx, tx, table)
		if err != nil {
			return 0, time.Time{}, apperrors.SaveFailed(string(table), err)
		}
		if at.Before(last) {
			at = last
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	result, err := tx.ExecContext(ctx, query, build(at)...)
	if err != nil {
		return 0, time.Time{}, apperrors.SaveFailed(string(table), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, time.Time{}, apperrors.SaveFailed(string(table), err)
	}

	if err := tx.Commit(); err != nil {
		return 0, time.Time{}, apperrors.SaveFailed(string(table), err)
	}

	log.Debug("storage: row appended", "table", table, "id", id)
	return id, at, nil
}

// newestStamp returns the timestamp of the table's highest id, or zero when
// the table is empty or that stamp is missing.
func newestStamp(ctx context.Context, tx *sql.Tx, table Table) (time.Time, error) {
	var stamp string
	err := tx.QueryRowContext(ctx, fmt.Sprintf("SELECT COALESCE(timestamp, '') FROM %s ORDER BY id DESC LIMIT 1", table)).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	if stamp == "" {
		return time.Time{}, nil
	}
	if t, err := parseTimestamp(stamp); err == nil {
		return t, nil
	}
	return time.Time{}, nil
}

// Count returns the number of rows in a table.
func (s *Store) Count(ctx context.Context, table Table) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
	if err != nil {
		return 0, apperrors.QueryFailed(string(table), err)
	}
	return n, nil
}

func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// parseTimestamp reads both current stamps and older free-form values.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, value); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}

// readStamp parses a stored row stamp. Older rows may hold NULL or text no
// parser understands; those read back as the zero time instead of failing
// the whole query.
func readStamp(table Table, id int64, value string) time.Time {
	if value == "" {
		log.Warn("storage: row has no timestamp", "table", table, "id", id)
		return time.Time{}
	}
	t, err := parseTimestamp(value)
	if err != nil {
		log.Warn("storage: unreadable timestamp", "table", table, "id", id, "value", value)
		return time.Time{}
	}
	return t
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// buildWhere joins conditions into a WHERE clause, or returns "".
func buildWhere(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}
