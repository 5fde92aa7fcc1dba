// ABOUTME: Work-log service: records completed jobs and recalls recent history per task
// ABOUTME: Writes require an on-shift session; history reads are open to anyone
package worklog

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/notemma/notemma/internal/db"
	apperrors "github.com/notemma/notemma/internal/errors"
)

// DefaultHistoryLimit is how many past jobs are shown before acting.
const DefaultHistoryLimit = 3

// Store is the slice of the database the service needs.
type Store interface {
	InsertWorkEntry(ctx context.Context, entry db.WorkEntry) (db.WorkEntry, error)
	ListWorkEntries(ctx context.Context, filter db.HistoryFilter) ([]db.WorkEntry, error)
}

// Shift supplies the engineer a write is attributed to.
type Shift interface {
	Require(operation string) (string, error)
}

// Submission is one completed job as entered by the engineer.
type Submission struct {
	Kind   string
	Task   string
	Action string
	Notes  string
}

// Service records and recalls work history.
type Service struct {
	store   Store
	catalog Catalog
}

// NewService creates a work-log service over store.
func NewService(store Store, catalog Catalog) *Service {
	return &Service{store: store, catalog: catalog}
}

// Catalog returns the task catalogs the service validates against.
func (s *Service) Catalog() Catalog {
	return s.catalog
}

// RecentHistory returns the newest entries for task. A limit <= 0 means
// DefaultHistoryLimit.
func (s *Service) RecentHistory(ctx context.Context, task string, limit int) ([]db.WorkEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.ListWorkEntries(ctx, db.HistoryFilter{Task: task, Limit: limit})
}

// Submit records a job for the on-shift engineer. The insert is attempted
// at most once; a storage failure is returned as is.
func (s *Service) Submit(ctx context.Context, shift Shift, sub Submission) (db.WorkEntry, error) {
	engineer, err := shift.Require("submitting a job")
	if err != nil {
		return db.WorkEntry{}, err
	}

	kind, err := ParseKind(sub.Kind)
	if err != nil {
		return db.WorkEntry{}, err
	}
	task := strings.TrimSpace(sub.Task)
	if task == "" {
		return db.WorkEntry{}, apperrors.Invalid("task is required")
	}
	if !s.catalog.Allows(kind, task) {
		return db.WorkEntry{}, apperrors.Invalid("%q is not a %s task", task, kind)
	}
	action, err := ParseAction(sub.Action)
	if err != nil {
		return db.WorkEntry{}, err
	}

	entry, err := s.store.InsertWorkEntry(ctx, db.WorkEntry{
		Engineer: engineer,
		Kind:     string(kind),
		Task:     task,
		Action:   string(action),
		Notes:    sub.Notes,
	})
	if err != nil {
		return db.WorkEntry{}, err
	}

	log.Info("job logged", "id", entry.ID, "engineer", engineer, "kind", kind, "task", task)
	return entry, nil
}
