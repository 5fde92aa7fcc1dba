// ABOUTME: Overtime service: records claimed hours and answers day and month totals
// ABOUTME: Today's total is site-wide; the month total is per engineer
package overtime

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/charmbracelet/log"

	"github.com/notemma/notemma/internal/db"
	apperrors "github.com/notemma/notemma/internal/errors"
)

// Store is the slice of the database the service needs.
type Store interface {
	InsertOvertime(ctx context.Context, entry db.OvertimeEntry) (db.OvertimeEntry, error)
	ListOvertime(ctx context.Context, filter db.OvertimeFilter) ([]db.OvertimeEntry, error)
	SumOvertimeHours(ctx context.Context, filter db.OvertimeFilter) (float64, error)
}

// Shift supplies the engineer a claim is attributed to.
type Shift interface {
	Require(operation string) (string, error)
}

// Service records overtime claims.
type Service struct {
	store Store
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock that decides "today" and "this month".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates an overtime service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordHours claims hours for date on behalf of the on-shift engineer.
// Repeated identical claims are kept as separate rows.
func (s *Service) RecordHours(ctx context.Context, shift Shift, date time.Time, hours float64, reason string) (db.OvertimeEntry, error) {
	engineer, err := shift.Require("logging overtime")
	if err != nil {
		return db.OvertimeEntry{}, err
	}

	if date.IsZero() {
		return db.OvertimeEntry{}, apperrors.Invalid("date is required")
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return db.OvertimeEntry{}, apperrors.Invalid("hours must be a number")
	}
	if hours < 0 {
		return db.OvertimeEntry{}, apperrors.Invalid("hours must be 0 or more, got %v", hours)
	}

	entry, err := s.store.InsertOvertime(ctx, db.OvertimeEntry{
		Engineer: engineer,
		Date:     startOfDay(date),
		Hours:    hours,
		Reason:   reason,
	})
	if err != nil {
		return db.OvertimeEntry{}, err
	}

	log.Info("overtime logged", "id", entry.ID, "engineer", engineer, "date", entry.Date.Format(time.DateOnly), "hours", hours)
	return entry, nil
}

// TotalHoursToday sums every engineer's claims dated today.
func (s *Service) TotalHoursToday(ctx context.Context) (float64, error) {
	today := startOfDay(s.now())
	return s.store.SumOvertimeHours(ctx, db.OvertimeFilter{
		From:  today,
		Until: today.AddDate(0, 0, 1),
	})
}

// TotalHoursThisMonth sums one engineer's claims dated in the current month.
func (s *Service) TotalHoursThisMonth(ctx context.Context, engineer string) (float64, error) {
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.store.SumOvertimeHours(ctx, db.OvertimeFilter{
		Engineer: engineer,
		From:     first,
		Until:    first.AddDate(0, 1, 0),
	})
}

// RecentClaims lists an engineer's newest claims. An empty engineer lists
// everyone's.
func (s *Service) RecentClaims(ctx context.Context, engineer string, limit int) ([]db.OvertimeEntry, error) {
	return s.store.ListOvertime(ctx, db.OvertimeFilter{Engineer: engineer, Limit: limit})
}

// ParseDate reads the date a claim is for. Empty input and "today", in any
// case, mean now; anything else goes through dateparse in local time.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		return now, nil
	}
	t, err := dateparse.ParseIn(s, time.Local)
	if err != nil {
		return time.Time{}, apperrors.Invalid("date %q is not a recognised date", s)
	}
	return t, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
