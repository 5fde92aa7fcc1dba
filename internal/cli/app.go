// ABOUTME: Per-command wiring of config, store, and the three services
// ABOUTME: Also owns one-shot sign-in and the shift-log side effect after writes
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"github.com/notemma/notemma/internal/config"
	"github.com/notemma/notemma/internal/db"
	apperrors "github.com/notemma/notemma/internal/errors"
	"github.com/notemma/notemma/internal/handover"
	"github.com/notemma/notemma/internal/logging"
	"github.com/notemma/notemma/internal/overtime"
	"github.com/notemma/notemma/internal/session"
	"github.com/notemma/notemma/internal/worklog"
)

type app struct {
	cfg      *config.Config
	store    *db.Store
	worklog  *worklog.Service
	overtime *overtime.Service
	handover *handover.Board
}

// loadConfig resolves and loads the site config, applying --db.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	path, err := config.Resolve(opts.ConfigPath, cwd)
	if err != nil {
		return nil, fmt.Errorf("find config: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	log.Debug("config loaded", "path", cfg.Path, "db", cfg.DBPath)
	return cfg, nil
}

func openApp(opts *RootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		store:    store,
		worklog:  worklog.NewService(store, cfg.Catalog()),
		overtime: overtime.NewService(store),
		handover: handover.NewBoard(store),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Warn("failed to close database", "err", err)
	}
}

// signIn starts a shift from --engineer and --pin for a single write.
func (a *app) signIn(opts *RootOptions, operation string) (*session.Session, error) {
	if opts.Engineer == "" {
		return nil, fmt.Errorf("%w (pass --engineer and --pin)", apperrors.AuthRequired(operation))
	}

	sess := session.New(a.cfg.Roster())
	if err := sess.StartShift(opts.Engineer, opts.PIN); err != nil {
		return nil, err
	}
	return sess, nil
}

// journal appends rec to the shift log when enabled. Failures only warn.
func (a *app) journal(w io.Writer, rec logging.Record) {
	if !a.cfg.ShiftLog.Enabled {
		return
	}
	if err := logging.WriteShiftLog(a.cfg.ShiftLog.Dir, a.cfg.ShiftLog.Format, rec); err != nil {
		log.Warn("shift log not written", "dir", a.cfg.ShiftLog.Dir, "err", err)
		_, _ = color.New(color.FgYellow).Fprintf(w, "Warning: failed to write shift log: %v\n", err)
		return
	}
	log.Debug("shift log updated", "dir", a.cfg.ShiftLog.Dir, "table", rec.Table, "id", rec.ID)
}
