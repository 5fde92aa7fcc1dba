// ABOUTME: Interactive shift: one signed-in session for many operations
// ABOUTME: Line-oriented loop; arguments within a command are separated by "|"
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/notemma/notemma/internal/errors"
	"github.com/notemma/notemma/internal/logging"
	"github.com/notemma/notemma/internal/overtime"
	"github.com/notemma/notemma/internal/session"
	"github.com/notemma/notemma/internal/worklog"
)

const shiftHelp = `Commands:
  start NAME|PIN                     sign in
  finish                             sign out
  whoami                             show who is on shift
  history TASK                       recent jobs for a task
  submit KIND|TASK|ACTION[|NOTES]    record a completed job
  overtime DATE|HOURS[|REASON]       claim overtime (DATE may be "today")
  handover MESSAGE                   post a note for the next shift
  board                              show the handover board
  today                              site overtime today
  month [ENGINEER]                   overtime this month
  contacts                           support numbers
  catalog                            task lists and actions
  quit                               sign out and leave`

// NewShiftCommand creates the interactive shift command.
func NewShiftCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shift",
		Short: "Work an interactive shift",
		Long: `Start an interactive shift. Sign in once with "start NAME|PIN" (or pass
--engineer and --pin) and every job, claim, and note is attributed to you
until "finish" or "quit".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			sh := &shell{
				app:  a,
				sess: session.New(a.cfg.Roster()),
				out:  cmd.OutOrStdout(),
				now:  time.Now,
			}
			defer sh.sess.FinishShift()

			if opts.Engineer != "" {
				if err := sh.sess.StartShift(opts.Engineer, opts.PIN); err != nil {
					return err
				}
				success(sh.out, "Shift started for %s.", opts.Engineer)
			}
			return sh.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type shell struct {
	app  *app
	sess *session.Session
	out  io.Writer
	now  func() time.Time
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.prompt()
	for scanner.Scan() {
		line := strings.TrimLeft(scanner.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			s.prompt()
			continue
		}

		// Only the command name is trimmed; free text after it is passed on as typed.
		name, rest, _ := strings.Cut(line, " ")
		done, err := s.dispatch(ctx, strings.ToLower(strings.TrimSpace(name)), rest)
		if err != nil {
			_, _ = failureColor.Fprintf(s.out, "Error: %s\n", describe(err))
		}
		if done {
			return nil
		}
		s.prompt()
	}
	return scanner.Err()
}

func (s *shell) prompt() {
	who := "signed out"
	if engineer, ok := s.sess.Engineer(); ok {
		who = engineer
	}
	fmt.Fprintf(s.out, "[%s] > ", who)
}

func (s *shell) dispatch(ctx context.Context, name, rest string) (bool, error) {
	arg := strings.TrimSpace(rest)
	switch name {
	case "quit", "exit":
		if engineer, ok := s.sess.Engineer(); ok {
			s.sess.FinishShift()
			fmt.Fprintf(s.out, "Shift finished for %s.\n", engineer)
		}
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.out, shiftHelp)
	case "start":
		parts, err := fields(arg, 2, 2, "start NAME|PIN")
		if err != nil {
			return false, err
		}
		if err := s.sess.StartShift(parts[0], parts[1]); err != nil {
			return false, err
		}
		success(s.out, "Shift started for %s.", parts[0])
	case "finish":
		engineer, ok := s.sess.Engineer()
		s.sess.FinishShift()
		if ok {
			fmt.Fprintf(s.out, "Shift finished for %s.\n", engineer)
		}
	case "whoami":
		if engineer, ok := s.sess.Engineer(); ok {
			fmt.Fprintf(s.out, "%s, on shift since %s\n", engineer, s.sess.Started().Format("15:04"))
		} else {
			fmt.Fprintln(s.out, "Signed out.")
		}
	case "history":
		if arg == "" {
			return false, apperrors.Invalid("usage: history TASK")
		}
		entries, err := s.app.worklog.RecentHistory(ctx, arg, 0)
		if err != nil {
			return false, err
		}
		renderHistory(s.out, arg, entries)
	case "submit":
		return false, s.submit(ctx, rest)
	case "overtime":
		return false, s.overtime(ctx, rest)
	case "handover":
		note, err := s.app.handover.Post(ctx, s.sess, rest)
		if err != nil {
			return false, err
		}
		s.app.journal(s.out, logging.FromHandover(note))
		success(s.out, "Handover posted (ID: %d)", note.ID)
	case "board":
		notes, err := s.app.handover.RecentNotes(ctx, 0)
		if err != nil {
			return false, err
		}
		renderBoard(s.out, notes)
	case "today":
		total, err := s.app.overtime.TotalHoursToday(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Site overtime today: %s\n", formatHours(total))
	case "month":
		engineer := arg
		if engineer == "" {
			engineer, _ = s.sess.Engineer()
		}
		if engineer == "" {
			return false, apperrors.Invalid("usage: month ENGINEER (or sign in first)")
		}
		total, err := s.app.overtime.TotalHoursThisMonth(ctx, engineer)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "%s this month: %s\n", engineer, formatHours(total))
	case "contacts":
		renderContacts(s.out, s.app.cfg.Contacts)
	case "catalog":
		renderCatalog(s.out, newCatalogView(s.app.cfg.Catalog()))
	default:
		return false, apperrors.Invalid("unknown command %q, type help", name)
	}
	return false, nil
}

func (s *shell) submit(ctx context.Context, rest string) error {
	parts, err := fields(rest, 3, 4, "submit KIND|TASK|ACTION[|NOTES]")
	if err != nil {
		return err
	}
	sub := worklog.Submission{Kind: parts[0], Task: parts[1], Action: parts[2]}
	if len(parts) == 4 {
		sub.Notes = parts[3]
	}

	entry, err := s.app.worklog.Submit(ctx, s.sess, sub)
	if err != nil {
		return err
	}
	s.app.journal(s.out, logging.FromWorkEntry(entry))
	success(s.out, "Job logged (ID: %d)", entry.ID)
	return nil
}

func (s *shell) overtime(ctx context.Context, rest string) error {
	parts, err := fields(rest, 2, 3, "overtime DATE|HOURS[|REASON]")
	if err != nil {
		return err
	}
	day, err := overtime.ParseDate(parts[0], s.now())
	if err != nil {
		return err
	}
	hours, err := parseHours(parts[1])
	if err != nil {
		return err
	}
	var reason string
	if len(parts) == 3 {
		reason = parts[2]
	}

	entry, err := s.app.overtime.RecordHours(ctx, s.sess, day, hours, reason)
	if err != nil {
		return err
	}
	s.app.journal(s.out, logging.FromOvertime(entry, s.now()))
	success(s.out, "Overtime logged (ID: %d): %s on %s", entry.ID, formatHours(entry.Hours), entry.Date.Format("2006-01-02"))
	return nil
}

// fields splits "a|b|c" into between minN and maxN parts. The first minN
// parts are trimmed; an optional trailing free-text part is kept as typed.
func fields(rest string, minN, maxN int, usage string) ([]string, error) {
	if strings.TrimSpace(rest) == "" {
		return nil, apperrors.Invalid("usage: %s", usage)
	}
	parts := strings.SplitN(rest, "|", maxN)
	if len(parts) < minN {
		return nil, apperrors.Invalid("usage: %s", usage)
	}
	for i := 0; i < minN; i++ {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}
