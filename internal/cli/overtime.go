// ABOUTME: Overtime commands: claim hours and report day and month totals
// ABOUTME: Dates accept any format dateparse understands, plus "today"
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/notemma/notemma/internal/errors"
	"github.com/notemma/notemma/internal/logging"
	"github.com/notemma/notemma/internal/overtime"
)

type totalView struct {
	Scope    string  `json:"scope" yaml:"scope"`
	Engineer string  `json:"engineer,omitempty" yaml:"engineer,omitempty"`
	Hours    float64 `json:"hours" yaml:"hours"`
}

// NewOvertimeCommand creates the overtime command group.
func NewOvertimeCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overtime",
		Short: "Claim overtime and view totals",
	}

	cmd.AddCommand(newOvertimeAddCommand(opts))
	cmd.AddCommand(newOvertimeTodayCommand(opts))
	cmd.AddCommand(newOvertimeMonthCommand(opts))
	cmd.AddCommand(newOvertimeListCommand(opts))
	return cmd
}

func newOvertimeAddCommand(opts *RootOptions) *cobra.Command {
	var (
		date   string
		hours  string
		reason string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Claim overtime hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := overtime.ParseDate(date, time.Now())
			if err != nil {
				return err
			}
			h, err := parseHours(hours)
			if err != nil {
				return err
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.signIn(opts, "logging overtime")
			if err != nil {
				return err
			}
			defer sess.FinishShift()

			entry, err := a.overtime.RecordHours(cmd.Context(), sess, day, h, reason)
			if err != nil {
				return err
			}
			a.journal(cmd.ErrOrStderr(), logging.FromOvertime(entry, time.Now()))

			return show(cmd.OutOrStdout(), opts.Format, entry, func(w io.Writer) {
				success(w, "Overtime logged (ID: %d): %s on %s", entry.ID, formatHours(entry.Hours), entry.Date.Format("2006-01-02"))
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "today", "date worked")
	cmd.Flags().StringVar(&hours, "hours", "", "hours claimed")
	cmd.Flags().StringVar(&reason, "reason", "", "reason for the overtime")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}

func newOvertimeTodayCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Total overtime claimed for today across the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			total, err := a.overtime.TotalHoursToday(cmd.Context())
			if err != nil {
				return err
			}
			view := totalView{Scope: "today", Hours: total}
			return show(cmd.OutOrStdout(), opts.Format, view, func(w io.Writer) {
				fmt.Fprintf(w, "Site overtime today: %s\n", formatHours(total))
			})
		},
	}
}

func newOvertimeMonthCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "month [engineer]",
		Short: "An engineer's overtime total for this month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engineer := opts.Engineer
			if len(args) > 0 {
				engineer = args[0]
			}
			if engineer == "" {
				return apperrors.Invalid("name an engineer, as an argument or with --engineer")
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			total, err := a.overtime.TotalHoursThisMonth(cmd.Context(), engineer)
			if err != nil {
				return err
			}
			view := totalView{Scope: "month", Engineer: engineer, Hours: total}
			return show(cmd.OutOrStdout(), opts.Format, view, func(w io.Writer) {
				fmt.Fprintf(w, "%s this month: %s\n", engineer, formatHours(total))
			})
		},
	}
}

func newOvertimeListCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list [engineer]",
		Short: "List recent overtime claims",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var engineer string
			if len(args) > 0 {
				engineer = args[0]
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			claims, err := a.overtime.RecentClaims(cmd.Context(), engineer, limit)
			if err != nil {
				return err
			}
			return show(cmd.OutOrStdout(), opts.Format, claims, func(w io.Writer) {
				renderClaims(w, claims)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of claims to show")
	return cmd
}
