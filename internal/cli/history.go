// ABOUTME: History and submit commands for the work log
// ABOUTME: Shows a task's recent jobs and records a completed job
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/notemma/notemma/internal/logging"
	"github.com/notemma/notemma/internal/worklog"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [task]",
		Short: "Show recent jobs for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			task := args[0]
			entries, err := a.worklog.RecentHistory(cmd.Context(), task, limit)
			if err != nil {
				return err
			}
			return show(cmd.OutOrStdout(), opts.Format, entries, func(w io.Writer) {
				renderHistory(w, task, entries)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", worklog.DefaultHistoryLimit, "number of jobs to show")
	return cmd
}

// NewSubmitCommand creates the submit command.
func NewSubmitCommand(opts *RootOptions) *cobra.Command {
	var sub worklog.Submission

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a completed job",
		Example: `  notemma submit -e Gaz --pin 1234 --kind ppm --task Flushing --action routine
  notemma submit -e Twig --pin 1234 --kind reactive --task "Change lock" --action repair --notes "new barrel"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.signIn(opts, "submitting a job")
			if err != nil {
				return err
			}
			defer sess.FinishShift()

			entry, err := a.worklog.Submit(cmd.Context(), sess, sub)
			if err != nil {
				return err
			}
			a.journal(cmd.ErrOrStderr(), logging.FromWorkEntry(entry))

			return show(cmd.OutOrStdout(), opts.Format, entry, func(w io.Writer) {
				success(w, "Job logged (ID: %d)", entry.ID)
			})
		},
	}

	cmd.Flags().StringVar(&sub.Kind, "kind", "", "job kind (ppm|reactive)")
	cmd.Flags().StringVar(&sub.Task, "task", "", "task name from the catalog")
	cmd.Flags().StringVar(&sub.Action, "action", "", "action taken (inspection|routine|repair)")
	cmd.Flags().StringVar(&sub.Notes, "notes", "", "free-text notes")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}
