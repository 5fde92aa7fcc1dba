// ABOUTME: Board and handover commands
// ABOUTME: Reads the newest handover notes and posts a note for the next shift
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/notemma/notemma/internal/handover"
	"github.com/notemma/notemma/internal/logging"
)

// NewBoardCommand creates the board command.
func NewBoardCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the handover board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			notes, err := a.handover.RecentNotes(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return show(cmd.OutOrStdout(), opts.Format, notes, func(w io.Writer) {
				renderBoard(w, notes)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", handover.DefaultBoardLimit, "number of notes to show")
	return cmd
}

// NewHandoverCommand creates the handover command.
func NewHandoverCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "handover [message]",
		Short: "Post a handover note for the next shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.signIn(opts, "posting a handover note")
			if err != nil {
				return err
			}
			defer sess.FinishShift()

			note, err := a.handover.Post(cmd.Context(), sess, args[0])
			if err != nil {
				return err
			}
			a.journal(cmd.ErrOrStderr(), logging.FromHandover(note))

			return show(cmd.OutOrStdout(), opts.Format, note, func(w io.Writer) {
				success(w, "Handover posted (ID: %d)", note.ID)
			})
		},
	}
}
