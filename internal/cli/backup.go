// ABOUTME: Backup subcommand for the Charm KV mirror
// ABOUTME: Pushes every row to Charm and reports mirror status (SSH key auth)
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/notemma/notemma/internal/backup"
	"github.com/notemma/notemma/internal/db"
)

// NewBackupCommand creates the backup command group.
func NewBackupCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Mirror the shift log to Charm cloud storage",
		Long: `Copy the shift log to Charm KV as an off-site backup.

Authentication is automatic via SSH keys - no login required!

Commands:
  push    - Copy every row to the mirror
  status  - Show Charm user ID and row counts

Examples:
  notemma backup push
  notemma backup status`,
	}

	cmd.AddCommand(newBackupPushCommand(opts))
	cmd.AddCommand(newBackupStatusCommand(opts))
	return cmd
}

func newBackupClient(a *app) (*backup.Client, error) {
	return backup.NewClient(a.cfg.Backup.CharmHost, backup.WithAutoSync(a.cfg.Backup.AutoSync))
}

func newBackupPushCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Copy every row to the Charm mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := newBackupClient(a)
			if err != nil {
				return err
			}
			counts, err := c.Push(cmd.Context(), a.store)
			if err != nil {
				return err
			}

			return show(cmd.OutOrStdout(), opts.Format, countsView(counts), func(w io.Writer) {
				success(w, "Pushed %d jobs, %d overtime claims, %d handover notes to %s",
					counts[db.TableHistory], counts[db.TableOvertime], counts[db.TableHandover], backup.CharmHost())
			})
		},
	}
}

func newBackupStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show mirror status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			c, err := newBackupClient(a)
			if err != nil {
				return err
			}

			id, err := c.ID()
			if err != nil {
				fmt.Fprintf(out, "Charm:     not connected (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "Charm ID:  %s\n", id)
			fmt.Fprintf(out, "Server:    %s\n", backup.CharmHost())

			mirrored, err := c.Mirrored()
			if err != nil {
				_, _ = color.New(color.FgYellow).Fprintf(out, "Mirror:    unreadable (%v)\n", err)
				return nil
			}

			for _, table := range db.Tables {
				local, err := a.store.Count(cmd.Context(), table)
				if err != nil {
					return err
				}
				line := fmt.Sprintf("%-9s  local %d, mirrored %d", table, local, mirrored[table])
				if mirrored[table] < local {
					_, _ = color.New(color.FgYellow).Fprintln(out, line)
				} else {
					_, _ = color.New(color.FgGreen).Fprintln(out, line)
				}
			}
			return nil
		},
	}
}

func countsView(counts backup.Counts) map[string]int {
	view := make(map[string]int, len(db.Tables))
	for _, table := range db.Tables {
		view[string(table)] = counts[table]
	}
	return view
}
