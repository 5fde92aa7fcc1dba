// ABOUTME: Contacts and catalog commands
// ABOUTME: Read-only views of the site configuration
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewContactsCommand creates the contacts command.
func NewContactsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "Show support contact numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return show(cmd.OutOrStdout(), opts.Format, cfg.Contacts, func(w io.Writer) {
				renderContacts(w, cfg.Contacts)
			})
		},
	}
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the PPM and reactive task lists and the action vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			view := newCatalogView(cfg.Catalog())
			return show(cmd.OutOrStdout(), opts.Format, view, func(w io.Writer) {
				renderCatalog(w, view)
			})
		},
	}
}
