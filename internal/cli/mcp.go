// ABOUTME: MCP subcommand for running the notemma MCP server
// ABOUTME: Handles stdio transport initialization and server lifecycle
package cli

import (
	"github.com/spf13/cobra"

	"github.com/notemma/notemma/internal/mcp"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the notemma MCP server",
		Long:  `Start the Model Context Protocol server so an assistant can read and write the shift log over stdio. The connection starts signed out.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			server := mcp.NewServer(a.cfg, a.store)
			return server.Run(cmd.Context())
		},
	}
}
