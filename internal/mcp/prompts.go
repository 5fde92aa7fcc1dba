// ABOUTME: MCP prompt definitions for notemma
// ABOUTME: Provides static context to AI assistants about working a shift with notemma
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts adds static prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "notemma-getting-started",
		Description: "Introduction to notemma and how AI assistants should use it",
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		content := `NotEMMA is the shift log for a site maintenance team. It records completed jobs,
overtime claims, and handover notes.

How a shift works:
- Call start_shift with the engineer's roster name and the site PIN. Writes fail until this succeeds.
- Before a job, call recent_history with the task name to see the last few times it was done.
- After a job, call submit_work with kind (PPM or Reactive), the task, and the action taken.
- Claim overtime with record_overtime. Totals come from overtime_today and overtime_month.
- Leave notes for the next shift with post_handover. Read them with recent_notes.
- Call finish_shift when the engineer leaves.

Task names must come from the notemma://catalog resource. Reads never need a shift.
Support numbers are in notemma://contacts.`

		result := &mcp.GetPromptResult{
			Description: "Getting started with notemma",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: content,
					},
				},
			},
		}

		return result, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
