// ABOUTME: MCP tool implementations for notemma
// ABOUTME: Sign-in, work log, overtime, and handover operations for the connection's session
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/notemma/notemma/internal/db"
	apperrors "github.com/notemma/notemma/internal/errors"
	"github.com/notemma/notemma/internal/logging"
	"github.com/notemma/notemma/internal/overtime"
	"github.com/notemma/notemma/internal/worklog"
)

const stampLayout = "2006-01-02 15:04:05"

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// StartShiftInput defines the input for start_shift tool.
type StartShiftInput struct {
	Name string `json:"name" jsonschema:"Engineer name exactly as it appears on the roster"`
	PIN  string `json:"pin" jsonschema:"Site PIN"`
}

// ShiftOutput describes the connection's session.
type ShiftOutput struct {
	SessionID string `json:"session_id" jsonschema:"Identifier of this connection's session"`
	State     string `json:"state" jsonschema:"signed-out or on-shift"`
	Engineer  string `json:"engineer,omitempty" jsonschema:"Engineer on shift"`
	Started   string `json:"started,omitempty" jsonschema:"When the shift started"`
}

// RecentHistoryInput defines the input for recent_history tool.
type RecentHistoryInput struct {
	Task  string `json:"task" jsonschema:"Task name from the catalog"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of jobs to return (default 3)"`
}

// WorkEntryData is a job in tool output.
type WorkEntryData struct {
	ID        int64  `json:"id"`
	Engineer  string `json:"engineer"`
	Kind      string `json:"kind"`
	Task      string `json:"task"`
	Action    string `json:"action"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

// RecentHistoryOutput defines the output for recent_history tool.
type RecentHistoryOutput struct {
	Entries []WorkEntryData `json:"entries" jsonschema:"Newest jobs first"`
	Count   int             `json:"count" jsonschema:"Number of jobs returned"`
}

// SubmitWorkInput defines the input for submit_work tool.
type SubmitWorkInput struct {
	Kind   string `json:"kind" jsonschema:"Job kind: PPM or Reactive"`
	Task   string `json:"task" jsonschema:"Task name from the kind's catalog"`
	Action string `json:"action" jsonschema:"Action taken: inspection, routine, or repair (or the full label)"`
	Notes  string `json:"notes,omitempty" jsonschema:"Free-text notes"`
}

// RecordOvertimeInput defines the input for record_overtime tool.
type RecordOvertimeInput struct {
	Date   string  `json:"date,omitempty" jsonschema:"Date worked, any common format (default today)"`
	Hours  float64 `json:"hours" jsonschema:"Hours claimed, 0 or more"`
	Reason string  `json:"reason,omitempty" jsonschema:"Why the overtime was worked"`
}

// ClaimData is an overtime claim in tool output.
type ClaimData struct {
	ID       int64   `json:"id"`
	Engineer string  `json:"engineer"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Reason   string  `json:"reason,omitempty"`
}

// OvertimeMonthInput defines the input for overtime_month tool.
type OvertimeMonthInput struct {
	Engineer string `json:"engineer,omitempty" jsonschema:"Engineer to total (default the engineer on shift)"`
}

// TotalOutput is an overtime total.
type TotalOutput struct {
	Scope    string  `json:"scope" jsonschema:"today or month"`
	Engineer string  `json:"engineer,omitempty" jsonschema:"Engineer for month totals"`
	Hours    float64 `json:"hours" jsonschema:"Total hours"`
}

// ListClaimsInput defines the input for list_overtime tool.
type ListClaimsInput struct {
	Engineer string `json:"engineer,omitempty" jsonschema:"Only this engineer's claims"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of claims (default 10)"`
}

// ListClaimsOutput defines the output for list_overtime tool.
type ListClaimsOutput struct {
	Claims []ClaimData `json:"claims" jsonschema:"Newest claims first"`
	Count  int         `json:"count" jsonschema:"Number of claims returned"`
}

// PostHandoverInput defines the input for post_handover tool.
type PostHandoverInput struct {
	Message string `json:"message" jsonschema:"Note for the next shift"`
}

// NoteData is a handover note in tool output.
type NoteData struct {
	ID        int64  `json:"id"`
	Engineer  string `json:"engineer"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// RecentNotesInput defines the input for recent_notes tool.
type RecentNotesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of notes (default 5)"`
}

// RecentNotesOutput defines the output for recent_notes tool.
type RecentNotesOutput struct {
	Notes []NoteData `json:"notes" jsonschema:"Newest notes first"`
	Count int        `json:"count" jsonschema:"Number of notes returned"`
}

// registerTools adds all MCP tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_shift",
		Description: "Sign an engineer in for this connection. Every later write is attributed to them until finish_shift.",
	}, s.handleStartShift)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_shift",
		Description: "Sign out. Always succeeds.",
	}, s.handleFinishShift)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recent_history",
		Description: "Show the most recent jobs recorded against a task, newest first. Check this before starting a job.",
	}, s.handleRecentHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "submit_work",
		Description: "Record a completed PPM or reactive job for the engineer on shift.",
	}, s.handleSubmitWork)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_overtime",
		Description: "Claim overtime hours for the engineer on shift.",
	}, s.handleRecordOvertime)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "overtime_today",
		Description: "Total overtime hours claimed for today across every engineer.",
	}, s.handleOvertimeToday)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "overtime_month",
		Description: "One engineer's overtime total for the current month.",
	}, s.handleOvertimeMonth)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_overtime",
		Description: "List recent overtime claims, newest first.",
	}, s.handleListOvertime)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "post_handover",
		Description: "Post a handover note for the next shift as the engineer on shift.",
	}, s.handlePostHandover)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recent_notes",
		Description: "Read the handover board, newest notes first.",
	}, s.handleRecentNotes)
}

func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

func (s *Server) shiftOutput() ShiftOutput {
	out := ShiftOutput{SessionID: s.session.ID(), State: s.session.State().String()}
	if engineer, ok := s.session.Engineer(); ok {
		out.Engineer = engineer
		out.Started = s.session.Started().Format(stampLayout)
	}
	return out
}

func (s *Server) handleStartShift(ctx context.Context, req *mcp.CallToolRequest, input StartShiftInput) (*mcp.CallToolResult, ShiftOutput, error) {
	if err := s.session.StartShift(input.Name, input.PIN); err != nil {
		return nil, ShiftOutput{}, err
	}
	return textResult("Shift started for %s", input.Name), s.shiftOutput(), nil
}

func (s *Server) handleFinishShift(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, ShiftOutput, error) {
	s.session.FinishShift()
	return textResult("Signed out"), s.shiftOutput(), nil
}

func (s *Server) handleRecentHistory(ctx context.Context, req *mcp.CallToolRequest, input RecentHistoryInput) (*mcp.CallToolResult, RecentHistoryOutput, error) {
	entries, err := s.worklog.RecentHistory(ctx, input.Task, input.Limit)
	if err != nil {
		return nil, RecentHistoryOutput{}, err
	}

	out := RecentHistoryOutput{Entries: make([]WorkEntryData, 0, len(entries)), Count: len(entries)}
	for _, e := range entries {
		out.Entries = append(out.Entries, workEntryData(e))
	}
	return textResult("%d recent job(s) for %s", out.Count, input.Task), out, nil
}

func (s *Server) handleSubmitWork(ctx context.Context, req *mcp.CallToolRequest, input SubmitWorkInput) (*mcp.CallToolResult, WorkEntryData, error) {
	entry, err := s.worklog.Submit(ctx, s.session, worklog.Submission{
		Kind:   input.Kind,
		Task:   input.Task,
		Action: input.Action,
		Notes:  input.Notes,
	})
	if err != nil {
		return nil, WorkEntryData{}, err
	}
	s.journal(logging.FromWorkEntry(entry))

	return textResult("Job logged (ID: %d)", entry.ID), workEntryData(entry), nil
}

func (s *Server) handleRecordOvertime(ctx context.Context, req *mcp.CallToolRequest, input RecordOvertimeInput) (*mcp.CallToolResult, ClaimData, error) {
	date, err := overtime.ParseDate(input.Date, s.now())
	if err != nil {
		return nil, ClaimData{}, err
	}

	entry, err := s.overtime.RecordHours(ctx, s.session, date, input.Hours, input.Reason)
	if err != nil {
		return nil, ClaimData{}, err
	}
	s.journal(logging.FromOvertime(entry, s.now()))

	return textResult("Overtime logged (ID: %d)", entry.ID), claimData(entry), nil
}

func (s *Server) handleOvertimeToday(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, TotalOutput, error) {
	total, err := s.overtime.TotalHoursToday(ctx)
	if err != nil {
		return nil, TotalOutput{}, err
	}
	return textResult("Site overtime today: %gh", total), TotalOutput{Scope: "today", Hours: total}, nil
}

func (s *Server) handleOvertimeMonth(ctx context.Context, req *mcp.CallToolRequest, input OvertimeMonthInput) (*mcp.CallToolResult, TotalOutput, error) {
	engineer := input.Engineer
	if engineer == "" {
		engineer, _ = s.session.Engineer()
	}
	if engineer == "" {
		return nil, TotalOutput{}, apperrors.Invalid("name an engineer or start a shift first")
	}

	total, err := s.overtime.TotalHoursThisMonth(ctx, engineer)
	if err != nil {
		return nil, TotalOutput{}, err
	}
	return textResult("%s this month: %gh", engineer, total), TotalOutput{Scope: "month", Engineer: engineer, Hours: total}, nil
}

func (s *Server) handleListOvertime(ctx context.Context, req *mcp.CallToolRequest, input ListClaimsInput) (*mcp.CallToolResult, ListClaimsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	claims, err := s.overtime.RecentClaims(ctx, input.Engineer, limit)
	if err != nil {
		return nil, ListClaimsOutput{}, err
	}

	out := ListClaimsOutput{Claims: make([]ClaimData, 0, len(claims)), Count: len(claims)}
	for _, c := range claims {
		out.Claims = append(out.Claims, claimData(c))
	}
	return textResult("%d overtime claim(s)", out.Count), out, nil
}

func (s *Server) handlePostHandover(ctx context.Context, req *mcp.CallToolRequest, input PostHandoverInput) (*mcp.CallToolResult, NoteData, error) {
	note, err := s.handover.Post(ctx, s.session, input.Message)
	if err != nil {
		return nil, NoteData{}, err
	}
	s.journal(logging.FromHandover(note))

	return textResult("Handover posted (ID: %d)", note.ID), noteData(note), nil
}

func (s *Server) handleRecentNotes(ctx context.Context, req *mcp.CallToolRequest, input RecentNotesInput) (*mcp.CallToolResult, RecentNotesOutput, error) {
	notes, err := s.handover.RecentNotes(ctx, input.Limit)
	if err != nil {
		return nil, RecentNotesOutput{}, err
	}

	out := RecentNotesOutput{Notes: make([]NoteData, 0, len(notes)), Count: len(notes)}
	for _, n := range notes {
		out.Notes = append(out.Notes, noteData(n))
	}
	return textResult("%d handover note(s)", out.Count), out, nil
}

func workEntryData(e db.WorkEntry) WorkEntryData {
	return WorkEntryData{
		ID:        e.ID,
		Engineer:  e.Engineer,
		Kind:      e.Kind,
		Task:      e.Task,
		Action:    e.Action,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt.Format(stampLayout),
	}
}

func claimData(e db.OvertimeEntry) ClaimData {
	return ClaimData{
		ID:       e.ID,
		Engineer: e.Engineer,
		Date:     e.Date.Format("2006-01-02"),
		Hours:    e.Hours,
		Reason:   e.Reason,
	}
}

func noteData(n db.HandoverNote) NoteData {
	return NoteData{
		ID:        n.ID,
		Engineer:  n.Engineer,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.Format(stampLayout),
	}
}
