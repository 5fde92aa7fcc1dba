// ABOUTME: MCP server implementation for notemma
// ABOUTME: One server per stdio connection, holding that connection's shift session
package mcp

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/notemma/notemma/internal/config"
	"github.com/notemma/notemma/internal/db"
	"github.com/notemma/notemma/internal/handover"
	"github.com/notemma/notemma/internal/logging"
	"github.com/notemma/notemma/internal/overtime"
	"github.com/notemma/notemma/internal/session"
	"github.com/notemma/notemma/internal/worklog"
)

// Server wraps the MCP server with notemma-specific functionality.
type Server struct {
	mcpServer *mcp.Server
	cfg       *config.Config
	session   *session.Session
	worklog   *worklog.Service
	overtime  *overtime.Service
	handover  *handover.Board
	now       func() time.Time
}

// NewServer creates a new notemma MCP server over store. The connection
// starts signed out.
func NewServer(cfg *config.Config, store *db.Store) *Server {
	impl := &mcp.Implementation{
		Name:    "notemma",
		Version: "0.1.0",
	}

	server := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		cfg:       cfg,
		session:   session.New(cfg.Roster()),
		worklog:   worklog.NewService(store, cfg.Catalog()),
		overtime:  overtime.NewService(store),
		handover:  handover.NewBoard(store),
		now:       time.Now,
	}

	// Register components
	server.registerPrompts()
	server.registerTools()
	server.registerResources()

	return server
}

// Run starts the MCP server with stdio transport. The session is signed
// out when the connection ends.
func (s *Server) Run(ctx context.Context) error {
	defer s.session.FinishShift()
	log.Debug("mcp: serving", "session", s.session.ID())

	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}

// journal appends rec to the shift log when enabled. Failures only warn.
func (s *Server) journal(rec logging.Record) {
	if !s.cfg.ShiftLog.Enabled {
		return
	}
	if err := logging.WriteShiftLog(s.cfg.ShiftLog.Dir, s.cfg.ShiftLog.Format, rec); err != nil {
		log.Warn("mcp: shift log not written", "dir", s.cfg.ShiftLog.Dir, "err", err)
	}
}
