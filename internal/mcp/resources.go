// ABOUTME: MCP resource implementations for notemma
// ABOUTME: Read-only views of the handover board, job catalog, contacts, and session
package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/notemma/notemma/internal/worklog"
)

const (
	boardURI    = "notemma://handover-board"
	catalogURI  = "notemma://catalog"
	contactsURI = "notemma://contacts"
	shiftURI    = "notemma://shift"
)

// CatalogData is the job catalog resource.
type CatalogData struct {
	PPM      []string `json:"ppm"`
	Reactive []string `json:"reactive"`
	Actions  []string `json:"actions"`
}

// registerResources adds all MCP resources to the server.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         boardURI,
		Name:        "Handover Board",
		Description: "The five newest handover notes",
		MIMEType:    "application/json",
	}, s.handleBoard)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Job Catalog",
		Description: "PPM and reactive task lists and the action vocabulary accepted by submit_work",
		MIMEType:    "application/json",
	}, s.handleCatalog)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         contactsURI,
		Name:        "Support Contacts",
		Description: "Helpdesk and emergency numbers for the site",
		MIMEType:    "application/json",
	}, s.handleContacts)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         shiftURI,
		Name:        "Current Shift",
		Description: "Who is signed in on this connection",
		MIMEType:    "application/json",
	}, s.handleShift)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

func (s *Server) handleBoard(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	notes, err := s.handover.RecentNotes(ctx, 0)
	if err != nil {
		return nil, err
	}

	data := make([]NoteData, 0, len(notes))
	for _, n := range notes {
		data = append(data, noteData(n))
	}
	return jsonResource(boardURI, data)
}

func (s *Server) handleCatalog(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	catalog := s.worklog.Catalog()
	data := CatalogData{
		PPM:      catalog.PPM,
		Reactive: catalog.Reactive,
		Actions:  make([]string, 0, len(worklog.Actions)),
	}
	for _, a := range worklog.Actions {
		data.Actions = append(data.Actions, string(a))
	}
	return jsonResource(catalogURI, data)
}

func (s *Server) handleContacts(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(contactsURI, s.cfg.Contacts)
}

func (s *Server) handleShift(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(shiftURI, s.shiftOutput())
}
