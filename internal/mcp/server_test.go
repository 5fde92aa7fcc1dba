// ABOUTME: Tests for MCP server
// ABOUTME: Validates server initialization, resources, and the per-connection session
package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/notemma/notemma/internal/config"
	"github.com/notemma/notemma/internal/db"
)

func newTestServer(t *testing.T) (*Server, *db.Store) {
	t.Helper()

	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return NewServer(config.Default(), store), store
}

func TestNewServerStartsSignedOut(t *testing.T) {
	s, _ := newTestServer(t)

	out := s.shiftOutput()
	if out.State != "signed-out" {
		t.Errorf("expected signed-out, got %s", out.State)
	}
	if out.SessionID == "" {
		t.Error("expected a session id")
	}
	if out.Engineer != "" {
		t.Errorf("expected no engineer, got %q", out.Engineer)
	}
}

func TestCatalogResource(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleCatalog(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleCatalog failed: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].URI != catalogURI {
		t.Fatalf("unexpected contents: %+v", result.Contents)
	}

	var data CatalogData
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &data); err != nil {
		t.Fatalf("catalog is not JSON: %v", err)
	}
	if len(data.PPM) != 4 || len(data.Reactive) != 3 {
		t.Errorf("unexpected catalog sizes: %d PPM, %d reactive", len(data.PPM), len(data.Reactive))
	}
	if len(data.Actions) != 3 || data.Actions[0] != "Visual inspection" {
		t.Errorf("unexpected actions: %v", data.Actions)
	}
}

func TestContactsResource(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleContacts(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleContacts failed: %v", err)
	}

	var contacts []config.Contact
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &contacts); err != nil {
		t.Fatalf("contacts are not JSON: %v", err)
	}
	if len(contacts) != 3 || contacts[0].Name != "Helpdesk" {
		t.Errorf("unexpected contacts: %+v", contacts)
	}
}

func TestBoardResourceEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleBoard(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleBoard failed: %v", err)
	}
	if result.Contents[0].Text != "[]" {
		t.Errorf("expected an empty JSON array, got %s", result.Contents[0].Text)
	}
}
