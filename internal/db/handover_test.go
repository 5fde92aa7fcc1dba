// ABOUTME: Tests for handover note storage
// ABOUTME: Covers verbatim storage, newest-first order, and limits
package db

import (
	"context"
	"testing"
	"time"
)

func TestListHandoverNotes(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	store := openTestStore(t, WithClock(stepClock(start, time.Minute)))

	empty, err := store.ListHandoverNotes(ctx, 5)
	if err != nil {
		t.Fatalf("ListHandoverNotes failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}

	messages := []string{"first", "  padded  ", "line one\nline two"}
	for _, msg := range messages {
		if _, err := store.InsertHandoverNote(ctx, HandoverNote{Engineer: "Twig", Message: msg}); err != nil {
			t.Fatalf("InsertHandoverNote failed: %v", err)
		}
	}

	all, err := store.ListHandoverNotes(ctx, 0)
	if err != nil {
		t.Fatalf("ListHandoverNotes failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d notes, want 3", len(all))
	}
	if all[0].Message != "line one\nline two" || all[1].Message != "  padded  " {
		t.Errorf("messages not stored verbatim or not newest first: %q, %q", all[0].Message, all[1].Message)
	}
	if !all[2].CreatedAt.Equal(start) {
		t.Errorf("oldest note stamped %v, want %v", all[2].CreatedAt, start)
	}

	two, err := store.ListHandoverNotes(ctx, 2)
	if err != nil {
		t.Fatalf("ListHandoverNotes failed: %v", err)
	}
	if len(two) != 2 || two[0].ID != 3 || two[1].ID != 2 {
		t.Errorf("unexpected limited notes: %+v", two)
	}
}
