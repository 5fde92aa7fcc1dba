// ABOUTME: Tests for shift log file writing
// ABOUTME: Validates markdown and JSON formatting and per-day appends
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/notemma/notemma/internal/db"
)

func TestWriteShiftLog(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	entry := db.WorkEntry{
		ID:        7,
		Engineer:  "Gaz",
		Kind:      "PPM",
		Task:      "Flushing",
		Action:    "Visual inspection",
		Notes:     "ok",
		CreatedAt: time.Date(2025, 11, 29, 14, 30, 0, 0, time.UTC),
	}

	if err := WriteShiftLog(logDir, "markdown", FromWorkEntry(entry)); err != nil {
		t.Fatalf("WriteShiftLog failed: %v", err)
	}

	logFile := filepath.Join(logDir, "2025-11-29.log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	expectedContent := `## 14:30:00 - PPM Flushing: Visual inspection
- **Engineer**: Gaz
- **Ref**: history #7
- **Notes**: ok

`
	if string(content) != expectedContent {
		t.Errorf("got:\n%s\nwant:\n%s", string(content), expectedContent)
	}
}

func TestWriteShiftLogJSON(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	note := db.HandoverNote{
		ID:        3,
		Engineer:  "Twig",
		Message:   "chiller 2 tripped twice",
		CreatedAt: time.Date(2025, 11, 29, 18, 0, 0, 0, time.UTC),
	}

	if err := WriteShiftLog(logDir, "json", FromHandover(note)); err != nil {
		t.Fatalf("WriteShiftLog failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(logDir, "2025-11-29.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, `"table":"handover"`) || !strings.Contains(contentStr, `"Message":"chiller 2 tripped twice"`) {
		t.Errorf("JSON output missing expected fields: %s", contentStr)
	}
}

func TestWriteShiftLogMultipleEntries(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	at := time.Date(2025, 11, 29, 10, 0, 0, 0, time.UTC)

	claim := db.OvertimeEntry{ID: 1, Engineer: "Gaz", Date: at, Hours: 2.5, Reason: "call-out"}
	note := db.HandoverNote{ID: 1, Engineer: "Gaz", Message: "second entry", CreatedAt: at.Add(5 * time.Hour)}

	if err := WriteShiftLog(logDir, "markdown", FromOvertime(claim, at)); err != nil {
		t.Fatalf("WriteShiftLog failed: %v", err)
	}
	if err := WriteShiftLog(logDir, "markdown", FromHandover(note)); err != nil {
		t.Fatalf("WriteShiftLog failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(logDir, "2025-11-29.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, "Overtime 2025-11-29: 2.5h") || !strings.Contains(contentStr, "second entry") {
		t.Errorf("log file should contain both entries: %s", contentStr)
	}
}
