// ABOUTME: Daily shift log file writing
// ABOUTME: Formats each recorded job, claim, or note as markdown or JSON and appends to a per-day file
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/notemma/notemma/internal/db"
)

// Record is one line of a shift log.
type Record struct {
	Time     time.Time         `json:"time"`
	Table    string            `json:"table"`
	ID       int64             `json:"id"`
	Engineer string            `json:"engineer"`
	Title    string            `json:"title"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// FromWorkEntry describes a recorded job.
func FromWorkEntry(e db.WorkEntry) Record {
	return Record{
		Time:     e.CreatedAt,
		Table:    string(db.TableHistory),
		ID:       e.ID,
		Engineer: e.Engineer,
		Title:    fmt.Sprintf("%s %s: %s", e.Kind, e.Task, e.Action),
		Fields:   nonEmpty("Notes", e.Notes),
	}
}

// FromOvertime describes an overtime claim. Claims carry no entry time, so
// the caller supplies when it was made.
func FromOvertime(e db.OvertimeEntry, at time.Time) Record {
	return Record{
		Time:     at,
		Table:    string(db.TableOvertime),
		ID:       e.ID,
		Engineer: e.Engineer,
		Title:    fmt.Sprintf("Overtime %s: %gh", e.Date.Format("2006-01-02"), e.Hours),
		Fields:   nonEmpty("Reason", e.Reason),
	}
}

// FromHandover describes a handover note.
func FromHandover(n db.HandoverNote) Record {
	return Record{
		Time:     n.CreatedAt,
		Table:    string(db.TableHandover),
		ID:       n.ID,
		Engineer: n.Engineer,
		Title:    "Handover",
		Fields:   nonEmpty("Message", n.Message),
	}
}

func nonEmpty(key, value string) map[string]string {
	if value == "" {
		return nil
	}
	return map[string]string{key: value}
}

// WriteShiftLog appends rec to the day's log file in logDir.
func WriteShiftLog(logDir, format string, rec Record) error {
	if err := os.MkdirAll(logDir, 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return err
	}

	// One file per day
	date := rec.Time.Format("2006-01-02")
	logFile := filepath.Join(logDir, date+".log")

	var content string
	switch format {
	case "json":
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		content = string(data) + "\n"
	case "markdown":
		fallthrough
	default:
		content = formatMarkdown(rec)
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // Shift logs are shared with the site team
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

func formatMarkdown(rec Record) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s - %s\n", rec.Time.Format("15:04:05"), rec.Title))
	sb.WriteString(fmt.Sprintf("- **Engineer**: %s\n", rec.Engineer))
	sb.WriteString(fmt.Sprintf("- **Ref**: %s #%d\n", rec.Table, rec.ID))
	for _, key := range []string{"Notes", "Reason", "Message"} {
		if value, ok := rec.Fields[key]; ok {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", key, value))
		}
	}
	sb.WriteString("\n")

	return sb.String()
}
