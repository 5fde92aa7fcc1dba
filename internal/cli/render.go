// ABOUTME: Text rendering for history, the handover board, claims, contacts, and the catalog
// ABOUTME: Timestamps print in the zone they were recorded in
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/notemma/notemma/internal/config"
	"github.com/notemma/notemma/internal/db"
	"github.com/notemma/notemma/internal/worklog"
)

const stampLayout = "2006-01-02 15:04"

func renderHistory(w io.Writer, task string, entries []db.WorkEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No history for %s.\n", task)
		return
	}

	_, _ = headerColor.Fprintf(w, "Recent history: %s\n", task)
	for _, e := range entries {
		fmt.Fprintf(w, "#%-4d %s  %-10s %s\n", e.ID, e.CreatedAt.Format(stampLayout), e.Engineer, e.Action)
		if e.Notes != "" {
			_, _ = dimColor.Fprintf(w, "      %s\n", e.Notes)
		}
	}
}

func renderBoard(w io.Writer, notes []db.HandoverNote) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No handover notes.")
		return
	}

	_, _ = headerColor.Fprintln(w, "Handover board")
	for _, n := range notes {
		fmt.Fprintf(w, "[%s] %s: %s\n", n.CreatedAt.Format(stampLayout), n.Engineer, n.Message)
	}
}

func renderClaims(w io.Writer, claims []db.OvertimeEntry) {
	if len(claims) == 0 {
		fmt.Fprintln(w, "No overtime claims.")
		return
	}

	_, _ = headerColor.Fprintln(w, "Overtime claims")
	for _, c := range claims {
		line := fmt.Sprintf("#%-4d %s  %-10s %6s", c.ID, c.Date.Format("2006-01-02"), c.Engineer, formatHours(c.Hours))
		if c.Reason != "" {
			line += "  " + c.Reason
		}
		fmt.Fprintln(w, line)
	}
}

func renderContacts(w io.Writer, contacts []config.Contact) {
	_, _ = headerColor.Fprintln(w, "Support contacts")
	for _, c := range contacts {
		fmt.Fprintf(w, "%-12s %s\n", c.Name, c.Number)
	}
}

// catalogView is the structured form of the job catalogs.
type catalogView struct {
	PPM      []string `json:"ppm" yaml:"ppm"`
	Reactive []string `json:"reactive" yaml:"reactive"`
	Actions  []string `json:"actions" yaml:"actions"`
}

func newCatalogView(c worklog.Catalog) catalogView {
	actions := make([]string, 0, len(worklog.Actions))
	for _, a := range worklog.Actions {
		actions = append(actions, string(a))
	}
	return catalogView{PPM: c.PPM, Reactive: c.Reactive, Actions: actions}
}

func renderCatalog(w io.Writer, v catalogView) {
	_, _ = headerColor.Fprintln(w, "PPM tasks")
	for _, t := range v.PPM {
		fmt.Fprintf(w, "  %s\n", t)
	}
	_, _ = headerColor.Fprintln(w, "Reactive tasks")
	for _, t := range v.Reactive {
		fmt.Fprintf(w, "  %s\n", t)
	}
	_, _ = headerColor.Fprintln(w, "Actions")
	fmt.Fprintf(w, "  %s\n", strings.Join(v.Actions, ", "))
}
