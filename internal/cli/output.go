// ABOUTME: Output helpers shared by every command
// ABOUTME: Writes JSON or YAML for scripts and hands text output to a renderer
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	apperrors "github.com/notemma/notemma/internal/errors"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	headerColor  = color.New(color.Bold)
	dimColor     = color.New(color.Faint)
)

// show writes v in the structured formats, or calls text for the text format.
func show(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

func success(w io.Writer, format string, args ...any) {
	_, _ = successColor.Fprintf(w, format+"\n", args...)
}

// describe turns an error into the line shown to an engineer. Storage
// failures keep their cause so the underlying problem is visible.
func describe(err error) string {
	if apperrors.IsStorage(err) || apperrors.GetCode(err) == apperrors.CodeUnknown {
		return err.Error()
	}
	return apperrors.GetMessage(err)
}

func parseHours(s string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, apperrors.Invalid("hours %q is not a number", s)
	}
	return hours, nil
}

func formatHours(h float64) string {
	return fmt.Sprintf("%gh", h)
}
