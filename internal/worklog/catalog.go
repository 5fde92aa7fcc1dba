// ABOUTME: Job kinds, action vocabulary, and the fixed task catalogs
// ABOUTME: Parses caller input into the closed sets recorded in history
package worklog

import (
	"slices"
	"strings"

	apperrors "github.com/notemma/notemma/internal/errors"
)

// Kind separates planned preventive maintenance from reactive call-outs.
type Kind string

const (
	KindPPM      Kind = "PPM"
	KindReactive Kind = "Reactive"
)

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ppm":
		return KindPPM, nil
	case "reactive":
		return KindReactive, nil
	}
	return "", apperrors.Invalid("unknown job kind %q (want PPM or Reactive)", s)
}

// Action is what the engineer did. The stored text is the label.
type Action string

const (
	ActionInspection Action = "Visual inspection"
	ActionRoutine    Action = "Routine Maintenance"
	ActionRepair     Action = "Repair/Replace part"
)

// Actions lists the action vocabulary in picker order.
var Actions = []Action{ActionInspection, ActionRoutine, ActionRepair}

var actionAliases = map[string]Action{
	"inspection": ActionInspection,
	"routine":    ActionRoutine,
	"repair":     ActionRepair,
}

// ParseAction accepts a full label or a short alias, in any case.
func ParseAction(s string) (Action, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if a, ok := actionAliases[key]; ok {
		return a, nil
	}
	for _, a := range Actions {
		if strings.ToLower(string(a)) == key {
			return a, nil
		}
	}
	return "", apperrors.Invalid("unknown action %q (want inspection, routine, or repair)", s)
}

// Catalog holds the task lists offered for each kind. Task names are free
// text joined to history by exact match, so a renamed task starts a new
// history rather than continuing the old one.
type Catalog struct {
	PPM      []string
	Reactive []string
}

// Tasks returns the tasks offered for kind.
func (c Catalog) Tasks(kind Kind) []string {
	switch kind {
	case KindPPM:
		return c.PPM
	case KindReactive:
		return c.Reactive
	}
	return nil
}

// Allows reports whether task belongs to kind's catalog.
func (c Catalog) Allows(kind Kind, task string) bool {
	return slices.Contains(c.Tasks(kind), task)
}

// KindOf finds which catalog lists task.
func (c Catalog) KindOf(task string) (Kind, bool) {
	for _, kind := range []Kind{KindPPM, KindReactive} {
		if c.Allows(kind, task) {
			return kind, true
		}
	}
	return "", false
}
