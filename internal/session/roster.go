// ABOUTME: Engineer roster and shared PIN used to gate sign-in
// ABOUTME: The placeholder entry mirrors the name picker's unselected value
package session

import "slices"

// DefaultPlaceholder is the picker value meaning "no name chosen".
const DefaultPlaceholder = "Select Name..."

// Roster is the closed list of engineers allowed to start a shift.
type Roster struct {
	Engineers   []string
	Placeholder string
	PIN         string
}

// Has reports whether name is a real roster entry, never the placeholder.
func (r Roster) Has(name string) bool {
	if name == "" || name == r.placeholder() {
		return false
	}
	return slices.Contains(r.Engineers, name)
}

// Check reports whether the name and PIN pair may start a shift.
func (r Roster) Check(name, pin string) bool {
	return r.Has(name) && r.PIN != "" && pin == r.PIN
}

func (r Roster) placeholder() string {
	if r.Placeholder == "" {
		return DefaultPlaceholder
	}
	return r.Placeholder
}
