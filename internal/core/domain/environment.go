package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// EnvironmentEntry is a conditional environment variable declared on a step.
type EnvironmentEntry struct {
	Name string
	// Value is nil when no value was declared; the variable is then set to "".
	Value *string
	// If must be true for the entry to apply.
	If bool
	// Unless must be false for the entry to apply.
	Unless bool
}

// NewEnvironmentEntry returns an unconditional entry with the given value.
func NewEnvironmentEntry(name string, value *string) EnvironmentEntry {
	return EnvironmentEntry{Name: name, Value: value, If: true}
}

// Applies reports whether the entry is included in an invocation.
func (e EnvironmentEntry) Applies() bool {
	return e.If && !e.Unless
}

// ResolvedValue returns the value to set, mapping an absent value to "".
func (e EnvironmentEntry) ResolvedValue() string {
	if e.Value == nil {
		return ""
	}
	return *e.Value
}

// Validate checks that the entry has a usable name.
func (e EnvironmentEntry) Validate() error {
	if e.Name == "" {
		return ErrMissingEnvironmentName
	}
	if strings.Contains(e.Name, "=") {
		return zerr.With(ErrInvalidEnvironmentName, "name", e.Name)
	}
	return nil
}
