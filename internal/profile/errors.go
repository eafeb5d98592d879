// Package profile loads, validates and summarizes profile configurations.
package profile

import "fmt"

// ProfileNotFoundError is returned when a named profile does not exist
//
//nolint:revive // the stutter reads better at call sites outside the package
type ProfileNotFoundError struct {
	Name string
	Path string
}

func (e *ProfileNotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("profile '%s' not found at %s", e.Name, e.Path)
	}
	return fmt.Sprintf("profile '%s' not found", e.Name)
}

// InvalidProfileError is returned when a profile is empty, unparsable or not a mapping
type InvalidProfileError struct {
	Name    string
	Message string
	Cause   error
}

func (e *InvalidProfileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid profile '%s': %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid profile '%s': %s", e.Name, e.Message)
}

func (e *InvalidProfileError) Unwrap() error {
	return e.Cause
}
