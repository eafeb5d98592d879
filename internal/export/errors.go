// Package export turns filtered résumé documents into JSON artifacts.
package export

import "fmt"

// Error represents a failure to export one profile
type Error struct {
	Profile string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: profile '%s': %s: %v", e.Profile, e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: profile '%s': %s", e.Profile, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
