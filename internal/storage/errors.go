// Package storage writes exported artifacts to a local directory or an S3-compatible bucket.
package storage

import "fmt"

// Error represents a failure to read or write an artifact. Name is the artifact,
// bucket or directory involved.
type Error struct {
	Name    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
