// Package document loads résumé documents from YAML or JSON files into generic mappings.
package document

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is the cause of a LoadError for a file with no content
var ErrEmptyDocument = errors.New("file is empty")

// LoadError represents an error during file I/O or parsing
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
