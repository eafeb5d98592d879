// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Severity levels for validation messages
const (
	SeverityError   = "ERROR"
	SeverityWarning = "WARNING"
	SeverityInfo    = "INFO"
)

// ValidationMessage is a single finding produced by the document validator
type ValidationMessage struct {
	Level      string `json:"level"`
	FieldPath  string `json:"field_path"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (m ValidationMessage) String() string {
	s := fmt.Sprintf("[%s] %s: %s", m.Level, m.FieldPath, m.Message)
	if m.Suggestion != "" {
		s += "\n  → Suggestion: " + m.Suggestion
	}
	return s
}

// ValidationResult collects every finding of one validation pass.
// Findings are appended in traversal order and never removed.
type ValidationResult struct {
	Errors   []ValidationMessage `json:"errors"`
	Warnings []ValidationMessage `json:"warnings"`
	Info     []ValidationMessage `json:"info,omitempty"`
}

// NewValidationResult returns an empty result with non-nil lists
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:   []ValidationMessage{},
		Warnings: []ValidationMessage{},
	}
}

// AddError records an error at path
func (r *ValidationResult) AddError(path, message, suggestion string) {
	r.Errors = append(r.Errors, ValidationMessage{Level: SeverityError, FieldPath: path, Message: message, Suggestion: suggestion})
}

// AddWarning records a warning at path
func (r *ValidationResult) AddWarning(path, message, suggestion string) {
	r.Warnings = append(r.Warnings, ValidationMessage{Level: SeverityWarning, FieldPath: path, Message: message, Suggestion: suggestion})
}

// AddInfo records an informational message at path
func (r *ValidationResult) AddInfo(path, message string) {
	r.Info = append(r.Info, ValidationMessage{Level: SeverityInfo, FieldPath: path, Message: message})
}

// HasErrors reports whether any error was recorded
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether any warning was recorded
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// IsValid reports whether the document passes. In strict mode warnings also fail.
func (r *ValidationResult) IsValid(strict bool) bool {
	if strict {
		return !r.HasErrors() && !r.HasWarnings()
	}
	return !r.HasErrors()
}

// ExitCode maps the result to a process exit code:
// 0 clean, 1 errors present, 2 warnings only (strict mode).
func (r *ValidationResult) ExitCode(strict bool) int {
	switch {
	case r.HasErrors():
		return 1
	case strict && r.HasWarnings():
		return 2
	default:
		return 0
	}
}

// Summary returns a one-line count of findings
func (r *ValidationResult) Summary() string {
	return fmt.Sprintf("Errors: %d, Warnings: %d, Info: %d", len(r.Errors), len(r.Warnings), len(r.Info))
}
