// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FilterRequest is the body of POST /filter. At most one of Profile and
// ProfileName may be set; with neither the document passes through unfiltered.
type FilterRequest struct {
	Document    Document       `json:"document" validate:"required"`
	Profile     map[string]any `json:"profile,omitempty" validate:"excluded_with=ProfileName"`
	ProfileName string         `json:"profile_name,omitempty" validate:"omitempty,max=100,excludesall=/\\"`
	Clean       bool           `json:"clean,omitempty"`
	Metadata    bool           `json:"metadata,omitempty"`
}

// FilterResponse is the result of POST /filter.
type FilterResponse struct {
	Profile  *ProfileInfo `json:"profile"`
	Document Document     `json:"document"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Document Document `json:"document" validate:"required"`
	Strict   bool     `json:"strict,omitempty"`
}

// ValidateResponse is the result of POST /validate.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	ExitCode int    `json:"exit_code"`
	Summary  string `json:"summary"`
	*ValidationResult
}

// ProfileName constrains names accepted in URLs and by the profile store.
type ProfileName struct {
	Name string `validate:"required,max=100,excludesall=/\\"`
}

// Validate validates the FilterRequest using the validator.
func (r *FilterRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ValidateRequest using the validator.
func (r *ValidateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ProfileName using the validator.
func (n ProfileName) Validate() error {
	return validate.Struct(n)
}

var validate = newValidator()

// newValidator reports fields under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
