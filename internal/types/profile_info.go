// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ProfileInfo is the flat summary of a profile handed to renderers and exporters
type ProfileInfo struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Slug             string   `json:"slug"`
	IncludeTags      []string `json:"include_tags"`
	MaxBulletsPerJob *int     `json:"max_bullets_per_job"`
	Filename         string   `json:"filename"`
	TitleSuffix      string   `json:"title_suffix"`
}
