// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Document is a parsed résumé: a mapping from section name to section content.
// Section content is whatever the loader produced (maps, slices, scalars).
type Document map[string]any

// Section names understood by the profile filter and the validator.
const (
	SectionBasics          = "basics"
	SectionWorkExperience  = "work_experience"
	SectionWork            = "work" // legacy flat list of positions
	SectionEducation       = "education"
	SectionAwards          = "awards"
	SectionCertifications  = "certifications"
	SectionCertificates    = "certificates" // legacy alternate of certifications
	SectionSpecialtySkills = "specialty_skills"
	SectionSkills          = "skills" // legacy alternate of specialty_skills
	SectionProjects        = "projects"
	SectionVolunteer       = "volunteer"
	SectionLanguages       = "languages"
	SectionInterests       = "interests"
	SectionMeta            = "meta"
)

// Field names with filtering semantics.
const (
	FieldIncludeIn        = "include_in"
	FieldResponsibilities = "responsibilities"
	FieldHighlights       = "highlights"
)

// TagAll is the tag that rescues untagged items.
const TagAll = "all"

// AllowedTags is the closed tag vocabulary accepted by the validator.
var AllowedTags = []string{
	TagAll,
	"leadership",
	"management",
	"technical",
	"development",
	"consulting",
	"startup",
}

// IsAllowedTag reports whether tag belongs to AllowedTags.
func IsAllowedTag(tag string) bool {
	for _, allowed := range AllowedTags {
		if tag == allowed {
			return true
		}
	}
	return false
}
