// Package validation checks résumé documents against the résumé schema and reports every finding.
package validation

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	dateRegex  = regexp.MustCompile(`^([1-2][0-9]{3}(-[0-1][0-9](-[0-3][0-9])?)?|Present)$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlRegex   = regexp.MustCompile(`^https?://[a-zA-Z0-9.-]+(:[0-9]+)?(/.*)?$`)
)

// requiredRootFields must be present at the top level of every document
var requiredRootFields = []string{types.SectionBasics}

// Required fields per record kind
var (
	basicsRequired         = []string{"name", "email"}
	socialProfileRequired  = []string{"network", "url"}
	positionRequired       = []string{"job_title", "location", "start_date", "end_date"}
	positionProjectRequire = []string{"name", "description"}
	educationRequired      = []string{"institution", "area", "studyType", "startDate", "endDate"}
	awardRequired          = []string{"title", "date", "awarder"}
	certificationRequired  = []string{"title", "date", "url"}
	projectRequired        = []string{"name", "description", "startDate", "roles", "type"}
	volunteerRequired      = []string{"organization", "position", "startDate", "endDate"}
	specialtySkillRequired = []string{"name", "keywords"}
)

// Suggestions attached to recurring findings
const (
	dateSuggestion      = "Use YYYY-MM-DD, YYYY-MM, YYYY, or 'Present'"
	urlSuggestion       = "URL must start with http:// or https://"
	emailSuggestion     = "Use format: user@example.com"
	tagsTypeSuggestion  = "Use include_in: [all] or include_in: [leadership, technical]"
	tagsEmptySuggestion = "Use include_in: [all] for items that appear in all profiles"
	tagsAllSuggestion   = "Consider using just include_in: [all]"
)

// IsValidDate reports whether s is YYYY, YYYY-MM, YYYY-MM-DD or "Present"
func IsValidDate(s string) bool {
	return dateRegex.MatchString(s)
}

// IsValidEmail reports whether s looks like user@domain.tld
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidURL reports whether s is an http(s) URL
func IsValidURL(s string) bool {
	return urlRegex.MatchString(s)
}

func allowedTagsList() string {
	return strings.Join(types.AllowedTags, ", ")
}
