package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/types"
)

// Validate walks every section of doc and returns all findings.
//
// Validate never fails: wrong container types, missing fields and malformed values are
// recorded as errors and traversal continues, so one call reports every defect.
func Validate(doc types.Document) *types.ValidationResult {
	c := &checker{result: types.NewValidationResult()}

	c.structure(doc)
	c.basics(doc[types.SectionBasics])
	c.workExperience(doc[types.SectionWorkExperience])
	c.records(types.SectionEducation, doc[types.SectionEducation], c.education)
	c.records(types.SectionAwards, doc[types.SectionAwards], c.award)
	c.records(types.SectionCertifications, doc[types.SectionCertifications], c.certification)
	c.records(types.SectionProjects, doc[types.SectionProjects], c.project)
	c.records(types.SectionVolunteer, doc[types.SectionVolunteer], c.volunteer)
	c.records(types.SectionSpecialtySkills, doc[types.SectionSpecialtySkills], c.specialtySkill)

	return c.result
}

// ValidateFile loads the document at path and validates it. A file that cannot be
// read or parsed yields a result holding a single "file" error.
func ValidateFile(path string) *types.ValidationResult {
	doc, err := document.Load(path)
	if err != nil {
		result := types.NewValidationResult()
		switch {
		case errors.Is(err, fs.ErrNotExist):
			result.AddError("file", fmt.Sprintf("File not found: %s", path), "")
		case errors.Is(err, document.ErrEmptyDocument):
			result.AddError("file", "File is empty", "")
		default:
			var loadErr *document.LoadError
			if errors.As(err, &loadErr) && loadErr.Cause != nil && !isReadError(loadErr) {
				result.AddError("file", fmt.Sprintf("Parsing error: %v", loadErr.Cause),
					"Check for invalid YAML syntax, missing colons, or incorrect indentation")
			} else {
				result.AddError("file", err.Error(), "")
			}
		}
		return result
	}
	return Validate(doc)
}

func isReadError(err *document.LoadError) bool {
	var pathErr *fs.PathError
	return errors.As(err.Cause, &pathErr)
}

// checker accumulates findings for one document
type checker struct {
	result *types.ValidationResult
}

func (c *checker) structure(doc types.Document) {
	for _, field := range requiredRootFields {
		if _, ok := doc[field]; !ok {
			c.result.AddError("root",
				fmt.Sprintf("Missing required field: %s", field),
				fmt.Sprintf("Add '%s:' section to your resume", field))
		}
	}
}

func (c *checker) basics(value any) {
	if isBlank(value) {
		return
	}
	basics, ok := asRecord(value)
	if !ok {
		c.result.AddError(types.SectionBasics, fmt.Sprintf("basics must be an object, got %s", document.TypeName(value)), "")
		return
	}

	for _, field := range basicsRequired {
		if _, ok := basics[field]; !ok {
			c.result.AddError(types.SectionBasics,
				fmt.Sprintf("Missing required field: %s", field),
				fmt.Sprintf("Add 'basics.%s' to your resume", field))
		}
	}

	if email, ok := basics["email"]; ok && !isBlank(email) {
		if s, isString := email.(string); !isString || !IsValidEmail(s) {
			c.result.AddError("basics.email", fmt.Sprintf("Invalid email format: %v", email), emailSuggestion)
		}
	}
	if url, ok := basics["url"]; ok && !isBlank(url) {
		if !matchesURL(url) {
			c.result.AddError("basics.url", fmt.Sprintf("Invalid URL format: %v", url), urlSuggestion)
		}
	}

	if profiles, ok := basics["profiles"]; ok && !isBlank(profiles) {
		c.records("basics.profiles", profiles, c.socialProfile)
	}
}

func (c *checker) socialProfile(path string, profile map[string]any) {
	c.required(path, profile, socialProfileRequired)
	c.url(path, profile, "url", "Invalid URL")
}

func (c *checker) workExperience(value any) {
	if isBlank(value) {
		return
	}
	companies, ok := asRecord(value)
	if !ok {
		c.result.AddError(types.SectionWorkExperience, "work_experience must be an object with company names as keys", "")
		return
	}

	names := make([]string, 0, len(companies))
	for name := range companies {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, company := range names {
		path := fmt.Sprintf("%s.%s", types.SectionWorkExperience, company)
		positions, ok := asList(companies[company])
		if !ok {
			c.result.AddError(path, "Company entry must be an array of positions", "")
			continue
		}
		for idx, item := range positions {
			positionPath := fmt.Sprintf("%s[%d]", path, idx)
			position, ok := asRecord(item)
			if !ok {
				c.result.AddError(positionPath, fmt.Sprintf("Position must be an object, got %s", document.TypeName(item)), "")
				continue
			}
			c.position(positionPath, position)
			total++
		}
	}
	c.result.AddInfo(types.SectionWorkExperience, fmt.Sprintf("%d companies, %d positions", len(companies), total))
}

func (c *checker) position(path string, position map[string]any) {
	c.required(path, position, positionRequired)
	c.date(path, position, "start_date")
	c.date(path, position, "end_date")
	c.tags(path, position)
	c.bullets(path, position, types.FieldResponsibilities, "Responsibility")
	c.bullets(path, position, types.FieldHighlights, "Highlight")

	if projects, ok := position["projects"]; ok && !isBlank(projects) {
		c.records(path+".projects", projects, c.positionProject)
	}
}

func (c *checker) positionProject(path string, project map[string]any) {
	c.required(path, project, positionProjectRequire)
	c.tags(path, project)
	c.bullets(path, project, types.FieldHighlights, "Highlight")
}

func (c *checker) education(path string, entry map[string]any) {
	c.required(path, entry, educationRequired)
	c.date(path, entry, "startDate")
	c.date(path, entry, "endDate")
	c.tags(path, entry)
}

func (c *checker) award(path string, award map[string]any) {
	c.required(path, award, awardRequired)
	c.date(path, award, "date")
	c.tags(path, award)
}

func (c *checker) certification(path string, cert map[string]any) {
	c.required(path, cert, certificationRequired)
	if acronym, ok := cert["acronym"]; ok && acronym != nil {
		if _, isString := acronym.(string); !isString {
			c.result.AddError(path+".acronym", "Acronym must be a string", "")
		}
	}
	c.date(path, cert, "date")
	c.url(path, cert, "url", "Invalid URL")
	c.url(path, cert, "badge_url", "Invalid badge URL")
	c.tags(path, cert)
}

func (c *checker) project(path string, project map[string]any) {
	c.required(path, project, projectRequired)
	c.date(path, project, "startDate")
	c.date(path, project, "endDate")
	c.url(path, project, "url", "Invalid URL")
	c.tags(path, project)
	c.bullets(path, project, types.FieldHighlights, "Highlight")
}

func (c *checker) volunteer(path string, entry map[string]any) {
	c.required(path, entry, volunteerRequired)
	c.date(path, entry, "startDate")
	c.date(path, entry, "endDate")
	c.tags(path, entry)
}

func (c *checker) specialtySkill(path string, skill map[string]any) {
	c.required(path, skill, specialtySkillRequired)
	c.tags(path, skill)
}

// records validates a list section entry by entry. Blank values are skipped.
func (c *checker) records(section string, value any, check func(path string, record map[string]any)) {
	if isBlank(value) {
		return
	}
	entries, ok := asList(value)
	if !ok {
		c.result.AddError(section, fmt.Sprintf("%s must be an array, got %s", section, document.TypeName(value)), "")
		return
	}
	for idx, item := range entries {
		path := fmt.Sprintf("%s[%d]", section, idx)
		record, ok := asRecord(item)
		if !ok {
			c.result.AddError(path, fmt.Sprintf("Entry must be an object, got %s", document.TypeName(item)), "")
			continue
		}
		check(path, record)
	}
	if !strings.Contains(section, ".") {
		c.result.AddInfo(section, fmt.Sprintf("%d entries", len(entries)))
	}
}

func (c *checker) required(path string, record map[string]any, fields []string) {
	for _, field := range fields {
		if _, ok := record[field]; !ok {
			c.result.AddError(path, fmt.Sprintf("Missing required field: %s", field), "")
		}
	}
}

func (c *checker) date(path string, record map[string]any, field string) {
	value, ok := record[field]
	if !ok {
		return
	}
	fieldPath := path + "." + field
	s, isString := value.(string)
	if !isString {
		c.result.AddError(fieldPath, fmt.Sprintf("Date must be a string, got %s", document.TypeName(value)), "")
		return
	}
	if !IsValidDate(s) {
		c.result.AddError(fieldPath, fmt.Sprintf("Invalid date format: %s", s), dateSuggestion)
	}
}

func (c *checker) url(path string, record map[string]any, field, message string) {
	value, ok := record[field]
	if !ok || isBlank(value) {
		return
	}
	if !matchesURL(value) {
		c.result.AddError(path+"."+field, fmt.Sprintf("%s: %v", message, value), urlSuggestion)
	}
}

// tags checks include_in against the closed vocabulary. Mixing "all" with other
// tags is redundant and only warned about.
func (c *checker) tags(path string, record map[string]any) {
	value, ok := record[types.FieldIncludeIn]
	if !ok {
		return
	}
	fieldPath := path + "." + types.FieldIncludeIn

	tags, ok := asList(value)
	if !ok {
		c.result.AddError(fieldPath, fmt.Sprintf("include_in must be an array, got %s", document.TypeName(value)), tagsTypeSuggestion)
		return
	}
	if len(tags) == 0 {
		c.result.AddError(fieldPath, "include_in array cannot be empty", tagsEmptySuggestion)
		return
	}

	var invalid []string
	hasAll := false
	for _, tag := range tags {
		s, isString := tag.(string)
		if s == types.TagAll {
			hasAll = true
		}
		if !isString || !types.IsAllowedTag(s) {
			invalid = append(invalid, fmt.Sprint(tag))
		}
	}
	if len(invalid) > 0 {
		c.result.AddError(fieldPath,
			fmt.Sprintf("Invalid tags: %s", strings.Join(invalid, ", ")),
			fmt.Sprintf("Allowed tags: %s", allowedTagsList()))
	}
	if hasAll && len(tags) > 1 {
		c.result.AddWarning(fieldPath,
			"Tag 'all' is present with other tags. The 'all' tag makes other tags redundant.",
			tagsAllSuggestion)
	}
}

// bullets checks a bullet list: each entry is a string or an object with a description
func (c *checker) bullets(path string, record map[string]any, field, label string) {
	value, ok := record[field]
	if !ok || isBlank(value) {
		return
	}
	fieldPath := path + "." + field
	entries, ok := asList(value)
	if !ok {
		c.result.AddError(fieldPath, fmt.Sprintf("%s must be an array, got %s", field, document.TypeName(value)), "")
		return
	}
	for idx, entry := range entries {
		entryPath := fmt.Sprintf("%s[%d]", fieldPath, idx)
		if _, isString := entry.(string); isString {
			continue
		}
		bullet, isRecord := asRecord(entry)
		if !isRecord {
			c.result.AddError(entryPath,
				fmt.Sprintf("%s must be a string or object with description and include_in", label), "")
			continue
		}
		if _, ok := bullet["description"]; !ok {
			c.result.AddError(entryPath, fmt.Sprintf("%s object must have 'description' field", label), "")
		}
		c.tags(entryPath, bullet)
	}
}

func matchesURL(value any) bool {
	s, ok := value.(string)
	return ok && IsValidURL(s)
}

// asRecord accepts both plain mappings and nested types.Document values
func asRecord(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case types.Document:
		return v, true
	default:
		return nil, false
	}
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// isBlank mirrors the "empty value" notion of the document format: null, false, zero,
// empty strings and empty containers.
func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int:
		return v == 0
	case float64:
		return v == 0
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
