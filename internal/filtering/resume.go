package filtering

import (
	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/types"
)

// options carries the resolved profile settings to section handlers
type options struct {
	includeTags []string
	maxBullets  int
}

// sectionHandler filters one section value. It must return fresh data.
type sectionHandler func(value any, opts options) any

// sectionHandlers maps every filterable section to its handler. Sections not listed
// here (basics, meta, languages, interests, ...) pass through as deep copies.
var sectionHandlers = []struct {
	section string
	handler sectionHandler
}{
	{types.SectionWorkExperience, filterWorkExperienceSection},
	{types.SectionWork, filterWorkListSection},
	{types.SectionEducation, filterListSection},
	{types.SectionAwards, filterListSection},
	{types.SectionCertifications, filterListSection},
	{types.SectionCertificates, filterListSection},
	{types.SectionSpecialtySkills, filterListSection},
	{types.SectionSkills, filterListSection},
	{types.SectionProjects, filterProjectsSection},
}

func filterWorkExperienceSection(value any, opts options) any {
	return FilterWorkExperience(value, opts.includeTags, opts.maxBullets)
}

func filterWorkListSection(value any, opts options) any {
	return FilterWorkList(value, opts.includeTags, opts.maxBullets)
}

func filterListSection(value any, opts options) any {
	return FilterItems(value, opts.includeTags)
}

func filterProjectsSection(value any, opts options) any {
	return FilterProjects(value, opts.includeTags, opts.maxBullets)
}

// FilterResumeData applies a profile to a résumé document and returns a new document.
//
// A nil or empty document yields an empty document. A nil profile yields an untouched
// deep copy: no tag filtering and no bullet truncation. Otherwise every known section
// present in doc is filtered independently and all other sections are copied as-is.
// doc is never modified.
func FilterResumeData(doc types.Document, p *profile.Profile) types.Document {
	if len(doc) == 0 {
		return types.Document{}
	}
	if p == nil {
		return CopyDocument(doc)
	}

	opts := options{
		includeTags: p.Filters.IncludeTags,
		maxBullets:  p.Filters.BulletLimit(),
	}
	if opts.includeTags == nil {
		opts.includeTags = []string{types.TagAll}
	}

	filtered := make(types.Document, len(doc))
	handled := make(map[string]bool, len(sectionHandlers))
	for _, sh := range sectionHandlers {
		value, present := doc[sh.section]
		if !present {
			continue
		}
		filtered[sh.section] = sh.handler(value, opts)
		handled[sh.section] = true
	}

	for section, value := range doc {
		if !handled[section] {
			filtered[section] = copyValue(value)
		}
	}
	return filtered
}

// FilterWithRawProfile is FilterResumeData for a profile still in mapping form.
// An empty mapping means "no profile".
func FilterWithRawProfile(doc types.Document, raw map[string]any) types.Document {
	return FilterResumeData(doc, profile.Parse(raw))
}

// FilterSections reports which sections FilterResumeData filters rather than copies
func FilterSections() []string {
	out := make([]string, 0, len(sectionHandlers))
	for _, sh := range sectionHandlers {
		out = append(out, sh.section)
	}
	return out
}
