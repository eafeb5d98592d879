package filtering

import "github.com/jonathan/resume-builder/internal/types"

// FilterWorkExperience filters work experience grouped by company.
//
// The input is a mapping of company name to a list of positions. Company values that are
// not lists and positions that are not records are skipped. Retained positions have their
// responsibilities and highlights truncated to maxBullets (zero or less means unlimited).
// Companies left without positions are omitted from the result.
func FilterWorkExperience(work any, includeTags []string, maxBullets int) map[string]any {
	filtered := map[string]any{}
	companies, ok := asRecord(work)
	if !ok || len(companies) == 0 {
		return filtered
	}

	set := newTagSet(includeTags)
	for company, value := range companies {
		positions, ok := asList(value)
		if !ok {
			continue
		}
		kept := filterPositions(positions, set, maxBullets)
		if len(kept) > 0 {
			filtered[company] = kept
		}
	}
	return filtered
}

// FilterWorkList filters the legacy flat list of positions, where every record carries
// its own company name. The position rule and bullet limits are the same as for grouped
// work experience, without the company grouping.
func FilterWorkList(work any, includeTags []string, maxBullets int) []any {
	positions, ok := asList(work)
	if !ok {
		return []any{}
	}
	return filterPositions(positions, newTagSet(includeTags), maxBullets)
}

func filterPositions(positions []any, set tagSet, maxBullets int) []any {
	kept := make([]any, 0, len(positions))
	for _, item := range positions {
		position, ok := asRecord(item)
		if !ok {
			continue
		}
		if !set.admits(positionTags(position)) {
			continue
		}
		copied := copyValue(position).(map[string]any)
		limitField(copied, types.FieldResponsibilities, maxBullets)
		limitField(copied, types.FieldHighlights, maxBullets)
		kept = append(kept, copied)
	}
	return kept
}

// FilterProjects filters projects by tag and truncates each retained project's
// highlights to maxBullets.
func FilterProjects(projects any, includeTags []string, maxBullets int) []any {
	filtered := FilterItems(projects, includeTags)
	if maxBullets <= 0 {
		return filtered
	}
	for _, item := range filtered {
		if project, ok := asRecord(item); ok {
			limitField(project, types.FieldHighlights, maxBullets)
		}
	}
	return filtered
}
