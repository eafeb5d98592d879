package filtering

import "github.com/jonathan/resume-builder/internal/types"

// FilterItems returns deep copies of the items selected by includeTags, in input order.
//
// Records are selected by their include_in tags. Scalars (plain strings, numbers) carry
// no tags and are kept only when "all" is requested. A non-list input or an empty tag
// set yields an empty list.
func FilterItems(items any, includeTags []string) []any {
	list, ok := asList(items)
	if !ok || len(list) == 0 || len(includeTags) == 0 {
		return []any{}
	}

	set := newTagSet(includeTags)
	filtered := make([]any, 0, len(list))
	for _, item := range list {
		record, isRecord := asRecord(item)
		if !isRecord {
			if set.has(types.TagAll) {
				filtered = append(filtered, copyValue(item))
			}
			continue
		}
		if set.admits(itemTags(record)) {
			filtered = append(filtered, copyValue(item))
		}
	}
	return filtered
}

// LimitBullets returns a deep copy of the first max bullets. A max of zero or less
// means unlimited.
func LimitBullets(bullets []any, max int) []any {
	if len(bullets) == 0 {
		return []any{}
	}
	if max > 0 && len(bullets) > max {
		bullets = bullets[:max]
	}
	return copyValue(bullets).([]any)
}

// limitField truncates record[field] in place when it is a list. record must already
// be a private copy.
func limitField(record map[string]any, field string, max int) {
	value, present := record[field]
	if !present {
		return
	}
	if bullets, ok := asList(value); ok {
		record[field] = LimitBullets(bullets, max)
	}
}
