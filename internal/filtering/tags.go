package filtering

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// NormalizeTags converts a raw include_in value into a canonical tag list.
// Missing and nil values yield an empty list, any other bare scalar (the empty string
// included) yields a single-element list, and lists are returned with their members
// stringified.
func NormalizeTags(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		return []string{v}
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, member := range v {
			out = append(out, tagString(member))
		}
		return out
	default:
		return []string{tagString(v)}
	}
}

func tagString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// tagSet is the requested tag set of a filter call
type tagSet map[string]struct{}

func newTagSet(tags []string) tagSet {
	set := make(tagSet, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func (s tagSet) has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// admits applies the inclusion rule: the item's tags intersect the requested set, or
// the item is untagged and "all" was requested. "all" does not match tagged items
// that lack an intersecting tag.
func (s tagSet) admits(itemTags []string) bool {
	for _, tag := range itemTags {
		if s.has(tag) {
			return true
		}
	}
	return len(itemTags) == 0 && s.has(types.TagAll)
}

// NormalizePositionTags is NormalizeTags for work positions, where a falsy scalar
// ("", false or numeric zero) counts as untagged rather than as a one-element list.
func NormalizePositionTags(raw any) []string {
	if isFalsyScalar(raw) {
		return []string{}
	}
	return NormalizeTags(raw)
}

func isFalsyScalar(v any) bool {
	switch t := v.(type) {
	case string:
		return t == ""
	case bool:
		return !t
	case int:
		return t == 0
	case int64:
		return t == 0
	case uint64:
		return t == 0
	case float64:
		return t == 0
	default:
		return false
	}
}

// itemTags reads the include_in field of a section item
func itemTags(record map[string]any) []string {
	return NormalizeTags(record[types.FieldIncludeIn])
}

// positionTags reads the include_in field of a work position
func positionTags(position map[string]any) []string {
	return NormalizePositionTags(position[types.FieldIncludeIn])
}

// Matches reports whether an item carrying itemTags is selected by includeTags
func Matches(itemTags, includeTags []string) bool {
	if len(includeTags) == 0 {
		return false
	}
	return newTagSet(includeTags).admits(itemTags)
}
