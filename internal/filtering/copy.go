// Package filtering applies profile rules to résumé documents: tag-scoped item selection
// and per-position bullet limits. Every function returns freshly copied data and never
// mutates its input.
package filtering

import (
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/mohae/deepcopy"
)

// copyValue returns a structural deep copy of v
func copyValue(v any) any {
	return deepcopy.Copy(v)
}

// CopyDocument returns a deep copy of doc. A nil document copies to an empty one.
func CopyDocument(doc types.Document) types.Document {
	if doc == nil {
		return types.Document{}
	}
	return deepcopy.Copy(doc).(types.Document)
}

// asList returns v as a generic list, reporting false for anything that is not a list
func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []map[string]any:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, true
	case []string:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// asRecord returns v as a mapping, reporting false for non-mappings
func asRecord(v any) (map[string]any, bool) {
	switch record := v.(type) {
	case map[string]any:
		return record, true
	case types.Document:
		return map[string]any(record), true
	default:
		return nil, false
	}
}
