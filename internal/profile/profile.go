// Package profile loads, validates and summarizes profile configurations.
package profile

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/jonathan/resume-builder/internal/types"
)

// Profile is the typed view of a profile configuration mapping
type Profile struct {
	Meta    Meta
	Filters Filters
	Output  Output

	// Raw is the mapping the profile was parsed from, with defaults filled in
	Raw map[string]any
}

// Meta is the "profile" section
type Meta struct {
	Name        string
	Description string
	Slug        string
}

// Filters is the "filters" section
type Filters struct {
	IncludeTags []string
	// MaxBulletsPerJob is nil when no limit was configured
	MaxBulletsPerJob *int
}

// Output is the "output" section
type Output struct {
	Filename    string
	TitleSuffix string
}

// BulletLimit returns the configured bullet cap, or 0 for unlimited
func (f Filters) BulletLimit() int {
	if f.MaxBulletsPerJob == nil || *f.MaxBulletsPerJob <= 0 {
		return 0
	}
	return *f.MaxBulletsPerJob
}

// Parse builds a Profile from a raw mapping. An empty mapping yields nil, which
// callers treat as "no profile".
//
// include_tags defaults to ["all"] when absent or empty-valued, and a bare value is
// coerced to a one-element list. max_bullets_per_job that is not an integer is ignored.
func Parse(raw map[string]any) *Profile {
	if len(raw) == 0 {
		return nil
	}

	meta := section(raw, "profile")
	filters := section(raw, "filters")
	output := section(raw, "output")

	return &Profile{
		Meta: Meta{
			Name:        stringField(meta, "name"),
			Description: stringField(meta, "description"),
			Slug:        stringField(meta, "slug"),
		},
		Filters: Filters{
			IncludeTags:      coerceIncludeTags(filters),
			MaxBulletsPerJob: coerceInt(filters["max_bullets_per_job"]),
		},
		Output: Output{
			Filename:    stringField(output, "filename"),
			TitleSuffix: stringField(output, "title_suffix"),
		},
		Raw: raw,
	}
}

// Info returns the flat profile summary used by renderers and exporters
func (p *Profile) Info() types.ProfileInfo {
	info := types.ProfileInfo{
		Name:             p.Meta.Name,
		Description:      p.Meta.Description,
		Slug:             p.Meta.Slug,
		IncludeTags:      append([]string(nil), p.Filters.IncludeTags...),
		MaxBulletsPerJob: p.Filters.MaxBulletsPerJob,
		Filename:         p.Output.Filename,
		TitleSuffix:      p.Output.TitleSuffix,
	}
	if info.Name == "" {
		info.Name = "Unknown"
	}
	if info.Filename == "" {
		info.Filename = "resume"
	}
	if info.IncludeTags == nil {
		info.IncludeTags = []string{types.TagAll}
	}
	return info
}

func section(raw map[string]any, key string) map[string]any {
	if m, ok := raw[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func coerceIncludeTags(filters map[string]any) []string {
	value, present := filters["include_tags"]
	if !present {
		return []string{types.TagAll}
	}

	switch v := value.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, tag := range v {
			tags = append(tags, fmt.Sprint(tag))
		}
		return tags
	case []string:
		return append([]string{}, v...)
	case nil:
		return []string{types.TagAll}
	case string:
		if v == "" {
			return []string{types.TagAll}
		}
		return []string{v}
	case bool:
		if !v {
			return []string{types.TagAll}
		}
		return []string{fmt.Sprint(v)}
	default:
		return []string{fmt.Sprint(v)}
	}
}

// coerceInt returns the integral value of v, or nil when v is not an integer
func coerceInt(v any) *int {
	var n int
	switch val := v.(type) {
	case int:
		n = val
	case int8:
		n = int(val)
	case int16:
		n = int(val)
	case int32:
		n = int(val)
	case int64:
		n = int(val)
	case uint:
		n = int(val)
	case uint8:
		n = int(val)
	case uint16:
		n = int(val)
	case uint32:
		n = int(val)
	case uint64:
		n = int(val)
	case float32:
		return coerceInt(float64(val))
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return nil
		}
		n = int(val)
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return nil
		}
		n = int(i)
	default:
		return nil
	}
	return &n
}

func isInt(v any) bool {
	return coerceInt(v) != nil
}
