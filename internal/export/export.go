package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mohae/deepcopy"

	"github.com/jonathan/resume-builder/internal/filtering"
	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/types"
)

// Metadata values written under export_meta
const (
	MetaKey       = "export_meta"
	Generator     = "resume-builder/export"
	FormatVersion = "1.0"
)

// Options controls how documents are rendered
type Options struct {
	// Compact disables indentation
	Compact bool
	// NoMetadata omits the export_meta section
	NoMetadata bool
	// Now overrides the export timestamp, mainly for tests
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Clean returns a deep copy of doc with every include_in key removed, at any depth.
// Tags only drive filtering and are not part of the published résumé.
func Clean(doc types.Document) types.Document {
	if doc == nil {
		return nil
	}
	cleaned := deepcopy.Copy(map[string]any(doc)).(map[string]any)
	stripTags(cleaned)
	return types.Document(cleaned)
}

func stripTags(v any) {
	switch val := v.(type) {
	case map[string]any:
		delete(val, types.FieldIncludeIn)
		for _, item := range val {
			stripTags(item)
		}
	case types.Document:
		stripTags(map[string]any(val))
	case []any:
		for _, item := range val {
			stripTags(item)
		}
	}
}

// WithMetadata returns a copy of doc carrying an export_meta section. The profile
// block is only added when info is not nil.
func WithMetadata(doc types.Document, info *types.ProfileInfo, exportedAt time.Time) types.Document {
	out := make(types.Document, len(doc)+1)
	for k, v := range doc {
		out[k] = deepcopy.Copy(v)
	}

	meta := map[string]any{
		"exported_at":    exportedAt.UTC().Format("2006-01-02T15:04:05.000000") + "Z",
		"generator":      Generator,
		"format_version": FormatVersion,
		"export_id":      uuid.NewString(),
	}
	if info != nil {
		name := info.Name
		if name == "" {
			name = "Unknown"
		}
		meta["profile"] = map[string]any{
			"name":        name,
			"slug":        info.Slug,
			"description": info.Description,
		}
	}
	out[MetaKey] = meta
	return out
}

// Build filters doc with p and prepares it for publishing: tags are removed and,
// unless disabled, export metadata is attached. A nil profile exports doc unfiltered.
func Build(doc types.Document, p *profile.Profile, opts Options) (types.Document, *types.ProfileInfo) {
	var info *types.ProfileInfo
	if p != nil {
		i := p.Info()
		info = &i
	}

	out := Clean(filtering.FilterResumeData(doc, p))
	if !opts.NoMetadata {
		out = WithMetadata(out, info, opts.now())
	}
	return out, info
}

// Render encodes doc as JSON. Non-ASCII text and HTML characters are written as-is.
func Render(doc types.Document, opts Options) ([]byte, error) {
	if doc == nil {
		doc = types.Document{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the artifact name for a profile: its output filename plus .json
func Filename(info *types.ProfileInfo) string {
	if info == nil || info.Filename == "" {
		return "resume.json"
	}
	return info.Filename + ".json"
}
