// Package document loads résumé documents from YAML or JSON files into generic mappings.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
	"gopkg.in/yaml.v3"
)

// Load reads a résumé document from path. Files ending in .json are parsed as JSON,
// everything else as YAML.
func Load(path string) (types.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}

	doc, err := Parse(content, format)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Format selects the parser used by Parse
type Format string

// Supported document formats
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Parse decodes raw content into a document. The top level must be a mapping.
func Parse(content []byte, format Format) (types.Document, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, &LoadError{Message: "no content", Cause: ErrEmptyDocument}
	}

	var raw any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(content, &raw); err != nil {
			return nil, &LoadError{Message: "failed to parse JSON", Cause: err}
		}
	default:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
		}
	}

	if raw == nil {
		return nil, &LoadError{Message: "no content", Cause: ErrEmptyDocument}
	}

	mapping, ok := Normalize(raw).(map[string]any)
	if !ok {
		return nil, &LoadError{Message: fmt.Sprintf("top level must be a mapping, got %s", TypeName(raw))}
	}
	return types.Document(mapping), nil
}
