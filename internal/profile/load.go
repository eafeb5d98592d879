package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	schemafiles "github.com/jonathan/resume-builder/schemas"
	"gopkg.in/yaml.v3"
)

// DefaultDir is the profiles directory used when none is configured
const DefaultDir = "profiles"

var profileSchema = schemas.MustCompile("profile", schemafiles.Profile)

const fileExt = ".yaml"

// Source provides profiles by name
type Source interface {
	Load(ctx context.Context, name string) (*Profile, error)
	List(ctx context.Context) ([]string, error)
}

// DirSource serves profiles from <Dir>/<name>.yaml files
type DirSource struct {
	Dir string
}

// NewDirSource returns a Source reading from dir (DefaultDir when empty)
func NewDirSource(dir string) *DirSource {
	if dir == "" {
		dir = DefaultDir
	}
	return &DirSource{Dir: dir}
}

// Load implements Source
func (s *DirSource) Load(_ context.Context, name string) (*Profile, error) {
	return LoadProfile(name, s.Dir)
}

// List implements Source
func (s *DirSource) List(_ context.Context) ([]string, error) {
	return ListAvailableProfiles(s.Dir)
}

// LoadProfile loads <dir>/<name>.yaml.
//
// A missing file yields *ProfileNotFoundError. An empty, unparsable or non-mapping file,
// or one whose sections have the wrong types, yields *InvalidProfileError. A missing
// filters section is filled with an empty mapping and a missing filters.include_tags
// with ["all"].
func LoadProfile(name, dir string) (*Profile, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	if dir == "" {
		dir = DefaultDir
	}
	path := filepath.Join(dir, name+fileExt)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ProfileNotFoundError{Name: name, Path: path}
		}
		return nil, &InvalidProfileError{Name: name, Message: "failed to read profile", Cause: err}
	}

	return ParseProfile(name, content)
}

// CheckName applies the types.ProfileName rule, so a name always resolves to a file
// directly inside the profiles directory.
func CheckName(name string) error {
	if err := (types.ProfileName{Name: name}).Validate(); err != nil {
		return &InvalidProfileError{Name: name, Message: "invalid profile name", Cause: err}
	}
	return nil
}

// ParseProfile decodes YAML profile content. name is only used in error messages.
func ParseProfile(name string, content []byte) (*Profile, error) {
	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, &InvalidProfileError{Name: name, Message: "failed to parse profile", Cause: err}
	}
	if raw == nil {
		return nil, &InvalidProfileError{Name: name, Message: "profile is empty"}
	}

	mapping, ok := document.Normalize(raw).(map[string]any)
	if !ok {
		return nil, &InvalidProfileError{Name: name, Message: "profile must be a mapping"}
	}

	return FromMap(name, mapping)
}

// FromMap checks a decoded profile mapping against the profile schema, fills defaults
// into mapping, and returns the typed profile.
func FromMap(name string, mapping map[string]any) (*Profile, error) {
	if len(mapping) == 0 {
		return nil, &InvalidProfileError{Name: name, Message: "profile is empty"}
	}

	if err := profileSchema.ValidateValue(mapping); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &InvalidProfileError{
				Name:    name,
				Message: strings.Join(validationErr.Messages(), "; "),
			}
		}
		return nil, fmt.Errorf("failed to check profile schema: %w", err)
	}

	filters, ok := mapping["filters"].(map[string]any)
	if !ok {
		filters = map[string]any{}
		mapping["filters"] = filters
	}
	if _, present := filters["include_tags"]; !present {
		filters["include_tags"] = []any{"all"}
	}

	return Parse(mapping), nil
}

// ListAvailableProfiles returns the sorted names of profiles in dir.
// A directory that does not exist has no profiles.
func ListAvailableProfiles(dir string) ([]string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"+fileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles in %s: %w", dir, err)
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(match), fileExt))
	}
	sort.Strings(names)
	return names, nil
}
