package schemas

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken", `{"type": 12}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "failed to load schema broken")

	assert.Panics(t, func() { MustCompile("broken", `{"type": 12}`) })
}

func TestSchema_ValidateJSON(t *testing.T) {
	person := MustCompile("person", personSchema)

	assert.NoError(t, person.ValidateJSON([]byte(`{"name": "Jane", "age": 30}`)))

	err := person.ValidateJSON([]byte(`{"age": 30}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Error(), "person validation failed")

	err = person.ValidateJSON([]byte(`{"name": `))
	require.Error(t, err)
	assert.False(t, errors.As(err, &validationErr))
}

func TestSchema_ValidateValue_WrongType(t *testing.T) {
	err := MustCompile("person", personSchema).ValidateValue(map[string]any{"name": "Jane", "age": "thirty"})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Messages(), 1)
	assert.Contains(t, validationErr.Messages()[0], "age")
}

func TestSchema_ProfileSchema(t *testing.T) {
	profile := MustCompile("profile", schemas.Profile)

	tests := []struct {
		name    string
		profile map[string]any
		wantErr bool
	}{
		{
			name: "full profile",
			profile: map[string]any{
				"profile": map[string]any{"name": "Technical", "slug": "technical"},
				"filters": map[string]any{"include_tags": []any{"technical", "all"}, "max_bullets_per_job": 4},
				"output":  map[string]any{"filename": "resume-technical"},
			},
		},
		{
			name:    "bare include_tags string",
			profile: map[string]any{"filters": map[string]any{"include_tags": "technical"}},
		},
		{
			name:    "null bullet limit",
			profile: map[string]any{"filters": map[string]any{"max_bullets_per_job": nil}},
		},
		{
			name:    "filters not a mapping",
			profile: map[string]any{"filters": []any{"technical"}},
			wantErr: true,
		},
		{
			name:    "fractional bullet limit",
			profile: map[string]any{"filters": map[string]any{"max_bullets_per_job": 2.5}},
			wantErr: true,
		},
		{
			name:    "numeric tags",
			profile: map[string]any{"filters": map[string]any{"include_tags": 7}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := profile.ValidateValue(tt.profile)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
