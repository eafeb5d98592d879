package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"profile.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestProfileSchema_Embedded(t *testing.T) {
	data, err := os.ReadFile("profile.schema.json")
	require.NoError(t, err)
	assert.Equal(t, string(data), Profile)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(Profile), &schema))
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "profile")
	assert.Contains(t, props, "filters")
	assert.Contains(t, props, "output")
}
