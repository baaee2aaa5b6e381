package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

var allSchemas = []string{Plan, Recommendation, RecommendationSet, Catalog}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range allSchemas {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := Read(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v any
			assert.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_Compile(t *testing.T) {
	for _, schemaFile := range allSchemas {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := Read(schemaFile)
			require.NoError(t, err)

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err, "schema should compile: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_HaveTitle(t *testing.T) {
	for _, schemaFile := range allSchemas {
		data, err := Read(schemaFile)
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.NotEmpty(t, doc["title"], "%s should declare a title", schemaFile)
		assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
	}
}

func TestRead_Unknown(t *testing.T) {
	_, err := Read("missing.schema.json")
	assert.Error(t, err)
}
