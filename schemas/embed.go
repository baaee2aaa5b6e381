// Package schemas holds the JSON Schema documents for every structured artifact
// the recommender reads or emits.
package schemas

import "embed"

// Files contains every *.schema.json document in this directory
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names
const (
	Plan              = "plan.schema.json"
	Recommendation    = "recommendation.schema.json"
	RecommendationSet = "recommendation_set.schema.json"
	Catalog           = "catalog.schema.json"
)

// Read returns the raw bytes of a named schema document
func Read(name string) ([]byte, error) {
	return Files.ReadFile(name)
}
