// Package types provides type definitions for structured data used throughout the career-recommender system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is the final output unit for one role
type Recommendation struct {
	RoleID        string   `json:"roleId"`
	Title         string   `json:"title"`
	FitScore      int      `json:"fitScore"`
	Why           string   `json:"why"`
	OverlapSkills []string `json:"overlapSkills"`
	GapSkills     []string `json:"gapSkills"`
	Plan          Plan     `json:"plan"`
	Source        Source   `json:"source"`
}

// Source is provenance for the generated fields of a recommendation
type Source struct {
	Plan PlanSource `json:"plan"`
	Why  WhySource  `json:"why"`
}

// RecommendationSet is the ranked output of one recommend call
type RecommendationSet struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// RoleIDs returns the ranked role IDs of the set
func (s *RecommendationSet) RoleIDs() []string {
	ids := make([]string, 0, len(s.Recommendations))
	for _, rec := range s.Recommendations {
		ids = append(ids, rec.RoleID)
	}
	return ids
}

// SavedSet is a persisted recommendation set with the profile it was built from
type SavedSet struct {
	ID        uuid.UUID         `json:"id"`
	Profile   UserProfile       `json:"profile"`
	Set       RecommendationSet `json:"set"`
	CreatedAt time.Time         `json:"createdAt"`
}
