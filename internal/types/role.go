// Package types provides type definitions for structured data used throughout the career-recommender system.
package types

// DefaultSkillWeight is applied when a role skill declares no weight
const DefaultSkillWeight = 1.0

// SkillWeight is a single expected skill of a role
type SkillWeight struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// EffectiveWeight returns the declared weight, or DefaultSkillWeight when unset
func (s SkillWeight) EffectiveWeight() float64 {
	if s.Weight <= 0 {
		return DefaultSkillWeight
	}
	return s.Weight
}

// RoleDefinition is one entry of the static role catalog
type RoleDefinition struct {
	RoleID      string        `json:"roleId" yaml:"roleId"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Skills      []SkillWeight `json:"skills" yaml:"skills"`
}

// SkillVector maps a normalized skill name to a non-negative weight
type SkillVector map[string]float64

// ScoreMetrics holds the informational similarity measures behind a score
type ScoreMetrics struct {
	Cosine       float64 `json:"cosine"`
	OverlapRatio float64 `json:"overlapRatio"`
}

// ScoredRole is a catalog role scored against one profile
type ScoredRole struct {
	Role          *RoleDefinition `json:"-"`
	RoleID        string          `json:"roleId"`
	Title         string          `json:"title"`
	Score         int             `json:"score"`
	OverlapSkills []string        `json:"overlapSkills"`
	GapSkills     []string        `json:"gapSkills"`
	Metrics       ScoreMetrics    `json:"metrics"`
}
