// Package skills builds sparse weighted skill vectors and measures how closely
// a user's skills cover a role.
package skills

import (
	"maps"
	"math"
	"slices"

	"github.com/jonathan/career-recommender/internal/parsing"
	"github.com/jonathan/career-recommender/internal/types"
)

// BuildUserVector assigns weight 1.0 to every normalized user skill.
func BuildUserVector(userSkills []string) types.SkillVector {
	vector := make(types.SkillVector, len(userSkills))
	for _, skill := range userSkills {
		normalized := parsing.NormalizeSkill(skill)
		if normalized == "" {
			continue
		}
		vector[normalized] = 1.0
	}
	return vector
}

// BuildRoleVector assigns each role skill its declared weight (default 1.0).
// When a role lists the same normalized skill twice the larger weight wins.
func BuildRoleVector(role *types.RoleDefinition) types.SkillVector {
	if role == nil {
		return types.SkillVector{}
	}
	vector := make(types.SkillVector, len(role.Skills))
	for _, skill := range role.Skills {
		normalized := parsing.NormalizeSkill(skill.Name)
		if normalized == "" {
			continue
		}
		weight := skill.EffectiveWeight()
		if existing, ok := vector[normalized]; !ok || weight > existing {
			vector[normalized] = weight
		}
	}
	return vector
}

// Cosine computes the cosine similarity of two vectors over the union of their keys.
// Returns 0 when either vector has zero magnitude. Sums run in sorted key order,
// so the result is bit-for-bit stable across calls.
func Cosine(a, b types.SkillVector) float64 {
	magA := magnitude(a)
	magB := magnitude(b)
	if magA == 0 || magB == 0 {
		return 0
	}

	// Keys missing from one side contribute zero to the dot product
	dot := 0.0
	for _, key := range slices.Sorted(maps.Keys(a)) {
		if weightB, ok := b[key]; ok {
			dot += a[key] * weightB
		}
	}

	similarity := dot / (magA * magB)
	if similarity > 1 {
		return 1
	}
	if similarity < 0 {
		return 0
	}
	return similarity
}

func magnitude(v types.SkillVector) float64 {
	sum := 0.0
	for _, key := range slices.Sorted(maps.Keys(v)) {
		sum += v[key] * v[key]
	}
	return math.Sqrt(sum)
}

// OverlapRatio returns the share of the role's distinct skills that the user has.
// The denominator is always the role's skill count. Returns 0 for a role with no skills.
func OverlapRatio(userSkills []string, role *types.RoleDefinition) float64 {
	roleSkills := DistinctRoleSkills(role)
	if len(roleSkills) == 0 {
		return 0
	}

	userSet := UserSkillSet(userSkills)
	covered := 0
	for _, skill := range roleSkills {
		if userSet[skill] {
			covered++
		}
	}

	return float64(covered) / float64(len(roleSkills))
}

// UserSkillSet returns the set of normalized user skills.
func UserSkillSet(userSkills []string) map[string]bool {
	set := make(map[string]bool, len(userSkills))
	for _, skill := range userSkills {
		if normalized := parsing.NormalizeSkill(skill); normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

// DistinctRoleSkills returns the role's normalized skill names in catalog order without duplicates.
func DistinctRoleSkills(role *types.RoleDefinition) []string {
	if role == nil {
		return nil
	}
	seen := make(map[string]bool, len(role.Skills))
	distinct := make([]string, 0, len(role.Skills))
	for _, skill := range role.Skills {
		normalized := parsing.NormalizeSkill(skill.Name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		distinct = append(distinct, normalized)
	}
	return distinct
}
