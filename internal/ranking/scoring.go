// Package ranking scores catalog roles against a user profile and selects the best fits.
package ranking

import (
	"math"

	"github.com/jonathan/career-recommender/internal/parsing"
	"github.com/jonathan/career-recommender/internal/skills"
	"github.com/jonathan/career-recommender/internal/types"
)

// Fixed weights of the fit score. Explanations cite them, so they are not tunable per request.
const (
	CosineWeight  = 0.6
	OverlapWeight = 0.4
)

// Score combines cosine similarity and overlap ratio into a 0-100 fit score.
func Score(cosine, overlapRatio float64) int {
	raw := 100 * (CosineWeight*cosine + OverlapWeight*overlapRatio)
	score := int(math.Round(raw))

	// Ensure score is in valid range
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// PartitionSkills splits the role's skills into those the user already has and those still missing.
// Both lists keep role catalog order and the role's display names; no truncation is applied.
func PartitionSkills(userSkills []string, role *types.RoleDefinition) (overlap, gap []string) {
	overlap = make([]string, 0)
	gap = make([]string, 0)
	if role == nil {
		return overlap, gap
	}

	userSet := skills.UserSkillSet(userSkills)
	seen := make(map[string]bool, len(role.Skills))
	for _, skill := range role.Skills {
		normalized := parsing.NormalizeSkill(skill.Name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		if userSet[normalized] {
			overlap = append(overlap, skill.Name)
		} else {
			gap = append(gap, skill.Name)
		}
	}

	return overlap, gap
}

// ScoreRole computes the full ScoredRole for one catalog role.
func ScoreRole(userSkills []string, role *types.RoleDefinition) types.ScoredRole {
	cosine := skills.Cosine(skills.BuildUserVector(userSkills), skills.BuildRoleVector(role))
	overlapRatio := skills.OverlapRatio(userSkills, role)
	overlap, gap := PartitionSkills(userSkills, role)

	return types.ScoredRole{
		Role:          role,
		RoleID:        role.RoleID,
		Title:         role.Title,
		Score:         Score(cosine, overlapRatio),
		OverlapSkills: overlap,
		GapSkills:     gap,
		Metrics: types.ScoreMetrics{
			Cosine:       cosine,
			OverlapRatio: overlapRatio,
		},
	}
}
