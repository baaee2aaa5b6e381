package ranking

import (
	"sort"

	"github.com/jonathan/career-recommender/internal/types"
)

// DefaultTopK is the number of roles selected per profile
const DefaultTopK = 3

// RankTop3 returns the three best-fitting roles for a profile.
func RankTop3(profile *types.UserProfile, catalog []types.RoleDefinition) ([]types.ScoredRole, error) {
	return RankRoles(profile, catalog, DefaultTopK)
}

// RankRoles scores every catalog role and returns the top k by score, descending.
// Ties keep catalog order so identical input always yields the same ranking.
// A k of zero or less returns every role.
func RankRoles(profile *types.UserProfile, catalog []types.RoleDefinition, k int) ([]types.ScoredRole, error) {
	if len(catalog) == 0 {
		return nil, &EmptyCatalogError{}
	}

	var userSkills []string
	if profile != nil {
		userSkills = profile.Skills
	}

	scored := make([]types.ScoredRole, 0, len(catalog))
	for i := range catalog {
		scored = append(scored, ScoreRole(userSkills, &catalog[i]))
	}

	// Stable sort keeps the first-declared role ahead on equal scores
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}

	return scored, nil
}
