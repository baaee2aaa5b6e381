package parsing

import (
	"strings"

	"github.com/jonathan/career-recommender/internal/types"
)

// MaxSkills is the maximum number of normalized skills kept from a profile
const MaxSkills = 50

// MaxInterests is the maximum number of interests kept from a profile
const MaxInterests = 20

// skillSynonyms groups equivalent skill spellings under one canonical name.
// Every alias and the canonical name itself resolve to the canonical name, so
// "js" and "javascript" compare equal in either direction.
var skillSynonyms = map[string][]string{
	"javascript":              {"js", "ecmascript", "es6"},
	"typescript":              {"ts"},
	"spreadsheets":            {"excel", "ms excel", "microsoft excel", "google sheets"},
	"go":                      {"golang", "go lang"},
	"kubernetes":              {"k8s"},
	"react":                   {"reactjs", "react.js"},
	"vue":                     {"vuejs", "vue.js"},
	"node.js":                 {"node", "nodejs"},
	"postgresql":              {"postgres", "psql"},
	"machine learning":        {"ml"},
	"artificial intelligence": {"ai"},
	"ux design":               {"ui/ux", "ux", "user experience"},
	"ui design":               {"ui", "user interface design"},
	"python":                  {"py", "python3"},
	"c++":                     {"cpp"},
	"c#":                      {"csharp", "c sharp"},
	"css":                     {"css3"},
	"html":                    {"html5"},
	"sql":                     {"structured query language"},
	"amazon web services":     {"aws"},
	"google cloud":            {"gcp", "google cloud platform"},
	"ci/cd":                   {"cicd", "continuous integration"},
	"data analysis":           {"data analytics"},
	"communication":           {"communication skills"},
}

// synonymIndex maps every known spelling to its canonical name
var synonymIndex = buildSynonymIndex(skillSynonyms)

func buildSynonymIndex(groups map[string][]string) map[string]string {
	index := make(map[string]string)
	for canonical, aliases := range groups {
		index[canonical] = canonical
		for _, alias := range aliases {
			index[alias] = canonical
		}
	}
	return index
}

// NormalizeSkill lowercases, trims and collapses whitespace in a skill token and
// resolves it to its canonical synonym. Returns "" for blank input.
func NormalizeSkill(skill string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(skill)), " ")
	if normalized == "" {
		return ""
	}
	if canonical, ok := synonymIndex[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkills canonicalizes a list of raw skill tokens. Duplicates are dropped
// keeping the first-seen order and the result is truncated to MaxSkills entries.
func NormalizeSkills(rawSkills []string) []string {
	normalized := make([]string, 0, min(len(rawSkills), MaxSkills))
	seen := make(map[string]bool, len(rawSkills))

	for _, raw := range rawSkills {
		skill := NormalizeSkill(raw)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		normalized = append(normalized, skill)
		if len(normalized) == MaxSkills {
			break
		}
	}

	return normalized
}

// SanitizeProfile returns a copy of the profile with trimmed text fields,
// normalized skills and deduplicated interests. The input is not modified.
func SanitizeProfile(profile types.UserProfile) types.UserProfile {
	sanitized := profile
	sanitized.Name = strings.TrimSpace(profile.Name)
	sanitized.Education = strings.TrimSpace(profile.Education)
	sanitized.Skills = NormalizeSkills(profile.Skills)
	sanitized.Budget = types.Budget(strings.ToLower(strings.TrimSpace(string(profile.Budget))))
	sanitized.Language = types.Language(strings.ToLower(strings.TrimSpace(string(profile.Language))))

	interests := make([]string, 0, len(profile.Interests))
	seen := make(map[string]bool, len(profile.Interests))
	for _, interest := range profile.Interests {
		trimmed := strings.Join(strings.Fields(interest), " ")
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		interests = append(interests, trimmed)
		if len(interests) == MaxInterests {
			break
		}
	}
	sanitized.Interests = interests

	return sanitized
}
