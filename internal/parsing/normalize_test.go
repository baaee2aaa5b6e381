package parsing

import (
	"fmt"
	"testing"

	"github.com/jonathan/career-recommender/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Python", "python"},
		{"trims whitespace", "  SQL  ", "sql"},
		{"collapses inner whitespace", "Data   Analysis", "data analysis"},
		{"js to javascript", "JS", "javascript"},
		{"javascript stays javascript", "JavaScript", "javascript"},
		{"excel to spreadsheets", "Excel", "spreadsheets"},
		{"spreadsheets stays spreadsheets", "spreadsheets", "spreadsheets"},
		{"golang to go", "golang", "go"},
		{"k8s to kubernetes", "K8s", "kubernetes"},
		{"reactjs to react", "ReactJS", "react"},
		{"nodejs to node.js", "nodejs", "node.js"},
		{"unknown multi-word kept", "Distributed Systems", "distributed systems"},
		{"empty string", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkill(tt.input))
		})
	}
}

func TestNormalizeSkill_SynonymsAreBidirectional(t *testing.T) {
	for canonical, aliases := range skillSynonyms {
		for _, alias := range aliases {
			assert.Equal(t, NormalizeSkill(canonical), NormalizeSkill(alias), "alias %q should match %q", alias, canonical)
		}
	}
}

func TestNormalizeSkills_DeduplicatesPreservingOrder(t *testing.T) {
	result := NormalizeSkills([]string{"HTML", "js", "CSS", "JavaScript", "html", " Excel ", "spreadsheets"})
	assert.Equal(t, []string{"html", "javascript", "css", "spreadsheets"}, result)
}

func TestNormalizeSkills_Empty(t *testing.T) {
	assert.Empty(t, NormalizeSkills(nil))
	assert.Empty(t, NormalizeSkills([]string{"", "  "}))
}

func TestNormalizeSkills_TruncatesToMax(t *testing.T) {
	raw := make([]string, 0, 70)
	for i := 0; i < 70; i++ {
		raw = append(raw, fmt.Sprintf("skill-%d", i))
	}

	result := NormalizeSkills(raw)

	assert.Len(t, result, MaxSkills)
	assert.Equal(t, "skill-0", result[0])
	assert.Equal(t, "skill-49", result[MaxSkills-1])
}

func TestSanitizeProfile(t *testing.T) {
	profile := types.UserProfile{
		Name:       "  Ravi  ",
		Education:  " Diploma ",
		Skills:     []string{"JS", "javascript", "Figma"},
		Interests:  []string{"Design", "design", "  ", "Games"},
		WeeklyTime: 5,
		Budget:     "FREE",
		Language:   " HI ",
	}

	sanitized := SanitizeProfile(profile)

	assert.Equal(t, "Ravi", sanitized.Name)
	assert.Equal(t, "Diploma", sanitized.Education)
	assert.Equal(t, []string{"javascript", "figma"}, sanitized.Skills)
	assert.Equal(t, []string{"Design", "Games"}, sanitized.Interests)
	assert.Equal(t, types.BudgetFree, sanitized.Budget)
	assert.Equal(t, types.LanguageHindi, sanitized.Language)

	// Input must not be modified
	assert.Equal(t, []string{"JS", "javascript", "Figma"}, profile.Skills)
}

func TestParseError(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := &ParseError{Message: "invalid plan JSON", Cause: cause}

	assert.Contains(t, err.Error(), "invalid plan JSON")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "parse error: no weeks", (&ParseError{Message: "no weeks"}).Error())
}
