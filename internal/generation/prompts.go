package generation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-recommender/internal/prompts"
	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/types"
	schemafiles "github.com/jonathan/career-recommender/schemas"
)

const (
	promptFile = "recommend.json"

	keyStandardPlan = "standard-plan"
	keyStrictPlan   = "strict-plan"
	keyExplainFit   = "explain-fit"

	// maxPreviousOutput bounds how much rejected output is echoed into the strict prompt
	maxPreviousOutput = 4000
)

func (o *Orchestrator) planPrompt(stage Stage, profile *types.UserProfile, scored types.ScoredRole, previous, reason string) (string, error) {
	switch stage {
	case StageStandard:
		return standardPlanPrompt(profile, scored)
	case StageStrict:
		return strictPlanPrompt(scored, previous, reason)
	default:
		return "", fmt.Errorf("unknown generation stage %q", stage)
	}
}

func standardPlanPrompt(profile *types.UserProfile, scored types.ScoredRole) (string, error) {
	data := profileData(profile)
	data["RoleTitle"] = scored.Title
	data["RoleDescription"] = "(none)"
	data["RoleSkills"] = "(none)"
	if scored.Role != nil {
		if desc := strings.TrimSpace(scored.Role.Description); desc != "" {
			data["RoleDescription"] = desc
		}
		names := make([]string, 0, len(scored.Role.Skills))
		for _, skill := range scored.Role.Skills {
			names = append(names, skill.Name)
		}
		data["RoleSkills"] = joinList(names)
	}
	data["OverlapSkills"] = joinList(scored.OverlapSkills)
	data["GapSkills"] = joinList(scored.GapSkills)
	data["MaxTopics"] = strconv.Itoa(schemas.MaxTopics)
	data["MaxPractice"] = strconv.Itoa(schemas.MaxPractice)
	data["MaxTextLength"] = strconv.Itoa(schemas.MaxTextLength)

	return prompts.Render(promptFile, keyStandardPlan, data)
}

func strictPlanPrompt(scored types.ScoredRole, previous, reason string) (string, error) {
	schema, err := schemafiles.Read(schemafiles.Plan)
	if err != nil {
		return "", fmt.Errorf("failed to read plan schema: %w", err)
	}

	if strings.TrimSpace(previous) == "" {
		previous = "(no output)"
	}
	if reason == "" {
		reason = "output did not match the required structure"
	}

	return prompts.Render(promptFile, keyStrictPlan, map[string]string{
		"Reason":         reason,
		"PreviousOutput": truncate(previous, maxPreviousOutput),
		"RoleTitle":      scored.Title,
		"Schema":         string(schema),
	})
}

func whyPrompt(profile *types.UserProfile, scored types.ScoredRole) (string, error) {
	data := profileData(profile)
	data["RoleTitle"] = scored.Title
	data["FitScore"] = strconv.Itoa(scored.Score)
	data["OverlapSkills"] = joinList(scored.OverlapSkills)
	data["GapSkills"] = joinList(scored.GapSkills)
	data["MinLength"] = strconv.Itoa(schemas.MinWhyLength)
	data["MaxLength"] = strconv.Itoa(schemas.MaxWhyLength)

	return prompts.Render(promptFile, keyExplainFit, data)
}

func profileData(profile *types.UserProfile) map[string]string {
	if profile == nil {
		profile = &types.UserProfile{}
	}
	return map[string]string{
		"Name":       orNone(profile.Name),
		"Education":  orNone(profile.Education),
		"Skills":     joinList(profile.Skills),
		"Interests":  joinList(profile.Interests),
		"WeeklyTime": strconv.Itoa(profile.WeeklyTime),
		"Budget":     orNone(string(profile.Budget)),
		"Language":   orNone(string(profile.Language)),
	}
}

// joinList renders at most schemas.MaxSkillsShown names
func joinList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	if len(items) > schemas.MaxSkillsShown {
		return strings.Join(items[:schemas.MaxSkillsShown], ", ") + fmt.Sprintf(" and %d more", len(items)-schemas.MaxSkillsShown)
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
