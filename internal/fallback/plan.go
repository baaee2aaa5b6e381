package fallback

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/types"
)

// maxGapsPerWeek bounds how many gap skills one week's topic names
const maxGapsPerWeek = 3

// genericTitle stands in for a missing role title
const genericTitle = "this role"

// BuildPlan returns a 4-week plan for a role. The same inputs always produce
// the same plan, and the result always passes schemas.ValidatePlan.
func BuildPlan(roleTitle string, gapSkills []string, profile *types.UserProfile) types.Plan {
	title := strings.TrimSpace(roleTitle)
	if title == "" {
		title = genericTitle
	}

	steps := genericSteps(title)
	if t := matchTrack(title); t != nil {
		steps = t.Steps
	}

	gapsByWeek := distributeGaps(gapSkills)
	hint := practiceHint(profile)

	weeks := make([]types.WeekPlan, 0, types.PlanWeeks)
	for i, s := range steps {
		n := i + 1

		topic := s.Topic
		if gaps := gapsByWeek[i]; len(gaps) > 0 {
			topic = fmt.Sprintf("%s (focus: %s)", topic, strings.Join(gaps, ", "))
		}

		project := s.Project
		if n == types.PlanWeeks && !strings.Contains(strings.ToLower(project), "capstone") {
			project = "Capstone: " + project
		}

		weeks = append(weeks, types.WeekPlan{
			Week:       n,
			Topics:     []string{clip(topic)},
			Practice:   []string{clip(s.Practice + hint)},
			Assessment: clip(fmt.Sprintf("Self-check quiz on week %d topics and a short written reflection", n)),
			Project:    clip(project),
		})
	}

	return types.Plan{Weeks: weeks}
}

// MatchTrack reports the track key a role title maps to, or "" for the generic template
func MatchTrack(roleTitle string) string {
	if t := matchTrack(roleTitle); t != nil {
		return t.Key
	}
	return ""
}

func matchTrack(roleTitle string) *track {
	words := titleTokens(roleTitle)
	if len(words) == 0 {
		return nil
	}
	compact := strings.Join(words, "")
	for i := range tracks {
		for _, keyword := range tracks[i].Keywords {
			if strings.Contains(compact, keyword) {
				return &tracks[i]
			}
		}
		for _, token := range tracks[i].Tokens {
			if slices.Contains(words, token) {
				return &tracks[i]
			}
		}
	}
	return nil
}

// titleTokens lowercases a title and splits it on anything but letters and digits.
// Joined back together, "Front-End Developer" and "frontend developer" compare equal.
func titleTokens(title string) []string {
	return strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func genericSteps(title string) [4]step {
	var steps [4]step
	for i := range steps {
		n := i + 1
		steps[i] = step{
			Topic:    fmt.Sprintf("Core concept %d for %s", n, title),
			Practice: fmt.Sprintf("Hands-on practice %d applying core concept %d", n, n),
			Project:  fmt.Sprintf("Mini project %d for %s", n, title),
		}
	}
	steps[3].Project = fmt.Sprintf("Capstone project demonstrating %s skills", title)
	return steps
}

// distributeGaps spreads gap skills over weeks 1-3 round robin
func distributeGaps(gapSkills []string) [4][]string {
	var byWeek [4][]string
	slot := 0
	for _, gap := range gapSkills {
		gap = strings.TrimSpace(gap)
		if gap == "" {
			continue
		}
		week := slot % 3
		if len(byWeek[week]) >= maxGapsPerWeek {
			break
		}
		byWeek[week] = append(byWeek[week], gap)
		slot++
	}
	return byWeek
}

func practiceHint(profile *types.UserProfile) string {
	if profile == nil {
		return ""
	}

	var parts []string
	if profile.WeeklyTime > 0 {
		parts = append(parts, fmt.Sprintf("about %d hours this week", profile.WeeklyTime))
	}
	switch profile.Budget {
	case types.BudgetFree:
		parts = append(parts, "using free resources")
	case types.BudgetLow:
		parts = append(parts, "using free or low-cost resources")
	}

	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// clip trims text to the schema length limit on a rune boundary
func clip(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= schemas.MaxTextLength {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:schemas.MaxTextLength]))
}
