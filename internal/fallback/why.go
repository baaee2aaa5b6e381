package fallback

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-recommender/internal/schemas"
)

const (
	maxOverlapCited = 4
	maxGapCited     = 3
	maxTitleRunes   = 80
	maxSkillRunes   = 40
)

const methodology = "according to a fit score that weights skill-vector similarity at 60% and direct skill overlap at 40%."

// BuildWhy returns a single templated sentence explaining a role match. The result is
// always between schemas.MinWhyLength and schemas.MaxWhyLength characters.
func BuildWhy(roleTitle string, overlap, gap []string) string {
	title := truncateRunes(strings.TrimSpace(roleTitle), maxTitleRunes)
	if title == "" {
		title = genericTitle
	}

	var sb strings.Builder
	if cited := citeSkills(overlap, maxOverlapCited); cited != "" {
		sb.WriteString(fmt.Sprintf("Your skills in %s match what a %s needs", cited, title))
	} else {
		sb.WriteString(fmt.Sprintf("You are starting fresh for %s", title))
	}

	if cited := citeSkills(gap, maxGapCited); cited != "" {
		sb.WriteString(fmt.Sprintf(", and learning %s will close the main gaps, ", cited))
	} else {
		sb.WriteString(", and you already cover its core skills, ")
	}
	sb.WriteString(methodology)

	return truncateRunes(sb.String(), schemas.MaxWhyLength)
}

// citeSkills joins up to limit names as "a, b and c"
func citeSkills(names []string, limit int) string {
	cited := make([]string, 0, limit)
	for _, name := range names {
		name = truncateRunes(strings.TrimSpace(name), maxSkillRunes)
		if name == "" {
			continue
		}
		cited = append(cited, name)
		if len(cited) == limit {
			break
		}
	}

	switch len(cited) {
	case 0:
		return ""
	case 1:
		return cited[0]
	default:
		return strings.Join(cited[:len(cited)-1], ", ") + " and " + cited[len(cited)-1]
	}
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit]))
}
