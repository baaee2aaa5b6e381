// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-recommender/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten truncates s to at most n runes, marking the cut with "..."
func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// skillList joins skills for display, showing at most maxItemsToShow
func skillList(skills []string) string {
	if len(skills) == 0 {
		return "(none)"
	}
	if len(skills) <= maxItemsToShow {
		return strings.Join(skills, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(skills[:maxItemsToShow], ", "), len(skills)-maxItemsToShow)
}

// PrintProfile outputs a human-readable summary of the sanitized profile.
func (p *Printer) PrintProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Education:  %s\n", profile.Education))
	sb.WriteString(fmt.Sprintf("Weekly:     %d hours\n", profile.WeeklyTime))
	sb.WriteString(fmt.Sprintf("Budget:     %s\n", profile.Budget))
	sb.WriteString(fmt.Sprintf("Language:   %s\n", profile.Language))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills (%d): %s\n", len(profile.Skills), skillList(profile.Skills)))
	sb.WriteString(fmt.Sprintf("Interests:  %s", skillList(profile.Interests)))

	p.printBox("USER PROFILE", sb.String())
}

// PrintRankedRoles outputs the scored roles in rank order.
func (p *Printer) PrintRankedRoles(ranked []types.ScoredRole) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total roles ranked: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		role := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, role.Title, role.RoleID))
		sb.WriteString(fmt.Sprintf("    Fit: %d  (cosine %.2f, overlap %.2f)\n", role.Score, role.Metrics.Cosine, role.Metrics.OverlapRatio))
		sb.WriteString(fmt.Sprintf("    Have: %s\n", skillList(role.OverlapSkills)))
		sb.WriteString(fmt.Sprintf("    Gaps: %s", skillList(role.GapSkills)))
		if i < count-1 {
			sb.WriteString("\n\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n\n... and %d more roles", len(ranked)-maxItemsToShow))
	}

	p.printBox("RANKED ROLES", sb.String())
}

// PrintPlan outputs one week per paragraph.
func (p *Printer) PrintPlan(title string, plan types.Plan) {
	if len(plan.Weeks) == 0 {
		return
	}

	var sb strings.Builder
	for i, week := range plan.Weeks {
		sb.WriteString(fmt.Sprintf("Week %d\n", week.Week))
		for _, topic := range week.Topics {
			sb.WriteString(fmt.Sprintf("  • %s\n", topic))
		}
		for _, practice := range week.Practice {
			sb.WriteString(fmt.Sprintf("  ✎ %s\n", practice))
		}
		sb.WriteString(fmt.Sprintf("  Check:   %s\n", week.Assessment))
		sb.WriteString(fmt.Sprintf("  Project: %s", week.Project))
		if i < len(plan.Weeks)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("PLAN: "+strings.ToUpper(title), sb.String())
}

// PrintRecommendations outputs a summary box per recommendation, followed by its plan.
func (p *Printer) PrintRecommendations(set *types.RecommendationSet) {
	if set == nil || len(set.Recommendations) == 0 {
		p.printBox("RECOMMENDATIONS", "No recommendations")
		return
	}

	for i, rec := range set.Recommendations {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Fit score: %d/100\n", rec.FitScore))
		sb.WriteString(fmt.Sprintf("Have:      %s\n", skillList(rec.OverlapSkills)))
		sb.WriteString(fmt.Sprintf("Gaps:      %s\n", skillList(rec.GapSkills)))
		sb.WriteString(fmt.Sprintf("Source:    plan=%s why=%s\n", rec.Source.Plan, rec.Source.Why))
		sb.WriteString("\n")
		for _, line := range wrap(rec.Why, boxWidth-4) {
			sb.WriteString(line + "\n")
		}

		p.printBox(fmt.Sprintf("#%d %s", i+1, rec.Title), strings.TrimRight(sb.String(), "\n"))
		p.PrintPlan(rec.Title, rec.Plan)
	}
}

// wrap splits text into lines of at most width runes on word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var line []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		if len(line) > 0 && len(line)+1+len(w) > width {
			lines = append(lines, string(line))
			line = nil
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, w...)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
