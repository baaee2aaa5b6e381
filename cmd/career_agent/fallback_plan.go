package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-recommender/internal/fallback"
	"github.com/jonathan/career-recommender/internal/parsing"
	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/types"
)

var fallbackPlanCmd = &cobra.Command{
	Use:   "fallback-plan",
	Short: "Build the deterministic learning plan for a role title",
	Long:  "Builds the same template-based 4-week plan used when generation fails, for a role title and optional gap skills. A profile adds weekly-time and budget hints.",
	RunE:  runFallbackPlan,
}

var (
	fallbackPlanTitle   string
	fallbackPlanGaps    string
	fallbackPlanProfile string
	fallbackPlanOutput  string
)

func init() {
	fallbackPlanCmd.Flags().StringVarP(&fallbackPlanTitle, "title", "t", "", "Role title (required)")
	fallbackPlanCmd.Flags().StringVarP(&fallbackPlanGaps, "gaps", "g", "", "Comma-separated gap skills to weave into the plan")
	fallbackPlanCmd.Flags().StringVarP(&fallbackPlanProfile, "profile", "p", "", "Path to UserProfile JSON file (optional)")
	fallbackPlanCmd.Flags().StringVarP(&fallbackPlanOutput, "out", "o", "", "Path to output Plan JSON file (defaults to stdout)")

	if err := fallbackPlanCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}

	rootCmd.AddCommand(fallbackPlanCmd)
}

// splitGaps parses a comma-separated skill list, dropping blanks and case-insensitive duplicates
func splitGaps(raw string) []string {
	var gaps []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		gap := strings.Join(strings.Fields(part), " ")
		key := parsing.NormalizeSkill(gap)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		gaps = append(gaps, gap)
	}
	return gaps
}

func runFallbackPlan(cmd *cobra.Command, _ []string) error {
	var profile *types.UserProfile
	if fallbackPlanProfile != "" {
		loaded, err := loadProfile(fallbackPlanProfile)
		if err != nil {
			return err
		}
		profile = loaded
	}

	plan := fallback.BuildPlan(fallbackPlanTitle, splitGaps(fallbackPlanGaps), profile)
	if err := schemas.ValidatePlan(plan); err != nil {
		return fmt.Errorf("fallback plan failed validation: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), fallbackPlanOutput, plan)
}
