package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-recommender/internal/observability"
	"github.com/jonathan/career-recommender/internal/ranking"
)

var rankRolesCmd = &cobra.Command{
	Use:   "rank-roles",
	Short: "Rank catalog roles against a profile",
	Long:  "Deterministically scores every catalog role against a UserProfile and outputs the ranked ScoredRole list as JSON, without generating plans or explanations.",
	RunE:  runRankRoles,
}

var (
	rankRolesProfile string
	rankRolesCatalog string
	rankRolesOutput  string
	rankRolesTopK    int
	rankRolesVerbose bool
)

func init() {
	rankRolesCmd.Flags().StringVarP(&rankRolesProfile, "profile", "p", "", "Path to input UserProfile JSON file (required)")
	rankRolesCmd.Flags().StringVarP(&rankRolesCatalog, "catalog", "c", "", "Path to role catalog JSON or YAML (defaults to the built-in catalog)")
	rankRolesCmd.Flags().StringVarP(&rankRolesOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	rankRolesCmd.Flags().IntVarP(&rankRolesTopK, "top-k", "k", 0, "Number of roles to keep (0 keeps every role)")
	rankRolesCmd.Flags().BoolVarP(&rankRolesVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	if err := rankRolesCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}

	rootCmd.AddCommand(rankRolesCmd)
}

func runRankRoles(cmd *cobra.Command, _ []string) error {
	if rankRolesTopK < 0 {
		return fmt.Errorf("top-k must be non-negative, got %d", rankRolesTopK)
	}

	profile, err := loadProfile(rankRolesProfile)
	if err != nil {
		return err
	}
	roles, err := loadCatalog(rankRolesCatalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	ranked, err := ranking.RankRoles(profile, roles, rankRolesTopK)
	if err != nil {
		return fmt.Errorf("failed to rank roles: %w", err)
	}

	if rankRolesVerbose {
		observability.NewPrinter(os.Stderr).PrintRankedRoles(ranked)
	}

	return writeJSON(cmd.OutOrStdout(), rankRolesOutput, ranked)
}
