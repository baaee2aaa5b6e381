package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-recommender/internal/config"
	"github.com/jonathan/career-recommender/internal/logging"
	"github.com/jonathan/career-recommender/internal/observability"
	"github.com/jonathan/career-recommender/internal/pipeline"
	"github.com/jonathan/career-recommender/internal/schemas"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend the best-fitting roles for a profile",
	Long: `Ranks the role catalog against a UserProfile JSON file and builds a 4-week learning plan
and fit explanation for each top role. Generation falls back to deterministic output whenever the
backend is unavailable or its output is rejected, so the command succeeds without an API key.

Configuration can be loaded from a JSON file using --config. Environment variables override the
file and command-line flags override both.`,
	RunE: runRecommend,
}

var (
	recommendConfigPath string
	recommendProfile    string
	recommendCatalog    string
	recommendOutput     string
	recommendProvider   string
	recommendAPIKey     string
	recommendTimeout    string
	recommendTopK       int
	recommendOffline    bool
	recommendVerbose    bool
)

func init() {
	recommendCmd.Flags().StringVar(&recommendConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	recommendCmd.Flags().StringVarP(&recommendProfile, "profile", "p", "", "Path to input UserProfile JSON file")
	recommendCmd.Flags().StringVarP(&recommendCatalog, "catalog", "c", "", "Path to role catalog JSON or YAML (defaults to the built-in catalog)")
	recommendCmd.Flags().StringVarP(&recommendOutput, "out", "o", "", "Path to output RecommendationSet JSON file (defaults to stdout)")
	recommendCmd.Flags().StringVar(&recommendProvider, "provider", "", "LLM provider: gemini or openai (defaults to LLM_PROVIDER env var, then gemini)")
	recommendCmd.Flags().StringVar(&recommendAPIKey, "api-key", "", "API key for the provider (optional, defaults to GEMINI_API_KEY or OPENAI_API_KEY env var)")
	recommendCmd.Flags().StringVar(&recommendTimeout, "timeout", "", "Per-call generation timeout, e.g. 15s")
	recommendCmd.Flags().IntVarP(&recommendTopK, "top-k", "k", 0, "Number of roles to recommend (default 3)")
	recommendCmd.Flags().BoolVar(&recommendOffline, "offline", false, "Skip the LLM backend and use deterministic plans and explanations")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(recommendConfigPath, func(cfg *config.Config) {
		if changed(cmd, "profile") {
			cfg.Profile = recommendProfile
		}
		if changed(cmd, "catalog") {
			cfg.Catalog = recommendCatalog
		}
		if changed(cmd, "out") {
			cfg.Output = recommendOutput
		}
		if changed(cmd, "provider") {
			cfg.Provider = recommendProvider
		}
		if changed(cmd, "api-key") {
			if cfg.Provider == "openai" {
				cfg.OpenAIAPIKey = recommendAPIKey
			} else {
				cfg.APIKey = recommendAPIKey
			}
		}
		if changed(cmd, "timeout") {
			cfg.GenerationTimeout = recommendTimeout
		}
		if changed(cmd, "top-k") {
			cfg.TopK = recommendTopK
		}
		if changed(cmd, "verbose") {
			cfg.Verbose = recommendVerbose
		}
	})
	if err != nil {
		return err
	}
	if cfg.Profile == "" {
		return fmt.Errorf("--profile is required (via flag or config)")
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	profile, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}
	roles, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	client, err := newClient(ctx, cfg, recommendOffline, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	printer := observability.NewPrinter(os.Stderr)
	if cfg.Verbose {
		printer.PrintProfile(profile)
	}

	set, err := pipeline.Recommend(ctx, profile, roles, pipeline.RecommendOptions{
		Client:  client,
		Timeout: cfg.Timeout(),
		TopK:    cfg.TopK,
		Logger:  logger,
		OnProgress: func(event pipeline.ProgressEvent) {
			logger.Debug(event.Message, zap.String("step", event.Step), zap.String("role_id", event.RoleID))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build recommendations: %w", err)
	}

	// Never write output that does not match the recommendation schema
	if err := schemas.ValidateRecommendationSet(*set); err != nil {
		return fmt.Errorf("generated recommendations failed validation: %w", err)
	}

	if cfg.Verbose {
		printer.PrintRecommendations(set)
	}

	if err := writeJSON(cmd.OutOrStdout(), cfg.Output, set); err != nil {
		return err
	}
	if cfg.Output != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote %d recommendations to %s\n", len(set.Recommendations), cfg.Output)
	}

	return nil
}
