package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-recommender/internal/config"
	"github.com/jonathan/career-recommender/internal/llm"
)

// resolveConfig layers configuration as file, then environment, then flags, then defaults.
// apply receives the partially built config and should copy only flags the user changed.
func resolveConfig(configPath string, apply func(cfg *config.Config)) (*config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	apply(&cfg)

	merged := cfg.MergeWithDefaults(config.Config{})
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// changed reports whether the named flag was set on the command line
func changed(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Changed(name)
}

// newClient builds the configured backend. Offline mode or a missing API key yields a
// nil client, which makes every plan and explanation deterministic.
func newClient(ctx context.Context, cfg *config.Config, offline bool, logger *zap.Logger) (llm.Client, error) {
	if offline {
		logger.Info("offline mode: using deterministic plans and explanations")
		return nil, nil
	}

	apiKey := cfg.ProviderAPIKey()
	if apiKey == "" {
		logger.Warn("no API key configured; using deterministic plans and explanations",
			zap.String("provider", cfg.Provider))
		return nil, nil
	}

	client, err := llm.NewClient(ctx, llm.ConfigForProvider(llm.Provider(cfg.Provider)), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}
