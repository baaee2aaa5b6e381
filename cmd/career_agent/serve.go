package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-recommender/internal/config"
	"github.com/jonathan/career-recommender/internal/logging"
	"github.com/jonathan/career-recommender/internal/server"
	"github.com/jonathan/career-recommender/internal/store"
)

var (
	serveConfigPath string
	servePort       int
	serveCatalog    string
	serveDatabase   string
	serveRedisAddr  string
	serveOffline    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for building, streaming and fetching recommendations.

Sets are kept in PostgreSQL when DATABASE_URL (or --db-url) is set and in memory otherwise.
With REDIS_ADDR (or --redis-addr) reads are served from a Redis cache whose entries expire after share_ttl_hours.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveCatalog, "catalog", "c", "", "Path to role catalog JSON or YAML (defaults to the built-in catalog)")
	serveCmd.Flags().StringVar(&serveDatabase, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveRedisAddr, "redis-addr", "", "Redis address (optional, defaults to REDIS_ADDR env var)")
	serveCmd.Flags().BoolVar(&serveOffline, "offline", false, "Skip the LLM backend and use deterministic plans and explanations")
	rootCmd.AddCommand(serveCmd)
}

// openStore picks PostgreSQL or memory as the primary store and puts Redis in front when configured
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	var primary store.Store = store.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("using PostgreSQL store")
		primary = pg
	} else {
		logger.Warn("DATABASE_URL not set; recommendation sets are kept in memory only")
	}

	if cfg.RedisAddr == "" {
		return primary, nil
	}

	cache, err := store.ConnectRedis(ctx, store.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.ShareTTL(),
	}, logger)
	if err != nil {
		_ = primary.Close()
		return nil, err
	}
	return store.NewCachedStore(primary, cache, logger), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(serveConfigPath, func(cfg *config.Config) {
		if changed(cmd, "port") {
			cfg.Port = servePort
		}
		if changed(cmd, "catalog") {
			cfg.Catalog = serveCatalog
		}
		if changed(cmd, "db-url") {
			cfg.DatabaseURL = serveDatabase
		}
		if changed(cmd, "redis-addr") {
			cfg.RedisAddr = serveRedisAddr
		}
	})
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	roles, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	client, err := newClient(ctx, cfg, serveOffline, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	srv, err := server.New(server.Config{
		Port:    cfg.Port,
		Store:   st,
		Catalog: roles,
		Client:  client,
		Timeout: cfg.Timeout(),
		TopK:    cfg.TopK,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
