package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/career-coach/internal/ats"
	"github.com/jonathan/career-coach/internal/cache"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/ranking"
	"github.com/jonathan/career-coach/internal/server"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/jonathan/career-coach/internal/skills"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing resume scoring, job recommendations, search and account endpoints.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root, port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides server.port)")
	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, port int) error {
	cfg, log, err := root.load("stdout")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if port != 0 {
		cfg.Server.Port = port
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url (or DATABASE_URL) is required")
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to load password config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	results := cache.New(ctx, cache.Options{
		RedisURL:   cfg.Redis.URL,
		TTL:        cfg.Cache.TTL,
		MaxEntries: cfg.Cache.MaxEntries,
	}, log)
	defer func() { _ = results.Close() }()

	srv := server.New(server.Config{Port: cfg.Server.Port}, server.Deps{
		Users:                 store,
		Jobs:                  store,
		Scores:                store,
		Cache:                 results,
		Scorer:                ats.NewScorer(ats.LoadLinearModel(cfg.Scoring.ModelFile, log)),
		Matcher:               ranking.NewMatcher(skills.LoadTagWeights(cfg.Scoring.TagWeightsFile, log)),
		Search:                ranking.NewSearchRanker(),
		Suggester:             skills.NewSuggester(),
		JWT:                   jwtConfig,
		Passwords:             passwordConfig,
		RateLimit:             ratelimit.FromSettings(cfg.RateLimit),
		SearchLimits:          cfg.Search,
		RecommendationsLimits: cfg.Recommendations,
		Log:                   log,
	})

	log.Info("starting career_coach API",
		zap.Int("port", cfg.Server.Port),
		zap.Bool("redis", results.HasRedis()),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)
	return srv.Start(ctx)
}
