// Package main provides the career_coach CLI: the REST API server plus offline
// resume scoring, job ranking, search and job import commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configFile string
	debug      bool
	jsonLog    bool
	format     string
}

const (
	formatJSON = "json"
	formatText = "text"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "career_coach",
		Short: "Career assistance scoring service",
		Long: "career_coach scores resumes ATS-style, recommends and searches jobs by skill overlap, " +
			"and suggests skills. It runs as a REST API or as offline commands over JSON files and SQLite.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.format != formatJSON && opts.format != formatText {
				return fmt.Errorf("invalid --format %q: use json or text", opts.format)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to config file (default ./career_coach.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.jsonLog, "json-log", false, "Emit logs as JSON")
	cmd.PersistentFlags().StringVar(&opts.format, "format", formatJSON, "Output format: json or text")

	cmd.AddCommand(
		newServeCmd(opts),
		newScoreResumeCmd(opts),
		newRankJobsCmd(opts),
		newSearchJobsCmd(opts),
		newSuggestSkillsCmd(opts),
		newImportJobsCmd(opts),
		newMigrateCmd(opts),
		newCheckModelsCmd(opts),
	)
	return cmd
}

// load reads the application config and builds the logger. Flags override the
// config file and environment.
func (o *rootOptions) load(logOutput string) (*config.AppConfig, *zap.Logger, error) {
	v, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(v, o.configFile)
	if err != nil {
		return nil, nil, err
	}
	if o.debug {
		cfg.Log.Debug = true
	}
	if o.jsonLog {
		cfg.Log.JSON = true
	}

	log, err := logger.NewTo(logOutput, cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
