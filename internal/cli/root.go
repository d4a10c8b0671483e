package cli

import (
	"context"

	"jobmatch/internal/analyze"
	"jobmatch/internal/config"
	"jobmatch/internal/corpus"
	"jobmatch/internal/errors"
	"jobmatch/internal/recommend"
	"jobmatch/internal/similarity"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "jobmatch",
	Short: "A CLI tool for matching resumes against job postings",
	Long: `Jobmatch ranks job postings from LinkedIn and Naukri feeds against a
resume using lexical and semantic similarity. It can also analyze the skill
gap between a resume and a specific job description and suggest learning
resources.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// buildRecommender loads the corpus and assembles the matching pipeline.
// A missing Gemini key degrades to lexical-only matching rather than failing.
func buildRecommender(cfg *config.Config, logger *errors.Logger) *recommend.Service {
	jobs := corpus.NewLoader(cfg.Corpus, logger).Load()

	embedder, err := similarity.NewEmbedder(&cfg.AI, logger)
	if err != nil {
		logger.LogError(err, "Semantic matching disabled")
		embedder = nil
	}

	engine := similarity.NewEngine(cfg.Matching, cfg.Corpus.CacheDir, embedder, logger)
	analyzer := analyze.NewAnalyzer(logger)

	return recommend.NewService(cfg.Matching, jobs, engine, analyzer, logger)
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(skillGapCmd)
	rootCmd.AddCommand(corpusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
