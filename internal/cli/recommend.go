package cli

import (
	"context"
	"fmt"

	"jobmatch/internal/common"
	"jobmatch/internal/errors"
	"jobmatch/internal/types"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [resume-file]",
	Short: "Rank job postings against a resume",
	Long: `Rank the job postings from the configured feeds against a resume.
The command takes one argument: the path to the resume file. Plain text,
PDF and DOCX resumes are supported. Use --location to filter postings by
location and --top-k to control how many matches are returned.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if recommendConfig.OutputFormat == "" {
			recommendConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(recommendConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runRecommend,
}

var recommendConfig common.CommandConfig

var (
	recommendLocation string
	recommendTopK     int
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	recommendCmd.Flags().StringVar(&recommendConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	recommendCmd.Flags().StringVarP(&recommendLocation, "location", "l", "", "Filter postings by location substring")
	recommendCmd.Flags().IntVarP(&recommendTopK, "top-k", "k", 0, "Number of matches to return (default from config)")

	// Add completion for format flag
	_ = recommendCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	recommender := buildRecommender(cfg, logger)
	if recommender.CorpusSize() == 0 {
		return errors.NewDataError(errors.ErrCodeEmptyCorpus,
			"no job postings loaded, check the configured feed paths", nil)
	}

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(resumeText string, cfg common.CommandConfig) {
		logger.Info("Starting job recommendation",
			"resume_chars", len(resumeText),
			"location_filter", recommendLocation,
			"top_k", recommendTopK,
			"output_format", cfg.OutputFormat)
	}

	recommendOperation := func(ctx context.Context, resumeText string) (*types.RecommendationResult, error) {
		result := recommender.Recommend(ctx, resumeText, recommendLocation, recommendTopK)
		if !result.Success {
			return nil, errors.NewInternalError("RECOMMENDATION_FAILED",
				result.Error, nil)
		}
		return result, nil
	}

	err := common.RunPipelineCommand(
		cmd.Context(),
		logger,
		recommendConfig,
		args,
		createInput,
		recommendOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to recommend jobs: %w", err)
	}
	logger.Info("Job recommendation completed successfully")
	return nil
}
