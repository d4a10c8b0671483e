package cli

import (
	"context"
	"fmt"

	"jobmatch/internal/common"
	"jobmatch/internal/skillgap"
	"jobmatch/internal/types"

	"github.com/spf13/cobra"
)

var skillGapCmd = &cobra.Command{
	Use:   "skillgap [resume-file] [job-description-file]",
	Short: "Analyze the skill gap between a resume and a job description",
	Long: `Analyze which skills a job description asks for that the resume does
not show, and suggest learning resources for the missing ones. The command
takes two arguments: the path to the resume file and the path to the job
description file. When a Gemini API key is configured the analysis uses the
model; otherwise it falls back to keyword matching.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if skillGapConfig.OutputFormat == "" {
			skillGapConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(skillGapConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runSkillGap,
}

var skillGapConfig common.CommandConfig

func init() {
	skillGapCmd.Flags().StringVarP(&skillGapConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	skillGapCmd.Flags().StringVar(&skillGapConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = skillGapCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runSkillGap(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	analyzer := skillgap.NewAnalyzer(cmd.Context(), &cfg.AI, logger)

	createInput := func(contents []string) (types.SkillGapInput, error) {
		if len(contents) != 2 {
			return types.SkillGapInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.SkillGapInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.SkillGapInput, cfg common.CommandConfig) {
		logger.Info("Starting skill gap analysis",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"model_available", analyzer.ModelAvailable(),
			"output_format", cfg.OutputFormat)
	}

	gapOperation := func(ctx context.Context, input types.SkillGapInput) (types.SkillGapResult, error) {
		return analyzer.AnalyzeWithResources(ctx, input), nil
	}

	err := common.RunPipelineCommand(
		cmd.Context(),
		logger,
		skillGapConfig,
		args,
		createInput,
		gapOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze skill gap: %w", err)
	}
	logger.Info("Skill gap analysis completed successfully")
	return nil
}
