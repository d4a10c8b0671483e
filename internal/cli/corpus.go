package cli

import (
	"jobmatch/internal/classify"
	"jobmatch/internal/common"
	"jobmatch/internal/corpus"
	"jobmatch/internal/errors"
	"jobmatch/internal/types"

	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Load and inspect the configured job feeds",
	Long: `Load the configured job feeds the same way the matching pipeline does
and report what survives normalization and deduplication: posting counts per
source, skill coverage, and the experience-level distribution. Useful for
validating new feed files before serving them.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if corpusConfig.OutputFormat == "" {
			corpusConfig.OutputFormat = "json"
		}
		// Stats are a plain map, which only the JSON formatter accepts.
		return common.ValidateOutputFormat(corpusConfig.OutputFormat, []string{"json"})
	},
	RunE: runCorpus,
}

var corpusConfig common.CommandConfig

func init() {
	corpusCmd.Flags().StringVarP(&corpusConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	corpusCmd.Flags().StringVar(&corpusConfig.OutputFormat, "format", "", "Output format: json")
}

func runCorpus(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	jobs := corpus.NewLoader(cfg.Corpus, logger).Load()
	if len(jobs) == 0 {
		return errors.NewDataError(errors.ErrCodeEmptyCorpus,
			"no job postings loaded, check the configured feed paths", nil)
	}

	logger.Info("Corpus loaded for inspection",
		"postings", len(jobs),
		"linkedin_path", cfg.Corpus.LinkedInPath,
		"naukri_path", cfg.Corpus.NaukriPath)

	return common.NewOutputHandler(logger).HandleOutput(corpusStats(jobs), corpusConfig)
}

// corpusStats summarizes a loaded corpus: per-source counts, skill coverage,
// and the experience-level distribution the classifier would assign.
func corpusStats(jobs []types.JobRecord) map[string]any {
	bySource := make(map[string]int)
	byLevel := make(map[string]int)
	distinctSkills := make(map[string]struct{})
	withSkills := 0

	for _, job := range jobs {
		bySource[string(job.Source)]++
		byLevel[string(classify.Classify(job))]++
		if len(job.Skills) > 0 {
			withSkills++
		}
		for _, skill := range job.Skills {
			distinctSkills[skill] = struct{}{}
		}
	}

	return map[string]any{
		"total_postings":      len(jobs),
		"by_source":           bySource,
		"by_experience_level": byLevel,
		"with_skills":         withSkills,
		"distinct_skills":     len(distinctSkills),
	}
}
