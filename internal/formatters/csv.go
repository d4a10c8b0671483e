package formatters

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// RecommendationCSVFormatter exports the ranked job list as CSV, one row per
// match. Resume analysis and the search query are not part of the export.
type RecommendationCSVFormatter struct{}

func (rcf *RecommendationCSVFormatter) Format(data any) (string, error) {
	result, ok := asRecommendationResult(data)
	if !ok {
		return "", fmt.Errorf("expected RecommendationResult, got %T", data)
	}

	var output strings.Builder
	writer := csv.NewWriter(&output)

	header := []string{
		"rank", "title", "company", "location", "match_score", "similarity",
		"experience_level", "skills_matched", "skills_missing", "salary",
		"source", "apply_link",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i, job := range result.TopJobs {
		row := []string{
			strconv.Itoa(i + 1),
			job.Title,
			job.Company,
			job.Location,
			strconv.Itoa(job.MatchScore),
			strconv.Itoa(job.Similarity),
			string(job.ExperienceLevel),
			strings.Join(job.SkillsMatched, "; "),
			strings.Join(job.SkillsMissing, "; "),
			job.Salary,
			string(job.Source),
			applyLink(job),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return output.String(), nil
}

func (rcf *RecommendationCSVFormatter) SupportedType() string {
	return "RecommendationResult"
}
