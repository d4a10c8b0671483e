package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobmatch/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "RecommendationResult", &RecommendationTextFormatter{})
	registry.RegisterFormatter("markdown", "RecommendationResult", &RecommendationMarkdownFormatter{})
	registry.RegisterFormatter("text", "SkillGapResult", &SkillGapTextFormatter{})
	registry.RegisterFormatter("markdown", "SkillGapResult", &SkillGapMarkdownFormatter{})
	registry.RegisterFormatter("csv", "RecommendationResult", &RecommendationCSVFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.RecommendationResult, *types.RecommendationResult:
		return "RecommendationResult"
	case types.SkillGapResult, *types.SkillGapResult:
		return "SkillGapResult"
	default:
		return "any"
	}
}

func asRecommendationResult(data any) (types.RecommendationResult, bool) {
	switch v := data.(type) {
	case types.RecommendationResult:
		return v, true
	case *types.RecommendationResult:
		return *v, true
	default:
		return types.RecommendationResult{}, false
	}
}

func asSkillGapResult(data any) (types.SkillGapResult, bool) {
	switch v := data.(type) {
	case types.SkillGapResult:
		return v, true
	case *types.SkillGapResult:
		return *v, true
	default:
		return types.SkillGapResult{}, false
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// RecommendationTextFormatter handles text formatting for recommendation results
type RecommendationTextFormatter struct{}

func (rtf *RecommendationTextFormatter) Format(data any) (string, error) {
	result, ok := asRecommendationResult(data)
	if !ok {
		return "", fmt.Errorf("expected RecommendationResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Experience: %d years (%s)\n",
		result.ResumeAnalysis.ExperienceYears, result.ResumeAnalysis.ExperienceLevel))
	if len(result.ResumeAnalysis.Skills) > 0 {
		output.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(result.ResumeAnalysis.Skills, ", ")))
	}
	if len(result.ResumeAnalysis.JobTitles) > 0 {
		output.WriteString(fmt.Sprintf("Titles: %s\n", strings.Join(result.ResumeAnalysis.JobTitles, ", ")))
	}
	if len(result.ResumeAnalysis.Education) > 0 {
		output.WriteString(fmt.Sprintf("Education: %s\n", strings.Join(result.ResumeAnalysis.Education, ", ")))
	}
	output.WriteString("\n")

	output.WriteString(fmt.Sprintf("=== TOP MATCHES (%d of %d analyzed) ===\n\n",
		len(result.TopJobs), result.TotalJobsAnalyzed))

	if len(result.TopJobs) == 0 {
		output.WriteString("No matching jobs found.\n")
	}

	for i, job := range result.TopJobs {
		output.WriteString(fmt.Sprintf("%d. %s at %s [%s]\n", i+1, job.Title, job.Company, job.Source))
		output.WriteString(fmt.Sprintf("   Location: %s\n", job.Location))
		output.WriteString(fmt.Sprintf("   Match: %d%% (similarity %d%%)\n", job.MatchScore, job.Similarity))
		if job.ExperienceLevel != "" {
			output.WriteString(fmt.Sprintf("   Level: %s\n", job.ExperienceLevel))
		}
		if len(job.SkillsMatched) > 0 {
			output.WriteString(fmt.Sprintf("   Skills matched: %s\n", strings.Join(job.SkillsMatched, ", ")))
		}
		if len(job.SkillsMissing) > 0 {
			output.WriteString(fmt.Sprintf("   Skills missing: %s\n", strings.Join(job.SkillsMissing, ", ")))
		}
		if job.Salary != "" {
			output.WriteString(fmt.Sprintf("   Salary: %s\n", job.Salary))
		}
		if link := applyLink(job); link != "" {
			output.WriteString(fmt.Sprintf("   Apply: %s\n", link))
		}
		output.WriteString("\n")
	}

	if result.Query != "" {
		output.WriteString(fmt.Sprintf("Search query for job boards: %s\n", result.Query))
	}

	return output.String(), nil
}

func (rtf *RecommendationTextFormatter) SupportedType() string {
	return "RecommendationResult"
}

// RecommendationMarkdownFormatter handles markdown formatting for recommendation results
type RecommendationMarkdownFormatter struct{}

func (rmf *RecommendationMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asRecommendationResult(data)
	if !ok {
		return "", fmt.Errorf("expected RecommendationResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Recommendations\n\n")

	output.WriteString("## Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Experience:** %d years (%s)\n\n",
		result.ResumeAnalysis.ExperienceYears, result.ResumeAnalysis.ExperienceLevel))
	if len(result.ResumeAnalysis.Skills) > 0 {
		output.WriteString(fmt.Sprintf("**Skills:** %s\n\n", strings.Join(result.ResumeAnalysis.Skills, ", ")))
	}
	if len(result.ResumeAnalysis.JobTitles) > 0 {
		output.WriteString(fmt.Sprintf("**Titles:** %s\n\n", strings.Join(result.ResumeAnalysis.JobTitles, ", ")))
	}

	output.WriteString(fmt.Sprintf("## Top Matches (%d of %d analyzed)\n\n",
		len(result.TopJobs), result.TotalJobsAnalyzed))

	if len(result.TopJobs) == 0 {
		output.WriteString("No matching jobs found.\n")
	}

	for i, job := range result.TopJobs {
		output.WriteString(fmt.Sprintf("### %d. %s at %s\n\n", i+1, job.Title, job.Company))
		output.WriteString(fmt.Sprintf("**Match:** %d%% | **Similarity:** %d%% | **Source:** %s\n\n",
			job.MatchScore, job.Similarity, job.Source))
		output.WriteString(fmt.Sprintf("**Location:** %s\n\n", job.Location))
		if len(job.SkillsMatched) > 0 {
			output.WriteString(fmt.Sprintf("**Skills matched:** %s\n\n", strings.Join(job.SkillsMatched, ", ")))
		}
		if len(job.SkillsMissing) > 0 {
			output.WriteString(fmt.Sprintf("**Skills missing:** %s\n\n", strings.Join(job.SkillsMissing, ", ")))
		}
		if job.Description != "" {
			output.WriteString(job.Description)
			output.WriteString("\n\n")
		}
		if link := applyLink(job); link != "" {
			output.WriteString(fmt.Sprintf("[Apply](%s)\n\n", link))
		}
	}

	if result.Query != "" {
		output.WriteString(fmt.Sprintf("**Search query for job boards:** %s\n", result.Query))
	}

	return output.String(), nil
}

func (rmf *RecommendationMarkdownFormatter) SupportedType() string {
	return "RecommendationResult"
}

func applyLink(job types.JobMatch) string {
	if job.ApplyLink != "" {
		return job.ApplyLink
	}
	if job.ApplyURL != "" {
		return job.ApplyURL
	}
	return job.JobURL
}

// SkillGapTextFormatter handles text formatting for skill gap results
type SkillGapTextFormatter struct{}

func (sgf *SkillGapTextFormatter) Format(data any) (string, error) {
	result, ok := asSkillGapResult(data)
	if !ok {
		return "", fmt.Errorf("expected SkillGapResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SKILL GAP ANALYSIS ===\n\n")

	output.WriteString("Present Skills:\n")
	writeSkillList(&output, result.Analysis.PresentSkills)
	output.WriteString("\nMissing Skills:\n")
	writeSkillList(&output, result.Analysis.MissingSkills)
	output.WriteString("\nAdditional Skills:\n")
	writeSkillList(&output, result.Analysis.AdditionalSkills)
	output.WriteString("\n")

	if len(result.Analysis.SkillAnalysis) > 0 {
		output.WriteString("=== SKILL DETAILS ===\n\n")
		for _, skill := range orderedSkills(result.Analysis) {
			detail, ok := result.Analysis.SkillAnalysis[skill]
			if !ok {
				continue
			}
			output.WriteString(fmt.Sprintf("%s (%s)\n", skill, detail.Status))
			output.WriteString(fmt.Sprintf("   Importance: %s\n", detail.Importance))
			output.WriteString(fmt.Sprintf("   Level: %s\n", detail.Level))
			if detail.Evidence != "" {
				output.WriteString(fmt.Sprintf("   Evidence: %s\n", detail.Evidence))
			}
			output.WriteString("\n")
		}
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("=== LEARNING PLAN ===\n\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s [%s priority]\n", i+1, rec.Skill, rec.Priority))
			output.WriteString(fmt.Sprintf("   Estimated time: %s\n", rec.EstimatedTime))
			for _, resource := range rec.Resources {
				output.WriteString(fmt.Sprintf("   - %s\n", resource))
			}
			if videos, ok := result.YouTubeVideos[rec.Skill]; ok {
				for _, video := range videos {
					output.WriteString(fmt.Sprintf("   - %s (%s): %s\n", video.Title, video.Channel, video.URL))
				}
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (sgf *SkillGapTextFormatter) SupportedType() string {
	return "SkillGapResult"
}

// SkillGapMarkdownFormatter handles markdown formatting for skill gap results
type SkillGapMarkdownFormatter struct{}

func (sgmf *SkillGapMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asSkillGapResult(data)
	if !ok {
		return "", fmt.Errorf("expected SkillGapResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Skill Gap Analysis\n\n")

	output.WriteString("## Present Skills\n\n")
	writeSkillList(&output, result.Analysis.PresentSkills)
	output.WriteString("\n## Missing Skills\n\n")
	writeSkillList(&output, result.Analysis.MissingSkills)
	output.WriteString("\n## Additional Skills\n\n")
	writeSkillList(&output, result.Analysis.AdditionalSkills)
	output.WriteString("\n")

	if len(result.Recommendations) > 0 {
		output.WriteString("## Learning Plan\n\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, rec.Skill))
			output.WriteString(fmt.Sprintf("**Priority:** %s | **Estimated time:** %s\n\n", rec.Priority, rec.EstimatedTime))
			for _, resource := range rec.Resources {
				output.WriteString(fmt.Sprintf("- %s\n", resource))
			}
			if videos, ok := result.YouTubeVideos[rec.Skill]; ok {
				for _, video := range videos {
					output.WriteString(fmt.Sprintf("- [%s](%s) by %s\n", video.Title, video.URL, video.Channel))
				}
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (sgmf *SkillGapMarkdownFormatter) SupportedType() string {
	return "SkillGapResult"
}

func writeSkillList(output *strings.Builder, skills []string) {
	if len(skills) == 0 {
		output.WriteString("- none\n")
		return
	}
	for _, skill := range skills {
		output.WriteString(fmt.Sprintf("- %s\n", skill))
	}
}

// orderedSkills returns skill names in a stable order: missing first,
// then present, then additional. Map iteration alone would shuffle output.
func orderedSkills(analysis types.SkillGapAnalysis) []string {
	ordered := make([]string, 0, len(analysis.SkillAnalysis))
	ordered = append(ordered, analysis.MissingSkills...)
	ordered = append(ordered, analysis.PresentSkills...)
	ordered = append(ordered, analysis.AdditionalSkills...)
	return ordered
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
