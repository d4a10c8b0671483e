// Package skillgap compares a resume against a single job description and
// reports present, missing and additional skills, with learning resources
// for the gaps. The primary analysis path asks Gemini for a structured
// comparison; any failure degrades to a regex extraction over both texts.
package skillgap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobmatch/internal/config"
	"jobmatch/internal/errors"
	"jobmatch/internal/types"
	"jobmatch/internal/vocab"

	"google.golang.org/genai"
)

// resumeExcerptLimit bounds how much resume text goes into the prompt.
const resumeExcerptLimit = 4000

// maxVideoSkills bounds how many missing skills get video lookups.
const maxVideoSkills = 5

const gapPrompt = `You are an expert technical recruiter performing a detailed skill gap analysis.

RESUME:
%s

JOB DESCRIPTION:
%s

TASK: Perform a comprehensive skill gap analysis comparing the resume against the job requirements.

Return your analysis in this EXACT JSON format (no markdown, no extra text):
{
  "job_required_skills": ["skill1", "skill2", ...],
  "present_skills": ["skill1", "skill2", ...],
  "missing_skills": ["skill1", "skill2", ...],
  "additional_skills": ["skill1", "skill2", ...],
  "skill_details": {
    "skill_name": {
      "status": "present|missing|additional",
      "evidence": "where found or why missing",
      "importance": "high|medium|low",
      "proficiency_level": "expert|intermediate|beginner|not_found"
    }
  }
}

JSON only:`

// gapResponse is the JSON shape requested from the model.
type gapResponse struct {
	JobRequiredSkills []string             `json:"job_required_skills"`
	PresentSkills     []string             `json:"present_skills"`
	MissingSkills     []string             `json:"missing_skills"`
	AdditionalSkills  []string             `json:"additional_skills"`
	SkillDetails      map[string]gapDetail `json:"skill_details"`
}

type gapDetail struct {
	Status           string `json:"status"`
	Evidence         string `json:"evidence"`
	Importance       string `json:"importance"`
	ProficiencyLevel string `json:"proficiency_level"`
}

// Analyzer performs skill gap analysis. The Gemini client and video client
// are both optional: without them the analyzer still produces regex-based
// results without video suggestions.
type Analyzer struct {
	client *genai.Client
	videos *VideoClient
	cfg    *config.AIConfig
	logger *errors.Logger
}

// NewAnalyzer wires the analyzer. A missing Gemini key is not an error; the
// analyzer runs fallback-only.
func NewAnalyzer(ctx context.Context, cfg *config.AIConfig, logger *errors.Logger) *Analyzer {
	a := &Analyzer{cfg: cfg, logger: logger}

	if cfg.APIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
		if err != nil {
			logger.LogError(err, "Gemini client unavailable, skill gap analysis will use regex fallback")
		} else {
			a.client = client
		}
	}

	if cfg.YouTube.Enabled && cfg.YouTube.APIKey != "" {
		videos, err := NewVideoClient(ctx, cfg.YouTube, logger)
		if err != nil {
			logger.LogError(err, "YouTube client unavailable, video suggestions disabled")
		} else {
			a.videos = videos
		}
	}
	return a
}

// ModelAvailable reports whether the Gemini-backed analysis path is
// configured; when false every analysis uses the regex fallback.
func (a *Analyzer) ModelAvailable() bool {
	return a.client != nil
}

// VideosEnabled reports whether YouTube learning-video lookup is configured.
func (a *Analyzer) VideosEnabled() bool {
	return a.videos != nil
}

// AnalyzeGap compares the resume against the job description. Model failures
// of any kind degrade to the regex fallback; this method never fails.
func (a *Analyzer) AnalyzeGap(ctx context.Context, input types.SkillGapInput) types.SkillGapAnalysis {
	if a.client == nil {
		return FallbackAnalysis(input.ResumeText, input.JobDescription)
	}

	analysis, err := a.analyzeWithModel(ctx, input)
	if err != nil {
		a.logger.LogError(err, "Model-based skill gap analysis failed, using regex fallback")
		return FallbackAnalysis(input.ResumeText, input.JobDescription)
	}
	return analysis
}

func (a *Analyzer) analyzeWithModel(ctx context.Context, input types.SkillGapInput) (types.SkillGapAnalysis, error) {
	resume := input.ResumeText
	if len(resume) > resumeExcerptLimit {
		resume = resume[:resumeExcerptLimit]
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	prompt := fmt.Sprintf(gapPrompt, resume, input.JobDescription)
	resp, err := a.client.Models.GenerateContent(callCtx, a.cfg.Model,
		genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature: genai.Ptr(a.cfg.Temperature),
		})
	if err != nil {
		return types.SkillGapAnalysis{}, errors.NewModelError(errors.ErrCodeModelUnavailable,
			"skill gap generation failed", err)
	}

	var parsed gapResponse
	if err := json.Unmarshal([]byte(extractJSON(resp.Text())), &parsed); err != nil {
		return types.SkillGapAnalysis{}, errors.NewModelError(errors.ErrCodeInvalidFormat,
			"model returned unparsable skill gap JSON", err)
	}

	return buildAnalysis(parsed), nil
}

// extractJSON strips markdown fences and trims the response down to its
// outermost JSON object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func buildAnalysis(parsed gapResponse) types.SkillGapAnalysis {
	details := make(map[string]types.SkillDetail, len(parsed.SkillDetails))
	for skill, d := range parsed.SkillDetails {
		detail := types.SkillDetail{
			Status:     d.Status,
			Importance: d.Importance,
			Level:      d.ProficiencyLevel,
			Evidence:   d.Evidence,
		}
		if detail.Status == "" {
			detail.Status = "unknown"
		}
		if detail.Importance == "" {
			detail.Importance = "medium"
		}
		if detail.Level == "" {
			detail.Level = "intermediate"
		}
		details[skill] = detail
	}

	// Models occasionally return the lists without per-skill details; fill
	// them in so the response shape stays uniform.
	if len(details) == 0 {
		for _, s := range parsed.PresentSkills {
			details[s] = types.SkillDetail{Status: "present", Importance: importanceOf(s), Level: "intermediate"}
		}
		for _, s := range parsed.MissingSkills {
			details[s] = types.SkillDetail{Status: "missing", Importance: importanceOf(s), Level: "basic"}
		}
		for _, s := range parsed.AdditionalSkills {
			details[s] = types.SkillDetail{Status: "additional", Importance: "medium", Level: "intermediate"}
		}
	}

	return types.SkillGapAnalysis{
		PresentSkills:    emptyIfNil(parsed.PresentSkills),
		MissingSkills:    emptyIfNil(parsed.MissingSkills),
		AdditionalSkills: emptyIfNil(parsed.AdditionalSkills),
		SkillAnalysis:    details,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// AnalyzeWithResources runs the gap analysis and attaches video suggestions
// and learning recommendations for the missing skills.
func (a *Analyzer) AnalyzeWithResources(ctx context.Context, input types.SkillGapInput) types.SkillGapResult {
	analysis := a.AnalyzeGap(ctx, input)

	videos := make(map[string][]types.LearningVideo)
	if a.videos != nil {
		missing := analysis.MissingSkills
		if len(missing) > maxVideoSkills {
			missing = missing[:maxVideoSkills]
		}
		for _, skill := range missing {
			if found := a.videos.Search(ctx, skill); len(found) > 0 {
				videos[skill] = found
			}
		}
	}

	return types.SkillGapResult{
		Analysis:        analysis,
		YouTubeVideos:   videos,
		Recommendations: LearningRecommendations(analysis.MissingSkills),
	}
}

// LearningRecommendations maps missing skills to curated learning paths.
func LearningRecommendations(missingSkills []string) []types.LearningRecommendation {
	recs := make([]types.LearningRecommendation, 0, len(missingSkills))
	for _, skill := range missingSkills {
		resource := vocab.LookupLearning(skill)
		recs = append(recs, types.LearningRecommendation{
			Skill:         skill,
			Type:          resource.Type,
			Resources:     resource.Resources,
			EstimatedTime: resource.EstimatedTime,
			Priority:      resource.Priority,
		})
	}
	return recs
}
