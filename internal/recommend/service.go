// Package recommend orchestrates the matching pipeline: resume analysis,
// the lexical and semantic similarity signals, score combination, and
// response formatting.
package recommend

import (
	"context"
	"strings"
	"time"

	"jobmatch/internal/analyze"
	"jobmatch/internal/config"
	"jobmatch/internal/errors"
	"jobmatch/internal/rank"
	"jobmatch/internal/similarity"
	"jobmatch/internal/types"

	"github.com/google/uuid"
)

// signalWidth is how many candidates each similarity signal contributes
// relative to the requested result size. The extra width gives the combiner
// room to filter and deduplicate without starving the final list.
const signalWidth = 3

// Service answers recommendation requests over an immutable corpus. The
// corpus and fitted models are shared, read-only, across requests.
type Service struct {
	cfg      config.MatchingConfig
	jobs     []types.JobRecord
	texts    []string
	engine   *similarity.Engine
	analyzer *analyze.Analyzer
	logger   *errors.Logger
}

// NewService creates a service over an already-loaded corpus.
func NewService(cfg config.MatchingConfig, jobs []types.JobRecord,
	engine *similarity.Engine, analyzer *analyze.Analyzer, logger *errors.Logger) *Service {

	texts := make([]string, len(jobs))
	for i, job := range jobs {
		texts[i] = job.CombinedText
	}
	return &Service{
		cfg:      cfg,
		jobs:     jobs,
		texts:    texts,
		engine:   engine,
		analyzer: analyzer,
		logger:   logger,
	}
}

// CorpusSize reports how many postings the service matches against.
func (s *Service) CorpusSize() int {
	return len(s.jobs)
}

// WarmUp fits the similarity model ahead of user-facing traffic so the first
// real request does not pay the initialization cost.
func (s *Service) WarmUp(ctx context.Context) error {
	return s.engine.EnsureReady(ctx, s.texts)
}

// Ready reports whether the model has been fitted.
func (s *Service) Ready() bool {
	return s.engine.Ready()
}

// Stats exposes corpus and model state for diagnostics.
func (s *Service) Stats() map[string]any {
	stats := s.engine.Stats()
	stats["corpus_size"] = len(s.jobs)

	bySource := make(map[string]int)
	for _, job := range s.jobs {
		bySource[string(job.Source)]++
	}
	stats["corpus_by_source"] = bySource
	return stats
}

// Recommend runs the full pipeline for one resume. It never returns an
// error: every failure is converted into a result with Success=false, and
// degraded signals (no embeddings, empty analysis) produce best-effort
// rankings rather than failures.
func (s *Service) Recommend(ctx context.Context, resumeText, locationFilter string, topK int) *types.RecommendationResult {
	requestID := uuid.NewString()

	if topK <= 0 {
		topK = s.cfg.DefaultTopK
	}
	if topK > s.cfg.MaxTopK {
		topK = s.cfg.MaxTopK
	}

	if len(s.jobs) == 0 {
		err := errors.NewDataError(errors.ErrCodeEmptyCorpus, "no job postings loaded", nil)
		s.logger.LogError(err, "Recommendation rejected", "request_id", requestID)
		return failedResult(requestID, "no job postings loaded")
	}

	if err := s.engine.EnsureReady(ctx, s.texts); err != nil {
		s.logger.LogError(err, "Model initialization failed", "request_id", requestID)
		return failedResult(requestID, "matching model unavailable")
	}

	analysis := s.analyzer.Analyze(resumeText)
	s.logger.Info("Resume analyzed",
		"request_id", requestID,
		"skills", len(analysis.Skills),
		"experience_level", analysis.ExperienceLevel,
		"experience_years", analysis.ExperienceYears)

	width := topK * signalWidth
	lexical := s.engine.LexicalScores(resumeText, width)
	semantic := s.engine.SemanticScores(ctx, resumeText, width)

	combined := rank.Combine(lexical, semantic, s.jobs, &analysis, locationFilter)
	s.logger.Info("Candidates ranked",
		"request_id", requestID,
		"lexical", len(lexical),
		"semantic", len(semantic),
		"after_filters", len(combined))

	if len(combined) > topK {
		combined = combined[:topK]
	}
	topJobs := s.formatMatches(combined, analysis)

	return &types.RecommendationResult{
		Success:           true,
		RequestID:         requestID,
		TopJobs:           topJobs,
		ResumeAnalysis:    analysis,
		TotalJobsAnalyzed: len(s.jobs),
		Query:             SearchQuery(analysis),
		Timestamp:         time.Now().Format(time.RFC3339),
	}
}

func failedResult(requestID, message string) *types.RecommendationResult {
	return &types.RecommendationResult{
		Success:   false,
		Error:     message,
		RequestID: requestID,
		TopJobs:   []types.JobMatch{},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// SearchQuery derives a free-text query for external job boards from the
// resume's strongest signals: titles first, then skills, then a generic
// fallback.
func SearchQuery(analysis types.ResumeAnalysis) string {
	if len(analysis.JobTitles) > 0 {
		titles := analysis.JobTitles
		if len(titles) > 2 {
			titles = titles[:2]
		}
		return strings.Join(titles, " ")
	}
	if len(analysis.Skills) > 0 {
		skills := analysis.Skills
		if len(skills) > 2 {
			skills = skills[:2]
		}
		return strings.Join(skills, " ")
	}
	return "software developer"
}
