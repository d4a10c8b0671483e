package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobmatch/internal/common"
	"jobmatch/internal/observability"
	"jobmatch/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createRecommendHandler wraps the recommend handler with observability
func (s *Server) createRecommendHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobmatch.api")
		ctx, span := tracer.Start(ctx, "api.recommend")
		defer span.End()

		req, extractDuration, err := s.parseRecommendRequest(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field or resume file upload is required", http.StatusBadRequest)
			return
		}
		if s.MaxRequestSize > 0 && len(req.ResumeText) > int(s.MaxRequestSize) {
			err := fmt.Errorf("resume too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resume exceeds size limit of %d characters", s.MaxRequestSize), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.top_k", req.TopK),
			attribute.String("operation", "recommend"),
		)

		// Track the matching pipeline run with observability
		metrics := om.GetMetrics()
		var result *types.RecommendationResult
		err = metrics.TrackPipelineOperation(ctx, "recommend", func(ctx context.Context) *observability.PipelineResult {
			result = s.Recommender.Recommend(ctx, req.ResumeText, req.Location, req.TopK)

			pipelineResult := &observability.PipelineResult{
				Model: s.AppConfig.AI.EmbedModel,
			}
			if extractDuration > 0 {
				pipelineResult.Stages = []observability.StageTiming{
					{Name: "extract", Duration: extractDuration},
				}
			}
			if !result.Success {
				pipelineResult.Error = fmt.Errorf("recommendation failed: %s", result.Error)
			}
			return pipelineResult
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "pipeline"))
			metrics.RecordBusinessMetric(ctx, "recommendation_served", false, om,
				attribute.String("error", result.Error))
			writeErrorResponse(w, "Failed to generate recommendations", result.Error, http.StatusServiceUnavailable)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "recommendation_served", true, om,
			attribute.Int("results", len(result.TopJobs)))
		metrics.RecordResultCount(ctx, len(result.TopJobs), om)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.results", len(result.TopJobs)),
			attribute.String("resume.experience_level", string(result.ResumeAnalysis.ExperienceLevel)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// parseRecommendRequest decodes either a JSON body or a multipart resume
// upload. For uploads the resume file is converted to plain text, and the
// time spent extracting is returned for stage metrics.
func (s *Server) parseRecommendRequest(r *http.Request) (RecommendRequest, time.Duration, error) {
	var req RecommendRequest

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err := parseJSONRequest(r, &req)
		return req, 0, err
	}

	maxMemory := s.MaxRequestSize
	if maxMemory <= 0 {
		maxMemory = 10 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return req, 0, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return req, 0, fmt.Errorf("missing resume file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.Warn("Failed to close uploaded resume file", "error", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return req, 0, fmt.Errorf("failed to read resume file: %w", err)
	}

	start := time.Now()
	text, err := common.ExtractResumeText(header.Filename, data)
	if err != nil {
		return req, 0, err
	}
	extractDuration := time.Since(start)

	req.ResumeText = text
	req.Location = r.FormValue("location")
	if topK := r.FormValue("topK"); topK != "" {
		n, err := strconv.Atoi(topK)
		if err != nil {
			return req, 0, fmt.Errorf("invalid topK value: %q", topK)
		}
		req.TopK = n
	}

	return req, extractDuration, nil
}

// createSkillGapHandler wraps the skill gap handler with observability
func (s *Server) createSkillGapHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobmatch.api")
		ctx, span := tracer.Start(ctx, "api.skillgap")
		defer span.End()

		var req SkillGapRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "skillgap"),
		)

		input := types.SkillGapInput{
			ResumeText:     req.ResumeText,
			JobDescription: req.JobDescription,
		}

		// The analyzer degrades to its regex fallback on model failures, so
		// the pipeline run itself never errors
		metrics := om.GetMetrics()
		var result types.SkillGapResult
		_ = metrics.TrackPipelineOperation(ctx, "skillgap", func(ctx context.Context) *observability.PipelineResult {
			result = s.GapAnalyzer.AnalyzeWithResources(ctx, input)
			return &observability.PipelineResult{
				Model: s.AppConfig.AI.Model,
			}
		}, om)

		metrics.RecordBusinessMetric(ctx, "skill_gap_analyzed", true, om,
			attribute.Int("missing_skills", len(result.Analysis.MissingSkills)),
			attribute.Int("present_skills", len(result.Analysis.PresentSkills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("missing_skills", len(result.Analysis.MissingSkills)),
			attribute.Int("present_skills", len(result.Analysis.PresentSkills)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createWarmupHandler wraps the warmup handler with observability
func (s *Server) createWarmupHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("jobmatch.api")
		ctx, span := tracer.Start(ctx, "api.warmup")
		defer span.End()

		metrics := om.GetMetrics()
		err := metrics.TrackPipelineOperation(ctx, "warmup", func(ctx context.Context) *observability.PipelineResult {
			return &observability.PipelineResult{
				Error: s.Recommender.WarmUp(ctx),
				Model: s.AppConfig.AI.EmbedModel,
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "pipeline"))
			writeErrorResponse(w, "Failed to warm up matching model", err.Error(), http.StatusServiceUnavailable)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("corpus_size", s.Recommender.CorpusSize()),
		)

		response := map[string]any{
			"status":      "ready",
			"corpus_size": s.Recommender.CorpusSize(),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		limited := originalMiddleware(next)
		return func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			limited(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		}
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
