package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

// healthHandler provides a comprehensive health check endpoint including
// corpus and matching model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "jobmatch",
		"version": s.Version,
	}

	// Check corpus and matching model status
	corpusStatus := s.checkCorpusHealth()
	response["corpus"] = corpusStatus

	modelStatus := s.checkMatchingModelHealth()
	response["matching_model"] = modelStatus

	// Check skill gap analyzer status
	response["skill_gap"] = s.checkSkillGapHealth()

	// Add feed watcher status if watching is enabled
	if s.FeedWatcher != nil {
		response["feed_watcher"] = s.FeedWatcher.Status()
	}

	// An empty corpus means no request can succeed; a cold model is fine
	// because the first recommendation fits it on demand
	overallHealthy := true
	if size, ok := corpusStatus["size"].(int); ok && size == 0 {
		overallHealthy = false
	}

	w.Header().Set("Content-Type", "application/json")
	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkCorpusHealth reports the state of the loaded job corpus
func (s *Server) checkCorpusHealth() map[string]any {
	status := map[string]any{
		"size": s.Recommender.CorpusSize(),
	}
	if s.FeedWatcher != nil {
		status["stale"] = s.FeedWatcher.Stale()
	}
	return status
}

// checkMatchingModelHealth reports the state of the similarity engine
func (s *Server) checkMatchingModelHealth() map[string]any {
	status := map[string]any{
		"ready":            s.Recommender.Ready(),
		"embed_model":      s.AppConfig.AI.EmbedModel,
		"semantic_enabled": s.AppConfig.AI.APIKey != "",
	}
	if breaker, ok := s.Recommender.Stats()["circuit_breaker"]; ok {
		status["circuit_breaker"] = breaker
	}
	return status
}

// checkSkillGapHealth reports the state of the skill gap analyzer
func (s *Server) checkSkillGapHealth() map[string]any {
	if s.GapAnalyzer == nil {
		return map[string]any{"available": false}
	}
	return map[string]any{
		"available":       true,
		"model_available": s.GapAnalyzer.ModelAvailable(),
		"videos_enabled":  s.GapAnalyzer.VideosEnabled(),
		"model":           s.AppConfig.AI.Model,
	}
}

// statsHandler provides server statistics including matching engine and rate
// limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "jobmatch",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	// Add matching engine stats
	response["matching"] = s.Recommender.Stats()

	// Add feed watcher status if watching is enabled
	if s.FeedWatcher != nil {
		response["feed_watcher"] = s.FeedWatcher.Status()
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
