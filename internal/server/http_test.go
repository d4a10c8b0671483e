package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobmatch/internal/analyze"
	"jobmatch/internal/config"
	"jobmatch/internal/errors"
	"jobmatch/internal/observability"
	"jobmatch/internal/recommend"
	"jobmatch/internal/similarity"
	"jobmatch/internal/skillgap"
	"jobmatch/internal/types"
)

func testJobs() []types.JobRecord {
	return []types.JobRecord{
		{
			ID:           "lnk-1",
			Title:        "Python Developer",
			Company:      "Acme",
			Location:     "Bangalore, India",
			Description:  "Django and Python services, 3-5 years",
			Skills:       []string{"Python", "Django"},
			Source:       types.SourceLinkedIn,
			CombinedText: "Python Developer Acme Bangalore Django and Python services, 3-5 years",
		},
		{
			ID:           "nkr-1",
			Title:        "React Engineer",
			Company:      "Beta",
			Location:     "Pune, India",
			Description:  "React frontend work, 3+ years",
			Skills:       []string{"React"},
			Source:       types.SourceNaukri,
			CombinedText: "React Engineer Beta Pune React frontend work, 3+ years",
		},
	}
}

func newTestServer(t *testing.T, jobs []types.JobRecord, serverCfg ServerConfig) *Server {
	t.Helper()
	logger := errors.NewLogger(slog.LevelError)

	appCfg := &config.Config{
		Matching: config.MatchingConfig{
			DefaultTopK:    5,
			MaxTopK:        20,
			MaxFeatures:    5000,
			MinDocFreq:     1,
			MaxDocFreqFrac: 1.0,
		},
	}
	appCfg.AI.EmbedModel = "gemini-embedding-001"
	appCfg.AI.Model = "gemini-2.0-flash"

	engine := similarity.NewEngine(appCfg.Matching, t.TempDir(), nil, logger)
	recommender := recommend.NewService(appCfg.Matching, jobs, engine, analyze.NewAnalyzer(logger), logger)
	gapAnalyzer := skillgap.NewAnalyzer(context.Background(), &appCfg.AI, logger)

	return NewServer(appCfg, serverCfg, recommender, gapAnalyzer, logger)
}

func testMux(t *testing.T, s *Server) *http.ServeMux {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, s.AppConfig)
	if err != nil {
		t.Fatalf("NewObservabilityManager: %v", err)
	}
	return s.setupRoutes(om)
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{Version: "test"})
	mux := testMux(t, s)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if body["service"] != "jobmatch" {
		t.Errorf("service = %v, want jobmatch", body["service"])
	}
	corpus, ok := body["corpus"].(map[string]any)
	if !ok || corpus["size"] != float64(2) {
		t.Errorf("corpus = %v, want size 2", body["corpus"])
	}
}

func TestHealthHandlerDegradedOnEmptyCorpus(t *testing.T) {
	s := newTestServer(t, nil, ServerConfig{Version: "test"})
	mux := testMux(t, s)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if body["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", body["status"])
	}
}

func TestHealthHandlerRejectsPost(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{})
	mux := testMux(t, s)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{MaxRequestSize: 1024})
	mux := testMux(t, s)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding stats response: %v", err)
	}
	if _, ok := body["matching"]; !ok {
		t.Error("stats response missing matching section")
	}
	rl, ok := body["rate_limiting"].(map[string]any)
	if !ok || rl["enabled"] != false {
		t.Errorf("rate_limiting = %v, want enabled false", body["rate_limiting"])
	}
}

func TestRecommendHandler(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{})
	mux := testMux(t, s)

	payload := `{"resumeText": "Python developer with Django, 3 years experience", "topK": 5}`
	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var result types.RecommendationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding recommendation: %v", err)
	}
	if !result.Success {
		t.Fatalf("Success = false, error: %s", result.Error)
	}
	if result.TotalJobsAnalyzed != 2 {
		t.Errorf("TotalJobsAnalyzed = %d, want 2", result.TotalJobsAnalyzed)
	}
	if len(result.TopJobs) == 0 {
		t.Error("TopJobs is empty")
	}
}

func TestRecommendHandlerMissingResume(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{})
	mux := testMux(t, s)

	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(`{"location": "Pune"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRecommendHandlerMultipartUpload(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{})
	mux := testMux(t, s)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("resume", "resume.txt")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write([]byte("Python developer with Django, 3 years experience")); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := writer.WriteField("topK", "3"); err != nil {
		t.Fatalf("writing form field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/recommend", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var result types.RecommendationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding recommendation: %v", err)
	}
	if !result.Success {
		t.Fatalf("Success = false, error: %s", result.Error)
	}
}

func TestSkillGapHandler(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{})
	mux := testMux(t, s)

	payload := `{
		"resumeText": "I know Python and SQL",
		"jobDescription": "Looking for Python, Docker and Kubernetes experience"
	}`
	req := httptest.NewRequest(http.MethodPost, "/skillgap", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var result types.SkillGapResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding skill gap result: %v", err)
	}
	if len(result.Analysis.MissingSkills) == 0 {
		t.Error("expected missing skills from the fallback analyzer")
	}
}

func TestSkillGapHandlerValidation(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{})
	mux := testMux(t, s)

	tests := []struct {
		name    string
		payload string
	}{
		{"missing resume", `{"jobDescription": "Python role"}`},
		{"missing job description", `{"resumeText": "I know Python"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/skillgap", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestWarmupHandler(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{})
	mux := testMux(t, s)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/warmup", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding warmup response: %v", err)
	}
	if body["status"] != "ready" {
		t.Errorf("status = %v, want ready", body["status"])
	}
	if body["corpus_size"] != float64(2) {
		t.Errorf("corpus_size = %v, want 2", body["corpus_size"])
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{APIKeys: []string{"secret-test-key-123"}})
	mux := testMux(t, s)

	payload := `{"resumeText": "Python developer"}`

	t.Run("missing key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", "wrong-key")

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid header key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", "secret-test-key-123")

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("valid bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer secret-test-key-123")

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("health stays public", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestRequestSizeLimit(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{MaxRequestSize: 128})
	mux := testMux(t, s)

	big := strings.Repeat("x", 1024)
	req := httptest.NewRequest(http.MethodPost, "/recommend",
		strings.NewReader(`{"resumeText": "`+big+`"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "too large") {
		t.Errorf("body = %q, want size limit message", rec.Body.String())
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t, testJobs(), ServerConfig{
		RateLimit: &config.RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 60,
			BurstCapacity:  2,
			ByIP:           true,
		},
	})
	mux := testMux(t, s)

	payload := `{"resumeText": "Python developer"}`
	statuses := make([]int, 0, 4)
	for range 4 {
		req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.1.2.3:40000"

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want 200s", statuses[:2])
	}
	if statuses[3] != http.StatusTooManyRequests {
		t.Errorf("fourth request = %d, want 429", statuses[3])
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("maskAPIKey(short) = %q", got)
	}
	if got := maskAPIKey("secret-test-key-123"); got != "secret-t****" {
		t.Errorf("maskAPIKey long = %q", got)
	}
}
