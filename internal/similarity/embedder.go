package similarity

import (
	"context"
	"crypto/rand"
	goerrors "errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"jobmatch/internal/config"
	"jobmatch/internal/errors"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// Embedder turns text into dense vectors using the Gemini embedding model.
// The client is stateless; the heavy artifact is the corpus embedding matrix
// it produces, which the engine caches.
type Embedder struct {
	client  *genai.Client
	cfg     *config.AIConfig
	breaker *gobreaker.CircuitBreaker[*genai.EmbedContentResponse]
	logger  *errors.Logger
}

// NewEmbedder creates a Gemini-backed embedder. A missing API key is a model
// error: the caller degrades to lexical-only matching rather than failing.
func NewEmbedder(cfg *config.AIConfig, logger *errors.Logger) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewModelError(errors.ErrCodeModelUnavailable,
			"no Gemini API key configured, semantic similarity disabled", nil)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewModelError(errors.ErrCodeModelUnavailable,
			"failed to create Gemini client", err)
	}

	return &Embedder{
		client:  client,
		cfg:     cfg,
		breaker: newEmbedBreaker(cfg, logger),
		logger:  logger,
	}, nil
}

// newEmbedBreaker builds the circuit breaker guarding embedding calls, or nil
// when disabled.
func newEmbedBreaker(cfg *config.AIConfig, logger *errors.Logger) *gobreaker.CircuitBreaker[*genai.EmbedContentResponse] {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "Embed-" + cfg.EmbedModel,
		MaxRequests: cfg.CircuitBreaker.MaxRequests,
		Interval:    cfg.CircuitBreaker.Interval,
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.CircuitBreaker.MinRequests &&
				failureRatio >= cfg.CircuitBreaker.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	}
	return gobreaker.NewCircuitBreaker[*genai.EmbedContentResponse](settings)
}

// Model reports the configured embedding model name.
func (e *Embedder) Model() string {
	return e.cfg.EmbedModel
}

// EmbedText embeds a single document.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts embeds every document, batching requests to bound peak memory
// and request size.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	batchSize := e.cfg.EmbedBatchSize
	if batchSize <= 0 {
		batchSize = 32
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		batch, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	result, err := e.execute(func() (*genai.EmbedContentResponse, error) {
		return e.embedWithRetry(callCtx, func() (*genai.EmbedContentResponse, error) {
			return e.client.Models.EmbedContent(callCtx, e.cfg.EmbedModel, contents, &genai.EmbedContentConfig{})
		})
	})
	if err != nil {
		return nil, errors.NewModelError(errors.ErrCodeEmbedFailed, "embedding request failed", err)
	}

	if len(result.Embeddings) != len(texts) {
		return nil, errors.NewModelError(errors.ErrCodeEmbedFailed,
			fmt.Sprintf("embedding count mismatch: got %d for %d texts", len(result.Embeddings), len(texts)), nil)
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, embedding := range result.Embeddings {
		vectors[i] = embedding.Values
	}
	return vectors, nil
}

// execute runs fn behind the circuit breaker, or directly when the breaker is
// disabled.
func (e *Embedder) execute(fn func() (*genai.EmbedContentResponse, error)) (*genai.EmbedContentResponse, error) {
	if e.breaker == nil {
		return fn()
	}
	return e.breaker.Execute(fn)
}

// embedWithRetry retries transient failures with exponential backoff.
func (e *Embedder) embedWithRetry(ctx context.Context, fn func() (*genai.EmbedContentResponse, error)) (*genai.EmbedContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= e.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			e.logger.Warn("Retrying embedding request",
				"attempt", attempt,
				"max_retries", e.cfg.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			backoff := min(baseDelay+time.Duration(jitterBig.Int64()), 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			break
		}
	}

	return nil, lastErr
}

// isRetryableError reports whether an embedding failure is transient.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if goerrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if goerrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// BreakerStats returns circuit breaker statistics for diagnostics.
func (e *Embedder) BreakerStats() map[string]any {
	if e == nil || e.breaker == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    e.breaker.Name(),
		"state":   e.breaker.State().String(),
		"counts":  e.breaker.Counts(),
		"enabled": true,
	}
}
