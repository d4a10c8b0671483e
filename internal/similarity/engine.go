package similarity

import (
	"context"
	"sort"
	"sync"

	"jobmatch/internal/config"
	"jobmatch/internal/errors"
	"jobmatch/internal/types"
)

// Engine computes lexical and semantic similarity between a resume and the
// job corpus. The model is fitted lazily on first use and snapshotted to disk
// so restarts skip the fit and the embedding round trips.
type Engine struct {
	cfg      config.MatchingConfig
	cacheDir string
	embedder *Embedder
	logger   *errors.Logger

	mu         sync.Mutex
	ready      bool
	vectorizer *Vectorizer
	matrix     []SparseVector
	embeddings [][]float32
	rows       int
}

// NewEngine creates an engine. embedder may be nil, in which case semantic
// scoring is disabled and matching runs on the lexical signal alone.
func NewEngine(cfg config.MatchingConfig, cacheDir string, embedder *Embedder, logger *errors.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		cacheDir: cacheDir,
		embedder: embedder,
		logger:   logger,
	}
}

// EnsureReady fits the model over the corpus texts if it has not been fitted
// yet. Concurrent callers block until the first one finishes; subsequent
// calls return immediately.
func (e *Engine) EnsureReady(ctx context.Context, docs []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ready && e.rows == len(docs) {
		return nil
	}

	if len(docs) == 0 {
		return errors.NewDataError(errors.ErrCodeEmptyCorpus, "no job postings available to fit the model", nil)
	}

	if e.restoreFromCache(len(docs)) {
		e.logger.Info("Similarity model restored from cache",
			"rows", e.rows,
			"vocabulary_size", len(e.vectorizer.Vocabulary),
			"semantic", e.embeddings != nil)
		e.ready = true
		return nil
	}

	vectorizer := NewVectorizer(e.cfg.MaxFeatures, e.cfg.MinDocFreq, e.cfg.MaxDocFreqFrac)
	matrix := vectorizer.Fit(docs)

	var embeddings [][]float32
	if e.embedder != nil {
		vectors, err := e.embedder.EmbedTexts(ctx, docs)
		if err != nil {
			e.logger.LogError(err, "Corpus embedding failed, continuing with lexical matching only",
				"rows", len(docs))
		} else {
			embeddings = vectors
		}
	}

	e.vectorizer = vectorizer
	e.matrix = matrix
	e.embeddings = embeddings
	e.rows = len(docs)
	e.ready = true

	e.persistCache()

	e.logger.Info("Similarity model fitted",
		"rows", e.rows,
		"vocabulary_size", len(vectorizer.Vocabulary),
		"semantic", embeddings != nil)
	return nil
}

// restoreFromCache loads the disk snapshot when its row count matches the
// current corpus. A cache fitted when no embedder was configured is refitted
// once an embedder becomes available.
func (e *Engine) restoreFromCache(rows int) bool {
	cache, err := loadModelCache(e.cacheDir)
	if err != nil {
		e.logger.LogError(err, "Model cache unreadable, refitting")
		return false
	}
	if cache == nil || cache.Rows != rows {
		return false
	}
	if e.embedder != nil && (cache.Embeddings == nil || cache.EmbedModel != e.embedder.Model()) {
		return false
	}

	e.vectorizer = &Vectorizer{
		MaxFeatures:    e.cfg.MaxFeatures,
		MinDocFreq:     e.cfg.MinDocFreq,
		MaxDocFreqFrac: e.cfg.MaxDocFreqFrac,
		Vocabulary:     cache.Vocabulary,
		IDF:            cache.IDF,
	}
	e.matrix = cache.Matrix
	e.embeddings = cache.Embeddings
	e.rows = cache.Rows
	return true
}

func (e *Engine) persistCache() {
	cache := &modelCache{
		Rows:       e.rows,
		Vocabulary: e.vectorizer.Vocabulary,
		IDF:        e.vectorizer.IDF,
		Matrix:     e.matrix,
		Embeddings: e.embeddings,
	}
	if e.embedder != nil && e.embeddings != nil {
		cache.EmbedModel = e.embedder.Model()
	}
	if err := saveModelCache(e.cacheDir, cache); err != nil {
		e.logger.LogError(err, "Failed to persist model cache", "cache_dir", e.cacheDir)
	}
}

// Ready reports whether the model has been fitted.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// SemanticEnabled reports whether the fitted model carries corpus embeddings.
func (e *Engine) SemanticEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.embeddings != nil
}

// LexicalScores ranks the corpus against the query by TF-IDF cosine
// similarity and returns up to width results, best first.
func (e *Engine) LexicalScores(query string, width int) []types.ScoredJob {
	e.mu.Lock()
	vectorizer := e.vectorizer
	matrix := e.matrix
	e.mu.Unlock()

	if vectorizer == nil {
		return nil
	}

	queryVec := vectorizer.Transform(query)
	scored := make([]types.ScoredJob, len(matrix))
	for i, row := range matrix {
		scored[i] = types.ScoredJob{Index: i, Score: CosineSparse(queryVec, row)}
	}
	return topScores(scored, width)
}

// SemanticScores ranks the corpus against the query by embedding cosine
// similarity. Returns nil when semantic scoring is unavailable or the query
// embedding fails; the caller falls back to the lexical signal.
func (e *Engine) SemanticScores(ctx context.Context, query string, width int) []types.ScoredJob {
	e.mu.Lock()
	embeddings := e.embeddings
	e.mu.Unlock()

	if embeddings == nil || e.embedder == nil {
		return nil
	}

	queryVec, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.LogError(err, "Query embedding failed, falling back to lexical matching")
		return nil
	}

	scored := make([]types.ScoredJob, len(embeddings))
	for i, row := range embeddings {
		scored[i] = types.ScoredJob{Index: i, Score: CosineDense(queryVec, row)}
	}
	return topScores(scored, width)
}

// topScores sorts descending by score (index ascending on ties, keeping the
// ordering deterministic) and truncates to width.
func topScores(scored []types.ScoredJob, width int) []types.ScoredJob {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Index < scored[j].Index
	})
	if width > 0 && len(scored) > width {
		scored = scored[:width]
	}
	return scored
}

// Stats reports model state for the stats endpoint.
func (e *Engine) Stats() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := map[string]any{
		"ready":            e.ready,
		"rows":             e.rows,
		"semantic_enabled": e.embeddings != nil,
	}
	if e.vectorizer != nil {
		stats["vocabulary_size"] = len(e.vectorizer.Vocabulary)
	}
	if e.embedder != nil {
		stats["circuit_breaker"] = e.embedder.BreakerStats()
	}
	return stats
}
