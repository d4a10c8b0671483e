package similarity

import (
	"context"
	goerrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"jobmatch/internal/config"
	"jobmatch/internal/errors"
)

func testMatchingConfig() config.MatchingConfig {
	return config.MatchingConfig{
		DefaultTopK:    5,
		MaxTopK:        20,
		MaxFeatures:    5000,
		MinDocFreq:     1,
		MaxDocFreqFrac: 1.0,
	}
}

func testCorpus() []string {
	return []string{
		"python developer backend django flask apis",
		"frontend developer react typescript css",
		"data scientist machine learning python pandas",
	}
}

func TestEnsureReadyEmptyCorpus(t *testing.T) {
	e := NewEngine(testMatchingConfig(), t.TempDir(), nil, errors.NewLogger(slog.LevelError))

	err := e.EnsureReady(context.Background(), nil)
	if err == nil {
		t.Fatal("EnsureReady with empty corpus should fail")
	}
	var appErr *errors.AppError
	if !goerrors.As(err, &appErr) || appErr.Code != errors.ErrCodeEmptyCorpus {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeEmptyCorpus)
	}
	if e.Ready() {
		t.Error("engine should not be ready after a failed fit")
	}
}

func TestLexicalScoresRanking(t *testing.T) {
	e := NewEngine(testMatchingConfig(), t.TempDir(), nil, errors.NewLogger(slog.LevelError))
	if err := e.EnsureReady(context.Background(), testCorpus()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}

	scores := e.LexicalScores("react typescript frontend developer", 10)
	if len(scores) != 3 {
		t.Fatalf("len(scores) = %d, want 3", len(scores))
	}
	if scores[0].Index != 1 {
		t.Errorf("top match index = %d, want the frontend posting", scores[0].Index)
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Errorf("scores not descending at %d: %v", i, scores)
		}
	}
}

func TestLexicalScoresWidthTruncation(t *testing.T) {
	e := NewEngine(testMatchingConfig(), t.TempDir(), nil, errors.NewLogger(slog.LevelError))
	if err := e.EnsureReady(context.Background(), testCorpus()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}

	if got := e.LexicalScores("python", 2); len(got) != 2 {
		t.Errorf("len(scores) = %d, want width 2", len(got))
	}
}

func TestSemanticScoresWithoutEmbedder(t *testing.T) {
	e := NewEngine(testMatchingConfig(), t.TempDir(), nil, errors.NewLogger(slog.LevelError))
	if err := e.EnsureReady(context.Background(), testCorpus()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}

	if e.SemanticEnabled() {
		t.Error("SemanticEnabled() = true without an embedder")
	}
	if got := e.SemanticScores(context.Background(), "python", 5); got != nil {
		t.Errorf("SemanticScores() = %v, want nil without an embedder", got)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cacheDir := t.TempDir()
	logger := errors.NewLogger(slog.LevelError)
	docs := testCorpus()

	first := NewEngine(testMatchingConfig(), cacheDir, nil, logger)
	if err := first.EnsureReady(context.Background(), docs); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(cacheDir, cacheFileName)); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}

	second := NewEngine(testMatchingConfig(), cacheDir, nil, logger)
	if err := second.EnsureReady(context.Background(), docs); err != nil {
		t.Fatalf("EnsureReady() from cache error = %v", err)
	}

	query := "machine learning python"
	want := first.LexicalScores(query, 3)
	got := second.LexicalScores(query, 3)
	if len(got) != len(want) {
		t.Fatalf("len(scores) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Index != want[i].Index || got[i].Score != want[i].Score {
			t.Errorf("scores[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCacheInvalidatedOnRowCountChange(t *testing.T) {
	cacheDir := t.TempDir()
	logger := errors.NewLogger(slog.LevelError)

	first := NewEngine(testMatchingConfig(), cacheDir, nil, logger)
	if err := first.EnsureReady(context.Background(), testCorpus()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}

	grown := append(testCorpus(), "devops engineer kubernetes terraform")
	second := NewEngine(testMatchingConfig(), cacheDir, nil, logger)
	if err := second.EnsureReady(context.Background(), grown); err != nil {
		t.Fatalf("EnsureReady() after corpus growth error = %v", err)
	}

	scores := second.LexicalScores("kubernetes terraform", 10)
	if len(scores) != 4 {
		t.Fatalf("len(scores) = %d, want 4 after refit", len(scores))
	}
	if scores[0].Index != 3 {
		t.Errorf("top match index = %d, want the new posting", scores[0].Index)
	}
}

func TestCorruptCacheTriggersRefit(t *testing.T) {
	cacheDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(cacheDir, cacheFileName), []byte("not gob"), 0o600); err != nil {
		t.Fatal(err)
	}

	e := NewEngine(testMatchingConfig(), cacheDir, nil, errors.NewLogger(slog.LevelError))
	if err := e.EnsureReady(context.Background(), testCorpus()); err != nil {
		t.Fatalf("EnsureReady() with corrupt cache error = %v", err)
	}
	if !e.Ready() {
		t.Error("engine should refit when the cache is unreadable")
	}
}

func TestStats(t *testing.T) {
	e := NewEngine(testMatchingConfig(), t.TempDir(), nil, errors.NewLogger(slog.LevelError))
	if err := e.EnsureReady(context.Background(), testCorpus()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}

	stats := e.Stats()
	if stats["ready"] != true {
		t.Errorf("stats[ready] = %v, want true", stats["ready"])
	}
	if stats["rows"] != 3 {
		t.Errorf("stats[rows] = %v, want 3", stats["rows"])
	}
	if stats["semantic_enabled"] != false {
		t.Errorf("stats[semantic_enabled] = %v, want false", stats["semantic_enabled"])
	}
}
