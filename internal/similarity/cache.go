package similarity

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"jobmatch/internal/errors"
)

const cacheFileName = "model_cache.gob"

// modelCache is the on-disk snapshot of the fitted similarity model. It is
// invalidated whenever the corpus row count changes.
type modelCache struct {
	Rows       int
	Vocabulary map[string]int
	IDF        []float64
	Matrix     []SparseVector
	EmbedModel string
	Embeddings [][]float32
}

// loadModelCache reads a cached model from cacheDir. A missing file is not an
// error; any other failure is reported so the caller can log and refit.
func loadModelCache(cacheDir string) (*modelCache, error) {
	path := filepath.Join(cacheDir, cacheFileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewDataError(errors.ErrCodeCacheInvalid, "failed to open model cache", err)
	}
	defer func() { _ = f.Close() }()

	var cache modelCache
	if err := gob.NewDecoder(f).Decode(&cache); err != nil {
		return nil, errors.NewDataError(errors.ErrCodeCacheInvalid, "failed to decode model cache", err)
	}
	return &cache, nil
}

// saveModelCache writes the model snapshot atomically via a temp file rename.
func saveModelCache(cacheDir string, cache *modelCache) error {
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return errors.NewDataError(errors.ErrCodeCacheInvalid, "failed to create cache directory", err)
	}

	tmp, err := os.CreateTemp(cacheDir, cacheFileName+".*")
	if err != nil {
		return errors.NewDataError(errors.ErrCodeCacheInvalid, "failed to create cache file", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := gob.NewEncoder(tmp).Encode(cache); err != nil {
		_ = tmp.Close()
		return errors.NewDataError(errors.ErrCodeCacheInvalid, "failed to encode model cache", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewDataError(errors.ErrCodeCacheInvalid, "failed to close cache file", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(cacheDir, cacheFileName)); err != nil {
		return errors.NewDataError(errors.ErrCodeCacheInvalid, "failed to replace cache file", err)
	}
	return nil
}
