// Package corpus loads heterogeneous job feeds, normalizes them into the
// unified JobRecord schema, deduplicates, and preprocesses descriptions for
// the similarity stages. A missing or unparsable feed is logged and skipped;
// partial corpora are valid and expected.
package corpus

import (
	"encoding/json"
	"os"

	"jobmatch/internal/config"
	"jobmatch/internal/errors"
	"jobmatch/internal/types"
)

// Loader ingests the configured job feeds into one normalized corpus.
type Loader struct {
	cfg    config.CorpusConfig
	logger *errors.Logger
}

// NewLoader creates a corpus loader.
func NewLoader(cfg config.CorpusConfig, logger *errors.Logger) *Loader {
	return &Loader{cfg: cfg, logger: logger}
}

// Load reads every configured feed, normalizes and deduplicates the records,
// and preprocesses each surviving job. Output preserves insertion order of
// first-seen records; no sort happens at load time. Load never fails the
// whole run because one source is absent.
func (l *Loader) Load() []types.JobRecord {
	var all []types.JobRecord

	if l.cfg.LinkedInPath != "" {
		linkedin := l.loadLinkedIn(l.cfg.LinkedInPath)
		l.logger.Info("Loaded LinkedIn feed", "path", l.cfg.LinkedInPath, "jobs", len(linkedin))
		all = append(all, linkedin...)
	}

	if l.cfg.NaukriPath != "" {
		naukri := l.loadNaukri(l.cfg.NaukriPath)
		l.logger.Info("Loaded Naukri feed", "path", l.cfg.NaukriPath, "jobs", len(naukri))
		all = append(all, naukri...)
	}

	unique := dedupeJobs(all)
	if dropped := len(all) - len(unique); dropped > 0 {
		l.logger.Debug("Dropped duplicate records at load time", "dropped", dropped)
	}

	processed := make([]types.JobRecord, 0, len(unique))
	for _, job := range unique {
		if prepped, ok := preprocessJob(job); ok {
			processed = append(processed, prepped)
		}
	}

	l.logger.Info("Corpus loaded",
		"total_raw", len(all),
		"unique", len(unique),
		"processed", len(processed))

	return processed
}

// loadLinkedIn reads and normalizes the LinkedIn/SerpAPI feed.
func (l *Loader) loadLinkedIn(path string) []types.JobRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.LogError(
			errors.NewDataError(errors.ErrCodeSourceLoadFailed, "failed to read LinkedIn feed", err),
			"LinkedIn feed unavailable, continuing with partial corpus", "path", path)
		return nil
	}

	var raws []rawLinkedInJob
	if err := json.Unmarshal(data, &raws); err != nil {
		l.logger.LogError(
			errors.NewDataError(errors.ErrCodeSourceLoadFailed, "failed to parse LinkedIn feed", err),
			"LinkedIn feed unparsable, continuing with partial corpus", "path", path)
		return nil
	}

	jobs := make([]types.JobRecord, 0, len(raws))
	for _, raw := range raws {
		if job, ok := normalizeLinkedIn(raw); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// loadNaukri reads and normalizes the Naukri feed.
func (l *Loader) loadNaukri(path string) []types.JobRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.LogError(
			errors.NewDataError(errors.ErrCodeSourceLoadFailed, "failed to read Naukri feed", err),
			"Naukri feed unavailable, continuing with partial corpus", "path", path)
		return nil
	}

	var raws []rawNaukriJob
	if err := json.Unmarshal(data, &raws); err != nil {
		l.logger.LogError(
			errors.NewDataError(errors.ErrCodeSourceLoadFailed, "failed to parse Naukri feed", err),
			"Naukri feed unparsable, continuing with partial corpus", "path", path)
		return nil
	}

	jobs := make([]types.JobRecord, 0, len(raws))
	for _, raw := range raws {
		if job, ok := normalizeNaukri(raw); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}
