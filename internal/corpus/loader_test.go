package corpus

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"jobmatch/internal/config"
	"jobmatch/internal/errors"
	"jobmatch/internal/types"
)

func writeFeed(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing feed fixture: %v", err)
	}
	return path
}

func TestLoaderMergesSources(t *testing.T) {
	dir := t.TempDir()
	linkedin := writeFeed(t, dir, "linkedin.json", `[
		{"id": "li-1", "title": "Python Developer", "companyName": "Acme",
		 "location": "Pune", "description": "Django and Python work.",
		 "source": "LinkedIn"},
		{"id": "li-1", "title": "Duplicate By ID", "companyName": "Acme",
		 "description": "should be dropped"}
	]`)
	naukri := writeFeed(t, dir, "naukri.json", `[
		{"jobId": "nk-1", "title": "React Engineer", "companyName": "Beta",
		 "location": "Remote", "jobDescription": "React and TypeScript.",
		 "tagsAndSkills": "React,TypeScript", "experienceText": "0-2 Yrs"}
	]`)

	loader := NewLoader(config.CorpusConfig{
		LinkedInPath: linkedin,
		NaukriPath:   naukri,
	}, errors.NewLogger(slog.LevelError))

	jobs := loader.Load()
	if len(jobs) != 2 {
		t.Fatalf("Load() = %d jobs, want 2", len(jobs))
	}
	// Insertion order of first-seen records is preserved.
	if jobs[0].ID != "li-1" || jobs[1].ID != "nk-1" {
		t.Errorf("order = [%s %s], want [li-1 nk-1]", jobs[0].ID, jobs[1].ID)
	}
	if jobs[1].Source != types.SourceNaukri {
		t.Errorf("Naukri job source = %q", jobs[1].Source)
	}
	if jobs[0].CombinedText == "" {
		t.Error("loaded jobs should carry combined text")
	}
}

func TestLoaderSkipsBrokenSources(t *testing.T) {
	dir := t.TempDir()
	naukri := writeFeed(t, dir, "naukri.json", `[
		{"jobId": "nk-1", "title": "QA Engineer", "companyName": "Gamma",
		 "jobDescription": "Selenium test automation."}
	]`)

	loader := NewLoader(config.CorpusConfig{
		LinkedInPath: filepath.Join(dir, "missing.json"),
		NaukriPath:   naukri,
	}, errors.NewLogger(slog.LevelError))

	jobs := loader.Load()
	if len(jobs) != 1 {
		t.Fatalf("missing LinkedIn feed should leave a partial corpus, got %d jobs", len(jobs))
	}
	if jobs[0].ID != "nk-1" {
		t.Errorf("surviving job = %q, want nk-1", jobs[0].ID)
	}
}

func TestLoaderUnparsableFeed(t *testing.T) {
	dir := t.TempDir()
	broken := writeFeed(t, dir, "broken.json", `{not json`)

	loader := NewLoader(config.CorpusConfig{
		LinkedInPath: broken,
	}, errors.NewLogger(slog.LevelError))

	jobs := loader.Load()
	if len(jobs) != 0 {
		t.Fatalf("unparsable feed should load nothing, got %d jobs", len(jobs))
	}
}

func TestLoaderDedupIdempotence(t *testing.T) {
	dir := t.TempDir()
	feed := writeFeed(t, dir, "linkedin.json", `[
		{"id": "a", "title": "Dev", "companyName": "X", "description": "Go services."},
		{"id": "b", "title": "Dev", "companyName": "Y", "description": "Java services."},
		{"id": "a", "title": "Dev", "companyName": "X", "description": "Go services."}
	]`)

	loader := NewLoader(config.CorpusConfig{LinkedInPath: feed}, errors.NewLogger(slog.LevelError))
	first := loader.Load()
	second := loader.Load()

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("dedup idempotence broken: %d then %d jobs", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].CombinedText != second[i].CombinedText {
			t.Errorf("load not stable at index %d", i)
		}
	}
}
