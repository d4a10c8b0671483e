package cli

import (
	"testing"

	"jobmatch/internal/types"
)

func TestCorpusStats(t *testing.T) {
	jobs := []types.JobRecord{
		{
			Title:       "Software Engineering Intern",
			Description: "Internship for students.",
			Skills:      []string{"Python", "SQL"},
			Source:      types.SourceLinkedIn,
		},
		{
			Title:       "Data Analyst Fresher",
			Description: "Entry level role for fresh graduates.",
			Skills:      []string{"SQL", "Excel"},
			Source:      types.SourceNaukri,
		},
		{
			Title:       "Backend Developer",
			Description: "Requires 6+ years of experience with Go.",
			Source:      types.SourceLinkedIn,
		},
	}

	stats := corpusStats(jobs)

	if got := stats["total_postings"]; got != 3 {
		t.Errorf("total_postings = %v, want 3", got)
	}
	if got := stats["with_skills"]; got != 2 {
		t.Errorf("with_skills = %v, want 2", got)
	}
	// Python, SQL, Excel; SQL appears twice but counts once.
	if got := stats["distinct_skills"]; got != 3 {
		t.Errorf("distinct_skills = %v, want 3", got)
	}

	bySource, ok := stats["by_source"].(map[string]int)
	if !ok {
		t.Fatalf("by_source has type %T, want map[string]int", stats["by_source"])
	}
	if bySource["LinkedIn"] != 2 || bySource["Naukri"] != 1 {
		t.Errorf("by_source = %v, want LinkedIn:2 Naukri:1", bySource)
	}

	byLevel, ok := stats["by_experience_level"].(map[string]int)
	if !ok {
		t.Fatalf("by_experience_level has type %T, want map[string]int", stats["by_experience_level"])
	}
	if byLevel[string(types.LevelInternship)] != 1 {
		t.Errorf("internship count = %d, want 1", byLevel[string(types.LevelInternship)])
	}
	if byLevel[string(types.LevelFresher)] != 1 {
		t.Errorf("fresher count = %d, want 1", byLevel[string(types.LevelFresher)])
	}

	total := 0
	for _, n := range byLevel {
		total += n
	}
	if total != len(jobs) {
		t.Errorf("experience level counts sum to %d, want %d", total, len(jobs))
	}
}

func TestCorpusStatsEmpty(t *testing.T) {
	stats := corpusStats(nil)
	if got := stats["total_postings"]; got != 0 {
		t.Errorf("total_postings = %v, want 0", got)
	}
	if got := stats["distinct_skills"]; got != 0 {
		t.Errorf("distinct_skills = %v, want 0", got)
	}
}
