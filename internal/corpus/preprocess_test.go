package corpus

import (
	"testing"

	"jobmatch/internal/types"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips tags",
			in:   "<p>Build <b>APIs</b> with Go</p>",
			want: "Build APIs with Go",
		},
		{
			name: "collapses whitespace",
			in:   "  too \n\t many   spaces ",
			want: "too many spaces",
		},
		{
			name: "plain text untouched",
			in:   "already clean",
			want: "already clean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanDescription(tt.in); got != tt.want {
				t.Errorf("CleanDescription(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPreprocessJob(t *testing.T) {
	job := types.JobRecord{
		ID:          "1",
		Title:       "Backend Developer",
		Company:     "Acme",
		Location:    "Remote",
		Sector:      "Fintech",
		WorkType:    "Full-time",
		Description: "<p>We use Python and PostgreSQL daily.</p>",
		Skills:      []string{"Python", "Kafka"},
	}

	got, ok := preprocessJob(job)
	if !ok {
		t.Fatal("preprocessJob rejected a job with a description")
	}

	if got.Description != "We use Python and PostgreSQL daily." {
		t.Errorf("Description = %q, want cleaned text", got.Description)
	}

	// Source-provided skills are unioned with extracted ones, not replaced,
	// and case-insensitive duplicates collapse.
	wantSkills := []string{"Python", "Kafka", "PostgreSQL"}
	if len(got.Skills) != len(wantSkills) {
		t.Fatalf("Skills = %v, want %v", got.Skills, wantSkills)
	}
	for i := range wantSkills {
		if got.Skills[i] != wantSkills[i] {
			t.Errorf("Skills[%d] = %q, want %q", i, got.Skills[i], wantSkills[i])
		}
	}

	wantCombined := "Backend Developer Acme Remote Fintech Full-time We use Python and PostgreSQL daily."
	if got.CombinedText != wantCombined {
		t.Errorf("CombinedText = %q, want %q", got.CombinedText, wantCombined)
	}

	// Determinism: preprocessing the same input twice yields the same record.
	again, _ := preprocessJob(job)
	if again.CombinedText != got.CombinedText || len(again.Skills) != len(got.Skills) {
		t.Error("preprocessJob is not deterministic")
	}
}

func TestPreprocessJobDropsEmptyDescription(t *testing.T) {
	if _, ok := preprocessJob(types.JobRecord{ID: "1", Title: "No Description"}); ok {
		t.Error("job without description should be dropped")
	}
	if _, ok := preprocessJob(types.JobRecord{ID: "2", Description: "<br><br>"}); ok {
		t.Error("job whose description cleans to empty should be dropped")
	}
}
