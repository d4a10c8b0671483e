package rank

import (
	"testing"

	"jobmatch/internal/types"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Backend Engineer (Remote)", "backend engineer"},
		{"Backend Engineer | Fintech Team", "backend engineer"},
		{"Backend Engineer - REF#12345 urgent", "backend engineer"},
		{"Backend Engineer #42", "backend engineer"},
		{"  Backend   Engineer  ", "backend engineer"},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.input); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCoreTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Backend Engineer - Remote", "backend engineer"},
		{"Backend Engineer - Hybrid (Bangalore)", "backend engineer"},
		{"Backend Engineer - Work From Home", "backend engineer"},
		{"Backend Engineer - WFH", "backend engineer"},
		{"Backend Engineer - Platform Team", "backend engineer - platform team"},
	}
	for _, tt := range tests {
		if got := CoreTitle(tt.input); got != tt.want {
			t.Errorf("CoreTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDeduperByID(t *testing.T) {
	d := NewDeduper()

	if d.Seen(types.JobRecord{ID: "1", Title: "Engineer", Company: "Acme"}) {
		t.Error("first occurrence flagged as duplicate")
	}
	if !d.Seen(types.JobRecord{ID: "1", Title: "Totally Different", Company: "Other"}) {
		t.Error("repeated id not flagged")
	}
}

func TestDeduperSharedURLSet(t *testing.T) {
	d := NewDeduper()

	d.Seen(types.JobRecord{ID: "1", Title: "Engineer", Company: "Acme",
		ApplyURL: "https://jobs.example/apply/7"})
	// A different posting whose job_url equals the earlier apply_url is the
	// same opening reposted.
	if !d.Seen(types.JobRecord{ID: "2", Title: "Engineer II", Company: "Beta",
		JobURL: "https://jobs.example/apply/7"}) {
		t.Error("job_url matching an earlier apply_url not flagged")
	}
}

func TestDeduperByNormalizedTitleCompany(t *testing.T) {
	d := NewDeduper()

	d.Seen(types.JobRecord{ID: "1", Title: "Backend Engineer (Remote)", Company: "Acme"})
	if !d.Seen(types.JobRecord{ID: "2", Title: "Backend Engineer | Platform", Company: "acme"}) {
		t.Error("normalized title+company duplicate not flagged")
	}
}

func TestDeduperByCoreTitle(t *testing.T) {
	d := NewDeduper()

	d.Seen(types.JobRecord{ID: "1", Title: "Backend Engineer - Remote", Company: "Acme"})
	if !d.Seen(types.JobRecord{ID: "2", Title: "Backend Engineer - Hybrid", Company: "Acme"}) {
		t.Error("work-mode title variants not collapsed")
	}
}

func TestDeduperEmptyKeysNeverMatch(t *testing.T) {
	d := NewDeduper()

	if d.Seen(types.JobRecord{Title: "Engineer"}) {
		t.Error("record without id, urls, or company flagged on first sight")
	}
	if d.Seen(types.JobRecord{Title: "Developer"}) {
		t.Error("second record with empty keys flagged as duplicate")
	}
}
