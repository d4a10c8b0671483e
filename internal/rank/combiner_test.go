package rank

import (
	"math"
	"testing"

	"jobmatch/internal/types"
)

func TestSkillOverlap(t *testing.T) {
	tests := []struct {
		name         string
		resumeSkills []string
		jobSkills    []string
		want         float64
	}{
		{
			name:         "empty resume skills",
			resumeSkills: nil,
			jobSkills:    []string{"Python"},
			want:         0,
		},
		{
			name:         "empty job skills",
			resumeSkills: []string{"Python"},
			jobSkills:    nil,
			want:         0,
		},
		{
			name:         "case insensitive full overlap",
			resumeSkills: []string{"Python", "Docker"},
			jobSkills:    []string{"python", "DOCKER"},
			want:         1.0,
		},
		{
			name:         "partial jaccard",
			resumeSkills: []string{"Python", "React"},
			jobSkills:    []string{"Python", "AWS", "Docker"},
			want:         0.25, // 1 common / 4 union
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SkillOverlap(tt.resumeSkills, tt.jobSkills)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SkillOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

// midJob classifies to mid: no year requirement, no seniority keyword, plain
// title.
func midJob(idx int, skills ...string) types.JobRecord {
	return types.JobRecord{
		ID:          "job-" + string(rune('a'+idx)),
		Title:       "Backend Developer",
		Company:     "Acme",
		Location:    "Bangalore, India",
		Description: "build services",
		Skills:      skills,
		Source:      types.SourceLinkedIn,
	}
}

func TestCombineWeightsAndBoosts(t *testing.T) {
	jobs := []types.JobRecord{midJob(0, "Python", "Docker")}
	analysis := &types.ResumeAnalysis{
		Skills:          []string{"Python", "Docker"},
		ExperienceLevel: types.LevelMid,
	}

	got := Combine(
		[]types.ScoredJob{{Index: 0, Score: 1.0}},
		[]types.ScoredJob{{Index: 0, Score: 1.0}},
		jobs, analysis, "")

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	// 0.20*1 + 0.50*1 + 0.30*1 = 1.0, then *1.2 skill boost. No clamping
	// before formatting, so the raw score exceeds 1.
	want := 1.2
	if math.Abs(got[0].Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got[0].Score, want)
	}
}

func TestCombineTitleBoostCompounds(t *testing.T) {
	jobs := []types.JobRecord{midJob(0, "Python", "Docker")}
	analysis := &types.ResumeAnalysis{
		Skills:          []string{"Python", "Docker"},
		ExperienceLevel: types.LevelMid,
		JobTitles:       []string{"backend developer"},
	}

	got := Combine(
		[]types.ScoredJob{{Index: 0, Score: 1.0}},
		[]types.ScoredJob{{Index: 0, Score: 1.0}},
		jobs, analysis, "")

	want := 1.0 * 1.2 * 1.15
	if math.Abs(got[0].Score-want) > 1e-9 {
		t.Errorf("score = %v, want compounded boosts %v", got[0].Score, want)
	}
}

func TestCombineMissingSignalContributesZero(t *testing.T) {
	jobs := []types.JobRecord{midJob(0)}
	analysis := &types.ResumeAnalysis{ExperienceLevel: types.LevelMid}

	// Semantic signal absent entirely; only the lexical weight applies.
	got := Combine([]types.ScoredJob{{Index: 0, Score: 0.5}}, nil, jobs, analysis, "")

	want := 0.20 * 0.5
	if len(got) != 1 || math.Abs(got[0].Score-want) > 1e-9 {
		t.Errorf("got %v, want single score %v", got, want)
	}
}

func TestCombineExperienceLevelFilter(t *testing.T) {
	fresherJob := types.JobRecord{
		ID:          "fresher-1",
		Title:       "Software Engineer Fresher",
		Company:     "Acme",
		Description: "learn on the job",
		Source:      types.SourceLinkedIn,
	}
	seniorJob := types.JobRecord{
		ID:          "senior-1",
		Title:       "Engineer",
		Company:     "Acme",
		Description: "requires 8+ years of distributed systems work",
		Source:      types.SourceLinkedIn,
	}
	jobs := []types.JobRecord{fresherJob, seniorJob}
	analysis := &types.ResumeAnalysis{ExperienceLevel: types.LevelFresher}

	got := Combine(
		[]types.ScoredJob{{Index: 0, Score: 0.5}, {Index: 1, Score: 0.9}},
		nil, jobs, analysis, "")

	if len(got) != 1 || got[0].Index != 0 {
		t.Errorf("fresher resume matched %v, want only the fresher posting", got)
	}
}

func TestCombineLocationFilter(t *testing.T) {
	jobs := []types.JobRecord{midJob(0), midJob(1)}
	jobs[1].Location = "Remote, USA"
	analysis := &types.ResumeAnalysis{ExperienceLevel: types.LevelMid}

	got := Combine(
		[]types.ScoredJob{{Index: 0, Score: 0.5}, {Index: 1, Score: 0.9}},
		nil, jobs, analysis, "bangalore")

	if len(got) != 1 || got[0].Index != 0 {
		t.Errorf("location filter kept %v, want only the Bangalore posting", got)
	}
}

func TestCombineUnionOfSignals(t *testing.T) {
	jobs := []types.JobRecord{midJob(0), midJob(1), midJob(2)}
	analysis := &types.ResumeAnalysis{ExperienceLevel: types.LevelMid}

	got := Combine(
		[]types.ScoredJob{{Index: 0, Score: 0.5}},
		[]types.ScoredJob{{Index: 2, Score: 0.5}},
		jobs, analysis, "")

	if len(got) != 2 {
		t.Fatalf("len = %d, want union of both signals", len(got))
	}
}

func TestInterleaveBySource(t *testing.T) {
	jobs := []types.JobRecord{
		{ID: "l1", Source: types.SourceLinkedIn},
		{ID: "l2", Source: types.SourceLinkedIn},
		{ID: "l3", Source: types.SourceLinkedIn},
		{ID: "n1", Source: types.SourceNaukri},
	}
	scored := []types.ScoredJob{
		{Index: 0, Score: 0.9},
		{Index: 1, Score: 0.8},
		{Index: 3, Score: 0.7},
		{Index: 2, Score: 0.6},
	}

	got := InterleaveBySource(scored, jobs)

	wantOrder := []int{0, 3, 1, 2}
	if len(got) != len(wantOrder) {
		t.Fatalf("len = %d, want %d", len(got), len(wantOrder))
	}
	for i, wantIdx := range wantOrder {
		if got[i].Index != wantIdx {
			t.Errorf("position %d = index %d, want %d", i, got[i].Index, wantIdx)
		}
	}
}

func TestInterleaveSingleSource(t *testing.T) {
	jobs := []types.JobRecord{
		{ID: "l1", Source: types.SourceLinkedIn},
		{ID: "l2", Source: types.SourceLinkedIn},
	}
	scored := []types.ScoredJob{{Index: 0, Score: 0.9}, {Index: 1, Score: 0.8}}

	got := InterleaveBySource(scored, jobs)
	if len(got) != 2 || got[0].Index != 0 || got[1].Index != 1 {
		t.Errorf("single-source interleave changed order: %v", got)
	}
}
