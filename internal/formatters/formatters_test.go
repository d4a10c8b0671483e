package formatters

import (
	"strings"
	"testing"

	"jobmatch/internal/types"
)

func sampleRecommendation() types.RecommendationResult {
	return types.RecommendationResult{
		Success:           true,
		TotalJobsAnalyzed: 120,
		ResumeAnalysis: types.ResumeAnalysis{
			Skills:          []string{"Python", "Django"},
			ExperienceYears: 3,
			ExperienceLevel: types.LevelMid,
			JobTitles:       []string{"developer"},
		},
		TopJobs: []types.JobMatch{
			{
				Title:         "Python Developer",
				Company:       "Acme",
				Location:      "Pune, India",
				MatchScore:    87,
				Similarity:    74,
				Source:        types.SourceLinkedIn,
				SkillsMatched: []string{"Python"},
				SkillsMissing: []string{"Kubernetes"},
				JobURL:        "https://linkedin.example/jobs/1",
			},
		},
		Query: "developer python django jobs",
	}
}

func TestRecommendationTextFormat(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleRecommendation(), "text")
	if err != nil {
		t.Fatalf("Format(text) failed: %v", err)
	}

	for _, want := range []string{
		"Python Developer at Acme",
		"Match: 87%",
		"Skills missing: Kubernetes",
		"1 of 120 analyzed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestRecommendationMarkdownFormat(t *testing.T) {
	// Pointer results format the same as values.
	result := sampleRecommendation()
	out, err := GlobalRegistry.Format(&result, "markdown")
	if err != nil {
		t.Fatalf("Format(markdown) failed: %v", err)
	}

	if !strings.Contains(out, "# Job Recommendations") {
		t.Error("markdown output missing title")
	}
	if !strings.Contains(out, "### 1. Python Developer at Acme") {
		t.Error("markdown output missing job heading")
	}
	if !strings.Contains(out, "[Apply](https://linkedin.example/jobs/1)") {
		t.Error("markdown output missing apply link")
	}
}

func TestSkillGapTextFormat(t *testing.T) {
	result := types.SkillGapResult{
		Analysis: types.SkillGapAnalysis{
			PresentSkills: []string{"Python"},
			MissingSkills: []string{"Docker"},
			SkillAnalysis: map[string]types.SkillDetail{
				"Docker": {Status: "missing", Importance: "required", Level: "none"},
				"Python": {Status: "present", Importance: "required", Level: "intermediate"},
			},
		},
		Recommendations: []types.LearningRecommendation{
			{Skill: "Docker", Priority: "high", EstimatedTime: "2-4 weeks", Resources: []string{"Official docs"}},
		},
	}

	out, err := GlobalRegistry.Format(result, "text")
	if err != nil {
		t.Fatalf("Format(text) failed: %v", err)
	}

	// Missing skills lead the detail section regardless of map order.
	if !strings.Contains(out, "Docker (missing)") {
		t.Error("text output missing skill detail")
	}
	if strings.Index(out, "Docker (missing)") > strings.Index(out, "Python (present)") {
		t.Error("missing skills should be listed before present skills")
	}
	if !strings.Contains(out, "Docker [high priority]") {
		t.Error("text output missing learning plan entry")
	}
}

func TestRecommendationCSVFormat(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleRecommendation(), "csv")
	if err != nil {
		t.Fatalf("Format(csv) failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv output has %d lines, want header + 1 row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "rank,title,company") {
		t.Errorf("csv header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Python Developer,Acme") {
		t.Errorf("csv row = %q", lines[1])
	}
	if !strings.Contains(lines[1], ",87,74,") {
		t.Errorf("csv row missing scores: %q", lines[1])
	}
}

func TestCSVNotRegisteredForSkillGaps(t *testing.T) {
	if _, err := GlobalRegistry.Format(types.SkillGapResult{}, "csv"); err == nil {
		t.Error("csv export of skill gap results should fail")
	}
}

func TestJSONFallbackForUnknownType(t *testing.T) {
	out, err := GlobalRegistry.Format(map[string]int{"jobs": 3}, "json")
	if err != nil {
		t.Fatalf("Format(json) failed: %v", err)
	}
	if !strings.Contains(out, `"jobs": 3`) {
		t.Errorf("json output = %q", out)
	}
}

func TestUnknownFormatFails(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleRecommendation(), "yaml"); err == nil {
		t.Error("unsupported format should fail")
	}
}
