package skillgap

import (
	"reflect"
	"testing"
)

func TestExtractSkillsFromText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "aliases resolve to display names",
			input: "worked with js, postgres and k8s",
			want:  []string{"JavaScript", "PostgreSQL", "Kubernetes"},
		},
		{
			name:  "word boundaries respected",
			input: "ongoing javascripting effort",
			want:  nil,
		},
		{
			name:  "table order preserved",
			input: "docker before python in the text",
			want:  []string{"Python", "Docker"},
		},
		{
			name:  "symbol suffixed languages",
			input: "c++ and c# modules",
			want:  []string{"C++", "C#"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSkillsFromText(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSkillsFromText(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFallbackAnalysis(t *testing.T) {
	resume := "Solid Python and Git, some Excel"
	job := "We need Python, Docker and Kubernetes"

	got := FallbackAnalysis(resume, job)

	if !reflect.DeepEqual(got.PresentSkills, []string{"Python"}) {
		t.Errorf("PresentSkills = %v, want [Python]", got.PresentSkills)
	}
	if !reflect.DeepEqual(got.MissingSkills, []string{"Docker", "Kubernetes"}) {
		t.Errorf("MissingSkills = %v, want [Docker Kubernetes]", got.MissingSkills)
	}
	if !reflect.DeepEqual(got.AdditionalSkills, []string{"Git", "Excel"}) {
		t.Errorf("AdditionalSkills = %v, want [Git Excel]", got.AdditionalSkills)
	}

	python := got.SkillAnalysis["Python"]
	if python.Status != "present" || python.Importance != "high" {
		t.Errorf("Python detail = %+v, want present/high", python)
	}
	docker := got.SkillAnalysis["Docker"]
	if docker.Status != "missing" || docker.Importance != "high" || docker.Level != "basic" {
		t.Errorf("Docker detail = %+v, want missing/high/basic", docker)
	}
	kube := got.SkillAnalysis["Kubernetes"]
	if kube.Importance != "medium" {
		t.Errorf("Kubernetes importance = %s, want medium", kube.Importance)
	}
}

func TestFallbackAnalysisEmptyInputs(t *testing.T) {
	got := FallbackAnalysis("", "")

	if len(got.PresentSkills) != 0 || len(got.MissingSkills) != 0 || len(got.AdditionalSkills) != 0 {
		t.Errorf("empty inputs produced skills: %+v", got)
	}
	if got.SkillAnalysis == nil {
		t.Error("SkillAnalysis is nil, want empty map")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "markdown fences stripped",
			input: "```json\n{\"present_skills\": []}\n```",
			want:  `{"present_skills": []}`,
		},
		{
			name:  "prose around the object dropped",
			input: "Here is the analysis: {\"a\": 1} hope it helps",
			want:  `{"a": 1}`,
		},
		{
			name:  "plain object unchanged",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildAnalysisFillsMissingDetails(t *testing.T) {
	parsed := gapResponse{
		PresentSkills: []string{"Python"},
		MissingSkills: []string{"Terraform"},
	}

	got := buildAnalysis(parsed)

	if got.SkillAnalysis["Python"].Status != "present" {
		t.Errorf("Python status = %s, want present", got.SkillAnalysis["Python"].Status)
	}
	if got.SkillAnalysis["Terraform"].Level != "basic" {
		t.Errorf("Terraform level = %s, want basic", got.SkillAnalysis["Terraform"].Level)
	}
}

func TestBuildAnalysisDetailDefaults(t *testing.T) {
	parsed := gapResponse{
		PresentSkills: []string{"Python"},
		SkillDetails: map[string]gapDetail{
			"Python": {Status: "present"},
		},
	}

	detail := buildAnalysis(parsed).SkillAnalysis["Python"]
	if detail.Importance != "medium" || detail.Level != "intermediate" {
		t.Errorf("defaults not applied: %+v", detail)
	}
}

func TestLearningRecommendations(t *testing.T) {
	recs := LearningRecommendations([]string{"Docker", "Some Obscure Tool"})

	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].Skill != "Docker" || len(recs[0].Resources) == 0 {
		t.Errorf("Docker recommendation = %+v, want curated resources", recs[0])
	}
	// Unknown skills still get a generic recommendation.
	if recs[1].Skill != "Some Obscure Tool" || len(recs[1].Resources) == 0 {
		t.Errorf("fallback recommendation = %+v, want generic resources", recs[1])
	}
}
