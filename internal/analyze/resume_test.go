package analyze

import (
	"log/slog"
	"testing"

	"jobmatch/internal/errors"
	"jobmatch/internal/types"
)

func TestExtractExperienceYears(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "simple years of experience",
			text: "I have 3 years of experience in backend work",
			want: 3,
		},
		{
			name: "plus form",
			text: "5+ years experience with distributed systems",
			want: 5,
		},
		{
			name: "years in",
			text: "4 years in web development",
			want: 4,
		},
		{
			name: "labelled form",
			text: "Experience: 6 years",
			want: 6,
		},
		{
			name: "maximum across sections wins",
			text: "3 years of experience at Acme. Overall 5+ years experience.",
			want: 5,
		},
		{
			name: "no pattern means zero",
			text: "Recent graduate passionate about software",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractExperienceYears(tt.text); got != tt.want {
				t.Errorf("ExtractExperienceYears(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetermineExperienceLevel(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		years int
		want  types.ExperienceLevel
	}{
		{
			name:  "zero years is fresher",
			text:  "Software developer",
			years: 0,
			want:  types.LevelFresher,
		},
		{
			name:  "fresher keyword overrides years",
			text:  "entry level candidate with solid projects",
			years: 3,
			want:  types.LevelFresher,
		},
		{
			name:  "senior keyword overrides low years",
			text:  "senior backend developer",
			years: 1,
			want:  types.LevelSenior,
		},
		{
			name:  "five years is senior",
			text:  "backend developer",
			years: 5,
			want:  types.LevelSenior,
		},
		{
			name:  "two to four years is mid",
			text:  "backend developer",
			years: 3,
			want:  types.LevelMid,
		},
		{
			name:  "one year is junior",
			text:  "backend developer",
			years: 1,
			want:  types.LevelJunior,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExperienceLevel(tt.text, tt.years); got != tt.want {
				t.Errorf("DetermineExperienceLevel(%q, %d) = %q, want %q", tt.text, tt.years, got, tt.want)
			}
		})
	}
}

func TestExtractJobTitles(t *testing.T) {
	text := "Worked as a Software Engineer and later Senior Developer; also did software engineer duties."
	titles := ExtractJobTitles(text)

	want := map[string]bool{"software engineer": true, "senior developer": true}
	if len(titles) != len(want) {
		t.Fatalf("ExtractJobTitles() = %v, want %d unique titles", titles, len(want))
	}
	for _, title := range titles {
		if !want[title] {
			t.Errorf("unexpected title %q", title)
		}
	}
}

func TestExtractEducation(t *testing.T) {
	text := "Bachelor of Technology in Computer Science, B.Tech from IIT"
	education := ExtractEducation(text)
	if len(education) == 0 {
		t.Fatal("ExtractEducation() found nothing")
	}
	for _, entry := range education {
		if entry != "" && entry[0] >= 'A' && entry[0] <= 'Z' {
			t.Errorf("education entries should be lower-cased: %q", entry)
		}
	}
}

func TestAnalyze(t *testing.T) {
	a := NewAnalyzer(errors.NewLogger(slog.LevelError))

	analysis := a.Analyze("Python and React developer, 3 years experience, Bachelor's in Computer Science")
	if analysis.ExperienceYears != 3 {
		t.Errorf("ExperienceYears = %d, want 3", analysis.ExperienceYears)
	}
	if analysis.ExperienceLevel != types.LevelMid {
		t.Errorf("ExperienceLevel = %q, want mid", analysis.ExperienceLevel)
	}
	if len(analysis.Skills) != 2 || analysis.Skills[0] != "Python" || analysis.Skills[1] != "React" {
		t.Errorf("Skills = %v, want [Python React]", analysis.Skills)
	}
	if len(analysis.Education) == 0 {
		t.Error("expected education match")
	}
	if analysis.WordCount == 0 {
		t.Error("WordCount should not be zero")
	}

	// Empty input still yields a valid analysis.
	empty := a.Analyze("")
	if empty.ExperienceYears != 0 || empty.ExperienceLevel != types.LevelFresher {
		t.Errorf("empty resume analysis = %+v, want fresher with zero years", empty)
	}
}
