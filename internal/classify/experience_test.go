package classify

import (
	"testing"

	"jobmatch/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		job  types.JobRecord
		want types.ExperienceLevel
	}{
		{
			name: "intern in title wins over everything",
			job: types.JobRecord{
				Title:       "Software Intern",
				Description: "senior team, 5+ years of surrounding context",
			},
			want: types.LevelInternship,
		},
		{
			name: "fresher in title",
			job: types.JobRecord{
				Title:       "Fresher - Java Developer",
				Description: "minimum 4 years in similar roles mentioned elsewhere",
			},
			want: types.LevelFresher,
		},
		{
			name: "plus pattern raises the floor",
			job: types.JobRecord{
				Title:       "Full Stack Dev",
				Description: "Looking for candidate with 2+ years experience",
			},
			want: types.LevelMid, // 2+ means more than 2, effective floor 3
		},
		{
			name: "range pattern uses first number only",
			job: types.JobRecord{
				Title:       "Full Stack Dev",
				Description: "Looking for candidate with 2-5 years experience",
			},
			want: types.LevelFresher, // first captured 2, not incremented
		},
		{
			name: "minimum pattern",
			job: types.JobRecord{
				Title:       "Backend Developer",
				Description: "minimum 6 years building services",
			},
			want: types.LevelSenior,
		},
		{
			name: "to-range pattern",
			job: types.JobRecord{
				Title:       "Backend Developer",
				Description: "3 to 7 years with Java",
			},
			want: types.LevelMid,
		},
		{
			name: "zero range is fresher",
			job: types.JobRecord{
				Title:       "Support Engineer",
				Description: "0-2 years welcome",
			},
			want: types.LevelFresher,
		},
		{
			name: "entry level phrase without numbers",
			job: types.JobRecord{
				Title:       "Developer",
				Description: "This is an entry level position",
			},
			want: types.LevelFresher,
		},
		{
			name: "source hint maps senior",
			job: types.JobRecord{
				Title:               "Developer",
				Description:         "Work on our platform",
				ExperienceLevelHint: "Mid-Senior level",
			},
			want: types.LevelSenior,
		},
		{
			name: "fresher text overrides senior hint",
			job: types.JobRecord{
				Title:               "Developer",
				Description:         "fresher candidates encouraged to apply",
				ExperienceLevelHint: "Senior level",
			},
			want: types.LevelFresher,
		},
		{
			name: "hint maps associate to mid",
			job: types.JobRecord{
				Title:               "Developer",
				Description:         "Work on our platform",
				ExperienceLevelHint: "Associate",
			},
			want: types.LevelMid,
		},
		{
			name: "keyword scan finds architect",
			job: types.JobRecord{
				Title:       "Developer",
				Description: "Work with our architect on platform design",
			},
			want: types.LevelSenior,
		},
		{
			name: "senior title fallback",
			job: types.JobRecord{
				Title:       "Senior Developer",
				Description: "Great team",
			},
			want: types.LevelSenior,
		},
		{
			name: "plain job defaults to mid",
			job: types.JobRecord{
				Title:       "Developer",
				Description: "Ship features",
			},
			want: types.LevelMid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.job); got != tt.want {
				t.Errorf("Classify(%q / %q) = %q, want %q", tt.job.Title, tt.job.Description, got, tt.want)
			}
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// A numeric requirement must beat hint and keyword rules.
	job := types.JobRecord{
		Title:               "Developer",
		Description:         "5-8 years required",
		ExperienceLevelHint: "Entry level",
	}
	if got := Classify(job); got != types.LevelSenior {
		t.Errorf("numeric rule should outrank hint: got %q, want senior", got)
	}

	// Pattern order matters: the range pattern is tried before the plus
	// pattern, so "1-3 years" in a text also containing "5+ years" wins.
	job = types.JobRecord{
		Title:       "Developer",
		Description: "1-3 years required, team averages 5+ years",
	}
	if got := Classify(job); got != types.LevelFresher {
		t.Errorf("first matching pattern should win: got %q, want fresher", got)
	}
}
