package recommend

import (
	"math"
	"strings"
	"unicode/utf8"

	"jobmatch/internal/classify"
	"jobmatch/internal/rank"
	"jobmatch/internal/types"
)

const (
	descriptionLimit = 500
	maxRequiredShown = 10
	maxMissingShown  = 5
)

// formatMatches turns ranked indices into display entries, dropping
// near-duplicate postings as it goes. Dedup runs after truncation, so the
// final list may hold fewer entries than requested.
func (s *Service) formatMatches(scored []types.ScoredJob, analysis types.ResumeAnalysis) []types.JobMatch {
	deduper := rank.NewDeduper()
	matches := make([]types.JobMatch, 0, len(scored))

	resumeSkills := make(map[string]struct{}, len(analysis.Skills))
	for _, skill := range analysis.Skills {
		resumeSkills[strings.ToLower(skill)] = struct{}{}
	}

	for _, sj := range scored {
		if sj.Index >= len(s.jobs) {
			continue
		}
		job := s.jobs[sj.Index]
		if deduper.Seen(job) {
			continue
		}

		var matched, missing []string
		for _, skill := range job.Skills {
			if _, ok := resumeSkills[strings.ToLower(skill)]; ok {
				matched = append(matched, skill)
			} else {
				missing = append(missing, skill)
			}
		}
		if len(missing) > maxMissingShown {
			missing = missing[:maxMissingShown]
		}

		required := job.Skills
		if len(required) > maxRequiredShown {
			required = required[:maxRequiredShown]
		}

		applyLink := job.ApplyURL
		if applyLink == "" {
			applyLink = job.JobURL
		}

		percent := Percentage(sj.Score)
		matches = append(matches, types.JobMatch{
			ID:              job.ID,
			Title:           job.Title,
			Company:         job.Company,
			Location:        job.Location,
			Description:     truncateDescription(job.Description),
			Similarity:      percent,
			MatchScore:      percent,
			ExperienceLevel: classify.Classify(job),
			SkillsRequired:  required,
			SkillsMatched:   matched,
			SkillsMissing:   missing,
			ContractType:    job.ContractType,
			WorkType:        job.WorkType,
			Sector:          job.Sector,
			ApplyLink:       applyLink,
			JobURL:          job.JobURL,
			ApplyURL:        job.ApplyURL,
			PostedTime:      job.PostedTime,
			Salary:          job.Salary,
			Source:          job.Source,
		})
	}
	return matches
}

// Percentage clamps a raw combined score to [0, 1] and converts it to a
// whole percentage. Boosted scores above 1.0 display as 100.
func Percentage(score float64) int {
	score = math.Max(0, math.Min(1, score))
	return int(math.Round(score * 100))
}

func truncateDescription(description string) string {
	if len(description) <= descriptionLimit {
		return description
	}
	// Back up to a rune boundary so multi-byte text is never split mid-rune
	cut := descriptionLimit
	for cut > 0 && !utf8.RuneStart(description[cut]) {
		cut--
	}
	return description[:cut] + "..."
}
