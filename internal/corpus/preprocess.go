package corpus

import (
	"regexp"
	"strings"

	"jobmatch/internal/types"
	"jobmatch/internal/vocab"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanDescription strips HTML tags and collapses whitespace runs to a
// single space.
func CleanDescription(description string) string {
	cleaned := htmlTagPattern.ReplaceAllString(description, " ")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// buildCombinedText concatenates the fields fed to the similarity stages.
func buildCombinedText(job types.JobRecord, description string) string {
	combined := job.Title + " " + job.Company + " " + job.Location + " " +
		job.Sector + " " + job.WorkType + " " + description
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(combined, " "))
}

// preprocessJob cleans the description, unions extracted skills with any
// source-provided skills, and derives the combined text. Jobs with no
// description at all carry nothing to match against and are dropped.
// This step is pure: the same input record always yields the same output.
func preprocessJob(job types.JobRecord) (types.JobRecord, bool) {
	description := CleanDescription(job.Description)
	if description == "" {
		return types.JobRecord{}, false
	}

	extracted := vocab.ExtractSkills(description)
	if len(job.Skills) > 0 {
		job.Skills = unionSkills(job.Skills, extracted)
	} else {
		job.Skills = extracted
	}

	job.Description = description
	job.CombinedText = buildCombinedText(job, description)
	return job, true
}

// unionSkills merges two skill lists preserving first-seen order and dropping
// case-insensitive duplicates.
func unionSkills(existing, extracted []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(extracted))
	merged := make([]string, 0, len(existing)+len(extracted))
	for _, list := range [][]string{existing, extracted} {
		for _, skill := range list {
			key := strings.ToLower(skill)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, skill)
		}
	}
	return merged
}
