// Package classify infers the seniority band a job posting requires. The
// decision is an ordered list of rules evaluated in strict priority order;
// the first rule that fires wins and lower-priority rules never run.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"jobmatch/internal/types"
)

// yearRequirement is one numeric-requirement pattern. Plus-style patterns
// denote "more than n", so their captured number is incremented before
// classification.
type yearRequirement struct {
	pattern *regexp.Regexp
	isPlus  bool
}

// yearPatterns are tried in order; the first pattern that matches supplies
// the requirement, using only its first captured number. Range patterns
// deliberately ignore the upper bound.
var yearPatterns = []yearRequirement{
	{pattern: regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*years?`)},          // "3-5 years"
	{pattern: regexp.MustCompile(`(\d+)\+\s*years?`), isPlus: true},      // "5+ years"
	{pattern: regexp.MustCompile(`minimum\s*(\d+)\s*years?`)},            // "minimum 3 years"
	{pattern: regexp.MustCompile(`(\d+)\s*to\s*(\d+)\s*years?`)},         // "3 to 7 years"
}

var fresherPhrases = []string{
	"0-1 year", "0-2 year", "0 year", "no experience required",
	"entry level", "entry-level",
}

// rule is one (predicate, outcome) step of the classifier. A rule returns
// ok=false to pass control to the next rule.
type rule func(title, jobText, hint string) (types.ExperienceLevel, bool)

var rules = []rule{
	titleFresherRule,
	numericYearsRule,
	fresherPhraseRule,
	sourceHintRule,
	keywordScanRule,
	titleFallbackRule,
}

// Classify maps one job to an experience level. It is a pure function of the
// job's title, description and source-provided hint.
func Classify(job types.JobRecord) types.ExperienceLevel {
	title := strings.ToLower(job.Title)
	jobText := title + " " + strings.ToLower(job.Description)
	hint := strings.ToLower(job.ExperienceLevelHint)

	for _, r := range rules {
		if level, ok := r(title, jobText, hint); ok {
			return level
		}
	}
	// titleFallbackRule always fires; unreachable.
	return types.LevelMid
}

// titleFresherRule catches explicit fresher/trainee/intern markers in the
// title. This runs first so short postings titled "Fresher" cannot be
// year-sniped by an unrelated number elsewhere in the text.
func titleFresherRule(title, _, _ string) (types.ExperienceLevel, bool) {
	for _, word := range []string{"fresher", "fresh graduate", "trainee", "intern"} {
		if strings.Contains(title, word) {
			if strings.Contains(title, "intern") {
				return types.LevelInternship, true
			}
			return types.LevelFresher, true
		}
	}
	return "", false
}

// numericYearsRule extracts a numeric year requirement from the combined
// text. "2+ years" means more than 2, so the effective floor is 3.
func numericYearsRule(_, jobText, _ string) (types.ExperienceLevel, bool) {
	for _, yp := range yearPatterns {
		match := yp.pattern.FindStringSubmatch(jobText)
		if match == nil {
			continue
		}
		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if yp.isPlus {
			years++
		}
		switch {
		case years <= 2:
			return types.LevelFresher, true
		case years <= 4:
			return types.LevelMid, true
		default:
			return types.LevelSenior, true
		}
	}
	return "", false
}

// fresherPhraseRule scans for entry-level phrase markers.
func fresherPhraseRule(_, jobText, _ string) (types.ExperienceLevel, bool) {
	for _, phrase := range fresherPhrases {
		if strings.Contains(jobText, phrase) {
			return types.LevelFresher, true
		}
	}
	return "", false
}

// sourceHintRule consults the source-provided experience level. Senior hints
// are overridden back to fresher when the posting text itself says fresher,
// which catches mislabeled senior postings.
func sourceHintRule(_, jobText, hint string) (types.ExperienceLevel, bool) {
	if hint == "" {
		return "", false
	}

	if containsAny(hint, "intern", "internship") {
		return types.LevelInternship, true
	}
	if containsAny(hint, "entry", "fresher", "graduate") {
		return types.LevelFresher, true
	}
	if containsAny(hint, "mid-senior", "senior", "lead", "principal") {
		if strings.Contains(jobText, "fresher") || strings.Contains(jobText, "fresh graduate") {
			return types.LevelFresher, true
		}
		return types.LevelSenior, true
	}
	if containsAny(hint, "mid", "associate") {
		return types.LevelMid, true
	}
	return "", false
}

// keywordScanRule looks for level keywords anywhere in the combined text.
func keywordScanRule(_, jobText, _ string) (types.ExperienceLevel, bool) {
	if containsAny(jobText, "internship", "intern ") {
		return types.LevelInternship, true
	}
	if containsAny(jobText, "senior", "lead", "principal", "architect") {
		return types.LevelSenior, true
	}
	if containsAny(jobText, "mid level", "mid-level", "intermediate") {
		return types.LevelMid, true
	}
	return "", false
}

// titleFallbackRule is the terminal rule; it always produces a level.
func titleFallbackRule(title, _, _ string) (types.ExperienceLevel, bool) {
	if containsAny(title, "senior", "lead", "principal") {
		return types.LevelSenior, true
	}
	if containsAny(title, "junior", "graduate") {
		return types.LevelFresher, true
	}
	return types.LevelMid, true
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
