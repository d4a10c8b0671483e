// Package analyze turns raw resume text into a structured ResumeAnalysis
// using heuristic pattern matching. Analysis is best-effort: it always
// returns a valid result, degrading to an empty one rather than failing.
package analyze

import (
	"regexp"
	"strconv"
	"strings"

	"jobmatch/internal/errors"
	"jobmatch/internal/types"
	"jobmatch/internal/vocab"
)

// experienceYearPatterns match phrases stating years of experience. The
// maximum matched integer anywhere in the resume wins.
var experienceYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s*in`),
	regexp.MustCompile(`experience\s*:\s*(\d+)\+?\s*years?`),
}

// Analyzer extracts skills, experience, titles and education from resumes.
type Analyzer struct {
	logger *errors.Logger
}

// NewAnalyzer creates a resume analyzer.
func NewAnalyzer(logger *errors.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze produces a ResumeAnalysis for one resume. A panic inside the
// heuristics degrades to an empty-but-valid analysis instead of propagating.
func (a *Analyzer) Analyze(resumeText string) (analysis types.ResumeAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.LogError(
				errors.NewInternalError("ANALYSIS_FAILED", "resume analysis panicked", nil),
				"Degrading to empty resume analysis", "panic", r)
			analysis = types.ResumeAnalysis{
				Skills:          []string{},
				ExperienceLevel: types.LevelFresher,
				JobTitles:       []string{},
				Education:       []string{},
			}
		}
	}()

	years := ExtractExperienceYears(resumeText)
	analysis = types.ResumeAnalysis{
		Skills:          vocab.ExtractSkills(resumeText),
		ExperienceYears: years,
		ExperienceLevel: DetermineExperienceLevel(resumeText, years),
		JobTitles:       ExtractJobTitles(resumeText),
		Education:       ExtractEducation(resumeText),
		WordCount:       len(strings.Fields(resumeText)),
	}
	return analysis
}

// ExtractExperienceYears returns the maximum number of years claimed anywhere
// in the resume. No matching pattern yields 0: absence of information is
// treated as zero for downstream scoring, not as unknown.
func ExtractExperienceYears(resumeText string) int {
	lower := strings.ToLower(resumeText)
	maxYears := 0
	for _, pattern := range experienceYearPatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			years, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			if years > maxYears {
				maxYears = years
			}
		}
	}
	return maxYears
}

// DetermineExperienceLevel classifies the resume's seniority using a keyword
// vote layered over the stated years. Keyword presence can override numeric
// years in either direction; the decision order is a tunable policy, first
// match wins.
func DetermineExperienceLevel(resumeText string, experienceYears int) types.ExperienceLevel {
	lower := strings.ToLower(resumeText)

	fresherCount := countPresent(lower, vocab.FresherKeywords)
	seniorCount := countPresent(lower, vocab.SeniorKeywords)

	switch {
	case experienceYears == 0 || fresherCount > 0:
		return types.LevelFresher
	case experienceYears >= 5 || seniorCount > 0:
		return types.LevelSenior
	case experienceYears >= 2:
		return types.LevelMid
	default:
		return types.LevelJunior
	}
}

// countPresent counts how many keywords appear at least once in the text.
func countPresent(lower string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	return count
}

// ExtractJobTitles returns the deduplicated role phrases matched in the
// resume, lower-cased, in first-match order.
func ExtractJobTitles(resumeText string) []string {
	return matchAll(resumeText, vocab.TitlePatterns)
}

// ExtractEducation returns the deduplicated degree phrases matched in the
// resume, lower-cased, in first-match order.
func ExtractEducation(resumeText string) []string {
	return matchAll(resumeText, vocab.EducationPatterns)
}

func matchAll(text string, patterns []*regexp.Regexp) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var found []string
	for _, pattern := range patterns {
		for _, match := range pattern.FindAllString(lower, -1) {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			found = append(found, match)
		}
	}
	return found
}
