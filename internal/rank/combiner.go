package rank

import (
	"sort"
	"strings"

	"jobmatch/internal/classify"
	"jobmatch/internal/types"
)

// Signal weights. Skills carry more weight than raw lexical overlap because
// the skill sets are canonicalized and directly comparable.
const (
	weightLexical  = 0.20
	weightSemantic = 0.50
	weightSkills   = 0.30

	skillBoost          = 1.2
	skillBoostThreshold = 0.5
	titleBoost          = 1.15
)

// allowedJobLevels maps a resume's classified level to the job levels it may
// be matched against. An unknown level matches everything except internships.
var allowedJobLevels = map[types.ExperienceLevel][]types.ExperienceLevel{
	types.LevelFresher: {types.LevelFresher, types.LevelInternship},
	types.LevelJunior:  {types.LevelFresher, types.LevelJunior, types.LevelMid},
	types.LevelMid:     {types.LevelJunior, types.LevelMid, types.LevelSenior},
	types.LevelSenior:  {types.LevelMid, types.LevelSenior},
}

// Combine merges the lexical and semantic signals with skill overlap into a
// single ranking over the union of candidate indices. Hard filters (location,
// experience level) drop jobs entirely; soft boosts compound multiplicatively.
// The result is sorted by score and interleaved by source; scores are not
// clamped here, only at percentage formatting.
func Combine(lexical, semantic []types.ScoredJob, jobs []types.JobRecord,
	analysis *types.ResumeAnalysis, locationFilter string) []types.ScoredJob {

	lexicalByIndex := make(map[int]float64, len(lexical))
	for _, s := range lexical {
		lexicalByIndex[s.Index] = s.Score
	}
	semanticByIndex := make(map[int]float64, len(semantic))
	for _, s := range semantic {
		semanticByIndex[s.Index] = s.Score
	}

	indices := make([]int, 0, len(lexicalByIndex)+len(semanticByIndex))
	for idx := range lexicalByIndex {
		indices = append(indices, idx)
	}
	for idx := range semanticByIndex {
		if _, seen := lexicalByIndex[idx]; !seen {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	combined := make([]types.ScoredJob, 0, len(indices))
	for _, idx := range indices {
		if idx >= len(jobs) {
			continue
		}
		job := jobs[idx]

		if !matchesLocation(job.Location, locationFilter) {
			continue
		}
		if !levelAllowed(analysis.ExperienceLevel, classify.Classify(job)) {
			continue
		}

		skillScore := SkillOverlap(analysis.Skills, job.Skills)
		score := weightLexical*lexicalByIndex[idx] +
			weightSemantic*semanticByIndex[idx] +
			weightSkills*skillScore

		if skillScore > skillBoostThreshold {
			score *= skillBoost
		}
		if titleMatches(analysis.JobTitles, job.Title) {
			score *= titleBoost
		}

		combined = append(combined, types.ScoredJob{Index: idx, Score: score})
	}

	sort.SliceStable(combined, func(i, j int) bool {
		if combined[i].Score != combined[j].Score {
			return combined[i].Score > combined[j].Score
		}
		return combined[i].Index < combined[j].Index
	})

	return InterleaveBySource(combined, jobs)
}

// SkillOverlap is the Jaccard similarity of the two skill sets, compared
// case-insensitively. Either set being empty yields zero, not an error.
func SkillOverlap(resumeSkills, jobSkills []string) float64 {
	if len(resumeSkills) == 0 || len(jobSkills) == 0 {
		return 0
	}

	resume := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		resume[strings.ToLower(s)] = struct{}{}
	}
	job := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		job[strings.ToLower(s)] = struct{}{}
	}

	common := 0
	for s := range job {
		if _, ok := resume[s]; ok {
			common++
		}
	}
	union := len(resume) + len(job) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

// matchesLocation keeps a job when any whitespace-split keyword of the filter
// appears in the job's location. An empty filter keeps everything.
func matchesLocation(jobLocation, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	location := strings.ToLower(jobLocation)
	for _, keyword := range strings.Fields(strings.ToLower(filter)) {
		if strings.Contains(location, keyword) {
			return true
		}
	}
	return false
}

func levelAllowed(resumeLevel, jobLevel types.ExperienceLevel) bool {
	allowed, ok := allowedJobLevels[resumeLevel]
	if !ok {
		return jobLevel != types.LevelInternship
	}
	for _, level := range allowed {
		if jobLevel == level {
			return true
		}
	}
	return false
}

// titleMatches reports whether any extracted resume title substring-matches
// the job title in either direction. The first match wins.
func titleMatches(resumeTitles []string, jobTitle string) bool {
	jobLower := strings.ToLower(jobTitle)
	for _, title := range resumeTitles {
		titleLower := strings.ToLower(title)
		if strings.Contains(jobLower, titleLower) || strings.Contains(titleLower, jobLower) {
			return true
		}
	}
	return false
}
