package types

// Source identifies the feed a job record originated from.
type Source string

const (
	SourceLinkedIn Source = "LinkedIn"
	SourceNaukri   Source = "Naukri"
)

// ExperienceLevel is the seniority band used for resumes and jobs.
type ExperienceLevel string

const (
	LevelInternship ExperienceLevel = "internship"
	LevelFresher    ExperienceLevel = "fresher"
	LevelJunior     ExperienceLevel = "junior"
	LevelMid        ExperienceLevel = "mid"
	LevelSenior     ExperienceLevel = "senior"
)

// JobRecord is one normalized posting. Records are created once at load time
// and are immutable for the lifetime of the in-memory corpus.
type JobRecord struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Company             string   `json:"company"`
	Location            string   `json:"location"`
	Description         string   `json:"description"` // sanitized plain text
	Skills              []string `json:"skills"`      // canonical display forms
	ExperienceLevelHint string   `json:"experienceLevelHint,omitempty"`
	ContractType        string   `json:"contractType,omitempty"`
	WorkType            string   `json:"workType,omitempty"`
	Sector              string   `json:"sector,omitempty"`
	ApplyURL            string   `json:"applyUrl,omitempty"`
	JobURL              string   `json:"jobUrl,omitempty"`
	PostedTime          string   `json:"postedTime,omitempty"`
	Salary              string   `json:"salary,omitempty"`
	ApplicationsCount   string   `json:"applicationsCount,omitempty"`
	Source              Source   `json:"source"`

	// CombinedText is derived from title+company+location+sector+workType+
	// description and is the only field fed to the similarity stages.
	CombinedText string `json:"-"`
}

// ResumeAnalysis is the output of analyzing one resume. It is created fresh
// per request and never persisted.
type ResumeAnalysis struct {
	Skills          []string        `json:"skills"`
	ExperienceYears int             `json:"experienceYears"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	JobTitles       []string        `json:"jobTitles"`
	Education       []string        `json:"education"`
	WordCount       int             `json:"resumeWordCount"`
}

// ScoredJob pairs a corpus index with its combined score. Transient, produced
// by the combiner and consumed by the ranker.
type ScoredJob struct {
	Index int
	Score float64
}

// JobMatch is one formatted recommendation entry.
type JobMatch struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	Description     string          `json:"description"` // truncated for display
	Similarity      int             `json:"similarity"`  // percentage 0-100
	MatchScore      int             `json:"matchScore"`  // percentage 0-100
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	SkillsRequired  []string        `json:"skillsRequired"` // up to 10
	SkillsMatched   []string        `json:"skillsMatched"`
	SkillsMissing   []string        `json:"skillsMissing"` // up to 5
	ContractType    string          `json:"contractType,omitempty"`
	WorkType        string          `json:"workType,omitempty"`
	Sector          string          `json:"sector,omitempty"`
	ApplyLink       string          `json:"applyLink,omitempty"`
	JobURL          string          `json:"jobUrl,omitempty"`
	ApplyURL        string          `json:"applyUrl,omitempty"`
	PostedTime      string          `json:"postedTime,omitempty"`
	Salary          string          `json:"salary,omitempty"`
	Source          Source          `json:"source"`
}

// RecommendationResult is the envelope returned for one recommendation
// request. The engine never raises past this boundary: on failure Success is
// false and Error carries a descriptive message.
type RecommendationResult struct {
	Success           bool           `json:"success"`
	Error             string         `json:"error,omitempty"`
	RequestID         string         `json:"requestId,omitempty"`
	TopJobs           []JobMatch     `json:"topJobs"`
	ResumeAnalysis    ResumeAnalysis `json:"resumeAnalysis"`
	TotalJobsAnalyzed int            `json:"totalJobsAnalyzed"`
	Query             string         `json:"query,omitempty"` // for external job-board search
	Timestamp         string         `json:"timestamp,omitempty"`
}

// SkillGapInput carries the two documents compared by the skill-gap analyzer.
type SkillGapInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// SkillDetail annotates one skill in a gap analysis.
type SkillDetail struct {
	Status     string `json:"status"` // present, missing or additional
	Importance string `json:"importance"`
	Level      string `json:"level"`
	Evidence   string `json:"evidence,omitempty"`
}

// SkillGapAnalysis is the skill comparison between a resume and one job
// description.
type SkillGapAnalysis struct {
	PresentSkills    []string               `json:"presentSkills"`
	MissingSkills    []string               `json:"missingSkills"`
	AdditionalSkills []string               `json:"additionalSkills"`
	SkillAnalysis    map[string]SkillDetail `json:"skillAnalysis"`
}

// LearningVideo is one suggested video for a missing skill.
type LearningVideo struct {
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// LearningRecommendation describes how to close the gap for one skill.
type LearningRecommendation struct {
	Skill         string   `json:"skill"`
	Type          string   `json:"type"`
	Resources     []string `json:"resources"`
	EstimatedTime string   `json:"estimatedTime"`
	Priority      string   `json:"priority"`
}

// SkillGapResult is the full skill-gap response including learning resources.
type SkillGapResult struct {
	Analysis        SkillGapAnalysis           `json:"analysis"`
	YouTubeVideos   map[string][]LearningVideo `json:"youtubeVideos,omitempty"`
	Recommendations []LearningRecommendation   `json:"recommendations"`
}
