package corpus

import (
	"regexp"
	"strings"

	"jobmatch/internal/types"
)

// rawLinkedInJob is the shape of one record in the LinkedIn feed. The feed is
// loosely typed; several fields appear under two different names depending on
// which scraper run produced the file, so both are decoded and coalesced.
type rawLinkedInJob struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	CompanyName     string   `json:"companyName"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experienceLevel"`
	ExperienceAlt   string   `json:"experience_level"`
	ContractType    string   `json:"contractType"`
	WorkType        string   `json:"workType"`
	Sector          string   `json:"sector"`
	ApplyURL        string   `json:"applyUrl"`
	ApplyURLAlt     string   `json:"apply_url"`
	JobURL          string   `json:"jobUrl"`
	JobURLAlt       string   `json:"job_url"`
	PostedTime      string   `json:"postedTime"`
	PostedTimeAlt   string   `json:"posted_time"`
	Salary          string   `json:"salary"`
	ApplicationsCnt string   `json:"applicationsCount"`
	Source          string   `json:"source"`
}

// rawNaukriJob is the shape of one record in the Naukri feed.
type rawNaukriJob struct {
	JobID                  string `json:"jobId"`
	Title                  string `json:"title"`
	CompanyName            string `json:"companyName"`
	Location               string `json:"location"`
	JobDescription         string `json:"jobDescription"`
	TagsAndSkills          string `json:"tagsAndSkills"`
	ExperienceText         string `json:"experienceText"`
	Experience             string `json:"experience"`
	JDURL                  string `json:"jdURL"`
	CompanyJobsURL         string `json:"companyJobsUrl"`
	FooterPlaceholderLabel string `json:"footerPlaceholderLabel"`
	CreatedDate            string `json:"createdDate"`
	Salary                 string `json:"salary"`
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// normalizeLinkedIn maps a raw LinkedIn record into the unified schema.
// Records with no id and no title are rejected as unusable.
func normalizeLinkedIn(raw rawLinkedInJob) (types.JobRecord, bool) {
	if raw.ID == "" && raw.Title == "" {
		return types.JobRecord{}, false
	}

	source := types.SourceLinkedIn
	if raw.Source != "" {
		source = types.Source(raw.Source)
	}

	return types.JobRecord{
		ID:                  raw.ID,
		Title:               raw.Title,
		Company:             coalesce(raw.CompanyName, raw.Company),
		Location:            raw.Location,
		Description:         coalesce(raw.Description, raw.DescriptionHTML),
		Skills:              raw.Skills,
		ExperienceLevelHint: coalesce(raw.ExperienceLevel, raw.ExperienceAlt),
		ContractType:        raw.ContractType,
		WorkType:            raw.WorkType,
		Sector:              raw.Sector,
		ApplyURL:            coalesce(raw.ApplyURL, raw.ApplyURLAlt),
		JobURL:              coalesce(raw.JobURL, raw.JobURLAlt),
		PostedTime:          coalesce(raw.PostedTime, raw.PostedTimeAlt),
		Salary:              raw.Salary,
		ApplicationsCount:   raw.ApplicationsCnt,
		Source:              source,
	}, true
}

var digitsPattern = regexp.MustCompile(`\d+`)

// hintFromExperienceText maps a Naukri experience-range string like "0-2 Yrs"
// to a standard level hint. Only the minimum of the range matters. Unparsable
// strings default to Entry level.
func hintFromExperienceText(expText string) string {
	digits := digitsPattern.FindString(expText)
	if digits == "" {
		return "Entry level"
	}
	minExp := 0
	for _, c := range digits {
		minExp = minExp*10 + int(c-'0')
	}
	switch {
	case minExp < 3:
		return "Entry level"
	case minExp < 6:
		return "Mid-Senior level"
	default:
		return "Senior level"
	}
}

// normalizeNaukri maps a raw Naukri record into the unified schema. Records
// missing the jobId or title are rejected.
func normalizeNaukri(raw rawNaukriJob) (types.JobRecord, bool) {
	if raw.JobID == "" || raw.Title == "" {
		return types.JobRecord{}, false
	}

	var skills []string
	if raw.TagsAndSkills != "" {
		for _, s := range strings.Split(raw.TagsAndSkills, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
	}

	expText := coalesce(raw.ExperienceText, raw.Experience, "0 Yrs")
	applyURL := coalesce(raw.JDURL, raw.CompanyJobsURL)
	salary := raw.Salary
	if salary == "" {
		salary = "Not disclosed"
	}

	return types.JobRecord{
		ID:                  raw.JobID,
		Title:               raw.Title,
		Company:             raw.CompanyName,
		Location:            raw.Location,
		Description:         raw.JobDescription,
		Skills:              skills,
		ExperienceLevelHint: hintFromExperienceText(expText),
		ContractType:        "Full-time",
		WorkType:            "Full-time",
		ApplyURL:            applyURL,
		JobURL:              applyURL, // Naukri links are direct
		PostedTime:          coalesce(raw.FooterPlaceholderLabel, raw.CreatedDate),
		Salary:              salary,
		Source:              types.SourceNaukri,
	}, true
}

// dedupeJobs drops records whose id, or whose normalized title+company pair,
// was already seen. First occurrence wins; later duplicates are dropped
// silently.
func dedupeJobs(jobs []types.JobRecord) []types.JobRecord {
	seenIDs := make(map[string]struct{})
	seenPairs := make(map[string]struct{})
	unique := make([]types.JobRecord, 0, len(jobs))

	for _, job := range jobs {
		title := strings.ToLower(strings.TrimSpace(job.Title))
		company := strings.ToLower(strings.TrimSpace(job.Company))
		pair := title + "|" + company

		if job.ID != "" {
			if _, dup := seenIDs[job.ID]; dup {
				continue
			}
		}
		if title != "" && company != "" {
			if _, dup := seenPairs[pair]; dup {
				continue
			}
		}

		if job.ID != "" {
			seenIDs[job.ID] = struct{}{}
		}
		if title != "" && company != "" {
			seenPairs[pair] = struct{}{}
		}
		unique = append(unique, job)
	}

	return unique
}
