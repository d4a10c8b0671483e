// Package vocab holds the process-wide constant vocabulary: the canonical
// skill table, seniority keyword lists, job-title and education patterns, and
// the learning-resource table. Everything here is read-only after init.
package vocab

import (
	"regexp"
	"strings"
)

// Skill is one vocabulary entry: the canonical display form plus the compiled
// whole-word pattern used to detect it in lower-cased free text.
type Skill struct {
	Name    string
	pattern *regexp.Regexp
}

// skillNames is the canonical skill table. Order is significant: extraction
// results are reported in this order so repeated runs are deterministic.
var skillNames = []string{
	// Programming languages
	"Python", "JavaScript", "Java", "TypeScript", "C++", "C#", "PHP", "Go",
	"Rust", "Swift", "Kotlin", "Scala", "Ruby", "R",
	// Frontend
	"React", "Angular", "Vue", "HTML", "CSS", "jQuery", "Bootstrap",
	"Tailwind", "Sass", "Less",
	// Backend
	"Node.js", "Express", "Django", "Flask", "Spring", "Laravel", "ASP.NET",
	"FastAPI",
	// Databases
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "SQLite", "Oracle",
	"SQL Server", "Cassandra", "DynamoDB",
	// Cloud and devops
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git",
	"GitHub", "GitLab", "Terraform", "Ansible",
	// Data and ML
	"TensorFlow", "PyTorch", "Pandas", "NumPy", "Scikit-learn", "Spark",
	"Hadoop", "Kafka",
	// Mobile
	"React Native", "Flutter", "iOS", "Android", "Xamarin",
	// Testing
	"Jest", "Selenium", "Cypress", "JUnit", "PyTest",
	// Methodologies
	"Agile", "Scrum", "DevOps", "CI/CD", "TDD", "BDD",
}

var skills = compileSkills(skillNames)

// compileSkills builds whole-word patterns over lower-cased input. A word
// boundary is only anchored against characters that are word characters in
// the entry itself, so entries like "c++" or "c#" still match ("\b" cannot
// sit between two non-word characters).
func compileSkills(names []string) []Skill {
	out := make([]Skill, 0, len(names))
	for _, name := range names {
		quoted := regexp.QuoteMeta(strings.ToLower(name))
		pattern := quoted
		if isWordChar(name[0]) {
			pattern = `\b` + pattern
		}
		if isWordChar(name[len(name)-1]) {
			pattern += `\b`
		}
		out = append(out, Skill{Name: name, pattern: regexp.MustCompile(pattern)})
	}
	return out
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// ExtractSkills scans free text against the skill table and returns the
// canonical display form of every entry found as a whole word. The scan is
// case-insensitive; "go" does not fire inside "ongoing".
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, s := range skills {
		if s.pattern.MatchString(lower) {
			found = append(found, s.Name)
		}
	}
	return found
}

// Names returns a copy of the canonical skill table.
func Names() []string {
	out := make([]string, len(skillNames))
	copy(out, skillNames)
	return out
}

// FresherKeywords are entry-level indicator phrases counted by the resume
// keyword vote.
var FresherKeywords = []string{
	"fresher", "fresh graduate", "recent graduate", "entry level",
	"entry-level", "new graduate", "college graduate", "university graduate",
	"just graduated", "seeking first job", "no experience",
	"looking for opportunity", "internship", "trainee", "associate",
	"beginner", "starting career",
}

// SeniorKeywords are senior indicator phrases counted by the resume keyword
// vote.
var SeniorKeywords = []string{
	"senior", "lead", "principal", "architect", "manager", "director",
	"team lead", "tech lead", "technical lead", "head of", "chief", "expert",
	"specialist", "consultant", "mentor", "supervisor",
}

// TitlePatterns match common role phrases in resume text. Matches are
// reported lower-cased and deduplicated.
var TitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:software|web|frontend|backend|full.stack|mobile)\s+(?:engineer|developer|programmer)`),
	regexp.MustCompile(`(?:senior|junior|lead|principal)\s+(?:engineer|developer|programmer)`),
	regexp.MustCompile(`(?:data|machine learning|ai)\s+(?:scientist|engineer|analyst)`),
	regexp.MustCompile(`(?:product|project)\s+manager`),
	regexp.MustCompile(`(?:devops|cloud|infrastructure)\s+engineer`),
	regexp.MustCompile(`(?:ui|ux)\s+(?:designer|developer)`),
	regexp.MustCompile(`(?:quality assurance|qa)\s+(?:engineer|tester)`),
	regexp.MustCompile(`(?:business|systems)\s+analyst`),
}

// EducationPatterns match degree phrases in resume text.
var EducationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:bachelor|master|phd|doctorate).*?(?:computer science|engineering|mathematics|physics)`),
	regexp.MustCompile(`(?:b\.?tech|m\.?tech|b\.?sc|m\.?sc|b\.?e|m\.?e)\b`),
	regexp.MustCompile(`(?:university|college|institute).*?(?:computer|engineering|technology)`),
}
