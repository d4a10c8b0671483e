package skillgap

import (
	"regexp"
	"strings"

	"jobmatch/internal/types"
)

// fallbackSkill is one entry of the regex extraction table: a display name
// plus the pattern that detects it, including common aliases. Order is
// significant so extraction output is deterministic.
type fallbackSkill struct {
	name    string
	pattern *regexp.Regexp
}

func fs(name, pattern string) fallbackSkill {
	return fallbackSkill{name: name, pattern: regexp.MustCompile(pattern)}
}

// fallbackSkills covers the common technical vocabulary plus aliases the
// canonical skill table cannot express as a single token (e.g. "js",
// "postgres", "k8s").
var fallbackSkills = []fallbackSkill{
	fs("Python", `\bpython\b`),
	fs("JavaScript", `\b(?:javascript|js)\b`),
	fs("Java", `\bjava\b`),
	fs("TypeScript", `\btypescript\b`),
	fs("C++", `\bc\+\+`),
	fs("C#", `\bc#`),
	fs("PHP", `\bphp\b`),
	fs("Go", `\bgo\b`),
	fs("Rust", `\brust\b`),
	fs("Swift", `\bswift\b`),
	fs("Kotlin", `\bkotlin\b`),
	fs("Scala", `\bscala\b`),
	fs("Ruby", `\bruby\b`),
	fs("React", `\breact\b`),
	fs("Angular", `\bangular\b`),
	fs("Vue", `\bvue\b`),
	fs("Node.js", `\b(?:node\.js|nodejs)\b`),
	fs("Express", `\bexpress\b`),
	fs("Django", `\bdjango\b`),
	fs("Flask", `\bflask\b`),
	fs("Spring", `\bspring\b`),
	fs("Laravel", `\blaravel\b`),
	fs("jQuery", `\bjquery\b`),
	fs("Bootstrap", `\bbootstrap\b`),
	fs("Tailwind", `\btailwind\b`),
	fs("HTML", `\bhtml\b`),
	fs("CSS", `\bcss\b`),
	fs("REST", `\brest\b`),
	fs("GraphQL", `\bgraphql\b`),
	fs("MySQL", `\bmysql\b`),
	fs("PostgreSQL", `\b(?:postgresql|postgres)\b`),
	fs("MongoDB", `\bmongodb\b`),
	fs("Redis", `\bredis\b`),
	fs("SQLite", `\bsqlite\b`),
	fs("Oracle", `\boracle\b`),
	fs("SQL Server", `\bsql server\b`),
	fs("Cassandra", `\bcassandra\b`),
	fs("DynamoDB", `\bdynamodb\b`),
	fs("Elasticsearch", `\belasticsearch\b`),
	fs("SQL", `\b(?:sql|structured query language)\b`),
	fs("NoSQL", `\b(?:nosql|no sql)\b`),
	fs("AWS", `\b(?:aws|amazon web services)\b`),
	fs("Azure", `\b(?:azure|microsoft azure)\b`),
	fs("GCP", `\b(?:gcp|google cloud|google cloud platform)\b`),
	fs("Firebase", `\bfirebase\b`),
	fs("Docker", `\bdocker\b`),
	fs("Kubernetes", `\b(?:kubernetes|k8s)\b`),
	fs("Jenkins", `\bjenkins\b`),
	fs("Git", `\bgit\b`),
	fs("GitHub", `\bgithub\b`),
	fs("GitLab", `\bgitlab\b`),
	fs("GitHub Actions", `\bgithub actions\b`),
	fs("Terraform", `\bterraform\b`),
	fs("Ansible", `\bansible\b`),
	fs("Nginx", `\bnginx\b`),
	fs("Linux", `\blinux\b`),
	fs("Kafka", `\bkafka\b`),
	fs("RabbitMQ", `\brabbitmq\b`),
	fs("Microservices", `\bmicroservices\b`),
	fs("API", `\b(?:api|application programming interface)\b`),
	fs("Agile", `\bagile\b`),
	fs("Scrum", `\bscrum\b`),
	fs("Kanban", `\bkanban\b`),
	fs("DevOps", `\bdevops\b`),
	fs("CI/CD", `\b(?:ci/cd|continuous integration|continuous deployment)\b`),
	fs("TDD", `\b(?:tdd|test driven development)\b`),
	fs("Machine Learning", `\b(?:machine learning|ml)\b`),
	fs("Deep Learning", `\bdeep learning\b`),
	fs("TensorFlow", `\btensorflow\b`),
	fs("PyTorch", `\bpytorch\b`),
	fs("Scikit-learn", `\b(?:scikit-learn|sklearn)\b`),
	fs("Pandas", `\bpandas\b`),
	fs("NumPy", `\bnumpy\b`),
	fs("Android", `\bandroid\b`),
	fs("iOS", `\bios\b`),
	fs("Jira", `\bjira\b`),
	fs("Excel", `\bexcel\b`),
}

// highValueSkills get "high" importance in fallback analyses.
var highValueSkills = map[string]struct{}{
	"python": {}, "javascript": {}, "react": {}, "java": {},
	"aws": {}, "docker": {}, "machine learning": {},
}

func importanceOf(skill string) string {
	if _, ok := highValueSkills[strings.ToLower(skill)]; ok {
		return "high"
	}
	return "medium"
}

// ExtractSkillsFromText scans free text against the fallback table and
// returns the matched display names in table order.
func ExtractSkillsFromText(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, s := range fallbackSkills {
		if s.pattern.MatchString(lower) {
			found = append(found, s.name)
		}
	}
	return found
}

// FallbackAnalysis compares the two texts using regex extraction alone. It
// is the degraded path when the model is unavailable or returns garbage.
func FallbackAnalysis(resumeText, jobDescription string) types.SkillGapAnalysis {
	jobSkills := ExtractSkillsFromText(jobDescription)
	resumeSkills := ExtractSkillsFromText(resumeText)

	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[strings.ToLower(s)] = struct{}{}
	}
	jobSet := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		jobSet[strings.ToLower(s)] = struct{}{}
	}

	present := []string{}
	missing := []string{}
	additional := []string{}
	for _, s := range jobSkills {
		if _, ok := resumeSet[strings.ToLower(s)]; ok {
			present = append(present, s)
		} else {
			missing = append(missing, s)
		}
	}
	for _, s := range resumeSkills {
		if _, ok := jobSet[strings.ToLower(s)]; !ok {
			additional = append(additional, s)
		}
	}

	details := make(map[string]types.SkillDetail, len(present)+len(missing)+len(additional))
	for _, s := range present {
		details[s] = types.SkillDetail{Status: "present", Importance: importanceOf(s), Level: "intermediate"}
	}
	for _, s := range missing {
		details[s] = types.SkillDetail{Status: "missing", Importance: importanceOf(s), Level: "basic"}
	}
	for _, s := range additional {
		details[s] = types.SkillDetail{Status: "additional", Importance: "medium", Level: "intermediate"}
	}

	return types.SkillGapAnalysis{
		PresentSkills:    present,
		MissingSkills:    missing,
		AdditionalSkills: additional,
		SkillAnalysis:    details,
	}
}
