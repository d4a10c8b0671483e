package vocab

import (
	"fmt"
	"strings"
)

// LearningResource is the curated study plan for one skill.
type LearningResource struct {
	Type          string
	Resources     []string
	EstimatedTime string
	Priority      string
}

// learningTable maps lower-cased skill keys to curated study plans. Lookup is
// by substring in either direction so "node.js" matches "Node.js Developer".
var learningTable = []struct {
	key  string
	plan LearningResource
}{
	{"python", LearningResource{
		Type: "programming_language",
		Resources: []string{
			"Complete Python for Beginners course on Coursera or Udemy",
			"Build 2-3 projects: web app, data analysis, automation script",
			"Practice on LeetCode, HackerRank, or Codewars",
			"Join Python Discord, Reddit r/learnpython",
			`Read "Python Crash Course" or "Automate the Boring Stuff"`,
		},
		EstimatedTime: "2-3 months",
		Priority:      "high",
	}},
	{"javascript", LearningResource{
		Type: "programming_language",
		Resources: []string{
			"Complete JavaScript fundamentals on freeCodeCamp or MDN",
			"Build interactive web applications",
			"Practice on JavaScript30 or Frontend Mentor",
			"Join JavaScript communities",
			`Read "Eloquent JavaScript"`,
		},
		EstimatedTime: "2-4 months",
		Priority:      "high",
	}},
	{"java", LearningResource{
		Type: "programming_language",
		Resources: []string{
			"Complete Java Programming course on Coursera",
			"Build desktop applications and Android apps",
			"Practice on HackerRank Java challenges",
			`Read "Head First Java" or "Effective Java"`,
		},
		EstimatedTime: "3-4 months",
		Priority:      "high",
	}},
	{"react", LearningResource{
		Type: "frontend_framework",
		Resources: []string{
			"Complete React course on Scrimba or Udemy",
			"Build portfolio website and e-commerce app",
			"Practice with React challenges",
			`Read "React Up & Running" or official React docs`,
		},
		EstimatedTime: "2-3 months",
		Priority:      "high",
	}},
	{"angular", LearningResource{
		Type: "frontend_framework",
		Resources: []string{
			"Complete Angular course on Angular University",
			"Build enterprise-level applications",
			"Practice with Angular Material and RxJS",
		},
		EstimatedTime: "3-4 months",
		Priority:      "medium",
	}},
	{"vue", LearningResource{
		Type: "frontend_framework",
		Resources: []string{
			"Complete Vue.js course on Vue Mastery",
			"Build single-page applications",
			`Read "Vue.js in Action" or official Vue docs`,
		},
		EstimatedTime: "2-3 months",
		Priority:      "medium",
	}},
	{"node.js", LearningResource{
		Type: "backend_framework",
		Resources: []string{
			"Complete Node.js course on freeCodeCamp",
			"Build REST APIs and real-time applications",
			"Practice with Express.js and MongoDB",
		},
		EstimatedTime: "2-3 months",
		Priority:      "high",
	}},
	{"express", LearningResource{
		Type: "backend_framework",
		Resources: []string{
			"Learn Express.js fundamentals and middleware",
			"Build RESTful APIs",
			`Read "Express in Action"`,
		},
		EstimatedTime: "1-2 months",
		Priority:      "medium",
	}},
	{"mongodb", LearningResource{
		Type: "database",
		Resources: []string{
			"Complete MongoDB University free courses",
			"Practice database design and CRUD",
			`Read "MongoDB in Action"`,
		},
		EstimatedTime: "1-2 months",
		Priority:      "medium",
	}},
	{"mysql", LearningResource{
		Type: "database",
		Resources: []string{
			"Complete MySQL course on Coursera or Udemy",
			"Practice SQL queries",
			`Read "MySQL Cookbook"`,
		},
		EstimatedTime: "1-2 months",
		Priority:      "medium",
	}},
	{"aws", LearningResource{
		Type: "cloud_platform",
		Resources: []string{
			"Get AWS Certified Cloud Practitioner",
			"Practice with AWS free tier",
			"Deploy applications on EC2, S3, Lambda",
		},
		EstimatedTime: "3-6 months",
		Priority:      "high",
	}},
	{"docker", LearningResource{
		Type: "devops_tool",
		Resources: []string{
			"Complete Docker course on Docker Academy",
			"Containerize applications",
			`Read "Docker in Action"`,
		},
		EstimatedTime: "1-2 months",
		Priority:      "high",
	}},
	{"kubernetes", LearningResource{
		Type: "devops_tool",
		Resources: []string{
			"Complete Kubernetes course",
			"Practice with minikube and kubectl",
			`Read "Kubernetes in Action"`,
		},
		EstimatedTime: "2-4 months",
		Priority:      "medium",
	}},
	{"agile", LearningResource{
		Type: "methodology",
		Resources: []string{
			"Take Agile/Scrum certification",
			"Practice in team projects",
			"Use Jira, Trello, or Asana",
		},
		EstimatedTime: "1-2 months",
		Priority:      "medium",
	}},
	{"devops", LearningResource{
		Type: "methodology",
		Resources: []string{
			"Complete DevOps course",
			"Practice CI/CD with Jenkins or GitHub Actions",
			`Read "The Phoenix Project"`,
		},
		EstimatedTime: "3-6 months",
		Priority:      "high",
	}},
}

// LookupLearning returns the curated study plan for a skill, falling back to
// a generic plan when the skill has no curated entry.
func LookupLearning(skill string) LearningResource {
	lower := strings.ToLower(skill)
	for _, entry := range learningTable {
		if strings.Contains(lower, entry.key) || strings.Contains(entry.key, lower) {
			return entry.plan
		}
	}
	return LearningResource{
		Type: "general",
		Resources: []string{
			fmt.Sprintf("Research %s fundamentals and best practices", skill),
			fmt.Sprintf("Find online courses for %s on Coursera, Udemy, or edX", skill),
			fmt.Sprintf("Practice %s in real-world projects", skill),
			fmt.Sprintf("Join %s communities and professional networks", skill),
		},
		EstimatedTime: "2-4 months",
		Priority:      "medium",
	}
}
