// Package skills extracts known skill keywords from free-text job
// descriptions. It is a dictionary matcher, not a full NLP pipeline:
// single-word skills match on token boundaries, multi-word skills on
// substring.
package skills

import (
	"sort"
	"strings"
	"unicode"
)

var commonSkills = []string{
	"python", "java", "javascript", "typescript", "golang", "c#", "c++",
	"react", "angular", "vue", "node", "django", "flask", "spring",
	"sql", "nosql", "mongodb", "postgresql", "mysql", "redis", "oracle",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
	"git", "ci/cd", "jenkins", "github", "gitlab",
	"machine learning", "deep learning", "nlp", "ai",
	"data science", "data analysis", "statistics",
	"html", "css", "sass",
	"agile", "scrum", "kanban", "jira",
	"rest", "api", "graphql", "grpc", "microservices",
	"testing", "tdd", "selenium",
}

type Extractor struct {
	dictionary []string
}

// NewExtractor returns an extractor over the given dictionary, or the
// built-in common skill list when none is supplied.
func NewExtractor(dictionary ...string) *Extractor {
	if len(dictionary) == 0 {
		dictionary = commonSkills
	}
	return &Extractor{dictionary: dictionary}
}

// Extract returns the deduplicated, sorted set of dictionary skills found
// in text. Empty or non-textual input yields an empty slice.
func (e *Extractor) Extract(text string) []string {
	if e == nil || strings.TrimSpace(text) == "" {
		return []string{}
	}

	lower := strings.ToLower(text)
	tokens := tokenSet(lower)

	found := make(map[string]struct{})
	for _, skill := range e.dictionary {
		if strings.ContainsAny(skill, " /#+") {
			if strings.Contains(lower, skill) {
				found[skill] = struct{}{}
			}
			continue
		}
		if _, ok := tokens[skill]; ok {
			found[skill] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
