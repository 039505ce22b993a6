package scrape

import (
	"strings"

	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
)

// Score weights, summing to 100.
const (
	termWeight    = 40.0
	skillWeight   = 40.0
	recencyWeight = 20.0
)

// Score rates a posting against the target profile on a 0-100 scale.
// Skill overlap carries the majority weight together with search-term
// title matches; recency of the posting date is the minor component.
// More skill overlap at fixed recency never lowers the score.
func Score(p posting.Posting, profile posting.Profile) int {
	score := termScore(p, profile.SearchTerms)*termWeight +
		skillScore(p.Skills, profile.Skills)*skillWeight +
		recencyScore(p.DatePosted)*recencyWeight

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

// termScore is the fraction of search-term words found in the title.
func termScore(p posting.Posting, terms []string) float64 {
	words := make([]string, 0)
	for _, t := range terms {
		words = append(words, strings.Fields(strings.ToLower(t))...)
	}
	if len(words) == 0 {
		return 0
	}
	title := strings.ToLower(p.Title)
	matches := 0
	for _, w := range words {
		if strings.Contains(title, w) {
			matches++
		}
	}
	return float64(matches) / float64(len(words))
}

// skillScore is the overlap fraction against the profile's tracked
// skills; with no profile skills it falls back to rewarding each
// extracted skill, one tenth of the weight apiece, capped at full.
func skillScore(postingSkills, profileSkills []string) float64 {
	if len(profileSkills) == 0 {
		s := float64(len(postingSkills)) / 10
		if s > 1 {
			return 1
		}
		return s
	}

	have := make(map[string]struct{}, len(postingSkills))
	for _, s := range postingSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	overlap := 0
	for _, s := range profileSkills {
		if _, ok := have[strings.ToLower(strings.TrimSpace(s))]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(profileSkills))
}

// recencyScore decays from a same-day maximum. Site date formats are
// free text, so this matches the common relative phrasings and treats
// anything unrecognized as middling.
func recencyScore(datePosted string) float64 {
	d := strings.ToLower(strings.TrimSpace(datePosted))
	switch {
	case d == "":
		return 0.5
	case strings.Contains(d, "just now"), strings.Contains(d, "today"), strings.Contains(d, "hour"):
		return 1.0
	case strings.Contains(d, "yesterday"):
		return 0.9
	case strings.Contains(d, "day"):
		days := leadingNumber(d)
		s := 1.0 - float64(days)/30
		if s < 0.5 {
			return 0.5
		}
		return s
	case strings.Contains(d, "week"):
		return 0.4
	case strings.Contains(d, "month"):
		return 0.2
	default:
		return 0.5
	}
}

func leadingNumber(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			seen = true
			continue
		}
		if seen {
			break
		}
	}
	if !seen {
		return 1
	}
	return n
}
