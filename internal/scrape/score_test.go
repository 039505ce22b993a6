package scrape

import (
	"testing"

	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
)

func TestScore_AlwaysInRange(t *testing.T) {
	cases := []struct {
		name    string
		p       posting.Posting
		profile posting.Profile
	}{
		{name: "empty posting and profile"},
		{
			name: "everything matches",
			p: posting.Posting{
				Title:      "Senior Backend Engineer",
				Skills:     []string{"golang", "postgresql", "redis", "docker", "kubernetes", "aws", "terraform", "grpc", "rest", "sql", "git"},
				DatePosted: "today",
			},
			profile: posting.Profile{
				SearchTerms: []string{"Backend Engineer"},
				Skills:      []string{"golang", "postgresql"},
			},
		},
		{
			name:    "nothing matches",
			p:       posting.Posting{Title: "Florist", DatePosted: "3 months ago"},
			profile: posting.Profile{SearchTerms: []string{"Backend Engineer"}, Skills: []string{"golang"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Score(tc.p, tc.profile)
			if s < 0 || s > 100 {
				t.Fatalf("score %d out of [0,100]", s)
			}
		})
	}
}

func TestScore_MonotoneInSkillOverlap(t *testing.T) {
	profile := posting.Profile{
		SearchTerms: []string{"Backend Engineer"},
		Skills:      []string{"golang", "postgresql", "redis", "docker"},
	}
	base := posting.Posting{Title: "Backend Engineer", DatePosted: "2 days ago"}

	prev := -1
	for i := 0; i <= len(profile.Skills); i++ {
		p := base
		p.Skills = profile.Skills[:i]
		s := Score(p, profile)
		if s < prev {
			t.Fatalf("score decreased from %d to %d at overlap %d", prev, s, i)
		}
		prev = s
	}
}

func TestScore_RecencyDecays(t *testing.T) {
	profile := posting.Profile{SearchTerms: []string{"Backend Engineer"}}
	p := posting.Posting{Title: "Backend Engineer", Skills: []string{"golang"}}

	fresh := p
	fresh.DatePosted = "today"
	stale := p
	stale.DatePosted = "2 months ago"

	if Score(fresh, profile) <= Score(stale, profile) {
		t.Fatalf("same-day posting should outscore a two-month-old one")
	}
}

func TestScore_FallbackWithoutProfileSkills(t *testing.T) {
	profile := posting.Profile{SearchTerms: []string{"Backend Engineer"}}

	none := posting.Posting{Title: "Backend Engineer", DatePosted: "today"}
	some := none
	some.Skills = []string{"golang", "postgresql", "redis"}

	if Score(some, profile) <= Score(none, profile) {
		t.Fatalf("extracted skills should raise the score when the profile has none")
	}
}
