package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/dheerajram13/job-app-tracker/internal/repository"
)

type postingListCacheKeyInput struct {
	Search   string `json:"search"`
	Source   string `json:"source"`
	Location string `json:"location"`
	MinScore int    `json:"min_score"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

func normalizeCacheValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

func PostingListCacheKey(f repository.PostingFilter) string {
	in := postingListCacheKeyInput{
		Search:   normalizeCacheValue(f.Search),
		Source:   normalizeCacheValue(f.Source),
		Location: normalizeCacheValue(f.Location),
		MinScore: f.MinScore,
		Limit:    f.Limit,
		Offset:   f.Offset,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "postings:list:" + hex.EncodeToString(sum[:])
}

const TopSkillsCacheKeyPrefix = "postings:top-skills:"
