package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/domain/application"
	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
	"github.com/dheerajram13/job-app-tracker/internal/repository"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

const (
	postingListCacheTTL = 5 * time.Minute
	topSkillsCacheTTL   = 15 * time.Minute
)

// Cache is the read-through JSON cache contract satisfied by
// infrastructure/cache.Redis. A bypassed cache reports misses and
// swallows writes, so callers never branch on availability.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// URLParser turns a listing page into an unscored posting; satisfied by
// scrape.URLImporter.
type URLParser interface {
	Parse(ctx context.Context, rawURL string) (posting.Posting, error)
}

type PostingList struct {
	Items []posting.Posting `json:"items"`
	Total int               `json:"total"`
}

type PostingUsecase interface {
	List(ctx context.Context, f repository.PostingFilter) (PostingList, error)
	GetByID(ctx context.Context, id uuid.UUID) (posting.Posting, error)
	TopSkills(ctx context.Context, limit int) ([]repository.SkillCount, error)
	Apply(ctx context.Context, userID, postingID uuid.UUID) (application.Application, error)
	ImportFromURL(ctx context.Context, userID uuid.UUID, rawURL string) (posting.Posting, error)
}

type Posting struct {
	postings     repository.PostingRepository
	applications repository.ApplicationRepository
	profiles     ProfileReader
	parser       URLParser
	cache        Cache
	logger       *log.Logger
}

func NewPostingUsecase(postings repository.PostingRepository, applications repository.ApplicationRepository, profiles ProfileReader, parser URLParser, cache Cache, logger *log.Logger) *Posting {
	return &Posting{postings: postings, applications: applications, profiles: profiles, parser: parser, cache: cache, logger: logger}
}

func (u *Posting) List(ctx context.Context, f repository.PostingFilter) (PostingList, error) {
	if f.Limit < 0 || f.Offset < 0 || f.MinScore < 0 || f.MinScore > 100 {
		return PostingList{}, ErrInvalidInput
	}
	if f.Limit == 0 {
		f.Limit = 20
	}

	key := PostingListCacheKey(f)
	var cached PostingList
	if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	items, total, err := u.postings.List(ctx, f)
	if err != nil {
		return PostingList{}, err
	}
	out := PostingList{Items: items, Total: total}

	if err := u.cache.SetJSON(ctx, key, out, postingListCacheTTL); err != nil && u.logger != nil {
		u.logger.Printf("posting list cache write failed key=%s err=%v", key, err)
	}
	return out, nil
}

func (u *Posting) GetByID(ctx context.Context, id uuid.UUID) (posting.Posting, error) {
	return u.postings.GetByID(ctx, id)
}

func (u *Posting) TopSkills(ctx context.Context, limit int) ([]repository.SkillCount, error) {
	if limit < 0 {
		return nil, ErrInvalidInput
	}
	if limit == 0 {
		limit = 10
	}

	key := TopSkillsCacheKeyPrefix + strconv.Itoa(limit)
	var cached []repository.SkillCount
	if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	out, err := u.postings.TopSkills(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err := u.cache.SetJSON(ctx, key, out, topSkillsCacheTTL); err != nil && u.logger != nil {
		u.logger.Printf("top skills cache write failed key=%s err=%v", key, err)
	}
	return out, nil
}

// Apply promotes a posting into the user's tracked applications. Only
// title, company and url carry over; the new record starts in Applied
// with date_applied set to now.
func (u *Posting) Apply(ctx context.Context, userID, postingID uuid.UUID) (application.Application, error) {
	p, err := u.postings.GetByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, repository.ErrPostingNotFound) {
			return application.Application{}, repository.ErrPostingNotFound
		}
		return application.Application{}, err
	}

	now := time.Now().UTC()
	a := application.Application{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       p.Title,
		Company:     p.Company,
		Status:      application.StatusApplied,
		URL:         p.URL,
		DateApplied: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.applications.Create(ctx, a); err != nil {
		return application.Application{}, err
	}
	return a, nil
}

// ImportFromURL fetches a single listing page, scores it against the
// caller's profile and stores it alongside scraped postings.
func (u *Posting) ImportFromURL(ctx context.Context, userID uuid.UUID, rawURL string) (posting.Posting, error) {
	if u.parser == nil {
		return posting.Posting{}, ErrInternal
	}

	p, err := u.parser.Parse(ctx, rawURL)
	if err != nil {
		if errors.Is(err, scrape.ErrInvalidImportURL) {
			return posting.Posting{}, ErrInvalidInput
		}
		return posting.Posting{}, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}

	p.RelevanceScore = scrape.Score(p, u.profileFor(ctx, userID))
	p.SearchQuery = importSearchQuery

	if _, err := u.postings.UpsertPostings(ctx, []posting.Posting{p}); err != nil {
		return posting.Posting{}, err
	}
	u.invalidateListCaches(ctx)
	return p, nil
}

const importSearchQuery = "manual import"

func (u *Posting) profileFor(ctx context.Context, userID uuid.UUID) posting.Profile {
	if u.profiles == nil || userID == uuid.Nil {
		return posting.Profile{}
	}
	prof, err := u.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) && u.logger != nil {
			u.logger.Printf("profile lookup failed user=%s err=%v", userID, err)
		}
		return posting.Profile{}
	}
	return posting.Profile{SearchTerms: prof.SearchTerms, Skills: prof.Skills}
}

func (u *Posting) invalidateListCaches(ctx context.Context) {
	for _, pattern := range []string{"postings:list:*", TopSkillsCacheKeyPrefix + "*"} {
		if err := u.cache.DeleteByPattern(ctx, pattern); err != nil && u.logger != nil {
			u.logger.Printf("cache invalidation failed pattern=%s err=%v", pattern, err)
		}
	}
}
