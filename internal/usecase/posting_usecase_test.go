package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/domain/application"
	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
	"github.com/dheerajram13/job-app-tracker/internal/domain/user"
	"github.com/dheerajram13/job-app-tracker/internal/repository"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

type mockPostingRepo struct {
	items     []posting.Posting
	total     int
	byID      map[uuid.UUID]posting.Posting
	topSkills []repository.SkillCount
	listCalls int
	upserted  []posting.Posting
	err       error
}

func (m *mockPostingRepo) UpsertPostings(_ context.Context, items []posting.Posting) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.upserted = append(m.upserted, items...)
	return len(items), nil
}

func (m *mockPostingRepo) List(context.Context, repository.PostingFilter) ([]posting.Posting, int, error) {
	m.listCalls++
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.items, m.total, nil
}

func (m *mockPostingRepo) GetByID(_ context.Context, id uuid.UUID) (posting.Posting, error) {
	if m.err != nil {
		return posting.Posting{}, m.err
	}
	p, ok := m.byID[id]
	if !ok {
		return posting.Posting{}, repository.ErrPostingNotFound
	}
	return p, nil
}

func (m *mockPostingRepo) TopSkills(context.Context, int) ([]repository.SkillCount, error) {
	return m.topSkills, m.err
}

type mockApplicationRepo struct {
	created []application.Application
	byID    map[uuid.UUID]application.Application
	err     error
}

func (m *mockApplicationRepo) Create(_ context.Context, a application.Application) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, a)
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, userID, id uuid.UUID) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok || a.UserID != userID {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) ListByUser(_ context.Context, userID uuid.UUID, status application.Status) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, a := range m.byID {
		if a.UserID != userID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockApplicationRepo) Update(_ context.Context, a application.Application) error {
	if _, ok := m.byID[a.ID]; !ok {
		return repository.ErrApplicationNotFound
	}
	m.byID[a.ID] = a
	return nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	a, ok := m.byID[id]
	if !ok || a.UserID != userID {
		return repository.ErrApplicationNotFound
	}
	delete(m.byID, id)
	return nil
}

// bypassCache mimics the degraded Redis wrapper: always a miss, writes
// dropped.
type bypassCache struct{}

func (bypassCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }

func (bypassCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }

func (bypassCache) DeleteByPattern(context.Context, string) error { return nil }

type recordingCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{store: make(map[string][]byte)}
}

func (c *recordingCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *recordingCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *recordingCache) DeleteByPattern(context.Context, string) error { return nil }

func TestPostingList_InvalidFilter(t *testing.T) {
	uc := NewPostingUsecase(&mockPostingRepo{}, &mockApplicationRepo{}, nil, nil, bypassCache{}, nil)
	for _, f := range []repository.PostingFilter{
		{Limit: -1},
		{Offset: -1},
		{MinScore: 101},
	} {
		if _, err := uc.List(context.Background(), f); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("filter %+v: expected ErrInvalidInput, got %v", f, err)
		}
	}
}

func TestPostingList_CachesSecondRead(t *testing.T) {
	repo := &mockPostingRepo{
		items: []posting.Posting{{ID: uuid.New(), Title: "Backend Engineer"}},
		total: 1,
	}
	cache := newRecordingCache()
	uc := NewPostingUsecase(repo, &mockApplicationRepo{}, nil, nil, cache, nil)

	f := repository.PostingFilter{Search: "backend"}
	first, err := uc.List(context.Background(), f)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := uc.List(context.Background(), f)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}

	if repo.listCalls != 1 {
		t.Fatalf("expected 1 repository call, got %d", repo.listCalls)
	}
	if first.Total != 1 || second.Total != 1 || len(second.Items) != 1 {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestPostingApply_PromotesPosting(t *testing.T) {
	postingID := uuid.New()
	userID := uuid.New()
	repo := &mockPostingRepo{byID: map[uuid.UUID]posting.Posting{postingID: {
		ID:      postingID,
		Title:   "Backend Engineer",
		Company: "Acme",
		URL:     "https://example.com/jobs/1",
	}}}
	apps := &mockApplicationRepo{byID: map[uuid.UUID]application.Application{}}
	uc := NewPostingUsecase(repo, apps, nil, nil, bypassCache{}, nil)

	a, err := uc.Apply(context.Background(), userID, postingID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.Status != application.StatusApplied {
		t.Fatalf("status = %s", a.Status)
	}
	if a.Title != "Backend Engineer" || a.Company != "Acme" || a.URL != "https://example.com/jobs/1" {
		t.Fatalf("posting fields not carried over: %+v", a)
	}
	if a.UserID != userID {
		t.Fatalf("user id = %s", a.UserID)
	}
	if len(apps.created) != 1 {
		t.Fatalf("expected 1 created application, got %d", len(apps.created))
	}
}

func TestPostingApply_UnknownPosting(t *testing.T) {
	uc := NewPostingUsecase(&mockPostingRepo{byID: map[uuid.UUID]posting.Posting{}}, &mockApplicationRepo{}, nil, nil, bypassCache{}, nil)
	_, err := uc.Apply(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, repository.ErrPostingNotFound) {
		t.Fatalf("expected ErrPostingNotFound, got %v", err)
	}
}

type fakeURLParser struct {
	p       posting.Posting
	err     error
	lastURL string
}

func (f *fakeURLParser) Parse(_ context.Context, rawURL string) (posting.Posting, error) {
	f.lastURL = rawURL
	if f.err != nil {
		return posting.Posting{}, f.err
	}
	return f.p, f.err
}

func TestPostingImportFromURL_ScoresAgainstProfile(t *testing.T) {
	imported := posting.Posting{
		ID:      uuid.New(),
		Title:   "Backend Engineer",
		Company: "Acme",
		URL:     "https://example.com/jobs/1",
		Skills:  []string{"python", "postgresql"},
		Source:  "import",
	}

	userID := uuid.New()
	profiles := newMockProfileRepo()
	profiles.byUser[userID] = user.Profile{UserID: userID, Skills: []string{"python", "postgresql"}}

	repo := &mockPostingRepo{}
	uc := NewPostingUsecase(repo, &mockApplicationRepo{}, profiles, &fakeURLParser{p: imported}, bypassCache{}, nil)

	p, err := uc.ImportFromURL(context.Background(), userID, imported.URL)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected 1 stored posting, got %d", len(repo.upserted))
	}
	if repo.upserted[0].RelevanceScore != p.RelevanceScore {
		t.Fatalf("stored score %d differs from returned %d", repo.upserted[0].RelevanceScore, p.RelevanceScore)
	}

	// Same page imported without a profile must score lower, since the
	// skill overlap component only has its fallback to work with.
	anonRepo := &mockPostingRepo{}
	anonUC := NewPostingUsecase(anonRepo, &mockApplicationRepo{}, nil, &fakeURLParser{p: imported}, bypassCache{}, nil)
	anon, err := anonUC.ImportFromURL(context.Background(), uuid.Nil, imported.URL)
	if err != nil {
		t.Fatalf("anonymous import: %v", err)
	}
	if p.RelevanceScore <= anon.RelevanceScore {
		t.Fatalf("profile overlap should raise the score: %d <= %d", p.RelevanceScore, anon.RelevanceScore)
	}
}

func TestPostingImportFromURL_InvalidURL(t *testing.T) {
	uc := NewPostingUsecase(&mockPostingRepo{}, &mockApplicationRepo{}, nil, &fakeURLParser{err: scrape.ErrInvalidImportURL}, bypassCache{}, nil)
	if _, err := uc.ImportFromURL(context.Background(), uuid.New(), "nope"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPostingImportFromURL_FetchFailure(t *testing.T) {
	parser := &fakeURLParser{err: errors.New("connection refused")}
	uc := NewPostingUsecase(&mockPostingRepo{}, &mockApplicationRepo{}, nil, parser, bypassCache{}, nil)
	if _, err := uc.ImportFromURL(context.Background(), uuid.New(), "https://example.com/jobs/1"); !errors.Is(err, ErrImportFailed) {
		t.Fatalf("expected ErrImportFailed, got %v", err)
	}
}
