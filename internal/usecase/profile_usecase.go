package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/domain/user"
	"github.com/dheerajram13/job-app-tracker/internal/repository"
)

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	Update(ctx context.Context, p user.Profile) (user.Profile, error)
}

type Profile struct {
	profiles repository.ProfileRepository
}

func NewProfileUsecase(profiles repository.ProfileRepository) *Profile {
	return &Profile{profiles: profiles}
}

// Get returns the stored profile, or an empty one when the user never
// saved preferences. Callers never see ErrProfileNotFound.
func (u *Profile) Get(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}

	p, err := u.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return user.Profile{UserID: userID, Skills: []string{}, SearchTerms: []string{}}, nil
		}
		return user.Profile{}, err
	}
	return p, nil
}

// Update replaces the profile wholesale. Skills are lowercased and
// deduplicated so they line up with the extractor's output.
func (u *Profile) Update(ctx context.Context, p user.Profile) (user.Profile, error) {
	if p.UserID == uuid.Nil {
		return user.Profile{}, ErrInvalidInput
	}

	p.Skills = normalizeList(p.Skills, true)
	p.SearchTerms = normalizeList(p.SearchTerms, false)
	p.Location = strings.TrimSpace(p.Location)
	p.UpdatedAt = time.Now().UTC()

	if err := u.profiles.Upsert(ctx, p); err != nil {
		return user.Profile{}, err
	}
	return p, nil
}

func normalizeList(in []string, lower bool) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if lower {
			s = strings.ToLower(s)
		}
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
