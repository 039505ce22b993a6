package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dheerajram13/job-app-tracker/internal/database"
	"github.com/dheerajram13/job-app-tracker/internal/domain/user"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository stores one profile row per user; Upsert replaces
// the whole record.
type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	Upsert(ctx context.Context, p user.Profile) error
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Get(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, COALESCE(skills, ''), COALESCE(search_terms, ''), COALESCE(location, ''), updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	)

	var p user.Profile
	var skills, terms string
	if err := row.Scan(&p.UserID, &skills, &terms, &p.Location, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, err
	}
	p.Skills = splitSkills(skills)
	p.SearchTerms = splitSkills(terms)
	return p, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p user.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (user_id, skills, search_terms, location, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   skills = EXCLUDED.skills,
		   search_terms = EXCLUDED.search_terms,
		   location = EXCLUDED.location,
		   updated_at = EXCLUDED.updated_at`,
		p.UserID, joinSkills(p.Skills), joinSkills(p.SearchTerms), p.Location, p.UpdatedAt,
	)
	return err
}
