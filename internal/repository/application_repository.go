package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dheerajram13/job-app-tracker/internal/database"
	"github.com/dheerajram13/job-app-tracker/internal/domain/application"
)

var ErrApplicationNotFound = errors.New("application not found")

// ApplicationRepository is scoped per user: every read and write takes
// the owning user id so one user can never touch another's records.
type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (application.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status application.Status) ([]application.Application, error)
	Update(ctx context.Context, a application.Application) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, user_id, title, company, status, notes, url, date_applied, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.UserID, a.Title, a.Company, string(a.Status), a.Notes, a.URL,
		a.DateApplied, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(title, ''), COALESCE(company, ''), status,
		        COALESCE(notes, ''), COALESCE(url, ''), date_applied, created_at, updated_at
		 FROM applications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

// ListByUser returns the user's applications, optionally filtered by
// status, newest first.
func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, status application.Status) ([]application.Application, error) {
	query := `SELECT id, user_id, COALESCE(title, ''), COALESCE(company, ''), status,
	       COALESCE(notes, ''), COALESCE(url, ''), date_applied, created_at, updated_at
	 FROM applications WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, string(status))
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) Update(ctx context.Context, a application.Application) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications
		 SET title = $1, company = $2, status = $3, notes = $4, url = $5,
		     date_applied = $6, updated_at = $7
		 WHERE id = $8 AND user_id = $9`,
		a.Title, a.Company, string(a.Status), a.Notes, a.URL,
		a.DateApplied, a.UpdatedAt, a.ID, a.UserID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func scanApplication(row rowScanner) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(
		&a.ID, &a.UserID, &a.Title, &a.Company, &status, &a.Notes, &a.URL,
		&a.DateApplied, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
