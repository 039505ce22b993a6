package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dheerajram13/job-app-tracker/internal/database"
	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
)

var ErrPostingNotFound = errors.New("posting not found")

// PostingFilter narrows List. Zero values mean "no constraint".
type PostingFilter struct {
	Search   string
	Source   string
	Location string
	MinScore int
	Limit    int
	Offset   int
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type PostingRepository interface {
	UpsertPostings(ctx context.Context, items []posting.Posting) (int, error)
	List(ctx context.Context, f PostingFilter) ([]posting.Posting, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (posting.Posting, error)
	TopSkills(ctx context.Context, limit int) ([]SkillCount, error)
}

type PostgresPostingRepository struct {
	db database.DB
}

func NewPostgresPostingRepository(db database.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

// UpsertPostings writes a scrape batch. URL is the natural key; a
// re-scraped listing refreshes its score and description instead of
// producing a second row. Postings without a url store NULL, which the
// unique index ignores, so distinct url-less postings never collide.
// Returns the number of rows written.
func (r *PostgresPostingRepository) UpsertPostings(ctx context.Context, items []posting.Posting) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	written := 0
	for _, p := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO postings (id, title, company, location, url, description, date_posted, source, skills, relevance_score, search_query, scraped_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (url) DO UPDATE SET
			   title = EXCLUDED.title,
			   company = EXCLUDED.company,
			   location = EXCLUDED.location,
			   description = EXCLUDED.description,
			   date_posted = EXCLUDED.date_posted,
			   skills = EXCLUDED.skills,
			   relevance_score = EXCLUDED.relevance_score,
			   search_query = EXCLUDED.search_query,
			   scraped_at = EXCLUDED.scraped_at`,
			p.ID, p.Title, p.Company, p.Location, nullIfEmpty(p.URL), p.Description,
			p.DatePosted, p.Source, joinSkills(p.Skills), p.RelevanceScore,
			p.SearchQuery, p.ScrapedAt,
		)
		if err != nil {
			return 0, err
		}
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return written, nil
}

func (r *PostgresPostingRepository) List(ctx context.Context, f PostingFilter) ([]posting.Posting, int, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	where := make([]string, 0, 4)
	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		ph := arg("%" + s + "%")
		where = append(where, "(title ILIKE "+ph+" OR company ILIKE "+ph+" OR description ILIKE "+ph+")")
	}
	if s := strings.TrimSpace(f.Source); s != "" {
		where = append(where, "source = "+arg(strings.ToLower(s)))
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		where = append(where, "location ILIKE "+arg("%"+s+"%"))
	}
	if f.MinScore > 0 {
		where = append(where, "relevance_score >= "+arg(f.MinScore))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM postings`+cond, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''),
	       COALESCE(url, ''), COALESCE(description, ''), COALESCE(date_posted, ''),
	       COALESCE(source, ''), COALESCE(skills, ''), relevance_score,
	       COALESCE(search_query, ''), scraped_at
	 FROM postings` + cond +
		` ORDER BY relevance_score DESC, scraped_at DESC
	 LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]posting.Posting, 0, f.Limit)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresPostingRepository) GetByID(ctx context.Context, id uuid.UUID) (posting.Posting, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''),
		        COALESCE(url, ''), COALESCE(description, ''), COALESCE(date_posted, ''),
		        COALESCE(source, ''), COALESCE(skills, ''), relevance_score,
		        COALESCE(search_query, ''), scraped_at
		 FROM postings WHERE id = $1`,
		id,
	)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return posting.Posting{}, ErrPostingNotFound
		}
		return posting.Posting{}, err
	}
	return p, nil
}

// TopSkills aggregates the comma-joined skills column across all
// postings, most frequent first.
func (r *PostgresPostingRepository) TopSkills(ctx context.Context, limit int) ([]SkillCount, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT skill, COUNT(*) AS total
		 FROM postings, unnest(string_to_array(skills, ',')) AS skill
		 WHERE skills <> ''
		 GROUP BY skill
		 ORDER BY total DESC, skill ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillCount, 0, limit)
	for rows.Next() {
		var sc SkillCount
		if err := rows.Scan(&sc.Skill, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosting(row rowScanner) (posting.Posting, error) {
	var p posting.Posting
	var skills string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Company, &p.Location, &p.URL, &p.Description,
		&p.DatePosted, &p.Source, &skills, &p.RelevanceScore, &p.SearchQuery,
		&p.ScrapedAt,
	); err != nil {
		return posting.Posting{}, err
	}
	p.Skills = splitSkills(skills)
	return p, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func joinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

func splitSkills(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
