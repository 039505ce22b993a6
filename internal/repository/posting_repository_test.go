package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/database"
	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
)

type execCall struct {
	query string
	args  []any
}

type fakeTx struct {
	execs      []execCall
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, query string, args ...any) (int64, error) {
	t.execs = append(t.execs, execCall{query: query, args: args})
	return 1, nil
}

func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row {
	return errRow{}
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type errRow struct{}

func (errRow) Scan(...any) error { return errors.New("not implemented") }

type fakeDB struct {
	tx *fakeTx
}

func (d *fakeDB) Ping(context.Context) error { return nil }

func (d *fakeDB) Close() error { return nil }

func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("not implemented")
}

func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return errRow{}
}

func (d *fakeDB) Begin(context.Context) (database.Tx, error) { return d.tx, nil }

func TestUpsertPostings_EmptyURLStoredAsNull(t *testing.T) {
	tx := &fakeTx{}
	repo := NewPostgresPostingRepository(&fakeDB{tx: tx})

	items := []posting.Posting{
		{ID: uuid.New(), Title: "Backend Engineer", URL: "https://example.com/jobs/1"},
		{ID: uuid.New(), Title: "Data Engineer", Company: "Acme"},
		{ID: uuid.New(), Title: "Platform Engineer", Company: "Globex"},
	}

	n, err := repo.UpsertPostings(context.Background(), items)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if n != 3 {
		t.Fatalf("written = %d", n)
	}
	if len(tx.execs) != 3 {
		t.Fatalf("expected 3 inserts, got %d", len(tx.execs))
	}
	if !tx.committed {
		t.Fatalf("transaction never committed")
	}

	// $5 is the url column.
	if got := tx.execs[0].args[4]; got != "https://example.com/jobs/1" {
		t.Fatalf("url arg = %v", got)
	}
	// Empty urls must become NULL: the unique index skips NULLs, so two
	// distinct url-less postings insert as separate rows instead of the
	// second overwriting the first through ON CONFLICT.
	for _, call := range tx.execs[1:] {
		if call.args[4] != nil {
			t.Fatalf("empty url stored as %v, want NULL", call.args[4])
		}
	}
}
