package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lettertrail/platform/internal/domain"
)

type capturedQuery struct {
	sql  string
	args []interface{}
}

// fakeDB records every statement and answers QueryRow with a scripted row.
type fakeDB struct {
	queries []capturedQuery
	row     fakeRow
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	db.queries = append(db.queries, capturedQuery{sql, args})
	return pgconn.CommandTag{}, nil
}

func (db *fakeDB) Query(_ context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	db.queries = append(db.queries, capturedQuery{sql, args})
	return nil, pgx.ErrNoRows
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	db.queries = append(db.queries, capturedQuery{sql, args})
	return db.row
}

type fakeRow struct {
	scan func(dest ...interface{}) error
}

func (r fakeRow) Scan(dest ...interface{}) error { return r.scan(dest...) }

func TestPlayerCreateUsesGeneratedID(t *testing.T) {
	db := &fakeDB{row: fakeRow{scan: func(dest ...interface{}) error {
		id, ok := dest[0].(*uuid.UUID)
		require.True(t, ok, "first scan target must be the generated id")
		*id = uuid.New()
		*(dest[1].(*time.Time)) = time.Now()
		return nil
	}}}
	repo := NewPlayerRepository()

	first := &domain.Player{Name: "Maartje", Code: "LOVE2024", IsActive: true}
	second := &domain.Player{Name: "Guest", Code: "SUNSET9", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), db, first))
	require.NoError(t, repo.Create(context.Background(), db, second))

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, uuid.Nil, second.ID)
	assert.NotEqual(t, first.ID, second.ID, "each insert must get its own id")

	require.Len(t, db.queries, 2)
	for _, q := range db.queries {
		assert.Len(t, q.args, 3)
		for _, arg := range q.args {
			_, isUUID := arg.(uuid.UUID)
			assert.False(t, isUUID, "the database generates the id, not the caller")
		}
	}
}
