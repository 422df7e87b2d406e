package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"planboard/internal/database"
	"planboard/internal/database/schema"
	"planboard/internal/database/sqlite"
	"planboard/internal/domain/resource"
)

func openTestStore(t *testing.T) (context.Context, database.DB) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, schema.Init(ctx, db))
	return ctx, db
}

func TestCreateThenListRoundTrips(t *testing.T) {
	ctx, db := openTestStore(t)
	repo := NewResourceRepository(db, resource.Ideas)

	id, err := repo.Create(ctx, map[string]any{
		"user_email":   "a@b.com",
		"title":        "X",
		"content":      "Y",
		"category":     "general",
		"created_date": "2026-08-30T10:00:00Z",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	records, err := repo.ListByOwner(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	require.Equal(t, int64(1), rec["id"])
	require.Equal(t, "X", rec["title"])
	require.Equal(t, "Y", rec["content"])
	require.Equal(t, "general", rec["category"])
	require.Equal(t, "2026-08-30T10:00:00Z", rec["created_date"])
}

func TestListIsScopedToOwner(t *testing.T) {
	ctx, db := openTestStore(t)
	repo := NewResourceRepository(db, resource.Notes)

	_, err := repo.Create(ctx, map[string]any{"user_email": "a@b.com", "title": "mine", "created_date": "2026-01-01T00:00:00Z"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, map[string]any{"user_email": "x@y.com", "title": "theirs", "created_date": "2026-01-01T00:00:00Z"})
	require.NoError(t, err)

	records, err := repo.ListByOwner(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "mine", records[0]["title"])
}

func TestDeadlinesOrderByDueDateAscending(t *testing.T) {
	ctx, db := openTestStore(t)
	repo := NewResourceRepository(db, resource.Deadlines)

	_, err := repo.Create(ctx, map[string]any{"user_email": "a@b.com", "title": "later", "due_date": "2026-12-01"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, map[string]any{"user_email": "a@b.com", "title": "sooner", "due_date": "2026-09-01"})
	require.NoError(t, err)

	records, err := repo.ListByOwner(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "sooner", records[0]["title"])
	require.Equal(t, "later", records[1]["title"])
}

func TestIdeasOrderByCreatedDateDescending(t *testing.T) {
	ctx, db := openTestStore(t)
	repo := NewResourceRepository(db, resource.Ideas)

	_, err := repo.Create(ctx, map[string]any{"user_email": "a@b.com", "title": "old", "created_date": "2026-01-01T00:00:00Z"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, map[string]any{"user_email": "a@b.com", "title": "new", "created_date": "2026-06-01T00:00:00Z"})
	require.NoError(t, err)

	records, err := repo.ListByOwner(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "new", records[0]["title"])
	require.Equal(t, "old", records[1]["title"])
}

func TestUpdateMissingIDReportsZeroChanges(t *testing.T) {
	ctx, db := openTestStore(t)
	repo := NewResourceRepository(db, resource.Ideas)

	changes, err := repo.Update(ctx, 12345, map[string]any{
		"user_email": "a@b.com",
		"title":      "X",
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), changes)
}

func TestUpdateDoesNotTouchCreatedDate(t *testing.T) {
	ctx, db := openTestStore(t)
	repo := NewResourceRepository(db, resource.Ideas)

	id, err := repo.Create(ctx, map[string]any{"user_email": "a@b.com", "title": "X", "created_date": "2026-01-01T00:00:00Z"})
	require.NoError(t, err)

	changes, err := repo.Update(ctx, id, map[string]any{"user_email": "a@b.com", "title": "Y"})
	require.NoError(t, err)
	require.Equal(t, int64(1), changes)

	records, err := repo.ListByOwner(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "Y", records[0]["title"])
	require.Equal(t, "2026-01-01T00:00:00Z", records[0]["created_date"])
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx, db := openTestStore(t)
	repo := NewResourceRepository(db, resource.Ideas)

	id, err := repo.Create(ctx, map[string]any{"user_email": "a@b.com", "title": "X"})
	require.NoError(t, err)

	changes, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(1), changes)

	changes, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(0), changes)
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	ctx, db := openTestStore(t)
	repo := NewUserRepository(db)

	id, err := repo.Create(ctx, "a@b.com", "hash1", "2026-01-01T00:00:00Z")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	_, err = repo.Create(ctx, "a@b.com", "hash2", "2026-01-01T00:00:00Z")
	require.Error(t, err)
	require.ErrorContains(t, err, "email already registered")

	u, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "hash1", u.PasswordHash)
}
