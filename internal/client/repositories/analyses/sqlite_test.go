package analyses

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/client/storage"
	"github.com/testematch/cli/internal/common"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db), db
}

func sample(id string, createdAt time.Time) models.Analysis {
	return models.Analysis{
		ID:          id,
		Status:      models.AnalysisStatusCompleted,
		Plan:        "basic",
		CreditsUsed: 1,
		Result:      []byte(`{"mbti":"INFP"}`),
		CreatedAt:   createdAt,
	}
}

func TestUpsertGet_RoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	created := time.Now().Truncate(time.Second)
	require.NoError(t, r.Upsert(ctx, []models.Analysis{sample("a1", created)}))

	got, err := r.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisStatusCompleted, got.Status)
	assert.Equal(t, 1, got.CreditsUsed)
	assert.JSONEq(t, `{"mbti":"INFP"}`, string(got.Result))
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestUpsert_RefreshesExistingRow(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	a := sample("a1", time.Now())
	a.Status = models.AnalysisStatusProcessing
	require.NoError(t, r.Upsert(ctx, []models.Analysis{a}))

	a.Status = models.AnalysisStatusCompleted
	require.NoError(t, r.Upsert(ctx, []models.Analysis{a}))

	got, err := r.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisStatusCompleted, got.Status)
}

func TestList_NewestFirstAndLimit(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	require.NoError(t, r.Upsert(ctx, []models.Analysis{
		sample("old", base.Add(-2*time.Hour)),
		sample("new", base),
		sample("mid", base.Add(-time.Hour)),
	}))

	all, err := r.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[2].ID)

	top, err := r.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, []string{"new", "mid"}, []string{top[0].ID, top[1].ID})
}

func TestGet_Missing(t *testing.T) {
	r, _ := newTestRepo(t)

	_, err := r.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestClear(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, []models.Analysis{sample("a1", time.Now())}))
	require.NoError(t, r.Clear(ctx))

	all, err := r.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
