package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
	"github.com/mwhitley/campusfeed/internal/migrations"
)

func testRepo(t *testing.T) Repo {
	t.Helper()

	dbx, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbx.Close() })

	// A single connection keeps every statement on the same in-memory db.
	dbx.SetMaxOpenConns(1)

	require.NoError(t, migrations.Run(dbx))

	return New(dbx)
}

func mustArticle(t *testing.T, title, url string, date time.Time, details string, src campusfeed.Source) campusfeed.Article {
	t.Helper()

	a, err := campusfeed.NewArticle(title, url, date, details, "")
	require.NoError(t, err)
	a.Source = src

	return a
}

func TestUpsert_Idempotent(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	first := mustArticle(t, "A Day", "https://example.com/a-day", date, "Periods 1-4", campusfeed.SourceSchedules)
	count, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Same key, new field values: the second write wins, still one record.
	second := mustArticle(t, "A Day", "https://example.com/a-day", date, "Periods 1-7", campusfeed.SourceSchedules)
	_, err = repo.Upsert(ctx, second)
	require.NoError(t, err)

	got, err := repo.ArticlesBySource(ctx, campusfeed.SourceSchedules)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Periods 1-7", got[0].Details)
	assert.True(t, date.Equal(got[0].Date))
}

func TestUpsert_RejectsUntaggedArticle(t *testing.T) {
	repo := testRepo(t)

	a, err := campusfeed.NewArticle("untagged", "https://example.com/x", time.Now(), "", "")
	require.NoError(t, err)

	_, err = repo.Upsert(context.Background(), a)
	assert.ErrorIs(t, err, campusfeed.ErrInvalidSource)
}

func TestArticlesBySource_Ordering(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		a := mustArticle(t, "post", "https://example.com/"+d.Format("2006-01-02"), d, "", campusfeed.SourceNews)
		_, err := repo.Upsert(ctx, a)
		require.NoError(t, err)
	}

	got, err := repo.ArticlesBySource(ctx, campusfeed.SourceNews)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.True(t, got[0].Date.After(got[1].Date))
	assert.True(t, got[1].Date.After(got[2].Date))
}

func TestArticlesOnOrAfter(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for day := 5; day <= 8; day++ {
		d := time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
		a := mustArticle(t, "sched", "https://example.com/s/"+d.Format("2006-01-02"), d, "", campusfeed.SourceSchedules)
		_, err := repo.Upsert(ctx, a)
		require.NoError(t, err)
	}

	cutoff := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	got, err := repo.ArticlesOnOrAfter(ctx, campusfeed.SourceSchedules, cutoff)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Oldest first, inclusive of the cutoff instant.
	assert.True(t, cutoff.Equal(got[0].Date))
	assert.True(t, got[0].Date.Before(got[1].Date))
}

func TestQueries_InvalidSource(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	_, err := repo.ArticlesBySource(ctx, campusfeed.Source("weather"))
	assert.ErrorIs(t, err, campusfeed.ErrInvalidSource)

	_, err = repo.ArticlesOnOrAfter(ctx, campusfeed.Source(""), time.Now())
	assert.ErrorIs(t, err, campusfeed.ErrInvalidSource)
}
