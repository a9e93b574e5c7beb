package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
)

// articleRow is the storage shape of an article. Dates are kept as unix
// milliseconds so ordering comparisons in SQL are exact regardless of the
// source timezone.
type articleRow struct {
	Key     string `db:"key"`
	Title   string `db:"title"`
	URL     string `db:"url"`
	Date    int64  `db:"date"`
	Details string `db:"details"`
	ImgSrc  string `db:"img_src"`
	Source  string `db:"source"`
}

func rowFromArticle(a campusfeed.Article) articleRow {
	return articleRow{
		Key:     a.Key,
		Title:   a.Title,
		URL:     a.URL,
		Date:    a.Date.UnixMilli(),
		Details: a.Details,
		ImgSrc:  a.ImageURL,
		Source:  string(a.Source),
	}
}

func (r articleRow) article() campusfeed.Article {
	return campusfeed.Article{
		Key:      r.Key,
		Title:    r.Title,
		URL:      r.URL,
		Date:     time.UnixMilli(r.Date),
		Details:  r.Details,
		ImageURL: r.ImgSrc,
		Source:   campusfeed.Source(r.Source),
	}
}

// Upsert writes an article, replacing any previous record with the same key.
// Returns the number of rows written.
func (r Repo) Upsert(ctx context.Context, article campusfeed.Article) (int64, error) {
	if _, err := campusfeed.ParseSource(string(article.Source)); err != nil {
		return 0, fmt.Errorf("refusing to store article: %w", err)
	}

	const q = `INSERT INTO articles (key, title, url, date, details, img_src, source)
	VALUES (:key, :title, :url, :date, :details, :img_src, :source)
	ON CONFLICT(key) DO UPDATE SET
		title = excluded.title,
		url = excluded.url,
		date = excluded.date,
		details = excluded.details,
		img_src = excluded.img_src,
		source = excluded.source;`

	res, err := r.db.NamedExecContext(ctx, q, rowFromArticle(article))
	if err != nil {
		return 0, fmt.Errorf("error upserting article: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting upserted rows: %w", err)
	}

	return count, nil
}

// ArticlesBySource retrieves every article of one source, newest first.
func (r Repo) ArticlesBySource(ctx context.Context, src campusfeed.Source) ([]campusfeed.Article, error) {
	if _, err := campusfeed.ParseSource(string(src)); err != nil {
		return nil, err
	}

	const q = `SELECT * FROM articles WHERE source = ? ORDER BY date DESC;`

	var rows []articleRow
	if err := r.db.SelectContext(ctx, &rows, q, string(src)); err != nil {
		return nil, fmt.Errorf("error fetching articles: %w", err)
	}

	return articlesFromRows(rows), nil
}

// ArticlesOnOrAfter retrieves articles of one source dated at or after the
// given instant, oldest first.
func (r Repo) ArticlesOnOrAfter(ctx context.Context, src campusfeed.Source, after time.Time) ([]campusfeed.Article, error) {
	if _, err := campusfeed.ParseSource(string(src)); err != nil {
		return nil, err
	}

	query, args, err := sq.Select("*").
		From("articles").
		Where(sq.Eq{"source": string(src)}).
		Where(sq.GtOrEq{"date": after.UnixMilli()}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %w", err)
	}

	var rows []articleRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("error fetching articles: %w", err)
	}

	return articlesFromRows(rows), nil
}

func articlesFromRows(rows []articleRow) []campusfeed.Article {
	articles := make([]campusfeed.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, row.article())
	}
	return articles
}
