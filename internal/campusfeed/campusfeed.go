// Package campusfeed holds the domain types shared between the sync and
// read paths: the canonical Article record, the five feed sources, and the
// repository contract the store implements.
package campusfeed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidSource marks a source string outside the five known feeds.
	// This is a caller bug and is never swallowed.
	ErrInvalidSource = errors.New("invalid source")

	// ErrMissingDate is returned when an Article is constructed without a
	// date. Records with no parseable date never enter the store.
	ErrMissingDate = errors.New("article date is required")
)

// Source identifies one of the five upstream feeds.
type Source string

const (
	SourceSchedules Source = "schedules"
	SourceEvents    Source = "events"
	SourceLunch     Source = "lunch"
	SourceDailyAnn  Source = "dailyann"
	SourceNews      Source = "news"
)

// Sources lists every known source, in sync order.
func Sources() []Source {
	return []Source{
		SourceSchedules,
		SourceNews,
		SourceEvents,
		SourceDailyAnn,
		SourceLunch,
	}
}

// ParseSource validates a raw source string.
func ParseSource(s string) (Source, error) {
	switch src := Source(s); src {
	case SourceSchedules, SourceEvents, SourceLunch, SourceDailyAnn, SourceNews:
		return src, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidSource)
}

type (
	// Article is the canonical unit of feed content: a post, an event, a
	// schedule day, or a lunch day. It is immutable after construction;
	// updates happen by upserting a new value with the same key.
	Article struct {
		Key      string    `db:"key"`
		Title    string    `db:"title"`
		URL      string    `db:"url"`
		Date     time.Time `db:"date"`
		Details  string    `db:"details"`
		ImageURL string    `db:"img_src"`
		Source   Source    `db:"source"`
	}

	// Repository is the store contract. Upserts replace on key match.
	Repository interface {
		Upsert(ctx context.Context, article Article) (int64, error)
		// ArticlesBySource returns every article of a source, newest first.
		ArticlesBySource(ctx context.Context, src Source) ([]Article, error)
		// ArticlesOnOrAfter returns articles dated at or after the given
		// instant, oldest first.
		ArticlesOnOrAfter(ctx context.Context, src Source, after time.Time) ([]Article, error)
	}
)

// NewArticle builds an Article and derives its identity key. The source is
// left unset; the orchestrator tags it before persisting. A zero date is
// rejected rather than defaulted, since a made-up timestamp would corrupt
// both dedup and grouping.
func NewArticle(title, url string, date time.Time, details, imageURL string) (Article, error) {
	if date.IsZero() {
		return Article{}, ErrMissingDate
	}

	return Article{
		Key:      makeKey(title, url, date),
		Title:    title,
		URL:      url,
		Date:     date,
		Details:  details,
		ImageURL: imageURL,
	}, nil
}

// The key is the article's URL when it has one, otherwise title+date. Either
// way the characters that collide with storage addressing are stripped.
func makeKey(title, url string, date time.Time) string {
	key := url
	if key == "" {
		key = title + date.String()
	}

	replacer := strings.NewReplacer("/", "", "&", "", "?", "")
	return replacer.Replace(key)
}
