// Package sync orchestrates a refresh run: fetch each source's feed, parse
// it, tag the records, and upsert them into the store. One source failing
// never stops the others.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
	"github.com/mwhitley/campusfeed/internal/parser"
	"github.com/mwhitley/campusfeed/logger"
)

// SourceAll labels a completion covering every source.
const SourceAll = "all"

// Result is the completion signal handed to whoever is listening: how many
// records were written and for which source.
type Result struct {
	Count  int    `json:"count"`
	Source string `json:"source"`
}

// Endpoints holds the feed URLs and the key the news feed requires.
type Endpoints struct {
	Schedules string
	Events    string
	Lunch     string
	DailyAnn  string
	News      string
	APIKey    string
}

// urlFor decorates a source's base URL with its required query parameters:
// calendar feeds take a timeMin bound so past events are excluded, the news
// feed takes the API key.
func (e Endpoints) urlFor(src campusfeed.Source, now time.Time) (string, error) {
	var base string
	params := url.Values{}

	switch src {
	case campusfeed.SourceSchedules:
		base = e.Schedules
	case campusfeed.SourceEvents:
		base = e.Events
	case campusfeed.SourceLunch:
		base = e.Lunch
	case campusfeed.SourceDailyAnn:
		return e.DailyAnn, nil
	case campusfeed.SourceNews:
		base = e.News
		params.Set("key", e.APIKey)
		params.Set("fetchImages", "true")
	default:
		return "", fmt.Errorf("%q: %w", src, campusfeed.ErrInvalidSource)
	}

	if src != campusfeed.SourceNews {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		params.Set("timeMin", midnight.Format(time.RFC3339))
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("error parsing %s endpoint: %w", src, err)
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Syncer runs refreshes against the store.
type Syncer struct {
	repo      campusfeed.Repository
	fetcher   Fetcher
	endpoints Endpoints

	notify chan Result
	now    func() time.Time
}

func New(repo campusfeed.Repository, fetcher Fetcher, endpoints Endpoints) *Syncer {
	return &Syncer{
		repo:      repo,
		fetcher:   fetcher,
		endpoints: endpoints,
		notify:    make(chan Result, 1),
		now:       time.Now,
	}
}

// Completions exposes the completion signal. Results are dropped when nobody
// is receiving, so a listener is optional.
func (s *Syncer) Completions() <-chan Result {
	return s.notify
}

// SyncAll refreshes every source. Failures are logged per source and the
// remaining sources still run.
func (s *Syncer) SyncAll(ctx context.Context) Result {
	ctx = logger.With(ctx, slog.String("run_id", uuid.NewString()))

	total := 0
	for _, src := range campusfeed.Sources() {
		count, err := s.syncSource(ctx, src)
		if err != nil {
			slog.ErrorContext(ctx, "source sync failed", "source", src, "err", err)
			continue
		}
		slog.InfoContext(ctx, "source synced", "source", src, "count", count)
		total += count
	}

	res := Result{Count: total, Source: SourceAll}
	s.publish(res)
	return res
}

// SyncOne refreshes a single source.
func (s *Syncer) SyncOne(ctx context.Context, src campusfeed.Source) (Result, error) {
	count, err := s.syncSource(ctx, src)
	if err != nil {
		return Result{}, err
	}

	res := Result{Count: count, Source: string(src)}
	s.publish(res)
	return res, nil
}

func (s *Syncer) syncSource(ctx context.Context, src campusfeed.Source) (int, error) {
	p, err := parser.ForSource(src)
	if err != nil {
		return 0, err
	}

	feedURL, err := s.endpoints.urlFor(src, s.now())
	if err != nil {
		return 0, err
	}

	data, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return 0, fmt.Errorf("error fetching %s feed: %w", src, err)
	}

	articles, err := p.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s feed: %w", src, err)
	}

	count := 0
	for _, article := range articles {
		article.Source = src

		written, err := s.repo.Upsert(ctx, article)
		if err != nil {
			return count, fmt.Errorf("error upserting article %q: %w", article.Key, err)
		}
		count += int(written)
	}

	return count, nil
}

func (s *Syncer) publish(res Result) {
	select {
	case s.notify <- res:
	default:
	}
}
