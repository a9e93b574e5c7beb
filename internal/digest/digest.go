// Package digest assembles the combined daily view: the next schedule
// entries joined with the lunch menu and daily announcement for the same
// calendar days.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
	"github.com/mwhitley/campusfeed/internal/grouping"
)

// Digest is the at-a-glance summary for the next two school days. Absent
// pieces are nil: no upcoming schedule means an empty digest.
type Digest struct {
	ScheduleToday    *campusfeed.Article
	LunchToday       *campusfeed.Article
	Announcement     *campusfeed.Article
	ScheduleTomorrow *campusfeed.Article
	LunchTomorrow    *campusfeed.Article
}

// Build reads the upcoming schedule and correlates same-day lunch and
// announcement records onto it.
func Build(ctx context.Context, repo campusfeed.Repository, now time.Time) (Digest, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	schedules, err := repo.ArticlesOnOrAfter(ctx, campusfeed.SourceSchedules, startOfDay)
	if err != nil {
		return Digest{}, fmt.Errorf("error fetching upcoming schedules: %w", err)
	}
	if len(schedules) == 0 {
		return Digest{}, nil
	}

	var d Digest
	d.ScheduleToday = &schedules[0]

	lunches, err := repo.ArticlesBySource(ctx, campusfeed.SourceLunch)
	if err != nil {
		return Digest{}, fmt.Errorf("error fetching lunches: %w", err)
	}
	if lunch, ok := grouping.MatchingArticle(schedules[0], lunches); ok {
		d.LunchToday = &lunch
	}

	announcements, err := repo.ArticlesBySource(ctx, campusfeed.SourceDailyAnn)
	if err != nil {
		return Digest{}, fmt.Errorf("error fetching announcements: %w", err)
	}
	if ann, ok := grouping.MatchingArticle(schedules[0], announcements); ok {
		d.Announcement = &ann
	}

	if len(schedules) > 1 {
		d.ScheduleTomorrow = &schedules[1]
		if lunch, ok := grouping.MatchingArticle(schedules[1], lunches); ok {
			d.LunchTomorrow = &lunch
		}
	}

	return d, nil
}
