// Package grouping derives display sections from date-ordered article lists.
//
// The output is a parallel header slice: one optional header per article,
// where a non-nil entry starts a new section before that article and nil
// continues the current one. Grouping is stateless and side-effect free;
// callers pass the clock in.
package grouping

import (
	"math"
	"time"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
)

// Section labels. An empty string is still a section start, just without
// visible text.
const (
	LabelToday    = "Today"
	LabelTomorrow = "Tomorrow"
	LabelThisWeek = "This Week"
	LabelNextWeek = "Next Week"
	LabelFarther  = "Farther Ahead"
	LabelLastWeek = "Last Week"
	LabelEarlier  = "Earlier"

	// LabelChecking is the single placeholder row shown for an empty list.
	LabelChecking = "Checking for updates..."

	// School lets out at 14:00; after that, today's schedule and lunch rows
	// are no longer actionable.
	cutoffHour = 14
)

// Grouping pairs a (possibly trimmed) article list with its parallel header
// slice. Headers[i] precedes Articles[i]; for an empty input the Headers
// slice carries exactly one placeholder entry so there is always a row to
// render.
type Grouping struct {
	Articles []campusfeed.Article
	Headers  []*string
}

// Group sections a single-source article list according to that source's
// policy. The list must already be in store order: ascending for schedules,
// lunch, and events, descending for dailyann and news.
func Group(articles []campusfeed.Article, src campusfeed.Source, now time.Time) (Grouping, error) {
	if _, err := campusfeed.ParseSource(string(src)); err != nil {
		return Grouping{}, err
	}

	switch src {
	case campusfeed.SourceSchedules, campusfeed.SourceLunch:
		return group(Trim(articles, now), weeklyHeaders(now, forwardWeekLabel)), nil
	case campusfeed.SourceDailyAnn:
		return group(articles, weeklyHeaders(now, backwardWeekLabel)), nil
	case campusfeed.SourceEvents:
		return group(articles, dailyHeaders(now)), nil
	default: // news
		return group(articles, flatHeaders), nil
	}
}

// News stands alone: no sections, no headers.
func flatHeaders(articles []campusfeed.Article) []*string {
	return make([]*string, len(articles))
}

func group(articles []campusfeed.Article, headersFor func([]campusfeed.Article) []*string) Grouping {
	if len(articles) == 0 {
		return Grouping{
			Articles: []campusfeed.Article{},
			Headers:  []*string{header(LabelChecking)},
		}
	}

	return Grouping{Articles: articles, Headers: headersFor(articles)}
}

// Trim applies the same-day cutoff rule: from 14:00 local onward, a leading
// record dated today is dropped so the view advances to the next day. At
// most the head of the list is removed, and never from a single-record list.
// The input slice is not modified.
func Trim(articles []campusfeed.Article, now time.Time) []campusfeed.Article {
	if len(articles) <= 1 {
		return articles
	}
	if now.Local().Hour() < cutoffHour {
		return articles
	}
	if !SameDay(articles[0].Date, now) {
		return articles
	}

	trimmed := make([]campusfeed.Article, len(articles)-1)
	copy(trimmed, articles[1:])
	return trimmed
}

// weeklyHeaders groups on ISO week boundaries. Crossing into a new week
// always starts a section; the label depends on the week's offset from the
// current one.
func weeklyHeaders(now time.Time, label func(offset int) string) func([]campusfeed.Article) []*string {
	return func(articles []campusfeed.Article) []*string {
		headers := make([]*string, len(articles))

		currentWeek := time.Time{}
		for i, article := range articles {
			week := weekStart(article.Date)
			if week.Equal(currentWeek) {
				continue
			}
			currentWeek = week

			headers[i] = header(label(weekOffset(now, article.Date)))
		}

		return headers
	}
}

func forwardWeekLabel(offset int) string {
	switch offset {
	case 0:
		return LabelThisWeek
	case 1:
		return LabelNextWeek
	case 2:
		return LabelFarther
	}
	return ""
}

func backwardWeekLabel(offset int) string {
	switch offset {
	case 0:
		return LabelThisWeek
	case -1:
		return LabelLastWeek
	case -2:
		return LabelEarlier
	}
	return ""
}

// dailyHeaders groups on calendar-day boundaries: today, tomorrow, then the
// spelled-out weekday and date.
func dailyHeaders(now time.Time) func([]campusfeed.Article) []*string {
	tomorrow := now.AddDate(0, 0, 1)

	return func(articles []campusfeed.Article) []*string {
		headers := make([]*string, len(articles))

		var current time.Time
		started := false
		for i, article := range articles {
			if started && SameDay(article.Date, current) {
				continue
			}
			started = true
			current = article.Date

			switch {
			case SameDay(article.Date, now):
				headers[i] = header(LabelToday)
			case SameDay(article.Date, tomorrow):
				headers[i] = header(LabelTomorrow)
			default:
				headers[i] = header(article.Date.Local().Format("Monday, January 2"))
			}
		}

		return headers
	}
}

// weekOffset counts ISO week boundaries between now and t: 0 for the same
// week, positive for future weeks, negative for past ones. Comparing the
// weeks' start dates keeps the arithmetic honest across year boundaries.
// A week spanning a DST transition is not exactly 168 wall-clock hours, so
// the quotient is rounded rather than truncated.
func weekOffset(now, t time.Time) int {
	weeks := weekStart(t).Sub(weekStart(now)).Hours() / (24 * 7)
	return int(math.Round(weeks))
}

// weekStart returns local midnight of the Monday beginning t's ISO week.
func weekStart(t time.Time) time.Time {
	t = t.Local()
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return time.Date(t.Year(), t.Month(), t.Day()-(wd-1), 0, 0, 0, 0, time.Local)
}

func header(s string) *string {
	return &s
}
