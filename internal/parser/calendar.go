package parser

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
)

// Represents the calendar API's event feed.
type calendarDoc struct {
	Items []calendarItem `json:"items"`
}

type calendarItem struct {
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	HTMLLink    string        `json:"htmlLink"`
	Start       calendarStart `json:"start"`
}

// All-day events carry a date, timed events a dateTime. Tried in that order.
type calendarStart struct {
	Date     string `json:"date"`
	DateTime string `json:"dateTime"`
}

func (s calendarStart) value() string {
	if s.Date != "" {
		return s.Date
	}
	return s.DateTime
}

// CalendarParser reads the calendar JSON feed used by the schedules, events,
// and lunch sources.
type CalendarParser struct{}

func (CalendarParser) Parse(data []byte) ([]campusfeed.Article, error) {
	var doc calendarDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error decoding calendar feed: %w", err)
	}

	articles := []campusfeed.Article{}
	for _, item := range doc.Items {
		date, err := parseFeedDate(item.Start.value())
		if err != nil {
			slog.Warn("skipping event with unparseable date", "summary", item.Summary, "err", err)
			continue
		}

		// Calendar events carry no artwork.
		article, err := campusfeed.NewArticle(
			sanitizeText(item.Summary),
			item.HTMLLink,
			date,
			sanitizeDetails(item.Description),
			"",
		)
		if err != nil {
			slog.Warn("skipping malformed event", "summary", item.Summary, "err", err)
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}
