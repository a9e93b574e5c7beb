// Package v1 holds the transport shapes for the read API.
package v1

import "time"

// Article is the wire form of one feed record.
type Article struct {
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	URL      string    `json:"url,omitempty"`
	Date     time.Time `json:"date"`
	Details  string    `json:"details,omitempty"`
	ImageURL string    `json:"image_url,omitempty"`
	Source   string    `json:"source"`
}

// ListArticlesResponse is the raw per-source listing.
type ListArticlesResponse struct {
	Articles []Article `json:"articles"`
}

// SectionRow is one display row: an optional header that starts a new
// section, and the article it precedes. The placeholder row for an empty
// source carries a header and no article.
type SectionRow struct {
	Header  *string  `json:"header,omitempty"`
	Article *Article `json:"article,omitempty"`
}

// SectionsResponse is the grouped, display-ready listing for one source.
type SectionsResponse struct {
	Rows []SectionRow `json:"rows"`
}

// DigestResponse is the combined view for the next school days.
type DigestResponse struct {
	ScheduleToday    *Article `json:"schedule_today,omitempty"`
	LunchToday       *Article `json:"lunch_today,omitempty"`
	Announcement     *Article `json:"announcement,omitempty"`
	ScheduleTomorrow *Article `json:"schedule_tomorrow,omitempty"`
	LunchTomorrow    *Article `json:"lunch_tomorrow,omitempty"`
}

// SyncResponse reports a completed refresh run.
type SyncResponse struct {
	Count  int    `json:"count"`
	Source string `json:"source"`
}
