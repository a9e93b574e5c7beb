package grouping

import (
	"time"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
)

// SameDay reports whether two instants fall on the same local calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// MatchingArticle returns the first candidate sharing the anchor's calendar
// day, joining for example a lunch menu onto a schedule entry. The candidate
// sets are small, so a linear scan is fine.
func MatchingArticle(anchor campusfeed.Article, candidates []campusfeed.Article) (campusfeed.Article, bool) {
	for _, c := range candidates {
		if SameDay(anchor.Date, c.Date) {
			return c, true
		}
	}
	return campusfeed.Article{}, false
}
