package grouping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
)

func TestMatchingArticle(t *testing.T) {
	anchor := article(t, "A Day", time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local))

	lunches := []campusfeed.Article{
		article(t, "pizza", time.Date(2024, 3, 6, 11, 0, 0, 0, time.Local)),
		// Same day as the anchor, different time of day.
		article(t, "tacos", time.Date(2024, 3, 7, 11, 30, 0, 0, time.Local)),
		article(t, "salad", time.Date(2024, 3, 8, 11, 0, 0, 0, time.Local)),
	}

	got, ok := MatchingArticle(anchor, lunches)
	require.True(t, ok)
	assert.Equal(t, "tacos", got.Title)
}

func TestMatchingArticle_NoneFound(t *testing.T) {
	anchor := article(t, "A Day", time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local))

	lunches := []campusfeed.Article{
		article(t, "pizza", time.Date(2024, 3, 6, 11, 0, 0, 0, time.Local)),
	}

	_, ok := MatchingArticle(anchor, lunches)
	assert.False(t, ok)

	_, ok = MatchingArticle(anchor, nil)
	assert.False(t, ok)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 7, 1, 0, 0, 0, time.Local)
	b := time.Date(2024, 3, 7, 23, 59, 0, 0, time.Local)
	c := time.Date(2024, 3, 8, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}
