package campusfeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticle_KeyFromURL(t *testing.T) {
	date := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	a, err := NewArticle("Spirit Week", "http://x.com/a?b=1&c=2", date, "", "")
	require.NoError(t, err)

	// Only / & ? are stripped, nothing else altered.
	assert.Equal(t, "http:x.comab=1c=2", a.Key)
}

func TestNewArticle_KeyFromTitleAndDate(t *testing.T) {
	date := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)

	a, err := NewArticle("A Day", "", date, "", "")
	require.NoError(t, err)

	assert.Equal(t, "A Day"+date.String(), a.Key)
	assert.NotEmpty(t, a.Key)

	// Same title+date collapses to the same key.
	b, err := NewArticle("A Day", "", date, "different details", "")
	require.NoError(t, err)
	assert.Equal(t, a.Key, b.Key)
}

func TestNewArticle_MissingDate(t *testing.T) {
	_, err := NewArticle("title", "http://x.com", time.Time{}, "", "")
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		input   string
		want    Source
		wantErr bool
	}{
		{input: "schedules", want: SourceSchedules},
		{input: "events", want: SourceEvents},
		{input: "lunch", want: SourceLunch},
		{input: "dailyann", want: SourceDailyAnn},
		{input: "news", want: SourceNews},
		{input: "weather", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSource(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
