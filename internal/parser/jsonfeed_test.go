package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJSONFeed = `{
  "items": [
    {
      "title": "Robotics team wins states",
      "published": "2024-03-07T15:30:00.000Z",
      "content": "<p>Full recap.</p><img src=\"https://example.com/robot.jpg\">",
      "selfLink": "https://example.com/posts/robotics"
    },
    {
      "title": "Art show opens",
      "published": "2024-03-06T12:00:00.000Z",
      "content": "<p>In the main lobby.</p>",
      "selfLink": "https://example.com/posts/art-show",
      "images": [{"url": "https://example.com/art.png"}]
    },
    {
      "title": "No date on this one",
      "content": "dropped",
      "selfLink": "https://example.com/posts/broken"
    }
  ]
}`

func TestJSONFeedParser(t *testing.T) {
	articles, err := JSONFeedParser{}.Parse([]byte(testJSONFeed))
	require.NoError(t, err)

	require.Len(t, articles, 2)

	assert.Equal(t, "Robotics team wins states", articles[0].Title)
	assert.Equal(t, "https://example.com/posts/robotics", articles[0].URL)
	assert.True(t, articles[0].Date.Equal(time.Date(2024, 3, 7, 15, 30, 0, 0, time.UTC)))
	// No images array, so the embedded img supplies the artwork.
	assert.Equal(t, "https://example.com/robot.jpg", articles[0].ImageURL)

	// The listed image wins over anything in the body.
	assert.Equal(t, "https://example.com/art.png", articles[1].ImageURL)
}

func TestJSONFeedParser_NotJSON(t *testing.T) {
	_, err := JSONFeedParser{}.Parse([]byte(`<feed></feed>`))
	assert.Error(t, err)
}
