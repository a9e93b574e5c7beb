package parser

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
)

// Represents the generic JSON blog feed.
type jsonFeedDoc struct {
	Items []jsonFeedItem `json:"items"`
}

type jsonFeedItem struct {
	Title     string `json:"title"`
	Published string `json:"published"`
	Content   string `json:"content"`
	SelfLink  string `json:"selfLink"`
	Images    []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// JSONFeedParser reads the blog-style JSON feed: a top-level items array of
// posts with published timestamps and HTML content.
type JSONFeedParser struct{}

func (JSONFeedParser) Parse(data []byte) ([]campusfeed.Article, error) {
	var doc jsonFeedDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error decoding json feed: %w", err)
	}

	articles := []campusfeed.Article{}
	for _, item := range doc.Items {
		date, err := parseFeedDate(item.Published)
		if err != nil {
			slog.Warn("skipping item with unparseable date", "title", item.Title, "err", err)
			continue
		}

		details := sanitizeDetails(item.Content)

		// Prefer the listed artwork, then whatever image the body embeds.
		imageURL := ""
		if len(item.Images) > 0 {
			imageURL = item.Images[0].URL
		}
		if imageURL == "" {
			imageURL = firstImageURL(item.Content)
		}

		article, err := campusfeed.NewArticle(
			sanitizeText(item.Title),
			item.SelfLink,
			date,
			details,
			imageURL,
		)
		if err != nil {
			slog.Warn("skipping malformed item", "title", item.Title, "err", err)
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}
