package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log/slog"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
)

// Represents the Atom-style announcement feed.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string   `xml:"title"`
	Published string   `xml:"published"`
	Content   string   `xml:"content"`
	Link      atomLink `xml:"link"`
}

// Some feeds put the entry URL in the link body, others in the href
// attribute. Capture both.
type atomLink struct {
	Href string `xml:"href,attr"`
	Text string `xml:",chardata"`
}

func (l atomLink) url() string {
	if text := sanitizeText(l.Text); text != "" {
		return text
	}
	return l.Href
}

// AtomParser reads the XML announcement feed: repeated entry elements under
// a feed root.
type AtomParser struct{}

func (AtomParser) Parse(data []byte) ([]campusfeed.Article, error) {
	var feed atomFeed
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&feed); err != nil {
		return nil, fmt.Errorf("error decoding feed: %w", err)
	}

	articles := []campusfeed.Article{}
	for _, entry := range feed.Entries {
		date, err := parseFeedDate(entry.Published)
		if err != nil {
			slog.Warn("skipping entry with unparseable date", "title", entry.Title, "err", err)
			continue
		}

		article, err := campusfeed.NewArticle(
			sanitizeText(entry.Title),
			entry.Link.url(),
			date,
			sanitizeDetails(entry.Content),
			"",
		)
		if err != nil {
			slog.Warn("skipping malformed entry", "title", entry.Title, "err", err)
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}
