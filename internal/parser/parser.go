// Package parser turns raw feed payloads into canonical articles.
//
// Three formats are supported: the Atom-style XML announcement feed, the
// generic JSON blog feed, and the Google-calendar JSON event feed. Each
// parser tolerates malformed individual items by skipping them; only a
// payload whose top-level structure is absent produces an error.
package parser

import (
	"fmt"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
)

// Parser is the shared contract: raw bytes in, canonical articles out.
// Returned articles carry no source; the caller tags them.
type Parser interface {
	Parse(data []byte) ([]campusfeed.Article, error)
}

// ForSource resolves the parser strategy for a feed source.
func ForSource(src campusfeed.Source) (Parser, error) {
	switch src {
	case campusfeed.SourceSchedules, campusfeed.SourceEvents, campusfeed.SourceLunch:
		return CalendarParser{}, nil
	case campusfeed.SourceDailyAnn:
		return AtomParser{}, nil
	case campusfeed.SourceNews:
		return JSONFeedParser{}, nil
	}
	return nil, fmt.Errorf("no parser for %q: %w", src, campusfeed.ErrInvalidSource)
}
