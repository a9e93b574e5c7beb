package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sym01/htmlsanitizer"
)

var stripPolicy = bluemonday.StrictPolicy()

// Removes all html tags from the string, used for titles and other
// plain-text fields.
func sanitizeText(s string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}

// Cleans an HTML details body down to a safe allowlist of tags. Falls back
// to stripping everything if the sanitizer chokes on the input.
func sanitizeDetails(s string) string {
	out, err := htmlsanitizer.SanitizeString(s)
	if err != nil {
		return sanitizeText(s)
	}
	return strings.TrimSpace(out)
}

// firstImageURL pulls the src of the first image in an HTML body, for feeds
// that embed their artwork in the content rather than listing it.
func firstImageURL(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return doc.Find("img").First().AttrOr("src", "")
}
