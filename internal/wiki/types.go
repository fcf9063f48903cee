package wiki

import (
	"html"
	"regexp"
	"strings"
)

// Article is the displayable result of a lookup.
type Article struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Sources []Source `json:"sources,omitempty"`
}

// Source is a citation shown under the article body.
type Source struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// Label returns the citation text, preferring the title.
func (s Source) Label() string {
	if strings.TrimSpace(s.Title) != "" {
		return s.Title
	}
	return s.URI
}

// SearchResponse mirrors /v1/search/title.
type SearchResponse struct {
	Pages []Page `json:"pages"`
}

// Page is one ranked title-search candidate.
type Page struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Description string `json:"description"`
}

// Summary mirrors /page/summary/{key}.
type Summary struct {
	Title       string      `json:"title"`
	Extract     string      `json:"extract"`
	Description string      `json:"description"`
	ContentURLs ContentURLs `json:"content_urls"`
}

// ContentURLs holds the canonical page links of a summary.
type ContentURLs struct {
	Desktop PageURLs `json:"desktop"`
	Mobile  PageURLs `json:"mobile"`
}

// PageURLs is one platform's link set.
type PageURLs struct {
	Page string `json:"page"`
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// plainExcerpt drops the search-match markup the title endpoint embeds.
func plainExcerpt(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}
