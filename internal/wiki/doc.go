// Package wiki is the HTTP client for the encyclopedia REST API used by the
// Search screen.
//
// # Lookup Sequence
//
// Lookup performs two sequential GET requests:
//
//  1. {rest}/v1/search/title?q=<query>&limit=<n> returns ranked pages
//  2. {api}/page/summary/<key> for the first page returns title, extract and
//     the canonical desktop URL
//
// The first candidate is taken as ranked by the provider. An empty page list
// yields ErrNoResults. Transport and status failures are wrapped with
// ErrSearchFailed or ErrSummaryFailed so callers can tell the stages apart
// with errors.Is.
//
// # Article Assembly
//
//   - Title: summary title, else the page key
//   - Content: summary extract, else the search excerpt without markup,
//     else "No summary available."
//   - Sources: one citation pointing at the canonical page URL, or
//     https://en.wikipedia.org/wiki/<key> when the summary has none
//
// # Caching
//
// Summaries are kept in a go-cache TTL cache keyed by page key when
// Options.CacheTTL is positive. Title searches are never cached.
package wiki
