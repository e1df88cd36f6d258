// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package link derives the display link for a bibliography entry.
// See docs/ARCHITECTURE.md § Link Derivation.
package link

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// Base URLs for link construction. Declared as vars so tests can
// substitute alternatives.
var (
	doiBase    = "https://doi.org/"
	searchBase = "https://scholar.google.com/scholar?q="
)

// doiPattern matches DOI suffixes: "10.1145/3534678.3539081". The prefix
// digit run is deliberately loose; short registrant codes appear in the wild.
var doiPattern = regexp.MustCompile(`^10\.\d+/\S+$`)

// ExtractDOI returns the entry's DOI, recovering it from a doi.org-hosted
// URL path when the explicit field is empty. Returns "" when neither
// source yields a plausible DOI.
func ExtractDOI(doi, rawURL string) string {
	doi = strings.TrimSpace(doi)
	if doi != "" {
		return doi
	}

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || !strings.Contains(rawURL, "doi.org") {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || !strings.HasSuffix(u.Hostname(), "doi.org") {
		return ""
	}
	candidate := strings.Trim(u.Path, "/")
	if doiPattern.MatchString(candidate) {
		return candidate
	}
	return ""
}

// NormalizeURL cleans a raw URL and reports whether the result is
// well-formed. Stray backslashes (a common spreadsheet export artifact)
// are stripped and plain http is upgraded to https.
func NormalizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, `\`, ""))
	if raw == "" {
		return "", false
	}
	if strings.HasPrefix(raw, "http://") {
		raw = "https://" + strings.TrimPrefix(raw, "http://")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" && u.Scheme != "http" || u.Host == "" {
		return "", false
	}
	return raw, true
}

// SearchLink builds a search-engine query link from a title.
// Returns "" for an empty title.
func SearchLink(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return searchBase + url.QueryEscape(title)
}

// ResolverLink returns the doi.org resolver link for a DOI suffix.
func ResolverLink(doi string) string {
	return doiBase + doi
}

// Derive chooses the link to present for an entry. The DOI may first be
// recovered from a doi.org URL; then, in order: the normalized URL when
// cfg.PrioritizeURL is set, the DOI resolver link, the normalized URL as
// fallback, and finally a title search link. A malformed URL never
// errors, it falls through to the next option.
func Derive(e types.Entry, cfg types.LinkConfig) (string, types.LinkKind) {
	doi := ExtractDOI(e.DOI, e.URL)

	if cfg.PrioritizeURL {
		if u, ok := NormalizeURL(e.URL); ok {
			return u, types.KindURL
		}
	}
	if doi != "" {
		return ResolverLink(doi), types.KindDOI
	}
	if u, ok := NormalizeURL(e.URL); ok {
		return u, types.KindURL
	}
	if s := SearchLink(e.Title); s != "" {
		return s, types.KindSearch
	}
	return "", types.KindNone
}
