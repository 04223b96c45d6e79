package normalize

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	whitespace  = regexp.MustCompile(`\s+`)
)

// trackingParams are query parameters stripped from cleaned URLs.
var trackingParams = []string{
	"ref",
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_content",
	"utm_term",
}

// CleanText strips HTML markup and entities, trims, and collapses internal
// whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
	return s
}

// CleanURL validates and cleans a URL field. Tracking query parameters are
// removed. Anything that does not parse as absolute http(s) is dropped by
// returning ""; a bad URL never rejects the whole record.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}

	q := u.Query()
	for _, param := range trackingParams {
		q.Del(param)
	}
	u.RawQuery = q.Encode()

	return u.String()
}
