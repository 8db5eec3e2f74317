package utils

import (
	"regexp"
	"strings"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL-safe slug
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
