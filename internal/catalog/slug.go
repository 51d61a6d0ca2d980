// Package catalog implements the content pipeline behind the admin API:
// slug derivation, normalization of heterogeneous client submissions into
// one canonical movie record, and create/update/bulk-import orchestration.
package catalog

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// Slugify maps a display title to a URL-safe identifier: lowercase, strip
// everything that is not a word character, whitespace or hyphen, collapse
// whitespace and hyphen runs into single hyphens, trim hyphens at both ends.
// It is idempotent. A title with no word characters yields "".
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugOrFallback returns Slugify(title), or a generated "m-<8 hex>" slug when
// the title contains no word characters at all (all emoji, for example).
// Without the fallback such a title could never satisfy the required, unique
// slug constraint.
func SlugOrFallback(title string) string {
	if s := Slugify(title); s != "" {
		return s
	}
	return "m-" + uuid.NewString()[:8]
}
