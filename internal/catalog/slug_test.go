package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"The Dark Knight", "the-dark-knight"},
		{"Spider-Man: No Way Home", "spider-man-no-way-home"},
		{"  Inception  ", "inception"},
		{"WALL·E", "walle"},
		{"Fast & Furious 9", "fast-furious-9"},
		{"What's   Up?", "whats-up"},
		{"---", ""},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{"The Dark Knight", "Spider-Man: No Way Home", "a  b  c", "Fast & Furious 9"}
	for _, title := range titles {
		once := Slugify(title)
		assert.Equal(t, once, Slugify(once), "title %q", title)
	}
}

func TestSlugifyEquivalentTitlesCollide(t *testing.T) {
	// Case and whitespace differences collapse onto the same slug, which is
	// what makes a slug collision mean "same movie" at the API level.
	assert.Equal(t, Slugify("The Dark Knight"), Slugify("the  DARK   knight"))
	assert.Equal(t, Slugify("Dune: Part Two"), Slugify("Dune Part Two!"))
}

func TestSlugOrFallback(t *testing.T) {
	assert.Equal(t, "inception", SlugOrFallback("Inception"))

	got := SlugOrFallback("🎬🎬🎬")
	assert.True(t, strings.HasPrefix(got, "m-"), "got %q", got)
	assert.Len(t, got, 10)

	// Two fallback slugs for the same unusable title must not collide.
	assert.NotEqual(t, SlugOrFallback("!!!"), SlugOrFallback("!!!"))
}
