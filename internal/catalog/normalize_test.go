package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeJSONCastBothShapes(t *testing.T) {
	asArray, err := NormalizeJSON([]byte(`{"cast": ["Actor One", " Actor Two "]}`))
	require.NoError(t, err)
	asString, err := NormalizeJSON([]byte(`{"cast": "[\"Actor One\", \" Actor Two \"]"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Actor One", "Actor Two"}, asArray.Cast)
	assert.Equal(t, asArray.Cast, asString.Cast)
}

func TestNormalizeJSONCastCommaString(t *testing.T) {
	in, err := NormalizeJSON([]byte(`{"cast": "Actor One, Actor Two"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Actor One", "Actor Two"}, in.Cast)

	// A bare string without commas is a one-element list, not an error.
	in, err = NormalizeJSON([]byte(`{"cast": "Solo Actor"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Solo Actor"}, in.Cast)
}

func TestNormalizeJSONPlatforms(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"array", `{"streamingPlatforms": ["netflix", "prime"]}`, []string{"netflix", "prime"}},
		{"encoded array", `{"streamingPlatforms": "[\"netflix\", \"prime\"]"}`, []string{"netflix", "prime"}},
		{"bare value", `{"streamingPlatforms": "netflix"}`, []string{"netflix"}},
		{"unknown keys dropped", `{"streamingPlatforms": ["netflix", "blockbuster"]}`, []string{"netflix"}},
		{"case folded", `{"streamingPlatforms": ["Netflix", " PRIME "]}`, []string{"netflix", "prime"}},
		{"malformed array is empty", `{"streamingPlatforms": "[\"netflix\""}`, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := NormalizeJSON([]byte(tc.raw))
			require.NoError(t, err)
			assert.True(t, in.PlatformsSubmitted())
			assert.Equal(t, tc.want, in.Platforms)
		})
	}
}

func TestNormalizeJSONPlatformsAbsent(t *testing.T) {
	in, err := NormalizeJSON([]byte(`{"title": "x"}`))
	require.NoError(t, err)
	assert.False(t, in.PlatformsSubmitted())
}

func TestNormalizeJSONGenresStrict(t *testing.T) {
	in, err := NormalizeJSON([]byte(`{"genres": ["Action", "Drama"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Drama"}, in.Genres)

	// The encoded-array shape is accepted, a comma string is not.
	in, err = NormalizeJSON([]byte(`{"genres": "[\"Action\"]"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Action"}, in.Genres)

	_, err = NormalizeJSON([]byte(`{"genres": "Action, Drama"}`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Violations, "genres must be a JSON array")
}

func TestNormalizeJSONScreenshotsDropEmpties(t *testing.T) {
	in, err := NormalizeJSON([]byte(`{"screenshots": ["a.jpg", "", "  ", "b.jpg"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, in.Screenshots)
}

func TestNormalizeJSONDownloadLinks(t *testing.T) {
	in, err := NormalizeJSON([]byte(`{"downloadLinks": [{"quality":"720p","size":"1.1GB","url":"https://x/dl"}]}`))
	require.NoError(t, err)
	require.Len(t, in.DownloadLinks, 1)
	assert.Equal(t, "720p", in.DownloadLinks[0].Quality)

	// Doubly-encoded arrays arrive from form-based admin panels.
	in, err = NormalizeJSON([]byte(`{"downloadLinks": "[{\"quality\":\"1080p\",\"url\":\"https://x/dl\"}]"}`))
	require.NoError(t, err)
	require.Len(t, in.DownloadLinks, 1)

	_, err = NormalizeJSON([]byte(`{"downloadLinks": [{"quality":"720p"}]}`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Violations, "downloadLinks[0].url is required")

	_, err = NormalizeJSON([]byte(`{"downloadLinks": [{"quality":"8K","url":"https://x"}]}`))
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Violations, `downloadLinks[0].quality "8K" is not allowed`)
}

func TestNormalizeJSONFlexibleScalars(t *testing.T) {
	in, err := NormalizeJSON([]byte(`{"releaseYear": "2021", "category": 7}`))
	require.NoError(t, err)
	require.NotNil(t, in.ReleaseYear)
	assert.Equal(t, 2021, *in.ReleaseYear)
	require.NotNil(t, in.CategoryRef)
	assert.Equal(t, "7", *in.CategoryRef)

	_, err = NormalizeJSON([]byte(`{"releaseYear": "soon"}`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Violations, "releaseYear must be an integer")
}

func TestNormalizeFormBasics(t *testing.T) {
	values := url.Values{
		"title":                {"  The Movie  "},
		"releaseYear":          {"2020"},
		"genres":               {`["Action"]`},
		"streamingPlatforms[]": {"netflix", "Prime", "bogus"},
	}
	in, err := NormalizeForm(values)
	require.NoError(t, err)

	require.NotNil(t, in.Title)
	assert.Equal(t, "The Movie", *in.Title)
	require.NotNil(t, in.ReleaseYear)
	assert.Equal(t, 2020, *in.ReleaseYear)
	assert.Equal(t, []string{"Action"}, in.Genres)
	assert.True(t, in.PlatformsSubmitted())
	assert.Equal(t, []string{"netflix", "prime"}, in.Platforms)

	// Absent fields stay nil so updates can tell "not sent" from "empty".
	assert.Nil(t, in.Description)
	assert.Nil(t, in.Rating)
}

func TestNormalizeFormBadNumbers(t *testing.T) {
	_, err := NormalizeForm(url.Values{"releaseYear": {"next year"}})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Violations, "releaseYear must be an integer")
}
