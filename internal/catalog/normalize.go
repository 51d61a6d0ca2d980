package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/moviesmod/movie-catalog/internal/model"
)

// MovieInput is the canonical record every submission collapses into.
// Pointer and nil-slice fields mean "not submitted", which is what gives
// update its partial-merge semantics: absent fields never touch stored state.
type MovieInput struct {
	Title       *string
	Description *string
	ReleaseYear *int
	Duration    *string
	Type        *string
	Seasons     *int
	Episodes    *int
	Rating      *float64
	IMDBRating  *float64
	Director    *string
	Quality     *string
	Status      *string
	Featured    *bool
	TrailerURL  *string
	Poster      *string
	PosterURL   *string
	Thumbnail   *string
	MetaTitle   *string
	MetaDesc    *string

	// CategoryRef is the raw category reference as submitted: a numeric id,
	// or a slug/name to be resolved case-insensitively by the upsert service.
	CategoryRef *string

	Genres        []string
	Cast          []string
	Languages     []string
	Screenshots   []string
	Tags          []string
	MetaKeywords  []string
	Platforms     []string
	DownloadLinks []model.DownloadLink

	// platformsSet distinguishes "submitted but normalized to empty" from
	// "not submitted", since the lenient platform rules can legally produce
	// an empty list.
	platformsSet bool
}

// PlatformsSubmitted reports whether the submission carried a streaming
// platform field at all, even if it normalized to an empty list.
func (in *MovieInput) PlatformsSubmitted() bool { return in.platformsSet }

// FlexStrings accepts the three wire shapes a string list arrives in: a real
// JSON array, a JSON string holding an encoded array, or a bare string that
// is split on commas. A bare string without commas becomes a one-element
// list. This is the single place request-shape sniffing is allowed.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*f = trimAll(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected array or string, got %s", string(b))
	}
	*f = flexibleList(s)
	return nil
}

// NormalizeForm builds a MovieInput from multipart/urlencoded form values.
// It applies the same rules as NormalizeJSON: strict JSON decoding for
// genres and downloadLinks, flexible decoding for cast, languages and
// screenshots, lenient decoding for streamingPlatforms.
func NormalizeForm(values url.Values) (*MovieInput, error) {
	in := &MovieInput{}
	var violations []string

	in.Title = formString(values, "title")
	in.Description = formString(values, "description")
	in.Duration = formString(values, "duration")
	in.Type = formString(values, "type")
	in.Director = formString(values, "director")
	in.Quality = formString(values, "quality")
	in.Status = formString(values, "status")
	in.TrailerURL = formString(values, "trailerUrl")
	in.PosterURL = formString(values, "posterUrl")
	in.Thumbnail = formString(values, "thumbnail")
	in.MetaTitle = formString(values, "metaTitle")
	in.MetaDesc = formString(values, "metaDescription")
	in.CategoryRef = formString(values, "category")

	in.ReleaseYear = formInt(values, "releaseYear", &violations)
	in.Seasons = formInt(values, "totalSeasons", &violations)
	in.Episodes = formInt(values, "totalEpisodes", &violations)
	in.Rating = formFloat(values, "rating", &violations)
	in.IMDBRating = formFloat(values, "imdbRating", &violations)

	if v := formString(values, "featured"); v != nil {
		b := *v == "true" || *v == "1"
		in.Featured = &b
	}

	if v := formString(values, "genres"); v != nil {
		genres, err := decodeStringArray(*v)
		if err != nil {
			violations = append(violations, "genres must be a JSON array")
		} else {
			in.Genres = genres
		}
	}
	if v := formString(values, "downloadLinks"); v != nil {
		links, errs := decodeDownloadLinks(*v)
		violations = append(violations, errs...)
		in.DownloadLinks = links
	}

	if v := formString(values, "cast"); v != nil {
		in.Cast = flexibleList(*v)
	}
	if v := formString(values, "languages"); v != nil {
		in.Languages = flexibleList(*v)
	}
	if v := formString(values, "screenshots"); v != nil {
		in.Screenshots = dropEmpty(flexibleList(*v))
	}
	if v := formString(values, "tags"); v != nil {
		in.Tags = dropEmpty(flexibleList(*v))
	}
	if v := formString(values, "metaKeywords"); v != nil {
		in.MetaKeywords = dropEmpty(flexibleList(*v))
	}

	// Platforms arrive as repeated streamingPlatforms[] keys, repeated bare
	// keys, one JSON-encoded array, or one bare value.
	for _, key := range []string{"streamingPlatforms[]", "streamingPlatforms"} {
		if vals, ok := values[key]; ok {
			in.Platforms = normalizePlatforms(vals)
			in.platformsSet = true
			break
		}
	}

	if err := newValidationError(violations); err != nil {
		return nil, err
	}
	return in, nil
}

// NormalizeJSON builds a MovieInput from one JSON object, the shape bulk
// import submits. Field rules are identical to NormalizeForm.
func NormalizeJSON(raw []byte) (*MovieInput, error) {
	var rec struct {
		Title         *string         `json:"title"`
		Description   *string         `json:"description"`
		ReleaseYear   json.RawMessage `json:"releaseYear"`
		Duration      *string         `json:"duration"`
		Type          *string         `json:"type"`
		Seasons       *int            `json:"totalSeasons"`
		Episodes      *int            `json:"totalEpisodes"`
		Rating        *float64        `json:"rating"`
		IMDBRating    *float64        `json:"imdbRating"`
		Director      *string         `json:"director"`
		Quality       *string         `json:"quality"`
		Status        *string         `json:"status"`
		Featured      *bool           `json:"featured"`
		TrailerURL    *string         `json:"trailerUrl"`
		Poster        *string         `json:"poster"`
		PosterURL     *string         `json:"posterUrl"`
		Thumbnail     *string         `json:"thumbnail"`
		MetaTitle     *string         `json:"metaTitle"`
		MetaDesc      *string         `json:"metaDescription"`
		Category      json.RawMessage `json:"category"`
		Genres        json.RawMessage `json:"genres"`
		Cast          *FlexStrings    `json:"cast"`
		Languages     *FlexStrings    `json:"languages"`
		Screenshots   *FlexStrings    `json:"screenshots"`
		Tags          *FlexStrings    `json:"tags"`
		MetaKeywords  *FlexStrings    `json:"metaKeywords"`
		Platforms     json.RawMessage `json:"streamingPlatforms"`
		DownloadLinks json.RawMessage `json:"downloadLinks"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &ValidationError{Violations: []string{"record is not a JSON object"}}
	}

	in := &MovieInput{
		Title:       trimPtr(rec.Title),
		Description: trimPtr(rec.Description),
		Duration:    trimPtr(rec.Duration),
		Type:        trimPtr(rec.Type),
		Seasons:     rec.Seasons,
		Episodes:    rec.Episodes,
		Rating:      rec.Rating,
		IMDBRating:  rec.IMDBRating,
		Director:    trimPtr(rec.Director),
		Quality:     trimPtr(rec.Quality),
		Status:      trimPtr(rec.Status),
		Featured:    rec.Featured,
		TrailerURL:  trimPtr(rec.TrailerURL),
		Poster:      trimPtr(rec.Poster),
		PosterURL:   trimPtr(rec.PosterURL),
		Thumbnail:   trimPtr(rec.Thumbnail),
		MetaTitle:   trimPtr(rec.MetaTitle),
		MetaDesc:    trimPtr(rec.MetaDesc),
	}
	var violations []string

	if len(rec.ReleaseYear) > 0 {
		year, ok := decodeFlexInt(rec.ReleaseYear)
		if !ok {
			violations = append(violations, "releaseYear must be an integer")
		} else {
			in.ReleaseYear = &year
		}
	}
	if len(rec.Category) > 0 {
		ref, ok := decodeFlexScalar(rec.Category)
		if !ok {
			violations = append(violations, "category must be an id, slug or name")
		} else {
			in.CategoryRef = &ref
		}
	}
	if len(rec.Genres) > 0 {
		genres, err := decodeStringArrayJSON(rec.Genres)
		if err != nil {
			violations = append(violations, "genres must be a JSON array")
		} else {
			in.Genres = genres
		}
	}
	if len(rec.DownloadLinks) > 0 {
		links, errs := decodeDownloadLinksJSON(rec.DownloadLinks)
		violations = append(violations, errs...)
		in.DownloadLinks = links
	}
	if rec.Cast != nil {
		in.Cast = []string(*rec.Cast)
	}
	if rec.Languages != nil {
		in.Languages = []string(*rec.Languages)
	}
	if rec.Screenshots != nil {
		in.Screenshots = dropEmpty([]string(*rec.Screenshots))
	}
	if rec.Tags != nil {
		in.Tags = dropEmpty([]string(*rec.Tags))
	}
	if rec.MetaKeywords != nil {
		in.MetaKeywords = dropEmpty([]string(*rec.MetaKeywords))
	}
	if len(rec.Platforms) > 0 {
		var flex FlexStrings
		if err := json.Unmarshal(rec.Platforms, &flex); err != nil {
			flex = nil // lenient: malformed input means no platforms
		}
		in.Platforms = normalizePlatforms(flex)
		in.platformsSet = true
	}

	if err := newValidationError(violations); err != nil {
		return nil, err
	}
	return in, nil
}

// ----- field helpers -----

func formString(values url.Values, key string) *string {
	if _, ok := values[key]; !ok {
		return nil
	}
	v := strings.TrimSpace(values.Get(key))
	return &v
}

func formInt(values url.Values, key string, violations *[]string) *int {
	v := formString(values, key)
	if v == nil || *v == "" {
		return nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		*violations = append(*violations, key+" must be an integer")
		return nil
	}
	return &n
}

func formFloat(values url.Values, key string, violations *[]string) *float64 {
	v := formString(values, key)
	if v == nil || *v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		*violations = append(*violations, key+" must be a number")
		return nil
	}
	return &f
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, strings.TrimSpace(it))
	}
	return out
}

func dropEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}

// decodeStringArray strictly decodes a JSON-encoded array of strings.
func decodeStringArray(s string) ([]string, error) {
	var arr []string
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil, err
	}
	return trimAll(arr), nil
}

func decodeStringArrayJSON(raw json.RawMessage) ([]string, error) {
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return trimAll(arr), nil
	}
	// A JSON string holding an encoded array is also accepted.
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return decodeStringArray(s)
}

// flexibleList tries a JSON array first and falls back to comma splitting.
func flexibleList(s string) []string {
	if arr, err := decodeStringArray(s); err == nil {
		return arr
	}
	return splitFlexible(s)
}

func splitFlexible(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return trimAll(strings.Split(s, ","))
}

// normalizePlatforms filters values down to known platform keys. One value
// that looks like a JSON array is expanded; a malformed array yields an
// empty list rather than an error.
func normalizePlatforms(vals []string) []string {
	if len(vals) == 1 {
		s := strings.TrimSpace(vals[0])
		if strings.HasPrefix(s, "[") {
			var arr []string
			if err := json.Unmarshal([]byte(s), &arr); err != nil {
				return []string{}
			}
			vals = arr
		}
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.ToLower(strings.TrimSpace(v))
		if model.StreamingPlatforms[v] {
			out = append(out, v)
		}
	}
	return out
}

func decodeDownloadLinks(s string) ([]model.DownloadLink, []string) {
	return decodeDownloadLinksJSON(json.RawMessage(s))
}

// decodeDownloadLinksJSON strictly decodes the download list and validates
// each entry: url is required, quality must be a known download quality.
func decodeDownloadLinksJSON(raw json.RawMessage) ([]model.DownloadLink, []string) {
	var links []model.DownloadLink
	if err := json.Unmarshal(raw, &links); err != nil {
		// Accept a doubly-encoded array (JSON string containing JSON).
		var s string
		if err2 := json.Unmarshal(raw, &s); err2 != nil || json.Unmarshal([]byte(s), &links) != nil {
			return nil, []string{"downloadLinks must be a JSON array"}
		}
	}
	var violations []string
	for i, l := range links {
		if strings.TrimSpace(l.URL) == "" {
			violations = append(violations, fmt.Sprintf("downloadLinks[%d].url is required", i))
		}
		if !model.DownloadQualities[l.Quality] {
			violations = append(violations, fmt.Sprintf("downloadLinks[%d].quality %q is not allowed", i, l.Quality))
		}
	}
	if violations != nil {
		return nil, violations
	}
	return links, nil
}

func decodeFlexInt(raw json.RawMessage) (int, bool) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func decodeFlexScalar(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}
