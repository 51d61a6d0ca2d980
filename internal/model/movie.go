// Package model defines the persisted entities of the movie catalog. The
// structs mirror table rows; handlers define their own response shapes where
// the stored form is not suitable for public output.
package model

import "time"

// Movie statuses. New movies default to StatusPublished.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Title types.
const (
	TypeMovie  = "movie"
	TypeSeries = "series"
)

// Qualities lists the accepted values for the movie-level quality field.
var Qualities = map[string]bool{
	"360p": true, "480p": true, "720p": true, "1080p": true, "1440p": true,
	"4K": true, "CAM": true, "HDRip": true, "BluRay": true, "WEB-DL": true,
}

// DownloadQualities lists the accepted values for per-link quality.
var DownloadQualities = map[string]bool{
	"360p": true, "480p": true, "720p": true, "1080p": true, "4K": true,
}

// StreamingPlatforms lists the known platform keys. Unknown keys submitted by
// clients are dropped during normalization, never stored.
var StreamingPlatforms = map[string]bool{
	"netflix": true, "prime": true, "disney": true, "apple": true,
	"hotstar": true, "zee5": true, "sonyliv": true, "youtube": true,
}

// DownloadLink is one entry of a movie's download list. URL is required and
// Quality is constrained to DownloadQualities.
type DownloadLink struct {
	Quality string `json:"quality"`
	Size    string `json:"size,omitempty"`
	URL     string `json:"url"`
}

// Movie mirrors the `movies` table. Slice-valued fields are stored as JSON
// columns except Genres, which lives in the movie_genres table so genre
// filters and group-bys stay plain SQL.
type Movie struct {
	ID            uint64         `json:"id"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description"`
	Poster        string         `json:"poster"`
	PosterURL     string         `json:"posterUrl,omitempty"`
	Thumbnail     string         `json:"thumbnail,omitempty"`
	TrailerURL    string         `json:"trailerUrl,omitempty"`
	ReleaseYear   int            `json:"releaseYear"`
	Duration      string         `json:"duration,omitempty"`
	Type          string         `json:"type"`
	TotalSeasons  int            `json:"totalSeasons"`
	TotalEpisodes int            `json:"totalEpisodes"`
	Rating        float64        `json:"rating"`
	IMDBRating    float64        `json:"imdbRating,omitempty"`
	Genres        []string       `json:"genres"`
	CategoryID    uint64         `json:"category"`
	CategoryName  string         `json:"categoryName,omitempty"`
	CategorySlug  string         `json:"categorySlug,omitempty"`
	Cast          []string       `json:"cast"`
	Director      string         `json:"director,omitempty"`
	Languages     []string       `json:"languages"`
	Quality       string         `json:"quality"`
	DownloadLinks []DownloadLink `json:"downloadLinks"`
	Platforms     []string       `json:"streamingPlatforms"`
	Screenshots   []string       `json:"screenshots"`
	Views         uint64         `json:"views"`
	Featured      bool           `json:"featured"`
	Status        string         `json:"status"`
	Tags          []string       `json:"tags"`
	MetaTitle     string         `json:"metaTitle,omitempty"`
	MetaDesc      string         `json:"metaDescription,omitempty"`
	MetaKeywords  []string       `json:"metaKeywords"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
