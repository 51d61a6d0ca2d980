package model

import "time"

// AdPositions lists the page locations an ad slot can occupy.
var AdPositions = map[string]bool{
	"header": true, "sidebar": true, "footer": true, "between-movies": true,
	"movie-detail-top": true, "movie-detail-bottom": true,
}

// Dimensions holds the optional rendered size of an ad slot. The values are
// free-form strings ("300", "100%") exactly as entered in the back office.
type Dimensions struct {
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// AdSlot mirrors the `ad_slots` table. AdCode is opaque markup pasted by the
// admin; the server never interprets it. Public retrieval returns only active
// slots sorted by Order.
type AdSlot struct {
	ID         uint64     `json:"id"`
	Name       string     `json:"name"`
	Position   string     `json:"position"`
	AdCode     string     `json:"adCode"`
	IsActive   bool       `json:"isActive"`
	Dimensions Dimensions `json:"dimensions"`
	Order      int        `json:"order"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
