package model

import "time"

// Category mirrors the `categories` table. Slug is derived from Name and is
// unique. Order controls display sorting; lower values come first.
type Category struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	MovieCount  int       `json:"movieCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
