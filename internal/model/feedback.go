package model

import "time"

// Feedback moderation states. Public submissions always start pending.
const (
	FeedbackPending  = "pending"
	FeedbackApproved = "approved"
	FeedbackRejected = "rejected"
)

// Feedback mirrors the `feedback` table. IPAddress and UserAgent are audit
// fields and are never included in public listings.
type Feedback struct {
	ID         uint64    `json:"id"`
	MovieID    uint64    `json:"movie"`
	MovieTitle string    `json:"movieTitle,omitempty"`
	MovieSlug  string    `json:"movieSlug,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Status     string    `json:"status"`
	IPAddress  string    `json:"-"`
	UserAgent  string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
