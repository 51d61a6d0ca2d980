// Package queue defines message payloads exchanged over the message broker.
package queue

// MovieViewedEvent is published when a visitor opens a movie detail page.
// The consumer applies the view count increment and writes an audit line, so
// the read path never blocks on the write.
type MovieViewedEvent struct {
	MovieID  uint64 `json:"movie_id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	ViewedAt string `json:"viewed_at"`
}
