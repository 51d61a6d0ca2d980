// Package repository contains the data access layer. Every repository owns
// its table's SQL and reports missing rows through sentinel errors so
// handlers can map them to HTTP statuses without string matching.
package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrMovieNotFound indicates that a movie was not located in the DB.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrCategoryNotFound indicates that a category was not located in the DB.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists indicates a duplicate category name or slug.
	ErrCategoryExists = errors.New("category already exists")
	// ErrFeedbackNotFound indicates that a feedback entry was not located.
	ErrFeedbackNotFound = errors.New("feedback not found")
	// ErrAdSlotNotFound indicates that an ad slot was not located in the DB.
	ErrAdSlotNotFound = errors.New("ad slot not found")
	// ErrAdSlotExists indicates a duplicate ad slot name.
	ErrAdSlotExists = errors.New("ad slot already exists")
)

// CategoryInUseError blocks category deletion while movies still reference
// it. The referential guard lives here, at the application layer, not in the
// database.
type CategoryInUseError struct {
	Count int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("Cannot delete category. It has %d movies associated with it.", e.Count)
}
