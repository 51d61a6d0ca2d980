package catalog

import (
	"errors"
	"strings"
)

// ErrMovieNotFound indicates the referenced movie does not exist.
var ErrMovieNotFound = errors.New("movie not found")

// ErrCategoryNotFound indicates a category reference (id, slug or name)
// matched nothing.
var ErrCategoryNotFound = errors.New("category not found")

// ErrSlugExists indicates the derived slug collides with an existing movie.
var ErrSlugExists = errors.New("a movie with this title already exists")

// ValidationError reports every violated constraint of a submission at once,
// so the client sees the full list rather than the first failure.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// newValidationError returns nil when there are no violations.
func newValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
