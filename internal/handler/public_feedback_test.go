package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFeedback(t *testing.T) {
	valid := func() feedbackReq {
		return feedbackReq{
			MovieID: 1,
			Name:    "Visitor",
			Email:   "visitor@example.com",
			Rating:  4,
			Comment: "Really enjoyed this one.",
		}
	}

	t.Run("valid submission", func(t *testing.T) {
		req := valid()
		assert.Empty(t, validateFeedback(&req))
	})

	t.Run("trims before validating", func(t *testing.T) {
		req := valid()
		req.Name = "  Visitor  "
		req.Comment = "  Really enjoyed this one.  "
		assert.Empty(t, validateFeedback(&req))
		assert.Equal(t, "Visitor", req.Name)
	})

	t.Run("missing movie", func(t *testing.T) {
		req := valid()
		req.MovieID = 0
		assert.Contains(t, validateFeedback(&req), "movie is required")
	})

	t.Run("name bounds", func(t *testing.T) {
		req := valid()
		req.Name = ""
		assert.NotEmpty(t, validateFeedback(&req))

		req = valid()
		req.Name = strings.Repeat("x", 101)
		assert.NotEmpty(t, validateFeedback(&req))
	})

	t.Run("bad email", func(t *testing.T) {
		req := valid()
		req.Email = "not-an-email"
		assert.Contains(t, validateFeedback(&req), "a valid email is required")
	})

	t.Run("rating out of range", func(t *testing.T) {
		for _, r := range []int{0, 6, -1} {
			req := valid()
			req.Rating = r
			assert.Contains(t, validateFeedback(&req), "rating must be between 1 and 5")
		}
	})

	t.Run("comment bounds", func(t *testing.T) {
		req := valid()
		req.Comment = "short"
		assert.NotEmpty(t, validateFeedback(&req))

		req = valid()
		req.Comment = strings.Repeat("y", 1001)
		assert.NotEmpty(t, validateFeedback(&req))
	})

	t.Run("collects every violation", func(t *testing.T) {
		req := feedbackReq{}
		assert.Len(t, validateFeedback(&req), 5)
	})
}
