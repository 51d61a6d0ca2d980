package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(3, 20, 45)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, int64(45), p.Total)
	assert.Equal(t, 3, p.Pages)

	// An exact multiple does not add a trailing empty page.
	assert.Equal(t, 2, NewPagination(1, 20, 40).Pages)
	assert.Equal(t, 0, NewPagination(1, 20, 0).Pages)
	assert.Equal(t, 1, NewPagination(1, 20, 1).Pages)
}

func TestIntParam(t *testing.T) {
	assert.Equal(t, 7, intParam("7", 1))
	assert.Equal(t, 1, intParam("", 1))
	assert.Equal(t, 1, intParam("abc", 1))
	assert.Equal(t, -2, intParam("-2", 1))
}
