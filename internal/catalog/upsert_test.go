package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviesmod/movie-catalog/internal/model"
)

// fakeMovieStore is an in-memory MovieStore.
type fakeMovieStore struct {
	movies map[uint64]*model.Movie
	nextID uint64
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{movies: map[uint64]*model.Movie{}, nextID: 1}
}

func (s *fakeMovieStore) FindByID(_ context.Context, id uint64) (*model.Movie, error) {
	m, ok := s.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *fakeMovieStore) SlugTaken(_ context.Context, slug string, excludeID uint64) (bool, error) {
	for id, m := range s.movies {
		if m.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeMovieStore) Create(_ context.Context, m *model.Movie) error {
	m.ID = s.nextID
	s.nextID++
	cp := *m
	s.movies[m.ID] = &cp
	return nil
}

func (s *fakeMovieStore) Update(_ context.Context, m *model.Movie) error {
	cp := *m
	s.movies[m.ID] = &cp
	return nil
}

// fakeCategoryStore resolves from a fixed category list.
type fakeCategoryStore struct {
	cats []*model.Category
}

func (s *fakeCategoryStore) FindByID(_ context.Context, id uint64) (*model.Category, error) {
	for _, c := range s.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeCategoryStore) FindByKey(_ context.Context, key string) (*model.Category, error) {
	for _, c := range s.cats {
		if c.Slug == key {
			return c, nil
		}
	}
	for _, c := range s.cats {
		if c.Name == key || c.Slug == key {
			return c, nil
		}
	}
	return nil, nil
}

func newTestService() (*Service, *fakeMovieStore) {
	movies := newFakeMovieStore()
	cats := &fakeCategoryStore{cats: []*model.Category{
		{ID: 1, Name: "Bollywood", Slug: "bollywood"},
		{ID: 2, Name: "Hollywood", Slug: "hollywood"},
	}}
	return NewService(movies, cats), movies
}

func validInput() *MovieInput {
	title := "Test Movie"
	desc := "A test movie description"
	year := 2021
	cat := "bollywood"
	return &MovieInput{
		Title:       &title,
		Description: &desc,
		ReleaseYear: &year,
		CategoryRef: &cat,
		Genres:      []string{"Action"},
	}
}

func TestCreateHappyPath(t *testing.T) {
	svc, _ := newTestService()
	m, err := svc.Create(context.Background(), validInput(), "/uploads/p.jpg")
	require.NoError(t, err)

	assert.Equal(t, "test-movie", m.Slug)
	assert.Equal(t, "/uploads/p.jpg", m.Poster)
	assert.Equal(t, uint64(1), m.CategoryID)
	assert.Equal(t, "Bollywood", m.CategoryName)
	// Unsubmitted fields take their defaults.
	assert.Equal(t, model.TypeMovie, m.Type)
	assert.Equal(t, "1080p", m.Quality)
	assert.Equal(t, model.StatusPublished, m.Status)
}

func TestCreateCollectsAllViolations(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), &MovieInput{}, "")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Violations, "Title is required")
	assert.Contains(t, vErr.Violations, "Description is required")
	assert.Contains(t, vErr.Violations, "Valid release year is required")
	assert.Contains(t, vErr.Violations, "At least one genre is required")
	assert.Contains(t, vErr.Violations, "Valid category is required")
	assert.Contains(t, vErr.Violations, "Poster is required")
}

func TestCreateRejectsBadYear(t *testing.T) {
	svc, _ := newTestService()
	in := validInput()
	badYear := 1800
	in.ReleaseYear = &badYear
	_, err := svc.Create(context.Background(), in, "/p.jpg")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Violations, "Valid release year is required")
}

func TestCreatePosterPrecedence(t *testing.T) {
	svc, _ := newTestService()
	in := validInput()
	posterURL := "https://cdn/p.jpg"
	in.PosterURL = &posterURL

	// Uploaded file wins over posterUrl.
	m, err := svc.Create(context.Background(), in, "/uploads/upload.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/upload.jpg", m.Poster)

	// Without a file the submitted posterUrl is used.
	in2 := validInput()
	title2 := "Another Movie"
	in2.Title = &title2
	in2.PosterURL = &posterURL
	m2, err := svc.Create(context.Background(), in2, "")
	require.NoError(t, err)
	assert.Equal(t, posterURL, m2.Poster)
}

func TestCreateUnknownCategory(t *testing.T) {
	svc, _ := newTestService()
	in := validInput()
	ref := "nollywood"
	in.CategoryRef = &ref
	_, err := svc.Create(context.Background(), in, "/p.jpg")

	require.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateSlugCollision(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), validInput(), "/p.jpg")
	require.NoError(t, err)

	// Equivalent title (case/whitespace) lands on the same slug.
	in := validInput()
	title := "  test   MOVIE "
	in.Title = &title
	_, err = svc.Create(context.Background(), in, "/p.jpg")
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestUpdatePartialMerge(t *testing.T) {
	svc, store := newTestService()
	m, err := svc.Create(context.Background(), validInput(), "/p.jpg")
	require.NoError(t, err)

	rating := 8.5
	got, err := svc.Update(context.Background(), m.ID, &MovieInput{Rating: &rating}, "")
	require.NoError(t, err)

	assert.Equal(t, 8.5, got.Rating)
	// Everything not submitted is untouched, including the slug.
	assert.Equal(t, m.Title, got.Title)
	assert.Equal(t, m.Slug, got.Slug)
	assert.Equal(t, m.Poster, got.Poster)
	assert.Equal(t, m.Genres, store.movies[m.ID].Genres)
}

func TestUpdateSlugOnlyChangesWithTitle(t *testing.T) {
	svc, _ := newTestService()
	m, err := svc.Create(context.Background(), validInput(), "/p.jpg")
	require.NoError(t, err)

	// Same title resubmitted: slug stays.
	sameTitle := "Test Movie"
	got, err := svc.Update(context.Background(), m.ID, &MovieInput{Title: &sameTitle}, "")
	require.NoError(t, err)
	assert.Equal(t, m.Slug, got.Slug)

	// New title: slug re-derives.
	newTitle := "Renamed Movie"
	got, err = svc.Update(context.Background(), m.ID, &MovieInput{Title: &newTitle}, "")
	require.NoError(t, err)
	assert.Equal(t, "renamed-movie", got.Slug)
}

func TestUpdateMissingMovie(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Update(context.Background(), 99, validInput(), "")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestUpdateEmptyPlatformsClears(t *testing.T) {
	svc, _ := newTestService()
	in := validInput()
	in.Platforms = []string{"netflix"}
	in.platformsSet = true
	m, err := svc.Create(context.Background(), in, "/p.jpg")
	require.NoError(t, err)
	require.Equal(t, []string{"netflix"}, m.Platforms)

	// Submitting platforms that normalize to empty clears the stored list.
	got, err := svc.Update(context.Background(), m.ID, &MovieInput{
		Platforms:    []string{},
		platformsSet: true,
	}, "")
	require.NoError(t, err)
	assert.Empty(t, got.Platforms)
}

func TestBulkImportPartialSuccess(t *testing.T) {
	svc, _ := newTestService()
	records := []json.RawMessage{
		json.RawMessage(`{"title":"Good One","description":"desc","releaseYear":2020,"genres":["Action"],"category":"bollywood","posterUrl":"https://cdn/1.jpg"}`),
		json.RawMessage(`{"title":"Bad One"}`),
		json.RawMessage(`{"title":"Good Two","description":"desc","releaseYear":2021,"genres":["Drama"],"category":"hollywood","posterUrl":"https://cdn/2.jpg"}`),
	}
	res := svc.BulkImport(context.Background(), records)

	require.Len(t, res.Succeeded, 2)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "Bad One", res.Failed[0].Title)
	assert.NotEmpty(t, res.Failed[0].Error)

	// Order of application is the submission order.
	assert.Equal(t, "Good One", res.Succeeded[0].Title)
	assert.Equal(t, "Good Two", res.Succeeded[1].Title)
}

func TestBulkImportResolvesNumericCategory(t *testing.T) {
	svc, _ := newTestService()
	raw := json.RawMessage(`{"title":"By Id","description":"desc","releaseYear":2020,"genres":["Action"],"category":` + strconv.Itoa(2) + `,"posterUrl":"https://cdn/x.jpg"}`)
	res := svc.BulkImport(context.Background(), []json.RawMessage{raw})

	require.Len(t, res.Succeeded, 1)
	assert.Equal(t, uint64(2), res.Succeeded[0].CategoryID)
	assert.Equal(t, "Hollywood", res.Succeeded[0].CategoryName)
}
