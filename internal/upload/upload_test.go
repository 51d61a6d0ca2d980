package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("poster", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["poster"][0]
}

func newTestStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), maxBytes, []string{"jpeg", "jpg", "png", "gif", "webp"})
	require.NoError(t, err)
	return s
}

func TestSavePoster(t *testing.T) {
	s := newTestStore(t, 1024)
	path, err := s.SavePoster(fileHeader(t, "poster.JPG", []byte("image-bytes")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/uploads/"), "got %q", path)
	assert.True(t, strings.HasSuffix(path, ".jpg"), "got %q", path)

	// The stored file carries the random name, not the client's.
	name := strings.TrimPrefix(path, "/uploads/")
	assert.NotContains(t, name, "poster")
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestSavePosterUniqueNames(t *testing.T) {
	s := newTestStore(t, 1024)
	first, err := s.SavePoster(fileHeader(t, "same.png", []byte("a")))
	require.NoError(t, err)
	second, err := s.SavePoster(fileHeader(t, "same.png", []byte("b")))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSavePosterRejectsExtension(t *testing.T) {
	s := newTestStore(t, 1024)
	_, err := s.SavePoster(fileHeader(t, "payload.exe", []byte("nope")))
	assert.ErrorIs(t, err, ErrBadType)

	_, err = s.SavePoster(fileHeader(t, "noext", []byte("nope")))
	assert.ErrorIs(t, err, ErrBadType)
}

func TestSavePosterRejectsOversize(t *testing.T) {
	s := newTestStore(t, 8)
	_, err := s.SavePoster(fileHeader(t, "big.jpg", bytes.Repeat([]byte("x"), 64)))
	assert.ErrorIs(t, err, ErrTooLarge)
}
