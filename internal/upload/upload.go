// Package upload stores poster images on local disk and hands back their
// public URL path.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrTooLarge signals an upload over the configured size ceiling.
var ErrTooLarge = errors.New("file exceeds the maximum allowed size")

// ErrBadType signals a file extension outside the image allowlist.
var ErrBadType = errors.New("only image files are allowed")

// Store writes validated poster files under Dir and serves them at
// /uploads/<name>. Filenames are random so uploads never collide or
// overwrite each other.
type Store struct {
	Dir      string
	MaxBytes int64
	Allowed  []string // lowercase extensions without the dot
}

// NewStore creates the upload directory if needed.
func NewStore(dir string, maxBytes int64, allowed []string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir, MaxBytes: maxBytes, Allowed: allowed}, nil
}

// SavePoster validates and writes one uploaded image, returning its public
// path ("/uploads/<random>.<ext>").
func (s *Store) SavePoster(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.MaxBytes {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !s.extAllowed(ext) {
		return "", ErrBadType
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + "." + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// The header size can lie; cap the copy as well.
	n, err := io.Copy(dst, io.LimitReader(src, s.MaxBytes+1))
	if err != nil {
		return "", err
	}
	if n > s.MaxBytes {
		_ = os.Remove(dst.Name())
		return "", ErrTooLarge
	}
	return "/uploads/" + name, nil
}

func (s *Store) extAllowed(ext string) bool {
	for _, a := range s.Allowed {
		if ext == a {
			return true
		}
	}
	return false
}
