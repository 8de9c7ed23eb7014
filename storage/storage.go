// Package storage holds uploaded media on local disk and hands out the
// public URLs the menu records reference.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the client-facing size cap. Oversized files are rejected
// from the declared header size alone, before any byte is read or written.
const MaxUploadSize = 1 << 20 // 1 MB

var ErrTooLarge = fmt.Errorf("file exceeds the %d byte upload limit", MaxUploadSize)

var ErrBadPath = errors.New("path escapes the storage directory")

type Store struct {
	dir     string
	baseURL string
}

// New creates the storage root if needed. baseURL is the URL prefix the
// files are served under, e.g. "/media".
func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir returns the storage root, for wiring the static file route
func (s *Store) Dir() string {
	return s.dir
}

type UploadResult struct {
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
}

// Save stores an uploaded file under a random name inside folder, keeping
// the original extension. The size check happens first.
func (s *Store) Save(fh *multipart.FileHeader, folder string) (UploadResult, error) {
	if fh.Size > MaxUploadSize {
		return UploadResult{}, ErrTooLarge
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
	rel := path.Join(cleanFolder(folder), name)

	dst := filepath.Join(s.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return UploadResult{}, err
	}

	src, err := fh.Open()
	if err != nil {
		return UploadResult{}, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return UploadResult{}, err
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return UploadResult{}, err
	}

	return UploadResult{Path: rel, PublicURL: s.baseURL + "/" + rel}, nil
}

// Delete removes a previously stored file by its relative path
func (s *Store) Delete(rel string) error {
	clean := path.Clean("/" + rel)[1:] // strip any traversal
	if clean == "" || clean == "." {
		return ErrBadPath
	}
	return os.Remove(filepath.Join(s.dir, filepath.FromSlash(clean)))
}

func cleanFolder(folder string) string {
	clean := path.Clean("/" + folder)[1:]
	if clean == "." {
		return ""
	}
	return clean
}
