// Package media provides the object stores for item photos: a local disk
// store for single-node deployments and an S3 store for hosted ones.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vtcwoerden/materiaal-api/internal/application/ports"
)

var _ ports.MediaStore = (*LocalStore)(nil)

// LocalStore writes photo objects under a directory served as static files.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore builds a disk store. baseURL is the public prefix the
// directory is served under, e.g. "/media".
func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Put writes the object and returns its public URL. Keys use forward slashes
// and never escape the store directory.
func (s *LocalStore) Put(key, contentType string, data []byte) (string, error) {
	rel, err := safeRel(key)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("media: create dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("media: write object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the object. A missing object is not an error.
func (s *LocalStore) Delete(key string) error {
	rel, err := safeRel(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("media: delete object: %w", err)
	}
	return nil
}

func safeRel(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if key == "" || filepath.IsAbs(rel) || strings.Contains(key, "..") {
		return "", fmt.Errorf("media: invalid key %q", key)
	}
	return rel, nil
}
