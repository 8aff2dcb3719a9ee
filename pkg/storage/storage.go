// Package storage persists uploaded files. Backends: local filesystem and
// S3-compatible object storage (MinIO, R2).
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInvalidPath rejects keys escaping the storage root
var ErrInvalidPath = errors.New("invalid storage path")

// Storage blob store for uploaded files
type Storage interface {
	// Upload writes r under path and returns the stored path.
	// size may be -1 when unknown.
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)

	// Delete removes the file at path. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path
	URL(path string) string

	// Name provider name (local, s3)
	Name() string
}

// cleanPath normalizes separators and rejects traversal
func cleanPath(path string) (string, error) {
	path = strings.TrimLeft(strings.ReplaceAll(path, "\\", "/"), "/")
	if path == "" {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	return path, nil
}
