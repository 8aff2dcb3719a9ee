package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores files under a base directory
type LocalStorage struct {
	basePath string
	baseURL  string
}

// LocalStorageConfig local backend settings
type LocalStorageConfig struct {
	BasePath string // ./storage/public
	BaseURL  string // http://localhost:8000/storage
}

// NewLocalStorage creates the base directory and returns a LocalStorage
func NewLocalStorage(config LocalStorageConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: config.BasePath,
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
	}, nil
}

// Upload writes the file to disk
func (l *LocalStorage) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	path, err := cleanPath(path)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(l.basePath, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return path, nil
}

// Delete removes the file from disk
func (l *LocalStorage) Delete(ctx context.Context, path string) error {
	path, err := cleanPath(path)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(l.basePath, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL public URL of path
func (l *LocalStorage) URL(path string) string {
	return l.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Name provider name
func (l *LocalStorage) Name() string {
	return "local"
}
