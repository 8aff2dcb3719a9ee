package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS3Storage_URL(t *testing.T) {
	tests := []struct {
		name    string
		storage *S3Storage
		path    string
		want    string
	}{
		{
			name:    "public url",
			storage: &S3Storage{bucket: "media", publicURL: "https://cdn.example.com", endpoint: "minio:9000"},
			path:    "/profiles/a.png",
			want:    "https://cdn.example.com/profiles/a.png",
		},
		{
			name:    "endpoint without ssl",
			storage: &S3Storage{bucket: "media", endpoint: "minio:9000"},
			path:    "profiles/a.png",
			want:    "http://minio:9000/media/profiles/a.png",
		},
		{
			name:    "endpoint with ssl",
			storage: &S3Storage{bucket: "media", endpoint: "s3.example.com", useSSL: true},
			path:    "profiles/a.png",
			want:    "https://s3.example.com/media/profiles/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.storage.URL(tt.path))
			assert.Equal(t, "s3", tt.storage.Name())
		})
	}
}

// invalid paths are rejected before any request reaches the bucket
func TestS3Storage_RejectsInvalidPath(t *testing.T) {
	s := &S3Storage{bucket: "media", endpoint: "minio:9000"}
	ctx := context.Background()

	_, err := s.Upload(ctx, "../escape.png", strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = s.Upload(ctx, "", strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, ErrInvalidPath)

	assert.ErrorIs(t, s.Delete(ctx, "a/../../b"), ErrInvalidPath)
}
