// Package storage implements blob storage for user uploaded files,
// currently only member avatars.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
)

// BlobStore stores uploaded files and returns a public URL for them.
type BlobStore interface {
	Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
}

// GCS stores blobs in a Google Cloud Storage bucket. It assumes
// Application Default Credentials are configured.
type GCS struct {
	client *gcs.Client
	bucket string
}

// NewGCS connects to Google Cloud Storage.
func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCS{client: client, bucket: bucket}, nil
}

// Upload writes the blob to the bucket and returns its public URL.
func (g *GCS) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy blob to GCS writer: %w", err)
	}

	// Close finalizes the upload
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, name), nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
