package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/veronicaguo/electricitymap-contrib/internal/logger"
)

// GCSSnapshotStore keeps snapshots in a Google Cloud Storage bucket.
type GCSSnapshotStore struct {
	client *storage.Client
	bucket string
}

// NewGCSSnapshotStore creates a GCS-backed store.
func NewGCSSnapshotStore(ctx context.Context, bucketName string) (*GCSSnapshotStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSSnapshotStore{client: client, bucket: bucketName}, nil
}

// Close closes the GCS client.
func (g *GCSSnapshotStore) Close() error {
	return g.client.Close()
}

// StoreSnapshot uploads one snapshot file under the timestamped folder.
func (g *GCSSnapshotStore) StoreSnapshot(ctx context.Context, data []byte, filename string, timestamp time.Time) (string, error) {
	objectPath := SnapshotFolderPath(timestamp) + "/" + filename
	logger.Debugf("Storing snapshot to GCS: gs://%s/%s", g.bucket, objectPath)

	obj := g.client.Bucket(g.bucket).Object(objectPath)
	writer := obj.NewWriter(ctx)
	writer.ContentType = GetContentType(filename)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": timestamp.Format(time.RFC3339),
		"filename":     filename,
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write snapshot to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS upload: %w", err)
	}
	return objectPath, nil
}

// GetFile retrieves a stored file by object path.
func (g *GCSSnapshotStore) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	obj := g.client.Bucket(g.bucket).Object(filePath)
	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %s: %w", filePath, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return data, nil
}

// ListSnapshots lists snapshot pages in the bucket, newest first.
func (g *GCSSnapshotStore) ListSnapshots(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var paths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/index.html") {
			paths = append(paths, attrs.Name)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(paths)))

	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths, nil
}

// DeleteOldSnapshots removes objects older than the retention period.
func (g *GCSSnapshotStore) DeleteOldSnapshots(ctx context.Context, retention time.Duration) error {
	cutoff := time.Now().Add(-retention)
	bucket := g.client.Bucket(g.bucket)
	it := bucket.Objects(ctx, &storage.Query{})

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list objects: %w", err)
		}
		if attrs.Created.Before(cutoff) {
			if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
				logger.Warnf("Failed to delete old snapshot object %s: %v", attrs.Name, err)
			}
		}
	}
	return nil
}
