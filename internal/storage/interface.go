package storage

import (
	"context"
	"time"
)

// SnapshotStore persists rendered chart snapshots (HTML pages and PNG images)
// under timestamped folders.
type SnapshotStore interface {
	// Close closes the store
	Close() error

	// StoreSnapshot stores one file of a snapshot taken at the given time
	// and returns the stored path
	StoreSnapshot(ctx context.Context, data []byte, filename string, timestamp time.Time) (string, error)

	// GetFile retrieves a previously stored file by path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListSnapshots lists recent snapshot pages, newest first
	ListSnapshots(ctx context.Context, limit int) ([]string, error)

	// DeleteOldSnapshots removes snapshots older than the retention period
	DeleteOldSnapshots(ctx context.Context, retention time.Duration) error
}
