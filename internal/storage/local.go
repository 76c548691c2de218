package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LocalSnapshotStore keeps snapshots on the local file system.
type LocalSnapshotStore struct {
	baseDir string
}

// NewLocalSnapshotStore creates a local store rooted at baseDir.
func NewLocalSnapshotStore(baseDir string) (*LocalSnapshotStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalSnapshotStore{baseDir: baseDir}, nil
}

// Close is a no-op for local storage.
func (l *LocalSnapshotStore) Close() error {
	return nil
}

// StoreSnapshot writes one snapshot file under the timestamped folder.
func (l *LocalSnapshotStore) StoreSnapshot(ctx context.Context, data []byte, filename string, timestamp time.Time) (string, error) {
	relPath := filepath.Join(SnapshotFolderPath(timestamp), filename)
	fullPath := filepath.Join(l.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot file %s: %w", relPath, err)
	}
	return relPath, nil
}

// GetFile reads a stored file by its store-relative path.
func (l *LocalSnapshotStore) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	fullPath := filepath.Join(l.baseDir, filePath)

	// Paths must stay inside the store
	absBase, _ := filepath.Abs(l.baseDir)
	absPath, _ := filepath.Abs(fullPath)
	if !strings.HasPrefix(absPath, absBase) {
		return nil, fmt.Errorf("invalid snapshot path %s", filePath)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// ListSnapshots lists snapshot pages (index.html files), newest first.
func (l *LocalSnapshotStore) ListSnapshots(ctx context.Context, limit int) ([]string, error) {
	var paths []string

	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.Name() == "index.html" {
			relPath, _ := filepath.Rel(l.baseDir, path)
			paths = append(paths, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk snapshot directory: %w", err)
	}

	// Folder names sort chronologically, so reverse for newest first
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))

	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths, nil
}

// DeleteOldSnapshots removes snapshot folders older than the retention period.
func (l *LocalSnapshotStore) DeleteOldSnapshots(ctx context.Context, retention time.Duration) error {
	cutoff := time.Now().Add(-retention)

	entries, err := filepath.Glob(filepath.Join(l.baseDir, "*", "*", "*", "MixSnapshot-*"))
	if err != nil {
		return fmt.Errorf("failed to enumerate snapshots: %w", err)
	}
	for _, dir := range entries {
		info, err := os.Stat(dir)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("failed to delete old snapshot %s: %w", dir, err)
			}
		}
	}
	return nil
}
