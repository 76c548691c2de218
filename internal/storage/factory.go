package storage

import (
	"context"
	"fmt"

	"github.com/veronicaguo/electricitymap-contrib/internal/config"
)

// DeploymentMode represents the deployment environment
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// NewSnapshotStore creates a snapshot store based on deployment mode and
// configuration.
func NewSnapshotStore(ctx context.Context, mode DeploymentMode, cfg *config.Config) (SnapshotStore, error) {
	switch mode {
	case DeploymentLocal:
		dir := cfg.LocalSnapshotDir
		if dir == "" {
			dir = "snapshots"
		}
		store, err := NewLocalSnapshotStore(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local snapshot store: %w", err)
		}
		return store, nil

	case DeploymentGCS:
		store, err := NewGCSSnapshotStore(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS snapshot store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", mode)
	}
}
