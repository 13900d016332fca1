package storage

import (
	"context"
	"fmt"

	"ifc-reuse-backend/internal/config"
)

// NewFromConfig builds the store selected by STORAGE_TYPE.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageType {
	case "memory":
		return NewMemoryStore(), nil
	case "s3":
		return NewS3Store(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
	case "filesystem", "":
		if cfg.StorageRoot == "" {
			return nil, fmt.Errorf("filesystem storage requires STORAGE_ROOT to be set")
		}
		return NewFileSystemStore(cfg.StorageRoot)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.StorageType)
	}
}
