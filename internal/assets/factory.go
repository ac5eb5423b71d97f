package assets

import (
	"context"
	"fmt"

	"storyshare/internal/config"
	"storyshare/internal/retry"
	"storyshare/internal/story"
)

// NewSourceFromConfig creates an AssetSource based on the assets config type.
func NewSourceFromConfig(ctx context.Context, cfg config.AssetsConfig, logger story.Logger) (story.AssetSource, error) {
	switch cfg.Type {
	case "embedded", "":
		return NewEmbeddedAssets(), nil
	case "memory":
		return NewMemoryAssets(), nil
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("filesystem assets require root to be set")
		}
		return NewFileSystemAssets(cfg.Root), nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 assets require s3_bucket to be set")
		}
		rc := retry.DefaultConfig()
		if cfg.S3MaxRetries > 0 {
			rc.MaxRetries = cfg.S3MaxRetries
		}
		return NewS3Assets(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Retry:           rc,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown assets type: %s", cfg.Type)
	}
}
