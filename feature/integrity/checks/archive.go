package checks

import (
	"context"
	"fmt"

	"payment-relay/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// LogPrefix is the root of archived exchanges.
const LogPrefix = "logs/"

// ArchiveReport describes the archive bucket.
type ArchiveReport struct {
	Bucket  string `json:"bucket"`
	Exists  bool   `json:"exists"`
	HasLogs bool   `json:"has_logs"`
}

// CheckArchive reports whether the bucket exists and holds any exchange.
func CheckArchive(ctx context.Context, client storage.Client, bucket string) (*ArchiveReport, error) {
	report := &ArchiveReport{Bucket: bucket}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.Exists = exists
	if !exists {
		return report, nil
	}

	opts := minio.ListObjectsOptions{
		Prefix:    LogPrefix,
		Recursive: true,
		MaxKeys:   1,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", LogPrefix, obj.Err)
		}
		report.HasLogs = true
		break
	}
	return report, nil
}

// FixArchive creates the bucket.
func FixArchive(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	logger.Info("Creating archive bucket", zap.String("bucket", bucket))
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}
