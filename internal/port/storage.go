package port

import (
	"context"
	"time"
)

// Storage defines the opaque blob store operations this subsystem needs:
// handing out short-lived download locators and burning blobs on expiry.
type Storage interface {
	InitBucket(bucket string) error
	GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error)
	FileExists(ctx context.Context, bucket, fileKey string) (bool, error)
	RemoveFile(ctx context.Context, bucket, fileKey string) error
}
