package media

import (
	"context"
	"log"

	"github.com/klyra-app/ephemera-go/internal/port"
)

type mediaBurnerSrv struct {
	strg   port.Storage
	bucket string
}

// compile-time check: *mediaBurnerSrv must satisfy port.MediaBurner
var _ port.MediaBurner = (*mediaBurnerSrv)(nil)

// NewMediaBurner constructs a MediaBurner implementation.
func NewMediaBurner(strg port.Storage, bucket string) port.MediaBurner {
	return &mediaBurnerSrv{strg: strg, bucket: bucket}
}

// BurnMedia removes the blob of an already-expired media item from storage.
// The registry row was soft-deleted before this task was enqueued, so there
// is nothing to roll back; a missing object means an earlier attempt already
// burned it.
func (s *mediaBurnerSrv) BurnMedia(ctx context.Context, in port.BurnMediaInput) error {
	exists, err := s.strg.FileExists(ctx, s.bucket, in.ObjectKey)
	if err != nil {
		return err
	}
	if !exists {
		log.Printf("blob %q of media #%s already gone", in.ObjectKey, in.MediaID)
		return nil
	}

	if err := s.strg.RemoveFile(ctx, s.bucket, in.ObjectKey); err != nil {
		return err
	}

	log.Printf("burned blob %q of media #%s", in.ObjectKey, in.MediaID)
	return nil
}
