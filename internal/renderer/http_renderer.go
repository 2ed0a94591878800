package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type httpRenderer struct {
	cache port.Cache
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) port.HTTPRenderer {
	return &httpRenderer{cache: cache}
}

// RenderSecurityEvents fetches the audit trail either from cache or from the
// wrapped use case. It returns the JSON encoded output and a quoted ETag
// string. Cache entries are looked up per requester, so a miss for anyone
// but the cached requester falls through to the use case and its
// authorisation checks.
func (r *httpRenderer) RenderSecurityEvents(ctx context.Context, lister port.SecurityEventsLister, mediaID, requesterID db.UUID) ([]byte, string, error) {
	raw, err := r.cache.GetSecurityEvents(ctx, mediaID, requesterID)
	etag, errEtag := r.cache.GetEtagSecurityEvents(ctx, mediaID, requesterID)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := lister.ListSecurityEvents(ctx, port.ListSecurityEventsInput{MediaID: mediaID, RequesterID: requesterID})
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	r.cache.SetSecurityEvents(ctx, mediaID, requesterID, raw, out.ValidUntil)
	r.cache.SetEtagSecurityEvents(ctx, mediaID, requesterID, etag, out.ValidUntil)

	return raw, etag, nil
}
