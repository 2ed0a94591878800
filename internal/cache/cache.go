package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) ([]byte, error) {
	log.Printf("getting events cache entry for media #%s...", mediaID)

	val, err := c.client.Get(ctx, eventsKey(mediaID, requesterID, false)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) (string, error) {
	log.Printf("getting events etag cache entry for media #%s...", mediaID)

	val, err := c.client.Get(ctx, eventsKey(mediaID, requesterID, true)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, data []byte, validUntil time.Time) {
	log.Printf("creating events cache entry for media #%s, valid until %s...", mediaID, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, eventsKey(mediaID, requesterID, false), data, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed for media #%s: %v", mediaID, err)
	}
}

func (c *Cache) SetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, etag string, validUntil time.Time) {
	log.Printf("creating events etag cache entry for media #%s, valid until %s...", mediaID, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, eventsKey(mediaID, requesterID, true), etag, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed for media #%s: %v", mediaID, err)
	}
}

func (c *Cache) DeleteSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error {
	log.Printf("deleting events cache entry for media #%s...", mediaID)

	if err := c.client.Del(ctx, eventsKey(mediaID, requesterID, false)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) DeleteEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error {
	log.Printf("deleting events etag cache entry for media #%s...", mediaID)

	if err := c.client.Del(ctx, eventsKey(mediaID, requesterID, true)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// eventsKey scopes entries to the requester so an authorised payload
// cached for the owner is never served to anyone else.
func eventsKey(mediaID, requesterID db.UUID, etag bool) string {
	if etag {
		return "events_etag:" + mediaID.String() + ":" + requesterID.String()
	}
	return "events:" + mediaID.String() + ":" + requesterID.String()
}
