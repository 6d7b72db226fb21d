package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const recentKey = "publicaciones:recent"

// cachedPage holds one page of postings together with the exact total the
// pagination response needs.
type cachedPage struct {
	Publicaciones []models.Publicacion `json:"publicaciones"`
	Total         int64                `json:"total"`
}

// PublicacionCache keeps the default public listing page (no filters, first
// page) in redis. Any posting write invalidates it.
type PublicacionCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

func NewPublicacionCache(client *redis.Client, ttl time.Duration) *PublicacionCache {
	return &PublicacionCache{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

// GetRecent returns the cached default page, or ok=false on a miss.
func (c *PublicacionCache) GetRecent() ([]models.Publicacion, int64, bool) {
	data, err := c.client.Get(c.ctx, recentKey).Bytes()
	if err != nil {
		return nil, 0, false
	}

	var page cachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, 0, false
	}
	return page.Publicaciones, page.Total, true
}

// SetRecent stores the default page. Cache errors are swallowed: the listing
// must keep working when redis is down.
func (c *PublicacionCache) SetRecent(publicaciones []models.Publicacion, total int64) {
	data, err := json.Marshal(cachedPage{Publicaciones: publicaciones, Total: total})
	if err != nil {
		return
	}
	_ = c.client.Set(c.ctx, recentKey, data, c.ttl).Err()
}

// Invalidate drops the cached page after any posting write.
func (c *PublicacionCache) Invalidate() {
	_ = c.client.Del(c.ctx, recentKey).Err()
}

// NewClient connects to redis and verifies the connection.
func NewClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("redis URL is empty")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
