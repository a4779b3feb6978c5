package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix  = "topicquiz:"
	topicsCacheKey  = cacheKeyPrefix + "topics"
	defaultCacheTTL = 30 * time.Second
)

var ErrCacheDisabled = errors.New("cache disabled")

// QuestionCache is a read-through cache for the topic name listing.
// A nil *QuestionCache or one without a client behaves as an always-missing cache.
type QuestionCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewQuestionCache(client *redis.Client, ttl time.Duration) *QuestionCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &QuestionCache{redis: client, ttl: ttl}
}

func (c *QuestionCache) Enabled() bool {
	return c != nil && c.redis != nil
}

func (c *QuestionCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return ErrCacheDisabled
	}
	return c.redis.Ping(ctx).Err()
}

func (c *QuestionCache) Topics(ctx context.Context) ([]string, bool) {
	var names []string
	if !c.get(ctx, topicsCacheKey, &names) {
		return nil, false
	}
	return names, true
}

func (c *QuestionCache) SetTopics(ctx context.Context, names []string) {
	c.set(ctx, topicsCacheKey, names)
}

func (c *QuestionCache) set(ctx context.Context, key string, value interface{}) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to marshal cache entry %s: %v", key, err)
		return
	}

	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Failed to store cache entry %s: %v", key, err)
	}
}

func (c *QuestionCache) get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Redis error getting %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("Failed to unmarshal cache entry %s: %v", key, err)
		return false
	}
	return true
}

func (c *QuestionCache) String() string {
	if !c.Enabled() {
		return "disabled"
	}
	return fmt.Sprintf("redis(%s, ttl=%s)", c.redis.Options().Addr, c.ttl)
}
