// AngelaMos | 2026
// cache.go

package catalog

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyList       = "cache:services"
	cacheKeyItemPrefix = "cache:services:"
)

// Invalidator drops cached read paths after a catalog mutation. It is
// best-effort: a failed invalidation is logged and the mutation still
// succeeds, the cache entries age out on their own TTL.
type Invalidator interface {
	Invalidate(ctx context.Context, slugs ...string)
}

type redisInvalidator struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisInvalidator(
	client *redis.Client,
	logger *slog.Logger,
) Invalidator {
	return &redisInvalidator{client: client, logger: logger}
}

func (i *redisInvalidator) Invalidate(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs)+1)
	keys = append(keys, cacheKeyList)
	for _, slug := range slugs {
		keys = append(keys, cacheKeyItemPrefix+slug)
	}

	if err := i.client.Del(ctx, keys...).Err(); err != nil {
		i.logger.Warn("cache invalidation failed",
			"keys", keys,
			"error", err,
		)
	}
}

// NoopInvalidator is used when no cache sits in front of the catalog.
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(context.Context, ...string) {}
