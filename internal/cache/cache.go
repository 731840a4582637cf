package cache

import (
	"context"
	"strconv"
	"time"

	"backend-stravamap/internal/config"

	"github.com/redis/go-redis/v9"
)

// Keys used by the refresher and the read path. The activity list is a single
// entry replaced wholesale; traces get one permanent entry per activity.
const ActivitiesKey = "activities"

const tracePrefix = "trace:"

func TraceKey(id int64) string {
	return tracePrefix + strconv.FormatInt(id, 10)
}

// Store is the cache surface shared by the background writer and concurrent
// readers. Values are opaque JSON blobs so a Put is always one atomic
// assignment: readers observe either the old or the new value, never a
// partially mutated one. A ttl of zero keeps the entry for the process
// lifetime; expired entries read as absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ConnectRedis returns nil when no address is configured, in which case the
// service runs on the in-memory store alone.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
