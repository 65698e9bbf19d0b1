package publish

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes each metric on its own pub/sub channel, named by
// the metric's topic path. Subscribers can PSUBSCRIBE to a base pattern to
// receive the whole tree.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(addr, password string, db int) *RedisPublisher {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisPublisher{client: rdb}
}

func (r *RedisPublisher) Publish(ctx context.Context, topic, value string) error {
	return r.client.Publish(ctx, topic, value).Err()
}

// Ping verifies broker connectivity before the poll loop starts.
func (r *RedisPublisher) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisPublisher) Close() error {
	return r.client.Close()
}
