package notify

import (
	"context"
	"fmt"

	"couriertracking/internal/core/application/tracking"

	"github.com/redis/go-redis/v9"
)

// RedisObserver publishes entrances on a Redis pub/sub channel.
type RedisObserver struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisObserver creates an observer publishing on channel.
func NewRedisObserver(client redis.UniversalClient, channel string) *RedisObserver {
	return &RedisObserver{client: client, channel: channel}
}

// NewRedisClient parses a redis:// URL and checks connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// OnStoreEntrance publishes the event as JSON.
func (o *RedisObserver) OnStoreEntrance(ctx context.Context, event tracking.StoreEntranceEvent) error {
	body, err := encode(event)
	if err != nil {
		return fmt.Errorf("marshal entrance: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err = o.client.Publish(ctx, o.channel, body).Err(); err != nil {
		return fmt.Errorf("publish entrance: %w", err)
	}
	return nil
}
