//go:build api

package testdb

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisContainer backs the email locks and the stats cache in API tests.
type RedisContainer struct {
	Container testcontainers.Container
	URI       string // host:port, as REDIS_URI expects
	Client    *redis.Client
}

// SetupRedis starts Redis and checks it answers PING.
func SetupRedis(ctx context.Context) (*RedisContainer, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	uri, err := container.PortEndpoint(ctx, "6379/tcp", "")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	client := redis.NewClient(&redis.Options{Addr: uri})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &RedisContainer{Container: container, URI: uri, Client: client}, nil
}

// Cleanup closes the client and terminates the container.
func (rc *RedisContainer) Cleanup(ctx context.Context) error {
	if rc.Client != nil {
		_ = rc.Client.Close()
	}
	if rc.Container == nil {
		return nil
	}
	return rc.Container.Terminate(ctx)
}

// KeyExists reports whether key is currently set.
func (rc *RedisContainer) KeyExists(ctx context.Context, key string) (bool, error) {
	n, err := rc.Client.Exists(ctx, key).Result()
	return n > 0, err
}

// Keys lists the keys matching pattern.
func (rc *RedisContainer) Keys(ctx context.Context, pattern string) ([]string, error) {
	return rc.Client.Keys(ctx, pattern).Result()
}

// FlushDB drops every lock and cached value.
func (rc *RedisContainer) FlushDB(ctx context.Context) error {
	return rc.Client.FlushDB(ctx).Err()
}
