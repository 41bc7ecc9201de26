package mock

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis server with a connected client.
type Redis struct {
	server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis starts a miniredis server.
func NewRedis() (*Redis, error) {
	server, err := miniredis.Run()
	if err != nil {
		return nil, err
	}

	return &Redis{
		server: server,
		Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
	}, nil
}

// Clear drops every key.
func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.Background()).Err()
}

// Close stops the client and the server.
func (r *Redis) Close() {
	_ = r.Client.Close()
	r.server.Close()
}
