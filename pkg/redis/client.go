package redis

import (
	"github.com/redis/go-redis/v9"
)

// Nil is re-exported so callers can test for missing keys without
// importing go-redis directly.
const Nil = redis.Nil

type Options struct {
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
}

func NewClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		MaxRetries:   opts.MaxRetries,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
	})
}
