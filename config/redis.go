package config

import (
	"context"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the shared Redis handle: the write-through layer in front
// of the cart snapshot table (model/repository/cart) and the distributed
// side of the product feed cache. Nil when REDIS_ADDR is unset or the
// startup ping fails; callers check for nil and fall back to the database.
var RedisClient *redis.Client

// InitRedis builds RedisClient from REDIS_ADDR, REDIS_PASS and REDIS_DB.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return
	}
	db := 0
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		db = n
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       db,
	})
}

func RedisCtx() context.Context {
	return context.Background()
}
