package database

import (
	"context"
	"log"

	"metaads-dashboard/config"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// InitRedis wires the billing-state cache. The cache is best-effort: an
// unreachable Redis degrades every lookup to a DB read, it never blocks
// startup.
func InitRedis() {
	opt, err := redis.ParseURL(config.REDIS_URL)
	if err != nil {
		log.Fatal("❌ Invalid REDIS_URL:", err)
	}

	Redis = redis.NewClient(opt)

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Println("⚠️ Redis unreachable, billing cache will miss:", err)
	}
}
