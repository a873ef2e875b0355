package rdx

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// Conn is the shared Redis client (sessions, coupon cache, order events).
var Conn = redis.NewClient(&redis.Options{
	Addr: redisAddr(),
})

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}
