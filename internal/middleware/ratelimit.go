package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// luaRateLimit implements an atomic Redis sliding-window counter.
// KEYS[1] = window key, ARGV[1] = now (unix nano), ARGV[2] = window start,
// ARGV[3] = window seconds, ARGV[4] = member, ARGV[5] = limit.
// Returns -1 when the caller is over the limit.
const luaRateLimit = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowSec = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)

local count = redis.call('ZCARD', key)

if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('EXPIRE', key, windowSec)
  return count + 1
else
  return -1
end
`

// RateLimit throttles write endpoints per authenticated principal (falling
// back to client IP) using a Redis sliding window. Redis failures let the
// request through rather than blocking the order flow.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.ClientIP()
		if userID, ok := c.Get("userId"); ok {
			if oid, ok := userID.(primitive.ObjectID); ok {
				caller = oid.Hex()
			}
		}

		now := time.Now().UnixNano()
		windowStart := now - window.Nanoseconds()
		key := "ratelimit:" + c.FullPath() + ":" + caller
		member := fmt.Sprintf("%d", now)

		count, err := rdb.Eval(c.Request.Context(), luaRateLimit,
			[]string{key},
			now, windowStart, int(window.Seconds())+1, member, limit,
		).Int64()
		if err != nil {
			c.Next()
			return
		}
		if count == -1 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}
