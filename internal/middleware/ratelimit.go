package middleware

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/saeid-a/JudoNutritionBack/internal/metrics"
	"go.uber.org/zap"
)

type RateLimitConfig struct {
	Prefix         string
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 and refill_tokens > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + (intervals * refill_tokens))
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		local until_next = interval_ms - (now_ms - last_refill)
		if until_next < 0 then until_next = 0 end
		retry_after_ms = until_next
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RateLimit applies a Redis token bucket keyed by client IP and route. With no
// Redis client every request passes; Redis errors also let requests through.
func RateLimit(cfg RateLimitConfig, rdb *redis.Client, log *zap.Logger) fiber.Handler {
	if rdb == nil || cfg.Capacity <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.RefillTokens <= 0 {
		cfg.RefillTokens = 1
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Duration(cfg.Capacity+1) * cfg.RefillInterval
	}
	ttlSeconds := int64(math.Max(1, cfg.TTL.Seconds()))

	return func(c *fiber.Ctx) error {
		key := rateKey(cfg.Prefix, c)
		vals, err := tokenBucketScript.Run(c.UserContext(), rdb, []string{key},
			time.Now().UnixMilli(),
			cfg.Capacity,
			cfg.RefillTokens,
			cfg.RefillInterval.Milliseconds(),
			ttlSeconds,
		).Result()
		if err != nil {
			log.Warn("rate limit script failed", zap.String("key", key), zap.Error(err))
			return c.Next()
		}

		arr, ok := vals.([]interface{})
		if !ok || len(arr) != 3 {
			log.Warn("unexpected rate limit result", zap.String("key", key), zap.Any("result", vals))
			return c.Next()
		}
		allowed := asInt64(arr[0]) == 1
		remaining := asInt64(arr[1])
		retryMs := asInt64(arr[2])

		c.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			secs := int(math.Ceil(float64(retryMs) / 1000.0))
			if secs < 0 {
				secs = 0
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			metrics.RateLimited.Inc()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many requests",
				"retry_after": secs,
			})
		}
		return c.Next()
	}
}

func rateKey(prefix string, c *fiber.Ctx) string {
	ip := c.IP()
	if ip == "" {
		ip = "unknown"
	}
	parts := []string{prefix, "ip", ip, "route", c.Method() + " " + c.Path()}
	return strings.Join(parts, ":")
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	n, _ := strconv.ParseInt(fmt.Sprint(v), 10, 64)
	return n
}
