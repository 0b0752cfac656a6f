package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// cachedResponse is the Redis payload for a replayable response.
type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyMiddleware provides opt-in idempotency for mutating requests
// using X-Correlation-ID. If the same correlation ID is received within the
// TTL, the cached response is replayed instead of re-running the handler.
// Requests without the header are untouched: two identical share requests
// still create two share records.
//
// Must be registered after VerifyAccessToken. Replay entries are scoped to
// the authenticated user, so a correlation ID can never surface another
// user's response, and requests without an identity are never replayed.
func IdempotencyMiddleware(redisClient *redis.Client, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost && c.Method() != fiber.MethodPatch && c.Method() != fiber.MethodPut {
			return c.Next()
		}

		correlationID := c.Get("X-Correlation-ID")
		if correlationID == "" {
			return c.Next()
		}

		userID := GetUserID(c)
		if userID == "" {
			return c.Next()
		}

		key := fmt.Sprintf("idempotency:%s:%s", userID, correlationID)
		ctx := context.Background()

		cached, err := redisClient.Get(ctx, key).Bytes()
		if err == nil && len(cached) > 0 {
			var stored cachedResponse
			if err := json.Unmarshal(cached, &stored); err == nil {
				c.Set("X-Idempotent-Replay", "true")
				c.Set("Content-Type", "application/json")
				return c.Status(stored.Status).Send(stored.Body)
			}
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Cache successful responses only, status included so a replayed
		// 201 stays a 201. The write is synchronous so a retry arriving
		// right after the response is already replayable.
		statusCode := c.Response().StatusCode()
		if statusCode >= 200 && statusCode < 300 {
			body := c.Response().Body()
			if len(body) > 0 {
				payload, err := json.Marshal(cachedResponse{Status: statusCode, Body: body})
				if err == nil {
					setCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
					defer cancel()
					redisClient.Set(setCtx, key, payload, ttl)
				}
			}
		}

		return nil
	}
}
