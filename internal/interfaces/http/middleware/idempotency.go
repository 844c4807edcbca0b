package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vendor-onboarding.backend/internal/interfaces/http/response"
	"vendor-onboarding.backend/pkg/logger"
	"vendor-onboarding.backend/pkg/redis"
)

const (
	IdempotencyHeader       = "Idempotency-Key"
	IdempotencyReplayHeader = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
	processingValue  = `{"state":"processing"}`
)

var (
	redisGetJSON = redis.GetJSON
	redisSetJSON = redis.SetJSON
	redisSetNX   = redis.SetNX
	redisDel     = redis.Del
)

// storedResponse is what gets replayed for a repeated key. Processing is set
// while the first request runs.
type storedResponse struct {
	State  string `json:"state,omitempty"`
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the first completed response of a request
// carrying the same Idempotency-Key on the same route. Only 2xx responses are
// kept; anything else frees the key for a retry. When Redis is unavailable
// requests pass through unprotected.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", c.Request.Method, c.FullPath(), key)
		ctx := c.Request.Context()

		var stored storedResponse
		found, err := redisGetJSON(ctx, storageKey, &stored)
		if err != nil {
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if found {
			if stored.State == processingMarker {
				response.ErrorWithError(c, http.StatusConflict, "ERR_IDEMPOTENCY_CONFLICT", "Request already in progress")
				c.Abort()
				return
			}
			c.Header(IdempotencyReplayHeader, "true")
			c.Data(stored.Status, "application/json; charset=utf-8", []byte(stored.Body))
			c.Abort()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingValue, LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.ErrorWithError(c, http.StatusConflict, "ERR_IDEMPOTENCY_CONFLICT", "Request already in progress")
			c.Abort()
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		storeCtx := context.WithoutCancel(ctx)
		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			if err := redisSetJSON(storeCtx, storageKey, storedResponse{Status: status, Body: w.body.String()}, RetentionDuration); err != nil {
				logger.Warn(ctx, "Idempotent response not stored", zap.Error(err))
			}
			return
		}
		_ = redisDel(storeCtx, storageKey)
	}
}
