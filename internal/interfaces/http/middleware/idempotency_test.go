package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	redispkg "vendor-onboarding.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

func submitRouter(calls *int, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/submit", func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"ok": status < 300, "call": *calls})
	})
	return r
}

func postSubmit(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	calls := 0
	r := submitRouter(&calls, http.StatusOK)

	postSubmit(r, "")
	postSubmit(r, "")
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_RedisErrorPassthrough(t *testing.T) {
	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: "127.0.0.1:0"}))

	calls := 0
	r := submitRouter(&calls, http.StatusAccepted)

	w := postSubmit(r, "idem-key")
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, 1, calls)
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	startMiniRedis(t)
	calls := 0
	r := submitRouter(&calls, http.StatusCreated)

	first := postSubmit(r, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)
	require.Empty(t, first.Header().Get(IdempotencyReplayHeader))

	second := postSubmit(r, "key-1")
	require.Equal(t, http.StatusCreated, second.Code)
	require.Equal(t, "true", second.Header().Get(IdempotencyReplayHeader))
	require.JSONEq(t, first.Body.String(), second.Body.String())
	require.Equal(t, 1, calls)
}

func TestIdempotencyMiddleware_DistinctKeysRunSeparately(t *testing.T) {
	startMiniRedis(t)
	calls := 0
	r := submitRouter(&calls, http.StatusOK)

	postSubmit(r, "a")
	postSubmit(r, "b")
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_FailureReleasesKey(t *testing.T) {
	srv := startMiniRedis(t)
	calls := 0
	r := submitRouter(&calls, http.StatusInternalServerError)

	postSubmit(r, "retry-me")
	require.False(t, srv.Exists("idempotency:POST:/submit:retry-me"))

	postSubmit(r, "retry-me")
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_ProcessingConflict(t *testing.T) {
	srv := startMiniRedis(t)
	require.NoError(t, srv.Set("idempotency:POST:/submit:key-1", processingValue))

	calls := 0
	r := submitRouter(&calls, http.StatusCreated)

	w := postSubmit(r, "key-1")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ERR_IDEMPOTENCY_CONFLICT")
	require.Zero(t, calls)
}

func TestIdempotencyMiddleware_LostLockRace(t *testing.T) {
	origGet, origSetNX := redisGetJSON, redisSetNX
	t.Cleanup(func() { redisGetJSON, redisSetNX = origGet, origSetNX })

	redisGetJSON = func(context.Context, string, interface{}) (bool, error) { return false, nil }
	redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return false, nil }

	calls := 0
	r := submitRouter(&calls, http.StatusOK)

	w := postSubmit(r, "raced")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Zero(t, calls)
}

func TestIdempotencyMiddleware_LockErrorPassthrough(t *testing.T) {
	origGet, origSetNX := redisGetJSON, redisSetNX
	t.Cleanup(func() { redisGetJSON, redisSetNX = origGet, origSetNX })

	redisGetJSON = func(context.Context, string, interface{}) (bool, error) { return false, nil }
	redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) {
		return false, errors.New("setnx down")
	}

	calls := 0
	r := submitRouter(&calls, http.StatusOK)

	w := postSubmit(r, "k")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, calls)
}

func TestIdempotencyMiddleware_StoresStatusAndBody(t *testing.T) {
	srv := startMiniRedis(t)
	calls := 0
	r := submitRouter(&calls, http.StatusOK)

	postSubmit(r, "stored")

	raw, err := srv.Get("idempotency:POST:/submit:stored")
	require.NoError(t, err)

	var stored storedResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Equal(t, http.StatusOK, stored.Status)
	require.Contains(t, stored.Body, `"call":1`)
	require.Empty(t, stored.State)
}
