package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsdesk/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(client *redis.Client, limit int) *gin.Engine {
	router := setupTestRouter()
	router.Use(RateLimitMiddleware(client, limit, time.Minute, logger.New()))
	router.GET("/posts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doGet(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_BlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	router := newRateLimitedRouter(client, 2)

	assert.Equal(t, http.StatusOK, doGet(router).Code)
	w := doGet(router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, doGet(router).Code)

	ttl := mr.TTL("rate_limit:/posts:10.0.0.1")
	assert.Equal(t, time.Minute, ttl)
}

func TestRateLimitMiddleware_WindowResets(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	router := newRateLimitedRouter(client, 1)

	assert.Equal(t, http.StatusOK, doGet(router).Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(router).Code)

	mr.FastForward(time.Minute + time.Second)

	assert.Equal(t, http.StatusOK, doGet(router).Code)
}

func TestRateLimitMiddleware_NilClient(t *testing.T) {
	router := newRateLimitedRouter(nil, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doGet(router).Code)
	}
}

func TestRateLimitMiddleware_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	router := newRateLimitedRouter(client, 1)
	mr.Close()

	assert.Equal(t, http.StatusOK, doGet(router).Code)
}
