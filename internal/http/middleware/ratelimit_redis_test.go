package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRedisRateLimitFailsOpenWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	redisClient = nil

	r := gin.New()
	r.GET("/", RedisRateLimit(1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	// well past the limit; without a client every request passes
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

// Requires a live Redis; set REDIS_ADDR to run.
func TestRedisRateLimitBlocksOverLimit(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	gin.SetMode(gin.TestMode)
	InitRedisRateLimiter(addr, os.Getenv("REDIS_PASSWORD"), 0)
	if redisClient == nil {
		t.Fatal("redis client did not connect")
	}
	t.Cleanup(func() { redisClient = nil })

	// a 1s window so leftover keys from earlier runs expire quickly
	r := gin.New()
	r.GET("/", RedisRateLimit(3, time.Second), func(c *gin.Context) { c.Status(http.StatusOK) })

	time.Sleep(1100 * time.Millisecond)

	var blocked int
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code == http.StatusTooManyRequests {
			blocked++
		}
	}
	if blocked != 2 {
		t.Errorf("blocked %d of 5 requests, want 2", blocked)
	}
}
