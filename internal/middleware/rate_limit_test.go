package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/internal/testhelpers"
)

func limitedEngine(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/limited",
		func(c *gin.Context) { c.Set("user_id", c.GetHeader("X-User")) },
		rl.Middleware(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return engine
}

func hitLimited(engine *gin.Engine, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	req.Header.Set("X-User", user)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimiterEnforcesWindowLimit(t *testing.T) {
	if os.Getenv("TEST_REDIS") == "" {
		t.Skip("Skipping redis-backed test - TEST_REDIS not set")
	}

	client := testhelpers.NewTestRedis(t)
	rl := NewRateLimiter(client, RateLimitConfig{
		Window:    time.Hour,
		Limit:     3,
		KeyPrefix: "rate_limit:test",
	})
	engine := limitedEngine(rl)

	for i := 0; i < 3; i++ {
		w := hitLimited(engine, "alice")
		require.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
	}

	w := hitLimited(engine, "alice")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "retry_after")
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// The window is per user.
	w = hitLimited(engine, "bob")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterFailsOpenWithoutRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	engine := limitedEngine(NewImportRateLimiter(client))

	w := hitLimited(engine, "alice")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Error"))
}
