package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := New(3, time.Minute)

	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))

	// Other keys are unaffected
	require.True(t, rl.Allow("10.0.0.2"))
}

func TestWindowExpiry(t *testing.T) {
	rl := New(1, 30*time.Millisecond)

	require.True(t, rl.Allow("k"))
	require.False(t, rl.Allow("k"))

	time.Sleep(40 * time.Millisecond)
	require.True(t, rl.Allow("k"))
}

func TestMiddlewareBlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := New(1, time.Minute)
	r := gin.New()
	r.POST("/posts", Middleware(rl), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/posts", nil))
	require.Equal(t, 200, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/posts", nil))
	require.Equal(t, 429, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestWriteMiddlewareSkipsReads(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := New(1, time.Minute)
	r := gin.New()
	r.Use(WriteMiddleware(rl))
	r.GET("/posts", func(c *gin.Context) { c.Status(200) })
	r.POST("/posts", func(c *gin.Context) { c.Status(200) })

	// Exhaust the write budget
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/posts", nil))
	require.Equal(t, 200, w.Code)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/posts", nil))
	require.Equal(t, 429, w.Code)

	// GETs still pass
	for i := 0; i < 5; i++ {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/posts", nil))
		require.Equal(t, 200, w.Code)
	}
}
