package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/katdzy/studentFreedomWall/internal/config"
	"github.com/katdzy/studentFreedomWall/internal/pkg/token"
)

func newGuardedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/dashboard", NewAuthMiddleware(nil, cfg), func(c *gin.Context) {
		c.Status(200)
	})
	return r
}

func requestWithAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := newGuardedRouter(&config.Config{JWTSecret: "s"})

	w := requestWithAuth(r, "")
	require.Equal(t, 401, w.Code)
	require.Contains(t, w.Body.String(), "NO_TOKEN")
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	r := newGuardedRouter(&config.Config{JWTSecret: "s"})

	w := requestWithAuth(r, "Token abc")
	require.Equal(t, 401, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s"}
	r := newGuardedRouter(cfg)

	expired, err := token.Generate("507f1f77bcf86cd799439011", "mod", cfg.JWTSecret, -1)
	require.NoError(t, err)

	w := requestWithAuth(r, "Bearer "+expired)
	require.Equal(t, 401, w.Code)
	require.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	r := newGuardedRouter(&config.Config{JWTSecret: "s"})

	w := requestWithAuth(r, "Bearer not.a.jwt")
	require.Equal(t, 401, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	r := newGuardedRouter(&config.Config{JWTSecret: "right"})

	forged, err := token.Generate("507f1f77bcf86cd799439011", "mod", "wrong", 1)
	require.NoError(t, err)

	w := requestWithAuth(r, "Bearer "+forged)
	require.Equal(t, 401, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_TOKEN")
}
