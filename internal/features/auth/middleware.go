package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/katdzy/studentFreedomWall/internal/config"
	"github.com/katdzy/studentFreedomWall/internal/pkg/response"
	"github.com/katdzy/studentFreedomWall/internal/pkg/token"
)

// NewAuthMiddleware creates a Gin middleware guarding operator-only routes.
// Rejections carry a machine-readable reason code so clients can tell a
// missing credential from an expired or revoked one.
func NewAuthMiddleware(repo *Repository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "No token provided", "NO_TOKEN")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Invalid authorization format", "INVALID_AUTH_FORMAT")
			c.Abort()
			return
		}

		claims, err := token.Validate(parts[1], cfg.JWTSecret)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				response.Unauthorized(c, "Token expired", "TOKEN_EXPIRED")
			} else {
				response.Unauthorized(c, "Invalid token", "INVALID_TOKEN")
			}
			c.Abort()
			return
		}

		admin, err := repo.GetByID(c.Request.Context(), claims.AdminID)
		if err != nil {
			response.Unauthorized(c, "Admin not found", "USER_NOT_FOUND")
			c.Abort()
			return
		}

		c.Set("admin", admin)
		c.Set("adminUsername", admin.Username)
		c.Next()
	}
}

// AdminFromContext extracts the authenticated operator set by the middleware
func AdminFromContext(c *gin.Context) (*Admin, bool) {
	val, exists := c.Get("admin")
	if !exists {
		return nil, false
	}
	admin, ok := val.(*Admin)
	return admin, ok
}
