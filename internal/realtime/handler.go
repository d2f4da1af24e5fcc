package realtime

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/katdzy/studentFreedomWall/internal/config"
	"github.com/katdzy/studentFreedomWall/internal/pkg/logger"
	"github.com/katdzy/studentFreedomWall/internal/pkg/response"
	"github.com/katdzy/studentFreedomWall/internal/pkg/token"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients connect from the public frontend; the events
		// carried are already public or operator-gated.
		return true
	},
}

// ServePublic upgrades an unauthenticated observer onto the broadcast
// channel for public post/reaction events.
func ServePublic(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		serve(hub, c, "")
	}
}

// ServeOperator upgrades an authenticated operator onto the moderation
// channel. The credential is presented as a `token` query parameter at
// connection time; an expired or malformed credential is refused with a
// distinguishable reason before the upgrade happens.
func ServeOperator(hub *Hub, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("token")
		if raw == "" {
			response.Unauthorized(c, "No token provided", "NO_TOKEN")
			return
		}

		claims, err := token.Validate(raw, cfg.JWTSecret)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				response.Unauthorized(c, "Token expired", "TOKEN_EXPIRED")
			} else {
				response.Unauthorized(c, "Invalid token", "INVALID_TOKEN")
			}
			return
		}

		serve(hub, c, claims.AdminID)
	}
}

func serve(hub *Hub, c *gin.Context, adminID string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("realtime: upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 16),
		adminID: adminID,
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}
