package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/katdzy/studentFreedomWall/internal/config"
	"github.com/katdzy/studentFreedomWall/internal/features/admin"
	"github.com/katdzy/studentFreedomWall/internal/features/auth"
	"github.com/katdzy/studentFreedomWall/internal/features/posts"
	"github.com/katdzy/studentFreedomWall/internal/features/reactions"
	"github.com/katdzy/studentFreedomWall/internal/features/reports"
	"github.com/katdzy/studentFreedomWall/internal/pkg/cloudinary"
	"github.com/katdzy/studentFreedomWall/internal/pkg/logger"
	"github.com/katdzy/studentFreedomWall/internal/pkg/ratelimit"
	"github.com/katdzy/studentFreedomWall/internal/realtime"
)

// SetupRoutes wires every feature under /api and mounts the realtime
// endpoints at the engine root
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, hub *realtime.Hub) {
	api := router.Group("/api")

	// Anonymous visitors are throttled on writes only; reads stay free
	writeLimiter := ratelimit.New(30, time.Minute)
	writeLimiter.StartCleanup(5 * time.Minute)
	api.Use(ratelimit.WriteMiddleware(writeLimiter))

	media, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "freedomwall")
	if err != nil {
		logger.Warn("cloudinary not configured, image posts will fail: %v", err)
	}

	// Shared repositories backing the cross-feature interfaces
	postsRepo := posts.NewRepository(db)
	authRepo := auth.NewRepository(db)

	reportsHandler := reports.NewHandler(reports.NewRepository(db), postsRepo)

	auth.RegisterRoutes(api, db, cfg)
	posts.RegisterRoutes(api, db, media, hub)
	reactions.RegisterRoutes(api, db, postsRepo, hub, reportsHandler.Create)
	admin.RegisterRoutes(api, db, media, hub, auth.NewAuthMiddleware(authRepo, cfg))

	// WebSocket endpoints sit outside /api so the write limiter never
	// touches the upgrade handshake
	router.GET("/ws", realtime.ServePublic(hub))
	router.GET("/ws/admin", realtime.ServeOperator(hub, cfg))
}
