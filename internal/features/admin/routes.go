package admin

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/katdzy/studentFreedomWall/internal/features/posts"
	"github.com/katdzy/studentFreedomWall/internal/features/reactions"
	"github.com/katdzy/studentFreedomWall/internal/features/reports"
)

// RegisterRoutes registers the moderation routes behind the auth middleware
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, media MediaHost, hub Broadcaster, authMiddleware gin.HandlerFunc) {
	handler := NewHandler(
		posts.NewRepository(db),
		reactions.NewRepository(db),
		reports.NewRepository(db),
		media,
		hub,
	)

	adminGroup := router.Group("/admin")
	adminGroup.Use(authMiddleware)
	{
		adminGroup.GET("/dashboard", handler.Dashboard)
		adminGroup.GET("/posts", handler.ListPosts)
		adminGroup.GET("/reports", handler.ListReports)
		adminGroup.PUT("/posts/:id/approve", handler.Approve)
		adminGroup.PUT("/posts/:id/reject", handler.Reject)
		adminGroup.DELETE("/posts/:id", handler.DeletePost)
	}
}
