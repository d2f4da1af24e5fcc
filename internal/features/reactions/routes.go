package reactions

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the reaction routes. The report route lives
// under the same /reactions/:postId prefix, so its handler is mounted
// here too.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, posts PostService, hub Broadcaster, report gin.HandlerFunc) {
	repo := NewRepository(db)
	handler := NewHandler(repo, posts, hub)

	reactionGroup := router.Group("/reactions")
	{
		reactionGroup.POST("/:postId", handler.Vote)
		reactionGroup.DELETE("/:postId", handler.Unvote)
		reactionGroup.GET("/:postId", handler.GetBreakdown)
		reactionGroup.POST("/:postId/report", report)
	}
}
