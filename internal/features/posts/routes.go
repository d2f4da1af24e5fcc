package posts

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/katdzy/studentFreedomWall/internal/features/reactions"
	"github.com/katdzy/studentFreedomWall/internal/pkg/contentfilter"
)

// RegisterRoutes registers the public post routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, media MediaHost, hub Broadcaster) {
	repo := NewRepository(db)
	reactionsRepo := reactions.NewRepository(db)
	handler := NewHandler(repo, reactionsRepo, contentfilter.New(), media, hub)

	postGroup := router.Group("/posts")
	{
		postGroup.POST("", handler.Submit)
		postGroup.GET("", handler.List)
		postGroup.GET("/:id", handler.Get)
	}
}
