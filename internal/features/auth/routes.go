package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/katdzy/studentFreedomWall/internal/config"
)

// RegisterRoutes registers the operator authentication routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo, cfg)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/admin/login", handler.Login)
		authGroup.POST("/admin/signup", handler.Signup)
		authGroup.POST("/admin/setup", handler.Setup)
	}
}
