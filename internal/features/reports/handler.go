package reports

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/katdzy/studentFreedomWall/internal/pkg/fingerprint"
	"github.com/katdzy/studentFreedomWall/internal/pkg/response"
	apperrors "github.com/katdzy/studentFreedomWall/pkg/errors"
)

// PostService is the slice of the posts feature the report ledger needs.
// Reports only require the post to exist; its moderation state is
// irrelevant (a pending image post is prime reporting material).
type PostService interface {
	EnsureExists(ctx context.Context, id primitive.ObjectID) error
}

// Handler handles report HTTP requests
type Handler struct {
	repo  *Repository
	posts PostService
}

// NewHandler creates a new report handler
func NewHandler(repo *Repository, posts PostService) *Handler {
	return &Handler{repo: repo, posts: posts}
}

// Create godoc
// @Summary Report a post
// @Description File a complaint about a post; one report per visitor per post
// @Tags reports
// @Accept json
// @Produce json
// @Param postId path string true "Post ID"
// @Param request body CreateRequest true "Report reason"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /reactions/{postId}/report [post]
func (h *Handler) Create(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || !ValidReason(req.Reason) {
		response.BadRequest(c, "Invalid report reason", "INVALID_REASON")
		return
	}

	if err := h.posts.EnsureExists(c.Request.Context(), postID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Post not found", "POST_NOT_FOUND")
		} else {
			response.InternalServerError(c, "Failed to verify post", "DATABASE_ERROR")
		}
		return
	}

	report := &Report{
		PostID:      postID,
		Reason:      req.Reason,
		Fingerprint: fingerprint.FromRequest(c),
	}

	if err := h.repo.Create(c.Request.Context(), report); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.BadRequest(c, "Post already reported", "ALREADY_REPORTED")
			return
		}
		response.InternalServerError(c, "Failed to create report", "DATABASE_ERROR")
		return
	}

	response.Success(c, gin.H{"message": "Post reported successfully"})
}
