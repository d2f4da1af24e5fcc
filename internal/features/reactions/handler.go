package reactions

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/katdzy/studentFreedomWall/internal/pkg/fingerprint"
	"github.com/katdzy/studentFreedomWall/internal/pkg/logger"
	"github.com/katdzy/studentFreedomWall/internal/pkg/response"
	"github.com/katdzy/studentFreedomWall/internal/realtime"
	apperrors "github.com/katdzy/studentFreedomWall/pkg/errors"
)

// Ledger is the slice of the reaction store the handler needs
type Ledger interface {
	Upsert(ctx context.Context, postID primitive.ObjectID, fingerprint, kind string) (*Reaction, error)
	Delete(ctx context.Context, postID primitive.ObjectID, fingerprint string) error
	GetByPostAndFingerprint(ctx context.Context, postID primitive.ObjectID, fingerprint string) (*Reaction, error)
	CountByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
	BreakdownFor(ctx context.Context, postID primitive.ObjectID) (Breakdown, error)
}

// PostService is the slice of the posts feature the reaction ledger needs
type PostService interface {
	// EnsureApproved returns apperrors.ErrNotFound unless the post exists
	// and is approved.
	EnsureApproved(ctx context.Context, id primitive.ObjectID) error
	// SetReactionCount persists a recomputed total on the post
	SetReactionCount(ctx context.Context, id primitive.ObjectID, count int64) error
}

// Broadcaster pushes events to connected observers
type Broadcaster interface {
	Emit(event string, data interface{})
}

// Handler handles reaction HTTP requests
type Handler struct {
	repo  Ledger
	posts PostService
	hub   Broadcaster
}

// NewHandler creates a new reaction handler
func NewHandler(repo Ledger, posts PostService, hub Broadcaster) *Handler {
	return &Handler{repo: repo, posts: posts, hub: hub}
}

// Vote godoc
// @Summary Add or update a reaction
// @Description Record the caller's reaction on an approved post; a second vote overwrites the first
// @Tags reactions
// @Accept json
// @Produce json
// @Param postId path string true "Post ID"
// @Param request body VoteRequest true "Reaction kind"
// @Success 200 {object} response.SuccessResponse{data=VoteResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /reactions/{postId} [post]
func (h *Handler) Vote(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || !ValidKind(req.Kind) {
		response.BadRequest(c, "Invalid reaction type", "INVALID_KIND")
		return
	}

	// Reacting to pending/rejected/non-existent posts is forbidden
	if err := h.posts.EnsureApproved(c.Request.Context(), postID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Post not found", "POST_NOT_FOUND")
		} else {
			response.InternalServerError(c, "Failed to verify post", "DATABASE_ERROR")
		}
		return
	}

	fp := fingerprint.FromRequest(c)
	reaction, err := h.repo.Upsert(c.Request.Context(), postID, fp, req.Kind)
	if err != nil {
		response.InternalServerError(c, "Failed to record reaction", "DATABASE_ERROR")
		return
	}

	// A failed recount never publishes a fabricated zero; the vote itself
	// is already committed.
	if count, err := h.recount(c.Request.Context(), postID); err != nil {
		logger.Warn("reactions: failed to recount post %s: %v", postID.Hex(), err)
	} else {
		h.hub.Emit(realtime.EventReactionUpdate, gin.H{
			"postId":        postID.Hex(),
			"reactionCount": count,
			"kind":          req.Kind,
		})
	}

	response.Success(c, VoteResponse{
		Message:  "Reaction added successfully",
		Reaction: *reaction,
	})
}

// Unvote godoc
// @Summary Remove a reaction
// @Description Delete the caller's reaction on a post
// @Tags reactions
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /reactions/{postId} [delete]
func (h *Handler) Unvote(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return
	}

	fp := fingerprint.FromRequest(c)
	if err := h.repo.Delete(c.Request.Context(), postID, fp); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Reaction not found", "REACTION_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to remove reaction", "DATABASE_ERROR")
		return
	}

	if count, err := h.recount(c.Request.Context(), postID); err != nil {
		logger.Warn("reactions: failed to recount post %s: %v", postID.Hex(), err)
	} else {
		h.hub.Emit(realtime.EventReactionUpdate, gin.H{
			"postId":        postID.Hex(),
			"reactionCount": count,
		})
	}

	response.Success(c, gin.H{"message": "Reaction removed successfully"})
}

// GetBreakdown godoc
// @Summary Get reaction breakdown
// @Description Per-kind counts plus the caller's own current reaction
// @Tags reactions
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=BreakdownResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /reactions/{postId} [get]
func (h *Handler) GetBreakdown(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return
	}

	breakdown, err := h.repo.BreakdownFor(c.Request.Context(), postID)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch reactions", "DATABASE_ERROR")
		return
	}

	var userKind *string
	fp := fingerprint.FromRequest(c)
	if own, err := h.repo.GetByPostAndFingerprint(c.Request.Context(), postID, fp); err == nil {
		userKind = &own.Kind
	}

	response.Success(c, BreakdownResponse{
		Reactions:    breakdown,
		UserReaction: userKind,
		Total:        breakdown.Total(),
	})
}

// recount recomputes the denormalized total from the ledger and persists
// it on the post. Recompute-on-write keeps the count correct under
// concurrent add/remove races.
func (h *Handler) recount(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	count, err := h.repo.CountByPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	if err := h.posts.SetReactionCount(ctx, postID, count); err != nil {
		logger.Warn("reactions: failed to persist count for post %s: %v", postID.Hex(), err)
	}
	return count, nil
}
