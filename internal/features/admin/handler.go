package admin

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/katdzy/studentFreedomWall/internal/features/posts"
	"github.com/katdzy/studentFreedomWall/internal/features/reactions"
	"github.com/katdzy/studentFreedomWall/internal/features/reports"
	"github.com/katdzy/studentFreedomWall/internal/pkg/logger"
	"github.com/katdzy/studentFreedomWall/internal/pkg/pagination"
	"github.com/katdzy/studentFreedomWall/internal/pkg/response"
	"github.com/katdzy/studentFreedomWall/internal/realtime"
	apperrors "github.com/katdzy/studentFreedomWall/pkg/errors"
)

const (
	statsTTL        = 30 * time.Second
	reportListLimit = 50
)

// MediaHost releases stored images when their post is removed
type MediaHost interface {
	Delete(ctx context.Context, publicID string) error
}

// Broadcaster pushes events to connected observers
type Broadcaster interface {
	Emit(event string, data interface{})
}

// ReportWithPost pairs a complaint with the post it targets. Post is nil
// when the post was deleted after the report was filed.
type ReportWithPost struct {
	reports.Report
	Post *posts.Post `json:"post"`
}

// Handler handles moderation HTTP requests
type Handler struct {
	posts     *posts.Repository
	reactions *reactions.Repository
	reports   *reports.Repository
	media     MediaHost
	hub       Broadcaster
	stats     *statsCache
}

// NewHandler creates a new moderation handler
func NewHandler(postsRepo *posts.Repository, reactionsRepo *reactions.Repository, reportsRepo *reports.Repository, media MediaHost, hub Broadcaster) *Handler {
	return &Handler{
		posts:     postsRepo,
		reactions: reactionsRepo,
		reports:   reportsRepo,
		media:     media,
		hub:       hub,
		stats:     newStatsCache(statsTTL),
	}
}

// Dashboard godoc
// @Summary Moderation dashboard counters
// @Description Aggregated post, report and reaction counts, cached for 30 seconds
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=Stats}
// @Failure 401 {object} response.ErrorResponse
// @Router /admin/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.stats.get(c.Request.Context(), h.computeStats)
	if err != nil {
		response.InternalServerError(c, "Failed to compute dashboard stats", "DATABASE_ERROR")
		return
	}
	response.Success(c, stats)
}

// computeStats runs the six dashboard counts concurrently
func (h *Handler) computeStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalPosts, err = h.posts.CountByStatus(ctx, "")
		return
	})
	g.Go(func() (err error) {
		stats.PendingPosts, err = h.posts.CountByStatus(ctx, posts.StatusPending)
		return
	})
	g.Go(func() (err error) {
		stats.ApprovedPosts, err = h.posts.CountByStatus(ctx, posts.StatusApproved)
		return
	})
	g.Go(func() (err error) {
		stats.RejectedPosts, err = h.posts.CountByStatus(ctx, posts.StatusRejected)
		return
	})
	g.Go(func() (err error) {
		stats.TotalReports, err = h.reports.CountAll(ctx)
		return
	})
	g.Go(func() (err error) {
		stats.TotalReactions, err = h.reactions.CountAll(ctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListPosts godoc
// @Summary List posts for review
// @Description Paginated post listing across all moderation states, optionally filtered by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter: pending, approved or rejected"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.PaginatedResponse{data=[]posts.Post}
// @Failure 401 {object} response.ErrorResponse
// @Router /admin/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != posts.StatusPending && status != posts.StatusApproved && status != posts.StatusRejected {
		response.BadRequest(c, "Invalid status filter", "INVALID_STATUS")
		return
	}
	page, limit := pagination.ParseQuery(c.Query("page"), c.Query("limit"))

	list, total, err := h.posts.List(c.Request.Context(), status, page, limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch posts", "DATABASE_ERROR")
		return
	}
	response.Paginated(c, list, total, limit, page)
}

// ListReports godoc
// @Summary List recent reports
// @Description Most recent complaints with the reported posts attached
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=[]ReportWithPost}
// @Failure 401 {object} response.ErrorResponse
// @Router /admin/reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	list, err := h.reports.ListRecent(c.Request.Context(), reportListLimit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch reports", "DATABASE_ERROR")
		return
	}

	ids := make([]primitive.ObjectID, len(list))
	for i, report := range list {
		ids[i] = report.PostID
	}
	reported, err := h.posts.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch reported posts", "DATABASE_ERROR")
		return
	}

	annotated := make([]ReportWithPost, len(list))
	for i, report := range list {
		annotated[i] = ReportWithPost{Report: report}
		if post, ok := reported[report.PostID]; ok {
			p := post
			annotated[i].Post = &p
		}
	}
	response.Success(c, annotated)
}

// Approve godoc
// @Summary Approve a pending post
// @Description Publish a pending post to the feed and fan it out to observers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=posts.Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/posts/{id}/approve [put]
func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, posts.StatusApproved)
}

// Reject godoc
// @Summary Reject a pending post
// @Description Mark a pending post rejected; nothing is fanned out to the public feed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=posts.Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/posts/{id}/reject [put]
func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, posts.StatusRejected)
}

// decide moves a pending post to its reviewed state
func (h *Handler) decide(c *gin.Context, status string) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return
	}

	post, err := h.posts.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Post not found", "POST_NOT_FOUND")
		case errors.Is(err, apperrors.ErrInvalidState):
			response.BadRequest(c, "Post has already been reviewed", "ALREADY_REVIEWED")
		default:
			response.InternalServerError(c, "Failed to update post", "DATABASE_ERROR")
		}
		return
	}
	h.stats.invalidate()

	if status == posts.StatusApproved {
		// A freshly approved post cannot have reactions yet
		h.hub.Emit(realtime.EventPostApproved, posts.PostWithReactions{
			Post:           *post,
			Reactions:      reactions.NewBreakdown(),
			TotalReactions: 0,
		})
	}

	response.Success(c, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Description Remove a post in any state along with its reactions, reports and stored image
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return
	}
	ctx := c.Request.Context()

	post, err := h.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Post not found", "POST_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch post", "DATABASE_ERROR")
		return
	}

	if err := h.posts.Delete(ctx, id); err != nil {
		response.InternalServerError(c, "Failed to delete post", "DATABASE_ERROR")
		return
	}
	if _, err := h.reactions.DeleteByPost(ctx, id); err != nil {
		logger.Warn("failed to delete reactions for post %s: %v", id.Hex(), err)
	}
	if _, err := h.reports.DeleteByPost(ctx, id); err != nil {
		logger.Warn("failed to delete reports for post %s: %v", id.Hex(), err)
	}

	// Media release is best effort; an orphaned image never blocks the delete
	if post.PhotoPublicID != nil {
		if err := h.media.Delete(ctx, *post.PhotoPublicID); err != nil {
			logger.Warn("failed to release image %s: %v", *post.PhotoPublicID, err)
		}
	}

	h.stats.invalidate()
	h.hub.Emit(realtime.EventPostDeleted, gin.H{"postId": id.Hex()})

	response.Success(c, gin.H{"message": "Post deleted successfully"})
}
