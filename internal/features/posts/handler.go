package posts

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/katdzy/studentFreedomWall/internal/features/reactions"
	"github.com/katdzy/studentFreedomWall/internal/pkg/cloudinary"
	"github.com/katdzy/studentFreedomWall/internal/pkg/contentfilter"
	"github.com/katdzy/studentFreedomWall/internal/pkg/response"
	"github.com/katdzy/studentFreedomWall/internal/realtime"
	apperrors "github.com/katdzy/studentFreedomWall/pkg/errors"
)

// photoAbsent reports whether a FormFile error just means the submission
// carries no photo: either the part is missing or the request is a plain
// form without a multipart body. Anything else is a malformed upload.
func photoAbsent(err error) bool {
	return errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart)
}

// MediaHost stores images durably and releases them on demand
type MediaHost interface {
	UploadImage(ctx context.Context, file multipart.File, filename string) (*cloudinary.UploadResult, error)
}

// Broadcaster pushes events to connected observers
type Broadcaster interface {
	Emit(event string, data interface{})
}

// Handler handles public post HTTP requests
type Handler struct {
	repo          *Repository
	reactionsRepo *reactions.Repository
	filter        *contentfilter.Filter
	media         MediaHost
	hub           Broadcaster
}

// NewHandler creates a new post handler
func NewHandler(repo *Repository, reactionsRepo *reactions.Repository, filter *contentfilter.Filter, media MediaHost, hub Broadcaster) *Handler {
	return &Handler{
		repo:          repo,
		reactionsRepo: reactionsRepo,
		filter:        filter,
		media:         media,
		hub:           hub,
	}
}

// Submit godoc
// @Summary Submit a post
// @Description Create a wall post; image posts start pending review, text-only posts go live immediately
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param content formData string true "Post text"
// @Param photo formData file false "Attached image"
// @Success 201 {object} response.SuccessResponse{data=SubmitResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /posts [post]
func (h *Handler) Submit(c *gin.Context) {
	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		response.BadRequest(c, "Message content is required", "CONTENT_REQUIRED")
		return
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		response.BadRequest(c, "Message content exceeds 1000 characters", "CONTENT_TOO_LONG")
		return
	}

	// Filtering happens before any persistence; a rejection prevents all
	// storage and media mutations.
	cleaned, err := h.filter.Clean(content)
	if err != nil {
		response.BadRequest(c, "Content contains inappropriate language and cannot be posted.", "CONTENT_FILTERED")
		return
	}

	post := &Post{
		Content: cleaned,
		Status:  StatusApproved,
	}

	// The media upload is fully committed before the post is created, so
	// a storage failure never leaves a post pointing at nothing.
	file, header, err := c.Request.FormFile("photo")
	if err != nil && !photoAbsent(err) {
		// A corrupt photo part must not silently publish a text-only post
		response.BadRequest(c, "Malformed photo upload", "INVALID_FILE")
		return
	}
	if err == nil {
		defer file.Close()

		if err := cloudinary.ValidateImageFile(header); err != nil {
			response.BadRequest(c, err.Error(), "INVALID_FILE")
			return
		}

		result, err := h.media.UploadImage(c.Request.Context(), file, header.Filename)
		if err != nil {
			response.Error(c, 502, "Failed to store image", "MEDIA_UPLOAD_FAILED")
			return
		}

		post.PhotoURL = &result.URL
		post.PhotoPublicID = &result.PublicID
		post.Status = StatusPending
	}

	if err := h.repo.Create(c.Request.Context(), post); err != nil {
		response.InternalServerError(c, "Failed to create post", "DATABASE_ERROR")
		return
	}

	var message string
	if post.Status == StatusApproved {
		message = "Post published successfully"
		h.hub.Emit(realtime.EventPostApproved, PostWithReactions{
			Post:           *post,
			Reactions:      reactions.NewBreakdown(),
			TotalReactions: 0,
		})
	} else {
		message = "Post submitted successfully and is pending approval"
		// No content is revealed before approval
		h.hub.Emit(realtime.EventNewPost, gin.H{"message": "New post submitted for review"})
	}

	response.Created(c, SubmitResponse{Message: message, Post: *post})
}

// List godoc
// @Summary List approved posts
// @Description Public feed with live reaction breakdowns, sorted by recency or popularity
// @Tags posts
// @Produce json
// @Param sort query string false "Sort mode: recent or liked" default(recent)
// @Success 200 {object} response.SuccessResponse{data=[]PostWithReactions}
// @Router /posts [get]
func (h *Handler) List(c *gin.Context) {
	sortMode := c.DefaultQuery("sort", SortRecent)

	list, err := h.repo.ListApproved(c.Request.Context(), sortMode)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch posts", "DATABASE_ERROR")
		return
	}

	// One batch join for the whole page, never a lookup per post
	ids := make([]primitive.ObjectID, len(list))
	for i, post := range list {
		ids[i] = post.ID
	}
	breakdowns, err := h.reactionsRepo.BreakdownForPosts(c.Request.Context(), ids)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch reactions", "DATABASE_ERROR")
		return
	}

	annotated := make([]PostWithReactions, len(list))
	for i, post := range list {
		b := breakdowns[post.ID]
		if b == nil {
			b = reactions.NewBreakdown()
		}
		annotated[i] = PostWithReactions{
			Post:           post,
			Reactions:      b,
			TotalReactions: b.Total(),
		}
	}

	response.Success(c, annotated)
}

// Get godoc
// @Summary Get one approved post
// @Description Single approved post with its reaction breakdown
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=PostWithReactions}
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return
	}

	post, err := h.repo.GetApproved(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Post not found", "POST_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch post", "DATABASE_ERROR")
		return
	}

	breakdown, err := h.reactionsRepo.BreakdownFor(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch reactions", "DATABASE_ERROR")
		return
	}

	response.Success(c, PostWithReactions{
		Post:           *post,
		Reactions:      breakdown,
		TotalReactions: breakdown.Total(),
	})
}
