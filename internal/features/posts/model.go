package posts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/katdzy/studentFreedomWall/internal/features/reactions"
)

// Moderation states
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// MaxContentLength bounds the submitted text
const MaxContentLength = 1000

// Sort modes for the public feed
const (
	SortRecent = "recent"
	SortLiked  = "liked"
)

// Post is a wall submission and its moderation state. Text-only posts go
// live immediately; posts with an attached image start pending and require
// operator review before publication.
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content       string             `bson:"content" json:"content"`
	PhotoURL      *string            `bson:"photoUrl,omitempty" json:"photoUrl"`
	PhotoPublicID *string            `bson:"photoPublicId,omitempty" json:"-"`
	Status        string             `bson:"status" json:"status"`
	ReactionCount int64              `bson:"reactionCount" json:"reactionCount"`
	DateCreated   time.Time          `bson:"dateCreated" json:"dateCreated"`
}

// PostWithReactions annotates a post with its live per-kind breakdown
type PostWithReactions struct {
	Post
	Reactions      reactions.Breakdown `json:"reactions"`
	TotalReactions int                 `json:"totalReactions"`
}

// SubmitResponse for POST /posts
type SubmitResponse struct {
	Message string `json:"message"`
	Post    Post   `json:"post"`
}
