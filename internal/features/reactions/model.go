package reactions

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical reaction kinds. Validation and breakdown initialization use
// this one list; there is no second enumeration anywhere else.
var Kinds = []string{"like", "heart", "thumbs_up", "laugh", "wow", "sad"}

// ValidKind reports whether k is a member of the canonical enumeration
func ValidKind(k string) bool {
	for _, kind := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Reaction is a single fingerprinted vote on a post. At most one reaction
// exists per (postId, fingerprint) pair; a revote overwrites Kind in place.
type Reaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID      primitive.ObjectID `bson:"postId" json:"postId"`
	Kind        string             `bson:"kind" json:"kind"`
	Fingerprint string             `bson:"fingerprint" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Breakdown maps every canonical kind to its count for one post
type Breakdown map[string]int

// NewBreakdown returns a breakdown with every kind zeroed
func NewBreakdown() Breakdown {
	b := make(Breakdown, len(Kinds))
	for _, kind := range Kinds {
		b[kind] = 0
	}
	return b
}

// Total sums the per-kind counts
func (b Breakdown) Total() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

// VoteRequest for POST /reactions/:postId
type VoteRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// BreakdownResponse for GET /reactions/:postId
type BreakdownResponse struct {
	Reactions    Breakdown `json:"reactions"`
	UserReaction *string   `json:"userReaction"`
	Total        int       `json:"total"`
}

// VoteResponse after a vote is recorded
type VoteResponse struct {
	Message  string   `json:"message"`
	Reaction Reaction `json:"reaction"`
}
