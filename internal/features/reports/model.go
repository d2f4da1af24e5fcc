package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid report reasons
var Reasons = []string{"inappropriate", "spam", "harassment", "fake_news", "other"}

// ValidReason reports whether r is a member of the reason enumeration
func ValidReason(r string) bool {
	for _, reason := range Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Report is a fingerprinted complaint about a post. At most one report
// exists per (postId, fingerprint) pair; duplicates are rejected, never
// merged. Reports are accepted against posts in any moderation state.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID      primitive.ObjectID `bson:"postId" json:"postId"`
	Reason      string             `bson:"reason" json:"reason"`
	Fingerprint string             `bson:"fingerprint" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"dateReported"`
}

// CreateRequest for POST /reactions/:postId/report
type CreateRequest struct {
	Reason string `json:"reason" binding:"required"`
}
