package realtime

// Server-to-client event names
const (
	// EventNewPost notifies that a submission is awaiting review.
	// No post content is revealed before approval.
	EventNewPost = "newPost"
	// EventPostApproved carries a full post with its reaction breakdown
	EventPostApproved = "postApproved"
	// EventPostDeleted carries only the deleted post id
	EventPostDeleted = "postDeleted"
	// EventReactionUpdate carries postId, new total count and the kind applied
	EventReactionUpdate = "reactionUpdate"
)

// Message is the JSON envelope pushed to observers
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
