package posts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/katdzy/studentFreedomWall/pkg/errors"
)

// publicFeedLimit bounds the public listing
const publicFeedLimit = 50

// Repository handles database interactions for posts
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("posts")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Public feed, recent mode
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "dateCreated", Value: -1},
			},
		},
		{
			// Public feed, liked mode
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "reactionCount", Value: -1},
				{Key: "dateCreated", Value: -1},
			},
		},
	})

	return &Repository{collection: collection}
}

// Create persists a new post
func (r *Repository) Create(ctx context.Context, post *Post) error {
	post.ID = primitive.NewObjectID()
	post.DateCreated = time.Now()

	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetByID fetches a post in any moderation state
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	var post Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetApproved fetches a post only if it is approved
func (r *Repository) GetApproved(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	var post Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "status": StatusApproved}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListApproved returns the public feed, capped at 50 posts
func (r *Repository) ListApproved(ctx context.Context, sortMode string) ([]Post, error) {
	var sort bson.D
	if sortMode == SortLiked {
		sort = bson.D{
			{Key: "reactionCount", Value: -1},
			{Key: "dateCreated", Value: -1},
		}
	} else {
		sort = bson.D{{Key: "dateCreated", Value: -1}}
	}

	opts := options.Find().SetSort(sort).SetLimit(publicFeedLimit)
	cursor, err := r.collection.Find(ctx, bson.M{"status": StatusApproved}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// List returns posts of any state with optional status filter, paged
func (r *Repository) List(ctx context.Context, status string, page, limit int) ([]Post, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "dateCreated", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpdateStatus transitions a pending post to its decided moderation state
// and returns the updated document. Posts that already left the pending
// state are not re-decided.
func (r *Repository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": StatusPending},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr != nil {
			return nil, countErr
		}
		if count == 0 {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrInvalidState
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post document
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetReactionCount persists a recomputed reaction total on the post
func (r *Repository) SetReactionCount(ctx context.Context, id primitive.ObjectID, count int64) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"reactionCount": count}},
	)
	return err
}

// EnsureApproved returns ErrNotFound unless the post exists and is approved
func (r *Repository) EnsureApproved(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id, "status": StatusApproved})
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// EnsureExists returns ErrNotFound unless the post exists, in any state
func (r *Repository) EnsureExists(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetByIDs batch fetches posts by id
func (r *Repository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]Post, error) {
	result := make(map[primitive.ObjectID]Post, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	for _, post := range posts {
		result[post.ID] = post
	}
	return result, nil
}

// CountByStatus counts posts in one moderation state; empty status counts all
func (r *Repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.collection.CountDocuments(ctx, filter)
}
