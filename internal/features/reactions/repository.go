package reactions

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

// Repository handles database interactions for the reaction ledger
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("reactions")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// One reaction per (post, fingerprint) pair
			Keys: bson.D{
				{Key: "postId", Value: 1},
				{Key: "fingerprint", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			// Breakdown aggregation
			Keys: bson.D{
				{Key: "postId", Value: 1},
				{Key: "kind", Value: 1},
			},
		},
	})

	return &Repository{collection: collection}
}

// Upsert records a vote with last-write-wins semantics: an existing
// reaction for (postID, fingerprint) has its kind overwritten, otherwise a
// new reaction is created. A concurrent insert losing the unique-index race
// is retried as an update instead of surfacing to the caller.
func (r *Repository) Upsert(ctx context.Context, postID primitive.ObjectID, fingerprint, kind string) (*Reaction, error) {
	filter := bson.M{"postId": postID, "fingerprint": fingerprint}
	now := time.Now()
	update := bson.M{
		"$set": bson.M{"kind": kind, "updatedAt": now},
		"$setOnInsert": bson.M{
			"postId":      postID,
			"fingerprint": fingerprint,
			"createdAt":   now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var reaction Reaction
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&reaction)
	if mongo.IsDuplicateKeyError(err) {
		// Lost an insert race against the unique index; the row now
		// exists, so the retry takes the update path.
		err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&reaction)
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// Delete removes the caller's reaction on a post
func (r *Repository) Delete(ctx context.Context, postID primitive.ObjectID, fingerprint string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"postId": postID, "fingerprint": fingerprint})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetByPostAndFingerprint returns the caller's current reaction, if any
func (r *Repository) GetByPostAndFingerprint(ctx context.Context, postID primitive.ObjectID, fingerprint string) (*Reaction, error) {
	var reaction Reaction
	err := r.collection.FindOne(ctx, bson.M{"postId": postID, "fingerprint": fingerprint}).Decode(&reaction)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// CountByPost returns the total number of reactions on a post
func (r *Repository) CountByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"postId": postID})
}

// CountAll returns the total number of reactions across all posts
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// BreakdownFor computes per-kind counts for a single post
func (r *Repository) BreakdownFor(ctx context.Context, postID primitive.ObjectID) (Breakdown, error) {
	byPost, err := r.BreakdownForPosts(ctx, []primitive.ObjectID{postID})
	if err != nil {
		return nil, err
	}
	if b, ok := byPost[postID]; ok {
		return b, nil
	}
	return NewBreakdown(), nil
}

// BreakdownForPosts computes per-kind counts for a page of posts in a
// single query, never one lookup per post.
func (r *Repository) BreakdownForPosts(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]Breakdown, error) {
	result := make(map[primitive.ObjectID]Breakdown, len(postIDs))
	for _, id := range postIDs {
		result[id] = NewBreakdown()
	}
	if len(postIDs) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"postId": bson.M{"$in": postIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []Reaction
	if err = cursor.All(ctx, &all); err != nil {
		return nil, err
	}

	for _, reaction := range all {
		if b, ok := result[reaction.PostID]; ok {
			if _, known := b[reaction.Kind]; known {
				b[reaction.Kind]++
			}
		}
	}

	return result, nil
}

// DeleteByPost cascades deletion of all reactions referencing a post
func (r *Repository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
