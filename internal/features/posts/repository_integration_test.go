//go:build integration

package posts

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/katdzy/studentFreedomWall/pkg/errors"
)

func testDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongo not reachable at %s: %v", uri, err)
	}

	db := client.Database(fmt.Sprintf("freedomwall_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestPublicFeedExcludesUnreviewedPosts(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	approved := &Post{Content: "live", Status: StatusApproved}
	require.NoError(t, repo.Create(ctx, approved))
	pending := &Post{Content: "waiting", Status: StatusPending}
	require.NoError(t, repo.Create(ctx, pending))
	rejected := &Post{Content: "gone", Status: StatusRejected}
	require.NoError(t, repo.Create(ctx, rejected))

	feed, err := repo.ListApproved(ctx, SortRecent)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, approved.ID, feed[0].ID)

	// Single-post lookups enforce the same gate
	_, err = repo.GetApproved(ctx, pending.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, repo.EnsureApproved(ctx, pending.ID), apperrors.ErrNotFound)
	require.ErrorIs(t, repo.EnsureApproved(ctx, rejected.ID), apperrors.ErrNotFound)
	require.NoError(t, repo.EnsureApproved(ctx, approved.ID))

	// Existence check passes for any state
	require.NoError(t, repo.EnsureExists(ctx, pending.ID))
}

func TestUpdateStatusOnlyDecidesPendingPosts(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	post := &Post{Content: "waiting", Status: StatusPending}
	require.NoError(t, repo.Create(ctx, post))

	updated, err := repo.UpdateStatus(ctx, post.ID, StatusApproved)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, updated.Status)

	// Re-deciding a reviewed post fails with a distinguishable reason
	_, err = repo.UpdateStatus(ctx, post.ID, StatusRejected)
	require.ErrorIs(t, err, apperrors.ErrInvalidState)

	stored, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, stored.Status)

	_, err = repo.UpdateStatus(ctx, primitive.NewObjectID(), StatusApproved)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
