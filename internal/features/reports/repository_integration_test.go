//go:build integration

package reports

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

func TestSecondReportFromSameFingerprintRejected(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	postID := primitive.NewObjectID()

	first := &Report{PostID: postID, Reason: "spam", Fingerprint: "fp-1"}
	require.NoError(t, repo.Create(ctx, first))

	// Same caller, same post: rejected even with a different reason
	dup := &Report{PostID: postID, Reason: "harassment", Fingerprint: "fp-1"}
	err := repo.Create(ctx, dup)
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	// A different caller may still report the post
	second := &Report{PostID: postID, Reason: "spam", Fingerprint: "fp-2"}
	require.NoError(t, repo.Create(ctx, second))

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestDeleteByPostRemovesAllReports(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	target := primitive.NewObjectID()
	other := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		report := &Report{PostID: target, Reason: "spam", Fingerprint: fmt.Sprintf("fp-%d", i)}
		require.NoError(t, repo.Create(ctx, report))
	}
	require.NoError(t, repo.Create(ctx, &Report{PostID: other, Reason: "other", Fingerprint: "fp-0"}))

	deleted, err := repo.DeleteByPost(ctx, target)
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
