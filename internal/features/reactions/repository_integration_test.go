//go:build integration

package reactions_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/katdzy/studentFreedomWall/internal/features/posts"
	"github.com/katdzy/studentFreedomWall/internal/features/reactions"
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

type recordingHub struct {
	events []string
}

func (h *recordingHub) Emit(event string, data interface{}) {
	h.events = append(h.events, event)
}

func TestUpsertKeepsOneRowPerFingerprint(t *testing.T) {
	db := testDB(t)
	repo := reactions.NewRepository(db)
	ctx := context.Background()
	postID := primitive.NewObjectID()

	// Sequential revotes overwrite in place, last write wins
	for _, kind := range []string{"like", "heart", "wow"} {
		_, err := repo.Upsert(ctx, postID, "fp-1", kind)
		require.NoError(t, err)
	}

	count, err := repo.CountByPost(ctx, postID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	own, err := repo.GetByPostAndFingerprint(ctx, postID, "fp-1")
	require.NoError(t, err)
	require.Equal(t, "wow", own.Kind)

	// A second visitor adds a second row, never touches the first
	_, err = repo.Upsert(ctx, postID, "fp-2", "sad")
	require.NoError(t, err)

	count, err = repo.CountByPost(ctx, postID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	breakdown, err := repo.BreakdownFor(ctx, postID)
	require.NoError(t, err)
	require.Equal(t, 1, breakdown["wow"])
	require.Equal(t, 1, breakdown["sad"])
	require.Equal(t, 0, breakdown["like"])
}

func TestDeleteByPostLeavesNoRows(t *testing.T) {
	db := testDB(t)
	repo := reactions.NewRepository(db)
	ctx := context.Background()
	target := primitive.NewObjectID()
	other := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		_, err := repo.Upsert(ctx, target, fmt.Sprintf("fp-%d", i), "like")
		require.NoError(t, err)
	}
	_, err := repo.Upsert(ctx, other, "fp-0", "heart")
	require.NoError(t, err)

	deleted, err := repo.DeleteByPost(ctx, target)
	require.NoError(t, err)
	require.EqualValues(t, 3, deleted)

	count, err := repo.CountByPost(ctx, target)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	// Other posts' ledgers are untouched
	count, err = repo.CountByPost(ctx, other)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestUniqueIndexHoldsUnderDirectInsert(t *testing.T) {
	db := testDB(t)
	_ = reactions.NewRepository(db)
	ctx := context.Background()
	postID := primitive.NewObjectID()

	doc := bson.M{"postId": postID, "fingerprint": "fp-1", "kind": "like", "createdAt": time.Now()}
	_, err := db.Collection("reactions").InsertOne(ctx, doc)
	require.NoError(t, err)

	_, err = db.Collection("reactions").InsertOne(ctx, doc)
	require.True(t, mongo.IsDuplicateKeyError(err))
}

func TestVoteFlowAgainstStore(t *testing.T) {
	db := testDB(t)
	postsRepo := posts.NewRepository(db)
	repo := reactions.NewRepository(db)
	hub := &recordingHub{}

	gin.SetMode(gin.TestMode)
	handler := reactions.NewHandler(repo, postsRepo, hub)
	r := gin.New()
	r.POST("/reactions/:postId", handler.Vote)

	ctx := context.Background()
	approved := &posts.Post{Content: "hello wall", Status: posts.StatusApproved}
	require.NoError(t, postsRepo.Create(ctx, approved))
	pending := &posts.Post{Content: "not yet", Status: posts.StatusPending}
	require.NoError(t, postsRepo.Create(ctx, pending))

	send := func(id, kind string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/reactions/"+id, strings.NewReader(`{"kind":"`+kind+`"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "itest")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// Same caller votes twice: one row, last kind, count recomputed to 1
	require.Equal(t, 200, send(approved.ID.Hex(), "like").Code)
	require.Equal(t, 200, send(approved.ID.Hex(), "heart").Code)

	count, err := repo.CountByPost(ctx, approved.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	stored, err := postsRepo.GetByID(ctx, approved.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stored.ReactionCount)

	breakdown, err := repo.BreakdownFor(ctx, approved.ID)
	require.NoError(t, err)
	require.Equal(t, 1, breakdown["heart"])
	require.Equal(t, 0, breakdown["like"])
	require.Len(t, hub.events, 2)

	// Pending posts take no votes
	w := send(pending.ID.Hex(), "like")
	require.Equal(t, 404, w.Code)
	require.Contains(t, w.Body.String(), "POST_NOT_FOUND")
}
