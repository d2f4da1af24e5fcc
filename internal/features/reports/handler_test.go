package reports

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/katdzy/studentFreedomWall/pkg/errors"
)

type postServiceStub struct {
	existsErr error
}

func (s *postServiceStub) EnsureExists(ctx context.Context, id primitive.ObjectID) error {
	return s.existsErr
}

func newReportRouter(posts PostService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(nil, posts)
	r := gin.New()
	r.POST("/reactions/:postId/report", handler.Create)
	return r
}

func report(r *gin.Engine, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/reactions/"+id+"/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRejectsUnknownReason(t *testing.T) {
	r := newReportRouter(&postServiceStub{})

	w := report(r, "507f1f77bcf86cd799439011", `{"reason":"boring"}`)
	require.Equal(t, 400, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_REASON")
}

func TestCreateMissingPostIs404(t *testing.T) {
	r := newReportRouter(&postServiceStub{existsErr: apperrors.ErrNotFound})

	w := report(r, "507f1f77bcf86cd799439011", `{"reason":"spam"}`)
	require.Equal(t, 404, w.Code)
	require.Contains(t, w.Body.String(), "POST_NOT_FOUND")
}

func TestCreateStorageOutageIs500(t *testing.T) {
	// A storage failure during the existence check is not a missing post
	r := newReportRouter(&postServiceStub{existsErr: errors.New("connection reset")})

	w := report(r, "507f1f77bcf86cd799439011", `{"reason":"spam"}`)
	require.Equal(t, 500, w.Code)
	require.Contains(t, w.Body.String(), "DATABASE_ERROR")
}
