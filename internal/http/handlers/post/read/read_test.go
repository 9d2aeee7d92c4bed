package read

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-api/internal/http/response"
	"github.com/magabrotheeeer/blog-api/internal/models"
	"github.com/magabrotheeeer/blog-api/internal/storage"
)

type mockService struct {
	GetByUIDFunc func(ctx context.Context, uid string) (*models.Post, error)
}

func (m *mockService) GetByUID(ctx context.Context, uid string) (*models.Post, error) {
	return m.GetByUIDFunc(ctx, uid)
}

func newRequest(uid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/"+uid, nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", uid)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestReadHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success with author name", func(t *testing.T) {
		service := &mockService{
			GetByUIDFunc: func(ctx context.Context, uid string) (*models.Post, error) {
				require.Equal(t, "post-1", uid)
				return &models.Post{UID: uid, Title: "My post", AuthorUID: "uid-1", AuthorName: "alice"}, nil
			},
		}

		rr := httptest.NewRecorder()
		New(log, service).ServeHTTP(rr, newRequest("post-1"))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)

		data := resp.Data.(map[string]any)
		post := data["post"].(map[string]any)
		assert.Equal(t, "My post", post["title"])
		assert.Equal(t, "alice", post["author_name"])
	})

	t.Run("storage fault hides detail by default", func(t *testing.T) {
		service := &mockService{
			GetByUIDFunc: func(ctx context.Context, uid string) (*models.Post, error) {
				return nil, errors.New("pq: connection refused")
			},
		}

		rr := httptest.NewRecorder()
		New(log, service).ServeHTTP(rr, newRequest("post-1"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "internal error", resp.Error)
	})

	t.Run("storage fault detail shown in diagnostic mode", func(t *testing.T) {
		response.SetExposeErrors(true)
		defer response.SetExposeErrors(false)

		service := &mockService{
			GetByUIDFunc: func(ctx context.Context, uid string) (*models.Post, error) {
				return nil, errors.New("pq: connection refused")
			},
		}

		rr := httptest.NewRecorder()
		New(log, service).ServeHTTP(rr, newRequest("post-1"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "connection refused")
	})

	t.Run("not found", func(t *testing.T) {
		service := &mockService{
			GetByUIDFunc: func(ctx context.Context, uid string) (*models.Post, error) {
				return nil, storage.ErrPostNotFound
			},
		}

		rr := httptest.NewRecorder()
		New(log, service).ServeHTTP(rr, newRequest("missing"))

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusError, resp.Status)
		assert.Equal(t, "post not found", resp.Error)
	})
}
