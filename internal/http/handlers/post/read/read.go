// Package read реализует HTTP-обработчик получения статьи по идентификатору.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-api/internal/http/response"
	"github.com/magabrotheeeer/blog-api/internal/lib/sl"
	"github.com/magabrotheeeer/blog-api/internal/models"
	"github.com/magabrotheeeer/blog-api/internal/storage"
)

// Service описывает интерфейс бизнес-логики чтения статьи.
type Service interface {
	GetByUID(ctx context.Context, uid string) (*models.Post, error)
}

// Handler обрабатывает запросы на получение статьи по uid.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "id")

	post, err := h.service.GetByUID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			log.Error("post not found", slog.String("uid", uid))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
			return
		}
		log.Error("failed to read post", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.InternalError("internal error", err))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"post": post,
	}))
}
