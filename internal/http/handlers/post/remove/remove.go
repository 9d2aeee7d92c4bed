// Package remove реализует HTTP-обработчик удаления статьи.
// Правила доступа те же, что при изменении: автор или администратор.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-api/internal/http/response"
	"github.com/magabrotheeeer/blog-api/internal/lib/sl"
	"github.com/magabrotheeeer/blog-api/internal/models"
	"github.com/magabrotheeeer/blog-api/internal/services"
	"github.com/magabrotheeeer/blog-api/internal/storage"
)

// Service описывает интерфейс бизнес-логики удаления статьи.
type Service interface {
	Remove(ctx context.Context, uid string, actor models.User) error
}

// Handler обрабатывает запросы на удаление статьи.
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
	const op = "handlers.post.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	uid := chi.URLParam(r, "id")

	if err := h.service.Remove(r.Context(), uid, actor); err != nil {
		switch {
		case errors.Is(err, storage.ErrPostNotFound):
			log.Error("post not found", slog.String("uid", uid))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		case errors.Is(err, services.ErrForbidden):
			log.Error("remove forbidden", slog.String("uid", uid), slog.String("actor", actor.UID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("action is not allowed"))
		default:
			log.Error("failed to remove post", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.InternalError("failed to remove post", err))
		}
		return
	}

	log.Info("removed post", slog.String("uid", uid))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "post removed",
	}))
}
