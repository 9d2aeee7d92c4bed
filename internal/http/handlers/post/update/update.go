// Package update реализует HTTP-обработчик изменения статьи.
//
// Изменять статью может только её автор или администратор. Отсутствующая
// статья даёт 404 до проверки прав, чтобы не раскрывать её принадлежность.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-api/internal/http/response"
	"github.com/magabrotheeeer/blog-api/internal/lib/sl"
	"github.com/magabrotheeeer/blog-api/internal/models"
	"github.com/magabrotheeeer/blog-api/internal/services"
	"github.com/magabrotheeeer/blog-api/internal/storage"
)

// Service описывает интерфейс бизнес-логики изменения статьи.
type Service interface {
	Update(ctx context.Context, uid string, actor models.User, patch models.PostPatch) (*models.Post, error)
}

// Handler обрабатывает запросы на изменение статьи.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.update"

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

	var patch models.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(patch); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	post, err := h.service.Update(r.Context(), uid, actor, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrPostNotFound):
			log.Error("post not found", slog.String("uid", uid))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		case errors.Is(err, services.ErrForbidden):
			log.Error("update forbidden", slog.String("uid", uid), slog.String("actor", actor.UID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("action is not allowed"))
		case errors.Is(err, services.ErrValidation):
			log.Error("update rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to update post", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.InternalError("failed to update post", err))
		}
		return
	}

	log.Info("updated post", slog.String("uid", uid))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"post": post,
	}))
}
