// Package create реализует HTTP-обработчик создания статьи.
//
// Автор статьи всегда берётся из аутентифицированного пользователя,
// значение author из тела запроса игнорируется.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-api/internal/http/response"
	"github.com/magabrotheeeer/blog-api/internal/lib/sl"
	"github.com/magabrotheeeer/blog-api/internal/models"
	"github.com/magabrotheeeer/blog-api/internal/services"
)

// Service описывает интерфейс бизнес-логики создания статьи.
type Service interface {
	Create(ctx context.Context, authorUID string, draft models.PostDraft) (*models.Post, error)
}

// Handler обрабатывает запросы на создание статьи.
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

// ServeHTTP godoc
// @Summary Создание статьи
// @Tags Posts
// @Accept  json
// @Produce json
// @Param request body models.PostDraft true "Данные статьи"
// @Success 201 {object} response.Response "Статья создана"
// @Failure 400 {object} response.Response "Ошибка валидации"
// @Failure 401 {object} response.Response "Требуется аутентификация"
// @Security BearerAuth
// @Router /posts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.create"

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

	var draft models.PostDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(draft); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	post, err := h.service.Create(r.Context(), actor.UID, draft)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			log.Error("create rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to create post", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.InternalError("failed to create post", err))
		return
	}

	log.Info("created new post", slog.String("uid", post.UID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"post": post,
	}))
}
