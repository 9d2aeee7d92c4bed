// Package list реализует HTTP-обработчик списка всех статей.
// Маршрут публичный, в каждой статье заполнено имя автора.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-api/internal/http/response"
	"github.com/magabrotheeeer/blog-api/internal/lib/sl"
	"github.com/magabrotheeeer/blog-api/internal/models"
)

// Service описывает интерфейс бизнес-логики списка статей.
type Service interface {
	ListAll(ctx context.Context) ([]*models.Post, error)
}

// Handler обрабатывает запросы списка статей.
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

// ServeHTTP godoc
// @Summary Список всех статей
// @Tags Posts
// @Produce json
// @Success 200 {object} response.Response "Список статей с именами авторов"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /posts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	posts, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.InternalError("internal error", err))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"posts": posts,
	}))
}
