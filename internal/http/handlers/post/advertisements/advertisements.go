// Package advertisements реализует HTTP-обработчик списка опубликованной рекламы.
package advertisements

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

// Service описывает интерфейс бизнес-логики списка рекламы.
type Service interface {
	ListAdvertisements(ctx context.Context) ([]*models.Post, error)
}

// Handler обрабатывает запросы списка опубликованных рекламных статей.
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
	const op = "handlers.post.advertisements"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ads, err := h.service.ListAdvertisements(r.Context())
	if err != nil {
		log.Error("failed to list advertisements", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.InternalError("internal error", err))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":          len(ads),
		"advertisements": ads,
	}))
}
