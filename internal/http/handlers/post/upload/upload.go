// Package upload реализует HTTP-обработчик загрузки изображения для статьи.
//
// Принимается multipart-форма с полем image. Файл проверяется хранилищем
// изображений на тип и размер, в ответе возвращается путь к файлу, который
// можно использовать как image_url при создании статьи.
package upload

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-api/internal/http/response"
	"github.com/magabrotheeeer/blog-api/internal/lib/filestore"
	"github.com/magabrotheeeer/blog-api/internal/lib/sl"
)

// Store описывает интерфейс хранилища изображений.
type Store interface {
	SaveImage(originalName, contentType string, size int64, r io.Reader) (string, error)
}

// Handler обрабатывает загрузку изображений.
type Handler struct {
	log          *slog.Logger
	store        Store
	maxSizeBytes int64
}

// New создает новый Handler с переданным логгером и хранилищем изображений.
func New(log *slog.Logger, store Store, maxSizeBytes int64) *Handler {
	return &Handler{
		log:          log,
		store:        store,
		maxSizeBytes: maxSizeBytes,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.upload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(h.maxSizeBytes); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("no file uploaded"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Error("image field is missing", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("no file uploaded"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	url, err := h.store.SaveImage(header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		if errors.Is(err, filestore.ErrUnsupportedType) || errors.Is(err, filestore.ErrTooLarge) {
			log.Error("upload rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to save image", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.InternalError("failed to save image", err))
		return
	}

	log.Info("image uploaded", slog.String("url", url))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"url": url,
	}))
}
