package blogapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/blog-api/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/blog-api/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/blog-api/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/blog-api/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/blog-api/internal/http/handlers/post/advertisements"
	"github.com/magabrotheeeer/blog-api/internal/http/handlers/post/create"
	postlist "github.com/magabrotheeeer/blog-api/internal/http/handlers/post/list"
	"github.com/magabrotheeeer/blog-api/internal/http/handlers/post/read"
	"github.com/magabrotheeeer/blog-api/internal/http/handlers/post/remove"
	"github.com/magabrotheeeer/blog-api/internal/http/handlers/post/update"
	"github.com/magabrotheeeer/blog-api/internal/http/handlers/post/upload"
	userlist "github.com/magabrotheeeer/blog-api/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/blog-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-api/internal/lib/filestore"
	"github.com/magabrotheeeer/blog-api/internal/services"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *services.AuthService,
	postService *services.PostService, imageStore *filestore.Store, maxUploadBytes int64) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/logout", logout.New(logger).ServeHTTP)

		// Публичное чтение статей
		r.Get("/posts", postlist.New(logger, postService).ServeHTTP)
		r.Get("/posts/advertisements", advertisements.New(logger, postService).ServeHTTP)
		r.Get("/posts/{id}", read.New(logger, postService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/me", me.New(logger, authService).ServeHTTP)
			r.Get("/users", userlist.New(logger, authService).ServeHTTP)
			r.Post("/posts", create.New(logger, postService).ServeHTTP)
			r.Put("/posts/{id}", update.New(logger, postService).ServeHTTP)
			r.Delete("/posts/{id}", remove.New(logger, postService).ServeHTTP)
			r.Post("/posts/upload", upload.New(logger, imageStore, maxUploadBytes).ServeHTTP)
		})
	})

	// Загруженные изображения раздаются как статика
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(imageStore.Dir()))))

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
