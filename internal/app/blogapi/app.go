// Package blogapi собирает приложение блога: хранилище, кеш, миграции,
// бизнес-логику и HTTP-сервер с маршрутами.
package blogapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/blog-api/internal/cache"
	"github.com/magabrotheeeer/blog-api/internal/config"
	"github.com/magabrotheeeer/blog-api/internal/http/response"
	"github.com/magabrotheeeer/blog-api/internal/lib/filestore"
	"github.com/magabrotheeeer/blog-api/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-api/internal/migrations"
	"github.com/magabrotheeeer/blog-api/internal/services"
	"github.com/magabrotheeeer/blog-api/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует все зависимости приложения по конфигу.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Детали внутренних ошибок уходят клиенту только вне продакшена.
	response.SetExposeErrors(cfg.Env == "local" || cfg.Env == "dev")

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	imageStore, err := filestore.New(cfg.Uploads.Dir, cfg.Uploads.MaxSizeBytes)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := services.NewAuthService(db, jwtMaker)
	postService := services.NewPostService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, postService, imageStore, cfg.Uploads.MaxSizeBytes)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
