// Package middlewarectx содержит HTTP middleware аутентификации и ограничения
// частоты запросов.
//
// JWTMiddleware проверяет JWT из заголовка Authorization, заново находит
// пользователя в хранилище и кладёт его данные в контекст запроса. Это
// единственная точка разрешения токена в пользователя: токен удалённого
// пользователя отклоняется так же, как некорректный или просроченный.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-api/internal/http/response"
	"github.com/magabrotheeeer/blog-api/internal/lib/sl"
	"github.com/magabrotheeeer/blog-api/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для uid пользователя в контексте
	UserUID Key = "user_uid"
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// Service описывает интерфейс сервиса для разрешения JWT токена в пользователя.
type Service interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке
// Authorization.
//
// Если токен валиден и пользователь существует, добавляет uid, имя и роль
// пользователя в контекст запроса, иначе возвращает 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "auth.JWTMiddleware"

			reqLog := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				reqLog.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ResolveToken(r.Context(), tokenStr)
			if err != nil {
				reqLog.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, user.UID)
			ctx = context.WithValue(ctx, User, user.Username)
			ctx = context.WithValue(ctx, Role, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext собирает пользователя из значений, положенных в контекст
// JWTMiddleware. Возвращает false, если запрос не проходил аутентификацию.
func ActorFromContext(ctx context.Context) (models.User, bool) {
	uid, ok := ctx.Value(UserUID).(string)
	if !ok || uid == "" {
		return models.User{}, false
	}
	username, _ := ctx.Value(User).(string)
	role, _ := ctx.Value(Role).(string)
	return models.User{UID: uid, Username: username, Role: role}, true
}
