// Package services содержит бизнес-логику блога: регистрацию и аутентификацию
// пользователей, а также операции над статьями с проверкой прав доступа.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-api/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-api/internal/lib/password"
	"github.com/magabrotheeeer/blog-api/internal/models"
	"github.com/magabrotheeeer/blog-api/internal/storage"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его uid.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по uid или storage.ErrUserNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и разрешение токена в пользователя.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	validate *validator.Validate
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		validate: validator.New(),
	}
}

// Register создает нового пользователя с дефолтной ролью "user" и сразу
// выдает ему токен. Пароль проверяется на соответствие политике до
// хеширования, email приводится к нижнему регистру до сохранения.
//
// Возвращаемый пользователь не содержит хэша пароля.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validate.Var(username, "required,min=3,max=30"); err != nil {
		return nil, "", fmt.Errorf("%w: username must contain from 3 to 30 characters", ErrValidation)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, "", fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	if err := password.ValidatePolicy(rawPassword); err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	// Проверка существования до вставки. Гонка двух одновременных
	// регистраций закрывается уникальным индексом в базе данных.
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, "", storage.ErrEmailTaken
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, "", err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return nil, "", err
	}

	sanitized := user.Sanitize()
	return &sanitized, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
//
// Несуществующий email и неверный пароль дают одну и ту же ошибку
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return nil, "", err
	}

	sanitized := user.Sanitize()
	return &sanitized, token, nil
}

// ResolveToken проверяет JWT и возвращает пользователя из хранилища.
//
// Токен удалённого пользователя недействителен, даже если подпись
// и срок действия корректны.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitize()
	return &sanitized, nil
}

// GetUser возвращает пользователя по uid без хэша пароля.
func (s *AuthService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitize()
	return &sanitized, nil
}

// ListUsers возвращает всех пользователей без хэшей паролей.
func (s *AuthService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*models.User, 0, len(users))
	for _, u := range users {
		sanitized := u.Sanitize()
		result = append(result, &sanitized)
	}
	return result, nil
}
