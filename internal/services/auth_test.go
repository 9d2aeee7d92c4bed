package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-api/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-api/internal/lib/password"
	"github.com/magabrotheeeer/blog-api/internal/models"
	"github.com/magabrotheeeer/blog-api/internal/storage"
)

type mockUserRepo struct {
	RegisterUserFunc   func(ctx context.Context, user models.User) (string, error)
	GetUserByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	GetUserFunc        func(ctx context.Context, userUID string) (*models.User, error)
	ListUsersFunc      func(ctx context.Context) ([]*models.User, error)
}

func (m *mockUserRepo) RegisterUser(ctx context.Context, user models.User) (string, error) {
	return m.RegisterUserFunc(ctx, user)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetUserByEmailFunc(ctx, email)
}

func (m *mockUserRepo) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	return m.GetUserFunc(ctx, userUID)
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	return m.ListUsersFunc(ctx)
}

type mockJWTMaker struct {
	GenerateTokenFunc func(username, role, userUID string) (string, error)
	ParseTokenFunc    func(tokenStr string) (*jwt.CustomClaims, error)
}

func (m *mockJWTMaker) GenerateToken(username, role, userUID string) (string, error) {
	return m.GenerateTokenFunc(username, role, userUID)
}

func (m *mockJWTMaker) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	return m.ParseTokenFunc(tokenStr)
}

func staticTokenMaker() *mockJWTMaker {
	return &mockJWTMaker{
		GenerateTokenFunc: func(username, role, userUID string) (string, error) {
			return "test-token", nil
		},
		ParseTokenFunc: func(tokenStr string) (*jwt.CustomClaims, error) {
			return &jwt.CustomClaims{Username: "testuser", Role: "user", UserUID: "uid-1"}, nil
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes email and strips hash", func(t *testing.T) {
		var stored models.User
		repo := &mockUserRepo{
			GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				assert.Equal(t, "alice@x.com", email)
				return nil, storage.ErrUserNotFound
			},
			RegisterUserFunc: func(ctx context.Context, user models.User) (string, error) {
				stored = user
				return "uid-1", nil
			},
		}

		service := NewAuthService(repo, staticTokenMaker())
		user, token, err := service.Register(ctx, " alice ", "Alice@X.com", "Passw0rd")
		require.NoError(t, err)

		assert.Equal(t, "test-token", token)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@x.com", user.Email)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Empty(t, user.PasswordHash, "returned user must not contain the password hash")

		assert.NotEmpty(t, stored.PasswordHash)
		assert.NotEqual(t, "Passw0rd", stored.PasswordHash)
		assert.False(t, stored.CreatedAt.IsZero())
		assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)
	})

	t.Run("rejects weak password before hashing", func(t *testing.T) {
		repo := &mockUserRepo{
			GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				t.Fatal("storage should not be called for weak password")
				return nil, nil
			},
		}

		service := NewAuthService(repo, staticTokenMaker())
		_, _, err := service.Register(ctx, "alice", "alice@x.com", "password")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("rejects short username", func(t *testing.T) {
		service := NewAuthService(&mockUserRepo{}, staticTokenMaker())
		_, _, err := service.Register(ctx, "al", "alice@x.com", "Passw0rd")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		service := NewAuthService(&mockUserRepo{}, staticTokenMaker())
		_, _, err := service.Register(ctx, "alice", "not-an-email", "Passw0rd")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("duplicate email any casing", func(t *testing.T) {
		repo := &mockUserRepo{
			GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				assert.Equal(t, "taken@x.com", email)
				return &models.User{UID: "uid-1", Email: email}, nil
			},
		}

		service := NewAuthService(repo, staticTokenMaker())
		_, _, err := service.Register(ctx, "alice", "TAKEN@x.com", "Passw0rd")
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrEmailTaken))
	})

	t.Run("unique index race surfaces as duplicate", func(t *testing.T) {
		repo := &mockUserRepo{
			GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return nil, storage.ErrUserNotFound
			},
			RegisterUserFunc: func(ctx context.Context, user models.User) (string, error) {
				// Вставка проиграла гонку параллельной регистрации.
				return "", storage.ErrEmailTaken
			},
		}

		service := NewAuthService(repo, staticTokenMaker())
		_, _, err := service.Register(ctx, "alice", "alice@x.com", "Passw0rd")
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrEmailTaken))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := password.GetHash("Passw0rd")
	require.NoError(t, err)

	existing := &models.User{
		UID:          "uid-1",
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	t.Run("success", func(t *testing.T) {
		repo := &mockUserRepo{
			GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				u := *existing
				return &u, nil
			},
		}

		service := NewAuthService(repo, staticTokenMaker())
		user, token, err := service.Login(ctx, "Alice@X.com", "Passw0rd")
		require.NoError(t, err)
		assert.Equal(t, "test-token", token)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		unknownRepo := &mockUserRepo{
			GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return nil, storage.ErrUserNotFound
			},
		}
		wrongPassRepo := &mockUserRepo{
			GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				u := *existing
				return &u, nil
			},
		}

		service1 := NewAuthService(unknownRepo, staticTokenMaker())
		_, _, err1 := service1.Login(ctx, "nobody@x.com", "anything")

		service2 := NewAuthService(wrongPassRepo, staticTokenMaker())
		_, _, err2 := service2.Login(ctx, "alice@x.com", "WrongPass1")

		require.Error(t, err1)
		require.Error(t, err2)
		assert.Equal(t, err1, err2)
		assert.True(t, errors.Is(err1, ErrInvalidCredentials))
	})
}

func TestAuthService_ResolveToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &mockUserRepo{
			GetUserFunc: func(ctx context.Context, userUID string) (*models.User, error) {
				require.Equal(t, "uid-1", userUID)
				return &models.User{UID: "uid-1", Username: "testuser", Role: "user", PasswordHash: "hash"}, nil
			},
		}

		service := NewAuthService(repo, staticTokenMaker())
		user, err := service.ResolveToken(ctx, "test-token")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", user.UID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("deleted user is rejected", func(t *testing.T) {
		repo := &mockUserRepo{
			GetUserFunc: func(ctx context.Context, userUID string) (*models.User, error) {
				return nil, storage.ErrUserNotFound
			},
		}

		service := NewAuthService(repo, staticTokenMaker())
		_, err := service.ResolveToken(ctx, "test-token")
		require.Error(t, err)
	})
}

func TestAuthService_ListUsers(t *testing.T) {
	repo := &mockUserRepo{
		ListUsersFunc: func(ctx context.Context) ([]*models.User, error) {
			return []*models.User{
				{UID: "uid-1", Username: "alice", PasswordHash: "hash-1"},
				{UID: "uid-2", Username: "bob", PasswordHash: "hash-2"},
			}, nil
		},
	}

	service := NewAuthService(repo, staticTokenMaker())
	users, err := service.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}
