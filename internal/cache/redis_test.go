package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-api/internal/config"
	"github.com/magabrotheeeer/blog-api/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := models.Post{
		UID:      "post-1",
		Title:    "Cached post",
		Category: models.CategoryTechnology,
		Status:   models.StatusPublished,
		Tags:     []string{"go"},
	}
	err := cache.Set("post:post-1", expected, time.Minute)
	require.NoError(t, err)

	var actual models.Post
	found, err := cache.Get("post:post-1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected.Title, actual.Title)
	assert.Equal(t, expected.Tags, actual.Tags)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out models.Post
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("post:post-1", models.Post{UID: "post-1"}, time.Minute))
	require.NoError(t, cache.Invalidate("post:post-1"))

	var out models.Post
	found, err := cache.Get("post:post-1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitServer_BadAddress(t *testing.T) {
	_, err := InitServer(context.Background(), config.RedisConnection{
		AddressRedis: "localhost:1",
		DialTimeout:  100 * time.Millisecond,
	})
	assert.Error(t, err)
}
