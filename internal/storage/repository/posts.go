package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/blog-api/internal/models"
	"github.com/magabrotheeeer/blog-api/internal/storage"
)

// CreatePost вставляет новую статью и возвращает её uid.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) (string, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO posts (title, content, author_uid, image_url, category,
			      is_advertisement, status, tags, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING uid`
	var newUID string
	err = s.DB.QueryRowContext(ctx, query,
		post.Title, post.Content, post.AuthorUID, nullIfEmpty(post.ImageURL),
		post.Category, post.IsAdvertisement, post.Status, tags,
		post.CreatedAt, post.UpdatedAt).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetPost возвращает статью по uid вместе с именем автора.
func (s *Storage) GetPost(ctx context.Context, uid string) (*models.Post, error) {
	const op = "storage.GetPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.uid, p.title, p.content, p.author_uid, u.username, p.image_url,
			      p.category, p.is_advertisement, p.status, p.tags, p.created_at, p.updated_at
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  WHERE p.uid = $1`
	row := s.DB.QueryRowContext(ctx, query, uid)
	post, err := scanPost(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUID(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return post, nil
}

// ListPosts возвращает все статьи с именами авторов, новые первыми.
func (s *Storage) ListPosts(ctx context.Context) ([]*models.Post, error) {
	const op = "storage.ListPosts"
	query := `SELECT p.uid, p.title, p.content, p.author_uid, u.username, p.image_url,
			      p.category, p.is_advertisement, p.status, p.tags, p.created_at, p.updated_at
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  ORDER BY p.created_at DESC`
	return s.listPosts(ctx, op, query)
}

// ListAdvertisements возвращает опубликованные рекламные статьи,
// отсортированные по дате создания по убыванию.
func (s *Storage) ListAdvertisements(ctx context.Context) ([]*models.Post, error) {
	const op = "storage.ListAdvertisements"
	query := `SELECT p.uid, p.title, p.content, p.author_uid, u.username, p.image_url,
			      p.category, p.is_advertisement, p.status, p.tags, p.created_at, p.updated_at
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  WHERE p.is_advertisement = TRUE AND p.status = 'published'
			  ORDER BY p.created_at DESC`
	return s.listPosts(ctx, op, query)
}

// UpdatePost перезаписывает изменяемые поля статьи и возвращает число затронутых строк.
// Автор и дата создания не входят в запрос и не могут быть изменены.
func (s *Storage) UpdatePost(ctx context.Context, post models.Post) (int64, error) {
	const op = "storage.UpdatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE posts
			  SET title = $1, content = $2, image_url = $3, category = $4,
			      is_advertisement = $5, status = $6, tags = $7, updated_at = $8
			  WHERE uid = $9`
	result, err := s.DB.ExecContext(ctx, query,
		post.Title, post.Content, nullIfEmpty(post.ImageURL), post.Category,
		post.IsAdvertisement, post.Status, tags, post.UpdatedAt, post.UID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// DeletePost удаляет статью по uid и возвращает число удалённых строк.
func (s *Storage) DeletePost(ctx context.Context, uid string) (int64, error) {
	const op = "storage.DeletePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM posts WHERE uid = $1`, uid)
	if err != nil {
		if isInvalidUID(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

func (s *Storage) listPosts(ctx context.Context, op, query string) ([]*models.Post, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// scanPost читает одну строку выборки статьи, общий код для QueryRow и Query.
func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	var p models.Post
	var imageURL sql.NullString
	var tags []byte
	if err := scan(&p.UID, &p.Title, &p.Content, &p.AuthorUID, &p.AuthorName,
		&imageURL, &p.Category, &p.IsAdvertisement, &p.Status, &tags,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		p.ImageURL = imageURL.String
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
