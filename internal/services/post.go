package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-api/internal/models"
	"github.com/magabrotheeeer/blog-api/internal/storage"
)

// PostRepository определяет методы для работы со статьями в хранилище.
type PostRepository interface {
	// CreatePost добавляет новую статью и возвращает её uid.
	CreatePost(ctx context.Context, post models.Post) (string, error)
	// GetPost возвращает статью по uid вместе с именем автора.
	GetPost(ctx context.Context, uid string) (*models.Post, error)
	// ListPosts возвращает все статьи с именами авторов.
	ListPosts(ctx context.Context) ([]*models.Post, error)
	// ListAdvertisements возвращает опубликованную рекламу, новые первыми.
	ListAdvertisements(ctx context.Context) ([]*models.Post, error)
	// UpdatePost перезаписывает изменяемые поля статьи.
	UpdatePost(ctx context.Context, post models.Post) (int64, error)
	// DeletePost удаляет статью по uid.
	DeletePost(ctx context.Context, uid string) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// imageURLPattern допустимые расширения ссылки на изображение статьи.
var imageURLPattern = regexp.MustCompile(`(?i)\.(jpeg|jpg|gif|png|webp)$`)

// PostService реализует бизнес-логику работы со статьями, включая
// проверку инвариантов, права доступа и кеширование чтений.
type PostService struct {
	repo     PostRepository
	cache    Cache
	validate *validator.Validate
	log      *slog.Logger
}

// NewPostService создает новый экземпляр PostService.
func NewPostService(repo PostRepository, cache Cache, log *slog.Logger) *PostService {
	return &PostService{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
		log:      log,
	}
}

// Create создает новую статью от имени authorUID.
//
// Инварианты применяются до сохранения: статья категории "advertisement"
// помечается рекламной и наоборот, новая реклама всегда получает статус
// "pending" независимо от статуса в запросе.
func (s *PostService) Create(ctx context.Context, authorUID string, draft models.PostDraft) (*models.Post, error) {
	normalizeDraft(&draft)
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if draft.ImageURL != "" && !imageURLPattern.MatchString(draft.ImageURL) {
		return nil, fmt.Errorf("%w: image url must end with .jpeg, .jpg, .gif, .png or .webp", ErrValidation)
	}

	isAdvertisement := draft.IsAdvertisement || draft.Category == models.CategoryAdvertisement
	category := draft.Category
	if isAdvertisement {
		category = models.CategoryAdvertisement
	}
	status := draft.Status
	if status == "" {
		status = models.StatusDraft
	}
	if isAdvertisement {
		// Новая реклама попадает на модерацию независимо от запрошенного статуса.
		status = models.StatusPending
	}

	now := time.Now().UTC()
	post := models.Post{
		Title:           draft.Title,
		Content:         draft.Content,
		AuthorUID:       authorUID,
		ImageURL:        draft.ImageURL,
		Category:        category,
		IsAdvertisement: isAdvertisement,
		Status:          status,
		Tags:            draft.Tags,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	uid, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	post.UID = uid
	s.log.Info("created new post", slog.String("uid", uid))

	cacheKey := postCacheKey(uid)
	if err := s.cache.Set(cacheKey, post, time.Hour); err != nil {
		s.log.Warn("failed to cache post", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return &post, nil
}

// GetByUID возвращает статью по uid, используя кеш или репозиторий.
func (s *PostService) GetByUID(ctx context.Context, uid string) (*models.Post, error) {
	var result *models.Post
	cacheKey := postCacheKey(uid)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetPost(ctx, uid)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// ListAll возвращает все статьи с именами авторов.
func (s *PostService) ListAll(ctx context.Context) ([]*models.Post, error) {
	return s.repo.ListPosts(ctx)
}

// ListAdvertisements возвращает только опубликованную рекламу, новые первыми.
func (s *PostService) ListAdvertisements(ctx context.Context) ([]*models.Post, error) {
	return s.repo.ListAdvertisements(ctx)
}

// Update изменяет статью uid от имени actor.
//
// Отсутствующая статья даёт storage.ErrPostNotFound до любой проверки прав.
// Менять статью может только её автор или администратор. Автор и дата
// создания не изменяются, инвариант рекламной категории применяется заново.
func (s *PostService) Update(ctx context.Context, uid string, actor models.User, patch models.PostPatch) (*models.Post, error) {
	normalizePatch(&patch)
	if err := s.validate.Struct(patch); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if patch.ImageURL != nil && *patch.ImageURL != "" && !imageURLPattern.MatchString(*patch.ImageURL) {
		return nil, fmt.Errorf("%w: image url must end with .jpeg, .jpg, .gif, .png or .webp", ErrValidation)
	}

	post, err := s.repo.GetPost(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !canModify(*post, actor) {
		return nil, ErrForbidden
	}

	applyPatch(post, patch)

	// Инвариант рекламы применяется заново после изменения категории или флага.
	if post.Category == models.CategoryAdvertisement {
		post.IsAdvertisement = true
	}
	if post.IsAdvertisement {
		post.Category = models.CategoryAdvertisement
	}
	post.UpdatedAt = time.Now().UTC()

	rows, err := s.repo.UpdatePost(ctx, *post)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, storage.ErrPostNotFound
	}

	cacheKey := postCacheKey(uid)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return post, nil
}

// Remove удаляет статью uid от имени actor. Правила доступа те же, что и
// у Update, удаление необратимо.
func (s *PostService) Remove(ctx context.Context, uid string, actor models.User) error {
	post, err := s.repo.GetPost(ctx, uid)
	if err != nil {
		return err
	}
	if !canModify(*post, actor) {
		return ErrForbidden
	}

	rows, err := s.repo.DeletePost(ctx, uid)
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrPostNotFound
	}

	cacheKey := postCacheKey(uid)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	s.log.Info("removed post", slog.String("uid", uid))
	return nil
}

// canModify единая проверка прав на изменение и удаление статьи:
// разрешено автору и администратору.
func canModify(post models.Post, actor models.User) bool {
	return post.AuthorUID == actor.UID || actor.IsAdmin()
}

func postCacheKey(uid string) string {
	return "post:" + uid
}

func normalizeDraft(draft *models.PostDraft) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.ImageURL = strings.TrimSpace(draft.ImageURL)
	draft.Tags = trimTags(draft.Tags)
}

func normalizePatch(patch *models.PostPatch) {
	if patch.Title != nil {
		*patch.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.ImageURL != nil {
		*patch.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.Tags != nil {
		*patch.Tags = trimTags(*patch.Tags)
	}
}

func trimTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		result = append(result, strings.TrimSpace(tag))
	}
	return result
}

func applyPatch(post *models.Post, patch models.PostPatch) {
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.Category != nil {
		post.Category = *patch.Category
		// Явная смена категории с рекламной снимает флаг, иначе инвариант
		// вернул бы категорию "advertisement" обратно.
		if *patch.Category != models.CategoryAdvertisement && patch.IsAdvertisement == nil {
			post.IsAdvertisement = false
		}
	}
	if patch.ImageURL != nil {
		post.ImageURL = *patch.ImageURL
	}
	if patch.IsAdvertisement != nil {
		post.IsAdvertisement = *patch.IsAdvertisement
	}
	if patch.Status != nil {
		post.Status = *patch.Status
	}
	if patch.Tags != nil {
		post.Tags = *patch.Tags
	}
}
