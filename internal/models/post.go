package models

import "time"

// Категории статей.
const (
	CategoryTechnology    = "technology"
	CategoryMedicine      = "medicine"
	CategoryBusiness      = "business"
	CategoryEducation     = "education"
	CategoryLifestyle     = "lifestyle"
	CategoryAdvertisement = "advertisement"
)

// Статусы статей.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusPending   = "pending"
)

// Post представляет статью блога.
//
// Поле AuthorName заполняется при чтении из хранилища проекцией
// имени автора и не хранится в таблице статей.
type Post struct {
	UID             string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	AuthorUID       string    `json:"author"`
	AuthorName      string    `json:"author_name,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	Category        string    `json:"category"`
	IsAdvertisement bool      `json:"is_advertisement"`
	Status          string    `json:"status"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PostDraft входные данные для создания статьи. Автор берётся из
// действующего пользователя, а не из тела запроса.
type PostDraft struct {
	Title           string   `json:"title" validate:"required,min=3,max=100"`
	Content         string   `json:"content" validate:"required,min=10"`
	Category        string   `json:"category" validate:"required,oneof=technology medicine business education lifestyle advertisement"`
	ImageURL        string   `json:"image_url" validate:"omitempty"`
	IsAdvertisement bool     `json:"is_advertisement"`
	Status          string   `json:"status" validate:"omitempty,oneof=draft published archived pending"`
	Tags            []string `json:"tags" validate:"omitempty,dive,max=20"`
}

// PostPatch частичное обновление статьи: nil-поле означает "не менять".
// Автор и дата создания не изменяются никогда.
type PostPatch struct {
	Title           *string   `json:"title" validate:"omitempty,min=3,max=100"`
	Content         *string   `json:"content" validate:"omitempty,min=10"`
	Category        *string   `json:"category" validate:"omitempty,oneof=technology medicine business education lifestyle advertisement"`
	ImageURL        *string   `json:"image_url" validate:"omitempty"`
	IsAdvertisement *bool     `json:"is_advertisement"`
	Status          *string   `json:"status" validate:"omitempty,oneof=draft published archived pending"`
	Tags            *[]string `json:"tags" validate:"omitempty,dive,max=20"`
}
