package models

import "time"

// Статусы публикации блога.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// Blog представляет публикацию в контентной системе.
// Создаётся всегда в статусе draft; публикует и удаляет только администратор.
type Blog struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Content      string    `json:"content"` // Содержимое в формате HTML
	Status       string    `json:"status"`  // draft или published
	AuthorEmail  string    `json:"authorEmail"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DummyBlog используется для приёма данных публикации из JSON-запроса.
type DummyBlog struct {
	Title        string `json:"title" validate:"required,min=3,max=200"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Content      string `json:"content" validate:"required"`
}
