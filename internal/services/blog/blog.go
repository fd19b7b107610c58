// Package blog содержит бизнес-логику публикаций: черновики, публикацию
// и публичную ленту. Новая публикация всегда создаётся черновиком; менять
// статус публикации может только администратор.
package blog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/models"
)

// BlogRepository определяет методы хранилища публикаций.
type BlogRepository interface {
	CreateBlog(ctx context.Context, b models.Blog) (string, error)
	ReadBlog(ctx context.Context, id string) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id string, upd models.DummyBlog) (int64, error)
	SetBlogStatus(ctx context.Context, id, status string) (int64, error)
	RemoveBlog(ctx context.Context, id string) (int64, error)
	ListBlogs(ctx context.Context, status string, limit, offset int) ([]*models.Blog, error)
}

// Service реализует операции над публикациями.
type Service struct {
	repo BlogRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo BlogRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create создает публикацию в статусе draft от имени автора.
func (s *Service) Create(ctx context.Context, authorEmail string, req models.DummyBlog) (string, error) {
	const op = "services.blog.Create"

	id, err := s.repo.CreateBlog(ctx, models.Blog{
		Title:        req.Title,
		ThumbnailURL: req.ThumbnailURL,
		Content:      req.Content,
		Status:       models.BlogStatusDraft,
		AuthorEmail:  authorEmail,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created blog", slog.String("id", id))
	return id, nil
}

// Read возвращает публикацию по ID.
func (s *Service) Read(ctx context.Context, id string) (*models.Blog, error) {
	const op = "services.blog.Read"

	b, err := s.repo.ReadBlog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// Update обновляет содержимое публикации.
func (s *Service) Update(ctx context.Context, id string, req models.DummyBlog) error {
	const op = "services.blog.Update"

	rows, err := s.repo.UpdateBlog(ctx, id, req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// SetStatus переводит публикацию между draft и published.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	const op = "services.blog.SetStatus"

	if status != models.BlogStatusDraft && status != models.BlogStatusPublished {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	rows, err := s.repo.SetBlogStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	s.log.Info("updated blog status", slog.String("id", id), slog.String("status", status))
	return nil
}

// Remove удаляет публикацию.
func (s *Service) Remove(ctx context.Context, id string) error {
	const op = "services.blog.Remove"

	rows, err := s.repo.RemoveBlog(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	s.log.Info("removed blog", slog.String("id", id))
	return nil
}

// List возвращает публикации для панели управления, опционально по статусу.
func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*models.Blog, error) {
	const op = "services.blog.List"

	entries, err := s.repo.ListBlogs(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// ListPublished возвращает только опубликованные записи для публичной ленты.
func (s *Service) ListPublished(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	const op = "services.blog.ListPublished"

	entries, err := s.repo.ListBlogs(ctx, models.BlogStatusPublished, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}
