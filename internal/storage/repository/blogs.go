package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/models"
)

// CreateBlog вставляет новую публикацию в статусе draft и возвращает её ID.
func (s *Storage) CreateBlog(ctx context.Context, b models.Blog) (string, error) {
	const op = "storage.CreateBlog"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO blogs (title, thumbnail_url, content, status, author_email)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id string
	err := s.DB.QueryRowContext(ctx, query,
		b.Title, b.ThumbnailURL, b.Content, b.Status, b.AuthorEmail).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ReadBlog возвращает публикацию по ID или domain.ErrNotFound.
func (s *Storage) ReadBlog(ctx context.Context, id string) (*models.Blog, error) {
	const op = "storage.ReadBlog"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, thumbnail_url, content, status, author_email, created_at
			  FROM blogs WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var b models.Blog
	if err := row.Scan(&b.ID, &b.Title, &b.ThumbnailURL, &b.Content, &b.Status,
		&b.AuthorEmail, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}

// UpdateBlog обновляет содержимое публикации и возвращает количество
// изменённых строк.
func (s *Storage) UpdateBlog(ctx context.Context, id string, b models.DummyBlog) (int64, error) {
	const op = "storage.UpdateBlog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE blogs SET title = $1, thumbnail_url = $2, content = $3 WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, b.Title, b.ThumbnailURL, b.Content, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// SetBlogStatus переключает публикацию между draft и published.
func (s *Storage) SetBlogStatus(ctx context.Context, id, status string) (int64, error) {
	const op = "storage.SetBlogStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE blogs SET status = $2 WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveBlog удаляет публикацию и возвращает количество удалённых строк.
func (s *Storage) RemoveBlog(ctx context.Context, id string) (int64, error) {
	const op = "storage.RemoveBlog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM blogs WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListBlogs возвращает публикации с опциональным фильтром по статусу.
func (s *Storage) ListBlogs(ctx context.Context, status string, limit, offset int) ([]*models.Blog, error) {
	const op = "storage.ListBlogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var args []any
	query := `SELECT id, title, thumbnail_url, content, status, author_email, created_at FROM blogs`
	if status != "" {
		args = append(args, status)
		query += " WHERE status = $1"
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Blog
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.ThumbnailURL, &b.Content,
			&b.Status, &b.AuthorEmail, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
