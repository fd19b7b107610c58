package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/models"
)

const userColumns = `uid, email, name, password_hash, role, status,
	blood_group, district, upazila, avatar_url, created_at`

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolation = "23505"

// RegisterUser сохраняет нового пользователя и возвращает его UID.
// Повтор email отображается в domain.ErrUserAlreadyExists.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, name, password_hash, role, status,
			      blood_group, district, upazila, avatar_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING uid`
	var uid string
	err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.Role, user.Status,
		user.BloodGroup, user.District, user.Upazila, user.AvatarURL).Scan(&uid)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("%s: %w", op, domain.ErrUserAlreadyExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// GetUserByEmail возвращает пользователя по email или domain.ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	row := s.DB.QueryRowContext(ctx, query, email)

	var u models.User
	if err := row.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.Status, &u.BloodGroup, &u.District, &u.Upazila, &u.AvatarURL,
		&u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// UpdateUserProfile обновляет изменяемые поля профиля. Email неизменяем
// и служит ключом выборки.
func (s *Storage) UpdateUserProfile(ctx context.Context, email string, profile models.DummyProfileUpdate) (int64, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1, blood_group = $2, district = $3, upazila = $4, avatar_url = $5
			  WHERE email = $6`
	result, err := s.DB.ExecContext(ctx, query,
		profile.Name, profile.BloodGroup, profile.District, profile.Upazila,
		profile.AvatarURL, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// UpdateUserStatus меняет статус учётной записи (active/blocked) по UID
// и возвращает email изменённого пользователя для инвалидации кеша ролей.
func (s *Storage) UpdateUserStatus(ctx context.Context, uid, status string) (string, error) {
	const op = "storage.UpdateUserStatus"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET status = $2 WHERE uid = $1 RETURNING email`
	var email string
	if err := s.DB.QueryRowContext(ctx, query, uid, status).Scan(&email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return email, nil
}

// UpdateUserRole меняет роль пользователя по UID и возвращает его email.
func (s *Storage) UpdateUserRole(ctx context.Context, uid, role string) (string, error) {
	const op = "storage.UpdateUserRole"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET role = $2 WHERE uid = $1 RETURNING email`
	var email string
	if err := s.DB.QueryRowContext(ctx, query, uid, role).Scan(&email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return email, nil
}

// ListUsers возвращает пользователей с опциональным фильтром по статусу.
func (s *Storage) ListUsers(ctx context.Context, status string, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var args []any
	query := `SELECT ` + userColumns + ` FROM users`
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

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
			&u.Status, &u.BloodGroup, &u.District, &u.Upazila, &u.AvatarURL,
			&u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SearchDonors ищет активных доноров по группе крови и, опционально,
// по району и упазиле.
func (s *Storage) SearchDonors(ctx context.Context, filter models.DonorFilter) ([]*models.User, error) {
	const op = "storage.SearchDonors"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users
			  WHERE role = 'donor' AND status = 'active'
			    AND blood_group = $1
			    AND ($2::text = '' OR district = $2)
			    AND ($3::text = '' OR upazila = $3)
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, filter.BloodGroup, filter.District, filter.Upazila)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
			&u.Status, &u.BloodGroup, &u.District, &u.Upazila, &u.AvatarURL,
			&u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUsers возвращает общее количество пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
