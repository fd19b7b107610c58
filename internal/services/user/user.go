// Package user содержит бизнес-логику учётных записей: определение роли,
// администрирование пользователей, публичный поиск доноров и профиль.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
)

const roleCacheTTL = 5 * time.Minute

// UserRepository определяет методы хранилища учётных записей.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, email string, upd models.DummyProfileUpdate) (int64, error)
	UpdateUserStatus(ctx context.Context, uid, status string) (string, error)
	UpdateUserRole(ctx context.Context, uid, role string) (string, error)
	ListUsers(ctx context.Context, status string, limit, offset int) ([]*models.User, error)
	SearchDonors(ctx context.Context, filter models.DonorFilter) ([]*models.User, error)
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// LocationValidator проверяет пару район/упазила по справочнику.
type LocationValidator interface {
	ValidPair(district, upazila string) bool
}

// Service реализует операции над учётными записями.
type Service struct {
	repo      UserRepository
	cache     Cache
	locations LocationValidator
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo UserRepository, cache Cache, locations LocationValidator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		locations: locations,
		log:       log,
	}
}

// roleState кешируемая пара роль/статус пользователя.
type roleState struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

// ResolveRole возвращает актуальные роль и статус пользователя, минуя
// утверждения из токена. Ошибка кеша не фатальна, ошибка хранилища — да:
// при недоступном хранилище доступ закрывается, а не открывается.
func (s *Service) ResolveRole(ctx context.Context, email string) (role string, status string, err error) {
	const op = "services.user.ResolveRole"

	cacheKey := roleCacheKey(email)
	var cached roleState
	found, cerr := s.cache.Get(ctx, cacheKey, &cached)
	if cerr != nil {
		s.log.Warn("role cache lookup failed", slog.String("key", cacheKey), sl.Err(cerr))
	}
	if found {
		return cached.Role, cached.Status, nil
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if cerr := s.cache.Set(ctx, cacheKey, roleState{Role: u.Role, Status: u.Status}, roleCacheTTL); cerr != nil {
		s.log.Warn("failed to cache role", slog.String("key", cacheKey), sl.Err(cerr))
	}
	return u.Role, u.Status, nil
}

// Profile возвращает профиль пользователя по email.
func (s *Service) Profile(ctx context.Context, email string) (*models.User, error) {
	const op = "services.user.Profile"

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateProfile обновляет редактируемые поля профиля вызывающего.
func (s *Service) UpdateProfile(ctx context.Context, email string, upd models.DummyProfileUpdate) error {
	const op = "services.user.UpdateProfile"

	if !s.locations.ValidPair(upd.District, upd.Upazila) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnknownLocation)
	}
	rows, err := s.repo.UpdateUserProfile(ctx, email, upd)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// List возвращает страницу пользователей, опционально по статусу.
func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*models.User, error) {
	const op = "services.user.List"

	users, err := s.repo.ListUsers(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// SetStatus блокирует или разблокирует пользователя и сбрасывает кеш роли,
// чтобы блокировка вступила в силу до истечения TTL.
func (s *Service) SetStatus(ctx context.Context, uid, status string) error {
	const op = "services.user.SetStatus"

	if status != models.UserStatusActive && status != models.UserStatusBlocked {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	email, err := s.repo.UpdateUserStatus(ctx, uid, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateRole(ctx, email)
	s.log.Info("updated user status", slog.String("uid", uid), slog.String("status", status))
	return nil
}

// SetRole меняет роль пользователя и сбрасывает кеш роли.
func (s *Service) SetRole(ctx context.Context, uid, role string) error {
	const op = "services.user.SetRole"

	if role != models.RoleDonor && role != models.RoleVolunteer && role != models.RoleAdmin {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	email, err := s.repo.UpdateUserRole(ctx, uid, role)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateRole(ctx, email)
	s.log.Info("updated user role", slog.String("uid", uid), slog.String("role", role))
	return nil
}

// SearchDonors возвращает активных доноров по группе крови и месту.
func (s *Service) SearchDonors(ctx context.Context, filter models.DonorFilter) ([]*models.User, error) {
	const op = "services.user.SearchDonors"

	donors, err := s.repo.SearchDonors(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return donors, nil
}

func (s *Service) invalidateRole(ctx context.Context, email string) {
	cacheKey := roleCacheKey(email)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate role cache", slog.String("key", cacheKey), sl.Err(err))
	}
}

func roleCacheKey(email string) string {
	return fmt.Sprintf("role:%s", email)
}
