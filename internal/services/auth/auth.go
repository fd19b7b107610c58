// Package auth содержит бизнес-логику регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/lib/jwt"
	"github.com/bloodaid/bloodaid/internal/lib/password"
	"github.com/bloodaid/bloodaid/internal/models"
)

// UserRepository определяет методы хранилища учётных записей.
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// LocationValidator проверяет пару район/упазила по справочнику.
type LocationValidator interface {
	ValidPair(district, upazila string) bool
}

// Service реализует регистрацию, вход и проверку токена.
type Service struct {
	repo      UserRepository
	tokens    jwt.Maker
	locations LocationValidator
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo UserRepository, tokens jwt.Maker, locations LocationValidator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		locations: locations,
		log:       log,
	}
}

// Register создает учётную запись донора и возвращает токен доступа.
// Каждый новый пользователь получает роль donor и статус active.
func (s *Service) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	const op = "services.auth.Register"

	if !s.locations.ValidPair(req.District, req.Upazila) {
		return "", fmt.Errorf("%s: %w", op, domain.ErrUnknownLocation)
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         models.RoleDonor,
		Status:       models.UserStatusActive,
		BloodGroup:   req.BloodGroup,
		District:     req.District,
		Upazila:      req.Upazila,
		AvatarURL:    req.AvatarURL,
	}
	uid, err := s.repo.RegisterUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("registered new user", slog.String("uid", uid))

	token, err := s.tokens.GenerateToken(user.Email, user.Name, user.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Login проверяет учётные данные и возвращает токен доступа. Несуществующий
// email и неверный пароль дают одну и ту же ошибку, чтобы не раскрывать
// наличие учётной записи.
func (s *Service) Login(ctx context.Context, req models.DummyLogin) (string, error) {
	const op = "services.auth.Login"

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(req.Password, user.PasswordHash); err != nil {
		return "", fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(user.Email, user.Name, user.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user logged in", slog.String("email", user.Email))
	return token, nil
}

// ValidateToken разбирает и проверяет токен доступа.
func (s *Service) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	const op = "services.auth.ValidateToken"

	claims, err := s.tokens.ParseToken(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}
