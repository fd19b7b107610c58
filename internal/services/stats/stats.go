// Package stats собирает сводку для панели администратора.
package stats

import (
	"context"
	"fmt"

	"github.com/bloodaid/bloodaid/internal/lib/money"
)

// Repository определяет счётчики хранилища, нужные для сводки.
type Repository interface {
	CountUsers(ctx context.Context) (int, error)
	CountRequestsByStatus(ctx context.Context) (map[string]int, error)
	SumFunds(ctx context.Context) (int64, error)
}

// Summary сводные показатели платформы.
type Summary struct {
	TotalUsers       int            `json:"totalUsers"`
	RequestsByStatus map[string]int `json:"requestsByStatus"`
	TotalFundsCents  int64          `json:"totalFundsCents"`
	TotalFunds       string         `json:"totalFunds"`
}

// Service считает сводку по данным хранилища.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Collect возвращает сводку: пользователи, запросы по статусам, сумма фонда.
func (s *Service) Collect(ctx context.Context) (*Summary, error) {
	const op = "services.stats.Collect"

	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	byStatus, err := s.repo.CountRequestsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	total, err := s.repo.SumFunds(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Summary{
		TotalUsers:       users,
		RequestsByStatus: byStatus,
		TotalFundsCents:  total,
		TotalFunds:       money.FormatCents(total),
	}, nil
}
