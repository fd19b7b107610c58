// Package fund содержит бизнес-логику сбора средств: создание платёжного
// намерения у провайдера, идемпотентную запись подтверждённого взноса и
// выгрузку журнала взносов.
package fund

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
	"github.com/bloodaid/bloodaid/internal/paymentprovider"
	"github.com/bloodaid/bloodaid/internal/rabbitmq"
)

// FundRepository определяет методы хранилища взносов.
type FundRepository interface {
	CreateFund(ctx context.Context, fund models.Fund) (string, bool, error)
	ListFunds(ctx context.Context, limit, offset int) ([]*models.Fund, error)
	SumFunds(ctx context.Context) (int64, error)
}

// PaymentClient описывает клиент платёжного провайдера.
type PaymentClient interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (*paymentprovider.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*paymentprovider.PaymentIntent, error)
}

// EventPublisher публикует события для внешнего нотификатора.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Event сообщение о записанном взносе.
type Event struct {
	FundID           string    `json:"fund_id"`
	ContributorEmail string    `json:"contributor_email"`
	AmountCents      int64     `json:"amount_cents"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Service реализует операции сбора средств.
type Service struct {
	repo     FundRepository
	payments PaymentClient
	events   EventPublisher
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo FundRepository, payments PaymentClient, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		payments: payments,
		events:   events,
		log:      log,
	}
}

// CreateIntent создает платёжное намерение у провайдера и возвращает
// client secret для подтверждения платежа на стороне клиента.
func (s *Service) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	const op = "services.fund.CreateIntent"

	if amountCents <= 0 {
		return "", fmt.Errorf("%s: %w", op, domain.ErrInvalidAmount)
	}
	intent, err := s.payments.CreatePaymentIntent(ctx, amountCents, "usd")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created payment intent", slog.String("intent_id", intent.ID))
	return intent.ClientSecret, nil
}

// Save записывает подтверждённый взнос. Перед записью статус платежа
// перепроверяется у провайдера; повторный вызов с тем же payment intent
// не создает дубликат.
func (s *Service) Save(ctx context.Context, contributorName, contributorEmail string, req models.DummyFund) (string, error) {
	const op = "services.fund.Save"

	if req.AmountCents <= 0 {
		return "", fmt.Errorf("%s: %w", op, domain.ErrInvalidAmount)
	}
	intent, err := s.payments.GetPaymentIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if intent.Status != paymentprovider.IntentStatusSucceeded {
		return "", fmt.Errorf("%s: %w", op, domain.ErrPaymentNotConfirmed)
	}

	id, created, err := s.repo.CreateFund(ctx, models.Fund{
		ContributorName:  contributorName,
		ContributorEmail: contributorEmail,
		AmountCents:      req.AmountCents,
		PaymentIntentID:  req.PaymentIntentID,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !created {
		s.log.Info("fund already recorded", slog.String("intent_id", req.PaymentIntentID))
		return id, nil
	}

	if err := s.events.Publish(rabbitmq.RoutingKeyFundRecorded, Event{
		FundID:           id,
		ContributorEmail: contributorEmail,
		AmountCents:      req.AmountCents,
		OccurredAt:       time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", rabbitmq.RoutingKeyFundRecorded), sl.Err(err))
	}
	s.log.Info("recorded fund", slog.String("id", id), slog.Int64("amount_cents", req.AmountCents))
	return id, nil
}

// List возвращает страницу журнала взносов, новые первыми.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Fund, error) {
	const op = "services.fund.List"

	entries, err := s.repo.ListFunds(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// Total возвращает сумму всех взносов в центах.
func (s *Service) Total(ctx context.Context) (int64, error) {
	const op = "services.fund.Total"

	total, err := s.repo.SumFunds(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
