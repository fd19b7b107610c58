package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bloodaid/bloodaid/internal/models"
)

// CreateFund вставляет запись реестра фонда. Уникальный индекс по
// payment_intent_id вместе с ON CONFLICT DO NOTHING делает запись
// идемпотентной: повторное подтверждение того же платежа не создаст
// вторую строку. Второе возвращаемое значение сообщает, была ли строка
// действительно вставлена.
func (s *Storage) CreateFund(ctx context.Context, fund models.Fund) (string, bool, error) {
	const op = "storage.CreateFund"
	select {
	case <-ctx.Done():
		return "", false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO funds (contributor_name, contributor_email, amount_cents, payment_intent_id)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (payment_intent_id) DO NOTHING
			  RETURNING id`
	var id string
	err := s.DB.QueryRowContext(ctx, query,
		fund.ContributorName, fund.ContributorEmail, fund.AmountCents, fund.PaymentIntentID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return id, true, nil
}

// ListFunds возвращает записи реестра с пагинацией, от новых к старым.
// Нулевой limit означает выборку без ограничения (для экспорта).
func (s *Storage) ListFunds(ctx context.Context, limit, offset int) ([]*models.Fund, error) {
	const op = "storage.ListFunds"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, contributor_name, contributor_email, amount_cents, payment_intent_id, created_at
			  FROM funds
			  ORDER BY created_at DESC
			  LIMIT NULLIF($1, 0) OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Fund
	for rows.Next() {
		var f models.Fund
		if err := rows.Scan(&f.ID, &f.ContributorName, &f.ContributorEmail,
			&f.AmountCents, &f.PaymentIntentID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SumFunds возвращает суммарный размер всех пожертвований в центах.
func (s *Storage) SumFunds(ctx context.Context) (int64, error) {
	const op = "storage.SumFunds"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM funds`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
