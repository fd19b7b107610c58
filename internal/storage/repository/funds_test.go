package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodaid/bloodaid/internal/models"
)

func TestCreateFund(t *testing.T) {
	fund := models.Fund{
		ContributorName:  "Test User",
		ContributorEmail: "user@example.com",
		AmountCents:      1050,
		PaymentIntentID:  "pi_1",
	}

	t.Run("первая запись платежа вставляется", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(`(?s)INSERT INTO funds .+ ON CONFLICT \(payment_intent_id\) DO NOTHING\s+RETURNING id`).
			WithArgs(fund.ContributorName, fund.ContributorEmail, fund.AmountCents, fund.PaymentIntentID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("fund-1"))

		id, created, err := s.CreateFund(context.Background(), fund)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "fund-1", id)
	})

	t.Run("повторная запись того же платежа не вставляет строку", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(`INSERT INTO funds`).
			WithArgs(fund.ContributorName, fund.ContributorEmail, fund.AmountCents, fund.PaymentIntentID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, created, err := s.CreateFund(context.Background(), fund)

		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestSumFunds(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_cents\), 0\) FROM funds`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(250050))

	total, err := s.SumFunds(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(250050), total)
}
