package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/models"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Storage{DB: db}, mock
}

func requestRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "requester_name", "requester_email", "recipient_name",
		"recipient_district", "recipient_upazila", "hospital_name", "full_address",
		"blood_group", "donation_date", "donation_time", "request_message", "status",
		"donor_name", "donor_email", "created_at",
	})
}

func TestClaimRequest(t *testing.T) {
	t.Run("перевод pending в inprogress изменяет одну строку", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(`UPDATE donation_requests\s+SET status = 'inprogress', donor_name = \$2, donor_email = \$3\s+WHERE id = \$1 AND status = 'pending'`).
			WithArgs("req-1", "Test Donor", "donor@example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := s.ClaimRequest(context.Background(), "req-1", "Test Donor", "donor@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("запрос уже не pending - ноль строк", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(`UPDATE donation_requests`).
			WithArgs("req-1", "Test Donor", "donor@example.com").
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := s.ClaimRequest(context.Background(), "req-1", "Test Donor", "donor@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("отмененный контекст прерывает операцию", func(t *testing.T) {
		s, _ := newMockStorage(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.ClaimRequest(ctx, "req-1", "Test Donor", "donor@example.com")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestResolveRequest(t *testing.T) {
	t.Run("перевод inprogress в done", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(`UPDATE donation_requests\s+SET status = \$2\s+WHERE id = \$1 AND status = 'inprogress'`).
			WithArgs("req-1", models.RequestStatusDone).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := s.ResolveRequest(context.Background(), "req-1", models.RequestStatusDone)

		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("терминальный запрос не меняется повторно", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(`UPDATE donation_requests`).
			WithArgs("req-1", models.RequestStatusCanceled).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := s.ResolveRequest(context.Background(), "req-1", models.RequestStatusCanceled)

		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})
}

func TestUpdateRequest(t *testing.T) {
	entry := models.DonationRequest{
		RecipientName:     "Rahim Uddin",
		RecipientDistrict: "Dhaka",
		RecipientUpazila:  "Savar",
		HospitalName:      "Dhaka Medical College",
		FullAddress:       "Secretariat Road, Dhaka",
		BloodGroup:        "A+",
		DonationDate:      "2026-09-15",
		DonationTime:      "10:30",
		RequestMessage:    "urgent surgery",
	}

	t.Run("правка применяется только к pending запросу", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(`(?s)UPDATE donation_requests\s+SET recipient_name = \$1.+WHERE id = \$10 AND status = 'pending'`).
			WithArgs(entry.RecipientName, entry.RecipientDistrict, entry.RecipientUpazila,
				entry.HospitalName, entry.FullAddress, entry.BloodGroup,
				entry.DonationDate, entry.DonationTime, entry.RequestMessage, "req-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := s.UpdateRequest(context.Background(), "req-1", entry)

		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReadRequest(t *testing.T) {
	t.Run("чтение существующего запроса", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(`(?s)SELECT .+ FROM donation_requests WHERE id = \$1`).
			WithArgs("req-1").
			WillReturnRows(requestRows().AddRow(
				"req-1", "Requester", "requester@example.com", "Rahim Uddin",
				"Dhaka", "Savar", "Dhaka Medical College", "Secretariat Road, Dhaka",
				"A+", "2026-09-15", "10:30", "urgent surgery", "pending",
				nil, nil, time.Now(),
			))

		result, err := s.ReadRequest(context.Background(), "req-1")

		require.NoError(t, err)
		assert.Equal(t, "req-1", result.ID)
		assert.Equal(t, models.RequestStatusPending, result.Status)
		assert.Empty(t, result.DonorEmail)
	})

	t.Run("несуществующий запрос дает ErrNotFound", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(`(?s)SELECT .+ FROM donation_requests WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(requestRows())

		_, err := s.ReadRequest(context.Background(), "missing")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
