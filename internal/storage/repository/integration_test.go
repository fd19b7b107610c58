package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bloodaid/bloodaid/internal/migrations"
	"github.com/bloodaid/bloodaid/internal/models"
)

// setupTestStorage поднимает контейнер PostgreSQL, применяет миграции
// и возвращает готовое хранилище.
func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(dsn)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}

func newTestRequest() models.DonationRequest {
	return models.DonationRequest{
		RequesterName:     "Rahim Uddin",
		RequesterEmail:    fmt.Sprintf("requester-%s@example.com", uuid.New().String()[:8]),
		RecipientName:     "Karim Uddin",
		RecipientDistrict: "Dhaka",
		RecipientUpazila:  "Dhanmondi",
		HospitalName:      "Dhaka Medical College",
		FullAddress:       "Secretariat Road, Dhaka",
		BloodGroup:        "O+",
		DonationDate:      "2026-09-15",
		DonationTime:      "10:30",
		RequestMessage:    "Urgent need before surgery",
		Status:            models.RequestStatusPending,
	}
}

func TestRequestLifecycle(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreateRequest(ctx, newTestRequest())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := storage.ReadRequest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, got.Status)
	assert.Empty(t, got.DonorEmail)

	// Первый перевод pending -> inprogress успешен, повторный не находит строку.
	rows, err := storage.ClaimRequest(ctx, id, "Test Donor", "donor@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = storage.ClaimRequest(ctx, id, "Second Donor", "second@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	got, err = storage.ReadRequest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, got.Status)
	assert.Equal(t, "donor@example.com", got.DonorEmail)
	assert.Equal(t, "Test Donor", got.DonorName)

	rows, err = storage.ResolveRequest(ctx, id, models.RequestStatusDone)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// Терминальный статус менять нельзя.
	rows, err = storage.ResolveRequest(ctx, id, models.RequestStatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestUpdateRequestOnlyWhilePending(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreateRequest(ctx, newTestRequest())
	require.NoError(t, err)

	changed := newTestRequest()
	changed.HospitalName = "Square Hospital"
	rows, err := storage.UpdateRequest(ctx, id, changed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = storage.ClaimRequest(ctx, id, "Test Donor", "donor@example.com")
	require.NoError(t, err)

	rows, err = storage.UpdateRequest(ctx, id, changed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows, "inprogress request must not be editable")
}

func TestCreateFundIdempotent(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	fund := models.Fund{
		ContributorName:  "Test Contributor",
		ContributorEmail: "contributor@example.com",
		AmountCents:      2500,
		PaymentIntentID:  "pi_" + uuid.New().String(),
	}

	id, created, err := storage.CreateFund(ctx, fund)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, id)

	// Повторная запись того же платежа не создаёт дубликат.
	_, created, err = storage.CreateFund(ctx, fund)
	require.NoError(t, err)
	assert.False(t, created)

	total, err := storage.SumFunds(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), total)
}

func TestListRequestsFilters(t *testing.T) {
	storage, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	first := newTestRequest()
	firstID, err := storage.CreateRequest(ctx, first)
	require.NoError(t, err)

	second := newTestRequest()
	_, err = storage.CreateRequest(ctx, second)
	require.NoError(t, err)

	_, err = storage.ClaimRequest(ctx, firstID, "Test Donor", "donor@example.com")
	require.NoError(t, err)

	pending, err := storage.ListRequests(ctx, models.RequestFilter{Status: models.RequestStatusPending}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	mine, err := storage.ListRequests(ctx, models.RequestFilter{RequesterEmail: first.RequesterEmail}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, firstID, mine[0].ID)

	byDonor, err := storage.ListRequests(ctx, models.RequestFilter{DonorEmail: "donor@example.com"}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byDonor, 1)

	counts, err := storage.CountRequestsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.RequestStatusPending])
	assert.Equal(t, 1, counts[models.RequestStatusInProgress])
}
