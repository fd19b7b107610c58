package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/models"
)

const requestColumns = `id, requester_name, requester_email, recipient_name,
	recipient_district, recipient_upazila, hospital_name, full_address,
	blood_group, donation_date, donation_time, request_message, status,
	donor_name, donor_email, created_at`

// CreateRequest вставляет новый запрос на донацию и возвращает его ID.
func (s *Storage) CreateRequest(ctx context.Context, r models.DonationRequest) (string, error) {
	const op = "storage.CreateRequest"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO donation_requests (requester_name, requester_email,
			      recipient_name, recipient_district, recipient_upazila,
			      hospital_name, full_address, blood_group, donation_date,
			      donation_time, request_message, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		r.RequesterName, r.RequesterEmail, r.RecipientName, r.RecipientDistrict,
		r.RecipientUpazila, r.HospitalName, r.FullAddress, r.BloodGroup,
		r.DonationDate, r.DonationTime, r.RequestMessage, r.Status).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadRequest возвращает запрос по его ID.
func (s *Storage) ReadRequest(ctx context.Context, id string) (*models.DonationRequest, error) {
	const op = "storage.ReadRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + requestColumns + ` FROM donation_requests WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	result, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateRequest обновляет редактируемые поля запроса, пока он в статусе
// pending, и возвращает количество изменённых строк. Условие по статусу
// входит в сам UPDATE: правка, проигравшая гонку с подбором донора,
// не изменит ни одной строки.
func (s *Storage) UpdateRequest(ctx context.Context, id string, r models.DonationRequest) (int64, error) {
	const op = "storage.UpdateRequest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE donation_requests
			  SET recipient_name = $1, recipient_district = $2, recipient_upazila = $3,
			      hospital_name = $4, full_address = $5, blood_group = $6,
			      donation_date = $7, donation_time = $8, request_message = $9
			  WHERE id = $10 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query,
		r.RecipientName, r.RecipientDistrict, r.RecipientUpazila, r.HospitalName,
		r.FullAddress, r.BloodGroup, r.DonationDate, r.DonationTime,
		r.RequestMessage, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ClaimRequest атомарно переводит запрос из pending в inprogress и
// записывает донора. Ноль изменённых строк означает, что запрос уже не
// в состоянии pending: из двух одновременных подтверждений выигрывает
// ровно одно.
func (s *Storage) ClaimRequest(ctx context.Context, id, donorName, donorEmail string) (int64, error) {
	const op = "storage.ClaimRequest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE donation_requests
			  SET status = 'inprogress', donor_name = $2, donor_email = $3
			  WHERE id = $1 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query, id, donorName, donorEmail)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ResolveRequest атомарно переводит запрос из inprogress в терминальный
// статус done или canceled.
func (s *Storage) ResolveRequest(ctx context.Context, id, outcome string) (int64, error) {
	const op = "storage.ResolveRequest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE donation_requests
			  SET status = $2
			  WHERE id = $1 AND status = 'inprogress'`
	result, err := s.DB.ExecContext(ctx, query, id, outcome)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveRequest удаляет запрос по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveRequest(ctx context.Context, id string) (int64, error) {
	const op = "storage.RemoveRequest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM donation_requests WHERE id = $1`
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

// ListRequests возвращает запросы по фильтру с пагинацией,
// отсортированные от новых к старым.
func (s *Storage) ListRequests(ctx context.Context, filter models.RequestFilter, limit, offset int) ([]*models.DonationRequest, error) {
	const op = "storage.ListRequests"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var conds []string
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.RequesterEmail != "" {
		args = append(args, filter.RequesterEmail)
		conds = append(conds, "requester_email = $"+strconv.Itoa(len(args)))
	}
	if filter.DonorEmail != "" {
		args = append(args, filter.DonorEmail)
		conds = append(conds, "donor_email = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + requestColumns + ` FROM donation_requests`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
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

	var result []*models.DonationRequest
	for rows.Next() {
		item, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountRequestsByStatus возвращает количество запросов в каждом статусе.
func (s *Storage) CountRequestsByStatus(ctx context.Context) (map[string]int, error) {
	const op = "storage.CountRequestsByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT status, COUNT(*) FROM donation_requests GROUP BY status`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*models.DonationRequest, error) {
	var r models.DonationRequest
	var donorName, donorEmail sql.NullString
	if err := row.Scan(&r.ID, &r.RequesterName, &r.RequesterEmail, &r.RecipientName,
		&r.RecipientDistrict, &r.RecipientUpazila, &r.HospitalName, &r.FullAddress,
		&r.BloodGroup, &r.DonationDate, &r.DonationTime, &r.RequestMessage,
		&r.Status, &donorName, &donorEmail, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.DonorName = donorName.String
	r.DonorEmail = donorEmail.String
	return &r, nil
}
