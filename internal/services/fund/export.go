package fund

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bloodaid/bloodaid/internal/lib/money"
)

const exportSheet = "Funds"

// Export выгружает весь журнал взносов в XLSX для отчётности администратора.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	const op = "services.fund.Export"

	entries, err := s.repo.ListFunds(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headers := []string{"ID", "Contributor", "Email", "Amount", "Payment Intent", "Date"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	for rowNum, entry := range entries {
		values := []any{
			entry.ID,
			entry.ContributorName,
			entry.ContributorEmail,
			money.FormatCents(entry.AmountCents),
			entry.PaymentIntentID,
			entry.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum+2)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}
