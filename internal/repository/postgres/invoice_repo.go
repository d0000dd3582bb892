package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"quickbill/internal/domain"
	"quickbill/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// invoiceRow mirrors the invoices table. Parties and line items live in JSONB
// columns and are (un)marshaled at the repository boundary.
type invoiceRow struct {
	ID             uuid.UUID            `db:"id"`
	EnterpriseID   uuid.UUID            `db:"enterprise_id"`
	InvoiceNumber  string               `db:"invoice_number"`
	DateOfIssue    time.Time            `db:"date_of_issue"`
	BillFrom       json.RawMessage      `db:"bill_from"`
	BillTo         json.RawMessage      `db:"bill_to"`
	Items          json.RawMessage      `db:"items"`
	Notes          string               `db:"notes"`
	SubTotal       decimal.Decimal      `db:"sub_total"`
	CGSTRate       decimal.Decimal      `db:"cgst_rate"`
	SGSTRate       decimal.Decimal      `db:"sgst_rate"`
	DiscountRate   decimal.Decimal      `db:"discount_rate"`
	CGSTAmount     decimal.Decimal      `db:"cgst_amount"`
	SGSTAmount     decimal.Decimal      `db:"sgst_amount"`
	DiscountAmount decimal.Decimal      `db:"discount_amount"`
	Total          decimal.Decimal      `db:"total"`
	Currency       string               `db:"currency"`
	Status         domain.InvoiceStatus `db:"status"`
	PDFURL         string               `db:"pdf_url"`
	WhatsappSent   bool                 `db:"whatsapp_sent"`
	WhatsappSentAt *time.Time           `db:"whatsapp_sent_at"`
	CreatedAt      time.Time            `db:"created_at"`
	UpdatedAt      time.Time            `db:"updated_at"`
}

func toRow(inv *domain.Invoice) (*invoiceRow, error) {
	billFrom, err := json.Marshal(inv.BillFrom)
	if err != nil {
		return nil, fmt.Errorf("marshaling bill_from: %w", err)
	}
	billTo, err := json.Marshal(inv.BillTo)
	if err != nil {
		return nil, fmt.Errorf("marshaling bill_to: %w", err)
	}
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return nil, fmt.Errorf("marshaling items: %w", err)
	}
	return &invoiceRow{
		ID:             inv.ID,
		EnterpriseID:   inv.EnterpriseID,
		InvoiceNumber:  inv.InvoiceNumber,
		DateOfIssue:    inv.DateOfIssue,
		BillFrom:       billFrom,
		BillTo:         billTo,
		Items:          items,
		Notes:          inv.Notes,
		SubTotal:       inv.SubTotal,
		CGSTRate:       inv.CGSTRate,
		SGSTRate:       inv.SGSTRate,
		DiscountRate:   inv.DiscountRate,
		CGSTAmount:     inv.CGSTAmount,
		SGSTAmount:     inv.SGSTAmount,
		DiscountAmount: inv.DiscountAmount,
		Total:          inv.Total,
		Currency:       inv.Currency,
		Status:         inv.Status,
		PDFURL:         inv.PDFURL,
		WhatsappSent:   inv.WhatsappSent,
		WhatsappSentAt: inv.WhatsappSentAt,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}, nil
}

func (row *invoiceRow) toDomain() (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID:             row.ID,
		EnterpriseID:   row.EnterpriseID,
		InvoiceNumber:  row.InvoiceNumber,
		DateOfIssue:    row.DateOfIssue,
		Notes:          row.Notes,
		SubTotal:       row.SubTotal,
		CGSTRate:       row.CGSTRate,
		SGSTRate:       row.SGSTRate,
		DiscountRate:   row.DiscountRate,
		CGSTAmount:     row.CGSTAmount,
		SGSTAmount:     row.SGSTAmount,
		DiscountAmount: row.DiscountAmount,
		Total:          row.Total,
		Currency:       row.Currency,
		Status:         row.Status,
		PDFURL:         row.PDFURL,
		WhatsappSent:   row.WhatsappSent,
		WhatsappSentAt: row.WhatsappSentAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if err := json.Unmarshal(row.BillFrom, &inv.BillFrom); err != nil {
		return nil, fmt.Errorf("unmarshaling bill_from: %w", err)
	}
	if err := json.Unmarshal(row.BillTo, &inv.BillTo); err != nil {
		return nil, fmt.Errorf("unmarshaling bill_to: %w", err)
	}
	if err := json.Unmarshal(row.Items, &inv.Items); err != nil {
		return nil, fmt.Errorf("unmarshaling items: %w", err)
	}
	return inv, nil
}

func rowsToDomain(rows []invoiceRow) ([]domain.Invoice, error) {
	invoices := make([]domain.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, nil
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	row, err := toRow(inv)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	query := `INSERT INTO invoices (
		id, enterprise_id, invoice_number, date_of_issue,
		bill_from, bill_to, items, notes,
		sub_total, cgst_rate, sgst_rate, discount_rate,
		cgst_amount, sgst_amount, discount_amount, total,
		currency, status, pdf_url, whatsapp_sent, whatsapp_sent_at,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8,
		$9, $10, $11, $12,
		$13, $14, $15, $16,
		$17, $18, $19, $20, $21,
		$22, $23
	)`

	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.EnterpriseID, row.InvoiceNumber, row.DateOfIssue,
		row.BillFrom, row.BillTo, row.Items, row.Notes,
		row.SubTotal, row.CGSTRate, row.SGSTRate, row.DiscountRate,
		row.CGSTAmount, row.SGSTAmount, row.DiscountAmount, row.Total,
		row.Currency, row.Status, row.PDFURL, row.WhatsappSent, row.WhatsappSentAt,
		row.CreatedAt, row.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_number") {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*domain.Invoice, error) {
	var row invoiceRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM invoices WHERE id = $1 AND enterprise_id = $2", id, enterpriseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *invoiceRepo) List(ctx context.Context, enterpriseID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	where := "WHERE enterprise_id = $1"
	args := []interface{}{enterpriseID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND date_of_issue >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND date_of_issue <= $%d", len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM invoices %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rows []invoiceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	invoices, err := rowsToDomain(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListByIDs(ctx context.Context, enterpriseID uuid.UUID, ids []uuid.UUID) ([]domain.Invoice, error) {
	if len(ids) == 0 {
		return []domain.Invoice{}, nil
	}
	query, args, err := sqlx.In(
		"SELECT * FROM invoices WHERE enterprise_id = ? AND id IN (?)", enterpriseID, ids)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByIDs: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []invoiceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByIDs: %w", err)
	}
	invoices, err := rowsToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByIDs: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, enterpriseID, id uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3 AND enterprise_id = $4",
		status, time.Now().UTC(), id, enterpriseID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) MarkWhatsappSent(ctx context.Context, enterpriseID uuid.UUID, invoiceNumber string, sentAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			status = $1, whatsapp_sent = TRUE, whatsapp_sent_at = $2, updated_at = $2
		 WHERE enterprise_id = $3 AND invoice_number = $4`,
		domain.InvoiceStatusSent, sentAt, enterpriseID, invoiceNumber)
	if err != nil {
		return fmt.Errorf("invoiceRepo.MarkWhatsappSent: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Stats(ctx context.Context, enterpriseID uuid.UUID) (*domain.InvoiceStats, []domain.MonthlyInvoiceStats, error) {
	var stats domain.InvoiceStats
	err := r.db.GetContext(ctx, &stats,
		`SELECT
			COUNT(*) AS total_invoices,
			COALESCE(SUM(total), 0) AS total_amount,
			COALESCE(AVG(total), 0) AS average_amount
		 FROM invoices WHERE enterprise_id = $1`, enterpriseID)
	if err != nil {
		return nil, nil, fmt.Errorf("invoiceRepo.Stats: %w", err)
	}

	monthly := make([]domain.MonthlyInvoiceStats, 0)
	err = r.db.SelectContext(ctx, &monthly,
		`SELECT
			EXTRACT(YEAR FROM date_of_issue)::int AS year,
			EXTRACT(MONTH FROM date_of_issue)::int AS month,
			COUNT(*)::int AS count,
			COALESCE(SUM(total), 0) AS total
		 FROM invoices WHERE enterprise_id = $1
		 GROUP BY year, month
		 ORDER BY year DESC, month DESC
		 LIMIT 12`, enterpriseID)
	if err != nil {
		return nil, nil, fmt.Errorf("invoiceRepo.Stats monthly: %w", err)
	}
	return &stats, monthly, nil
}
