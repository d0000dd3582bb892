package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"quickbill/internal/domain"
	"quickbill/internal/port"
)

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO customers (
		id, enterprise_id, name, email, phone, address, notes, status,
		total_invoices, total_amount, last_invoice_date, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.EnterpriseID, c.Name, c.Email, c.Phone, c.Address, c.Notes, c.Status,
		c.TotalInvoices, c.TotalAmount, c.LastInvoiceDate, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("customerRepo.Create: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c,
		"SELECT * FROM customers WHERE id = $1 AND enterprise_id = $2", id, enterpriseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *customerRepo) GetByPhone(ctx context.Context, enterpriseID uuid.UUID, phone string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c,
		"SELECT * FROM customers WHERE enterprise_id = $1 AND phone = $2", enterpriseID, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByPhone: %w", err)
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context, enterpriseID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error) {
	where := "WHERE enterprise_id = $1"
	args := []interface{}{enterpriseID}
	if search != "" {
		where += " AND (name ILIKE $2 OR phone ILIKE $2 OR email ILIKE $2)"
		args = append(args, "%"+search+"%")
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM customers "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List count: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM customers %s ORDER BY name ASC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	customers := make([]domain.Customer, 0)
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List: %w", err)
	}
	return customers, total, nil
}

func (r *customerRepo) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers SET
			name = $1, email = $2, phone = $3, address = $4, notes = $5,
			status = $6, updated_at = $7
		 WHERE id = $8 AND enterprise_id = $9`,
		c.Name, c.Email, c.Phone, c.Address, c.Notes,
		c.Status, c.UpdatedAt, c.ID, c.EnterpriseID)
	if err != nil {
		return fmt.Errorf("customerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *customerRepo) Stats(ctx context.Context, enterpriseID uuid.UUID) (*domain.CustomerStats, []domain.Customer, []domain.Customer, error) {
	var stats domain.CustomerStats
	err := r.db.GetContext(ctx, &stats, `SELECT
			COUNT(*) AS total_customers,
			COALESCE(SUM(total_amount), 0) AS total_amount,
			COALESCE(AVG(total_amount), 0) AS average_amount
		 FROM customers WHERE enterprise_id = $1`, enterpriseID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("customerRepo.Stats: %w", err)
	}

	top := make([]domain.Customer, 0)
	err = r.db.SelectContext(ctx, &top,
		"SELECT * FROM customers WHERE enterprise_id = $1 ORDER BY total_amount DESC LIMIT 5",
		enterpriseID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("customerRepo.Stats top: %w", err)
	}

	recent := make([]domain.Customer, 0)
	err = r.db.SelectContext(ctx, &recent,
		"SELECT * FROM customers WHERE enterprise_id = $1 ORDER BY created_at DESC LIMIT 5",
		enterpriseID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("customerRepo.Stats recent: %w", err)
	}

	return &stats, top, recent, nil
}

func (r *customerRepo) AddInvoiceStats(ctx context.Context, enterpriseID, id uuid.UUID, amount decimal.Decimal, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers SET
			total_invoices = total_invoices + 1,
			total_amount = total_amount + $1,
			last_invoice_date = $2,
			updated_at = $2
		 WHERE id = $3 AND enterprise_id = $4`,
		amount, at, id, enterpriseID)
	if err != nil {
		return fmt.Errorf("customerRepo.AddInvoiceStats: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
