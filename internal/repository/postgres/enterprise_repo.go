package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"quickbill/internal/domain"
	"quickbill/internal/port"
)

type enterpriseRepo struct {
	db *sqlx.DB
}

// NewEnterpriseRepo creates a new PostgreSQL-backed EnterpriseRepository.
func NewEnterpriseRepo(db *sqlx.DB) port.EnterpriseRepository {
	return &enterpriseRepo{db: db}
}

func (r *enterpriseRepo) Create(ctx context.Context, e *domain.Enterprise) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `INSERT INTO enterprises (
		id, name, email, password_hash, phone, address, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Email, e.PasswordHash, e.Phone, e.Address, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "email") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("enterpriseRepo.Create: %w", err)
	}
	return nil
}

func (r *enterpriseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enterprise, error) {
	var e domain.Enterprise
	err := r.db.GetContext(ctx, &e, "SELECT * FROM enterprises WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("enterpriseRepo.GetByID: %w", err)
	}
	return &e, nil
}

func (r *enterpriseRepo) GetByEmail(ctx context.Context, email string) (*domain.Enterprise, error) {
	var e domain.Enterprise
	err := r.db.GetContext(ctx, &e, "SELECT * FROM enterprises WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("enterpriseRepo.GetByEmail: %w", err)
	}
	return &e, nil
}

func (r *enterpriseRepo) Update(ctx context.Context, e *domain.Enterprise) error {
	e.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE enterprises SET name = $1, phone = $2, address = $3, updated_at = $4
		 WHERE id = $5`,
		e.Name, e.Phone, e.Address, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("enterpriseRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
