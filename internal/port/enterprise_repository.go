package port

import (
	"context"

	"github.com/google/uuid"

	"quickbill/internal/domain"
)

// EnterpriseRepository persists enterprise (tenant) accounts.
type EnterpriseRepository interface {
	Create(ctx context.Context, e *domain.Enterprise) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Enterprise, error)
	GetByEmail(ctx context.Context, email string) (*domain.Enterprise, error)
	Update(ctx context.Context, e *domain.Enterprise) error
}
