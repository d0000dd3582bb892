package port

import (
	"context"

	"quickbill/internal/domain"
)

// NotificationRepository persists send attempts. One row is created per
// attempt; status transitions pending -> sent or pending -> failed.
type NotificationRepository interface {
	Create(ctx context.Context, a *domain.NotificationAttempt) error
	Update(ctx context.Context, a *domain.NotificationAttempt) error
}
