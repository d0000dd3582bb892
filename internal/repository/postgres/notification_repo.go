package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"quickbill/internal/domain"
	"quickbill/internal/port"
)

type notificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo creates a new PostgreSQL-backed NotificationRepository.
func NewNotificationRepo(db *sqlx.DB) port.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, a *domain.NotificationAttempt) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now().UTC()

	query := `INSERT INTO notification_attempts (
		id, enterprise_id, invoice_number, channel, artifact_url, artifact_kind,
		status, provider_message_id, error_detail, sent_at, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.EnterpriseID, a.InvoiceNumber, a.Channel, a.ArtifactURL, a.ArtifactKind,
		a.Status, a.ProviderMessageID, a.ErrorDetail, a.SentAt, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("notificationRepo.Create: %w", err)
	}
	return nil
}

func (r *notificationRepo) Update(ctx context.Context, a *domain.NotificationAttempt) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notification_attempts SET
			status = $1, provider_message_id = $2, error_detail = $3, sent_at = $4
		 WHERE id = $5`,
		a.Status, a.ProviderMessageID, a.ErrorDetail, a.SentAt, a.ID)
	if err != nil {
		return fmt.Errorf("notificationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
