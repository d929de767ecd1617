package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/coldreach/inboxstack/interfaces"
	"github.com/coldreach/inboxstack/internal/enum"
	"github.com/coldreach/inboxstack/internal/models"
	"github.com/coldreach/inboxstack/internal/tracing"
)

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) interfaces.CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) GetActiveByUser(ctx context.Context, userID string, provider enum.EmailProvider) (*models.MailboxCredential, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "credentialRepository.GetActiveByUser")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var credential models.MailboxCredential
	err := r.db.WithContext(ctx).
		First(&credential, "user_id = ? AND provider = ? AND active = ?", userID, provider, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &credential, nil
}

func (r *credentialRepository) GetActiveCredentials(ctx context.Context) ([]*models.MailboxCredential, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "credentialRepository.GetActiveCredentials")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var credentials []*models.MailboxCredential
	result := r.db.WithContext(ctx).Find(&credentials, "active = ?", true)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return nil, result.Error
	}
	return credentials, nil
}

func (r *credentialRepository) Save(ctx context.Context, credential *models.MailboxCredential) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "credentialRepository.Save")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	return r.db.WithContext(ctx).Save(credential).Error
}

func (r *credentialRepository) Deactivate(ctx context.Context, userID string, provider enum.EmailProvider) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "credentialRepository.Deactivate")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	result := r.db.WithContext(ctx).Model(&models.MailboxCredential{}).
		Where("user_id = ? AND provider = ? AND active = ?", userID, provider, true).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	return nil
}

// UpdateConnectionStatus records the outcome of the latest connection check.
func (r *credentialRepository) UpdateConnectionStatus(ctx context.Context, credentialID string, status enum.ConnectionStatus, errorMessage string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "credentialRepository.UpdateConnectionStatus")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("credential.id", credentialID)
	span.SetTag("status", status)

	// Create a timeout context
	timeoutCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result := r.db.WithContext(timeoutCtx).Model(&models.MailboxCredential{}).
		Where("id = ?", credentialID).
		Updates(map[string]interface{}{
			"connection_status":     status,
			"error_message":         errorMessage,
			"last_connection_check": time.Now(),
			"updated_at":            time.Now(),
		})

	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return fmt.Errorf("failed to update credential connection status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		err := fmt.Errorf("credential with ID %s not found", credentialID)
		tracing.TraceErr(span, err)
		return err
	}

	return nil
}
