package interfaces

import (
	"context"

	"github.com/coldreach/inboxstack/internal/enum"
	"github.com/coldreach/inboxstack/internal/models"
)

type CredentialRepository interface {
	// GetActiveByUser returns the user's active credential for the provider,
	// or nil when the integration is not configured.
	GetActiveByUser(ctx context.Context, userID string, provider enum.EmailProvider) (*models.MailboxCredential, error)
	GetActiveCredentials(ctx context.Context) ([]*models.MailboxCredential, error)
	Save(ctx context.Context, credential *models.MailboxCredential) error
	Deactivate(ctx context.Context, userID string, provider enum.EmailProvider) error
	UpdateConnectionStatus(ctx context.Context, credentialID string, status enum.ConnectionStatus, errorMessage string) error
}
