package imap

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/coldreach/inboxstack/interfaces"
	"github.com/coldreach/inboxstack/internal/logger"
	"github.com/coldreach/inboxstack/internal/models"
	"github.com/coldreach/inboxstack/internal/tracing"
)

const defaultListLimit = 20

// InboxService retrieves envelopes and message bodies on demand. Every call
// runs as a single open-fetch-close cycle against the user's mail server;
// there is no connection pooling and no shared state between requests.
type InboxService struct {
	log logger.Logger
}

func NewInboxService(log logger.Logger) interfaces.InboxService {
	return &InboxService{log: log}
}

// CheckConnection verifies the credential by performing a full
// connect/login/select cycle against the default folder.
func (s *InboxService) CheckConnection(ctx context.Context, credential *models.MailboxCredential) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "InboxService.CheckConnection")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, credential.ID)

	return s.withSession(ctx, credential, defaultFolder, func(sess *session) error {
		return nil
	})
}
