package interfaces

import (
	"context"

	"github.com/coldreach/inboxstack/internal/models"
)

// ListEnvelopesRequest selects either the latest-N window (Limit) or a single
// message (SeqNum > 0) in the given folder.
type ListEnvelopesRequest struct {
	Folder string
	Limit  int
	SeqNum uint32
}

type ListEnvelopesResult struct {
	Emails []*models.MessageEnvelope
	Total  uint32
	Folder string
}

// InboxService retrieves mail on demand over IMAP. Every call opens its own
// connection and closes it before returning; nothing is shared between calls.
type InboxService interface {
	ListEnvelopes(ctx context.Context, credential *models.MailboxCredential, request ListEnvelopesRequest) (*ListEnvelopesResult, error)
	FetchBody(ctx context.Context, credential *models.MailboxCredential, folder string, seqNum uint32) (*models.DecodedContent, error)
	CheckConnection(ctx context.Context, credential *models.MailboxCredential) error
}
