package imap

import (
	"context"
	"sort"

	goimap "github.com/emersion/go-imap"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"

	"github.com/coldreach/inboxstack/interfaces"
	"github.com/coldreach/inboxstack/internal/mimeutil"
	"github.com/coldreach/inboxstack/internal/models"
	"github.com/coldreach/inboxstack/internal/tracing"
	"github.com/coldreach/inboxstack/internal/utils"
)

const noSubjectPlaceholder = "(no subject)"

// ListEnvelopes returns envelope metadata for the latest-N window of the
// folder, or for one explicit sequence number. The result is always sorted by
// date descending; servers are not required to return sequence ranges in date
// order.
func (s *InboxService) ListEnvelopes(ctx context.Context, credential *models.MailboxCredential, request interfaces.ListEnvelopesRequest) (*interfaces.ListEnvelopesResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "InboxService.ListEnvelopes")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, credential.ID)
	span.LogFields(tracingLog.String("folder", request.Folder), tracingLog.Int("limit", request.Limit))

	if request.Limit <= 0 {
		request.Limit = defaultListLimit
	}

	result := &interfaces.ListEnvelopesResult{
		Emails: []*models.MessageEnvelope{},
	}

	err := s.withSession(ctx, credential, request.Folder, func(sess *session) error {
		result.Folder = sess.folder
		result.Total = sess.mailbox.Messages

		var from, to uint32
		if request.SeqNum > 0 {
			// Out-of-range sequence numbers yield an empty list, not an error
			if request.SeqNum > sess.mailbox.Messages {
				return nil
			}
			from, to = request.SeqNum, request.SeqNum
		} else {
			if sess.mailbox.Messages == 0 {
				return nil
			}
			from, to = seqWindow(sess.mailbox.Messages, request.Limit)
		}

		envelopes, err := s.fetchEnvelopes(sess, from, to)
		if err != nil {
			return err
		}

		// Single-message requests back the detail row of the list view, so
		// they also carry a short body preview. Best effort only.
		if request.SeqNum > 0 && len(envelopes) == 1 {
			if decoded, _, err := s.decodeMessageBody(sess, request.SeqNum); err == nil {
				body := decoded.HTMLBody
				if body == "" {
					body = decoded.TextBody
				}
				envelopes[0].BodyText = mimeutil.PreviewText(body)
			}
		}

		sortEnvelopesByDateDesc(envelopes)
		result.Emails = envelopes
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.LogFields(tracingLog.Int("result.count", len(result.Emails)))
	return result, nil
}

func (s *InboxService) fetchEnvelopes(sess *session, from, to uint32) ([]*models.MessageEnvelope, error) {
	seqSet := new(goimap.SeqSet)
	seqSet.AddRange(from, to)

	// Metadata only; hasHtml comes from the body structure, never body bytes
	items := []goimap.FetchItem{
		goimap.FetchEnvelope,
		goimap.FetchFlags,
		goimap.FetchBodyStructure,
		goimap.FetchInternalDate,
	}

	messages := make(chan *goimap.Message, 10)
	done := make(chan error, 1)

	go func() {
		done <- sess.client.Fetch(seqSet, items, messages)
	}()

	envelopes := make([]*models.MessageEnvelope, 0, to-from+1)
	for msg := range messages {
		envelopes = append(envelopes, buildEnvelope(msg))
	}

	if err := <-done; err != nil {
		return nil, classifyFetchError(err, "error fetching envelopes")
	}

	return envelopes, nil
}

// seqWindow computes the sequence range covering the N most recent messages:
// max(1, total-limit+1) through total.
func seqWindow(total uint32, limit int) (from, to uint32) {
	to = total
	from = 1
	if uint32(limit) < total {
		from = total - uint32(limit) + 1
	}
	return from, to
}

func buildEnvelope(msg *goimap.Message) *models.MessageEnvelope {
	envelope := &models.MessageEnvelope{
		SeqNum:  msg.SeqNum,
		Subject: noSubjectPlaceholder,
	}

	for _, flag := range msg.Flags {
		switch flag {
		case goimap.SeenFlag:
			envelope.Read = true
		case goimap.FlaggedFlag:
			envelope.Starred = true
		}
	}

	if msg.BodyStructure != nil {
		envelope.HasHTML = mimeutil.FromIMAPBodyStructure(msg.BodyStructure).HasHTMLPart()
	}

	if !msg.InternalDate.IsZero() {
		envelope.Date = utils.TimePtr(msg.InternalDate)
	}

	if msg.Envelope == nil {
		return envelope
	}

	if subject := mimeutil.DecodeHeader(msg.Envelope.Subject); subject != "" {
		envelope.Subject = subject
	}

	if !msg.Envelope.Date.IsZero() {
		envelope.Date = utils.TimePtr(msg.Envelope.Date)
	}

	if len(msg.Envelope.From) > 0 {
		sender := msg.Envelope.From[0]
		envelope.FromAddress = sender.Address()
		envelope.FromName = mimeutil.DecodeHeader(sender.PersonalName)
		if envelope.FromName == "" {
			// No display name, fall back to the mailbox local part
			envelope.FromName = utils.ExtractLocalPartFromEmail(envelope.FromAddress)
		}
	}

	if len(msg.Envelope.To) > 0 {
		envelope.ToAddress = msg.Envelope.To[0].Address()
	}

	return envelope
}

// sortEnvelopesByDateDesc orders newest first; undated messages sink to the
// end. The sort is stable so equal dates keep their fetch order.
func sortEnvelopesByDateDesc(envelopes []*models.MessageEnvelope) {
	sort.SliceStable(envelopes, func(i, j int) bool {
		if envelopes[i].Date == nil {
			return false
		}
		if envelopes[j].Date == nil {
			return true
		}
		return envelopes[i].Date.After(*envelopes[j].Date)
	})
}
