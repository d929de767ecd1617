package imap

import (
	"context"
	"io"
	"strconv"
	"strings"

	goimap "github.com/emersion/go-imap"
	"github.com/jhillyerd/enmime"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"

	"github.com/coldreach/inboxstack/internal/errors"
	"github.com/coldreach/inboxstack/internal/mimeutil"
	"github.com/coldreach/inboxstack/internal/models"
	"github.com/coldreach/inboxstack/internal/tracing"
)

// bodyStrategy is one way of obtaining decoded content for a message. The
// strategies are tried in order; the first one that produces content wins.
type bodyStrategy struct {
	name string
	run  func() (*models.DecodedContent, bool)
}

// FetchBody retrieves and decodes the body of a single message addressed by
// its sequence number in the given folder.
func (s *InboxService) FetchBody(ctx context.Context, credential *models.MailboxCredential, folder string, seqNum uint32) (*models.DecodedContent, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "InboxService.FetchBody")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, credential.ID)
	span.SetTag("seq", seqNum)

	var content *models.DecodedContent

	err := s.withSession(ctx, credential, folder, func(sess *session) error {
		if seqNum == 0 || seqNum > sess.mailbox.Messages {
			return errors.NewRetrievalError(errors.CodeFetchError, "message not found in folder", nil)
		}

		decoded, strategyName, err := s.decodeMessageBody(sess, seqNum)
		if err != nil {
			return err
		}

		span.LogFields(tracingLog.String("body.strategy", strategyName))
		content = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}

	return content, nil
}

// decodeMessageBody runs the strategy chain for one message inside an open
// session and reports which strategy produced the content.
func (s *InboxService) decodeMessageBody(sess *session, seqNum uint32) (*models.DecodedContent, string, error) {
	structure := s.fetchStructure(sess, seqNum)

	strategies := []bodyStrategy{
		{name: "structured_parts", run: func() (*models.DecodedContent, bool) {
			return s.decodeStructuredParts(sess, seqNum, structure)
		}},
		{name: "whole_message", run: func() (*models.DecodedContent, bool) {
			return s.decodeWholeMessage(sess, seqNum)
		}},
		{name: "raw_text", run: func() (*models.DecodedContent, bool) {
			return s.decodeRawText(sess, seqNum)
		}},
	}

	for _, strategy := range strategies {
		if decoded, ok := strategy.run(); ok {
			if structure != nil && structure.HasHTMLPart() {
				decoded.HasHTML = true
			}
			return decoded, strategy.name, nil
		}
	}

	return nil, "", errors.NewRetrievalError(errors.CodeFetchError, "could not decode message content", nil)
}

// fetchStructure retrieves the body structure alone. A failure here is not
// fatal; the fallback strategies do not need it.
func (s *InboxService) fetchStructure(sess *session, seqNum uint32) *mimeutil.Part {
	seqSet := new(goimap.SeqSet)
	seqSet.AddNum(seqNum)

	messages := make(chan *goimap.Message, 1)
	done := make(chan error, 1)

	go func() {
		done <- sess.client.Fetch(seqSet, []goimap.FetchItem{goimap.FetchBodyStructure}, messages)
	}()

	var structure *mimeutil.Part
	for msg := range messages {
		if msg.BodyStructure != nil {
			structure = mimeutil.FromIMAPBodyStructure(msg.BodyStructure)
		}
	}

	if err := <-done; err != nil {
		s.log.Warnf("Error fetching body structure for seq %d: %v", seqNum, err)
		return nil
	}

	return structure
}

// decodeStructuredParts walks the typed body-structure tree, fetches the
// HTML and plain-text leaves by their dotted part address, and decodes each
// with its declared transfer encoding and charset.
func (s *InboxService) decodeStructuredParts(sess *session, seqNum uint32, structure *mimeutil.Part) (*models.DecodedContent, bool) {
	if structure == nil {
		return nil, false
	}

	content := &models.DecodedContent{}

	if path, part := structure.FindPart("text", "html"); part != nil {
		if raw, err := s.fetchSection(sess, seqNum, sectionForPath(path)); err == nil && raw != "" {
			content.HTMLBody = mimeutil.DecodeTransfer(raw, part.Encoding, part.Charset())
		}
	}

	if path, part := structure.FindPart("text", "plain"); part != nil {
		if raw, err := s.fetchSection(sess, seqNum, sectionForPath(path)); err == nil && raw != "" {
			content.TextBody = mimeutil.DecodeTransfer(raw, part.Encoding, part.Charset())
		}
	}

	if content.HTMLBody == "" && content.TextBody == "" {
		return nil, false
	}
	return content, true
}

// decodeWholeMessage downloads the full raw message and hands it to the MIME
// parser. Covers messages whose structure could not be fetched or matched.
func (s *InboxService) decodeWholeMessage(sess *session, seqNum uint32) (*models.DecodedContent, bool) {
	raw, err := s.fetchSection(sess, seqNum, &goimap.BodySectionName{Peek: true})
	if err != nil || raw == "" {
		return nil, false
	}

	envelope, err := enmime.ReadEnvelope(strings.NewReader(raw))
	if err != nil {
		s.log.Warnf("Error parsing message seq %d: %v", seqNum, err)
		return nil, false
	}

	content := &models.DecodedContent{
		HTMLBody: envelope.HTML,
		TextBody: envelope.Text,
	}
	if content.HTMLBody == "" && content.TextBody == "" {
		return nil, false
	}
	return content, true
}

// decodeRawText is the last resort: fetch the server's generic TEXT section
// and classify it by sniffing for markup tokens.
func (s *InboxService) decodeRawText(sess *session, seqNum uint32) (*models.DecodedContent, bool) {
	section := &goimap.BodySectionName{Peek: true}
	section.Specifier = goimap.TextSpecifier

	raw, err := s.fetchSection(sess, seqNum, section)
	if err != nil || raw == "" {
		return nil, false
	}

	content := &models.DecodedContent{}
	if mimeutil.LooksLikeHTML(raw) {
		content.HTMLBody = raw
		content.HasHTML = true
	} else {
		content.TextBody = raw
	}
	return content, true
}

func (s *InboxService) fetchSection(sess *session, seqNum uint32, section *goimap.BodySectionName) (string, error) {
	seqSet := new(goimap.SeqSet)
	seqSet.AddNum(seqNum)

	messages := make(chan *goimap.Message, 1)
	done := make(chan error, 1)

	go func() {
		done <- sess.client.Fetch(seqSet, []goimap.FetchItem{section.FetchItem()}, messages)
	}()

	var body string
	for msg := range messages {
		literal := msg.GetBody(section)
		if literal == nil {
			continue
		}
		data, err := io.ReadAll(literal)
		if err != nil {
			continue
		}
		body = string(data)
	}

	if err := <-done; err != nil {
		return "", classifyFetchError(err, "error fetching message section")
	}

	return body, nil
}

// sectionForPath converts a dotted part address into a peeked body section.
func sectionForPath(path string) *goimap.BodySectionName {
	section := &goimap.BodySectionName{Peek: true}
	for _, segment := range strings.Split(path, ".") {
		if n, err := strconv.Atoi(segment); err == nil && n > 0 {
			section.Path = append(section.Path, n)
		}
	}
	return section
}
