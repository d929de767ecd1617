package imap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	goimap "github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/opentracing/opentracing-go"

	"github.com/coldreach/inboxstack/internal/models"
	"github.com/coldreach/inboxstack/internal/tracing"
)

const (
	defaultImapPort   = 993
	defaultFolder     = "INBOX"
	connectTimeout    = 30 * time.Second
	operationTimeout  = 60 * time.Second
	logoutGracePeriod = 5 * time.Second
)

// session is a live, folder-selected IMAP connection. It only exists inside
// withSession; nothing outside this package ever holds one.
type session struct {
	client  *client.Client
	mailbox *goimap.MailboxStatus
	folder  string
}

// withSession opens a TLS connection for the credential, authenticates,
// selects the folder and runs fn. The connection is closed on every path,
// including every failure branch, before the error is surfaced. One
// connection attempt per call, no retry.
func (s *InboxService) withSession(ctx context.Context, credential *models.MailboxCredential, folder string, fn func(*session) error) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "InboxService.withSession")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("server", credential.ImapHost)
	span.SetTag("folder", folder)

	if folder == "" {
		folder = defaultFolder
	}
	port := credential.ImapPort
	if port == 0 {
		port = defaultImapPort
	}

	serverAddr := fmt.Sprintf("%s:%d", credential.ImapHost, port)

	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: connectTimeout,
	}

	// Implicit TLS only; unencrypted retrieval is not supported
	tlsConfig := &tls.Config{
		ServerName: credential.ImapHost,
	}

	c, err := client.DialWithDialerTLS(dialer, serverAddr, tlsConfig)
	if err != nil {
		err = classifyConnectionError(err)
		tracing.TraceErr(span, err)
		return err
	}
	defer s.closeSession(credential.ID, c)

	c.Timeout = connectTimeout
	if _, err := c.Capability(); err != nil {
		err = classifyConnectionError(err)
		tracing.TraceErr(span, err)
		return err
	}

	if err := c.Login(credential.EmailAddress, credential.ImapPassword); err != nil {
		err = classifyLoginError(err)
		tracing.TraceErr(span, err)
		return err
	}

	mbox, err := c.Select(folder, true)
	if err != nil {
		err = classifyFetchError(err, "error selecting folder "+folder)
		tracing.TraceErr(span, err)
		return err
	}

	c.Timeout = operationTimeout
	if err := fn(&session{client: c, mailbox: mbox, folder: folder}); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	return nil
}

// closeSession logs out with a bounded wait so a wedged server cannot leak
// the connection past the request.
func (s *InboxService) closeSession(credentialID string, c *client.Client) {
	if c == nil {
		return
	}

	c.Timeout = logoutGracePeriod

	done := make(chan error, 1)
	go func() {
		done <- c.Logout()
		close(done)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.log.Warnf("[%s] Error during logout: %v", credentialID, err)
		}
	case <-time.After(logoutGracePeriod):
		s.log.Warnf("[%s] Logout timed out", credentialID)
	}
}
