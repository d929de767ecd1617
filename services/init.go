package services

import (
	"github.com/coldreach/inboxstack/interfaces"
	"github.com/coldreach/inboxstack/internal/logger"
	"github.com/coldreach/inboxstack/services/imap"
)

type Services struct {
	InboxService interfaces.InboxService
}

func InitServices(log logger.Logger) *Services {
	return &Services{
		InboxService: imap.NewInboxService(log),
	}
}
