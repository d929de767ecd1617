package handlers

import (
	"net/http"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/gin-gonic/gin"

	"github.com/coldreach/inboxstack/interfaces"
	"github.com/coldreach/inboxstack/internal/enum"
	"github.com/coldreach/inboxstack/internal/errors"
	"github.com/coldreach/inboxstack/internal/models"
	"github.com/coldreach/inboxstack/internal/tracing"
	"github.com/coldreach/inboxstack/internal/utils"
)

// ConnectIMAPRequest carries the credentials for a new IMAP integration.
type ConnectIMAPRequest struct {
	EmailAddress string `json:"emailAddress" binding:"required"`
	ImapHost     string `json:"imapHost" binding:"required"`
	ImapPort     int    `json:"imapPort"`
	ImapPassword string `json:"imapPassword" binding:"required"`
}

// ConnectIMAP validates and stores IMAP credentials for the caller, verifying
// the connection before activating the integration.
func ConnectIMAP(inboxService interfaces.InboxService, credentialRepository interfaces.CredentialRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ConnectIMAP", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		userId := utils.GetUserIdFromContext(ctx)
		if userId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "not authenticated",
				"code":  errors.CodeNotAuthenticated,
			})
			return
		}

		var req ConnectIMAPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request body",
				"details": err.Error(),
			})
			return
		}

		validation := mailvalidate.ValidateEmailSyntax(req.EmailAddress)
		if !validation.IsValid {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid email address",
				"details": req.EmailAddress,
			})
			return
		}

		credential := &models.MailboxCredential{
			UserID:       userId,
			EmailAddress: validation.CleanEmail,
			ImapHost:     req.ImapHost,
			ImapPort:     req.ImapPort,
			ImapPassword: req.ImapPassword,
			Active:       true,
		}

		if err := inboxService.CheckConnection(ctx, credential); err != nil {
			tracing.TraceErr(span, err)
			retrievalErr := errors.AsRetrievalError(err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": retrievalErr.Message,
				"code":  retrievalErr.Code,
			})
			return
		}

		credential.ConnectionStatus = enum.ConnectionActive
		credential.LastConnectionCheck = utils.NowPtr()

		// One active integration per user. Replacing supersedes the old one.
		if err := credentialRepository.Deactivate(ctx, userId, enum.ProviderIMAP); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to replace email integration",
				"code":  errors.CodeFetchError,
			})
			return
		}

		if err := credentialRepository.Save(ctx, credential); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to store email integration",
				"code":  errors.CodeFetchError,
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":           credential.ID,
			"emailAddress": credential.EmailAddress,
			"status":       credential.ConnectionStatus,
		})
	}
}

// GetIMAPStatus reports whether the caller has an active IMAP integration and
// its last known connection state.
func GetIMAPStatus(credentialRepository interfaces.CredentialRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "GetIMAPStatus", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		userId := utils.GetUserIdFromContext(ctx)
		if userId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "not authenticated",
				"code":  errors.CodeNotAuthenticated,
			})
			return
		}

		credential, err := credentialRepository.GetActiveByUser(ctx, userId, enum.ProviderIMAP)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to load email integration",
				"code":  errors.CodeFetchError,
			})
			return
		}
		if credential == nil {
			c.JSON(http.StatusOK, gin.H{
				"connected": false,
				"code":      errors.CodeNoIntegration,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"connected":           true,
			"emailAddress":        credential.EmailAddress,
			"connectionStatus":    credential.ConnectionStatus,
			"lastConnectionCheck": credential.LastConnectionCheck,
			"errorMessage":        credential.ErrorMessage,
		})
	}
}

// DisconnectIMAP deactivates the caller's IMAP integration. Credentials are
// kept for audit but no longer used.
func DisconnectIMAP(credentialRepository interfaces.CredentialRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "DisconnectIMAP", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		userId := utils.GetUserIdFromContext(ctx)
		if userId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "not authenticated",
				"code":  errors.CodeNotAuthenticated,
			})
			return
		}

		credential, err := credentialRepository.GetActiveByUser(ctx, userId, enum.ProviderIMAP)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to load email integration",
				"code":  errors.CodeFetchError,
			})
			return
		}
		if credential == nil {
			c.JSON(http.StatusOK, gin.H{
				"error": "no email integration configured",
				"code":  errors.CodeNoIntegration,
			})
			return
		}

		if err := credentialRepository.Deactivate(ctx, userId, enum.ProviderIMAP); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to disconnect email integration",
				"code":  errors.CodeFetchError,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
		})
	}
}
