package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coldreach/inboxstack/interfaces"
	"github.com/coldreach/inboxstack/internal/enum"
	"github.com/coldreach/inboxstack/internal/errors"
	"github.com/coldreach/inboxstack/internal/models"
	"github.com/coldreach/inboxstack/internal/tracing"
	"github.com/coldreach/inboxstack/internal/utils"
)

// ListEmails returns envelope metadata for the latest-N window of the
// caller's folder, newest first. A missing integration is an expected steady
// state and answers 200 with an empty list, not an error status.
func ListEmails(inboxService interfaces.InboxService, credentialRepository interfaces.CredentialRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ListEmails", c.Request.Header)
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
				"error":  "no email integration configured",
				"code":   errors.CodeNoIntegration,
				"emails": []*models.MessageEnvelope{},
			})
			return
		}

		request := interfaces.ListEnvelopesRequest{
			Folder: c.DefaultQuery("folder", "INBOX"),
		}
		if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
			request.Limit = limit
		}
		if emailId := c.Query("emailId"); emailId != "" {
			if seq, err := strconv.ParseUint(emailId, 10, 32); err == nil {
				request.SeqNum = uint32(seq)
			}
		}

		result, err := inboxService.ListEnvelopes(ctx, credential, request)
		if err != nil {
			tracing.TraceErr(span, err)
			retrievalErr := errors.AsRetrievalError(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": retrievalErr.Message,
				"code":  retrievalErr.Code,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"emails":        result.Emails,
			"total":         result.Total,
			"folder":        result.Folder,
			"providerEmail": credential.EmailAddress,
		})
	}
}

// GetEmailBody fetches and decodes the body of a single message addressed by
// sequence number within the given folder.
func GetEmailBody(inboxService interfaces.InboxService, credentialRepository interfaces.CredentialRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "GetEmailBody", c.Request.Header)
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

		seq, err := strconv.ParseUint(c.Param("seq"), 10, 32)
		if err != nil || seq == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid email sequence number",
				"details": c.Param("seq"),
			})
			return
		}

		credential, err := credentialRepository.GetActiveByUser(ctx, userId, enum.ProviderIMAP)
		if err != nil || credential == nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "no email integration configured",
				"details": "connect an email account first",
			})
			return
		}

		folder := c.DefaultQuery("folder", "INBOX")

		content, err := inboxService.FetchBody(ctx, credential, folder, uint32(seq))
		if err != nil {
			tracing.TraceErr(span, err)
			retrievalErr := errors.AsRetrievalError(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   retrievalErr.Message,
				"details": string(retrievalErr.Code),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"htmlBody": content.HTMLBody,
			"textBody": content.TextBody,
			"success":  true,
		})
	}
}
