package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/coldreach/inboxstack/api/middleware"
	"github.com/coldreach/inboxstack/internal/enum"
	"github.com/coldreach/inboxstack/internal/errors"
	"github.com/coldreach/inboxstack/internal/models"
)

func newIntegrationsRouter(inbox *mockInboxService, credentials *mockCredentialRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.UserIdMiddleware())
	r.Use(middleware.CustomContextMiddleware("inboxstack-test"))

	r.POST("/v1/integrations/imap", ConnectIMAP(inbox, credentials))
	r.GET("/v1/integrations/imap", GetIMAPStatus(credentials))
	r.DELETE("/v1/integrations/imap", DisconnectIMAP(credentials))
	return r
}

func postJSON(r *gin.Engine, target, userId string, payload interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if userId != "" {
		req.Header.Set("X-User-Id", userId)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func connectPayload() ConnectIMAPRequest {
	return ConnectIMAPRequest{
		EmailAddress: "jane@example.com",
		ImapHost:     "imap.example.com",
		ImapPort:     993,
		ImapPassword: "app-password",
	}
}

func TestConnectIMAP_MissingUserIs401(t *testing.T) {
	inbox := new(mockInboxService)
	credentials := new(mockCredentialRepository)
	r := newIntegrationsRouter(inbox, credentials)

	w := postJSON(r, "/v1/integrations/imap", "", connectPayload())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConnectIMAP_InvalidEmailIs400(t *testing.T) {
	inbox := new(mockInboxService)
	credentials := new(mockCredentialRepository)
	r := newIntegrationsRouter(inbox, credentials)

	payload := connectPayload()
	payload.EmailAddress = "definitely not an email"
	w := postJSON(r, "/v1/integrations/imap", "user-1", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	inbox.AssertNotCalled(t, "CheckConnection")
}

func TestConnectIMAP_ConnectionFailureIs400WithCode(t *testing.T) {
	inbox := new(mockInboxService)
	credentials := new(mockCredentialRepository)
	inbox.On("CheckConnection", mock.Anything, mock.Anything).
		Return(errors.NewRetrievalError(errors.CodeAuthFailed, "the mail server rejected the credentials, check the email password", nil))
	r := newIntegrationsRouter(inbox, credentials)

	w := postJSON(r, "/v1/integrations/imap", "user-1", connectPayload())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, string(errors.CodeAuthFailed), body["code"])
	credentials.AssertNotCalled(t, "Save")
}

func TestConnectIMAP_HappyPath(t *testing.T) {
	inbox := new(mockInboxService)
	credentials := new(mockCredentialRepository)
	inbox.On("CheckConnection", mock.Anything, mock.MatchedBy(func(c *models.MailboxCredential) bool {
		return c.UserID == "user-1" && c.EmailAddress == "jane@example.com" && c.ImapHost == "imap.example.com"
	})).Return(nil)
	credentials.On("Deactivate", mock.Anything, "user-1", enum.ProviderIMAP).Return(nil)
	credentials.On("Save", mock.Anything, mock.Anything).Return(nil)
	r := newIntegrationsRouter(inbox, credentials)

	w := postJSON(r, "/v1/integrations/imap", "user-1", connectPayload())

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "jane@example.com", body["emailAddress"])
	assert.Equal(t, string(enum.ConnectionActive), body["status"])
	credentials.AssertExpectations(t)
}

func TestGetIMAPStatus_NotConnected(t *testing.T) {
	inbox := new(mockInboxService)
	credentials := new(mockCredentialRepository)
	credentials.On("GetActiveByUser", mock.Anything, "user-1", enum.ProviderIMAP).Return(nil, nil)
	r := newIntegrationsRouter(inbox, credentials)

	w := performRequest(r, http.MethodGet, "/v1/integrations/imap", "user-1")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["connected"])
	assert.Equal(t, string(errors.CodeNoIntegration), body["code"])
}

func TestGetIMAPStatus_Connected(t *testing.T) {
	inbox := new(mockInboxService)
	credentials := new(mockCredentialRepository)
	credential := testCredential()
	credential.ConnectionStatus = enum.ConnectionActive
	credentials.On("GetActiveByUser", mock.Anything, "user-1", enum.ProviderIMAP).Return(credential, nil)
	r := newIntegrationsRouter(inbox, credentials)

	w := performRequest(r, http.MethodGet, "/v1/integrations/imap", "user-1")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["connected"])
	assert.Equal(t, "jane@example.com", body["emailAddress"])
	assert.Equal(t, string(enum.ConnectionActive), body["connectionStatus"])
}

func TestDisconnectIMAP_NoIntegration(t *testing.T) {
	inbox := new(mockInboxService)
	credentials := new(mockCredentialRepository)
	credentials.On("GetActiveByUser", mock.Anything, "user-1", enum.ProviderIMAP).Return(nil, nil)
	r := newIntegrationsRouter(inbox, credentials)

	req := httptest.NewRequest(http.MethodDelete, "/v1/integrations/imap", nil)
	req.Header.Set("X-User-Id", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, string(errors.CodeNoIntegration), body["code"])
	credentials.AssertNotCalled(t, "Deactivate")
}

func TestDisconnectIMAP_DeactivatesCredential(t *testing.T) {
	inbox := new(mockInboxService)
	credentials := new(mockCredentialRepository)
	credentials.On("GetActiveByUser", mock.Anything, "user-1", enum.ProviderIMAP).Return(testCredential(), nil)
	credentials.On("Deactivate", mock.Anything, "user-1", enum.ProviderIMAP).Return(nil)
	r := newIntegrationsRouter(inbox, credentials)

	req := httptest.NewRequest(http.MethodDelete, "/v1/integrations/imap", nil)
	req.Header.Set("X-User-Id", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	credentials.AssertExpectations(t)
}
