package handlers

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const webhookSecret = "sk_test_whsecret"

func signBody(body string) string {
	mac := hmac.New(sha512.New, []byte(webhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	h := NewWebhookHandler(nil, webhookSecret)

	body := `{"event":"charge.success","data":{"reference":"MJ_1712345678901_4F7K2Q9X"}}`
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set("X-Paystack-Signature", "deadbeef")
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	h := NewWebhookHandler(nil, webhookSecret)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookAcknowledgesForeignEvents(t *testing.T) {
	// Events other than charge.success are acknowledged without touching
	// the completion flow at all.
	h := NewWebhookHandler(nil, webhookSecret)

	body := `{"event":"transfer.success","data":{"reference":"MJ_1712345678901_4F7K2Q9X"}}`
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set("X-Paystack-Signature", signBody(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookRejectsBadJSON(t *testing.T) {
	h := NewWebhookHandler(nil, webhookSecret)

	body := "{not json"
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set("X-Paystack-Signature", signBody(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
