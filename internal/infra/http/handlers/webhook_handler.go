package handlers

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/mjacademy/registration-service/internal/usecase"
)

// WebhookHandler receives Paystack charge events. The verify endpoint is
// the primary completion path; the webhook is the backstop for sessions
// the browser never finished. Both funnel into the same idempotent usecase.
type WebhookHandler struct {
	CompleteUC *usecase.CompleteRegistrationUseCase
	secretKey  string
}

func NewWebhookHandler(completeUC *usecase.CompleteRegistrationUseCase, secretKey string) *WebhookHandler {
	return &WebhookHandler{
		CompleteUC: completeUC,
		secretKey:  secretKey,
	}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<16))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "could not read body")
		return
	}

	if !h.validSignature(body, r.Header.Get("X-Paystack-Signature")) {
		log.Printf("⚠️ webhook with bad signature from %s", r.RemoteAddr)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var event struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "bad JSON")
		return
	}

	if event.Event != "charge.success" {
		// Not ours; acknowledge so Paystack stops resending.
		w.WriteHeader(http.StatusOK)
		return
	}

	_, err = h.CompleteUC.Execute(r.Context(), usecase.CompleteRegistrationInput{Reference: event.Data.Reference})
	if err != nil {
		// The usecase already queued a reconcile for the bad cases; a 500
		// here also makes Paystack retry on its own schedule.
		log.Printf("❌ webhook completion failed for %s: %v", event.Data.Reference, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) validSignature(body []byte, signature string) bool {
	if h.secretKey == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(h.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
