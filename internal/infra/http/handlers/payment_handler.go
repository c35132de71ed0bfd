package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mjacademy/registration-service/internal/infra/http/middleware"
	"github.com/mjacademy/registration-service/internal/usecase"
)

type PaymentHandler struct {
	InitializeUC *usecase.InitializePaymentUseCase
	CompleteUC   *usecase.CompleteRegistrationUseCase
	rateLimiter  *RateLimiter
}

func NewPaymentHandler(initializeUC *usecase.InitializePaymentUseCase, completeUC *usecase.CompleteRegistrationUseCase) *PaymentHandler {
	return &PaymentHandler{
		InitializeUC: initializeUC,
		CompleteUC:   completeUC,
		// Advisory guard, not a security boundary: 3 attempts per email
		// per 15 minutes.
		rateLimiter: NewRateLimiter(3, 15*time.Minute),
	}
}

func (h *PaymentHandler) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	var input usecase.InitializePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !h.rateLimiter.Allow(email) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED",
			"too many payment attempts for this email, please wait a few minutes and try again")
		return
	}

	output, err := h.InitializeUC.Execute(r.Context(), input)
	if err != nil {
		h.writePaymentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// HandleVerify runs the whole success path: server-side verification and,
// when verified, the final registration write.
func (h *PaymentHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	output, err := h.CompleteUC.Execute(r.Context(), usecase.CompleteRegistrationInput{Reference: reference})
	if err != nil {
		h.writePaymentError(w, err)
		return
	}

	middleware.CountPaymentVerified(output.Status)
	if output.Status == "success" && !output.AlreadyProcessed {
		middleware.CountRegistrationCompleted()
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *PaymentHandler) writePaymentError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *usecase.DomainError:
		writeErrorResponse(w, http.StatusUnprocessableEntity, e.Code, e.Message)

	case *usecase.GatewayError:
		middleware.CountGatewayError()
		if e.Code == "PAYMENT_FAILED" {
			middleware.CountPaymentVerified("failed")
		}

		status := http.StatusBadGateway
		if !e.Retryable {
			// Missing keys: retrying cannot help, tell the client so.
			status = http.StatusServiceUnavailable
		}

		retryable := e.Retryable
		writeJSON(w, status, errorResponse{
			Error:     e.Code,
			Message:   e.Message,
			Reference: e.Reference,
			Retryable: &retryable,
		})

	case *usecase.TechnicalError:
		writeErrorResponse(w, http.StatusInternalServerError, e.Code, e.Message)

	default:
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// RateLimiter tracks attempts per key within a sliding window.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	now := time.Now()

	if !exists {
		rl.visitors[key] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}
