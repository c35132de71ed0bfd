package entity

import (
	"context"
	"errors"
	"time"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusSuccess   = "success"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

var ErrPaymentAttemptTerminal = errors.New("payment attempt is already in a terminal state")

// PaymentAttempt records one gateway interaction. It references a prospect
// only through its metadata (email), not as a foreign key.
type PaymentAttempt struct {
	ID          string            `json:"id"`
	Reference   string            `json:"reference"`
	Email       string            `json:"email"`
	AmountKobo  int64             `json:"amount_kobo"` // minor units
	Status      string            `json:"status"`
	Gateway     string            `json:"gateway"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty"`
	FailureNote string            `json:"failure_note,omitempty"`
}

type PaymentRepositoryInterface interface {
	Record(ctx context.Context, attempt *PaymentAttempt) error
	// Resolve moves a pending attempt to a terminal status. Terminal
	// attempts are never mutated again.
	Resolve(ctx context.Context, reference, status, note string) error
	FindByReference(ctx context.Context, reference string) (*PaymentAttempt, error)
}

func IsTerminalPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}
