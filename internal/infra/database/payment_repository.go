package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mjacademy/registration-service/internal/entity"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Record(ctx context.Context, attempt *entity.PaymentAttempt) error {
	metadata, err := json.Marshal(attempt.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt metadata: %w", err)
	}

	query := `
		INSERT INTO payment_attempts (
			id, reference, email, amount_kobo, status, gateway, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.DB.ExecContext(ctx, query,
		attempt.ID,
		attempt.Reference,
		attempt.Email,
		attempt.AmountKobo,
		attempt.Status,
		attempt.Gateway,
		metadata,
		attempt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record payment attempt: %w", err)
	}

	return nil
}

// Resolve moves a pending attempt to its terminal status. The WHERE guard
// keeps terminal attempts immutable.
func (r *PaymentRepository) Resolve(ctx context.Context, reference, status, note string) error {
	if !entity.IsTerminalPaymentStatus(status) {
		return fmt.Errorf("%q is not a terminal payment status", status)
	}

	query := `
		UPDATE payment_attempts
		SET status = $1, failure_note = $2, resolved_at = NOW()
		WHERE reference = $3 AND status = 'pending'
	`

	res, err := r.DB.ExecContext(ctx, query, status, note, reference)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := r.FindByReference(ctx, reference); err != nil {
			return err
		}
		return entity.ErrPaymentAttemptTerminal
	}

	return nil
}

func (r *PaymentRepository) FindByReference(ctx context.Context, reference string) (*entity.PaymentAttempt, error) {
	query := `
		SELECT id, reference, email, amount_kobo, status, gateway, metadata,
		       created_at, resolved_at, failure_note
		FROM payment_attempts
		WHERE reference = $1
	`

	var attempt entity.PaymentAttempt
	var metadata []byte
	var note sql.NullString

	err := r.DB.QueryRowContext(ctx, query, reference).Scan(
		&attempt.ID,
		&attempt.Reference,
		&attempt.Email,
		&attempt.AmountKobo,
		&attempt.Status,
		&attempt.Gateway,
		&metadata,
		&attempt.CreatedAt,
		&attempt.ResolvedAt,
		&note,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("payment attempt %s not found", reference)
		}
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &attempt.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attempt metadata: %w", err)
		}
	}
	attempt.FailureNote = note.String

	return &attempt, nil
}
