package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// StaleAttemptSweeper expires payment attempts stuck in pending: a closed
// checkout widget never reports back, and there is no verification timeout
// on the client, so the sweeper is what eventually closes those rows.
type StaleAttemptSweeper struct {
	db               *sql.DB
	expirationWindow time.Duration
	tickInterval     time.Duration
}

func NewStaleAttemptSweeper(db *sql.DB) *StaleAttemptSweeper {
	return &StaleAttemptSweeper{
		db:               db,
		expirationWindow: 30 * time.Minute,
		tickInterval:     1 * time.Minute,
	}
}

func (w *StaleAttemptSweeper) Start(ctx context.Context) {
	log.Println("🕒 stale payment attempt sweeper started (30min window)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireStaleAttempts(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ stale payment attempt sweeper stopped")
			return
		case <-ticker.C:
			w.expireStaleAttempts(ctx)
		}
	}
}

func (w *StaleAttemptSweeper) expireStaleAttempts(ctx context.Context) {
	query := `
		UPDATE payment_attempts
		SET
			status = 'cancelled',
			failure_note = 'expired: no verification within window',
			resolved_at = NOW()
		WHERE
			status = 'pending'
			AND created_at < NOW() - INTERVAL '30 minutes'
		RETURNING reference, email, created_at
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ failed to query stale attempts: %v", err)
		return
	}
	defer rows.Close()

	expiredCount := 0
	for rows.Next() {
		var reference, email string
		var createdAt time.Time

		if err := rows.Scan(&reference, &email, &createdAt); err != nil {
			log.Printf("⚠️ failed to scan stale attempt: %v", err)
			continue
		}

		elapsed := time.Since(createdAt)
		log.Printf("⏱️ attempt expired: reference=%s email=%s elapsed=%s",
			reference, email, elapsed.Round(time.Minute))
		expiredCount++
	}

	if expiredCount > 0 {
		log.Printf("✅ %d attempt(s) marked cancelled", expiredCount)
	}
}
